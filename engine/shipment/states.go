// Copyright 2025 coldtrack
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package shipment

import "fmt"

// Status is the progress of a shipment through its delivery chain.
type Status uint8

const (
	StatusCreated Status = iota
	StatusDocked
	StatusInTransit
	StatusArrived
	StatusDelivered
)

func ParseStatus(s string) (Status, error) {
	switch s {
	case "CREATED":
		return StatusCreated, nil
	case "DOCKED":
		return StatusDocked, nil
	case "IN_TRANSIT":
		return StatusInTransit, nil
	case "ARRIVED":
		return StatusArrived, nil
	case "DELIVERED":
		return StatusDelivered, nil
	default:
		return 255, fmt.Errorf("not a valid shipment status: %s", s)
	}
}

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "CREATED"
	case StatusDocked:
		return "DOCKED"
	case StatusInTransit:
		return "IN_TRANSIT"
	case StatusArrived:
		return "ARRIVED"
	case StatusDelivered:
		return "DELIVERED"
	default:
		panic(fmt.Sprintf("unexpected shipment.Status: %#v", s))
	}
}

// Terminal reports whether the shipment has reached the end of its chain.
func (s Status) Terminal() bool {
	return len(validTransitions[s]) == 0
}
