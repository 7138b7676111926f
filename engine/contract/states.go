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

package contract

import "fmt"

// State is the inquiry state of a shipping contract.
type State uint8

const (
	StateInquiry State = iota
	StateReserveNotMet
	StateReadyForPickup
)

func ParseState(s string) (State, error) {
	switch s {
	case "INQUIRY":
		return StateInquiry, nil
	case "RESERVE_NOT_MET":
		return StateReserveNotMet, nil
	case "READY_FOR_PICKUP":
		return StateReadyForPickup, nil
	default:
		return 255, fmt.Errorf("not a valid contract state: %s", s)
	}
}

func (s State) String() string {
	switch s {
	case StateInquiry:
		return "INQUIRY"
	case StateReserveNotMet:
		return "RESERVE_NOT_MET"
	case StateReadyForPickup:
		return "READY_FOR_PICKUP"
	default:
		panic(fmt.Sprintf("unexpected contract.State: %#v", s))
	}
}

// Terminal reports whether no further inquiry transitions are possible.
func (s State) Terminal() bool {
	return len(validTransitions[s]) == 0
}
