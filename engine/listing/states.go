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

package listing

import "fmt"

// State is the listing state of a product.
type State uint8

const (
	StateCreated State = iota
	StateForSale
	StateReserveNotMet
	StateSold
)

func ParseState(s string) (State, error) {
	switch s {
	case "CREATED":
		return StateCreated, nil
	case "FOR_SALE":
		return StateForSale, nil
	case "RESERVE_NOT_MET":
		return StateReserveNotMet, nil
	case "SOLD":
		return StateSold, nil
	default:
		return 255, fmt.Errorf("not a valid listing state: %s", s)
	}
}

func (s State) String() string {
	switch s {
	case StateCreated:
		return "CREATED"
	case StateForSale:
		return "FOR_SALE"
	case StateReserveNotMet:
		return "RESERVE_NOT_MET"
	case StateSold:
		return "SOLD"
	default:
		panic(fmt.Sprintf("unexpected listing.State: %#v", s))
	}
}

// Terminal reports whether no further listing transitions are possible.
func (s State) Terminal() bool {
	return len(validTransitions[s]) == 0
}
