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

// Package constants contains shared constants for the business network.
package constants

import "fmt"

// ParticipantRole signifies what role a business plays in the network.
type ParticipantRole uint8

const (
	RoleSupplier ParticipantRole = iota
	RoleShipper
	RoleRetailer
)

func ParseRole(s string) (ParticipantRole, error) {
	switch s {
	case "SUPPLIER":
		return RoleSupplier, nil
	case "SHIPPER":
		return RoleShipper, nil
	case "RETAILER":
		return RoleRetailer, nil
	default:
		return 255, fmt.Errorf("not a valid role: %s", s)
	}
}

func (r ParticipantRole) String() string {
	switch r {
	case RoleSupplier:
		return "SUPPLIER"
	case RoleShipper:
		return "SHIPPER"
	case RoleRetailer:
		return "RETAILER"
	default:
		panic(fmt.Sprintf("unexpected constants.ParticipantRole: %#v", r))
	}
}
