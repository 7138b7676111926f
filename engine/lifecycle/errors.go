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

package lifecycle

import (
	"errors"
	"fmt"

	"github.com/coldtrack/coldtrack/engine/persistence"
)

// ErrorKind classifies a rejected transaction.
type ErrorKind uint8

const (
	// KindInvalidState is an operation attempted against an entity not in the required
	// state.
	KindInvalidState ErrorKind = iota
	// KindInvalidBid is a bid or offer whose price violates the domain constraints.
	KindInvalidBid
	// KindInvalidRange is a payload whose values violate the domain constraints.
	KindInvalidRange
	// KindProductNotSold is a contract creation against an unsold product.
	KindProductNotSold
	// KindNotFound is a referenced entity identifier that does not resolve.
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidState:
		return "InvalidState"
	case KindInvalidBid:
		return "InvalidBid"
	case KindInvalidRange:
		return "InvalidRange"
	case KindProductNotSold:
		return "ProductNotSold"
	case KindNotFound:
		return "NotFound"
	default:
		panic(fmt.Sprintf("unexpected lifecycle.ErrorKind: %#v", k))
	}
}

// Error is a rejected transaction. It carries the offending entity identifier and its
// current state so the submission boundary can report the reason to the submitter. A
// rejected transaction leaves no entity mutated.
type Error struct {
	Kind     ErrorKind
	EntityID string
	State    string
	Reason   string
}

func (e *Error) Error() string {
	if e.State == "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.EntityID, e.Reason)
	}
	return fmt.Sprintf("%s: %s (state %s): %s", e.Kind, e.EntityID, e.State, e.Reason)
}

func invalidState(entityID, state, reason string) *Error {
	return &Error{Kind: KindInvalidState, EntityID: entityID, State: state, Reason: reason}
}

func invalidBid(entityID, reason string) *Error {
	return &Error{Kind: KindInvalidBid, EntityID: entityID, Reason: reason}
}

func invalidRange(entityID, reason string) *Error {
	return &Error{Kind: KindInvalidRange, EntityID: entityID, Reason: reason}
}

func productNotSold(entityID, state string) *Error {
	return &Error{Kind: KindProductNotSold, EntityID: entityID, State: state, Reason: "product has not been sold"}
}

func notFound(entityID string) *Error {
	return &Error{Kind: KindNotFound, EntityID: entityID, Reason: "no such entity"}
}

// wrapFetch converts a storage miss into a typed NotFound, passing other errors through.
func wrapFetch(err error, entityID string) error {
	if errors.Is(err, persistence.ErrNotFound) {
		return notFound(entityID)
	}
	return err
}
