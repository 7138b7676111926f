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

// Package participant contains the business participant entity. Suppliers, shippers and
// retailers share one shape, a role tag tells them apart.
package participant

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/coldtrack/coldtrack/engine/constants"
)

// Business is a network participant, keyed by email.
type Business struct {
	email   string
	role    constants.ParticipantRole
	address string
	balance float64

	ro       bool
	modified bool
}

type storableBusiness struct {
	Email   string
	Role    constants.ParticipantRole
	Address string
	Balance float64
}

// New creates a participant with an opening balance.
func New(email string, role constants.ParticipantRole, address string, balance float64) *Business {
	return &Business{
		email:    email,
		role:     role,
		address:  address,
		balance:  balance,
		modified: true,
	}
}

func FromBytes(b []byte) (*Business, error) {
	var sb storableBusiness
	dec := gob.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&sb); err != nil {
		return nil, fmt.Errorf("could not decode bytes into storableBusiness: %w", err)
	}
	return &Business{
		email:   sb.Email,
		role:    sb.Role,
		address: sb.Address,
		balance: sb.Balance,
	}, nil
}

// GenerateStorageKey generates the storage key for a participant.
func GenerateStorageKey(email string) []byte {
	return []byte("participant-" + email)
}

// Business getters.
func (b *Business) GetEmail() string                   { return b.email }
func (b *Business) GetRole() constants.ParticipantRole { return b.role }
func (b *Business) GetAddress() string                 { return b.address }
func (b *Business) GetBalance() float64                { return b.balance }

// Business setters, these will panic when the participant is RO.

// Credit increases the balance by amount.
func (b *Business) Credit(amount float64) {
	b.panicRO()
	b.balance += amount
	b.modify()
}

// Debit decreases the balance by amount. Balances may go negative, credit limits are the
// submission boundary's concern.
func (b *Business) Debit(amount float64) {
	b.panicRO()
	b.balance -= amount
	b.modify()
}

func (b *Business) SetAddress(address string) {
	b.panicRO()
	b.address = address
	b.modify()
}

// Properties that decisions are based on.
func (b *Business) ReadOnly() bool { return b.ro }
func (b *Business) Modified() bool { return b.modified }
func (b *Business) StorageKey() []byte {
	return GenerateStorageKey(b.email)
}

// Property setters.
func (b *Business) SetReadOnly() { b.ro = true }

func (b *Business) ToBytes() ([]byte, error) {
	sb := storableBusiness{
		Email:   b.email,
		Role:    b.role,
		Address: b.address,
		Balance: b.balance,
	}
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(sb); err != nil {
		return nil, fmt.Errorf("could not encode participant: %w", err)
	}
	return buf.Bytes(), nil
}

func (b *Business) panicRO() {
	if b.ro {
		panic("Trying to write to a read-only participant, this is certainly a bug.")
	}
}

func (b *Business) modify() {
	b.modified = true
}
