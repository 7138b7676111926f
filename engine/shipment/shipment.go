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

// Package shipment contains the tracked shipment entity, its status chain and the
// temperature log used for settlement.
package shipment

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

var validTransitions = map[Status][]Status{
	StatusCreated: {
		StatusDocked,
	},
	StatusDocked: {
		StatusInTransit,
	},
	StatusInTransit: {
		StatusArrived,
	},
	StatusArrived: {
		StatusDelivered,
	},
	StatusDelivered: {},
}

// Shipment represents a tracked shipping instance bound to exactly one contract and one
// product.
type Shipment struct {
	id         uuid.UUID
	contractID uuid.UUID
	productID  uuid.UUID
	unitCount  int
	status     Status
	readings   []float64
	arrival    time.Time

	ro       bool
	modified bool
}

type storableShipment struct {
	ID         uuid.UUID
	ContractID uuid.UUID
	ProductID  uuid.UUID
	UnitCount  int
	Status     Status
	Readings   []float64
	Arrival    time.Time
}

// New creates a shipment in the CREATED status.
func New(id, contractID, productID uuid.UUID, unitCount int) *Shipment {
	return &Shipment{
		id:         id,
		contractID: contractID,
		productID:  productID,
		unitCount:  unitCount,
		status:     StatusCreated,
		modified:   true,
	}
}

func FromBytes(b []byte) (*Shipment, error) {
	var ss storableShipment
	dec := gob.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&ss); err != nil {
		return nil, fmt.Errorf("could not decode bytes into storableShipment: %w", err)
	}
	return &Shipment{
		id:         ss.ID,
		contractID: ss.ContractID,
		productID:  ss.ProductID,
		unitCount:  ss.UnitCount,
		status:     ss.Status,
		readings:   ss.Readings,
		arrival:    ss.Arrival,
	}, nil
}

// GenerateStorageKey generates the storage key for a shipment.
func GenerateStorageKey(id uuid.UUID) []byte {
	return []byte("shipment-" + id.String())
}

// Shipment getters.
func (s *Shipment) GetID() uuid.UUID         { return s.id }
func (s *Shipment) GetContractID() uuid.UUID { return s.contractID }
func (s *Shipment) GetProductID() uuid.UUID  { return s.productID }
func (s *Shipment) GetUnitCount() int        { return s.unitCount }
func (s *Shipment) GetStatus() Status        { return s.status }
func (s *Shipment) GetArrival() time.Time    { return s.arrival }

// GetReadings returns the temperature log in recording order. The returned slice is a
// copy, the log itself is append-only.
func (s *Shipment) GetReadings() []float64 {
	return slices.Clone(s.readings)
}

// GetLogFields will return relevant log fields for the shipment.
func (s *Shipment) GetLogFields(suffix string) []any {
	return []any{
		"shipmentID" + suffix, s.id.String(),
		"contractID" + suffix, s.contractID.String(),
		"productID" + suffix, s.productID.String(),
		"status" + suffix, s.status.String(),
		"readings" + suffix, len(s.readings),
	}
}

// Shipment setters, these will panic when the shipment is RO.
func (s *Shipment) SetStatus(status Status) error {
	s.panicRO()
	if !slices.Contains(validTransitions[s.status], status) {
		return fmt.Errorf("can't transition from %s to %s", s.status, status)
	}
	s.status = status
	s.modify()
	return nil
}

// AddReading appends a temperature sample to the log. It is legal in every non-terminal
// status and never changes the status.
func (s *Shipment) AddReading(centigrade float64) error {
	s.panicRO()
	if s.status.Terminal() {
		return fmt.Errorf("can't record temperature on a %s shipment", s.status)
	}
	s.readings = append(s.readings, centigrade)
	s.modify()
	return nil
}

func (s *Shipment) SetArrival(t time.Time) {
	s.panicRO()
	s.arrival = t
	s.modify()
}

// Properties that decisions are based on.
func (s *Shipment) ReadOnly() bool { return s.ro }
func (s *Shipment) Modified() bool { return s.modified }
func (s *Shipment) StorageKey() []byte {
	return GenerateStorageKey(s.id)
}

// Property setters.
func (s *Shipment) SetReadOnly() { s.ro = true }

func (s *Shipment) ToBytes() ([]byte, error) {
	ss := storableShipment{
		ID:         s.id,
		ContractID: s.contractID,
		ProductID:  s.productID,
		UnitCount:  s.unitCount,
		Status:     s.status,
		Readings:   s.readings,
		Arrival:    s.arrival,
	}
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(ss); err != nil {
		return nil, fmt.Errorf("could not encode shipment: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Shipment) panicRO() {
	if s.ro {
		panic("Trying to write to a read-only shipment, this is certainly a bug.")
	}
}

func (s *Shipment) modify() {
	s.modified = true
}
