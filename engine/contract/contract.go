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

// Package contract contains the shipping contract entity and its inquiry state.
package contract

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

var validTransitions = map[State][]State{
	StateInquiry: {
		StateReserveNotMet,
		StateReadyForPickup,
	},
	StateReserveNotMet:  {},
	StateReadyForPickup: {},
}

// Bid is a shipper's price offer on a contract inquiry. Bids are kept in submission order.
type Bid struct {
	Shipper  string
	BidPrice float64
}

// Contract represents a shipping agreement between a supplier, a shipper and a retailer.
// The shipper is unset until the inquiry closes.
type Contract struct {
	id        uuid.UUID
	productID uuid.UUID
	supplier  string
	shipper   string
	retailer  string

	unitCount        int
	unitPrice        float64
	maxPrice         float64
	minTemperature   float64
	maxTemperature   float64
	minPenaltyFactor float64
	maxPenaltyFactor float64
	arrival          time.Time

	state State
	bids  []Bid

	ro       bool
	modified bool
}

type storableContract struct {
	ID               uuid.UUID
	ProductID        uuid.UUID
	Supplier         string
	Shipper          string
	Retailer         string
	UnitCount        int
	UnitPrice        float64
	MaxPrice         float64
	MinTemperature   float64
	MaxTemperature   float64
	MinPenaltyFactor float64
	MaxPenaltyFactor float64
	Arrival          time.Time
	State            State
	Bids             []Bid
}

// Terms are the commercial parameters a contract is created with.
type Terms struct {
	UnitCount        int
	MaxPrice         float64
	MinTemperature   float64
	MaxTemperature   float64
	MinPenaltyFactor float64
	MaxPenaltyFactor float64
	Arrival          time.Time
}

// New creates a contract in the INQUIRY state. The unit price starts at the maximum price
// and is lowered to the winning bid when the inquiry closes.
func New(id, productID uuid.UUID, supplier, retailer string, terms Terms) *Contract {
	return &Contract{
		id:               id,
		productID:        productID,
		supplier:         supplier,
		retailer:         retailer,
		unitCount:        terms.UnitCount,
		unitPrice:        terms.MaxPrice,
		maxPrice:         terms.MaxPrice,
		minTemperature:   terms.MinTemperature,
		maxTemperature:   terms.MaxTemperature,
		minPenaltyFactor: terms.MinPenaltyFactor,
		maxPenaltyFactor: terms.MaxPenaltyFactor,
		arrival:          terms.Arrival,
		state:            StateInquiry,
		modified:         true,
	}
}

func FromBytes(b []byte) (*Contract, error) {
	var sc storableContract
	dec := gob.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("could not decode bytes into storableContract: %w", err)
	}
	return &Contract{
		id:               sc.ID,
		productID:        sc.ProductID,
		supplier:         sc.Supplier,
		shipper:          sc.Shipper,
		retailer:         sc.Retailer,
		unitCount:        sc.UnitCount,
		unitPrice:        sc.UnitPrice,
		maxPrice:         sc.MaxPrice,
		minTemperature:   sc.MinTemperature,
		maxTemperature:   sc.MaxTemperature,
		minPenaltyFactor: sc.MinPenaltyFactor,
		maxPenaltyFactor: sc.MaxPenaltyFactor,
		arrival:          sc.Arrival,
		state:            sc.State,
		bids:             sc.Bids,
	}, nil
}

// GenerateStorageKey generates the storage key for a contract.
func GenerateStorageKey(id uuid.UUID) []byte {
	return []byte("contract-" + id.String())
}

// Contract getters.
func (c *Contract) GetID() uuid.UUID             { return c.id }
func (c *Contract) GetProductID() uuid.UUID      { return c.productID }
func (c *Contract) GetSupplier() string          { return c.supplier }
func (c *Contract) GetShipper() string           { return c.shipper }
func (c *Contract) GetRetailer() string          { return c.retailer }
func (c *Contract) GetUnitCount() int            { return c.unitCount }
func (c *Contract) GetUnitPrice() float64        { return c.unitPrice }
func (c *Contract) GetMaxPrice() float64         { return c.maxPrice }
func (c *Contract) GetMinTemperature() float64   { return c.minTemperature }
func (c *Contract) GetMaxTemperature() float64   { return c.maxTemperature }
func (c *Contract) GetMinPenaltyFactor() float64 { return c.minPenaltyFactor }
func (c *Contract) GetMaxPenaltyFactor() float64 { return c.maxPenaltyFactor }
func (c *Contract) GetArrival() time.Time        { return c.arrival }
func (c *Contract) GetState() State              { return c.state }

// GetBids returns the bids in submission order. The returned slice is a copy, appending
// goes through AddBid.
func (c *Contract) GetBids() []Bid {
	return slices.Clone(c.bids)
}

// GetLogFields will return relevant log fields for the contract.
func (c *Contract) GetLogFields(suffix string) []any {
	return []any{
		"contractID" + suffix, c.id.String(),
		"productID" + suffix, c.productID.String(),
		"state" + suffix, c.state.String(),
		"supplier" + suffix, c.supplier,
		"retailer" + suffix, c.retailer,
		"bids" + suffix, len(c.bids),
	}
}

// Contract setters, these will panic when the contract is RO.
func (c *Contract) SetState(state State) error {
	c.panicRO()
	if !slices.Contains(validTransitions[c.state], state) {
		return fmt.Errorf("can't transition from %s to %s", c.state, state)
	}
	c.state = state
	c.modify()
	return nil
}

func (c *Contract) SetShipper(email string) {
	c.panicRO()
	c.shipper = email
	c.modify()
}

func (c *Contract) SetUnitPrice(price float64) {
	c.panicRO()
	c.unitPrice = price
	c.modify()
}

// AddBid appends a bid, preserving submission order.
func (c *Contract) AddBid(shipper string, bidPrice float64) {
	c.panicRO()
	c.bids = append(c.bids, Bid{Shipper: shipper, BidPrice: bidPrice})
	c.modify()
}

// ClearBids drops all recorded bids, called once the inquiry has closed.
func (c *Contract) ClearBids() {
	c.panicRO()
	c.bids = nil
	c.modify()
}

// Properties that decisions are based on.
func (c *Contract) ReadOnly() bool { return c.ro }
func (c *Contract) Modified() bool { return c.modified }
func (c *Contract) StorageKey() []byte {
	return GenerateStorageKey(c.id)
}

// Property setters.
func (c *Contract) SetReadOnly() { c.ro = true }

func (c *Contract) ToBytes() ([]byte, error) {
	sc := storableContract{
		ID:               c.id,
		ProductID:        c.productID,
		Supplier:         c.supplier,
		Shipper:          c.shipper,
		Retailer:         c.retailer,
		UnitCount:        c.unitCount,
		UnitPrice:        c.unitPrice,
		MaxPrice:         c.maxPrice,
		MinTemperature:   c.minTemperature,
		MaxTemperature:   c.maxTemperature,
		MinPenaltyFactor: c.minPenaltyFactor,
		MaxPenaltyFactor: c.maxPenaltyFactor,
		Arrival:          c.arrival,
		State:            c.state,
		Bids:             c.bids,
	}
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(sc); err != nil {
		return nil, fmt.Errorf("could not encode contract: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Contract) panicRO() {
	if c.ro {
		panic("Trying to write to a read-only contract, this is certainly a bug.")
	}
}

func (c *Contract) modify() {
	c.modified = true
}
