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

// Package listing contains the product listing entity and its auction state.
package listing

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

var validTransitions = map[State][]State{
	StateCreated: {
		StateForSale,
	},
	StateForSale: {
		StateReserveNotMet,
		StateSold,
	},
	StateReserveNotMet: {},
	StateSold:          {},
}

// Offer is a retailer's bid on a product listing. Offers are kept in submission order.
type Offer struct {
	Retailer string
	BidPrice float64
}

// Product represents a perishable good up for auction.
type Product struct {
	id           uuid.UUID
	productType  string
	unitCount    int
	reservePrice float64
	state        State
	owner        string
	possessor    string
	buyer        string
	offers       []Offer

	ro       bool
	modified bool
}

type storableProduct struct {
	ID           uuid.UUID
	ProductType  string
	UnitCount    int
	ReservePrice float64
	State        State
	Owner        string
	Possessor    string
	Buyer        string
	Offers       []Offer
}

// New creates a product owned and possessed by the given supplier, in the CREATED state.
func New(id uuid.UUID, productType string, unitCount int, reservePrice float64, owner string) *Product {
	return &Product{
		id:           id,
		productType:  productType,
		unitCount:    unitCount,
		reservePrice: reservePrice,
		state:        StateCreated,
		owner:        owner,
		possessor:    owner,
		modified:     true,
	}
}

func FromBytes(b []byte) (*Product, error) {
	var sp storableProduct
	dec := gob.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&sp); err != nil {
		return nil, fmt.Errorf("could not decode bytes into storableProduct: %w", err)
	}
	return &Product{
		id:           sp.ID,
		productType:  sp.ProductType,
		unitCount:    sp.UnitCount,
		reservePrice: sp.ReservePrice,
		state:        sp.State,
		owner:        sp.Owner,
		possessor:    sp.Possessor,
		buyer:        sp.Buyer,
		offers:       sp.Offers,
	}, nil
}

// GenerateStorageKey generates the storage key for a product.
func GenerateStorageKey(id uuid.UUID) []byte {
	return []byte("product-" + id.String())
}

// Product getters.
func (p *Product) GetID() uuid.UUID         { return p.id }
func (p *Product) GetProductType() string   { return p.productType }
func (p *Product) GetUnitCount() int        { return p.unitCount }
func (p *Product) GetReservePrice() float64 { return p.reservePrice }
func (p *Product) GetState() State          { return p.state }
func (p *Product) GetOwner() string         { return p.owner }
func (p *Product) GetPossessor() string     { return p.possessor }
func (p *Product) GetBuyer() string         { return p.buyer }

// GetOffers returns the offers in submission order. The returned slice is a copy, appending
// goes through AddOffer.
func (p *Product) GetOffers() []Offer {
	return slices.Clone(p.offers)
}

// GetLogFields will return relevant log fields for the product.
func (p *Product) GetLogFields(suffix string) []any {
	return []any{
		"productID" + suffix, p.id.String(),
		"productType" + suffix, p.productType,
		"state" + suffix, p.state.String(),
		"owner" + suffix, p.owner,
		"offers" + suffix, len(p.offers),
	}
}

// Product setters, these will panic when the product is RO.
func (p *Product) SetState(state State) error {
	p.panicRO()
	if !slices.Contains(validTransitions[p.state], state) {
		return fmt.Errorf("can't transition from %s to %s", p.state, state)
	}
	p.state = state
	p.modify()
	return nil
}

func (p *Product) SetOwner(email string) {
	p.panicRO()
	p.owner = email
	p.modify()
}

func (p *Product) SetPossessor(email string) {
	p.panicRO()
	p.possessor = email
	p.modify()
}

func (p *Product) SetBuyer(email string) {
	p.panicRO()
	p.buyer = email
	p.modify()
}

// AddOffer appends an offer, preserving submission order.
func (p *Product) AddOffer(retailer string, bidPrice float64) {
	p.panicRO()
	p.offers = append(p.offers, Offer{Retailer: retailer, BidPrice: bidPrice})
	p.modify()
}

// ClearOffers drops all recorded offers, called once bidding has closed.
func (p *Product) ClearOffers() {
	p.panicRO()
	p.offers = nil
	p.modify()
}

// Properties that decisions are based on.
func (p *Product) ReadOnly() bool { return p.ro }
func (p *Product) Modified() bool { return p.modified }
func (p *Product) StorageKey() []byte {
	return GenerateStorageKey(p.id)
}

// Property setters.
func (p *Product) SetReadOnly() { p.ro = true }

func (p *Product) ToBytes() ([]byte, error) {
	sp := storableProduct{
		ID:           p.id,
		ProductType:  p.productType,
		UnitCount:    p.unitCount,
		ReservePrice: p.reservePrice,
		State:        p.state,
		Owner:        p.owner,
		Possessor:    p.possessor,
		Buyer:        p.buyer,
		Offers:       p.offers,
	}
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(sp); err != nil {
		return nil, fmt.Errorf("could not encode product: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *Product) panicRO() {
	if p.ro {
		panic("Trying to write to a read-only product, this is certainly a bug.")
	}
}

func (p *Product) modify() {
	p.modified = true
}
