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

// Package shared contains the wire types of the submission boundary.
package shared

import "time"

// APIError is the error body returned on a rejected or failed request.
type APIError struct {
	Code    string `json:"code" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// ParticipantRequest registers a business participant.
type ParticipantRequest struct {
	Email   string  `json:"email" validate:"required,email"`
	Role    string  `json:"role" validate:"required,participant_role"`
	Address string  `json:"address"`
	Balance float64 `json:"balance" validate:"gte=0"`
}

// ParticipantResponse is the wire view of a participant.
type ParticipantResponse struct {
	Email   string  `json:"email" validate:"required"`
	Role    string  `json:"role" validate:"required,participant_role"`
	Address string  `json:"address"`
	Balance float64 `json:"balance"`
}

// ProductRequest registers a perishable good.
type ProductRequest struct {
	Owner        string  `json:"owner" validate:"required,email"`
	ProductType  string  `json:"productType" validate:"required"`
	UnitCount    int     `json:"unitCount" validate:"gt=0"`
	ReservePrice float64 `json:"reservePrice" validate:"gte=0"`
}

// OfferRequest is a retailer's price offer on a product listing.
type OfferRequest struct {
	Retailer string  `json:"retailer" validate:"required,email"`
	BidPrice float64 `json:"bidPrice" validate:"gt=0"`
}

// Offer is the wire view of a recorded offer.
type Offer struct {
	Retailer string  `json:"retailer"`
	BidPrice float64 `json:"bidPrice"`
}

// ProductResponse is the wire view of a product listing.
type ProductResponse struct {
	ID           string  `json:"id" validate:"required,uuid"`
	ProductType  string  `json:"productType"`
	UnitCount    int     `json:"unitCount"`
	ReservePrice float64 `json:"reservePrice"`
	State        string  `json:"state" validate:"required,listing_state"`
	Owner        string  `json:"owner"`
	Possessor    string  `json:"possessor"`
	Buyer        string  `json:"buyer,omitempty"`
	Offers       []Offer `json:"offers,omitempty"`
}

// ContractRequest opens a shipping inquiry for a sold product.
type ContractRequest struct {
	ProductID        string    `json:"productId" validate:"required,uuid"`
	UnitCount        int       `json:"unitCount" validate:"gt=0"`
	MaxPrice         float64   `json:"maxPrice" validate:"gt=0"`
	MinTemperature   float64   `json:"minTemperature"`
	MaxTemperature   float64   `json:"maxTemperature"`
	MinPenaltyFactor float64   `json:"minPenaltyFactor" validate:"gte=0"`
	MaxPenaltyFactor float64   `json:"maxPenaltyFactor" validate:"gte=0"`
	Arrival          time.Time `json:"arrival"`
}

// BidRequest is a shipper's price bid on a contract inquiry.
type BidRequest struct {
	Shipper  string  `json:"shipper" validate:"required,email"`
	BidPrice float64 `json:"bidPrice" validate:"gt=0"`
}

// Bid is the wire view of a recorded bid.
type Bid struct {
	Shipper  string  `json:"shipper"`
	BidPrice float64 `json:"bidPrice"`
}

// ContractResponse is the wire view of a shipping contract.
type ContractResponse struct {
	ID               string    `json:"id" validate:"required,uuid"`
	ProductID        string    `json:"productId" validate:"required,uuid"`
	Supplier         string    `json:"supplier"`
	Shipper          string    `json:"shipper,omitempty"`
	Retailer         string    `json:"retailer"`
	UnitCount        int       `json:"unitCount"`
	UnitPrice        float64   `json:"unitPrice"`
	MaxPrice         float64   `json:"maxPrice"`
	MinTemperature   float64   `json:"minTemperature"`
	MaxTemperature   float64   `json:"maxTemperature"`
	MinPenaltyFactor float64   `json:"minPenaltyFactor"`
	MaxPenaltyFactor float64   `json:"maxPenaltyFactor"`
	Arrival          time.Time `json:"arrival"`
	State            string    `json:"state" validate:"required,contract_state"`
	Bids             []Bid     `json:"bids,omitempty"`
}

// CloseResponse reports the state an auction or inquiry landed in after closing.
type CloseResponse struct {
	ID    string `json:"id" validate:"required,uuid"`
	State string `json:"state" validate:"required"`
}

// ShipmentRequest creates a shipment for a contract. A zero unit count defaults to the
// contract's unit count.
type ShipmentRequest struct {
	ContractID string `json:"contractId" validate:"required,uuid"`
	UnitCount  int    `json:"unitCount" validate:"gte=0"`
}

// ShipmentResponse is the wire view of a shipment.
type ShipmentResponse struct {
	ID         string    `json:"id" validate:"required,uuid"`
	ContractID string    `json:"contractId" validate:"required,uuid"`
	ProductID  string    `json:"productId" validate:"required,uuid"`
	UnitCount  int       `json:"unitCount"`
	Status     string    `json:"status" validate:"required,shipment_status"`
	Readings   []float64 `json:"readings,omitempty"`
	Arrival    time.Time `json:"arrival"`
}

// TemperatureRequest appends a sensor sample to a shipment's temperature log.
type TemperatureRequest struct {
	Centigrade float64 `json:"centigrade"`
}

// ArrivalRequest marks a shipment arrived. A zero arrival defaults to the current time.
type ArrivalRequest struct {
	Arrival time.Time `json:"arrival"`
}

// SettlementResponse reports the payout of a delivered shipment.
type SettlementResponse struct {
	ShipmentID     string  `json:"shipmentId" validate:"required,uuid"`
	UnitPrice      float64 `json:"unitPrice"`
	Deviation      float64 `json:"deviation"`
	PenaltyFactor  float64 `json:"penaltyFactor"`
	EffectivePrice float64 `json:"effectivePrice"`
	UnitCount      int     `json:"unitCount"`
	Total          float64 `json:"total"`
}

// EventResponse is the wire view of an audit record.
type EventResponse struct {
	ID         string    `json:"id" validate:"required,uuid"`
	Time       time.Time `json:"time"`
	Operation  string    `json:"operation"`
	EntityKind string    `json:"entityKind"`
	EntityID   string    `json:"entityId"`
	Outcome    string    `json:"outcome"`
}
