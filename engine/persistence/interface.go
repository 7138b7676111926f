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

// Package persistence contains the storage interfaces for the ledger entities. It also
// contains shared code for the implementation packages.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/coldtrack/coldtrack/engine/contract"
	"github.com/coldtrack/coldtrack/engine/events"
	"github.com/coldtrack/coldtrack/engine/listing"
	"github.com/coldtrack/coldtrack/engine/participant"
	"github.com/coldtrack/coldtrack/engine/shipment"
)

// ErrNotFound is returned when a referenced entity identifier does not resolve.
var ErrNotFound = errors.New("not found")

// StorageProvider is an interface that combines the *Saver interfaces.
type StorageProvider interface {
	ProductSaver
	ContractSaver
	ShipmentSaver
	ParticipantSaver
	events.Sink
}

// ProductSaver is an interface for storing/retrieving products.
// It supports both read-only and read/write versions. Read-only is enforced at save time.
// It is up to the implementer to handle locking for the read/write instances, a RW get
// acquires an entity specific lock that the matching put releases.
type ProductSaver interface {
	// GetProductR gets a read-only version of a product.
	GetProductR(ctx context.Context, id uuid.UUID) (*listing.Product, error)
	// GetProductRW gets a read/write version of a product, acquiring its lock.
	GetProductRW(ctx context.Context, id uuid.UUID) (*listing.Product, error)
	// PutProduct saves a product and releases its lock. Saving a read-only product is an
	// error.
	PutProduct(ctx context.Context, product *listing.Product) error
	// ReleaseProduct will release any lock the product has without saving.
	ReleaseProduct(ctx context.Context, product *listing.Product) error
}

// ContractSaver is an interface for storing/retrieving shipping contracts.
// The read/write semantics are the same as those for products.
type ContractSaver interface {
	GetContractR(ctx context.Context, id uuid.UUID) (*contract.Contract, error)
	GetContractRW(ctx context.Context, id uuid.UUID) (*contract.Contract, error)
	PutContract(ctx context.Context, contract *contract.Contract) error
	ReleaseContract(ctx context.Context, contract *contract.Contract) error
}

// ShipmentSaver is an interface for storing/retrieving shipments.
// The read/write semantics are the same as those for products.
type ShipmentSaver interface {
	GetShipmentR(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error)
	GetShipmentRW(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error)
	PutShipment(ctx context.Context, shipment *shipment.Shipment) error
	ReleaseShipment(ctx context.Context, shipment *shipment.Shipment) error
}

// ParticipantSaver is an interface for storing/retrieving business participants, keyed by
// email. The read/write semantics are the same as those for products.
type ParticipantSaver interface {
	GetParticipantR(ctx context.Context, email string) (*participant.Business, error)
	GetParticipantRW(ctx context.Context, email string) (*participant.Business, error)
	PutParticipant(ctx context.Context, business *participant.Business) error
	ReleaseParticipant(ctx context.Context, business *participant.Business) error
}
