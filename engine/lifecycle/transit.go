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
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/coldtrack/coldtrack/engine/contract"
	"github.com/coldtrack/coldtrack/engine/shipment"
	"github.com/coldtrack/coldtrack/logging"
)

// CreateShipment creates a shipment for a contract that is ready for pickup. A zero
// unitCount defaults to the contract's unit count.
func (e *Engine) CreateShipment(
	ctx context.Context,
	contractID uuid.UUID,
	unitCount int,
) (*shipment.Shipment, error) {
	ctx, logger := logging.InjectLabels(ctx, "operation", "CreateShipment", "contractID", contractID.String())
	if unitCount < 0 {
		return nil, invalidRange(contractID.String(), "unit count must not be negative")
	}

	con, err := e.store.GetContractR(ctx, contractID)
	if err != nil {
		return nil, wrapFetch(err, contractID.String())
	}
	if con.GetState() != contract.StateReadyForPickup {
		return nil, invalidState(contractID.String(), con.GetState().String(), "contract is not ready for pickup")
	}
	if unitCount == 0 {
		unitCount = con.GetUnitCount()
	}

	shp := shipment.New(uuid.New(), contractID, con.GetProductID(), unitCount)
	if err := e.store.PutShipment(ctx, shp); err != nil {
		return nil, err
	}
	logger.Info("Shipment created", shp.GetLogFields("")...)
	e.emit("CreateShipment", "shipment", shp.GetID().String(), shp.GetStatus().String())
	return shp, nil
}

// RecordTemperature appends a sensor sample to a shipment's temperature log. The log is
// append-only and recording never changes the shipment status.
func (e *Engine) RecordTemperature(ctx context.Context, shipmentID uuid.UUID, centigrade float64) error {
	ctx, logger := logging.InjectLabels(ctx,
		"operation", "RecordTemperature",
		"shipmentID", shipmentID.String(),
	)
	shp, err := e.store.GetShipmentRW(ctx, shipmentID)
	if err != nil {
		return wrapFetch(err, shipmentID.String())
	}
	if shp.GetStatus().Terminal() {
		_ = e.store.ReleaseShipment(ctx, shp)
		return invalidState(shipmentID.String(), shp.GetStatus().String(), "shipment has been delivered")
	}

	if err := shp.AddReading(centigrade); err != nil {
		_ = e.store.ReleaseShipment(ctx, shp)
		return err
	}
	if err := e.store.PutShipment(ctx, shp); err != nil {
		return err
	}
	logger.Debug("Temperature recorded", "centigrade", centigrade)
	e.emit("RecordTemperature", "shipment", shipmentID.String(), shp.GetStatus().String())
	return nil
}

// Dock marks the shipment as docked at the supplier, moving it from CREATED to DOCKED.
func (e *Engine) Dock(ctx context.Context, shipmentID uuid.UUID) error {
	return e.advance(ctx, "Dock", shipmentID, shipment.StatusCreated, shipment.StatusDocked, nil)
}

// PickUp marks the shipment as picked up by the shipper, moving it from DOCKED to
// IN_TRANSIT. Possession of the product passes to the shipper.
func (e *Engine) PickUp(ctx context.Context, shipmentID uuid.UUID) error {
	return e.advance(ctx, "PickUp", shipmentID, shipment.StatusDocked, shipment.StatusInTransit,
		func(ctx context.Context, shp *shipment.Shipment) error {
			return e.transferPossession(ctx, shp, possessionShipper)
		})
}

// HandOff transfers possession of the product from the shipper to the retailer while the
// shipment is in transit. The shipment status does not change, the status transition to
// ARRIVED is Arrive's.
func (e *Engine) HandOff(ctx context.Context, shipmentID uuid.UUID) error {
	ctx, logger := logging.InjectLabels(ctx, "operation", "HandOff", "shipmentID", shipmentID.String())
	shp, err := e.store.GetShipmentR(ctx, shipmentID)
	if err != nil {
		return wrapFetch(err, shipmentID.String())
	}
	if shp.GetStatus() != shipment.StatusInTransit {
		return invalidState(shipmentID.String(), shp.GetStatus().String(), "shipment is not in transit")
	}

	if err := e.transferPossession(ctx, shp, possessionRetailer); err != nil {
		return err
	}
	logger.Info("Shipment handed off")
	e.emit("HandOff", "shipment", shipmentID.String(), shp.GetStatus().String())
	return nil
}

// Arrive marks the shipment as arrived, moving it from IN_TRANSIT to ARRIVED and
// recording the arrival time.
func (e *Engine) Arrive(ctx context.Context, shipmentID uuid.UUID, arrival time.Time) error {
	return e.advance(ctx, "Arrive", shipmentID, shipment.StatusInTransit, shipment.StatusArrived,
		func(_ context.Context, shp *shipment.Shipment) error {
			shp.SetArrival(arrival)
			return nil
		})
}

type possessionTarget uint8

const (
	possessionShipper possessionTarget = iota
	possessionRetailer
)

// transferPossession moves the product referenced by the shipment into the hands of the
// contract's shipper or retailer.
func (e *Engine) transferPossession(
	ctx context.Context,
	shp *shipment.Shipment,
	target possessionTarget,
) error {
	con, err := e.store.GetContractR(ctx, shp.GetContractID())
	if err != nil {
		return wrapFetch(err, shp.GetContractID().String())
	}
	holder := con.GetShipper()
	if target == possessionRetailer {
		holder = con.GetRetailer()
	}

	product, err := e.store.GetProductRW(ctx, shp.GetProductID())
	if err != nil {
		return wrapFetch(err, shp.GetProductID().String())
	}
	product.SetPossessor(holder)
	return e.store.PutProduct(ctx, product)
}

// advance moves a shipment from one status to the next, running the optional extra
// mutation between the status check and the save. All validation happens before the first
// write.
func (e *Engine) advance(
	ctx context.Context,
	operation string,
	shipmentID uuid.UUID,
	from, to shipment.Status,
	extra func(context.Context, *shipment.Shipment) error,
) error {
	ctx, logger := logging.InjectLabels(ctx, "operation", operation, "shipmentID", shipmentID.String())
	shp, err := e.store.GetShipmentRW(ctx, shipmentID)
	if err != nil {
		return wrapFetch(err, shipmentID.String())
	}
	if shp.GetStatus() != from {
		_ = e.store.ReleaseShipment(ctx, shp)
		return invalidState(shipmentID.String(), shp.GetStatus().String(), "shipment is not "+from.String())
	}

	if err := shp.SetStatus(to); err != nil {
		_ = e.store.ReleaseShipment(ctx, shp)
		return err
	}
	if extra != nil {
		if err := extra(ctx, shp); err != nil {
			_ = e.store.ReleaseShipment(ctx, shp)
			return err
		}
	}
	if err := e.store.PutShipment(ctx, shp); err != nil {
		return err
	}
	logger.Info("Shipment status advanced", "from", from.String(), "to", to.String())
	e.emit(operation, "shipment", shipmentID.String(), to.String())
	return nil
}
