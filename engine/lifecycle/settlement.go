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

	"github.com/google/uuid"

	"github.com/coldtrack/coldtrack/engine/contract"
	"github.com/coldtrack/coldtrack/engine/shipment"
	"github.com/coldtrack/coldtrack/logging"
)

// Settlement summarizes a delivered shipment's payout. The penalty factor reflects the
// worst excursion of the temperature log outside the contract's agreed range.
type Settlement struct {
	UnitPrice      float64
	Deviation      float64
	PenaltyFactor  float64
	EffectivePrice float64
	UnitCount      int
	Total          float64
}

// ShipmentReceived marks the shipment delivered and settles the contract. The product's
// owner and possessor both become the retailer, and the settlement total moves from the
// retailer's balance to the supplier's.
func (e *Engine) ShipmentReceived(ctx context.Context, shipmentID uuid.UUID) (*Settlement, error) {
	ctx, logger := logging.InjectLabels(ctx, "operation", "ShipmentReceived", "shipmentID", shipmentID.String())
	shp, err := e.store.GetShipmentRW(ctx, shipmentID)
	if err != nil {
		return nil, wrapFetch(err, shipmentID.String())
	}
	if shp.GetStatus() != shipment.StatusArrived {
		_ = e.store.ReleaseShipment(ctx, shp)
		return nil, invalidState(shipmentID.String(), shp.GetStatus().String(), "shipment has not arrived")
	}

	con, err := e.store.GetContractR(ctx, shp.GetContractID())
	if err != nil {
		_ = e.store.ReleaseShipment(ctx, shp)
		return nil, wrapFetch(err, shp.GetContractID().String())
	}
	settlement := computeSettlement(con, shp.GetUnitCount(), shp.GetReadings())

	product, err := e.store.GetProductRW(ctx, shp.GetProductID())
	if err != nil {
		_ = e.store.ReleaseShipment(ctx, shp)
		return nil, wrapFetch(err, shp.GetProductID().String())
	}
	retailer, err := e.store.GetParticipantRW(ctx, con.GetRetailer())
	if err != nil {
		_ = e.store.ReleaseProduct(ctx, product)
		_ = e.store.ReleaseShipment(ctx, shp)
		return nil, wrapFetch(err, con.GetRetailer())
	}
	supplier, err := e.store.GetParticipantRW(ctx, con.GetSupplier())
	if err != nil {
		_ = e.store.ReleaseParticipant(ctx, retailer)
		_ = e.store.ReleaseProduct(ctx, product)
		_ = e.store.ReleaseShipment(ctx, shp)
		return nil, wrapFetch(err, con.GetSupplier())
	}

	if err := shp.SetStatus(shipment.StatusDelivered); err != nil {
		_ = e.store.ReleaseParticipant(ctx, supplier)
		_ = e.store.ReleaseParticipant(ctx, retailer)
		_ = e.store.ReleaseProduct(ctx, product)
		_ = e.store.ReleaseShipment(ctx, shp)
		return nil, err
	}
	product.SetOwner(con.GetRetailer())
	product.SetPossessor(con.GetRetailer())
	retailer.Debit(settlement.Total)
	supplier.Credit(settlement.Total)

	if err := e.store.PutShipment(ctx, shp); err != nil {
		return nil, err
	}
	if err := e.store.PutProduct(ctx, product); err != nil {
		return nil, err
	}
	if err := e.store.PutParticipant(ctx, retailer); err != nil {
		return nil, err
	}
	if err := e.store.PutParticipant(ctx, supplier); err != nil {
		return nil, err
	}

	logger.Info("Shipment delivered and settled",
		"total", settlement.Total,
		"penaltyFactor", settlement.PenaltyFactor,
		"deviation", settlement.Deviation,
	)
	e.emit("ShipmentReceived", "shipment", shipmentID.String(), shipment.StatusDelivered.String())
	return settlement, nil
}

// computeSettlement prices a delivered shipment against the contract's temperature terms.
func computeSettlement(con *contract.Contract, unitCount int, readings []float64) *Settlement {
	deviation := worstDeviation(readings, con.GetMinTemperature(), con.GetMaxTemperature())
	factor := penaltyFactor(deviation, con.GetMinPenaltyFactor(), con.GetMaxPenaltyFactor())
	effective := con.GetUnitPrice() * (1 - factor)
	if effective < 0 {
		effective = 0
	}
	return &Settlement{
		UnitPrice:      con.GetUnitPrice(),
		Deviation:      deviation,
		PenaltyFactor:  factor,
		EffectivePrice: effective,
		UnitCount:      unitCount,
		Total:          effective * float64(unitCount),
	}
}

// worstDeviation returns the largest distance any reading strayed outside the agreed
// range, or 0 when every reading was within range. An empty log counts as in-range.
func worstDeviation(readings []float64, minT, maxT float64) float64 {
	worst := 0.0
	for _, r := range readings {
		var d float64
		switch {
		case r < minT:
			d = minT - r
		case r > maxT:
			d = r - maxT
		}
		if d > worst {
			worst = d
		}
	}
	return worst
}

// penaltyFactor scales the minimum penalty factor by the deviation and clamps the result
// between the contract's minimum and maximum factors. A zero deviation carries no penalty.
func penaltyFactor(deviation, minFactor, maxFactor float64) float64 {
	if deviation <= 0 {
		return 0
	}
	factor := minFactor * deviation
	if factor < minFactor {
		factor = minFactor
	}
	if factor > maxFactor {
		factor = maxFactor
	}
	return factor
}
