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

package engine

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/coldtrack/coldtrack/engine/shared"
	"github.com/coldtrack/coldtrack/engine/shipment"
	"github.com/coldtrack/coldtrack/logging"
)

func shipmentResponse(shp *shipment.Shipment) shared.ShipmentResponse {
	return shared.ShipmentResponse{
		ID:         shp.GetID().String(),
		ContractID: shp.GetContractID().String(),
		ProductID:  shp.GetProductID().String(),
		UnitCount:  shp.GetUnitCount(),
		Status:     shp.GetStatus().String(),
		Readings:   shp.GetReadings(),
		Arrival:    shp.GetArrival(),
	}
}

func (ch coldHandlers) shipmentCreateHandler(w http.ResponseWriter, req *http.Request) error {
	logger := logging.Extract(req.Context())
	shipmentReq, err := shared.DecodeValid[shared.ShipmentRequest](req)
	if err != nil {
		return badRequest("invalid request body")
	}
	contractID, err := uuid.Parse(shipmentReq.ContractID)
	if err != nil {
		return badRequest("invalid contract ID")
	}
	logger.Debug("Got shipment creation", "contractID", shipmentReq.ContractID)

	shp, err := ch.engine.CreateShipment(req.Context(), contractID, shipmentReq.UnitCount)
	if err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusCreated, shipmentResponse(shp))
}

func (ch coldHandlers) shipmentStateHandler(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req)
	if err != nil {
		return err
	}
	shp, err := ch.store.GetShipmentR(req.Context(), id)
	if err != nil {
		return wrapFetch(err, id.String())
	}
	return shared.EncodeValid(w, req, http.StatusOK, shipmentResponse(shp))
}

func (ch coldHandlers) shipmentTemperatureHandler(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req)
	if err != nil {
		return err
	}
	tempReq, err := shared.DecodeValid[shared.TemperatureRequest](req)
	if err != nil {
		return badRequest("invalid request body")
	}

	if err := ch.engine.RecordTemperature(req.Context(), id, tempReq.Centigrade); err != nil {
		return err
	}
	w.WriteHeader(http.StatusAccepted)
	return nil
}

func (ch coldHandlers) shipmentDockHandler(w http.ResponseWriter, req *http.Request) error {
	return ch.advanceHandler(w, req, ch.engine.Dock)
}

func (ch coldHandlers) shipmentPickUpHandler(w http.ResponseWriter, req *http.Request) error {
	return ch.advanceHandler(w, req, ch.engine.PickUp)
}

func (ch coldHandlers) shipmentHandOffHandler(w http.ResponseWriter, req *http.Request) error {
	return ch.advanceHandler(w, req, ch.engine.HandOff)
}

func (ch coldHandlers) shipmentArriveHandler(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req)
	if err != nil {
		return err
	}
	arrivalReq, err := shared.DecodeValid[shared.ArrivalRequest](req)
	if err != nil {
		return badRequest("invalid request body")
	}
	arrival := arrivalReq.Arrival
	if arrival.IsZero() {
		arrival = time.Now()
	}

	if err := ch.engine.Arrive(req.Context(), id, arrival); err != nil {
		return err
	}
	w.WriteHeader(http.StatusOK)
	return nil
}

func (ch coldHandlers) shipmentReceivedHandler(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req)
	if err != nil {
		return err
	}
	settlement, err := ch.engine.ShipmentReceived(req.Context(), id)
	if err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusOK, shared.SettlementResponse{
		ShipmentID:     id.String(),
		UnitPrice:      settlement.UnitPrice,
		Deviation:      settlement.Deviation,
		PenaltyFactor:  settlement.PenaltyFactor,
		EffectivePrice: settlement.EffectivePrice,
		UnitCount:      settlement.UnitCount,
		Total:          settlement.Total,
	})
}

// advanceHandler handles the bodyless shipment status transitions.
func (ch coldHandlers) advanceHandler(
	w http.ResponseWriter,
	req *http.Request,
	op func(ctx context.Context, shipmentID uuid.UUID) error,
) error {
	id, err := pathID(req)
	if err != nil {
		return err
	}
	if err := op(req.Context(), id); err != nil {
		return err
	}
	w.WriteHeader(http.StatusOK)
	return nil
}
