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
	"net/http"

	"github.com/google/uuid"

	"github.com/coldtrack/coldtrack/engine/contract"
	"github.com/coldtrack/coldtrack/engine/shared"
	"github.com/coldtrack/coldtrack/logging"
)

func contractResponse(con *contract.Contract) shared.ContractResponse {
	bids := con.GetBids()
	wireBids := make([]shared.Bid, 0, len(bids))
	for _, b := range bids {
		wireBids = append(wireBids, shared.Bid{Shipper: b.Shipper, BidPrice: b.BidPrice})
	}
	return shared.ContractResponse{
		ID:               con.GetID().String(),
		ProductID:        con.GetProductID().String(),
		Supplier:         con.GetSupplier(),
		Shipper:          con.GetShipper(),
		Retailer:         con.GetRetailer(),
		UnitCount:        con.GetUnitCount(),
		UnitPrice:        con.GetUnitPrice(),
		MaxPrice:         con.GetMaxPrice(),
		MinTemperature:   con.GetMinTemperature(),
		MaxTemperature:   con.GetMaxTemperature(),
		MinPenaltyFactor: con.GetMinPenaltyFactor(),
		MaxPenaltyFactor: con.GetMaxPenaltyFactor(),
		Arrival:          con.GetArrival(),
		State:            con.GetState().String(),
		Bids:             wireBids,
	}
}

func (ch coldHandlers) contractCreateHandler(w http.ResponseWriter, req *http.Request) error {
	logger := logging.Extract(req.Context())
	contractReq, err := shared.DecodeValid[shared.ContractRequest](req)
	if err != nil {
		return badRequest("invalid request body")
	}
	productID, err := uuid.Parse(contractReq.ProductID)
	if err != nil {
		return badRequest("invalid product ID")
	}
	logger.Debug("Got contract creation", "productID", contractReq.ProductID)

	con, err := ch.engine.CreateContract(req.Context(), productID, contract.Terms{
		UnitCount:        contractReq.UnitCount,
		MaxPrice:         contractReq.MaxPrice,
		MinTemperature:   contractReq.MinTemperature,
		MaxTemperature:   contractReq.MaxTemperature,
		MinPenaltyFactor: contractReq.MinPenaltyFactor,
		MaxPenaltyFactor: contractReq.MaxPenaltyFactor,
		Arrival:          contractReq.Arrival,
	})
	if err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusCreated, contractResponse(con))
}

func (ch coldHandlers) contractStateHandler(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req)
	if err != nil {
		return err
	}
	con, err := ch.store.GetContractR(req.Context(), id)
	if err != nil {
		return wrapFetch(err, id.String())
	}
	return shared.EncodeValid(w, req, http.StatusOK, contractResponse(con))
}

func (ch coldHandlers) contractBidHandler(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req)
	if err != nil {
		return err
	}
	bidReq, err := shared.DecodeValid[shared.BidRequest](req)
	if err != nil {
		return badRequest("invalid request body")
	}

	if err := ch.engine.SubmitBid(req.Context(), id, bidReq.Shipper, bidReq.BidPrice); err != nil {
		return err
	}
	w.WriteHeader(http.StatusAccepted)
	return nil
}

func (ch coldHandlers) contractCloseHandler(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req)
	if err != nil {
		return err
	}
	state, err := ch.engine.CloseInquiry(req.Context(), id)
	if err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusOK, shared.CloseResponse{
		ID:    id.String(),
		State: state.String(),
	})
}
