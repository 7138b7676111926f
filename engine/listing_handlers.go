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

	"github.com/coldtrack/coldtrack/engine/listing"
	"github.com/coldtrack/coldtrack/engine/shared"
	"github.com/coldtrack/coldtrack/logging"
)

func productResponse(product *listing.Product) shared.ProductResponse {
	offers := product.GetOffers()
	wireOffers := make([]shared.Offer, 0, len(offers))
	for _, o := range offers {
		wireOffers = append(wireOffers, shared.Offer{Retailer: o.Retailer, BidPrice: o.BidPrice})
	}
	return shared.ProductResponse{
		ID:           product.GetID().String(),
		ProductType:  product.GetProductType(),
		UnitCount:    product.GetUnitCount(),
		ReservePrice: product.GetReservePrice(),
		State:        product.GetState().String(),
		Owner:        product.GetOwner(),
		Possessor:    product.GetPossessor(),
		Buyer:        product.GetBuyer(),
		Offers:       wireOffers,
	}
}

func (ch coldHandlers) productCreateHandler(w http.ResponseWriter, req *http.Request) error {
	logger := logging.Extract(req.Context())
	productReq, err := shared.DecodeValid[shared.ProductRequest](req)
	if err != nil {
		return badRequest("invalid request body")
	}
	logger.Debug("Got product creation", "owner", productReq.Owner, "type", productReq.ProductType)

	product, err := ch.engine.CreateProduct(
		req.Context(),
		productReq.Owner,
		productReq.ProductType,
		productReq.UnitCount,
		productReq.ReservePrice,
	)
	if err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusCreated, productResponse(product))
}

func (ch coldHandlers) productStateHandler(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req)
	if err != nil {
		return err
	}
	product, err := ch.store.GetProductR(req.Context(), id)
	if err != nil {
		return wrapFetch(err, id.String())
	}
	return shared.EncodeValid(w, req, http.StatusOK, productResponse(product))
}

func (ch coldHandlers) productListHandler(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req)
	if err != nil {
		return err
	}
	product, err := ch.engine.ListProduct(req.Context(), id)
	if err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusOK, productResponse(product))
}

func (ch coldHandlers) productOfferHandler(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req)
	if err != nil {
		return err
	}
	offerReq, err := shared.DecodeValid[shared.OfferRequest](req)
	if err != nil {
		return badRequest("invalid request body")
	}

	if err := ch.engine.SubmitOffer(req.Context(), id, offerReq.Retailer, offerReq.BidPrice); err != nil {
		return err
	}
	w.WriteHeader(http.StatusAccepted)
	return nil
}

func (ch coldHandlers) productCloseHandler(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req)
	if err != nil {
		return err
	}
	state, err := ch.engine.CloseBidding(req.Context(), id)
	if err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusOK, shared.CloseResponse{
		ID:    id.String(),
		State: state.String(),
	})
}
