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

// Package engine manages the cold-chain business network. It combines the lifecycle
// engine with the HTTP submission boundary.
package engine

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/coldtrack/coldtrack/engine/lifecycle"
	"github.com/coldtrack/coldtrack/engine/persistence"
)

type coldHandlers struct {
	engine *lifecycle.Engine
	store  persistence.StorageProvider
}

// GetRoutes returns the submission boundary routes. Writes go through the lifecycle
// engine, reads go straight to the store.
func GetRoutes(engine *lifecycle.Engine, store persistence.StorageProvider) http.Handler {
	mux := http.NewServeMux()
	handleFunc := func(pattern string, handler http.Handler) {
		mux.Handle(pattern, handler)
	}

	ch := coldHandlers{
		engine: engine,
		store:  store,
	}
	// Participant endpoints
	setupParticipantEndpoints(handleFunc, ch)

	// Auction endpoints
	setupListingEndpoints(handleFunc, ch)

	// Inquiry endpoints
	setupContractEndpoints(handleFunc, ch)

	// Transit endpoints
	setupShipmentEndpoints(handleFunc, ch)

	return mux
}

func setupParticipantEndpoints(handleFunc func(pattern string, handler http.Handler), ch coldHandlers) {
	handleFunc("POST /participants", WrapHandlerWithError(ch.participantRegisterHandler))
	handleFunc("GET /participants/{email}", WrapHandlerWithError(ch.participantStateHandler))
	handleFunc("GET /events", WrapHandlerWithError(ch.eventListHandler))
}

func setupListingEndpoints(handleFunc func(pattern string, handler http.Handler), ch coldHandlers) {
	handleFunc("POST /products", WrapHandlerWithError(ch.productCreateHandler))
	handleFunc("GET /products/{id}", WrapHandlerWithError(ch.productStateHandler))
	handleFunc("POST /products/{id}/list", WrapHandlerWithError(ch.productListHandler))
	handleFunc("POST /products/{id}/offers", WrapHandlerWithError(ch.productOfferHandler))
	handleFunc("POST /products/{id}/close", WrapHandlerWithError(ch.productCloseHandler))
}

func setupContractEndpoints(handleFunc func(pattern string, handler http.Handler), ch coldHandlers) {
	handleFunc("POST /contracts", WrapHandlerWithError(ch.contractCreateHandler))
	handleFunc("GET /contracts/{id}", WrapHandlerWithError(ch.contractStateHandler))
	handleFunc("POST /contracts/{id}/bids", WrapHandlerWithError(ch.contractBidHandler))
	handleFunc("POST /contracts/{id}/close", WrapHandlerWithError(ch.contractCloseHandler))
}

func setupShipmentEndpoints(handleFunc func(pattern string, handler http.Handler), ch coldHandlers) {
	handleFunc("POST /shipments", WrapHandlerWithError(ch.shipmentCreateHandler))
	handleFunc("GET /shipments/{id}", WrapHandlerWithError(ch.shipmentStateHandler))
	handleFunc("POST /shipments/{id}/temperature", WrapHandlerWithError(ch.shipmentTemperatureHandler))
	handleFunc("POST /shipments/{id}/dock", WrapHandlerWithError(ch.shipmentDockHandler))
	handleFunc("POST /shipments/{id}/pickup", WrapHandlerWithError(ch.shipmentPickUpHandler))
	handleFunc("POST /shipments/{id}/handoff", WrapHandlerWithError(ch.shipmentHandOffHandler))
	handleFunc("POST /shipments/{id}/arrive", WrapHandlerWithError(ch.shipmentArriveHandler))
	handleFunc("POST /shipments/{id}/received", WrapHandlerWithError(ch.shipmentReceivedHandler))
}

// pathID parses the {id} path value into a UUID.
func pathID(req *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(req.PathValue("id"))
	if err != nil {
		return uuid.UUID{}, badRequest("invalid entity ID in path")
	}
	return id, nil
}
