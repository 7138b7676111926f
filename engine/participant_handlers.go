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

	"github.com/coldtrack/coldtrack/engine/constants"
	"github.com/coldtrack/coldtrack/engine/participant"
	"github.com/coldtrack/coldtrack/engine/shared"
	"github.com/coldtrack/coldtrack/logging"
)

func participantResponse(biz *participant.Business) shared.ParticipantResponse {
	return shared.ParticipantResponse{
		Email:   biz.GetEmail(),
		Role:    biz.GetRole().String(),
		Address: biz.GetAddress(),
		Balance: biz.GetBalance(),
	}
}

func (ch coldHandlers) participantRegisterHandler(w http.ResponseWriter, req *http.Request) error {
	logger := logging.Extract(req.Context())
	participantReq, err := shared.DecodeValid[shared.ParticipantRequest](req)
	if err != nil {
		return badRequest("invalid request body")
	}
	role, err := constants.ParseRole(participantReq.Role)
	if err != nil {
		return badRequest(err.Error())
	}
	logger.Debug("Got participant registration", "email", participantReq.Email, "role", participantReq.Role)

	biz, err := ch.engine.RegisterParticipant(
		req.Context(),
		participantReq.Email,
		role,
		participantReq.Address,
		participantReq.Balance,
	)
	if err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusCreated, participantResponse(biz))
}

func (ch coldHandlers) participantStateHandler(w http.ResponseWriter, req *http.Request) error {
	email := req.PathValue("email")
	if email == "" {
		return badRequest("missing participant email")
	}
	biz, err := ch.store.GetParticipantR(req.Context(), email)
	if err != nil {
		return wrapFetch(err, email)
	}
	return shared.EncodeValid(w, req, http.StatusOK, participantResponse(biz))
}

func (ch coldHandlers) eventListHandler(w http.ResponseWriter, req *http.Request) error {
	records, err := ch.store.GetEvents(req.Context())
	if err != nil {
		return err
	}
	resp := make([]shared.EventResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, shared.EventResponse{
			ID:         rec.ID.String(),
			Time:       rec.Time,
			Operation:  rec.Operation,
			EntityKind: rec.EntityKind,
			EntityID:   rec.EntityID,
			Outcome:    rec.Outcome,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return encodeList(w, resp)
}
