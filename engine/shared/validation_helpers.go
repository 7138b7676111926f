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

package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/coldtrack/coldtrack/logging"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterValidators(validate); err != nil {
		panic(err)
	}
}

func ParticipantRole(fl validator.FieldLevel) bool {
	roles := []string{
		"SUPPLIER",
		"SHIPPER",
		"RETAILER",
	}
	return slices.Contains(roles, fl.Field().String())
}

func ListingState(fl validator.FieldLevel) bool {
	states := []string{
		"CREATED",
		"FOR_SALE",
		"RESERVE_NOT_MET",
		"SOLD",
	}
	return slices.Contains(states, fl.Field().String())
}

func ContractState(fl validator.FieldLevel) bool {
	states := []string{
		"INQUIRY",
		"RESERVE_NOT_MET",
		"READY_FOR_PICKUP",
	}
	return slices.Contains(states, fl.Field().String())
}

func ShipmentStatus(fl validator.FieldLevel) bool {
	states := []string{
		"CREATED",
		"DOCKED",
		"IN_TRANSIT",
		"ARRIVED",
		"DELIVERED",
	}
	return slices.Contains(states, fl.Field().String())
}

func EncodeValid[T any](w http.ResponseWriter, r *http.Request, status int, v T) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := validate.Struct(v); err != nil {
		return handleValidationError(err, logging.Extract(r.Context()))
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func DecodeValid[T any](r *http.Request) (T, error) {
	defer r.Body.Close()
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("decode json: %w", err)
	}

	if err := validate.Struct(v); err != nil {
		return v, handleValidationError(err, logging.Extract(r.Context()))
	}

	return v, nil
}

func handleValidationError(err error, logger *slog.Logger) error {
	// This should rarely if ever happen, but guard for it anyway.
	if _, ok := err.(*validator.InvalidValidationError); ok { //nolint:errorlint
		logger.Error("Invalid validation", "err", err)
		return fmt.Errorf("Invalid Validation")
	}

	for _, err := range err.(validator.ValidationErrors) { //nolint:errorlint,forcetypeassert
		logger.Error(
			"Validation error",
			"Namespace", err.Namespace(),
			"Field", err.Field(),
			"Tag", err.Tag(),
			"Kind", err.Kind(),
			"Value", err.Value(),
			"Param", err.Param(),
		)
		return fmt.Errorf("Validation Error")
	}
	logger.Error("Unknown error", "err", err)
	return err
}

// RegisterValidators registers all the validators of this package.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("participant_role", ParticipantRole); err != nil {
		return err
	}
	if err := v.RegisterValidation("listing_state", ListingState); err != nil {
		return err
	}
	if err := v.RegisterValidation("contract_state", ContractState); err != nil {
		return err
	}
	return v.RegisterValidation("shipment_status", ShipmentStatus)
}
