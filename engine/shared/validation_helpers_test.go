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

package shared_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldtrack/coldtrack/engine/shared"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New(validator.WithRequiredStructEnabled())
	require.NoError(t, shared.RegisterValidators(v))
	return v
}

func decodeReq[T any](t *testing.T, body string) (T, error) {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	return shared.DecodeValid[T](req)
}

func TestDecodeParticipantRequest(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		assertion assert.ErrorAssertionFunc
	}{
		{
			name:      "valid",
			body:      `{"email":"a@example.com","role":"SUPPLIER","balance":100}`,
			assertion: assert.NoError,
		},
		{
			name:      "missing email",
			body:      `{"role":"SUPPLIER"}`,
			assertion: assert.Error,
		},
		{
			name:      "bad email",
			body:      `{"email":"not-an-email","role":"SUPPLIER"}`,
			assertion: assert.Error,
		},
		{
			name:      "unknown role",
			body:      `{"email":"a@example.com","role":"WHOLESALER"}`,
			assertion: assert.Error,
		},
		{
			name:      "negative balance",
			body:      `{"email":"a@example.com","role":"SUPPLIER","balance":-1}`,
			assertion: assert.Error,
		},
		{
			name:      "not json",
			body:      `{{{`,
			assertion: assert.Error,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeReq[shared.ParticipantRequest](t, tt.body)
			tt.assertion(t, err)
		})
	}
}

func TestDecodeOfferRequest(t *testing.T) {
	offer, err := decodeReq[shared.OfferRequest](t, `{"retailer":"r@example.com","bidPrice":60}`)
	require.NoError(t, err)
	assert.Equal(t, 60.0, offer.BidPrice)

	_, err = decodeReq[shared.OfferRequest](t, `{"retailer":"r@example.com","bidPrice":0}`)
	assert.Error(t, err)
}

func TestDecodeContractRequest(t *testing.T) {
	body := `{"productId":"7df0c972-5979-4872-aecd-88ab934a46e9","unitCount":100,"maxPrice":45,` +
		`"minTemperature":-2,"maxTemperature":8,"minPenaltyFactor":0.1,"maxPenaltyFactor":0.5}`
	con, err := decodeReq[shared.ContractRequest](t, body)
	require.NoError(t, err)
	assert.Equal(t, -2.0, con.MinTemperature)

	_, err = decodeReq[shared.ContractRequest](t, `{"productId":"not-a-uuid","unitCount":100,"maxPrice":45}`)
	assert.Error(t, err)
}

func TestStateValidators(t *testing.T) {
	type wrapper struct {
		Listing  string `validate:"omitempty,listing_state"`
		Contract string `validate:"omitempty,contract_state"`
		Shipment string `validate:"omitempty,shipment_status"`
	}
	v := newValidator(t)

	assert.NoError(t, v.Struct(wrapper{Listing: "FOR_SALE", Contract: "INQUIRY", Shipment: "IN_TRANSIT"}))
	assert.Error(t, v.Struct(wrapper{Listing: "OPEN"}))
	assert.Error(t, v.Struct(wrapper{Contract: "FOR_SALE"}))
	assert.Error(t, v.Struct(wrapper{Shipment: "SHIPPED"}))
}
