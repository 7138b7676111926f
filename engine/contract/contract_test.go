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

package contract_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldtrack/coldtrack/engine/contract"
)

func testTerms() contract.Terms {
	return contract.Terms{
		UnitCount:        100,
		MaxPrice:         45,
		MinTemperature:   2,
		MaxTemperature:   8,
		MinPenaltyFactor: 0.1,
		MaxPenaltyFactor: 0.5,
		Arrival:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestContractTransitions(t *testing.T) {
	con := contract.New(uuid.New(), uuid.New(), "supplier@example.com", "retailer@example.com", testTerms())
	assert.Equal(t, contract.StateInquiry, con.GetState())
	assert.Equal(t, 45.0, con.GetUnitPrice())
	assert.Empty(t, con.GetShipper())

	require.NoError(t, con.SetState(contract.StateReadyForPickup))
	assert.True(t, con.GetState().Terminal())
	assert.Error(t, con.SetState(contract.StateInquiry))
}

func TestContractReserveNotMet(t *testing.T) {
	con := contract.New(uuid.New(), uuid.New(), "supplier@example.com", "retailer@example.com", testTerms())
	require.NoError(t, con.SetState(contract.StateReserveNotMet))
	assert.True(t, con.GetState().Terminal())
	assert.Error(t, con.SetState(contract.StateReadyForPickup))
}

func TestContractBids(t *testing.T) {
	con := contract.New(uuid.New(), uuid.New(), "supplier@example.com", "retailer@example.com", testTerms())
	con.AddBid("x@example.com", 40)
	con.AddBid("y@example.com", 35)

	bids := con.GetBids()
	require.Len(t, bids, 2)
	assert.Equal(t, "x@example.com", bids[0].Shipper)
	assert.Equal(t, 35.0, bids[1].BidPrice)

	con.ClearBids()
	assert.Empty(t, con.GetBids())
}

func TestContractRoundTrip(t *testing.T) {
	con := contract.New(uuid.New(), uuid.New(), "supplier@example.com", "retailer@example.com", testTerms())
	con.AddBid("x@example.com", 40)
	con.SetShipper("x@example.com")
	con.SetUnitPrice(40)

	b, err := con.ToBytes()
	require.NoError(t, err)
	restored, err := contract.FromBytes(b)
	require.NoError(t, err)

	assert.Equal(t, con.GetID(), restored.GetID())
	assert.Equal(t, "x@example.com", restored.GetShipper())
	assert.Equal(t, 40.0, restored.GetUnitPrice())
	assert.Equal(t, con.GetArrival(), restored.GetArrival())
	assert.Equal(t, con.GetBids(), restored.GetBids())
}

func TestContractReadOnly(t *testing.T) {
	con := contract.New(uuid.New(), uuid.New(), "supplier@example.com", "retailer@example.com", testTerms())
	con.SetReadOnly()
	assert.Panics(t, func() { con.AddBid("x@example.com", 40) })
	assert.Panics(t, func() { con.SetUnitPrice(12) })
}
