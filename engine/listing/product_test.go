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

package listing_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldtrack/coldtrack/engine/listing"
)

func TestProductTransitions(t *testing.T) {
	product := listing.New(uuid.New(), "mangoes", 100, 50, "supplier@example.com")
	assert.Equal(t, listing.StateCreated, product.GetState())
	assert.Equal(t, "supplier@example.com", product.GetOwner())
	assert.Equal(t, "supplier@example.com", product.GetPossessor())

	assert.Error(t, product.SetState(listing.StateSold))
	assert.Equal(t, listing.StateCreated, product.GetState())

	require.NoError(t, product.SetState(listing.StateForSale))
	assert.Equal(t, listing.StateForSale, product.GetState())

	require.NoError(t, product.SetState(listing.StateSold))
	assert.True(t, product.GetState().Terminal())
	assert.Error(t, product.SetState(listing.StateForSale))
}

func TestProductReserveNotMetTerminal(t *testing.T) {
	product := listing.New(uuid.New(), "mangoes", 100, 50, "supplier@example.com")
	require.NoError(t, product.SetState(listing.StateForSale))
	require.NoError(t, product.SetState(listing.StateReserveNotMet))
	assert.True(t, product.GetState().Terminal())
	assert.Error(t, product.SetState(listing.StateSold))
}

func TestProductOffers(t *testing.T) {
	product := listing.New(uuid.New(), "mangoes", 100, 50, "supplier@example.com")
	product.AddOffer("a@example.com", 40)
	product.AddOffer("b@example.com", 60)

	offers := product.GetOffers()
	require.Len(t, offers, 2)
	assert.Equal(t, "a@example.com", offers[0].Retailer)
	assert.Equal(t, 60.0, offers[1].BidPrice)

	// The returned slice is a copy.
	offers[0].BidPrice = 999
	assert.Equal(t, 40.0, product.GetOffers()[0].BidPrice)

	product.ClearOffers()
	assert.Empty(t, product.GetOffers())
}

func TestProductRoundTrip(t *testing.T) {
	product := listing.New(uuid.New(), "mangoes", 100, 50, "supplier@example.com")
	require.NoError(t, product.SetState(listing.StateForSale))
	product.AddOffer("a@example.com", 40)

	b, err := product.ToBytes()
	require.NoError(t, err)
	restored, err := listing.FromBytes(b)
	require.NoError(t, err)

	assert.Equal(t, product.GetID(), restored.GetID())
	assert.Equal(t, listing.StateForSale, restored.GetState())
	assert.Equal(t, product.GetOffers(), restored.GetOffers())
	assert.False(t, restored.Modified())
}

func TestProductReadOnly(t *testing.T) {
	product := listing.New(uuid.New(), "mangoes", 100, 50, "supplier@example.com")
	product.SetReadOnly()
	assert.True(t, product.ReadOnly())
	assert.Panics(t, func() { product.AddOffer("a@example.com", 40) })
	assert.Panics(t, func() { _ = product.SetState(listing.StateForSale) })
}
