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

package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldtrack/coldtrack/engine/constants"
	"github.com/coldtrack/coldtrack/engine/contract"
	"github.com/coldtrack/coldtrack/engine/lifecycle"
	"github.com/coldtrack/coldtrack/engine/listing"
	"github.com/coldtrack/coldtrack/engine/persistence/badger"
	"github.com/coldtrack/coldtrack/engine/shipment"
	"github.com/coldtrack/coldtrack/logging"
)

const (
	supplier = "supplier@example.com"
	shipper  = "shipper@example.com"
	retailer = "retailer@example.com"
)

func setupEngine(t *testing.T) (context.Context, *lifecycle.Engine, *badger.StorageProvider) {
	t.Helper()
	ctx := logging.Inject(context.Background(), logging.New("error", true))
	ctx, done := context.WithCancel(ctx)
	t.Cleanup(done)

	store, err := badger.New(ctx, true, "")
	require.NoError(t, err)

	return ctx, lifecycle.New(store, nil), store
}

func registerAll(ctx context.Context, t *testing.T, eng *lifecycle.Engine) {
	t.Helper()
	_, err := eng.RegisterParticipant(ctx, supplier, constants.RoleSupplier, "1 Orchard Way", 0)
	require.NoError(t, err)
	_, err = eng.RegisterParticipant(ctx, shipper, constants.RoleShipper, "2 Dock Road", 0)
	require.NoError(t, err)
	_, err = eng.RegisterParticipant(ctx, retailer, constants.RoleRetailer, "3 Market Street", 1000000)
	require.NoError(t, err)
}

// soldProduct runs a product through a full auction won by the retailer.
func soldProduct(ctx context.Context, t *testing.T, eng *lifecycle.Engine, reservePrice float64) uuid.UUID {
	t.Helper()
	product, err := eng.CreateProduct(ctx, supplier, "mangoes", 100, reservePrice)
	require.NoError(t, err)
	_, err = eng.ListProduct(ctx, product.GetID())
	require.NoError(t, err)
	require.NoError(t, eng.SubmitOffer(ctx, product.GetID(), retailer, reservePrice+10))
	state, err := eng.CloseBidding(ctx, product.GetID())
	require.NoError(t, err)
	require.Equal(t, listing.StateSold, state)
	return product.GetID()
}

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

// readyShipment runs a sold product through a contract inquiry and shipment creation.
func readyShipment(ctx context.Context, t *testing.T, eng *lifecycle.Engine) uuid.UUID {
	t.Helper()
	productID := soldProduct(ctx, t, eng, 50)
	con, err := eng.CreateContract(ctx, productID, testTerms())
	require.NoError(t, err)
	require.NoError(t, eng.SubmitBid(ctx, con.GetID(), shipper, 40))
	state, err := eng.CloseInquiry(ctx, con.GetID())
	require.NoError(t, err)
	require.Equal(t, contract.StateReadyForPickup, state)

	shp, err := eng.CreateShipment(ctx, con.GetID(), 0)
	require.NoError(t, err)
	require.Equal(t, 100, shp.GetUnitCount())
	return shp.GetID()
}

func TestRegisterParticipantDuplicate(t *testing.T) {
	ctx, eng, _ := setupEngine(t)
	registerAll(ctx, t, eng)

	_, err := eng.RegisterParticipant(ctx, supplier, constants.RoleSupplier, "1 Orchard Way", 0)
	assertKind(t, err, lifecycle.KindInvalidState)
}

func TestCreateProductRequiresSupplier(t *testing.T) {
	ctx, eng, _ := setupEngine(t)
	registerAll(ctx, t, eng)

	_, err := eng.CreateProduct(ctx, retailer, "mangoes", 100, 50)
	assertKind(t, err, lifecycle.KindInvalidState)

	_, err = eng.CreateProduct(ctx, "nobody@example.com", "mangoes", 100, 50)
	assertKind(t, err, lifecycle.KindNotFound)
}

func TestAuctionHighestOfferWinsEarliestTie(t *testing.T) {
	ctx, eng, store := setupEngine(t)
	registerAll(ctx, t, eng)
	_, err := eng.RegisterParticipant(ctx, "b@example.com", constants.RoleRetailer, "", 0)
	require.NoError(t, err)
	_, err = eng.RegisterParticipant(ctx, "c@example.com", constants.RoleRetailer, "", 0)
	require.NoError(t, err)

	product, err := eng.CreateProduct(ctx, supplier, "mangoes", 100, 60)
	require.NoError(t, err)
	_, err = eng.ListProduct(ctx, product.GetID())
	require.NoError(t, err)

	require.NoError(t, eng.SubmitOffer(ctx, product.GetID(), retailer, 50))
	require.NoError(t, eng.SubmitOffer(ctx, product.GetID(), "b@example.com", 80))
	require.NoError(t, eng.SubmitOffer(ctx, product.GetID(), "c@example.com", 80))

	state, err := eng.CloseBidding(ctx, product.GetID())
	require.NoError(t, err)
	assert.Equal(t, listing.StateSold, state)

	stored, err := store.GetProductR(ctx, product.GetID())
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", stored.GetBuyer())
	assert.Empty(t, stored.GetOffers())
}

func TestAuctionReserveNotMet(t *testing.T) {
	ctx, eng, store := setupEngine(t)
	registerAll(ctx, t, eng)

	product, err := eng.CreateProduct(ctx, supplier, "mangoes", 100, 60)
	require.NoError(t, err)
	_, err = eng.ListProduct(ctx, product.GetID())
	require.NoError(t, err)
	require.NoError(t, eng.SubmitOffer(ctx, product.GetID(), retailer, 50))

	state, err := eng.CloseBidding(ctx, product.GetID())
	require.NoError(t, err)
	assert.Equal(t, listing.StateReserveNotMet, state)

	stored, err := store.GetProductR(ctx, product.GetID())
	require.NoError(t, err)
	assert.Empty(t, stored.GetBuyer())
	// Losing offers stay on the record.
	assert.Len(t, stored.GetOffers(), 1)
}

func TestSubmitOfferWrongState(t *testing.T) {
	ctx, eng, _ := setupEngine(t)
	registerAll(ctx, t, eng)

	product, err := eng.CreateProduct(ctx, supplier, "mangoes", 100, 50)
	require.NoError(t, err)

	err = eng.SubmitOffer(ctx, product.GetID(), retailer, 60)
	assertKind(t, err, lifecycle.KindInvalidState)
}

func TestContractRequiresSoldProduct(t *testing.T) {
	ctx, eng, _ := setupEngine(t)
	registerAll(ctx, t, eng)

	product, err := eng.CreateProduct(ctx, supplier, "mangoes", 100, 50)
	require.NoError(t, err)

	_, err = eng.CreateContract(ctx, product.GetID(), testTerms())
	assertKind(t, err, lifecycle.KindProductNotSold)
}

func TestInquiryCheapestBidWins(t *testing.T) {
	ctx, eng, store := setupEngine(t)
	registerAll(ctx, t, eng)
	_, err := eng.RegisterParticipant(ctx, "y@example.com", constants.RoleShipper, "", 0)
	require.NoError(t, err)

	productID := soldProduct(ctx, t, eng, 50)
	con, err := eng.CreateContract(ctx, productID, testTerms())
	require.NoError(t, err)

	require.NoError(t, eng.SubmitBid(ctx, con.GetID(), shipper, 40))
	require.NoError(t, eng.SubmitBid(ctx, con.GetID(), "y@example.com", 35))

	state, err := eng.CloseInquiry(ctx, con.GetID())
	require.NoError(t, err)
	assert.Equal(t, contract.StateReadyForPickup, state)

	stored, err := store.GetContractR(ctx, con.GetID())
	require.NoError(t, err)
	assert.Equal(t, "y@example.com", stored.GetShipper())
	assert.Equal(t, 35.0, stored.GetUnitPrice())
	assert.Empty(t, stored.GetBids())
}

func TestInquiryBidAboveMaxPriceRejected(t *testing.T) {
	ctx, eng, _ := setupEngine(t)
	registerAll(ctx, t, eng)

	productID := soldProduct(ctx, t, eng, 50)
	con, err := eng.CreateContract(ctx, productID, testTerms())
	require.NoError(t, err)

	err = eng.SubmitBid(ctx, con.GetID(), shipper, 46)
	assertKind(t, err, lifecycle.KindInvalidBid)
}

func TestInquiryNoBidsReserveNotMet(t *testing.T) {
	ctx, eng, _ := setupEngine(t)
	registerAll(ctx, t, eng)

	productID := soldProduct(ctx, t, eng, 50)
	con, err := eng.CreateContract(ctx, productID, testTerms())
	require.NoError(t, err)

	state, err := eng.CloseInquiry(ctx, con.GetID())
	require.NoError(t, err)
	assert.Equal(t, contract.StateReserveNotMet, state)
}

func TestShipmentRequiresReadyContract(t *testing.T) {
	ctx, eng, _ := setupEngine(t)
	registerAll(ctx, t, eng)

	productID := soldProduct(ctx, t, eng, 50)
	con, err := eng.CreateContract(ctx, productID, testTerms())
	require.NoError(t, err)

	_, err = eng.CreateShipment(ctx, con.GetID(), 0)
	assertKind(t, err, lifecycle.KindInvalidState)
}

func TestShipmentDoubleDock(t *testing.T) {
	ctx, eng, store := setupEngine(t)
	registerAll(ctx, t, eng)
	shipmentID := readyShipment(ctx, t, eng)

	require.NoError(t, eng.Dock(ctx, shipmentID))
	err := eng.Dock(ctx, shipmentID)
	assertKind(t, err, lifecycle.KindInvalidState)

	stored, err := store.GetShipmentR(ctx, shipmentID)
	require.NoError(t, err)
	assert.Equal(t, shipment.StatusDocked, stored.GetStatus())
}

func TestTemperatureNeverChangesStatus(t *testing.T) {
	ctx, eng, store := setupEngine(t)
	registerAll(ctx, t, eng)
	shipmentID := readyShipment(ctx, t, eng)

	require.NoError(t, eng.RecordTemperature(ctx, shipmentID, 4))
	require.NoError(t, eng.Dock(ctx, shipmentID))
	require.NoError(t, eng.RecordTemperature(ctx, shipmentID, 5))
	require.NoError(t, eng.PickUp(ctx, shipmentID))
	require.NoError(t, eng.RecordTemperature(ctx, shipmentID, 6))

	stored, err := store.GetShipmentR(ctx, shipmentID)
	require.NoError(t, err)
	assert.Equal(t, shipment.StatusInTransit, stored.GetStatus())
	assert.Equal(t, []float64{4, 5, 6}, stored.GetReadings())
}

func TestPossessionFollowsTransit(t *testing.T) {
	ctx, eng, store := setupEngine(t)
	registerAll(ctx, t, eng)
	shipmentID := readyShipment(ctx, t, eng)

	shp, err := store.GetShipmentR(ctx, shipmentID)
	require.NoError(t, err)
	productID := shp.GetProductID()

	require.NoError(t, eng.Dock(ctx, shipmentID))
	product, err := store.GetProductR(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, supplier, product.GetPossessor())

	require.NoError(t, eng.PickUp(ctx, shipmentID))
	product, err = store.GetProductR(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, shipper, product.GetPossessor())
	assert.Equal(t, supplier, product.GetOwner())

	require.NoError(t, eng.HandOff(ctx, shipmentID))
	product, err = store.GetProductR(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, retailer, product.GetPossessor())
	// Ownership only changes at delivery.
	assert.Equal(t, supplier, product.GetOwner())

	shp, err = store.GetShipmentR(ctx, shipmentID)
	require.NoError(t, err)
	assert.Equal(t, shipment.StatusInTransit, shp.GetStatus())
}

func TestHandOffRequiresTransit(t *testing.T) {
	ctx, eng, _ := setupEngine(t)
	registerAll(ctx, t, eng)
	shipmentID := readyShipment(ctx, t, eng)

	err := eng.HandOff(ctx, shipmentID)
	assertKind(t, err, lifecycle.KindInvalidState)
}

func TestSettlementNoDeviation(t *testing.T) {
	ctx, eng, store := setupEngine(t)
	registerAll(ctx, t, eng)
	shipmentID := readyShipment(ctx, t, eng)

	require.NoError(t, eng.Dock(ctx, shipmentID))
	require.NoError(t, eng.PickUp(ctx, shipmentID))
	require.NoError(t, eng.RecordTemperature(ctx, shipmentID, 4))
	require.NoError(t, eng.RecordTemperature(ctx, shipmentID, 6))
	require.NoError(t, eng.Arrive(ctx, shipmentID, time.Now()))

	settlement, err := eng.ShipmentReceived(ctx, shipmentID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, settlement.Deviation)
	assert.Equal(t, 0.0, settlement.PenaltyFactor)
	assert.Equal(t, 40.0, settlement.EffectivePrice)
	assert.Equal(t, 4000.0, settlement.Total)

	sup, err := store.GetParticipantR(ctx, supplier)
	require.NoError(t, err)
	assert.Equal(t, 4000.0, sup.GetBalance())
	ret, err := store.GetParticipantR(ctx, retailer)
	require.NoError(t, err)
	assert.Equal(t, 996000.0, ret.GetBalance())
}

func TestSettlementPenaltyApplied(t *testing.T) {
	ctx, eng, store := setupEngine(t)
	registerAll(ctx, t, eng)
	shipmentID := readyShipment(ctx, t, eng)

	require.NoError(t, eng.Dock(ctx, shipmentID))
	require.NoError(t, eng.PickUp(ctx, shipmentID))
	// 10 is 2 above the allowed maximum of 8.
	require.NoError(t, eng.RecordTemperature(ctx, shipmentID, 10))
	require.NoError(t, eng.Arrive(ctx, shipmentID, time.Now()))

	settlement, err := eng.ShipmentReceived(ctx, shipmentID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, settlement.Deviation)
	assert.InDelta(t, 0.2, settlement.PenaltyFactor, 1e-9)
	assert.InDelta(t, 32.0, settlement.EffectivePrice, 1e-9)
	assert.InDelta(t, 3200.0, settlement.Total, 1e-6)

	// Delivery passes ownership and possession to the retailer.
	shp, err := store.GetShipmentR(ctx, shipmentID)
	require.NoError(t, err)
	assert.Equal(t, shipment.StatusDelivered, shp.GetStatus())
	product, err := store.GetProductR(ctx, shp.GetProductID())
	require.NoError(t, err)
	assert.Equal(t, retailer, product.GetOwner())
	assert.Equal(t, retailer, product.GetPossessor())
}

func TestShipmentReceivedRequiresArrival(t *testing.T) {
	ctx, eng, _ := setupEngine(t)
	registerAll(ctx, t, eng)
	shipmentID := readyShipment(ctx, t, eng)

	require.NoError(t, eng.Dock(ctx, shipmentID))
	_, err := eng.ShipmentReceived(ctx, shipmentID)
	assertKind(t, err, lifecycle.KindInvalidState)
}

func assertKind(t *testing.T, err error, kind lifecycle.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	var lErr *lifecycle.Error
	require.ErrorAs(t, err, &lErr)
	assert.Equal(t, kind, lErr.Kind)
}
