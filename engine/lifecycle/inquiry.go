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

package lifecycle

import (
	"context"

	"github.com/google/uuid"

	"github.com/coldtrack/coldtrack/engine/constants"
	"github.com/coldtrack/coldtrack/engine/contract"
	"github.com/coldtrack/coldtrack/engine/listing"
	"github.com/coldtrack/coldtrack/logging"
)

// CreateContract opens a shipping inquiry for a sold product. The supplier and retailer
// are taken from the product's owner and buyer, the shipper is selected later by
// CloseInquiry. The unit price starts at the maximum price.
func (e *Engine) CreateContract(
	ctx context.Context,
	productID uuid.UUID,
	terms contract.Terms,
) (*contract.Contract, error) {
	ctx, logger := logging.InjectLabels(ctx, "operation", "CreateContract", "productID", productID.String())
	if terms.UnitCount <= 0 {
		return nil, invalidRange(productID.String(), "unit count must be positive")
	}
	if terms.MinTemperature > terms.MaxTemperature {
		return nil, invalidRange(productID.String(), "minimum temperature above maximum temperature")
	}
	if terms.MinPenaltyFactor > terms.MaxPenaltyFactor {
		return nil, invalidRange(productID.String(), "minimum penalty factor above maximum penalty factor")
	}
	if terms.MaxPrice <= 0 {
		return nil, invalidRange(productID.String(), "maximum price must be positive")
	}

	product, err := e.store.GetProductR(ctx, productID)
	if err != nil {
		return nil, wrapFetch(err, productID.String())
	}
	if product.GetState() != listing.StateSold {
		return nil, productNotSold(productID.String(), product.GetState().String())
	}

	con := contract.New(uuid.New(), productID, product.GetOwner(), product.GetBuyer(), terms)
	if err := e.store.PutContract(ctx, con); err != nil {
		return nil, err
	}
	logger.Info("Contract created", con.GetLogFields("")...)
	e.emit("CreateContract", "contract", con.GetID().String(), con.GetState().String())
	return con, nil
}

// SubmitBid appends a shipper's bid to a contract inquiry. Bids are kept in submission
// order, the contract state does not change. Bids above the contract's maximum price are
// rejected outright.
func (e *Engine) SubmitBid(
	ctx context.Context,
	contractID uuid.UUID,
	shipper string,
	bidPrice float64,
) error {
	ctx, logger := logging.InjectLabels(ctx,
		"operation", "SubmitBid",
		"contractID", contractID.String(),
		"shipper", shipper,
	)
	if bidPrice <= 0 {
		return invalidBid(contractID.String(), "bid price must be positive")
	}
	if _, err := e.getParticipant(ctx, shipper, constants.RoleShipper); err != nil {
		return err
	}

	con, err := e.store.GetContractRW(ctx, contractID)
	if err != nil {
		return wrapFetch(err, contractID.String())
	}
	if con.GetState() != contract.StateInquiry {
		_ = e.store.ReleaseContract(ctx, con)
		return invalidState(contractID.String(), con.GetState().String(), "contract inquiry is not open")
	}
	if bidPrice > con.GetMaxPrice() {
		_ = e.store.ReleaseContract(ctx, con)
		return invalidBid(contractID.String(), "bid price above the contract maximum")
	}

	con.AddBid(shipper, bidPrice)
	if err := e.store.PutContract(ctx, con); err != nil {
		return err
	}
	logger.Info("Bid submitted", "bidPrice", bidPrice)
	e.emit("SubmitBid", "contract", contractID.String(), con.GetState().String())
	return nil
}

// CloseInquiry closes the tender on a contract. The cheapest bid wins, the earliest
// submitted wins a tie. With no eligible bid the contract moves to RESERVE_NOT_MET,
// otherwise the winning shipper is recorded, the unit price drops to the winning bid, the
// bids are cleared and the contract moves to READY_FOR_PICKUP. The resulting state is
// returned.
func (e *Engine) CloseInquiry(ctx context.Context, contractID uuid.UUID) (contract.State, error) {
	ctx, logger := logging.InjectLabels(ctx, "operation", "CloseInquiry", "contractID", contractID.String())
	con, err := e.store.GetContractRW(ctx, contractID)
	if err != nil {
		return 255, wrapFetch(err, contractID.String())
	}
	if con.GetState() != contract.StateInquiry {
		_ = e.store.ReleaseContract(ctx, con)
		return 255, invalidState(contractID.String(), con.GetState().String(), "contract inquiry is not open")
	}

	winner, ok := cheapestBid(con.GetBids(), con.GetMaxPrice())
	state := contract.StateReserveNotMet
	if ok {
		state = contract.StateReadyForPickup
	}
	if err := con.SetState(state); err != nil {
		_ = e.store.ReleaseContract(ctx, con)
		return 255, err
	}
	if state == contract.StateReadyForPickup {
		con.SetShipper(winner.Shipper)
		con.SetUnitPrice(winner.BidPrice)
		con.ClearBids()
	}
	if err := e.store.PutContract(ctx, con); err != nil {
		return 255, err
	}
	logger.Info("Inquiry closed", "outcome", state.String())
	e.emit("CloseInquiry", "contract", contractID.String(), state.String())
	return state, nil
}

// cheapestBid returns the winning bid, strict comparison keeps the earliest of a tie.
// Bids above maxPrice never win, SubmitBid rejects them but the guard is kept here so the
// selection is safe on its own.
func cheapestBid(bids []contract.Bid, maxPrice float64) (contract.Bid, bool) {
	var winner contract.Bid
	found := false
	for _, b := range bids {
		if b.BidPrice > maxPrice {
			continue
		}
		if !found || b.BidPrice < winner.BidPrice {
			winner = b
			found = true
		}
	}
	return winner, found
}
