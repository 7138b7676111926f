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
	"github.com/coldtrack/coldtrack/engine/listing"
	"github.com/coldtrack/coldtrack/logging"
)

// CreateProduct registers a perishable good for a supplier. The product starts in the
// CREATED state, owned and possessed by its supplier.
func (e *Engine) CreateProduct(
	ctx context.Context,
	owner string,
	productType string,
	unitCount int,
	reservePrice float64,
) (*listing.Product, error) {
	ctx, logger := logging.InjectLabels(ctx, "operation", "CreateProduct", "owner", owner)
	if unitCount <= 0 {
		return nil, invalidRange(owner, "unit count must be positive")
	}
	if reservePrice < 0 {
		return nil, invalidRange(owner, "reserve price must not be negative")
	}
	if _, err := e.getParticipant(ctx, owner, constants.RoleSupplier); err != nil {
		return nil, err
	}

	product := listing.New(uuid.New(), productType, unitCount, reservePrice, owner)
	if err := e.store.PutProduct(ctx, product); err != nil {
		return nil, err
	}
	logger.Info("Product created", product.GetLogFields("")...)
	e.emit("CreateProduct", "product", product.GetID().String(), product.GetState().String())
	return product, nil
}

// ListProduct opens the auction on a product, moving it from CREATED to FOR_SALE.
func (e *Engine) ListProduct(ctx context.Context, productID uuid.UUID) (*listing.Product, error) {
	ctx, logger := logging.InjectLabels(ctx, "operation", "ListProduct", "productID", productID.String())
	product, err := e.store.GetProductRW(ctx, productID)
	if err != nil {
		return nil, wrapFetch(err, productID.String())
	}
	if product.GetState() != listing.StateCreated {
		_ = e.store.ReleaseProduct(ctx, product)
		return nil, invalidState(productID.String(), product.GetState().String(), "product is not awaiting listing")
	}

	if err := product.SetState(listing.StateForSale); err != nil {
		_ = e.store.ReleaseProduct(ctx, product)
		return nil, err
	}
	if err := e.store.PutProduct(ctx, product); err != nil {
		return nil, err
	}
	logger.Info("Product listed for sale")
	e.emit("ListProduct", "product", productID.String(), listing.StateForSale.String())
	return product, nil
}

// SubmitOffer appends a retailer's offer to a product listing. Offers are kept in
// submission order, the listing state does not change.
func (e *Engine) SubmitOffer(
	ctx context.Context,
	productID uuid.UUID,
	retailer string,
	bidPrice float64,
) error {
	ctx, logger := logging.InjectLabels(ctx,
		"operation", "SubmitOffer",
		"productID", productID.String(),
		"retailer", retailer,
	)
	if bidPrice <= 0 {
		return invalidBid(productID.String(), "offer price must be positive")
	}
	if _, err := e.getParticipant(ctx, retailer, constants.RoleRetailer); err != nil {
		return err
	}

	product, err := e.store.GetProductRW(ctx, productID)
	if err != nil {
		return wrapFetch(err, productID.String())
	}
	if product.GetState() != listing.StateForSale {
		_ = e.store.ReleaseProduct(ctx, product)
		return invalidState(productID.String(), product.GetState().String(), "product is not for sale")
	}

	product.AddOffer(retailer, bidPrice)
	if err := e.store.PutProduct(ctx, product); err != nil {
		return err
	}
	logger.Info("Offer submitted", "bidPrice", bidPrice)
	e.emit("SubmitOffer", "product", productID.String(), product.GetState().String())
	return nil
}

// CloseBidding closes the auction on a listing. The highest offer wins, the earliest
// submitted wins a tie. If no offer meets the reserve price the product moves to
// RESERVE_NOT_MET and no buyer is set, otherwise it moves to SOLD, the buyer is recorded
// and the offers are cleared. The resulting state is returned.
func (e *Engine) CloseBidding(ctx context.Context, productID uuid.UUID) (listing.State, error) {
	ctx, logger := logging.InjectLabels(ctx, "operation", "CloseBidding", "productID", productID.String())
	product, err := e.store.GetProductRW(ctx, productID)
	if err != nil {
		return 255, wrapFetch(err, productID.String())
	}
	if product.GetState() != listing.StateForSale {
		_ = e.store.ReleaseProduct(ctx, product)
		return 255, invalidState(productID.String(), product.GetState().String(), "product is not for sale")
	}

	winner, ok := highestOffer(product.GetOffers())
	state := listing.StateReserveNotMet
	if ok && winner.BidPrice >= product.GetReservePrice() {
		state = listing.StateSold
	}
	if err := product.SetState(state); err != nil {
		_ = e.store.ReleaseProduct(ctx, product)
		return 255, err
	}
	if state == listing.StateSold {
		product.SetBuyer(winner.Retailer)
		product.ClearOffers()
	}
	if err := e.store.PutProduct(ctx, product); err != nil {
		return 255, err
	}
	logger.Info("Bidding closed", "outcome", state.String())
	e.emit("CloseBidding", "product", productID.String(), state.String())
	return state, nil
}

// highestOffer returns the winning offer, strict comparison keeps the earliest of a tie.
func highestOffer(offers []listing.Offer) (listing.Offer, bool) {
	if len(offers) == 0 {
		return listing.Offer{}, false
	}
	winner := offers[0]
	for _, o := range offers[1:] {
		if o.BidPrice > winner.BidPrice {
			winner = o
		}
	}
	return winner, true
}
