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

package inspect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/fatih/color"
	"github.com/spf13/viper"

	"github.com/coldtrack/coldtrack/engine/contract"
	"github.com/coldtrack/coldtrack/engine/events"
	"github.com/coldtrack/coldtrack/engine/listing"
	"github.com/coldtrack/coldtrack/engine/participant"
	"github.com/coldtrack/coldtrack/engine/shipment"
	"github.com/coldtrack/coldtrack/internal/ui"
)

func pprintJSON[T any](o T) error {
	b, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("could not marshal entity: %w", err)
	}
	var buf bytes.Buffer
	err = json.Indent(&buf, b, "", "  ")
	if err != nil {
		return fmt.Errorf("could not indent JSON: %w", err)
	}
	if viper.GetBool("inspect.noColor") {
		ui.Print(buf.String())
		return nil
	}
	return quick.Highlight(os.Stdout, buf.String(), "json", "terminal256", "catppuccin-mocha")
}

func printProduct(product *listing.Product) error {
	if viper.GetBool("inspect.json") {
		return pprintJSON(map[string]any{
			"id":           product.GetID().String(),
			"productType":  product.GetProductType(),
			"unitCount":    product.GetUnitCount(),
			"reservePrice": product.GetReservePrice(),
			"state":        product.GetState().String(),
			"owner":        product.GetOwner(),
			"possessor":    product.GetPossessor(),
			"buyer":        product.GetBuyer(),
			"offers":       product.GetOffers(),
		})
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 1, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("ID"), product.GetID())
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("Type"), product.GetProductType())
	fmt.Fprintf(w, "%s\t%d\n", color.New(color.Bold).Sprint("Units"), product.GetUnitCount())
	fmt.Fprintf(w, "%s\t%.2f\n", color.New(color.Bold).Sprint("Reserve Price"), product.GetReservePrice())
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("State"), product.GetState())
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("Owner"), product.GetOwner())
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("Possessor"), product.GetPossessor())
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("Buyer"), product.GetBuyer())
	for i, o := range product.GetOffers() {
		fmt.Fprintf(w, "%s\t%s: %.2f\n", color.New(color.Bold).Sprintf("Offer %d", i+1), o.Retailer, o.BidPrice)
	}
	return w.Flush()
}

func printContract(con *contract.Contract) error {
	if viper.GetBool("inspect.json") {
		return pprintJSON(map[string]any{
			"id":               con.GetID().String(),
			"productId":        con.GetProductID().String(),
			"supplier":         con.GetSupplier(),
			"shipper":          con.GetShipper(),
			"retailer":         con.GetRetailer(),
			"unitCount":        con.GetUnitCount(),
			"unitPrice":        con.GetUnitPrice(),
			"maxPrice":         con.GetMaxPrice(),
			"minTemperature":   con.GetMinTemperature(),
			"maxTemperature":   con.GetMaxTemperature(),
			"minPenaltyFactor": con.GetMinPenaltyFactor(),
			"maxPenaltyFactor": con.GetMaxPenaltyFactor(),
			"arrival":          con.GetArrival(),
			"state":            con.GetState().String(),
			"bids":             con.GetBids(),
		})
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 1, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("ID"), con.GetID())
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("Product"), con.GetProductID())
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("Supplier"), con.GetSupplier())
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("Shipper"), con.GetShipper())
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("Retailer"), con.GetRetailer())
	fmt.Fprintf(w, "%s\t%d\n", color.New(color.Bold).Sprint("Units"), con.GetUnitCount())
	fmt.Fprintf(w, "%s\t%.2f\n", color.New(color.Bold).Sprint("Unit Price"), con.GetUnitPrice())
	fmt.Fprintf(w, "%s\t%.2f\n", color.New(color.Bold).Sprint("Max Price"), con.GetMaxPrice())
	fmt.Fprintf(w, "%s\t%.1f - %.1f\n",
		color.New(color.Bold).Sprint("Temperature Range"), con.GetMinTemperature(), con.GetMaxTemperature())
	fmt.Fprintf(w, "%s\t%.2f - %.2f\n",
		color.New(color.Bold).Sprint("Penalty Factors"), con.GetMinPenaltyFactor(), con.GetMaxPenaltyFactor())
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("Arrival"), con.GetArrival().Format(time.RFC3339))
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("State"), con.GetState())
	for i, b := range con.GetBids() {
		fmt.Fprintf(w, "%s\t%s: %.2f\n", color.New(color.Bold).Sprintf("Bid %d", i+1), b.Shipper, b.BidPrice)
	}
	return w.Flush()
}

func printShipment(shp *shipment.Shipment) error {
	if viper.GetBool("inspect.json") {
		return pprintJSON(map[string]any{
			"id":         shp.GetID().String(),
			"contractId": shp.GetContractID().String(),
			"productId":  shp.GetProductID().String(),
			"unitCount":  shp.GetUnitCount(),
			"status":     shp.GetStatus().String(),
			"readings":   shp.GetReadings(),
			"arrival":    shp.GetArrival(),
		})
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 1, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("ID"), shp.GetID())
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("Contract"), shp.GetContractID())
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("Product"), shp.GetProductID())
	fmt.Fprintf(w, "%s\t%d\n", color.New(color.Bold).Sprint("Units"), shp.GetUnitCount())
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("Status"), shp.GetStatus())
	fmt.Fprintf(w, "%s\t%v\n", color.New(color.Bold).Sprint("Readings"), shp.GetReadings())
	if !shp.GetArrival().IsZero() {
		fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("Arrival"), shp.GetArrival().Format(time.RFC3339))
	}
	return w.Flush()
}

func printParticipant(biz *participant.Business) error {
	if viper.GetBool("inspect.json") {
		return pprintJSON(map[string]any{
			"email":   biz.GetEmail(),
			"role":    biz.GetRole().String(),
			"address": biz.GetAddress(),
			"balance": biz.GetBalance(),
		})
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 1, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("Email"), biz.GetEmail())
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("Role"), biz.GetRole())
	fmt.Fprintf(w, "%s\t%s\n", color.New(color.Bold).Sprint("Address"), biz.GetAddress())
	fmt.Fprintf(w, "%s\t%.2f\n", color.New(color.Bold).Sprint("Balance"), biz.GetBalance())
	return w.Flush()
}

func printEvents(records []*events.Record) error {
	if viper.GetBool("inspect.json") {
		return pprintJSON(records)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		bold.Sprint("Time"), bold.Sprint("Operation"), bold.Sprint("Kind"),
		bold.Sprint("Entity"), bold.Sprint("Outcome"))
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			rec.Time.Format(time.RFC3339), rec.Operation, rec.EntityKind, rec.EntityID, rec.Outcome)
	}
	return w.Flush()
}
