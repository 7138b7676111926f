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

// Package inspect provides the inspect subcommand, a read-only view into the ledger
// database for operators. It opens the database directly, so the server must not be
// running against the same path.
package inspect

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coldtrack/coldtrack/engine/persistence/badger"
	"github.com/coldtrack/coldtrack/internal/cfg"
)

// Command is the inspect subcommand.
var Command = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect ledger entities",
}

var productCommand = &cobra.Command{
	Use:   "product <id>",
	Short: "Show a product listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store *badger.StorageProvider) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid product ID: %w", err)
			}
			product, err := store.GetProductR(ctx, id)
			if err != nil {
				return err
			}
			return printProduct(product)
		})
	},
}

var contractCommand = &cobra.Command{
	Use:   "contract <id>",
	Short: "Show a shipping contract",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store *badger.StorageProvider) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid contract ID: %w", err)
			}
			con, err := store.GetContractR(ctx, id)
			if err != nil {
				return err
			}
			return printContract(con)
		})
	},
}

var shipmentCommand = &cobra.Command{
	Use:   "shipment <id>",
	Short: "Show a shipment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store *badger.StorageProvider) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid shipment ID: %w", err)
			}
			shp, err := store.GetShipmentR(ctx, id)
			if err != nil {
				return err
			}
			return printShipment(shp)
		})
	},
}

var participantCommand = &cobra.Command{
	Use:   "participant <email>",
	Short: "Show a business participant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store *badger.StorageProvider) error {
			biz, err := store.GetParticipantR(ctx, args[0])
			if err != nil {
				return err
			}
			return printParticipant(biz)
		})
	},
}

var eventsCommand = &cobra.Command{
	Use:   "events",
	Short: "Show the audit trail",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store *badger.StorageProvider) error {
			records, err := store.GetEvents(ctx)
			if err != nil {
				return err
			}
			return printEvents(records)
		})
	},
}

func init() {
	cfg.AddPersistentFlag(Command, "inspect.json", "json", "output as JSON", false)
	cfg.AddPersistentFlag(Command, "inspect.noColor", "no-color", "disable colored output", false)
	Command.AddCommand(productCommand)
	Command.AddCommand(contractCommand)
	Command.AddCommand(shipmentCommand)
	Command.AddCommand(participantCommand)
	Command.AddCommand(eventsCommand)
}

func withStore(f func(ctx context.Context, store *badger.StorageProvider) error) error {
	ctx, ok := viper.Get("initCTX").(context.Context)
	if !ok {
		return fmt.Errorf("couldn't fetch initial context")
	}
	store, err := badger.New(ctx, false, viper.GetString("server.dbPath"))
	if err != nil {
		return fmt.Errorf("couldn't open database: %w", err)
	}
	return f(ctx, store)
}
