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

// Package server provides the server subcommand.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/justinas/alice"
	sloghttp "github.com/samber/slog-http"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coldtrack/coldtrack/engine"
	"github.com/coldtrack/coldtrack/engine/events"
	"github.com/coldtrack/coldtrack/engine/lifecycle"
	"github.com/coldtrack/coldtrack/engine/persistence/badger"
	"github.com/coldtrack/coldtrack/internal/cfg"
	"github.com/coldtrack/coldtrack/logging"
)

// Command is the server subcommand. It runs the submission boundary until interrupted.
var Command = &cobra.Command{
	Use:   "server",
	Short: "Start the coldtrack network server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, ok := viper.Get("initCTX").(context.Context)
		if !ok {
			return fmt.Errorf("couldn't fetch initial context")
		}
		logger := logging.Extract(ctx)

		listenAddr := viper.GetString("server.listenAddr")
		port := viper.GetInt("server.port")
		logger.Info("Starting server", "listenAddr", listenAddr, "port", port)

		provider, err := badger.New(ctx, viper.GetBool("server.inMemoryDB"), viper.GetString("server.dbPath"))
		if err != nil {
			return fmt.Errorf("couldn't initialise storage: %w", err)
		}
		archiver := events.NewArchiver(ctx, provider)
		archiver.Run()
		eng := lifecycle.New(provider, archiver)

		mux := engine.GetRoutes(eng, provider)
		chain := alice.New(
			sloghttp.Recovery,
			sloghttp.New(logger),
			logging.NewMiddleware(logger),
		).Then(mux)

		srv := &http.Server{
			Addr:              fmt.Sprintf("%s:%d", listenAddr, port),
			Handler:           chain,
			ReadHeaderTimeout: 2 * time.Second,
			BaseContext: func(_ net.Listener) context.Context {
				return ctx
			},
		}
		return srv.ListenAndServe()
	},
}

func init() {
	cfg.AddPersistentFlag(Command, "server.listenAddr", "listen-addr", "address the server listens on", "0.0.0.0")
	cfg.AddPersistentFlag(Command, "server.port", "port", "port the server listens on", 8080)
	cfg.AddPersistentFlag(Command, "server.dbPath", "db-path", "path to the database directory", "/var/lib/coldtrack")
	cfg.AddPersistentFlag(Command, "server.inMemoryDB", "in-memory-db", "use an in-memory database", false)
}
