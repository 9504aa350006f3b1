// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/ihamedr/meni-server/cliparse"
	"github.com/ihamedr/meni-server/router"
	"github.com/ihamedr/meni-server/store"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the metadata store
	st, cleanup, err := openStore(cfg)
	if err != nil {
		slog.Error("store setup failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()
	slog.Info("Metadata store ready", "backend", cfg.StoreBackend)

	// Create router
	mux := router.NewRouter(st, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openStore builds the configured store backend. The returned cleanup
// closes whatever the backend holds open.
func openStore(cfg cliparse.Config) (store.Store, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case cliparse.BackendMemory:
		return store.NewMemory(), noop, nil

	case cliparse.BackendSQLite, cliparse.BackendPostgres:
		db, err := sql.Open(cfg.StoreBackend, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, noop, err
		}
		s, err := store.NewSQL(db, cfg.StoreBackend)
		if err != nil {
			db.Close()
			return nil, noop, err
		}
		if err := s.CreateSchema(context.Background()); err != nil {
			db.Close()
			return nil, noop, err
		}
		return s, func() { db.Close() }, nil

	case cliparse.BackendCloud:
		c := store.NewCloud(cfg.CloudBaseURL, cfg.CloudName, cfg.CloudKey, cfg.CloudSecret, cfg.StoreTimeout)
		return c, noop, nil
	}

	return nil, noop, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
