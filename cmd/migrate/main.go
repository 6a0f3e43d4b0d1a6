package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/storage"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   create the key-value tables if missing
  reset       drop the key-value tables and recreate them (deletes all data)`)
	os.Exit(1)
}

// schemaStore is implemented by the SQL-backed stores.
type schemaStore interface {
	EnsureSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if cmd != "" && cmd != "reset" {
		usage()
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.Store)
	if err != nil {
		logging.Fatal("connect failed", "backend", cfg.Store.Backend, "error", err)
	}
	defer store.Close()

	ss, ok := store.(schemaStore)
	if !ok {
		slog.Info("nothing to migrate", "backend", cfg.Store.Backend)
		return
	}

	if cmd == "reset" {
		slog.Info("dropping key-value tables", "backend", cfg.Store.Backend)
		if err := ss.DropSchema(ctx); err != nil {
			logging.Fatal("drop failed", "error", err)
		}
	}
	if err := ss.EnsureSchema(ctx); err != nil {
		logging.Fatal("schema apply failed", "error", err)
	}
	slog.Info("schema ready", "backend", cfg.Store.Backend)
}
