package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/darcyvale/vitrine/internal/catalog"
	"github.com/darcyvale/vitrine/internal/client"
	"github.com/darcyvale/vitrine/internal/config"
	"github.com/darcyvale/vitrine/internal/database"
	vitrineHttp "github.com/darcyvale/vitrine/internal/http"
	catalogHandler "github.com/darcyvale/vitrine/internal/http/catalog"
	clientHandler "github.com/darcyvale/vitrine/internal/http/client"
	importHandler "github.com/darcyvale/vitrine/internal/http/importcsv"
	saleHandler "github.com/darcyvale/vitrine/internal/http/sale"
	"github.com/darcyvale/vitrine/internal/importer"
	"github.com/darcyvale/vitrine/internal/sale"
	"github.com/darcyvale/vitrine/internal/snapshot"
	"github.com/darcyvale/vitrine/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	snap, closeSnap, err := newSnapshotStore(cfg)
	if err != nil {
		slog.Error("failed to open snapshot backend", "error", err)
		os.Exit(1)
	}
	defer closeSnap()

	st, err := store.New(context.Background(), snap)
	if err != nil {
		slog.Error("failed to load state", "error", err)
		os.Exit(1)
	}

	var (
		saleService    = sale.NewService(st)
		clientService  = client.NewService(st)
		catalogService = catalog.NewService(st)
		importService  = importer.NewService()
	)

	var (
		saleH    = saleHandler.NewHandler(saleService)
		clientH  = clientHandler.NewHandler(clientService)
		catalogH = catalogHandler.NewHandler(catalogService)
		importH  = importHandler.NewHandler(importService, saleService, clientService)
	)

	router := vitrineHttp.New(saleH, clientH, catalogH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "backend", cfg.Snapshot.Backend)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newSnapshotStore(cfg *config.Config) (snapshot.Store, func(), error) {
	switch cfg.Snapshot.Backend {
	case config.BackendPostgres:
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		return snapshot.NewPostgresStore(db, cfg.Snapshot.Slot), func() { db.Close() }, nil
	case config.BackendFile:
		return snapshot.NewFileStore(cfg.Snapshot.Path), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown snapshot backend: %s", cfg.Snapshot.Backend)
	}
}
