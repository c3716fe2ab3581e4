package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/invoicer/internal/api"
	"github.com/mmynk/invoicer/internal/config"
	"github.com/mmynk/invoicer/internal/service"
	"github.com/mmynk/invoicer/internal/storage"
	"github.com/mmynk/invoicer/internal/storage/jsonfile"
	"github.com/mmynk/invoicer/internal/storage/sqlite"
	"github.com/mmynk/invoicer/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	store, err := newStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.StoreBackend)

	if cfg.LogFormat == "json" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.NewHandler(service.NewInvoiceService(store)))

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func newStore(cfg config.Config) (storage.Store, error) {
	if cfg.StoreBackend == config.BackendSQLite {
		return sqlite.New(cfg.DBPath)
	}
	return jsonfile.New(cfg.DataFile)
}
