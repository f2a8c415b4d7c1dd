package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"splitbase/internal/config"
	"splitbase/internal/ledger"
	"splitbase/internal/middleware"
	"splitbase/internal/service"
	"splitbase/internal/storage/sqlite"
	"splitbase/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	var opts []ledger.Option
	opts = append(opts, ledger.WithOwner(cfg.Owner))
	if cfg.PreserveCustomSplit {
		opts = append(opts, ledger.WithPreserveCustomSplit())
	}

	repo, err := ledger.NewPersistent(context.Background(), store, opts...)
	if err != nil {
		slog.Error("Failed to load ledger", "error", err)
		os.Exit(1)
	}
	slog.Info("Ledger loaded", "bills", len(repo.Bills()))

	mux := http.NewServeMux()
	service.NewBillService(repo).Register(mux)
	service.NewWebhookService().Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.Logging(middleware.Metrics(middleware.CORS(mux)))

	// Wrap with h2c for HTTP/2 without TLS
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
