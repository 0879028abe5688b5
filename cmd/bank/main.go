package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"simplebanking/internal/config"
	"simplebanking/internal/database"
	"simplebanking/internal/repositories"
	"simplebanking/internal/services"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg)
	logger.Info("starting bank", "environment", cfg.App.Environment, "driver", cfg.Database.Driver)

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer db.Close()

	metrics := services.NewPrometheusMetrics()
	startMetricsListener(cfg, logger)

	cardRepo := repositories.NewCardRepository(db.DB)
	ledger := services.NewLedgerService(cardRepo, cfg.Ledger.IssuerPrefix, metrics, logger)

	newMenu(ledger, logger, os.Stdin, os.Stdout).Run()
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.App.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	// logs go to stderr so the menu owns stdout
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("session_id", uuid.New().String())
}

func startMetricsListener(cfg *config.Config, logger *slog.Logger) {
	if cfg.App.MetricsAddr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		logger.Info("metrics listener started", "addr", cfg.App.MetricsAddr)
		if err := http.ListenAndServe(cfg.App.MetricsAddr, mux); err != nil {
			logger.Error("metrics listener stopped", "error", err)
		}
	}()
}
