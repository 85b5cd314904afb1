// Command api is the bballscorer API server.
//
// Usage:
//
//	bballscorer-api
//	API_PORT=8080 bballscorer-api

// @title bballscorer API
// @version 1.0.0
// @description NBA matchup, head-to-head and player prop-line reports computed on demand from the league statistics API. Every report is returned as {rows, summary}, or as a CSV download with ?format=csv.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @contact.name bballscorer
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/bballscorer/internal/api"
	"github.com/albapepper/bballscorer/internal/catalog"
	"github.com/albapepper/bballscorer/internal/config"
	"github.com/albapepper/bballscorer/internal/metrics"
	"github.com/albapepper/bballscorer/internal/provider/nbastats"
	"github.com/albapepper/bballscorer/internal/report"

	_ "github.com/albapepper/bballscorer/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	recorder := metrics.New(cfg.MetricsEnabled)
	logger.Info("Metrics initialized", "enabled", recorder.Enabled())

	client := nbastats.NewClient(cfg.StatsAPIBaseURL, cfg.StatsAPITimeout, cfg.StatsAPIRequestsPerMinute, logger,
		nbastats.WithObserver(recorder))

	// Player catalog
	logger.Info("Loading player catalog...", "season", config.SeasonLabel(cfg.CurrentSeason), "file", cfg.PlayersFile)
	loadCtx, loadCancel := context.WithTimeout(ctx, 2*cfg.StatsAPITimeout)
	cat, err := catalog.Load(loadCtx, client, cfg.CurrentSeason, cfg.PlayersFile)
	loadCancel()
	if err != nil {
		logger.Error("Failed to load player catalog", "error", err)
		os.Exit(1)
	}
	logger.Info("Catalog loaded",
		"teams", len(cat.Teams()),
		"active_players", len(cat.ActivePlayers()))

	builder := report.NewBuilder(cat, client, report.SettingsFromConfig(cfg), logger,
		report.WithRecorder(recorder))

	// Create router
	router := api.NewRouter(builder, recorder, cfg, logger)

	// Create HTTP server. Reports fan out into several sequential upstream
	// calls, so the write timeout is generous.
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting bballscorer API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
