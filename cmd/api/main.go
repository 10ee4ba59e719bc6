// Command api serves the farmer-facing disease risk HTTP API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/livestock-risk-service/internal/adapter/http"
	"github.com/couchcryptid/livestock-risk-service/internal/adapter/places"
	"github.com/couchcryptid/livestock-risk-service/internal/app"
	"github.com/couchcryptid/livestock-risk-service/internal/auth"
	"github.com/couchcryptid/livestock-risk-service/internal/catalog"
	"github.com/couchcryptid/livestock-risk-service/internal/config"
	"github.com/couchcryptid/livestock-risk-service/internal/observability"
	"github.com/couchcryptid/livestock-risk-service/internal/risk"
)

// Headroom for the server write deadline past the per-request timeout.
const writeTimeoutSlack = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	if err := run(cfg, logger); err != nil {
		logger.Error("api failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lib, err := catalog.Load(cfg.RiskProfilesPath)
	if err != nil {
		return err
	}

	store, closeStore, err := app.OpenStore(ctx, cfg, clock, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	weather := app.NewWeather(cfg, clock, logger, metrics)
	vets := places.NewClient(cfg.PlacesAPIKey, cfg.PlacesTimeout, logger, metrics)
	svc := risk.NewService(store, lib.Risks(), weather, vets, clock, logger, metrics)

	handler := httpadapter.NewRouter(httpadapter.APIConfig{
		Risks:          svc,
		Library:        lib,
		Notifications:  store,
		Translator:     app.NewTranslator(cfg, logger, metrics),
		Tokens:         auth.NewTokens(cfg.JWTSecret),
		Ready:          store,
		Logger:         logger,
		Metrics:        metrics,
		RequestTimeout: cfg.RequestTimeout,
		Development:    cfg.Development(),
	})
	srv := httpadapter.NewServer(cfg.HTTPAddr, handler, cfg.RequestTimeout+writeTimeoutSlack, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	logger.Info("api started", "addr", cfg.HTTPAddr, "env", cfg.AppEnv, "diseases", lib.Risks().Len())

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
