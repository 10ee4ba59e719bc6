// Command risk-scan assesses every located farm and publishes an alert to
// Kafka for each high-risk disease. It runs once, or on a fixed interval
// when -interval is set.
//
// Usage:
//
//	go run ./cmd/risk-scan -refresh-locations -interval 24h
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	kafkaadapter "github.com/couchcryptid/livestock-risk-service/internal/adapter/kafka"
	"github.com/couchcryptid/livestock-risk-service/internal/adapter/places"
	"github.com/couchcryptid/livestock-risk-service/internal/app"
	"github.com/couchcryptid/livestock-risk-service/internal/catalog"
	"github.com/couchcryptid/livestock-risk-service/internal/config"
	"github.com/couchcryptid/livestock-risk-service/internal/geocode"
	"github.com/couchcryptid/livestock-risk-service/internal/observability"
	"github.com/couchcryptid/livestock-risk-service/internal/risk"
)

func main() {
	refresh := flag.Bool("refresh-locations", false, "geocode farms without coordinates before scanning")
	interval := flag.Duration("interval", 0, "repeat the scan on this interval; 0 runs once")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	if err := run(cfg, logger, *refresh, *interval); err != nil {
		logger.Error("risk scan failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, refresh bool, interval time.Duration) error {
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

	writer := kafkaadapter.NewWriter(cfg, logger)
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}()

	weather := app.NewWeather(cfg, clock, logger, metrics)
	vets := places.NewClient(cfg.PlacesAPIKey, cfg.PlacesTimeout, logger, metrics)
	svc := risk.NewService(store, lib.Risks(), weather, vets, clock, logger, metrics)
	scanner := risk.NewScanner(svc, store, writer, clock, logger, metrics)

	var resolver *geocode.Resolver
	if refresh {
		resolver = geocode.NewResolver(app.NewGeocoder(cfg, logger, metrics), logger, metrics)
	}

	if interval <= 0 {
		return scanOnce(ctx, scanner, resolver, logger)
	}
	scanEvery(ctx, clock, interval, func(ctx context.Context) error {
		return scanOnce(ctx, scanner, resolver, logger)
	}, logger)
	return nil
}

// scanEvery runs scan now and then on every tick until ctx is done. A failed
// scan is logged and retried on the next tick.
func scanEvery(ctx context.Context, clock clockwork.Clock, interval time.Duration, scan func(context.Context) error, logger *slog.Logger) {
	if err := scan(ctx); err != nil {
		logger.Error("risk scan failed", "error", err)
	}

	ticker := clock.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("scheduled scans", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		case <-ticker.Chan():
			if err := scan(ctx); err != nil {
				logger.Error("risk scan failed", "error", err)
			}
		}
	}
}

func scanOnce(ctx context.Context, scanner *risk.Scanner, resolver *geocode.Resolver, logger *slog.Logger) error {
	if resolver != nil {
		n, err := scanner.RefreshLocations(ctx, resolver)
		if err != nil {
			logger.Error("location refresh incomplete", "error", err)
		}
		logger.Info("farm locations refreshed", "updated", n)
	}

	_, err := scanner.Scan(ctx)
	return err
}
