// Package app wires the adapters shared by the service binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/livestock-risk-service/internal/adapter/mapbox"
	"github.com/couchcryptid/livestock-risk-service/internal/adapter/memory"
	"github.com/couchcryptid/livestock-risk-service/internal/adapter/postgres"
	"github.com/couchcryptid/livestock-risk-service/internal/adapter/translate"
	"github.com/couchcryptid/livestock-risk-service/internal/adapter/weatherapi"
	"github.com/couchcryptid/livestock-risk-service/internal/config"
	"github.com/couchcryptid/livestock-risk-service/internal/domain"
	"github.com/couchcryptid/livestock-risk-service/internal/observability"
	"github.com/couchcryptid/livestock-risk-service/internal/risk"
	"github.com/couchcryptid/livestock-risk-service/internal/seed"
)

// Store is everything the binaries need from persistence.
type Store interface {
	risk.Store
	risk.FarmStore
	LoadBatch(ctx context.Context, ns []domain.Notification) error
	Notifications(ctx context.Context, userID int64) ([]domain.Notification, error)
	UnreadNotificationCount(ctx context.Context, userID int64) (int, error)
	MarkNotificationsRead(ctx context.Context, userID int64) (int, error)
	CheckReadiness(ctx context.Context) error
}

var (
	_ Store = (*memory.Store)(nil)
	_ Store = (*postgres.Store)(nil)
)

// OpenStore connects to Postgres and applies migrations. Without a
// DATABASE_URL, development mode falls back to the seeded in-memory store.
// The returned func releases the store.
func OpenStore(ctx context.Context, cfg *config.Config, clock clockwork.Clock, logger *slog.Logger) (Store, func(), error) {
	if cfg.DatabaseURL == "" {
		if !cfg.Development() {
			return nil, nil, errors.New("DATABASE_URL is required in production")
		}
		logger.Warn("DATABASE_URL not set, using in-memory demo data")
		return memory.NewStore(seed.Demo(clock.Now())), func() {}, nil
	}

	pool, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Info("postgres connected")
	return postgres.NewStore(pool), pool.Close, nil
}

// NewWeather returns the live weather client, or fixed fallback weather when
// no API key is configured.
func NewWeather(cfg *config.Config, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) domain.WeatherProvider {
	if cfg.WeatherAPIKey == "" {
		logger.Info("weather api disabled, serving fallback weather")
		return weatherapi.NewStatic(clock, metrics)
	}
	return weatherapi.NewClient(cfg.WeatherAPIKey, cfg.WeatherTimeout, clock, logger, metrics)
}

// NewTranslator returns a cached translation client, or the identity
// translator when no API key is configured.
func NewTranslator(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) domain.Translator {
	if cfg.TranslateAPIKey == "" {
		logger.Info("translation disabled")
		return translate.Identity{}
	}
	client := translate.NewClient(cfg.TranslateAPIKey, cfg.TranslateTimeout, logger, metrics)
	cache := expirable.NewLRU[string, string](cfg.TranslateCacheSize, nil, cfg.TranslateCacheTTL)
	logger.Info("translation enabled", "cache_size", cfg.TranslateCacheSize, "cache_ttl", cfg.TranslateCacheTTL)
	return translate.NewCached(client, cache, logger, metrics)
}

// NewGeocoder returns the cached Mapbox geocoder, or nil when geocoding is
// disabled.
func NewGeocoder(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) domain.Geocoder {
	if !cfg.MapboxEnabled {
		logger.Info("mapbox geocoding disabled")
		return nil
	}
	client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
	logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	return mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, cfg.MapboxCacheTTL, metrics)
}
