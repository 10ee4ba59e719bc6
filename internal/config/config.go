package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Environment names accepted in APP_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// developmentJWTSecret signs tokens when no secret is configured outside
// production.
const developmentJWTSecret = "development-only-secret"

// Config holds all service settings, populated from environment variables.
type Config struct {
	AppEnv          string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration

	// DatabaseURL selects the PostgreSQL store. Empty runs on seeded
	// in-memory data.
	DatabaseURL string
	JWTSecret   string

	RiskProfilesPath string

	KafkaBrokers       []string
	KafkaAlertTopic    string
	KafkaGroupID       string
	BatchSize          int
	BatchFlushInterval time.Duration

	// WeatherAPI.com forecast configuration. No key means the fallback
	// snapshot is always served.
	WeatherAPIKey  string
	WeatherTimeout time.Duration

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
	MapboxCacheTTL  time.Duration

	// Google Places and Translate configuration.
	PlacesAPIKey       string
	PlacesTimeout      time.Duration
	TranslateAPIKey    string
	TranslateTimeout   time.Duration
	TranslateCacheSize int
	TranslateCacheTTL  time.Duration
}

// Development reports whether error details may be shown to clients.
func (c *Config) Development() bool { return c.AppEnv == EnvDevelopment }

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is read first; variables
// already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load() // ignore missing file

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	var (
		requestTimeout, weatherTimeout, mapboxTimeout, mapboxCacheTTL time.Duration
		placesTimeout, translateTimeout, translateCacheTTL            time.Duration
	)
	for _, d := range []struct {
		env string
		def string
		dst *time.Duration
	}{
		{"REQUEST_TIMEOUT", "30s", &requestTimeout},
		{"WEATHER_TIMEOUT", "5s", &weatherTimeout},
		{"MAPBOX_TIMEOUT", "5s", &mapboxTimeout},
		{"MAPBOX_CACHE_TTL", "24h", &mapboxCacheTTL},
		{"PLACES_TIMEOUT", "5s", &placesTimeout},
		{"TRANSLATE_TIMEOUT", "5s", &translateTimeout},
		{"TRANSLATE_CACHE_TTL", "24h", &translateCacheTTL},
	} {
		v, err := parsePositiveDuration(d.env, d.def)
		if err != nil {
			return nil, err
		}
		*d.dst = v
	}

	mapboxCacheSize, err := parsePositiveInt("MAPBOX_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}
	translateCacheSize, err := parsePositiveInt("TRANSLATE_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		AppEnv:          sharedcfg.EnvOrDefault("APP_ENV", EnvDevelopment),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		RequestTimeout:  requestTimeout,

		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		RiskProfilesPath: os.Getenv("RISK_PROFILES_PATH"),

		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaAlertTopic:    sharedcfg.EnvOrDefault("KAFKA_ALERT_TOPIC", "livestock-risk-alerts"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "livestock-risk-notifier"),
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		WeatherAPIKey:  os.Getenv("WEATHER_API_KEY"),
		WeatherTimeout: weatherTimeout,

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: mapboxCacheSize,
		MapboxCacheTTL:  mapboxCacheTTL,

		PlacesAPIKey:       os.Getenv("PLACES_API_KEY"),
		PlacesTimeout:      placesTimeout,
		TranslateAPIKey:    os.Getenv("TRANSLATE_API_KEY"),
		TranslateTimeout:   translateTimeout,
		TranslateCacheSize: translateCacheSize,
		TranslateCacheTTL:  translateCacheTTL,
	}

	if cfg.AppEnv != EnvDevelopment && cfg.AppEnv != EnvProduction {
		return nil, fmt.Errorf("invalid APP_ENV %q: want %s or %s", cfg.AppEnv, EnvDevelopment, EnvProduction)
	}
	if cfg.JWTSecret == "" {
		if cfg.AppEnv == EnvProduction {
			return nil, errors.New("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = developmentJWTSecret
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaAlertTopic == "" {
		return nil, errors.New("KAFKA_ALERT_TOPIC is required")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

func parsePositiveDuration(env, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(env, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", env)
	}
	return d, nil
}

func parsePositiveInt(env string, def int) (int, error) {
	s := os.Getenv(env)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", env)
	}
	return n, nil
}
