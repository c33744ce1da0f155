// Package config loads application configuration from the environment,
// with optional .env file support for local development.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all application configuration.
type Config struct {
	// Env is the deployment environment (development, staging, production).
	Env string

	// Port the HTTP server listens on.
	Port string

	// OpenCageAPIKey authenticates against the geocoding provider.
	OpenCageAPIKey string

	// OpenWeatherAPIKey authenticates against the weather provider.
	OpenWeatherAPIKey string

	// DatabaseURL is the Postgres connection string for the durable
	// cache. When empty the process falls back to in-memory storage.
	DatabaseURL string

	// GeocodeTTL is how long resolved suggestion lists stay cached.
	GeocodeTTL time.Duration

	// WeatherTTL is how long weather snapshots stay cached.
	WeatherTTL time.Duration

	// OTELEnabled toggles OpenTelemetry export.
	OTELEnabled bool

	// OTLPEndpoint is the OTLP collector address.
	OTLPEndpoint string

	// WarmInterval is how often the worker refreshes the warm list.
	WarmInterval time.Duration

	// WarmLocations lists place names the worker keeps pre-fetched.
	// Empty means the default set of major cities.
	WarmLocations []string
}

// ProvidersConfigured reports whether both provider API keys are present.
func (c *Config) ProvidersConfigured() bool {
	return c.OpenCageAPIKey != "" && c.OpenWeatherAPIKey != ""
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present; real environment
// variables win.
func Load(logger zerolog.Logger) *Config {
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("loaded .env file")
	}

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		Port:              getEnv("APP_PORT", "8080"),
		OpenCageAPIKey:    os.Getenv("OPENCAGE_API_KEY"),
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		GeocodeTTL:        getDuration(logger, "GEOCODE_CACHE_TTL", 24*time.Hour),
		WeatherTTL:        getDuration(logger, "WEATHER_CACHE_TTL", 10*time.Minute),
		OTELEnabled:       os.Getenv("OTEL_ENABLED") == "true",
		OTLPEndpoint:      getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		WarmInterval:      getDuration(logger, "WARM_INTERVAL", 15*time.Minute),
		WarmLocations:     splitList(os.Getenv("WARM_LOCATIONS")),
	}

	if !cfg.ProvidersConfigured() {
		logger.Warn().Msg("provider API keys missing - weather queries will fail with a configuration error")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(logger zerolog.Logger, key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	// Accept both Go duration strings and bare seconds.
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}

	logger.Warn().Str("key", key).Str("value", raw).Msg("unparseable duration, using default")
	return fallback
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
