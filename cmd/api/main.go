// Package main provides the entrypoint for the Mausam API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mausam/mausam/internal/api"
	"github.com/mausam/mausam/internal/api/middleware"
	"github.com/mausam/mausam/internal/cache"
	"github.com/mausam/mausam/internal/config"
	"github.com/mausam/mausam/internal/database"
	"github.com/mausam/mausam/internal/favorites"
	"github.com/mausam/mausam/internal/location"
	"github.com/mausam/mausam/internal/location/opencage"
	"github.com/mausam/mausam/internal/provider/resilience"
	"github.com/mausam/mausam/internal/telemetry"
	"github.com/mausam/mausam/internal/weather"
	"github.com/mausam/mausam/internal/weather/openweathermap"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "mausam-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Mausam API")

	cfg := config.Load(log)

	// Initialize OpenTelemetry
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.OTELEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Storage backend for the caches and favorites. Postgres when a
	// connection string is configured, in-memory otherwise.
	var store cache.Store
	var storeCheck func(context.Context) error
	if cfg.DatabaseURL != "" {
		pool, dbErr := database.ConnectURL(ctx, cfg.DatabaseURL)
		if dbErr != nil {
			log.Fatal().Err(dbErr).Msg("failed to connect to database")
		}
		defer pool.Close()

		pgStore := cache.NewPostgresStore(pool)
		if schemaErr := pgStore.EnsureSchema(ctx); schemaErr != nil {
			log.Fatal().Err(schemaErr).Msg("failed to ensure cache schema")
		}
		store = pgStore
		storeCheck = pgStore.Ping
		log.Info().Msg("postgres cache store initialized")
	} else {
		store = cache.NewMemoryStore()
		log.Warn().Msg("DATABASE_URL not set, caches are in-memory and per-process")
	}

	// Provider HTTP clients share a registry so the status endpoint can
	// report circuit breaker health per provider.
	registry := resilience.NewRegistry()

	geocodeHTTP := resilience.NewClient(resilience.DefaultClientConfig(opencage.ProviderName))
	registry.Register(opencage.ProviderName, geocodeHTTP)

	weatherHTTP := resilience.NewClient(resilience.DefaultClientConfig(openweathermap.ProviderName))
	registry.Register(openweathermap.ProviderName, weatherHTTP)

	geocoder := opencage.NewClient(opencage.ClientConfig{
		APIKey:     cfg.OpenCageAPIKey,
		HTTPClient: geocodeHTTP,
		Logger:     log,
	})

	resolver := location.NewResolver(location.ResolverConfig{
		Geocoder:   geocoder,
		Cache:      cache.New[[]location.Location](cache.Config{Store: store, Logger: log}),
		SuggestTTL: cfg.GeocodeTTL,
		Logger:     log,
	})
	log.Info().Msg("location resolver initialized")

	weatherProvider := openweathermap.NewClient(openweathermap.ClientConfig{
		APIKey:     cfg.OpenWeatherAPIKey,
		HTTPClient: weatherHTTP,
		Logger:     log,
	})

	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: weatherProvider,
		Cache:    cache.New[weather.Snapshot](cache.Config{Store: store, Logger: log}),
		CacheTTL: cfg.WeatherTTL,
		Logger:   log,
	})
	log.Info().Msg("weather service initialized")

	favoritesService := favorites.NewService(favorites.Config{
		Store:  store,
		Logger: log,
	})
	log.Info().Msg("favorites service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:             Version,
		BuildTime:           BuildTime,
		Logger:              log,
		ServiceName:         serviceName,
		Metrics:             metrics,
		Resolver:            resolver,
		WeatherService:      weatherService,
		FavoritesService:    favoritesService,
		ProviderRegistry:    registry,
		ProvidersConfigured: cfg.ProvidersConfigured(),
		StoreCheck:          storeCheck,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
