// Package main provides the entrypoint for the Mausam cache warm worker.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/mausam/mausam/internal/cache"
	"github.com/mausam/mausam/internal/config"
	"github.com/mausam/mausam/internal/database"
	"github.com/mausam/mausam/internal/location"
	"github.com/mausam/mausam/internal/location/opencage"
	"github.com/mausam/mausam/internal/provider/resilience"
	"github.com/mausam/mausam/internal/weather"
	"github.com/mausam/mausam/internal/weather/openweathermap"
	"github.com/mausam/mausam/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "mausam-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Mausam worker")

	cfg := config.Load(log)
	ctx := context.Background()

	// Warming only pays off against shared storage. Without Postgres the
	// warmed entries die with this process, so warn loudly but still run;
	// a single-process deployment may serve API and worker side by side.
	var store cache.Store
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
		log.Info().Msg("postgres cache store initialized")
	} else {
		store = cache.NewMemoryStore()
		log.Warn().Msg("DATABASE_URL not set, warmed entries are not shared with the API")
	}

	geocoder := opencage.NewClient(opencage.ClientConfig{
		APIKey:     cfg.OpenCageAPIKey,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig(opencage.ProviderName)),
		Logger:     log,
	})

	resolver := location.NewResolver(location.ResolverConfig{
		Geocoder:   geocoder,
		Cache:      cache.New[[]location.Location](cache.Config{Store: store, Logger: log}),
		SuggestTTL: cfg.GeocodeTTL,
		Logger:     log,
	})

	weatherProvider := openweathermap.NewClient(openweathermap.ClientConfig{
		APIKey:     cfg.OpenWeatherAPIKey,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig(openweathermap.ProviderName)),
		Logger:     log,
	})

	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: weatherProvider,
		Cache:    cache.New[weather.Snapshot](cache.Config{Store: store, Logger: log}),
		CacheTTL: cfg.WeatherTTL,
		Logger:   log,
	})

	warmConfig := worker.DefaultWarmConfig()
	warmConfig.Targets = worker.TargetsFor(cfg.WarmLocations)
	if len(warmConfig.Targets) == 0 {
		warmConfig.Targets = worker.DefaultWarmTargets()
		log.Warn().
			Strs("warm_locations", cfg.WarmLocations).
			Msg("no configured warm location matched, using defaults")
	}

	job := worker.NewWarmJob(worker.WarmJobConfig{
		Config:         warmConfig,
		Logger:         log,
		Resolver:       resolver,
		WeatherService: weatherService,
	})

	// Schedule the warm run. The first run fires immediately so a fresh
	// deployment starts serving warm caches without waiting an interval.
	scheduler := gocron.NewScheduler(time.UTC)
	_, err := scheduler.Every(cfg.WarmInterval).StartImmediately().Do(func() {
		result := job.Run(ctx)
		if result.Failed > 0 {
			for _, warmErr := range result.Errors {
				log.Warn().
					Str("stage", warmErr.Stage).
					Str("target", warmErr.Target).
					Str("error", warmErr.Error).
					Msg("warm target failed")
			}
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to schedule warm job")
	}
	scheduler.StartAsync()

	log.Info().
		Dur("interval", cfg.WarmInterval).
		Int("targets", warmConfig.TotalTargets()).
		Msg("warm job scheduled")

	// Health endpoint for the platform's liveness probe, plus the warm
	// metrics for quick inspection.
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"version": Version,
		})
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(job.MetricsSnapshot())
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("health server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("worker stopped")
}
