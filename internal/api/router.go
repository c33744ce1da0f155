// Package api provides the HTTP API for Mausam.
package api

import (
	"context"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/mausam/mausam/internal/api/handler"
	"github.com/mausam/mausam/internal/api/middleware"
	"github.com/mausam/mausam/internal/favorites"
	"github.com/mausam/mausam/internal/location"
	"github.com/mausam/mausam/internal/provider/resilience"
	"github.com/mausam/mausam/internal/weather"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	Resolver         *location.Resolver
	WeatherService   *weather.Service
	FavoritesService *favorites.Service
	ProviderRegistry *resilience.Registry

	// ProvidersConfigured reports whether both provider API keys are
	// present. When false the combined weather query endpoint returns a
	// configuration problem.
	ProvidersConfigured bool

	// StoreCheck probes the storage backend for readiness. May be nil.
	StoreCheck func(context.Context) error
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "mausam-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.ProviderRegistry, cfg.StoreCheck)
	weatherHandler := handler.NewWeatherHandler(cfg.Resolver, cfg.WeatherService, cfg.ProvidersConfigured)
	locationsHandler := handler.NewLocationsHandler(cfg.Resolver)
	favoritesHandler := handler.NewFavoritesHandler(cfg.FavoritesService)

	// Rate limit middleware per endpoint category
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Weather endpoints - provider fan-out, strict rate limiting
		r.Route("/weather", func(r chi.Router) {
			r.Use(expensiveRateLimit)
			// Combined geocode-then-weather endpoint
			r.Get("/", weatherHandler.Query)
			r.Get("/current", weatherHandler.Current)
			r.Get("/lifestyle", weatherHandler.Lifestyle)
			r.Route("/forecast", func(r chi.Router) {
				r.Get("/hourly", weatherHandler.HourlyForecast)
				r.Get("/daily", weatherHandler.DailyForecast)
			})
		})

		// Location endpoints - standard rate limiting
		r.Route("/locations", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/suggest", locationsHandler.Suggest)
			r.Get("/reverse", locationsHandler.Reverse)
		})

		// Favorites endpoints - standard rate limiting
		r.Route("/favorites", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", favoritesHandler.List)
			r.Put("/", favoritesHandler.Add)
			r.Delete("/", favoritesHandler.Remove)
		})
	})

	return r
}
