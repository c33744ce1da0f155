package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mausam/mausam/internal/cache"
)

// Provider defines the interface for weather data providers.
type Provider interface {
	// CurrentWeather fetches current conditions for a location.
	CurrentWeather(ctx context.Context, lat, lng float64) (*Snapshot, error)

	// Forecast fetches the 3-hour forecast series for a location.
	Forecast(ctx context.Context, lat, lng float64) ([]Sample, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the weather service.
type ServiceConfig struct {
	// Provider is the weather data provider.
	Provider Provider

	// Cache stores snapshots across fetches. Required.
	Cache *cache.Cache[Snapshot]

	// CacheTTL is how long a snapshot stays fresh (default: 10 minutes).
	CacheTTL time.Duration

	// Logger for service operations.
	Logger zerolog.Logger

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Service provides current weather and forecast data with snapshot caching.
// Forecast calls are keyed to the active location established by the most
// recent successful CurrentWeather call.
type Service struct {
	provider Provider
	cache    *cache.Cache[Snapshot]
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time

	mu       sync.Mutex
	active   *activeLocation
	snapshot *Snapshot
	lastErr  error
}

type activeLocation struct {
	lat     float64
	lng     float64
	display string
}

// NewService creates a new weather service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		provider: cfg.Provider,
		cache:    cfg.Cache,
		cacheTTL: cacheTTL,
		logger:   cfg.Logger,
		now:      now,
	}
}

// CacheKey returns the snapshot cache key for a coordinate pair. Coordinates
// are rounded to 4 decimal places (~11m) so that jitter from repeated
// geocoding of the same place does not fragment the cache. The display name
// is deliberately not part of the key.
func CacheKey(lat, lng float64) string {
	return fmt.Sprintf("owm_%.4f_%.4f", lat, lng)
}

// CurrentWeather returns current conditions for a location, serving from
// cache when a fresh snapshot exists for the coordinate. A cached snapshot
// is re-annotated with the displayName of this call; its CachedAt is the
// original fetch time. Provider-reported errors are never cached.
func (s *Service) CurrentWeather(ctx context.Context, lat, lng float64, displayName string) (*Snapshot, error) {
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, err
	}

	// Reset prior state before any network work so a failed fetch never
	// leaves a stale snapshot attributed to the new location.
	s.mu.Lock()
	s.snapshot = nil
	s.lastErr = nil
	s.active = nil
	s.mu.Unlock()

	key := CacheKey(lat, lng)

	if cached, ok := s.cache.Get(ctx, key); ok {
		snap := cached
		snap.DisplayName = displayName
		s.setState(lat, lng, displayName, &snap)
		s.logger.Debug().
			Str("key", key).
			Str("display", displayName).
			Time("cached_at", snap.CachedAt).
			Msg("serving cached weather snapshot")
		return &snap, nil
	}

	s.logger.Debug().
		Float64("lat", lat).
		Float64("lng", lng).
		Str("provider", s.provider.Name()).
		Msg("fetching weather from provider")

	snap, err := s.provider.CurrentWeather(ctx, lat, lng)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		s.logger.Error().Err(err).
			Float64("lat", lat).
			Float64("lng", lng).
			Msg("failed to fetch weather")
		return nil, err
	}

	snap.DisplayName = displayName
	snap.CachedAt = s.now()
	s.cache.Set(ctx, key, *snap, s.cacheTTL)
	s.setState(lat, lng, displayName, snap)

	return snap, nil
}

// ForecastSeries returns the raw 3-hour forecast series for the active
// location. It is always fetched live. ErrNoActiveLocation is returned
// when no successful CurrentWeather call has established a location.
func (s *Service) ForecastSeries(ctx context.Context) ([]Sample, error) {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()

	if active == nil {
		return nil, ErrNoActiveLocation
	}

	series, err := s.provider.Forecast(ctx, active.lat, active.lng)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		s.logger.Error().Err(err).
			Float64("lat", active.lat).
			Float64("lng", active.lng).
			Msg("failed to fetch forecast series")
		return nil, err
	}

	return series, nil
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// Snapshot returns the snapshot from the most recent successful
// CurrentWeather call, or nil.
func (s *Service) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// ActiveLocation reports the location of the last successful fetch.
func (s *Service) ActiveLocation() (lat, lng float64, display string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return 0, 0, "", false
	}
	return s.active.lat, s.active.lng, s.active.display, true
}

// LastError returns the most recent provider error, or nil. It is cleared
// at the start of each CurrentWeather call.
func (s *Service) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Service) setState(lat, lng float64, display string, snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = &activeLocation{lat: lat, lng: lng, display: display}
	s.snapshot = snap
}
