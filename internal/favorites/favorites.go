// Package favorites persists the user's saved locations.
package favorites

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mausam/mausam/internal/cache"
	"github.com/mausam/mausam/internal/location"
)

// StorageKey is the single storage slot the favorites list lives under.
const StorageKey = "weather_favorites"

// Config holds configuration for the favorites service.
type Config struct {
	// Store persists the list. Required.
	Store cache.Store

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service manages an unordered list of favorite locations, identified by
// exact display-name equality.
type Service struct {
	store  cache.Store
	logger zerolog.Logger
}

// NewService creates a new favorites service.
func NewService(cfg Config) *Service {
	return &Service{
		store:  cfg.Store,
		logger: cfg.Logger,
	}
}

// List returns all favorites. A missing or malformed stored list is
// treated as empty.
func (s *Service) List(ctx context.Context) []location.Location {
	data, ok, err := s.store.Load(ctx, StorageKey)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load favorites")
		return nil
	}
	if !ok {
		return nil
	}

	var favs []location.Location
	if err := json.Unmarshal(data, &favs); err != nil {
		s.logger.Warn().Err(err).Msg("discarding malformed favorites list")
		return nil
	}

	return favs
}

// Add appends a location to the list. Adding a location whose display name
// is already present is a no-op.
func (s *Service) Add(ctx context.Context, loc location.Location) error {
	favs := s.List(ctx)

	for _, f := range favs {
		if f.Display == loc.Display {
			return nil
		}
	}

	return s.save(ctx, append(favs, loc))
}

// Remove deletes the location with the given display name. Removing an
// absent display name is a no-op.
func (s *Service) Remove(ctx context.Context, display string) error {
	favs := s.List(ctx)

	kept := favs[:0]
	for _, f := range favs {
		if f.Display != display {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(favs) {
		return nil
	}

	return s.save(ctx, kept)
}

// Contains reports whether a location with the given display name is saved.
func (s *Service) Contains(ctx context.Context, display string) bool {
	for _, f := range s.List(ctx) {
		if f.Display == display {
			return true
		}
	}
	return false
}

func (s *Service) save(ctx context.Context, favs []location.Location) error {
	data, err := json.Marshal(favs)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, StorageKey, data)
}
