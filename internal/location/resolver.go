package location

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mausam/mausam/internal/cache"
)

// MaxSuggestions caps the combined suggestion list.
const MaxSuggestions = 5

// DefaultSuggestTTL is how long resolved suggestion lists stay cached.
// Place names do not move; a day is conservative.
const DefaultSuggestTTL = 24 * time.Hour

// ResolverConfig holds configuration for the Resolver.
type ResolverConfig struct {
	// Geocoder is the external geocoding provider.
	Geocoder Geocoder

	// Gazetteer is the bundled place list. Defaults to NepalGazetteer.
	Gazetteer *Gazetteer

	// Cache stores suggestion lists keyed by normalized query. Optional;
	// when nil, every Suggest call hits the gazetteer and geocoder.
	Cache *cache.Cache[[]Location]

	// SuggestTTL overrides DefaultSuggestTTL.
	SuggestTTL time.Duration

	// Logger for resolver operations.
	Logger zerolog.Logger
}

// Resolver converts free-text queries and coordinates into Locations.
//
// Forward resolution merges gazetteer matches with geocoder candidates:
// gazetteer matches always rank first, geocoder duplicates (by exact display
// string) are dropped, and the combined list is capped at MaxSuggestions.
// Geocoder failures degrade to gazetteer-only results; they are never
// surfaced to the caller as errors.
type Resolver struct {
	geocoder   Geocoder
	gazetteer  *Gazetteer
	cache      *cache.Cache[[]Location]
	suggestTTL time.Duration
	logger     zerolog.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	gazetteer := cfg.Gazetteer
	if gazetteer == nil {
		gazetteer = NepalGazetteer()
	}

	suggestTTL := cfg.SuggestTTL
	if suggestTTL == 0 {
		suggestTTL = DefaultSuggestTTL
	}

	return &Resolver{
		geocoder:   cfg.Geocoder,
		gazetteer:  gazetteer,
		cache:      cfg.Cache,
		suggestTTL: suggestTTL,
		logger:     cfg.Logger,
	}
}

// SuggestCacheKey derives the cache key for a suggestion query.
func SuggestCacheKey(query string) string {
	return "geocode_" + strings.ToLower(strings.TrimSpace(query))
}

// Suggest returns up to MaxSuggestions locations for a free-text query.
// Queries of one character or less return an empty list without any
// network call.
func (r *Resolver) Suggest(ctx context.Context, query string) []Location {
	query = strings.TrimSpace(query)
	if len([]rune(query)) <= 1 {
		return nil
	}

	cacheKey := SuggestCacheKey(query)
	if r.cache != nil {
		if cached, ok := r.cache.Get(ctx, cacheKey); ok {
			return cached
		}
	}

	// Gazetteer search and geocoder lookup run concurrently; the gazetteer
	// is instant, the geocoder is a network call.
	type geocodeResult struct {
		candidates []Candidate
		err        error
	}
	geocodeCh := make(chan geocodeResult, 1)
	go func() {
		candidates, err := r.geocoder.Forward(ctx, query, MaxSuggestions)
		geocodeCh <- geocodeResult{candidates: candidates, err: err}
	}()

	local := r.gazetteer.Search(query)

	remote := <-geocodeCh
	if remote.err != nil {
		r.logger.Warn().Err(remote.err).
			Str("query", query).
			Str("provider", r.geocoder.Name()).
			Msg("geocoder lookup failed, serving gazetteer matches only")
	}

	combined := mergeSuggestions(local, remote.candidates)

	if r.cache != nil && remote.err == nil {
		r.cache.Set(ctx, cacheKey, combined, r.suggestTTL)
	}

	return combined
}

// mergeSuggestions filters and names geocoder candidates, drops duplicates
// of gazetteer matches, and concatenates gazetteer-first up to the cap.
func mergeSuggestions(local []Location, candidates []Candidate) []Location {
	seen := make(map[string]struct{}, len(local))
	for _, l := range local {
		seen[l.Display] = struct{}{}
	}

	combined := local
	for _, c := range candidates {
		if !c.Valid() {
			continue
		}
		display := c.DisplayName()
		if _, dup := seen[display]; dup {
			continue
		}
		seen[display] = struct{}{}
		combined = append(combined, Location{
			Display: display,
			Lat:     *c.Lat,
			Lng:     *c.Lng,
			Origin:  OriginGeocoder,
		})
	}

	if len(combined) > MaxSuggestions {
		combined = combined[:MaxSuggestions]
	}
	return combined
}

// Reverse resolves a coordinate pair to a named Location. It never fails:
// any provider error or invalid result yields UnknownDisplay with the given
// coordinates, since weather remains retrievable from coordinates alone.
func (r *Resolver) Reverse(ctx context.Context, lat, lng float64) Location {
	loc := Location{Display: UnknownDisplay, Lat: lat, Lng: lng, Origin: OriginGPS}

	if !ValidCoordinates(lat, lng) {
		return loc
	}

	candidate, err := r.geocoder.Reverse(ctx, lat, lng)
	if err != nil {
		r.logger.Warn().Err(err).
			Float64("lat", lat).
			Float64("lng", lng).
			Str("provider", r.geocoder.Name()).
			Msg("reverse geocode failed, using fallback name")
		return loc
	}
	if candidate == nil || !candidate.Valid() {
		return loc
	}

	loc.Display = candidate.DisplayName()
	return loc
}
