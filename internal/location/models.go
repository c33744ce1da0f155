// Package location resolves free-text queries and coordinates to canonical
// locations, merging a bundled gazetteer with an external geocoding provider.
package location

import (
	"context"
	"errors"
	"strings"
)

// Location errors.
var (
	ErrMissingCredentials = errors.New("geocoding provider credentials missing")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// UnknownDisplay is the display name used when no usable name can be built.
const UnknownDisplay = "Unknown Location"

// Origin tags how a Location was produced.
type Origin string

const (
	OriginGazetteer Origin = "gazetteer"
	OriginGeocoder  Origin = "geocoder"
	OriginGPS       Origin = "gps"
	OriginFavorite  Origin = "favorite"
)

// Location is a canonical resolved place. Immutable once created.
type Location struct {
	// Display is a human-readable "City, Region, Country" string.
	// Never empty; falls back to a provider-formatted string, then to
	// UnknownDisplay.
	Display string `json:"display"`

	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`

	// Origin records which flow produced this location.
	Origin Origin `json:"origin,omitempty"`
}

// ValidCoordinates reports whether lat/lng are in range.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Components holds the structured place fields a geocoder may return.
// Any subset may be empty; providers are not consistent about which
// granularity they fill in.
type Components struct {
	City         string `json:"city,omitempty"`
	Town         string `json:"town,omitempty"`
	Village      string `json:"village,omitempty"`
	Municipality string `json:"municipality,omitempty"`
	County       string `json:"county,omitempty"`
	State        string `json:"state,omitempty"`
	Region       string `json:"region,omitempty"`
	Country      string `json:"country,omitempty"`
}

// Empty reports whether no component field is set.
func (c Components) Empty() bool {
	return c.City == "" && c.Town == "" && c.Village == "" && c.Municipality == "" &&
		c.County == "" && c.State == "" && c.Region == "" && c.Country == ""
}

// locality returns the most specific settlement-level component.
func (c Components) locality() string {
	for _, v := range []string{c.City, c.Town, c.Village, c.Municipality, c.County} {
		if v != "" {
			return v
		}
	}
	return ""
}

// region returns the state/region-level component.
func (c Components) region() string {
	if c.State != "" {
		return c.State
	}
	return c.Region
}

// Candidate is one raw geocoder result before validation and naming.
type Candidate struct {
	// Lat/Lng are nil when the provider omitted or mangled the geometry.
	Lat *float64
	Lng *float64

	Components Components

	// Formatted is the provider's pre-built display string, used as a
	// fallback when no structured components are usable.
	Formatted string
}

// Valid reports whether the candidate has numeric coordinates and at least
// one structured component. Invalid candidates are dropped silently.
func (c Candidate) Valid() bool {
	return c.Lat != nil && c.Lng != nil && !c.Components.Empty()
}

// DisplayName builds the canonical display string from the candidate's
// components in priority order city > state > country, falling back to the
// provider's formatted string, then to UnknownDisplay.
func (c Candidate) DisplayName() string {
	parts := make([]string, 0, 3)
	if v := c.Components.locality(); v != "" {
		parts = append(parts, v)
	}
	if v := c.Components.region(); v != "" {
		parts = append(parts, v)
	}
	if v := c.Components.Country; v != "" {
		parts = append(parts, v)
	}

	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	if c.Formatted != "" {
		return c.Formatted
	}
	return UnknownDisplay
}

// Geocoder is the external geocoding provider boundary.
type Geocoder interface {
	// Forward returns up to limit candidates for a free-text query.
	Forward(ctx context.Context, query string, limit int) ([]Candidate, error)

	// Reverse returns the single best candidate for a coordinate pair,
	// or nil when the provider has no match.
	Reverse(ctx context.Context, lat, lng float64) (*Candidate, error)

	// Name returns the provider name for logging.
	Name() string
}
