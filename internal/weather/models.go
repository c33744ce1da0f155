package weather

import (
	"errors"
	"fmt"
	"time"
)

// Weather errors.
var (
	ErrMissingCredentials = errors.New("weather provider credentials missing")
	ErrNoActiveLocation   = errors.New("no active location")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// ProviderError carries an error reported by the upstream weather API,
// such as an unknown city or a rejected API key. It is never cached.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("weather provider error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("weather provider error: %s (status %d)", e.Message, e.StatusCode)
}

// Coord is a geographic point as reported by the provider.
type Coord struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Snapshot represents current conditions at a location.
type Snapshot struct {
	Coord Coord `json:"coord"`

	// Temperatures in Celsius
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`

	// Humidity percentage (0-100)
	Humidity float64 `json:"humidity"`

	// Wind speed in m/s
	WindSpeed float64 `json:"windSpeed"`

	// Cloud cover percentage (0-100)
	CloudCover float64 `json:"cloudCover"`

	// Weather condition
	ConditionID          int    `json:"conditionId"`
	ConditionMain        string `json:"conditionMain"`
	ConditionDescription string `json:"conditionDescription"`

	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`

	// DisplayName is the human-readable place name the snapshot was
	// requested under. It annotates the snapshot and is not part of
	// the cache identity.
	DisplayName string `json:"displayName"`

	// CachedAt is when the provider was last consulted for this data.
	CachedAt time.Time `json:"cachedAt"`
}

// Sample is one entry of the provider's 3-hour forecast series.
type Sample struct {
	Time          time.Time `json:"time"`
	Temperature   float64   `json:"temperature"`
	ConditionID   int       `json:"conditionId"`
	ConditionMain string    `json:"conditionMain"`
}

// validateCoordinates checks if coordinates are valid.
func validateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}
