package models

import (
	"github.com/mausam/mausam/internal/forecast"
	"github.com/mausam/mausam/internal/location"
	"github.com/mausam/mausam/internal/weather"
)

// WeatherQueryResponse is the combined geocode-then-weather response for
// GET /v1/weather?q=.
type WeatherQueryResponse struct {
	// Results holds all geocode matches for the query, best first.
	Results []location.Location `json:"results"`

	// Weather holds conditions for the first result, or null when the
	// query matched nothing or the weather leg failed.
	Weather *weather.Snapshot `json:"weather"`

	// Error carries a human-readable message when the weather leg failed.
	Error string `json:"error,omitempty"`
}

// SuggestResponse lists location suggestions for a partial query.
type SuggestResponse struct {
	Query   string              `json:"query"`
	Results []location.Location `json:"results"`
}

// HourlyForecastResponse is the interpolated hourly temperature trend.
type HourlyForecastResponse struct {
	Location string                 `json:"location"`
	Points   []forecast.HourlyPoint `json:"points"`
}

// DailyForecastResponse summarizes the forecast per calendar day.
type DailyForecastResponse struct {
	Location string                  `json:"location"`
	Days     []forecast.DailySummary `json:"days"`
}

// LifestyleResponse carries weather-derived daily-living advice for the
// active location.
type LifestyleResponse struct {
	Location string          `json:"location"`
	Units    TemperatureUnit `json:"units"`

	// HeatIndex is the apparent temperature in the requested unit.
	HeatIndex      float64 `json:"heatIndex"`
	HeatIndexLabel string  `json:"heatIndexLabel"`

	Laundry weather.Advice `json:"laundry"`

	// Umbrella is null when no umbrella is needed.
	Umbrella *weather.Advice `json:"umbrella"`
}

// FavoritesResponse lists the saved locations.
type FavoritesResponse struct {
	Items []location.Location `json:"items"`
}
