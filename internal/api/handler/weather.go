// Package handler provides HTTP handlers for the Mausam API.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/mausam/mausam/internal/api/models"
	"github.com/mausam/mausam/internal/api/response"
	"github.com/mausam/mausam/internal/forecast"
	"github.com/mausam/mausam/internal/location"
	"github.com/mausam/mausam/internal/weather"
)

// WeatherHandler handles weather endpoints.
type WeatherHandler struct {
	resolver *location.Resolver
	weather  *weather.Service

	// configured is false when either provider API key is absent, in
	// which case the combined query endpoint fails fast with a
	// configuration problem instead of a provider round trip.
	configured bool
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(resolver *location.Resolver, svc *weather.Service, configured bool) *WeatherHandler {
	return &WeatherHandler{
		resolver:   resolver,
		weather:    svc,
		configured: configured,
	}
}

// Query handles GET /v1/weather?q= - geocode the query, then fetch current
// weather for the first match. Zero matches is a success with an empty
// result set. A failure on the weather leg still returns the geocode
// results, with the provider's message in the error field.
func (h *WeatherHandler) Query(w http.ResponseWriter, r *http.Request) {
	if !h.configured {
		response.ConfigurationError(w, r, "weather provider credentials are not configured")
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		response.BadRequest(w, r, "query parameter q is required", nil)
		return
	}

	results := h.resolver.Suggest(r.Context(), q)
	if len(results) == 0 {
		response.JSON(w, r, http.StatusOK, models.WeatherQueryResponse{
			Results: []location.Location{},
		})
		return
	}

	first := results[0]
	snap, err := h.weather.CurrentWeather(r.Context(), first.Lat, first.Lng, first.Display)
	if err != nil {
		if errors.Is(err, weather.ErrMissingCredentials) {
			response.ConfigurationError(w, r, "weather provider credentials are not configured")
			return
		}
		response.JSON(w, r, http.StatusOK, models.WeatherQueryResponse{
			Results: results,
			Error:   weatherErrorMessage(err),
		})
		return
	}

	response.JSON(w, r, http.StatusOK, models.WeatherQueryResponse{
		Results: results,
		Weather: snap,
	})
}

// Current handles GET /v1/weather/current?lat=&lng=&name= - current
// conditions for an explicit coordinate.
func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	lat, lng, ok := parseCoordinates(w, r)
	if !ok {
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))

	snap, err := h.weather.CurrentWeather(r.Context(), lat, lng, name)
	if err != nil {
		h.writeWeatherError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, snap)
}

// HourlyForecast handles GET /v1/weather/forecast/hourly - the interpolated
// hourly temperature trend for the active location.
func (h *WeatherHandler) HourlyForecast(w http.ResponseWriter, r *http.Request) {
	series, display, ok := h.fetchSeries(w, r)
	if !ok {
		return
	}

	points := forecast.BuildHourlyTrend(series, h.weather.Snapshot(), h.weather.Now())
	response.JSON(w, r, http.StatusOK, models.HourlyForecastResponse{
		Location: display,
		Points:   points,
	})
}

// DailyForecast handles GET /v1/weather/forecast/daily - per-day summaries
// for the active location.
func (h *WeatherHandler) DailyForecast(w http.ResponseWriter, r *http.Request) {
	series, display, ok := h.fetchSeries(w, r)
	if !ok {
		return
	}

	response.JSON(w, r, http.StatusOK, models.DailyForecastResponse{
		Location: display,
		Days:     forecast.BuildDailySummary(series),
	})
}

// Lifestyle handles GET /v1/weather/lifestyle?units= - heat index and
// laundry/umbrella advice derived from the active location's snapshot.
// Temperatures are Celsius unless units=F.
func (h *WeatherHandler) Lifestyle(w http.ResponseWriter, r *http.Request) {
	units, ok := models.ParseTemperatureUnit(r.URL.Query().Get("units"))
	if !ok {
		response.BadRequest(w, r, "units must be C or F", []models.FieldError{
			{Field: "units", Message: "must be C or F"},
		})
		return
	}

	snap := h.weather.Snapshot()
	if snap == nil {
		response.Conflict(w, r, "no active location; fetch current weather first")
		return
	}

	heatIndex := weather.HeatIndex(snap.Temperature, snap.Humidity)
	response.JSON(w, r, http.StatusOK, models.LifestyleResponse{
		Location:       snap.DisplayName,
		Units:          units,
		HeatIndex:      units.FromCelsius(heatIndex),
		HeatIndexLabel: weather.HeatIndexLabel(heatIndex),
		Laundry:        weather.LaundryAdvice(snap.ConditionID, snap.Humidity, snap.CloudCover),
		Umbrella:       weather.UmbrellaAdvice(snap.ConditionID, snap.Temperature),
	})
}

func (h *WeatherHandler) fetchSeries(w http.ResponseWriter, r *http.Request) ([]weather.Sample, string, bool) {
	series, err := h.weather.ForecastSeries(r.Context())
	if err != nil {
		if errors.Is(err, weather.ErrNoActiveLocation) {
			response.Conflict(w, r, "no active location; fetch current weather first")
			return nil, "", false
		}
		h.writeWeatherError(w, r, err)
		return nil, "", false
	}

	_, _, display, _ := h.weather.ActiveLocation()
	return series, display, true
}

func (h *WeatherHandler) writeWeatherError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, weather.ErrMissingCredentials):
		response.ConfigurationError(w, r, "weather provider credentials are not configured")
	case errors.Is(err, weather.ErrInvalidCoordinates):
		response.BadRequest(w, r, "coordinates out of range", nil)
	default:
		var provErr *weather.ProviderError
		if errors.As(err, &provErr) {
			response.ProviderError(w, r, weatherErrorMessage(err))
			return
		}
		response.ServiceUnavailable(w, r, "weather provider unreachable")
	}
}

// weatherErrorMessage prefers the provider's own message when one exists.
func weatherErrorMessage(err error) string {
	var provErr *weather.ProviderError
	if errors.As(err, &provErr) && provErr.Message != "" {
		return provErr.Message
	}
	return "failed to fetch weather data"
}

// parseCoordinates reads and validates lat/lng query parameters, writing a
// 400 response on failure.
func parseCoordinates(w http.ResponseWriter, r *http.Request) (lat, lng float64, ok bool) {
	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")
	if latStr == "" || lngStr == "" {
		response.BadRequest(w, r, "lat and lng query parameters are required", nil)
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		response.BadRequest(w, r, "lat must be a number", []models.FieldError{
			{Field: "lat", Message: "must be a number"},
		})
		return 0, 0, false
	}

	lng, err = strconv.ParseFloat(lngStr, 64)
	if err != nil {
		response.BadRequest(w, r, "lng must be a number", []models.FieldError{
			{Field: "lng", Message: "must be a number"},
		})
		return 0, 0, false
	}

	return lat, lng, true
}
