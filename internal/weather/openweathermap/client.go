package openweathermap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mausam/mausam/internal/provider/resilience"
	"github.com/mausam/mausam/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "openweathermap"

	// DefaultBaseURL is the OpenWeatherMap API base URL.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
)

// ClientConfig holds configuration for the OpenWeatherMap client.
type ClientConfig struct {
	// APIKey is the OpenWeatherMap API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to OpenWeatherMap API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OpenWeatherMap API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new OpenWeatherMap client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig("openweathermap"))
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// CurrentWeather fetches current conditions for a location.
func (c *Client) CurrentWeather(ctx context.Context, lat, lng float64) (*weather.Snapshot, error) {
	if c.apiKey == "" {
		return nil, weather.ErrMissingCredentials
	}

	url := fmt.Sprintf("%s/weather?lat=%.6f&lon=%.6f&appid=%s&units=metric",
		c.baseURL, lat, lng, c.apiKey)

	var owmResp currentWeatherResponse
	if err := c.getJSON(ctx, url, &owmResp); err != nil {
		return nil, err
	}

	return toSnapshot(&owmResp), nil
}

// Forecast fetches the 5-day/3-hour forecast series for a location.
func (c *Client) Forecast(ctx context.Context, lat, lng float64) ([]weather.Sample, error) {
	if c.apiKey == "" {
		return nil, weather.ErrMissingCredentials
	}

	url := fmt.Sprintf("%s/forecast?lat=%.6f&lon=%.6f&appid=%s&units=metric",
		c.baseURL, lat, lng, c.apiKey)

	var owmResp forecastResponse
	if err := c.getJSON(ctx, url, &owmResp); err != nil {
		return nil, err
	}

	return toSeries(&owmResp), nil
}

// getJSON executes a GET request and decodes the response body. Non-2xx
// responses are decoded for the provider's message field and surfaced as
// a *weather.ProviderError.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &weather.ProviderError{
			StatusCode: resp.StatusCode,
			Message:    apiErr.Message,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// toSnapshot converts an OpenWeatherMap response to the domain model.
func toSnapshot(resp *currentWeatherResponse) *weather.Snapshot {
	snap := &weather.Snapshot{
		Coord: weather.Coord{
			Lat: resp.Coord.Lat,
			Lng: resp.Coord.Lon,
		},
		Temperature: resp.Main.Temp,
		FeelsLike:   resp.Main.FeelsLike,
		Humidity:    resp.Main.Humidity,
		WindSpeed:   resp.Wind.Speed,
		CloudCover:  resp.Clouds.All,
		Sunrise:     time.Unix(resp.Sys.Sunrise, 0),
		Sunset:      time.Unix(resp.Sys.Sunset, 0),
	}

	if len(resp.Weather) > 0 {
		snap.ConditionID = resp.Weather[0].ID
		snap.ConditionMain = resp.Weather[0].Main
		snap.ConditionDescription = resp.Weather[0].Description
	}

	return snap
}

// toSeries converts a forecast response to the domain sample series.
func toSeries(resp *forecastResponse) []weather.Sample {
	series := make([]weather.Sample, 0, len(resp.List))

	for _, entry := range resp.List {
		sample := weather.Sample{
			Time:        time.Unix(entry.Dt, 0),
			Temperature: entry.Main.Temp,
		}
		if len(entry.Weather) > 0 {
			sample.ConditionID = entry.Weather[0].ID
			sample.ConditionMain = entry.Weather[0].Main
		}
		series = append(series, sample)
	}

	return series
}

// OpenWeatherMap API response structures.

type currentWeatherResponse struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Sys struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
	Dt   int64  `json:"dt"`
	Name string `json:"name"`
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			ID   int    `json:"id"`
			Main string `json:"main"`
		} `json:"weather"`
	} `json:"list"`
}

type errorResponse struct {
	Cod     json.RawMessage `json:"cod"`
	Message string          `json:"message"`
}
