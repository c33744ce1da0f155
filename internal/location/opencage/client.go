// Package opencage provides an OpenCage geocoding API client.
package opencage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/mausam/mausam/internal/location"
	"github.com/mausam/mausam/internal/provider/resilience"
)

const (
	// ProviderName identifies this geocoding provider.
	ProviderName = "opencage"

	// DefaultBaseURL is the OpenCage geocoding API base URL.
	DefaultBaseURL = "https://api.opencagedata.com/geocode/v1"
)

// ClientConfig holds configuration for the OpenCage client.
type ClientConfig struct {
	// APIKey is the OpenCage API key (required).
	APIKey string

	// BaseURL is the API base URL (optional).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OpenCage geocoding API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new OpenCage client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
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

// Forward geocodes a free-text query, returning up to limit candidates.
func (c *Client) Forward(ctx context.Context, query string, limit int) ([]location.Candidate, error) {
	return c.geocode(ctx, query, limit)
}

// Reverse geocodes a coordinate pair, returning the single best candidate
// or nil when the provider has no match.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (*location.Candidate, error) {
	candidates, err := c.geocode(ctx, fmt.Sprintf("%f,%f", lat, lng), 1)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	return &candidates[0], nil
}

func (c *Client) geocode(ctx context.Context, query string, limit int) ([]location.Candidate, error) {
	if c.apiKey == "" {
		return nil, location.ErrMissingCredentials
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("key", c.apiKey)
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("language", "en")

	reqURL := fmt.Sprintf("%s/json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var ocResp geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&ocResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return c.toCandidates(&ocResp), nil
}

// toCandidates converts the OpenCage response to domain candidates.
// Missing geometry fields stay nil so the resolver's validity filter can
// drop them; no error is raised here.
func (c *Client) toCandidates(resp *geocodeResponse) []location.Candidate {
	candidates := make([]location.Candidate, 0, len(resp.Results))
	for _, r := range resp.Results {
		candidates = append(candidates, location.Candidate{
			Lat: r.Geometry.Lat,
			Lng: r.Geometry.Lng,
			Components: location.Components{
				City:         r.Components.City,
				Town:         r.Components.Town,
				Village:      r.Components.Village,
				Municipality: r.Components.Municipality,
				County:       r.Components.County,
				State:        r.Components.State,
				Region:       r.Components.Region,
				Country:      r.Components.Country,
			},
			Formatted: r.Formatted,
		})
	}
	return candidates
}

// OpenCage API response structures.

type geocodeResponse struct {
	Results []struct {
		Components struct {
			City         string `json:"city"`
			Town         string `json:"town"`
			Village      string `json:"village"`
			Municipality string `json:"municipality"`
			County       string `json:"county"`
			State        string `json:"state"`
			Region       string `json:"region"`
			Country      string `json:"country"`
		} `json:"components"`
		Formatted string `json:"formatted"`
		Geometry  struct {
			// Pointers so absent or non-numeric geometry is detectable.
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
	Status struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"status"`
}
