package handler

import (
	"net/http"
	"strings"

	"github.com/mausam/mausam/internal/api/models"
	"github.com/mausam/mausam/internal/api/response"
	"github.com/mausam/mausam/internal/location"
)

// LocationsHandler handles location lookup endpoints.
type LocationsHandler struct {
	resolver *location.Resolver
}

// NewLocationsHandler creates a new LocationsHandler.
func NewLocationsHandler(resolver *location.Resolver) *LocationsHandler {
	return &LocationsHandler{resolver: resolver}
}

// Suggest handles GET /v1/locations/suggest?q= - ranked suggestions for a
// partial query. Queries of one character or less return an empty list
// without a provider call.
func (h *LocationsHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	results := h.resolver.Suggest(r.Context(), q)
	if results == nil {
		results = []location.Location{}
	}

	response.JSON(w, r, http.StatusOK, models.SuggestResponse{
		Query:   q,
		Results: results,
	})
}

// Reverse handles GET /v1/locations/reverse?lat=&lng= - best-effort place
// name for a coordinate. Lookup failures degrade to an unknown-location
// placeholder rather than an error.
func (h *LocationsHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	lat, lng, ok := parseCoordinates(w, r)
	if !ok {
		return
	}

	loc := h.resolver.Reverse(r.Context(), lat, lng)
	response.JSON(w, r, http.StatusOK, loc)
}
