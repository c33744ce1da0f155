package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mausam/mausam/internal/api/models"
	"github.com/mausam/mausam/internal/api/response"
	"github.com/mausam/mausam/internal/favorites"
	"github.com/mausam/mausam/internal/location"
)

// FavoritesHandler handles saved-location endpoints.
type FavoritesHandler struct {
	favorites *favorites.Service
}

// NewFavoritesHandler creates a new FavoritesHandler.
func NewFavoritesHandler(svc *favorites.Service) *FavoritesHandler {
	return &FavoritesHandler{favorites: svc}
}

// List handles GET /v1/favorites - all saved locations.
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.favorites.List(r.Context())
	if items == nil {
		items = []location.Location{}
	}
	response.JSON(w, r, http.StatusOK, models.FavoritesResponse{Items: items})
}

// Add handles PUT /v1/favorites - save a location. Saving a location whose
// display name is already present is a no-op success.
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	var loc location.Location
	if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if strings.TrimSpace(loc.Display) == "" {
		response.BadRequest(w, r, "display is required", []models.FieldError{
			{Field: "display", Message: "must not be empty"},
		})
		return
	}
	if !location.ValidCoordinates(loc.Lat, loc.Lng) {
		response.BadRequest(w, r, "coordinates out of range", nil)
		return
	}

	if err := h.favorites.Add(r.Context(), loc); err != nil {
		response.InternalError(w, r, "failed to save favorite")
		return
	}

	response.NoContent(w, r)
}

// Remove handles DELETE /v1/favorites?display= - remove a saved location
// by exact display name.
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	display := r.URL.Query().Get("display")
	if display == "" {
		response.BadRequest(w, r, "display query parameter is required", nil)
		return
	}

	if err := h.favorites.Remove(r.Context(), display); err != nil {
		response.InternalError(w, r, "failed to remove favorite")
		return
	}

	response.NoContent(w, r)
}
