package weather

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ashishjangde/flip-weather/apperror"
	"github.com/ashishjangde/flip-weather/auth"
)

// searchLimit caps city autocomplete results.
const searchLimit = 10

// Handler exposes the weather lookups and city search over HTTP. These
// endpoints are public; no session is required to check the weather.
type Handler struct {
	service *Service
}

// NewHandler creates the weather handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the weather endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/weather", h.getWeather)
	r.Get("/cities", h.searchCities)
}

// getWeather answers ?city=NAME or ?lat=..&lon=.. lookups.
func (h *Handler) getWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city := q.Get("city")
	latStr, lonStr := q.Get("lat"), q.Get("lon")

	switch {
	case city != "":
		conditions, err := h.service.ByCity(city)
		if err != nil {
			auth.WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, conditions)

	case latStr != "" && lonStr != "":
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr != nil || lonErr != nil {
			auth.WriteError(w, apperror.NewValidationError("lat and lon must be numbers", nil))
			return
		}
		conditions, err := h.service.ByCoordinates(lat, lon)
		if err != nil {
			auth.WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, conditions)

	default:
		auth.WriteError(w, apperror.NewValidationError("missing required parameters: city or lat,lon", nil))
	}
}

// searchCities answers ?q=prefix autocomplete queries.
func (h *Handler) searchCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Search(r.URL.Query().Get("q"), searchLimit))
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}
