package favorites

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ashishjangde/flip-weather/apperror"
	"github.com/ashishjangde/flip-weather/auth"
)

// Handler exposes the favorites HTTP surface. Every handler reads the
// authenticated user from the request context; the owner id used in store
// calls comes only from the verified session, never from the request body.
type Handler struct {
	store Store
}

// NewHandler creates the favorites handler.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the favorites endpoints. The router group is expected
// to be wrapped in auth.RequireUser; the handlers still verify the context
// user themselves rather than trust that the wrapping happened.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Delete("/", h.deleteByCity)
	r.Get("/{favoriteID}", h.getByID)
	r.Delete("/{favoriteID}", h.deleteByID)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		auth.WriteError(w, apperror.NewAuthError("not authenticated", nil))
		return
	}

	favorites, err := h.store.ListForUser(r.Context(), user.ID)
	if err != nil {
		auth.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, favorites)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		auth.WriteError(w, apperror.NewAuthError("not authenticated", nil))
		return
	}

	var req CreateFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, apperror.NewValidationError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if req.CityName == "" || req.CountryCode == "" || req.Lat == nil || req.Lon == nil {
		auth.WriteError(w, apperror.NewValidationError("cityName, countryCode, lat, and lon are required", nil))
		return
	}

	favorite, err := h.store.Create(r.Context(), user.ID, req.CityName, req.CountryCode, *req.Lat, *req.Lon)
	if err != nil {
		auth.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, favorite)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		auth.WriteError(w, apperror.NewAuthError("not authenticated", nil))
		return
	}

	id, err := parseFavoriteID(r)
	if err != nil {
		auth.WriteError(w, err)
		return
	}

	favorite, err := h.store.GetByID(r.Context(), id, user.ID)
	if err != nil {
		auth.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, favorite)
}

func (h *Handler) deleteByID(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		auth.WriteError(w, apperror.NewAuthError("not authenticated", nil))
		return
	}

	id, err := parseFavoriteID(r)
	if err != nil {
		auth.WriteError(w, err)
		return
	}

	if err := h.store.DeleteByID(r.Context(), id, user.ID); err != nil {
		auth.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (h *Handler) deleteByCity(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		auth.WriteError(w, apperror.NewAuthError("not authenticated", nil))
		return
	}

	var req DeleteByCityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, apperror.NewValidationError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if req.CityName == "" || req.CountryCode == "" {
		auth.WriteError(w, apperror.NewValidationError("cityName and countryCode are required", nil))
		return
	}

	if err := h.store.DeleteByCity(r.Context(), user.ID, req.CityName, req.CountryCode); err != nil {
		auth.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func parseFavoriteID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "favoriteID")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidationError("invalid favorite id", err)
	}
	return id, nil
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
