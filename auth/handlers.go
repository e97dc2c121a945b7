package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ashishjangde/flip-weather/apperror"
)

// Handlers exposes the auth HTTP surface: register, login, logout, and the
// current-user probe.
type Handlers struct {
	service      *AuthService
	resolver     *Resolver
	cookieSecure bool
}

// NewHandlers creates the auth handlers.
func NewHandlers(service *AuthService, resolver *Resolver, cookieSecure bool) *Handlers {
	return &Handlers{service: service, resolver: resolver, cookieSecure: cookieSecure}
}

// RegisterRoutes mounts the auth endpoints on the router.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/me", h.handleMe)
}

// handleRegister creates a user and starts a session in one step: the
// response carries the profile and sets the session cookie.
func (h *Handlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apperror.NewValidationError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if req.Name == "" || req.Email == "" || req.Password == "" {
		WriteError(w, apperror.NewValidationError("name, email, and password are required", nil))
		return
	}

	user, token, err := h.service.Register(r.Context(), req)
	if err != nil {
		WriteError(w, err)
		return
	}

	SetAuthCookie(w, token, h.service.tokens.TTL(), h.cookieSecure)
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apperror.NewValidationError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if req.Email == "" || req.Password == "" {
		WriteError(w, apperror.NewValidationError("email and password are required", nil))
		return
	}

	user, token, err := h.service.Login(r.Context(), req)
	if err != nil {
		WriteError(w, err)
		return
	}

	SetAuthCookie(w, token, h.service.tokens.TTL(), h.cookieSecure)
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// handleLogout clears the session cookie. The token itself stays valid until
// its TTL elapses; there is no server-side revocation list.
func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	ClearAuthCookie(w, h.cookieSecure)
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// handleMe returns the current user's profile. It calls the full resolver
// itself; it is not mounted behind RequireUser because an unauthenticated
// probe is an expected outcome here, not a gated path.
func (h *Handlers) handleMe(w http.ResponseWriter, r *http.Request) {
	user := h.resolver.ResolveUser(r)
	if user == nil {
		WriteError(w, apperror.NewAuthError("not authenticated", nil))
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// writeJSON serializes data to the response with the given status.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError translates any error into the standard {error: string} payload.
// Errors that are not AppErrors become opaque 500s; internal detail never
// reaches the client.
func WriteError(w http.ResponseWriter, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}
	writeJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
