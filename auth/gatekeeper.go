package auth

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ashishjangde/flip-weather/apperror"
)

// DefaultProtectedPrefixes are the path prefixes the gatekeeper guards.
var DefaultProtectedPrefixes = []string{
	"/api/favorites",
	"/favorites",
	"/dashboard",
	"/profile",
}

// Gatekeeper is a pre-routing filter that cheaply rejects requests to
// protected paths when they carry no plausibly-shaped session token. It
// checks only the token's structure: no signature verification and no
// database lookup happen here. It is a UX optimization, not a security
// boundary: a forged token with the right shape passes, and it is the full
// resolver inside the handler chain that rejects it.
type Gatekeeper struct {
	prefixes []string
}

// NewGatekeeper creates a Gatekeeper for the given protected prefixes.
func NewGatekeeper(prefixes []string) *Gatekeeper {
	return &Gatekeeper{prefixes: prefixes}
}

// Middleware returns the gatekeeper as standard middleware. Unprotected paths
// pass through untouched. Protected API paths without a structurally valid
// token get a 401 JSON error; protected page paths are redirected to /login.
func (g *Gatekeeper) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if !g.isProtected(path) {
			next.ServeHTTP(w, r)
			return
		}

		token := TokenFromRequest(r)
		if token == "" || !hasValidStructure(token) {
			if strings.HasPrefix(path, "/api/") {
				WriteError(w, apperror.NewAuthError("authentication required", nil))
				return
			}
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (g *Gatekeeper) isProtected(path string) bool {
	for _, prefix := range g.prefixes {
		if path == prefix || strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// hasValidStructure checks the token's shape only: three dot-separated
// segments, with a base64 payload that decodes to JSON carrying non-empty id
// and email fields.
func hasValidStructure(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}

	payloadJSON, err := decodeSegment(parts[1])
	if err != nil {
		return false
	}

	var payload struct {
		ID    int    `json:"id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payloadJSON, &payload); err != nil {
		return false
	}
	return payload.ID != 0 && payload.Email != ""
}

func decodeSegment(seg string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(seg); err == nil {
		return b, nil
	}
	return base64.StdEncoding.DecodeString(seg)
}
