package auth

import (
	"net/http"
)

// Resolver turns an HTTP request into the authenticated user, or nil. It is
// the security boundary for every protected operation: the cookie token is
// cryptographically verified and the live user record is re-fetched, so a
// deleted account is rejected even while its token is still within TTL, and
// profile fields always reflect current data rather than the token payload.
type Resolver struct {
	store  UserStore
	tokens *TokenService
}

// NewResolver creates a Resolver.
func NewResolver(store UserStore, tokens *TokenService) *Resolver {
	return &Resolver{store: store, tokens: tokens}
}

// ResolveUser returns the current user for the request, or nil when the
// request carries no valid session. It never returns an error to the caller:
// an absent cookie, a failed verification, a vanished user, and a store
// failure all mean "not authenticated" here.
func (rs *Resolver) ResolveUser(r *http.Request) *User {
	token := TokenFromRequest(r)
	if token == "" {
		return nil
	}

	claims, err := rs.tokens.Verify(token)
	if err != nil {
		return nil
	}

	user, err := rs.store.FindByID(r.Context(), claims.UserID)
	if err != nil {
		return nil
	}
	return user
}
