package auth

import (
	"context"
	"net/http"

	"github.com/ashishjangde/flip-weather/apperror"
)

// contextKey is a private type for context keys so other packages cannot
// collide with ours.
type contextKey string

const userContextKey contextKey = "auth_user"

// NewContextWithUser returns a child context carrying the resolved user.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the user placed in the context by RequireUser.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey).(*User)
	return user, ok && user != nil
}

// RequireUser runs the full resolver on every request and rejects those
// without a valid session. Unlike the gatekeeper this check is authoritative;
// handlers behind it read the user from the context and must still treat an
// absent user as a 401 rather than assume the middleware ran.
func RequireUser(resolver *Resolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := resolver.ResolveUser(r)
			if user == nil {
				WriteError(w, apperror.NewAuthError("not authenticated", nil))
				return
			}
			next.ServeHTTP(w, r.WithContext(NewContextWithUser(r.Context(), user)))
		})
	}
}
