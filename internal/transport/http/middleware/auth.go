package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-contacts-api/internal/domain"
)

type contextKey string

const userKey contextKey = "current_user"

// SessionResolver turns a bearer token into the authenticated identity.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domain.CachedUser, error)
}

// Auth returns middleware that resolves the Bearer token and injects the
// authenticated user into the request context. A missing header is handed
// to the resolver as an empty token, so it fails the same way a malformed
// token does.
func Auth(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			u, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrBackendUnavailable) {
					writeJSONError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
					return
				}
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), userKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*domain.CachedUser, bool) {
	u, ok := ctx.Value(userKey).(*domain.CachedUser)
	return u, ok
}
