// Package middleware provides HTTP middlewares for identity resolution and logging.
package middleware

import (
	"context"
	"net/http"

	"github.com/avolkovs/feedboard/internal/session"
)

type ctxKey string

const userKey ctxKey = "user"

// WithIdentity resolves the session cookie once per request and stores the
// authenticated username in the request context. It never rejects a request
// by itself: anonymous requests pass through with no identity, and each
// handler decides whether one is required.
func WithIdentity(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if username, ok := sessions.Identity(r); ok {
				r = r.WithContext(ContextWithIdentity(r.Context(), username))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ContextWithIdentity returns a context carrying username as the
// authenticated identity.
func ContextWithIdentity(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userKey, username)
}

// IdentityFromContext extracts the authenticated username from the request
// context. Returns an empty string if the request is anonymous.
func IdentityFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
