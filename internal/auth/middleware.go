package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type used for context keys in this package.
// Only this package can create keys of this type, so no other package can
// read or shadow the userID value stored in the request context.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth is a middleware that enforces authentication on protected
// routes. It reads the session token from the Authorization header (Bearer
// scheme) or the "token" HttpOnly cookie, validates it, and stores the
// userID in the request context. Missing or invalid tokens get a 401 and the
// chain stops there.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"valid authentication required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractUserID pulls the token from the request and validates it.
// Authorization: Bearer wins over the cookie when both are present, so API
// clients can override a stale browser session.
func extractUserID(r *http.Request, tokens *TokenService) (string, error) {
	tokenStr := ""

	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		tokenStr = strings.TrimPrefix(h, "Bearer ")
	} else if c, err := r.Cookie("token"); err == nil {
		tokenStr = c.Value
	}

	return tokens.Validate(tokenStr)
}

// UserIDFromContext returns the authenticated userID set by RequireAuth.
// The bool is false on routes where the middleware did not run.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}
