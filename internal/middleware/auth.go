package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avilkin/blog-service/internal/auth"
	"github.com/gorilla/mux"
)

// CookieName is the session cookie the token travels in.
const CookieName = "token"

type contextKey struct{}

var claimsKey = contextKey{}

// Auth is the single authorization checkpoint for protected routes. It reads
// the session cookie, verifies the token and puts the decoded claims into the
// request context. A missing cookie and an invalid token produce distinct
// structured 401 responses; a failure never escapes as anything but JSON.
func Auth(tokens *auth.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil {
				unauthorized(w, auth.ErrTokenMissing.Error())
				return
			}

			claims, err := tokens.ParseSession(cookie.Value)
			if err != nil {
				if errors.Is(err, auth.ErrTokenMissing) {
					unauthorized(w, auth.ErrTokenMissing.Error())
					return
				}
				unauthorized(w, auth.ErrTokenInvalid.Error())
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the session claims the Auth middleware stored.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
