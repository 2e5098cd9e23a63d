package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	jwtutil "github.com/abenov/lingopal/pkg/jwt"
	"github.com/sirupsen/logrus"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "jwt"

type contextKey string

const userContextKey contextKey = "user"

// AuthMiddleware authenticates requests by the session cookie and stores
// the token claims in the request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				unauthorized(w, "Not authorized, token missing")
				return
			}

			claims, err := jwtutil.ParseToken(cookie.Value, secret)
			if err != nil {
				logrus.WithError(err).Warn("Rejected request with invalid session token")
				unauthorized(w, "Not authorized, token failed")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the authenticated user's claims, or nil when
// the request did not pass AuthMiddleware.
func GetUserFromContext(ctx context.Context) *jwtutil.Claims {
	claims, ok := ctx.Value(userContextKey).(*jwtutil.Claims)
	if !ok {
		return nil
	}
	return claims
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
