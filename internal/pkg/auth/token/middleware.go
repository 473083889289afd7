package token

import (
	"context"
	"net/http"
	"strings"

	"wsrelay/internal/pkg/logx"
)

// contextKey prevents collisions with context values set by other packages.
type contextKey string

// ContextClaimsKey is the context key under which verified claims are stored.
const ContextClaimsKey contextKey = "auth_claims"

// IdentityExtractorMiddleware verifies a bearer token from the Authorization
// header and injects its claims into the request context. It never rejects
// the request: a missing or invalid token leaves the request anonymous and
// lets downstream handlers decide.
func IdentityExtractorMiddleware(secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := BearerToken(r)
			if tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, ok := Verify(tokenString, secret)
			if !ok {
				logx.Warn("Invalid or expired token presented, treating request as anonymous")
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header, returning "" when the header is absent or malformed.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

// ClaimsFromContext returns the verified claims stored by the middleware.
// nil means the request is anonymous.
func ClaimsFromContext(r *http.Request) Claims {
	claims, ok := r.Context().Value(ContextClaimsKey).(Claims)
	if !ok {
		return nil
	}
	return claims
}
