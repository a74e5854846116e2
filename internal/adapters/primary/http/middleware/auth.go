package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/kellan/jobwire/internal/auth"
	"github.com/kellan/jobwire/internal/core/domain"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// ClaimsKey is the key used to store verified token claims in the request context.
const ClaimsKey contextKey = "tokenClaims"

// InternalTokenHeader carries the shared secret on internal API calls.
const InternalTokenHeader = "X-Internal-Token"

// JWTMiddleware validates the JWT token from the Authorization header.
// Only access-class tokens are accepted.
func JWTMiddleware(tm *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Authorization header format must be Bearer {token}", http.StatusUnauthorized)
				return
			}

			claims, err := tm.Verify(parts[1])
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			if claims.TokenKind != domain.TokenAccess {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			// Add the claims to the context for downstream handlers to use.
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified claims stored by JWTMiddleware.
func ClaimsFromContext(ctx context.Context) (*domain.TokenClaims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*domain.TokenClaims)
	return claims, ok
}

// RequireRole rejects requests whose verified claims do not carry the
// given role. Must be mounted after JWTMiddleware.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || claims.Role != role {
				http.Error(w, "You do not have permission to perform this action", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// InternalToken authenticates service-to-service calls with a shared
// secret header. Comparison is constant time.
func InternalToken(token string) func(http.Handler) http.Handler {
	expected := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(InternalTokenHeader))
			if len(got) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
				http.Error(w, "Invalid internal token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
