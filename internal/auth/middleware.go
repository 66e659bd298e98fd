package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/HerbHall/schooldesk/pkg/roles"
)

// authUserKey is a context key for the authenticated caller.
type authUserKey struct{}

// UserFromContext returns the authenticated caller from the request context.
// Returns nil if the request is not authenticated.
func UserFromContext(ctx context.Context) *Claims {
	if c, ok := ctx.Value(authUserKey{}).(*Claims); ok {
		return c
	}
	return nil
}

// WithUser returns a copy of ctx carrying claims.
func WithUser(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, authUserKey{}, claims)
}

// Public routes that don't require authentication, keyed by "METHOD path".
// The login screen reads the theme before anyone has signed in.
var publicRoutes = map[string]bool{
	"GET /api/v1/health":       true,
	"GET /api/v1/theme/colors": true,
	"GET /api/v1/theme/tokens": true,
}

// AuthMiddleware validates JWT access tokens on API routes.
// Public routes and non-API paths (healthz, readyz, metrics, theme.css) are skipped.
func AuthMiddleware(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				next.ServeHTTP(w, r)
				return
			}

			// WebSocket auth is handled by the WS handler via query param.
			if strings.HasPrefix(r.URL.Path, "/api/v1/ws/") {
				next.ServeHTTP(w, r)
				return
			}

			if publicRoutes[r.Method+" "+r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				writeAuthError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := tokens.ValidateAccessToken(tokenString)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid or expired access token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims)))
		})
	}
}

// RequireRole wraps next so only callers holding one of allowed reach it.
// It must run behind AuthMiddleware.
func RequireRole(next http.HandlerFunc, allowed ...roles.Role) http.HandlerFunc {
	set := roles.NewSet(allowed...)
	return func(w http.ResponseWriter, r *http.Request) {
		claims := UserFromContext(r.Context())
		if claims == nil {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !set.Has(claims.Role) {
			writeAuthError(w, http.StatusForbidden, "role "+claims.Role.String()+" may not perform this action")
			return
		}
		next(w, r)
	}
}

func writeAuthError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "https://schooldesk.dev/problems/auth-error",
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}
