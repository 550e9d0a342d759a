package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/modaflow/backend/internal/domain/user"
)

type authUserCtxKey struct{}

// TokenValidator validates a signed access token and returns its claims.
type TokenValidator interface {
	ValidateAccessToken(token string) (*user.TokenClaims, error)
}

// Auth returns middleware that validates Bearer credentials when present.
// Requests without credentials pass through unauthenticated; storefront
// reads and checkout are public, and role checks happen downstream via
// RequireRole. An invalid or expired token is always rejected.
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				// WebSocket clients cannot set headers; accept ?token=.
				token = r.URL.Query().Get("token")
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := validator.ValidateAccessToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			u := &user.User{
				ID:       claims.UserID,
				Email:    claims.Email,
				Name:     claims.Name,
				Role:     claims.Role,
				TenantID: claims.TenantID,
				Active:   true,
			}

			ctx := context.WithValue(r.Context(), authUserCtxKey{}, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeError emits the same JSON error shape the REST handlers use.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// bearerToken extracts the token from an Authorization: Bearer header,
// returning "" when the header is absent or malformed.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	return token
}

// UserFromContext returns the authenticated user from the request
// context, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *user.User {
	u, _ := ctx.Value(authUserCtxKey{}).(*user.User)
	return u
}

// WithUser returns a context carrying the given user. Exported for
// handler tests that need an authenticated request.
func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, authUserCtxKey{}, u)
}
