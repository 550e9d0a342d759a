package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/modaflow/backend/internal/domain/user"
)

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		caller   *user.User
		allowed  []user.Role
		wantCode int
	}{
		{"anonymous rejected", nil, []user.Role{user.RoleAdmin}, http.StatusUnauthorized},
		{"admin allowed", &user.User{ID: "a1", Role: user.RoleAdmin}, []user.Role{user.RoleAdmin}, http.StatusOK},
		{"lojista allowed alongside admin", &user.User{ID: "u1", Role: user.RoleLojista}, []user.Role{user.RoleAdmin, user.RoleLojista}, http.StatusOK},
		{"customer forbidden", &user.User{ID: "c1", Role: user.RoleCustomer}, []user.Role{user.RoleAdmin, user.RoleLojista}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireRole(tt.allowed...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			if tt.caller != nil {
				req = req.WithContext(WithUser(req.Context(), tt.caller))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if tt.wantCode != http.StatusOK {
				if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
					t.Fatalf("expected JSON error body, got Content-Type %q", ct)
				}
			}
		})
	}
}
