package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/modaflow/backend/internal/config"
	"github.com/modaflow/backend/internal/domain"
	"github.com/modaflow/backend/internal/domain/user"
)

func testAuthConfig() config.Auth {
	return config.Auth{
		JWTSecret:         "test-secret-at-least-32-bytes-long!!",
		AccessTokenExpiry: time.Hour,
		BcryptCost:        4, // min cost, tests only
	}
}

func TestAuthRegisterAndLogin(t *testing.T) {
	store := &mockStore{}
	svc := NewAuthService(store, testAuthConfig())
	admin := &user.User{ID: "a1", Role: user.RoleAdmin}

	u, err := svc.Register(context.Background(), admin, &user.CreateRequest{
		Email:    "maria@shop.com",
		Name:     "Maria",
		Password: "hunter2hunter2",
		Role:     user.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.PasswordHash == "hunter2hunter2" {
		t.Fatal("password must be hashed")
	}
	if !u.Active {
		t.Fatal("new users start active")
	}

	resp, err := svc.Login(context.Background(), &user.LoginRequest{
		Email: "maria@shop.com", Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.ExpiresIn != 3600 {
		t.Fatalf("unexpected login response: %+v", resp)
	}

	claims, err := svc.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != u.ID || claims.Email != "maria@shop.com" || claims.Role != user.RoleCustomer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthRegisterForbiddenForNonAdmin(t *testing.T) {
	svc := NewAuthService(&mockStore{}, testAuthConfig())
	lojista := &user.User{ID: "u1", Role: user.RoleLojista, TenantID: "t1"}

	_, err := svc.Register(context.Background(), lojista, &user.CreateRequest{
		Email: "x@y.z", Name: "X", Password: "hunter2hunter2", Role: user.RoleCustomer,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestAuthLoginFailures(t *testing.T) {
	store := &mockStore{}
	svc := NewAuthService(store, testAuthConfig())
	admin := &user.User{ID: "a1", Role: user.RoleAdmin}

	u, err := svc.Register(context.Background(), admin, &user.CreateRequest{
		Email: "maria@shop.com", Name: "Maria", Password: "hunter2hunter2", Role: user.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name string
		req  user.LoginRequest
		prep func()
	}{
		{"unknown email", user.LoginRequest{Email: "ghost@shop.com", Password: "hunter2hunter2"}, nil},
		{"wrong password", user.LoginRequest{Email: "maria@shop.com", Password: "wrong-password"}, nil},
		{"inactive account", user.LoginRequest{Email: "maria@shop.com", Password: "hunter2hunter2"}, func() {
			for i := range store.users {
				if store.users[i].ID == u.ID {
					store.users[i].Active = false
				}
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prep != nil {
				tt.prep()
			}
			_, err := svc.Login(context.Background(), &tt.req)
			if !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected forbidden, got %v", err)
			}
			// All failures read the same to the caller.
			if !strings.Contains(err.Error(), "invalid credentials") {
				t.Fatalf("expected opaque credential error, got %v", err)
			}
		})
	}
}

func TestAuthTamperedTokenRejected(t *testing.T) {
	store := &mockStore{}
	svc := NewAuthService(store, testAuthConfig())
	admin := &user.User{ID: "a1", Role: user.RoleAdmin}

	if _, err := svc.Register(context.Background(), admin, &user.CreateRequest{
		Email: "maria@shop.com", Name: "Maria", Password: "hunter2hunter2", Role: user.RoleCustomer,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	resp, err := svc.Login(context.Background(), &user.LoginRequest{
		Email: "maria@shop.com", Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	parts := strings.SplitN(resp.AccessToken, ".", 3)
	forged := parts[0] + "." + base64URLEncode([]byte(`{"uid":"a1","role":"ADMIN","exp":9999999999,"iss":"modaflow-api"}`)) + "." + parts[2]
	if _, err := svc.ValidateAccessToken(forged); err == nil {
		t.Fatal("forged payload must not validate")
	}

	if _, err := svc.ValidateAccessToken("not.a.token"); err == nil {
		t.Fatal("garbage token must not validate")
	}
	if _, err := svc.ValidateAccessToken("no-dots-at-all"); err == nil {
		t.Fatal("malformed token must not validate")
	}
}

func TestAuthExpiredTokenRejected(t *testing.T) {
	cfg := testAuthConfig()
	cfg.AccessTokenExpiry = -time.Minute
	store := &mockStore{}
	svc := NewAuthService(store, cfg)
	admin := &user.User{ID: "a1", Role: user.RoleAdmin}

	if _, err := svc.Register(context.Background(), admin, &user.CreateRequest{
		Email: "maria@shop.com", Name: "Maria", Password: "hunter2hunter2", Role: user.RoleCustomer,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	resp, err := svc.Login(context.Background(), &user.LoginRequest{
		Email: "maria@shop.com", Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.ValidateAccessToken(resp.AccessToken); err == nil {
		t.Fatal("expired token must not validate")
	}
}

func TestAuthSeedDefaultAdmin(t *testing.T) {
	cfg := testAuthConfig()
	cfg.DefaultAdminEmail = "admin@modaflow.local"
	cfg.DefaultAdminPass = "changeme-please"

	store := &mockStore{}
	svc := NewAuthService(store, cfg)

	if err := svc.SeedDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(store.users) != 1 || store.users[0].Role != user.RoleAdmin {
		t.Fatalf("expected one seeded admin, got %+v", store.users)
	}

	// Idempotent: a populated user table is left alone.
	if err := svc.SeedDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("seed must be a no-op on populated table, got %d users", len(store.users))
	}
}

func TestAuthSeedDisabledWithoutPassword(t *testing.T) {
	store := &mockStore{}
	svc := NewAuthService(store, testAuthConfig())

	if err := svc.SeedDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(store.users) != 0 {
		t.Fatal("seed without configured password must create nothing")
	}
}

func TestAuthAdminResetPassword(t *testing.T) {
	store := &mockStore{}
	svc := NewAuthService(store, testAuthConfig())
	admin := &user.User{ID: "a1", Role: user.RoleAdmin}

	if _, err := svc.Register(context.Background(), admin, &user.CreateRequest{
		Email: "maria@shop.com", Name: "Maria", Password: "hunter2hunter2", Role: user.RoleCustomer,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.AdminResetPassword(context.Background(), "maria@shop.com", "short"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}

	if err := svc.AdminResetPassword(context.Background(), "maria@shop.com", "new-password-1"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if _, err := svc.Login(context.Background(), &user.LoginRequest{
		Email: "maria@shop.com", Password: "hunter2hunter2",
	}); err == nil {
		t.Fatal("old password must no longer work")
	}
	if _, err := svc.Login(context.Background(), &user.LoginRequest{
		Email: "maria@shop.com", Password: "new-password-1",
	}); err != nil {
		t.Fatalf("new password login: %v", err)
	}
}
