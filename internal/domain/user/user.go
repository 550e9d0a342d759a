// Package user defines the user model for authentication and roles.
package user

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/modaflow/backend/internal/domain"
)

// Role is the authorization level of a user. Roles form a capability
// set, not a hierarchy.
type Role string

const (
	// RoleAdmin may act on any tenant's resources.
	RoleAdmin Role = "ADMIN"
	// RoleLojista is a tenant-scoped manager; it may act only on its
	// own tenant's resources.
	RoleLojista Role = "LOJISTA"
	// RoleCustomer may place orders and read its own orders only.
	RoleCustomer Role = "CUSTOMER"
)

// ValidRoles is the set of all valid user roles.
var ValidRoles = map[Role]bool{
	RoleAdmin:    true,
	RoleLojista:  true,
	RoleCustomer: true,
}

// User is a registered account. LOJISTA users carry the tenant they
// manage in TenantID; for ADMIN and CUSTOMER it may be empty.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	TenantID     string    `json:"tenantId,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateRequest is the input for registering a new user.
type CreateRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	TenantID string `json:"tenantId,omitempty"`
}

// Validate checks that the CreateRequest has all required fields.
func (r *CreateRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required: %w", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("invalid email format: %w", domain.ErrValidation)
	}
	if r.Name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters: %w", domain.ErrValidation)
	}
	if !ValidRoles[r.Role] {
		return fmt.Errorf("invalid role: must be ADMIN, LOJISTA or CUSTOMER: %w", domain.ErrValidation)
	}
	if r.Role == RoleLojista && r.TenantID == "" {
		return fmt.Errorf("tenantId is required for LOJISTA users: %w", domain.ErrValidation)
	}
	return nil
}

// LoginRequest is the input for authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that the LoginRequest has all required fields.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required: %w", domain.ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("password is required: %w", domain.ErrValidation)
	}
	return nil
}

// LoginResponse is returned after successful authentication.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"` // seconds until the token expires
	User        User   `json:"user"`
}

// TokenClaims contains the JWT payload fields.
type TokenClaims struct {
	UserID   string `json:"sub"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	TenantID string `json:"tid,omitempty"`
	IssuedAt int64  `json:"iat"`
	Expiry   int64  `json:"exp"`
	Issuer   string `json:"iss"`
}
