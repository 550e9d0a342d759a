// Package database defines the database store port (interface).
package database

import (
	"context"

	"github.com/modaflow/backend/internal/domain/order"
	"github.com/modaflow/backend/internal/domain/product"
	"github.com/modaflow/backend/internal/domain/tenant"
	"github.com/modaflow/backend/internal/domain/user"
)

// Store is the port interface for database operations.
type Store interface {
	// Tenants
	CreateTenant(ctx context.Context, req *tenant.CreateRequest) (*tenant.Tenant, error)
	GetTenant(ctx context.Context, id string) (*tenant.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*tenant.Tenant, error)
	ListTenants(ctx context.Context) ([]tenant.Tenant, error)
	UpdateTenant(ctx context.Context, t *tenant.Tenant) error
	// DeactivateTenant clears the active flag; tenants are never hard-deleted.
	DeactivateTenant(ctx context.Context, id string) error

	// Products
	CreateProduct(ctx context.Context, req *product.CreateRequest) (*product.Product, error)
	GetProduct(ctx context.Context, id string) (*product.Product, error)
	// GetProductsByIDs resolves active products belonging to tenantID.
	// Missing, inactive or cross-tenant ids are simply absent from the result.
	GetProductsByIDs(ctx context.Context, tenantID string, ids []string) ([]product.Product, error)
	ListProducts(ctx context.Context, f product.Filter) ([]product.Product, error)
	ListProductsByTenant(ctx context.Context, tenantID string) ([]product.Product, error)
	UpdateProduct(ctx context.Context, p *product.Product) error
	DeactivateProduct(ctx context.Context, id string) error

	// Orders
	// CreateOrder persists the order and all its items atomically.
	CreateOrder(ctx context.Context, o *order.Order) error
	GetOrder(ctx context.Context, id string) (*order.Order, error)
	ListOrders(ctx context.Context) ([]order.Order, error)
	ListOrdersByTenant(ctx context.Context, tenantID string) ([]order.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status order.Status) (*order.Order, error)
	DeleteOrder(ctx context.Context, id string) error

	// Users
	CreateUser(ctx context.Context, u *user.User) error
	GetUser(ctx context.Context, id string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error
	ListUsers(ctx context.Context) ([]user.User, error)
}
