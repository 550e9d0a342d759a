// Package service implements the application use cases on top of the
// domain model and the port interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modaflow/backend/internal/domain"
	"github.com/modaflow/backend/internal/domain/authz"
	"github.com/modaflow/backend/internal/domain/product"
	"github.com/modaflow/backend/internal/domain/tenant"
	"github.com/modaflow/backend/internal/domain/user"
	"github.com/modaflow/backend/internal/port/database"
)

// Storefront is the public slug-lookup payload: the tenant plus its
// active catalog, so the storefront renders from a single fetch.
type Storefront struct {
	tenant.Tenant
	Products []product.Product `json:"products"`
}

// TenantService manages storefront tenant lifecycle.
type TenantService struct {
	store database.Store
	cache *StorefrontCache
}

// NewTenantService creates a new TenantService. cache may be nil.
func NewTenantService(store database.Store, c *StorefrontCache) *TenantService {
	return &TenantService{store: store, cache: c}
}

// Create validates and creates a new tenant. Only platform admins may
// provision storefronts.
func (s *TenantService) Create(ctx context.Context, caller *user.User, req *tenant.CreateRequest) (*tenant.Tenant, error) {
	if !authz.Authorize(roleOf(caller), tenantOf(caller), "", authz.TenantCreate) {
		return nil, fmt.Errorf("tenant create: %w", domain.ErrForbidden)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	t, err := s.store.CreateTenant(ctx, req)
	if err != nil {
		// The provisioning form reports a taken slug as a field error,
		// not a generic conflict.
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("slug already in use: %w", domain.ErrValidation)
		}
		return nil, fmt.Errorf("create tenant: %w", err)
	}
	slog.Info("tenant created", "id", t.ID, "slug", t.Slug)
	return t, nil
}

// Get returns a tenant by ID.
func (s *TenantService) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	return s.store.GetTenant(ctx, id)
}

// GetBySlug resolves the public storefront for a slug: the tenant and
// its active products together. Reads go through the storefront cache
// when one is configured.
func (s *TenantService) GetBySlug(ctx context.Context, slug string) (*Storefront, error) {
	if s.cache != nil {
		var sf Storefront
		if ok := s.cache.get(ctx, storefrontKey(slug), &sf); ok {
			return &sf, nil
		}
	}

	t, err := s.store.GetTenantBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	products, err := s.store.ListProductsByTenant(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("storefront products for %s: %w", slug, err)
	}
	if products == nil {
		products = []product.Product{}
	}

	sf := &Storefront{Tenant: *t, Products: products}
	if s.cache != nil {
		s.cache.set(ctx, storefrontKey(slug), sf)
	}
	return sf, nil
}

// List returns all active tenants.
func (s *TenantService) List(ctx context.Context) ([]tenant.Tenant, error) {
	return s.store.ListTenants(ctx)
}

// Update applies a partial patch to a tenant. LOJISTA callers may only
// update their own storefront; the slug never changes.
func (s *TenantService) Update(ctx context.Context, caller *user.User, id string, req *tenant.UpdateRequest) (*tenant.Tenant, error) {
	if !authz.Authorize(roleOf(caller), tenantOf(caller), id, authz.TenantUpdate) {
		return nil, fmt.Errorf("tenant update: %w", domain.ErrForbidden)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.store.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(t)
	if err := s.store.UpdateTenant(ctx, t); err != nil {
		return nil, fmt.Errorf("update tenant: %w", err)
	}
	if s.cache != nil {
		s.cache.invalidate(ctx, storefrontKey(t.Slug))
	}
	return t, nil
}

// Delete deactivates a tenant. Storefronts are never hard-deleted so
// existing orders keep a valid owner.
func (s *TenantService) Delete(ctx context.Context, caller *user.User, id string) error {
	if !authz.Authorize(roleOf(caller), tenantOf(caller), id, authz.TenantDelete) {
		return fmt.Errorf("tenant delete: %w", domain.ErrForbidden)
	}

	t, err := s.store.GetTenant(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeactivateTenant(ctx, id); err != nil {
		return fmt.Errorf("deactivate tenant: %w", err)
	}
	if s.cache != nil {
		s.cache.invalidate(ctx, storefrontKey(t.Slug))
	}
	slog.Info("tenant deactivated", "id", id, "slug", t.Slug)
	return nil
}

func storefrontKey(slug string) string {
	return "storefront:" + slug
}

// roleOf returns the caller's role, or "" for anonymous requests.
func roleOf(caller *user.User) user.Role {
	if caller == nil {
		return ""
	}
	return caller.Role
}

// tenantOf returns the caller's tenant id, or "" for anonymous requests.
func tenantOf(caller *user.User) string {
	if caller == nil {
		return ""
	}
	return caller.TenantID
}
