package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modaflow/backend/internal/domain"
	"github.com/modaflow/backend/internal/domain/authz"
	"github.com/modaflow/backend/internal/domain/product"
	"github.com/modaflow/backend/internal/domain/user"
	"github.com/modaflow/backend/internal/port/database"
)

// CatalogService manages tenant product catalogs.
type CatalogService struct {
	store database.Store
	cache *StorefrontCache
}

// NewCatalogService creates a new CatalogService. cache may be nil.
func NewCatalogService(store database.Store, c *StorefrontCache) *CatalogService {
	return &CatalogService{store: store, cache: c}
}

// Create validates and creates a product in the caller's catalog. The
// owning tenant must exist and be active.
func (s *CatalogService) Create(ctx context.Context, caller *user.User, req *product.CreateRequest) (*product.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !authz.Authorize(roleOf(caller), tenantOf(caller), req.TenantID, authz.ProductCreate) {
		return nil, fmt.Errorf("product create: %w", domain.ErrForbidden)
	}
	if _, err := s.store.GetTenant(ctx, req.TenantID); err != nil {
		return nil, fmt.Errorf("tenant %s: %w", req.TenantID, err)
	}

	p, err := s.store.CreateProduct(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.invalidateCatalog(ctx, p.TenantID)
	slog.Info("product created", "id", p.ID, "tenant", p.TenantID, "name", p.Name)
	return p, nil
}

// Get returns a product by ID.
func (s *CatalogService) Get(ctx context.Context, id string) (*product.Product, error) {
	return s.store.GetProduct(ctx, id)
}

// List returns active products across all tenants, narrowed by f.
func (s *CatalogService) List(ctx context.Context, f product.Filter) ([]product.Product, error) {
	return s.store.ListProducts(ctx, f)
}

// ListByTenant returns a tenant's active catalog. This is the hot
// storefront path and reads through the cache when one is configured.
func (s *CatalogService) ListByTenant(ctx context.Context, tenantID string) ([]product.Product, error) {
	if s.cache != nil {
		var ps []product.Product
		if ok := s.cache.get(ctx, catalogKey(tenantID), &ps); ok {
			return ps, nil
		}
	}

	ps, err := s.store.ListProductsByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.set(ctx, catalogKey(tenantID), ps)
	}
	return ps, nil
}

// Update applies a partial patch to a product. The owning tenant never
// changes.
func (s *CatalogService) Update(ctx context.Context, caller *user.User, id string, req *product.UpdateRequest) (*product.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.Authorize(roleOf(caller), tenantOf(caller), p.TenantID, authz.ProductUpdate) {
		return nil, fmt.Errorf("product update: %w", domain.ErrForbidden)
	}

	req.Apply(p)
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.invalidateCatalog(ctx, p.TenantID)
	return p, nil
}

// Delete deactivates a product. Historical orders keep referencing it.
func (s *CatalogService) Delete(ctx context.Context, caller *user.User, id string) error {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if !authz.Authorize(roleOf(caller), tenantOf(caller), p.TenantID, authz.ProductDelete) {
		return fmt.Errorf("product delete: %w", domain.ErrForbidden)
	}

	if err := s.store.DeactivateProduct(ctx, id); err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	s.invalidateCatalog(ctx, p.TenantID)
	slog.Info("product deactivated", "id", id, "tenant", p.TenantID)
	return nil
}

func (s *CatalogService) invalidateCatalog(ctx context.Context, tenantID string) {
	if s.cache == nil {
		return
	}
	s.cache.invalidate(ctx, catalogKey(tenantID))
	// The slug-keyed storefront payload embeds the catalog, so it goes
	// stale on product writes too.
	if t, err := s.store.GetTenant(ctx, tenantID); err == nil {
		s.cache.invalidate(ctx, storefrontKey(t.Slug))
	}
}

func catalogKey(tenantID string) string {
	return "catalog:" + tenantID
}
