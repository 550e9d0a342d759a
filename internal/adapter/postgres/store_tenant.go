package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/modaflow/backend/internal/domain/tenant"
)

const tenantColumns = `id, name, slug, logo_url, primary_color, secondary_color,
	categories, menu_items, checkout_mode, pix_key, about, contact_email,
	phone, whatsapp, address, hero_title, hero_subtitle, hero_image_url,
	active, created_at, updated_at`

func scanTenant(row scannable) (tenant.Tenant, error) {
	var t tenant.Tenant
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.LogoURL, &t.PrimaryColor,
		&t.SecondaryColor, &t.Categories, &t.MenuItems, &t.CheckoutMode,
		&t.PixKey, &t.About, &t.ContactEmail, &t.Phone, &t.WhatsApp,
		&t.Address, &t.HeroTitle, &t.HeroSubtitle, &t.HeroImageURL,
		&t.Active, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return tenant.Tenant{}, err
	}
	t.Categories = orEmpty(t.Categories)
	t.MenuItems = orEmpty(t.MenuItems)
	return t, nil
}

func (s *Store) CreateTenant(ctx context.Context, req *tenant.CreateRequest) (*tenant.Tenant, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO tenants (id, name, slug, logo_url, primary_color, secondary_color,
			categories, menu_items, checkout_mode, pix_key, about, contact_email,
			phone, whatsapp, address, hero_title, hero_subtitle, hero_image_url)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		 RETURNING `+tenantColumns,
		uuid.NewString(), req.Name, req.Slug, req.LogoURL, req.PrimaryColor,
		req.SecondaryColor, pgTextArray(req.Categories), pgTextArray(req.MenuItems),
		req.CheckoutMode, req.PixKey, req.About, req.ContactEmail, req.Phone,
		req.WhatsApp, req.Address, req.HeroTitle, req.HeroSubtitle, req.HeroImageURL)

	t, err := scanTenant(row)
	if err != nil {
		return nil, conflictWrap(err, "create tenant %s", req.Slug)
	}
	return &t, nil
}

func (s *Store) GetTenant(ctx context.Context, id string) (*tenant.Tenant, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
	t, err := scanTenant(row)
	if err != nil {
		return nil, notFoundWrap(err, "get tenant %s", id)
	}
	return &t, nil
}

func (s *Store) GetTenantBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE slug = $1`, slug)
	t, err := scanTenant(row)
	if err != nil {
		return nil, notFoundWrap(err, "get tenant by slug %s", slug)
	}
	return &t, nil
}

// ListTenants returns active tenants only; deactivated storefronts stay
// hidden from the public directory.
func (s *Store) ListTenants(ctx context.Context) ([]tenant.Tenant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE active ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []tenant.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (s *Store) UpdateTenant(ctx context.Context, t *tenant.Tenant) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tenants SET name = $2, logo_url = $3, primary_color = $4,
			secondary_color = $5, categories = $6, menu_items = $7,
			checkout_mode = $8, pix_key = $9, about = $10, contact_email = $11,
			phone = $12, whatsapp = $13, address = $14, hero_title = $15,
			hero_subtitle = $16, hero_image_url = $17, updated_at = now()
		 WHERE id = $1`,
		t.ID, t.Name, t.LogoURL, t.PrimaryColor, t.SecondaryColor,
		pgTextArray(t.Categories), pgTextArray(t.MenuItems), t.CheckoutMode,
		t.PixKey, t.About, t.ContactEmail, t.Phone, t.WhatsApp, t.Address,
		t.HeroTitle, t.HeroSubtitle, t.HeroImageURL)
	return execExpectOne(tag, err, "update tenant %s", t.ID)
}

// DeactivateTenant soft-deletes a tenant. The row is kept so existing
// orders retain their referential history.
func (s *Store) DeactivateTenant(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tenants SET active = FALSE, updated_at = now() WHERE id = $1`, id)
	return execExpectOne(tag, err, "deactivate tenant %s", id)
}
