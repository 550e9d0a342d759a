package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/modaflow/backend/internal/domain/product"
)

const productColumns = `id, tenant_id, name, description, price, category,
	images, sizes, stock, min_quantity, active, created_at, updated_at`

func scanProduct(row scannable) (product.Product, error) {
	var p product.Product
	err := row.Scan(&p.ID, &p.TenantID, &p.Name, &p.Description, &p.Price,
		&p.Category, &p.Images, &p.Sizes, &p.Stock, &p.MinQuantity,
		&p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return product.Product{}, err
	}
	p.Images = orEmpty(p.Images)
	p.Sizes = orEmpty(p.Sizes)
	return p, nil
}

func (s *Store) CreateProduct(ctx context.Context, req *product.CreateRequest) (*product.Product, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO products (id, tenant_id, name, description, price, category,
			images, sizes, stock, min_quantity)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 RETURNING `+productColumns,
		uuid.NewString(), req.TenantID, req.Name, req.Description, req.Price,
		req.Category, pgTextArray(req.Images), pgTextArray(req.Sizes),
		req.Stock, req.MinQuantity)

	p, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, notFoundWrap(err, "get product %s", id)
	}
	return &p, nil
}

// GetProductsByIDs resolves active products belonging to tenantID.
// Missing, inactive or cross-tenant ids are absent from the result, so
// callers can detect them by comparing set sizes.
func (s *Store) GetProductsByIDs(ctx context.Context, tenantID string, ids []string) ([]product.Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE id = ANY($1) AND tenant_id = $2 AND active`,
		ids, tenantID)
	if err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListProducts returns active products across all tenants, narrowed by
// the given filter.
func (s *Store) ListProducts(ctx context.Context, f product.Filter) ([]product.Product, error) {
	var (
		where = []string{"active"}
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if f.Category != "" {
		where = append(where, "category = "+arg(f.Category))
	}
	if f.MinPrice != nil {
		where = append(where, "price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= "+arg(*f.MaxPrice))
	}
	if f.Search != "" {
		pattern := arg("%" + f.Search + "%")
		where = append(where, "(name ILIKE "+pattern+" OR description ILIKE "+pattern+")")
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE `+strings.Join(where, " AND ")+
			` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (s *Store) ListProductsByTenant(ctx context.Context, tenantID string) ([]product.Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE tenant_id = $1 AND active ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list products for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (s *Store) UpdateProduct(ctx context.Context, p *product.Product) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE products SET name = $2, description = $3, price = $4,
			category = $5, images = $6, sizes = $7, stock = $8,
			min_quantity = $9, updated_at = now()
		 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Price, p.Category,
		pgTextArray(p.Images), pgTextArray(p.Sizes), p.Stock, p.MinQuantity)
	return execExpectOne(tag, err, "update product %s", p.ID)
}

// DeactivateProduct soft-deletes a product. Existing order items keep
// referencing the row; only catalog listings stop returning it.
func (s *Store) DeactivateProduct(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE products SET active = FALSE, updated_at = now() WHERE id = $1`, id)
	return execExpectOne(tag, err, "deactivate product %s", id)
}

func collectProducts(rows pgx.Rows) ([]product.Product, error) {
	var products []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
