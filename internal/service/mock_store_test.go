package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/modaflow/backend/internal/domain"
	"github.com/modaflow/backend/internal/domain/order"
	"github.com/modaflow/backend/internal/domain/product"
	"github.com/modaflow/backend/internal/domain/tenant"
	"github.com/modaflow/backend/internal/domain/user"
	"github.com/modaflow/backend/internal/port/database"
)

// mockStore is an in-memory database.Store for service tests.
type mockStore struct {
	tenants  []tenant.Tenant
	products []product.Product
	orders   []order.Order
	users    []user.User

	createOrderErr error
}

var _ database.Store = (*mockStore)(nil)

// --- Tenants ---

func (m *mockStore) CreateTenant(_ context.Context, req *tenant.CreateRequest) (*tenant.Tenant, error) {
	for _, t := range m.tenants {
		if t.Slug == req.Slug {
			return nil, fmt.Errorf("create tenant %s: %w", req.Slug, domain.ErrConflict)
		}
	}
	t := tenant.Tenant{
		ID: uuid.NewString(), Name: req.Name, Slug: req.Slug,
		LogoURL: req.LogoURL, PrimaryColor: req.PrimaryColor, SecondaryColor: req.SecondaryColor,
		Categories: req.Categories, MenuItems: req.MenuItems,
		CheckoutMode: req.CheckoutMode, PixKey: req.PixKey,
		About: req.About, ContactEmail: req.ContactEmail, Phone: req.Phone,
		WhatsApp: req.WhatsApp, Address: req.Address,
		HeroTitle: req.HeroTitle, HeroSubtitle: req.HeroSubtitle, HeroImageURL: req.HeroImageURL,
		Active: true, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	m.tenants = append(m.tenants, t)
	return &t, nil
}

func (m *mockStore) GetTenant(_ context.Context, id string) (*tenant.Tenant, error) {
	for i := range m.tenants {
		if m.tenants[i].ID == id && m.tenants[i].Active {
			t := m.tenants[i]
			return &t, nil
		}
	}
	return nil, fmt.Errorf("get tenant %s: %w", id, domain.ErrNotFound)
}

func (m *mockStore) GetTenantBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	for i := range m.tenants {
		if m.tenants[i].Slug == slug && m.tenants[i].Active {
			t := m.tenants[i]
			return &t, nil
		}
	}
	return nil, fmt.Errorf("get tenant by slug %s: %w", slug, domain.ErrNotFound)
}

func (m *mockStore) ListTenants(_ context.Context) ([]tenant.Tenant, error) {
	var out []tenant.Tenant
	for _, t := range m.tenants {
		if t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockStore) UpdateTenant(_ context.Context, t *tenant.Tenant) error {
	for i := range m.tenants {
		if m.tenants[i].ID == t.ID {
			m.tenants[i] = *t
			return nil
		}
	}
	return fmt.Errorf("update tenant %s: %w", t.ID, domain.ErrNotFound)
}

func (m *mockStore) DeactivateTenant(_ context.Context, id string) error {
	for i := range m.tenants {
		if m.tenants[i].ID == id {
			m.tenants[i].Active = false
			return nil
		}
	}
	return fmt.Errorf("deactivate tenant %s: %w", id, domain.ErrNotFound)
}

// --- Products ---

func (m *mockStore) CreateProduct(_ context.Context, req *product.CreateRequest) (*product.Product, error) {
	p := product.Product{
		ID: uuid.NewString(), TenantID: req.TenantID, Name: req.Name,
		Description: req.Description, Price: req.Price, Category: req.Category,
		Images: req.Images, Sizes: req.Sizes, Stock: req.Stock, MinQuantity: req.MinQuantity,
		Active: true, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	m.products = append(m.products, p)
	return &p, nil
}

func (m *mockStore) GetProduct(_ context.Context, id string) (*product.Product, error) {
	for i := range m.products {
		if m.products[i].ID == id {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("get product %s: %w", id, domain.ErrNotFound)
}

func (m *mockStore) GetProductsByIDs(_ context.Context, tenantID string, ids []string) ([]product.Product, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []product.Product
	for _, p := range m.products {
		if want[p.ID] && p.TenantID == tenantID && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockStore) ListProducts(_ context.Context, f product.Filter) ([]product.Product, error) {
	var out []product.Product
	for _, p := range m.products {
		if !p.Active {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *mockStore) ListProductsByTenant(_ context.Context, tenantID string) ([]product.Product, error) {
	var out []product.Product
	for _, p := range m.products {
		if p.TenantID == tenantID && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockStore) UpdateProduct(_ context.Context, p *product.Product) error {
	for i := range m.products {
		if m.products[i].ID == p.ID {
			m.products[i] = *p
			return nil
		}
	}
	return fmt.Errorf("update product %s: %w", p.ID, domain.ErrNotFound)
}

func (m *mockStore) DeactivateProduct(_ context.Context, id string) error {
	for i := range m.products {
		if m.products[i].ID == id {
			m.products[i].Active = false
			return nil
		}
	}
	return fmt.Errorf("deactivate product %s: %w", id, domain.ErrNotFound)
}

// --- Orders ---

func (m *mockStore) CreateOrder(_ context.Context, o *order.Order) error {
	if m.createOrderErr != nil {
		return m.createOrderErr
	}
	// Persist verbatim; the orders table has no defaulted columns the
	// caller does not already set.
	m.orders = append(m.orders, *o)
	return nil
}

func (m *mockStore) GetOrder(_ context.Context, id string) (*order.Order, error) {
	for i := range m.orders {
		if m.orders[i].ID == id {
			o := m.orders[i]
			return &o, nil
		}
	}
	return nil, fmt.Errorf("get order %s: %w", id, domain.ErrNotFound)
}

func (m *mockStore) ListOrders(_ context.Context) ([]order.Order, error) {
	return append([]order.Order(nil), m.orders...), nil
}

func (m *mockStore) ListOrdersByTenant(_ context.Context, tenantID string) ([]order.Order, error) {
	var out []order.Order
	for _, o := range m.orders {
		if o.TenantID == tenantID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockStore) UpdateOrderStatus(_ context.Context, id string, status order.Status) (*order.Order, error) {
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = status
			o := m.orders[i]
			return &o, nil
		}
	}
	return nil, fmt.Errorf("update order %s: %w", id, domain.ErrNotFound)
}

func (m *mockStore) DeleteOrder(_ context.Context, id string) error {
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete order %s: %w", id, domain.ErrNotFound)
}

// --- Users ---

func (m *mockStore) CreateUser(_ context.Context, u *user.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return fmt.Errorf("create user %s: %w", u.Email, domain.ErrConflict)
		}
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	m.users = append(m.users, *u)
	return nil
}

func (m *mockStore) GetUser(_ context.Context, id string) (*user.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("get user %s: %w", id, domain.ErrNotFound)
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("get user by email %s: %w", email, domain.ErrNotFound)
}

func (m *mockStore) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return fmt.Errorf("update user password %s: %w", id, domain.ErrNotFound)
}

func (m *mockStore) ListUsers(_ context.Context) ([]user.User, error) {
	return append([]user.User(nil), m.users...), nil
}
