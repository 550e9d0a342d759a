package http

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

// fakeStore is an in-memory database.Store for API tests.
type fakeStore struct {
	tenants  []tenant.Tenant
	products []product.Product
	orders   []order.Order
	users    []user.User
}

var _ database.Store = (*fakeStore)(nil)

func (m *fakeStore) CreateTenant(_ context.Context, req *tenant.CreateRequest) (*tenant.Tenant, error) {
	for _, t := range m.tenants {
		if t.Slug == req.Slug {
			return nil, fmt.Errorf("create tenant %s: %w", req.Slug, domain.ErrConflict)
		}
	}
	t := tenant.Tenant{
		ID: uuid.NewString(), Name: req.Name, Slug: req.Slug,
		PrimaryColor: req.PrimaryColor, SecondaryColor: req.SecondaryColor,
		CheckoutMode: req.CheckoutMode, PixKey: req.PixKey, WhatsApp: req.WhatsApp,
		Categories: req.Categories, Active: true,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	m.tenants = append(m.tenants, t)
	return &t, nil
}

func (m *fakeStore) GetTenant(_ context.Context, id string) (*tenant.Tenant, error) {
	for i := range m.tenants {
		if m.tenants[i].ID == id && m.tenants[i].Active {
			t := m.tenants[i]
			return &t, nil
		}
	}
	return nil, fmt.Errorf("get tenant %s: %w", id, domain.ErrNotFound)
}

func (m *fakeStore) GetTenantBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	for i := range m.tenants {
		if m.tenants[i].Slug == slug && m.tenants[i].Active {
			t := m.tenants[i]
			return &t, nil
		}
	}
	return nil, fmt.Errorf("get tenant by slug %s: %w", slug, domain.ErrNotFound)
}

func (m *fakeStore) ListTenants(_ context.Context) ([]tenant.Tenant, error) {
	var out []tenant.Tenant
	for _, t := range m.tenants {
		if t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *fakeStore) UpdateTenant(_ context.Context, t *tenant.Tenant) error {
	for i := range m.tenants {
		if m.tenants[i].ID == t.ID {
			m.tenants[i] = *t
			return nil
		}
	}
	return fmt.Errorf("update tenant %s: %w", t.ID, domain.ErrNotFound)
}

func (m *fakeStore) DeactivateTenant(_ context.Context, id string) error {
	for i := range m.tenants {
		if m.tenants[i].ID == id {
			m.tenants[i].Active = false
			return nil
		}
	}
	return fmt.Errorf("deactivate tenant %s: %w", id, domain.ErrNotFound)
}

func (m *fakeStore) CreateProduct(_ context.Context, req *product.CreateRequest) (*product.Product, error) {
	p := product.Product{
		ID: uuid.NewString(), TenantID: req.TenantID, Name: req.Name,
		Price: req.Price, Category: req.Category, MinQuantity: req.MinQuantity,
		Stock: req.Stock, Active: true, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	m.products = append(m.products, p)
	return &p, nil
}

func (m *fakeStore) GetProduct(_ context.Context, id string) (*product.Product, error) {
	for i := range m.products {
		if m.products[i].ID == id {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("get product %s: %w", id, domain.ErrNotFound)
}

func (m *fakeStore) GetProductsByIDs(_ context.Context, tenantID string, ids []string) ([]product.Product, error) {
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

func (m *fakeStore) ListProducts(_ context.Context, f product.Filter) ([]product.Product, error) {
	var out []product.Product
	for _, p := range m.products {
		if !p.Active {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *fakeStore) ListProductsByTenant(_ context.Context, tenantID string) ([]product.Product, error) {
	var out []product.Product
	for _, p := range m.products {
		if p.TenantID == tenantID && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *fakeStore) UpdateProduct(_ context.Context, p *product.Product) error {
	for i := range m.products {
		if m.products[i].ID == p.ID {
			m.products[i] = *p
			return nil
		}
	}
	return fmt.Errorf("update product %s: %w", p.ID, domain.ErrNotFound)
}

func (m *fakeStore) DeactivateProduct(_ context.Context, id string) error {
	for i := range m.products {
		if m.products[i].ID == id {
			m.products[i].Active = false
			return nil
		}
	}
	return fmt.Errorf("deactivate product %s: %w", id, domain.ErrNotFound)
}

func (m *fakeStore) CreateOrder(_ context.Context, o *order.Order) error {
	m.orders = append(m.orders, *o)
	return nil
}

func (m *fakeStore) GetOrder(_ context.Context, id string) (*order.Order, error) {
	for i := range m.orders {
		if m.orders[i].ID == id {
			o := m.orders[i]
			return &o, nil
		}
	}
	return nil, fmt.Errorf("get order %s: %w", id, domain.ErrNotFound)
}

func (m *fakeStore) ListOrders(_ context.Context) ([]order.Order, error) {
	return append([]order.Order(nil), m.orders...), nil
}

func (m *fakeStore) ListOrdersByTenant(_ context.Context, tenantID string) ([]order.Order, error) {
	var out []order.Order
	for _, o := range m.orders {
		if o.TenantID == tenantID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *fakeStore) UpdateOrderStatus(_ context.Context, id string, status order.Status) (*order.Order, error) {
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = status
			o := m.orders[i]
			return &o, nil
		}
	}
	return nil, fmt.Errorf("update order %s: %w", id, domain.ErrNotFound)
}

func (m *fakeStore) DeleteOrder(_ context.Context, id string) error {
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete order %s: %w", id, domain.ErrNotFound)
}

func (m *fakeStore) CreateUser(_ context.Context, u *user.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return fmt.Errorf("create user %s: %w", u.Email, domain.ErrConflict)
		}
	}
	m.users = append(m.users, *u)
	return nil
}

func (m *fakeStore) GetUser(_ context.Context, id string) (*user.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("get user %s: %w", id, domain.ErrNotFound)
}

func (m *fakeStore) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("get user by email %s: %w", email, domain.ErrNotFound)
}

func (m *fakeStore) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return fmt.Errorf("update user password %s: %w", id, domain.ErrNotFound)
}

func (m *fakeStore) ListUsers(_ context.Context) ([]user.User, error) {
	return append([]user.User(nil), m.users...), nil
}
