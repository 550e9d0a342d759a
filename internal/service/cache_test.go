package service

import (
	"context"
	"testing"
	"time"

	"github.com/modaflow/backend/internal/domain/tenant"
	"github.com/modaflow/backend/internal/port/cache"
)

// memCache is an in-memory cache.Cache without TTL enforcement.
type memCache struct {
	entries map[string][]byte
}

var _ cache.Cache = (*memCache)(nil)

func newMemCache() *memCache { return &memCache{entries: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.entries[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func TestStorefrontCacheRoundTrip(t *testing.T) {
	sc := NewStorefrontCache(newMemCache(), time.Minute)
	in := tenant.Tenant{ID: "t1", Name: "Aura", Slug: "aura"}

	sc.set(context.Background(), "storefront:aura", in)

	var out tenant.Tenant
	if ok := sc.get(context.Background(), "storefront:aura", &out); !ok {
		t.Fatal("expected cache hit")
	}
	if out.ID != "t1" || out.Slug != "aura" {
		t.Fatalf("round trip mismatch: %+v", out)
	}

	sc.invalidate(context.Background(), "storefront:aura")
	if ok := sc.get(context.Background(), "storefront:aura", &out); ok {
		t.Fatal("expected miss after invalidate")
	}
}

func TestStorefrontCacheCorruptEntryDropped(t *testing.T) {
	mc := newMemCache()
	mc.entries["storefront:aura"] = []byte("{not json")
	sc := NewStorefrontCache(mc, time.Minute)

	var out tenant.Tenant
	if ok := sc.get(context.Background(), "storefront:aura", &out); ok {
		t.Fatal("corrupt entry must read as a miss")
	}
	if _, still := mc.entries["storefront:aura"]; still {
		t.Fatal("corrupt entry must be dropped")
	}
}

func TestTenantGetBySlugReadsThroughCache(t *testing.T) {
	store := &mockStore{}
	if _, err := store.CreateTenant(context.Background(), &tenant.CreateRequest{
		Name: "Aura", Slug: "aura", CheckoutMode: tenant.CheckoutWhatsApp,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	mc := newMemCache()
	svc := NewTenantService(store, NewStorefrontCache(mc, time.Minute))

	first, err := svc.GetBySlug(context.Background(), "aura")
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if len(mc.entries) != 1 {
		t.Fatalf("expected cached storefront, got %d entries", len(mc.entries))
	}

	// Drop the backing row; the cached copy still serves.
	store.tenants = nil
	second, err := svc.GetBySlug(context.Background(), "aura")
	if err != nil {
		t.Fatalf("cached read: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("cache returned different tenant: %s vs %s", second.ID, first.ID)
	}
}
