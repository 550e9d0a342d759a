package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/modaflow/backend/internal/port/cache"
)

// StorefrontCache wraps the cache port with JSON encoding and a single
// TTL. It serves the public read path (storefront config and catalog
// listings), where a short window of staleness is acceptable.
type StorefrontCache struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewStorefrontCache creates a StorefrontCache over c.
func NewStorefrontCache(c cache.Cache, ttl time.Duration) *StorefrontCache {
	return &StorefrontCache{cache: c, ttl: ttl}
}

// get loads and decodes the cached value for key into out. Cache
// failures count as misses.
func (c *StorefrontCache) get(ctx context.Context, key string, out any) bool {
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil || !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.Warn("cache entry corrupt, dropping", "key", key, "error", err)
		_ = c.cache.Delete(ctx, key)
		return false
	}
	return true
}

// set encodes and stores value under key, best-effort.
func (c *StorefrontCache) set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		slog.Warn("cache set failed", "key", key, "error", err)
	}
}

// invalidate removes key, best-effort.
func (c *StorefrontCache) invalidate(ctx context.Context, key string) {
	if err := c.cache.Delete(ctx, key); err != nil {
		slog.Warn("cache delete failed", "key", key, "error", err)
	}
}
