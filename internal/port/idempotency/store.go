// Package idempotency defines the keyed response store port used to
// deduplicate checkout submissions.
package idempotency

import (
	"context"
	"time"
)

// Store holds previously produced responses keyed by client-supplied
// idempotency keys.
type Store interface {
	// Get returns the stored value for key, with ok=false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value under key for the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
