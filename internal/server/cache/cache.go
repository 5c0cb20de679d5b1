// Package cache provides the read-side cache used by the dashboard
// endpoints. The interface allows swapping the in-memory implementation
// (single instance, development) for Redis (multi-instance deployments)
// without touching handler code.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss indicates the key was not found in the cache.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a byte-value cache with per-key TTLs.
type Cache interface {
	// Get retrieves a value by key. Returns ErrCacheMiss if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
