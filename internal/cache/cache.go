// Package cache is the cache-aside layer over the durable store. The store is
// always the source of truth; a stale or missing entry is repaired on the next
// read miss, so cache failures after a committed write never roll anything
// back.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss reports that a key is absent. Callers fall through to the store.
var ErrMiss = errors.New("cache miss")

// ListTTL bounds how long list/filter/search results live. Per-id entries are
// set without expiration and rely on explicit invalidation.
const ListTTL = time.Hour

//go:generate mockgen -source=cache.go -destination=mocks/cache_mock.go -package=mocks

// Cache is the narrow adapter the services and coordinator use. A zero ttl
// means no expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
