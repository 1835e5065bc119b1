// Package cachemanager provides a generic TTL-bounded in-memory cache
// and a read-through wrapper for memoizing expensive computations.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is the generic cache contract. Entries are created
// lazily and replaced wholesale; there is no partial invalidation.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
	ItemCount() int
}
