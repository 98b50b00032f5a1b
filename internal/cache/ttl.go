// Package cache provides a small in-process memo table with expiry.
// It replaces the unbounded module-level cache object the destination catalog
// previously relied on: the cache is now an explicitly scoped value
// constructed in main and passed to its consumer, and stale entries expire.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value   V
	expires time.Time
}

// TTL is a mutex-guarded key/value memo table whose entries expire a fixed
// duration after being set. Expired entries are evicted lazily on read; there
// is no background sweeper, which is fine for the handful of country keys
// this cache holds.
type TTL[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[V]

	// now is swapped out in tests to control expiry.
	now func() time.Time
}

// NewTTL constructs a TTL cache whose entries live for ttl after each Set.
// A non-positive ttl means entries never expire.
func NewTTL[V any](ttl time.Duration) *TTL[V] {
	return &TTL[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Get returns the value for key and whether it was present and unexpired.
// An expired entry is removed and reported as a miss.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.ttl > 0 && c.now().After(e.expires) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, resetting its expiry.
func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, expires: c.now().Add(c.ttl)}
}

// Invalidate removes key if present.
func (c *TTL[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of stored entries, including any not yet evicted
// expired ones. Used by tests.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
