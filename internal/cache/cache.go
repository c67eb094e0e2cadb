// Package cache implements the in-memory TTL caches backing the preview
// engine. Entries are immutable once written: a refresh replaces the whole
// entry, so readers never observe partial state.
package cache

import (
	"sync"
	"time"
)

// entry pairs a value with the time it was stored.
type entry[T any] struct {
	data  T
	stamp time.Time
}

// TTL is a TTL-bound key/value cache. Keys are exact strings; callers that
// need case-insensitive keys normalize before calling.
type TTL[T any] struct {
	mu    sync.RWMutex
	items map[string]entry[T]
	ttl   time.Duration
	now   func() time.Time
}

// Option configures a TTL cache.
type Option[T any] func(*TTL[T])

// WithNowFunc overrides the time source, for tests.
func WithNowFunc[T any](now func() time.Time) Option[T] {
	return func(c *TTL[T]) {
		c.now = now
	}
}

// New creates a cache whose entries expire ttl after being set.
func New[T any](ttl time.Duration, opts ...Option[T]) *TTL[T] {
	c := &TTL[T]{
		items: make(map[string]entry[T]),
		ttl:   ttl,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key and true when present and fresh.
func (c *TTL[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	var zero T
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.stamp) >= c.ttl {
		// Stale entries are dropped lazily on access.
		c.mu.Lock()
		if cur, still := c.items[key]; still && cur.stamp.Equal(e.stamp) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return e.data, true
}

// Set stores value under key, replacing any existing entry.
func (c *TTL[T]) Set(key string, value T) {
	c.mu.Lock()
	c.items[key] = entry[T]{data: value, stamp: c.now()}
	c.mu.Unlock()
}

// Delete removes a single entry.
func (c *TTL[T]) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Clear removes every entry.
func (c *TTL[T]) Clear() {
	c.mu.Lock()
	c.items = make(map[string]entry[T])
	c.mu.Unlock()
}

// Len returns the number of stored entries, fresh or not.
func (c *TTL[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
