// Package linkcache memoizes Fetcher results across concurrent searches.
//
// A link-cache entry is (key = page URL, value = link list, expiry = now +
// TTL). Concurrent Get/Put on any keys are safe. GetOrFetch coordinates
// concurrent misses on the same key through a single-flight group so only
// one underlying fetch is issued; a fetch failure never produces a cache
// entry, so the next call may retry.
package linkcache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// BackingStore is an optional durable extension of the in-process cache.
// It is consulted only on an in-process miss and is never part of
// single-flight coordination — the in-process registry alone is
// authoritative for that guarantee.
type BackingStore interface {
	Get(key string) (links []string, ok bool, err error)
	Put(key string, links []string) error
}

type entry struct {
	links  []string
	expiry time.Time
}

// Cache is the concurrency-safe, single-flight, TTL link cache of spec §4.1.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	group   singleflight.Group
	backing BackingStore
}

// Option configures a Cache at construction.
type Option func(*Cache)

// WithBackingStore wires an optional persistent backing store.
func WithBackingStore(b BackingStore) Option {
	return func(c *Cache) { c.backing = b }
}

// New creates a Cache with the given default TTL.
func New(ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached link list for key if present and unexpired.
func (c *Cache) Get(key string) ([]string, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && time.Now().Before(e.expiry) {
		return e.links, true
	}

	if c.backing == nil {
		return nil, false
	}

	links, ok, err := c.backing.Get(key)
	if err != nil || !ok {
		return nil, false
	}

	// Refresh the in-process entry so subsequent hits avoid the backing store.
	c.mu.Lock()
	c.entries[key] = entry{links: links, expiry: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return links, true
}

// Put atomically inserts or overwrites key's entry, resetting its expiry.
func (c *Cache) Put(key string, links []string) {
	c.mu.Lock()
	c.entries[key] = entry{links: links, expiry: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	if c.backing != nil {
		// Best-effort: a backing-store write failure does not invalidate
		// the in-process entry that single-flight callers already received.
		_ = c.backing.Put(key, links)
	}
}

// GetOrFetch returns the cached link list for key, or calls fetch exactly
// once per set of concurrent callers on a cold key (single-flight). A
// successful fetch result is cached with the cache's default TTL; an error
// is never cached, so the next call may retry.
func (c *Cache) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) ([]string, error)) ([]string, error) {
	if links, ok := c.Get(key); ok {
		return links, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Re-check under the single-flight group: another goroutine may
		// have populated the cache between our Get above and entering Do.
		if links, ok := c.Get(key); ok {
			return links, nil
		}

		links, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.Put(key, links)
		return links, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// Len reports the number of entries currently held in the in-process cache,
// including expired-but-not-yet-evicted ones.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
