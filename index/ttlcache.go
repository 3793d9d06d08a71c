package index

import (
	"context"
	"sync"
	"time"
)

// TTLCache memoizes prefix lookups for a fixed duration. It is an
// explicit, caller-owned object: nothing in this module caches lookups
// behind the caller's back, and the TTL is a required parameter rather
// than a hidden process-wide default.
//
// Empty results are cached too; an orphan anchor staying an orphan for
// one TTL is the expected confirmation-lag behavior.
type TTLCache struct {
	inner Index
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	entries map[Prefix]cacheEntry
}

type cacheEntry struct {
	ids     []TxID
	expires time.Time
}

// NewTTLCache wraps inner with a cache holding each result for ttl.
func NewTTLCache(inner Index, ttl time.Duration) *TTLCache {
	return &TTLCache{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[Prefix]cacheEntry),
	}
}

func (c *TTLCache) FindByPrefix(ctx context.Context, p Prefix) ([]TxID, error) {
	now := c.now()

	c.mu.Lock()
	if e, ok := c.entries[p]; ok && now.Before(e.expires) {
		ids := append([]TxID(nil), e.ids...)
		c.mu.Unlock()
		return ids, nil
	}
	c.mu.Unlock()

	ids, err := c.inner.FindByPrefix(ctx, p)
	if err != nil {
		// Lookup failures are the index client's concern; never cached.
		return nil, err
	}

	stored := append([]TxID(nil), ids...)
	c.mu.Lock()
	c.entries[p] = cacheEntry{ids: stored, expires: now.Add(c.ttl)}
	c.mu.Unlock()

	return append([]TxID(nil), stored...), nil
}

// Purge drops every cached entry.
func (c *TTLCache) Purge() {
	c.mu.Lock()
	c.entries = make(map[Prefix]cacheEntry)
	c.mu.Unlock()
}
