package server

import (
	"context"
	"sync"
	"time"
)

// cacheEntry holds a cached hierarchy dump with its timestamp.
type cacheEntry struct {
	dump      string
	timestamp time.Time
}

// TreeCache provides a TTL-based cache for hierarchy dumps, keyed by the
// foreground activity they were read under.
type TreeCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewTreeCache creates a new cache. A ttl of 0 disables caching.
func NewTreeCache(ttl time.Duration) *TreeCache {
	return &TreeCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Read returns the cached dump for activity if within TTL, otherwise calls
// fetch. Empty dumps are never cached.
func (c *TreeCache) Read(ctx context.Context, activity string, fetch func(context.Context) (string, error)) (string, error) {
	if c.ttl == 0 {
		return fetch(ctx)
	}

	c.mu.Lock()
	if entry, ok := c.entries[activity]; ok && c.now().Sub(entry.timestamp) < c.ttl {
		c.mu.Unlock()
		return entry.dump, nil
	}
	c.mu.Unlock()

	dump, err := fetch(ctx)
	if err != nil || dump == "" {
		return dump, err
	}

	c.mu.Lock()
	c.entries[activity] = cacheEntry{dump: dump, timestamp: c.now()}
	c.mu.Unlock()

	return dump, nil
}

// InvalidateActivity removes the entry for one activity.
func (c *TreeCache) InvalidateActivity(activity string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, activity)
}

// InvalidateAll clears the entire cache.
func (c *TreeCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
