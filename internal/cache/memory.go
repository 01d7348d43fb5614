package cache

import (
	"context"
	"sync"
	"time"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]RecommendationEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) RecommendationCache {
	return &memoryCache{
		entries: make(map[string]RecommendationEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *memoryCache) Get(ctx context.Context, userID string) (*RecommendationEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[userID]
	if !ok {
		return nil, false
	}
	if c.expired(entry) {
		delete(c.entries, userID)
		return nil, false
	}
	return &entry, true
}

func (c *memoryCache) Set(ctx context.Context, userID string, entry RecommendationEntry) {
	if entry.StoredAt.IsZero() {
		entry.StoredAt = c.now()
	}
	c.mu.Lock()
	c.entries[userID] = entry
	c.mu.Unlock()
}

func (c *memoryCache) Invalidate(ctx context.Context, userID string) {
	c.mu.Lock()
	delete(c.entries, userID)
	c.mu.Unlock()
}

func (c *memoryCache) Purge(ctx context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for userID, entry := range c.entries {
		if c.expired(entry) {
			delete(c.entries, userID)
			removed++
		}
	}
	return removed
}

func (c *memoryCache) Clear(ctx context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := len(c.entries)
	c.entries = make(map[string]RecommendationEntry)
	return removed
}

func (c *memoryCache) expired(entry RecommendationEntry) bool {
	return c.ttl > 0 && c.now().Sub(entry.StoredAt) >= c.ttl
}
