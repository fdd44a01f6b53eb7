package app

import (
	"context"
	"sync"
	"time"

	"sheetviz/domain/core"
	"sheetviz/domain/tabular"
)

// TableCache keeps parsed tables in memory so axis changes skip re-parsing
type TableCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[core.ID]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	table     *tabular.Table
	expiresAt time.Time
}

// NewTableCache creates a cache; a non-positive ttl disables caching
func NewTableCache(ttl time.Duration) *TableCache {
	return &TableCache{
		ttl:     ttl,
		entries: make(map[core.ID]cacheEntry),
		now:     time.Now,
	}
}

// Get returns a live entry
func (c *TableCache) Get(id core.ID) (*tabular.Table, bool) {
	c.mu.RLock()
	entry, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		if current, ok := c.entries[id]; ok && !c.now().Before(current.expiresAt) {
			delete(c.entries, id)
		}
		c.mu.Unlock()
		return nil, false
	}
	return entry.table, true
}

// Put stores a table until the ttl elapses. Expired entries of other ids are
// dropped on the way.
func (c *TableCache) Put(id core.ID, table *tabular.Table) {
	if c.ttl <= 0 || table == nil {
		return
	}
	now := c.now()
	c.mu.Lock()
	c.purgeLocked(now)
	c.entries[id] = cacheEntry{table: table, expiresAt: now.Add(c.ttl)}
	c.mu.Unlock()
}

// Delete drops an entry
func (c *TableCache) Delete(id core.ID) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

// Purge drops expired entries and returns how many were removed
func (c *TableCache) Purge() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.purgeLocked(now)
}

// RunJanitor purges expired entries every interval until ctx is done
func (c *TableCache) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Purge()
		}
	}
}

func (c *TableCache) purgeLocked(now time.Time) int {
	removed := 0
	for id, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries, expired or not
func (c *TableCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
