// Package cache holds previously fetched record batches in memory, keyed by
// owner and optional date. Entries are soft: any mutation touching a key
// invalidates it, and readers must never treat a hit as authoritative once
// a mutation has occurred.
package cache

import (
	"strings"
	"sync"

	"github.com/platefeed/platefeed-sync/internal/types"
)

// Cache is a process-local record cache. The zero value is not usable;
// construct with New.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]types.Record
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string][]types.Record)}
}

// Get returns the cached batch for key, or ok=false on a miss. The returned
// slice is a copy; callers may mutate it freely.
func (c *Cache) Get(key types.CollectionKey) ([]types.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	recs, ok := c.entries[key.String()]
	if !ok {
		return nil, false
	}
	out := make([]types.Record, len(recs))
	copy(out, recs)
	return out, true
}

// Put stores a batch for key, replacing any previous entry.
func (c *Cache) Put(key types.CollectionKey, records []types.Record) {
	cp := make([]types.Record, len(records))
	copy(cp, records)
	c.mu.Lock()
	c.entries[key.String()] = cp
	c.mu.Unlock()
}

// InvalidateKey drops the entry for one key.
func (c *Cache) InvalidateKey(key types.CollectionKey) {
	c.mu.Lock()
	delete(c.entries, key.String())
	c.mu.Unlock()
}

// Invalidate drops every entry belonging to ownerID, including the flat
// list and all date buckets.
func (c *Cache) Invalidate(ownerID string) {
	c.mu.Lock()
	for k := range c.entries {
		if k == ownerID || strings.HasPrefix(k, ownerID+"/") {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
