package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	values    []float64
	expiresAt time.Time
}

// In-process implementation of the ElevationCache port: a mutex-guarded map
// with per-entry TTL and a size bound. Entries are evicted lazily on read and
// swept on write when the bound is reached.
//
// Safe for concurrent use. Values for one key derive deterministically from
// the same coordinates, so racing writers are harmless.
type MemoryElevationCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	maxSize int
}

func NewMemoryElevationCache(maxSize int) *MemoryElevationCache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &MemoryElevationCache{
		entries: make(map[string]memoryEntry),
		maxSize: maxSize,
	}
}

// Get returns the cached elevations for key if present and not expired.
func (c *MemoryElevationCache) Get(_ context.Context, key string) ([]float64, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.values, true
}

// Put stores elevations under key for the given TTL.
func (c *MemoryElevationCache) Put(_ context.Context, key string, elevations []float64, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		now := time.Now()
		for k, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, k)
			}
		}
		// Still full after the sweep: reset rather than track LRU order.
		if len(c.entries) >= c.maxSize {
			c.entries = make(map[string]memoryEntry)
		}
	}

	c.entries[key] = memoryEntry{
		values:    elevations,
		expiresAt: time.Now().Add(ttl),
	}
}

// Len reports the number of stored entries, expired or not.
func (c *MemoryElevationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
