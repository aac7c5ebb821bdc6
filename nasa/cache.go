package nasa

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultCacheTTL is the validity window of a cached NASA response. The
// cache is the primary defense against upstream rate limiting.
const DefaultCacheTTL = time.Hour

// Cache is the injectable response cache used by the fetch gateway. Tests
// substitute an implementation with a controllable clock.
type Cache interface {
	Get(key string) (json.RawMessage, bool)
	Set(key string, data json.RawMessage)
	Clear()
}

type cacheEntry struct {
	data     json.RawMessage
	storedAt time.Time
}

// MemoryCache is a process-lifetime in-memory Cache. Staleness is checked
// only at read time; a stale entry is never swept, only overwritten by the
// next successful fetch for its key.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	clock   clockwork.Clock
	entries map[string]cacheEntry
}

// NewMemoryCache creates a MemoryCache with the given TTL. A nil clock
// falls back to the wall clock.
func NewMemoryCache(ttl time.Duration, clock clockwork.Clock) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryCache{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached data for key if the entry is still within its TTL.
func (c *MemoryCache) Get(key string) (json.RawMessage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.clock.Since(entry.storedAt) >= c.ttl {
		return nil, false
	}
	return entry.data, true
}

// Set stores data under key, overwriting any prior entry.
func (c *MemoryCache) Set(key string, data json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{data: data, storedAt: c.clock.Now()}
}

// Clear drops every entry unconditionally.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len returns the number of stored entries, stale ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
