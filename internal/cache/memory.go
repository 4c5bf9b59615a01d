package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory implements in-memory caching for evidence query results.
// Entries live only as long as their TTL; nothing is ever persisted, so no
// analysis outlives the process.
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates a new memory cache
func NewMemory(defaultTTL time.Duration, cleanupInterval time.Duration) *Memory {
	return &Memory{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache
func (c *Memory) Get(key string) (any, bool) {
	return c.cache.Get(key)
}

// Set stores a value in the cache with the given TTL
func (c *Memory) Set(key string, value any, ttl time.Duration) {
	c.cache.Set(key, value, ttl)
}

// Delete removes a value from the cache
func (c *Memory) Delete(key string) {
	c.cache.Delete(key)
}

// Clear removes all values from the cache
func (c *Memory) Clear() {
	c.cache.Flush()
}
