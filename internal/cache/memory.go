package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/ppiankov/wordcloud/internal/model"
)

// MemoryCache keeps frequency mappings in process memory.
// Stored and returned mappings are copies so callers may mutate them.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache with the given default TTL
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

func (c *MemoryCache) Get(key string) (model.Frequencies, bool) {
	val, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	freq, ok := val.(model.Frequencies)
	if !ok {
		return nil, false
	}
	return freq.Clone(), true
}

// Set stores freq; ttl 0 uses the cache default
func (c *MemoryCache) Set(key string, freq model.Frequencies, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, freq.Clone(), ttl)
	return nil
}

func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}

// Len returns the number of cached mappings, including expired ones not yet swept
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}
