package cache

import (
	"time"

	"github.com/ppiankov/wordcloud/internal/model"
)

// LayeredCache checks memory first and falls back to disk
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache creates a memory + disk cache
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

// Get returns a cached mapping, promoting disk hits into memory
func (c *LayeredCache) Get(key string) (model.Frequencies, bool) {
	if freq, found := c.memory.Get(key); found {
		return freq, true
	}

	if freq, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, freq, 0)
		return freq, true
	}

	return nil, false
}

// Set stores the mapping in both layers
func (c *LayeredCache) Set(key string, freq model.Frequencies, ttl time.Duration) error {
	if err := c.memory.Set(key, freq, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, freq, ttl)
}

func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
