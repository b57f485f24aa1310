package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/wordcloud/internal/model"
)

// Cache stores frequency mappings keyed by a digest of the source text
type Cache interface {
	Get(key string) (model.Frequencies, bool)
	Set(key string, freq model.Frequencies, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key returns the cache key for a piece of text. The version segment
// changes whenever tokenization rules change.
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "wordcloud:v1:" + hex.EncodeToString(hash[:])
}

// New builds the cache described by cfg, or nil when caching is disabled
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
}
