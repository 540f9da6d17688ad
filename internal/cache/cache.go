// Package cache stores fetched article text between runs: a memory
// tier for the current process and an optional disk tier beneath it.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage contract shared by all tiers.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey derives the stable cache key for a URL. The version segment
// invalidates old entries when the text-extraction format changes.
func CacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "biaslab:v1:" + hex.EncodeToString(hash[:])
}
