// Package cache provides the layered store used for search provider
// responses and robots.txt data.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from arbitrary input (provider+query,
// robots host, ...). The version segment invalidates everything when the
// stored shape changes.
func Key(input string) string {
	hash := sha256.Sum256([]byte(input))
	return "veracity:v1:" + hex.EncodeToString(hash[:])
}
