package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for evidence caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a stable cache key from an arbitrary identifier (a search
// query, a knowledge-base term)
func Key(id string) string {
	hash := sha256.Sum256([]byte(id))
	return "infolens:v1:" + hex.EncodeToString(hash[:])
}
