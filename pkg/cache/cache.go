// Package cache provides TTL-based byte caching with pluggable backends.
//
// Three backends cover the deployment modes:
//   - memory: single-process default, used by the server for listings
//   - file: survives restarts, used by the CLI
//   - redis: shared cache for multi-instance deployments
//
// Values are opaque byte slices; callers JSON-encode what they store.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the interface implemented by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports a hit; a miss is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash returns the hex SHA-256 of data, used to derive stable cache keys
// and file names.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ListingsKey is the cache key for the college/degree listing.
const ListingsKey = "listings:colleges-degrees"

// RoadmapKey returns the cache key for a roadmap collection.
func RoadmapKey(collection string) string {
	return "roadmap:" + collection
}
