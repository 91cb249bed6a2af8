// Package cache provides content-addressed storage for computed layouts and
// rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server, backed by go-redis
//   - [NullCache]: caching disabled
//
// # Keys
//
// Keys are built by a [Keyer] from a hash of the input and the options that
// influence the output, so two requests share an entry only when they
// would compute byte-identical results. The layout engines themselves never
// consult the cache.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by every backend.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default time-to-live values per entry type.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
