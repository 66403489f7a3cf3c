// Package cache stores generated shape sets between runs.
//
// # Overview
//
// Shape generation is deterministic: the same technology, primitive and
// instance always yield the same polygons. The [Cache] interface lets the
// pipeline reuse earlier results, keyed by a [Keyer] that hashes the
// technology fingerprint together with the request parameters.
//
// # Backends
//
//   - [NullCache]: stores nothing (caching disabled)
//   - [FileCache]: JSON entries under a local directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for several workers or hosts
//
// Backends that can drop every entry implement [Clearer].
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long shape sets stay cached. Results never go stale for
// an unchanged technology, so the TTL only bounds storage growth.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) error
}
