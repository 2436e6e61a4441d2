// Package cache stores compliance reports and adapted variants keyed by
// content hashes.
//
// Evaluating and adapting are pure functions of their inputs, so a result
// computed once for a given scene, guideline set and format can be served
// again without recomputation. The [Cache] interface is deliberately small
// so that backends can be swapped per deployment:
//
//   - [FileCache] for the CLI, under the user's cache directory
//   - [MemoryCache] for a single long-running server process
//   - [RedisCache] for servers sharing one cache
//   - [NullCache] when caching is disabled
//
// Keys come from a [Keyer], which hashes the inputs that determine a result.
// Wrap it in a [ScopedKeyer] to namespace keys, for example by release so
// that an upgrade never serves results of older rule sets.
package cache

import (
	"context"
	"time"
)

// Default TTLs.
const (
	TTLReport  = 7 * 24 * time.Hour
	TTLVariant = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiration.
//
// Get reports a miss with ok == false and a nil error. Implementations must
// be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data under key. A ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
// Clear returns the number of entries removed.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
