// Package cache stores rendered diagram artifacts between runs.
//
// Rendering an image through mmdc starts a headless browser and takes
// seconds, while the diagram text that determines the image is cheap to
// compute. Artifacts are therefore cached under a key derived from the
// format, the style and a hash of the diagram text: an unchanged workspace
// renders instantly on the next run.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry below a directory (CLI default)
//   - [RedisCache]: shared cache for `wsgraph serve` deployments
//   - [NullCache]: never stores anything (--no-cache)
//
// # Keys
//
// Keys come from a [Keyer]. [ScopedKeyer] prefixes every key, which lets
// several workspaces or deployments share one Redis database.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
