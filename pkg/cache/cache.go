// Package cache stores rendered artifacts keyed by the content they were
// derived from.
//
// Rendering a layout through Graphviz is the only expensive step in rowgrid,
// so `rowgrid render` and the HTTP render endpoints consult a [Cache] first.
// Keys are content hashes of the layout plus the render options (see
// [Keyer]), which makes stale entries impossible: any change to the layout
// produces a different key.
//
// Two implementations are provided: [FileCache] under the XDG cache directory
// for the CLI, and [NullCache] when caching is disabled (--no-cache).
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts stay valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
