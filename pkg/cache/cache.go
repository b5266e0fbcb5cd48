// Package cache stores built models and rendered drawings between runs.
//
// The pipeline caches two things: the model built from a brief, keyed by a
// hash of the sanitized brief, and the documents rendered from a model,
// keyed by a hash of the model plus the format and drawing options. A
// [Keyer] turns those inputs into string keys; a [Cache] stores bytes
// under them.
//
// Two backends are provided: [FileCache] for the CLI and [NullCache] when
// caching is disabled.
package cache

import (
	"context"
	"time"
)

// Default lifetimes of cached entries.
const (
	// TTLModel is how long a built model stays valid. Models depend only on
	// the brief and the synthesis options, both part of the key.
	TTLModel = 30 * 24 * time.Hour

	// TTLDrawing is how long rendered documents stay valid.
	TTLDrawing = 7 * 24 * time.Hour
)

// Cache is a byte store with expiring entries. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired and
	// unreadable entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
