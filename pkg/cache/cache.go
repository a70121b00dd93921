// Package cache stores rendered image blocks so repeat greetings skip chafa.
//
// Three layers:
//   - [Keyer] fingerprints a render: image content hash plus every option
//     that changes chafa's output.
//   - [Store] holds opaque bytes under a key within a size budget
//     ([FileStore], [RedisStore], [NullStore]).
//   - [RenderCache] ties them together and never lets a storage failure
//     break a render.
package cache

import (
	"context"
	"time"
)

// Store is a size-bounded key/value store for encoded render output.
//
// Implementations must publish entries atomically so a concurrent reader
// sees either the whole entry or none of it.
type Store interface {
	// Get returns the entry for key and marks it as recently used.
	// A missing entry is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key, evicting least recently used entries until
	// it fits the budget. Data larger than the whole budget returns ErrTooLarge.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes an entry. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Stats reports current usage.
	Stats(ctx context.Context) (Stats, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// Stats describes a store's usage.
type Stats struct {
	Backend  string
	Location string
	Entries  int
	Bytes    int64
	MaxBytes int64
	Oldest   time.Time
}

// DefaultMaxBytes is the default cache budget (64 MiB).
const DefaultMaxBytes int64 = 64 << 20
