// Package cache stores laid out reports and rendered artifacts.
//
// Layout is cheap next to rasterizing a large figure, but the CLI and the
// HTTP API both see the same figure files over and over. Entries are keyed
// by the content hash of the figure file plus every option that changes
// the output, so a stale entry can never be served for a changed input.
//
// Three backends are provided: [FileCache] under the user cache directory
// for the CLI, [RedisCache] for the server, and [NullCache] when caching
// is off.
package cache

import (
	"context"
	"time"
)

// Entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte store with expiry. Get reports a miss with ok == false
// and a nil error; errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}
