// Package cache stores rendered wallpaper artifacts.
//
// Rendering a PNG is cheap but not free, and the HTTP API may be asked for
// the same wallpaper many times. Artifacts are cached under a key derived
// from the full configuration, so any change to the input is a miss.
//
// Backends:
//   - [FileCache]: one JSON file per entry under the user cache directory (CLI)
//   - [RedisCache]: a shared Redis instance (HTTP API)
//   - [NullCache]: caching disabled
//
// Keys are built by a [Keyer]; [ScopedKeyer] adds a prefix so several
// surfaces can share one backend without collisions.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts are kept.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the data for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts holds the render settings that change artifact bytes
// without changing the placements.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Font   string  `json:"font,omitempty"`
	Ink    string  `json:"ink,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for one rendered format of a scene.
	// sceneHash identifies the configuration and jitter seed.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
