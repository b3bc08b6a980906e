// Package cache provides byte-level caching for generated compositions and
// rendered artifacts, with file, Redis, and null backends.
//
// Keys are produced by a [Keyer] so that every component hashing the same
// inputs lands on the same entry: a composition key covers the seed and all
// generation parameters, an artifact key additionally covers the output
// format. Backends are interchangeable behind the [Cache] interface; the
// CLI uses the file backend, server deployments the Redis one.
package cache

import (
	"context"
	"time"
)

// TTLs per entry kind. Composition data is cheap to regenerate but small,
// artifacts are larger; both get generous lifetimes since entries are
// content-addressed and never go stale, only cold.
const (
	TTLComposition = 30 * 24 * time.Hour
	TTLArtifact    = 7 * 24 * time.Hour
)

// Cache is a byte-level cache with TTL support.
type Cache interface {
	// Get returns the entry for key. The boolean reports a hit; a miss is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the entry for key. Deleting a missing entry is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// CompositionKeyOpts are the generation parameters that distinguish one
// composition from another under the same seed.
type CompositionKeyOpts struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Padding      float64 `json:"padding"`
	ClusterCount int     `json:"cluster_count"`
}

// ArtifactKeyOpts are the render parameters that distinguish artifacts
// produced from the same composition.
type ArtifactKeyOpts struct {
	Format     string   `json:"format"`
	Scale      float64  `json:"scale,omitempty"`
	Disabled   []string `json:"disabled,omitempty"`
	PaintOrder []string `json:"paint_order,omitempty"`
}

// Keyer generates cache keys for the two entry kinds.
type Keyer interface {
	// CompositionKey keys a generated composition snapshot.
	CompositionKey(seed int64, opts CompositionKeyOpts) string

	// ArtifactKey keys a rendered artifact by its composition hash.
	ArtifactKey(compositionHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256 under a fixed prefix per
// entry kind.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// CompositionKey implements Keyer.
func (*DefaultKeyer) CompositionKey(seed int64, opts CompositionKeyOpts) string {
	return hashKey("composition", seed, opts)
}

// ArtifactKey implements Keyer.
func (*DefaultKeyer) ArtifactKey(compositionHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", compositionHash, opts)
}
