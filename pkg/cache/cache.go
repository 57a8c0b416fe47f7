// Package cache provides layout and artifact caching for the word-cloud
// pipeline.
//
// Layouts are expensive (up to ten packing attempts per run) and artifacts
// are derived deterministically from them, so both are cached under
// content-hashed keys. Backends:
//   - FileCache: XDG cache directory, used by the CLI
//   - RedisCache: shared cache for server deployments
//   - NullCache: caching disabled
//
// Keys are produced by a Keyer so that CLI, server, and tests agree on the
// key layout; ScopedKeyer adds a prefix for multi-tenant isolation.
package cache

import (
	"context"
	"time"
)

// Cache TTLs per key type. Layouts depend only on their inputs and could
// live forever; bounded TTLs keep the cache from growing without limit.
const (
	// TTLLayout is the lifetime of cached layout computations.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A non-positive TTL stores
	// without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the inputs that distinguish one layout computation
// from another. Two runs with equal word hashes and equal opts may share a
// cached layout.
type LayoutKeyOpts struct {
	MaxWords  int
	Width     float64
	Height    float64
	Scale     string
	Spiral    string
	FontMin   float64
	FontMax   float64
	Padding   float64
	Rotations int
	Seed      uint64
}

// ArtifactKeyOpts are the inputs that distinguish one rendered artifact
// from another, on top of the layout it was rendered from.
type ArtifactKeyOpts struct {
	Format     string
	FontFamily string
	Transition int64 // milliseconds
	Tooltips   bool
	PNGScale   float64
	Seed       uint64
}

// Keyer generates cache keys. Implementations must be deterministic.
type Keyer interface {
	// LayoutKey generates a key for a layout computation, from the hash
	// of the input word list and the layout options.
	LayoutKey(wordsHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, from the hash
	// of the serialized layout and the render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the option structs into prefixed SHA-256 keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (k *DefaultKeyer) LayoutKey(wordsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", wordsHash, opts)
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
