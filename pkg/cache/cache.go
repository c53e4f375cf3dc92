// Package cache provides caching for layout pipeline stages.
//
// The layout engine itself is a pure function, but hosts that lay out the
// same spec repeatedly (the HTTP API, watch-mode CLIs) skip recomputation by
// caching positioned output and exported artifacts keyed on content hashes.
//
// Backends:
//   - FileCache: on-disk cache for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: caching disabled
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// TTL constants for different cache entry kinds. Layouts are cheap to
// recompute, so entries are evictable without correctness concerns; the TTLs
// just bound disk and redis growth.
const (
	// TTLLayout is the lifetime of cached positioned output.
	TTLLayout = 24 * time.Hour

	// TTLExport is the lifetime of cached export artifacts (DOT, JSON).
	TTLExport = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A non-positive TTL stores the
	// entry without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the pipeline stages. Implementations must be
// deterministic: equal inputs always produce equal keys.
type Keyer interface {
	// LayoutKey generates a key for positioned-output caching from the spec
	// content hash and the layout options that influence geometry.
	LayoutKey(specHash string, opts LayoutKeyOpts) string

	// ExportKey generates a key for export artifact caching from the
	// positioned-output hash and the export options.
	ExportKey(layoutHash string, opts ExportKeyOpts) string
}

// LayoutKeyOpts are the options that change positioned output and therefore
// must be part of the layout cache key.
type LayoutKeyOpts struct {
	NodeWidth     float64
	NodeHeight    float64
	HorizontalGap float64
	VerticalGap   float64
	StartX        float64
	StartY        float64
}

// ExportKeyOpts are the options that change exported artifacts.
type ExportKeyOpts struct {
	Format string
}

// DefaultKeyer is the standard key generator. Keys embed a stage prefix and a
// SHA-256 hash of the inputs, so arbitrary user content never leaks into key
// strings.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for positioned-output caching.
func (k *DefaultKeyer) LayoutKey(specHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", specHash, opts)
}

// ExportKey generates a key for export artifact caching.
func (k *DefaultKeyer) ExportKey(layoutHash string, opts ExportKeyOpts) string {
	return hashKey("export", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

// hashKey derives a stage-prefixed key from a content hash plus the options
// that influence that stage's output. The options are folded into the hash so
// key strings stay fixed-length no matter what callers put in them.
func hashKey(stage string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return stage + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data. Pipeline stages use it to derive
// content-addressed keys from marshaled specs and diagrams, so identical
// inputs share cache entries across processes.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// =============================================================================
// NullCache
// =============================================================================

// NullCache satisfies Cache without storing anything: every Get is a miss and
// every Set is discarded. It backs --no-cache and the "off" backend, and keeps
// the pipeline free of nil checks.
type NullCache struct{}

// NewNullCache creates a cache that never stores.
func NewNullCache() Cache {
	return &NullCache{}
}

func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
