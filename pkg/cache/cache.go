// Package cache stores computed layouts and rendered artifacts.
//
// Three implementations share the [Cache] interface:
//
//   - [FileCache]: JSON entries on local disk, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the HTTP server
//   - [NullCache]: stores nothing, used when caching is disabled
//
// Keys come from a [Keyer] so that every entry point derives the same key
// for the same spec and options. Keys are content hashes: a layout key
// hashes the resolved spec, an artifact key hashes the layout plus the
// render options.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiry. Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases underlying resources.
	Close() error
}

// Entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key for a diagram computed from a spec.
	LayoutKey(specHash string, opts LayoutKeyOpts) string
	// ArtifactKey returns the key for one rendered format of a diagram.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the options that change the computed diagram.
type LayoutKeyOpts struct {
	Unit          string
	Title         string
	NoAnnotations bool
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string
	ThemeHash  string
	Margin     float64
	PixelScale float64
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(specHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", specHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
