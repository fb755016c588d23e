// Package cache provides pluggable result caching for chart computations.
//
// A full chart computation is a pure function of the birth instant, the
// observer location, and the computation options, so results are safe to
// cache indefinitely under a content-derived key. Three backends are
// provided:
//   - file: directory-based cache for CLI usage (XDG cache dir)
//   - redis: shared cache for multi-instance server deployments
//   - null: disables caching
//
// Keys are produced by a Keyer so that callers never concatenate raw
// strings; the default keyer hashes the canonical JSON encoding of the
// key components with SHA-256.
package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for caching operations.
var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCacheMiss is returned when an item is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)

// TTLs per cached value type. Chart results are pure functions of their
// key, so they never go stale; the TTL only bounds disk growth.
const (
	TTLChart     = 30 * 24 * time.Hour
	TTLEphemeris = 30 * 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ChartKeyOpts carries the option fields that affect a chart computation.
// Two computations with identical instants, locations, and ChartKeyOpts
// produce identical results, so these are the only key inputs.
type ChartKeyOpts struct {
	HouseSystem string  `json:"house_system"`
	Ayanamsa    string  `json:"ayanamsa"`
	DashaDepth  int     `json:"dasha_depth"`
	JulianDay   float64 `json:"julian_day"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Keyer generates cache keys for the different cached value types.
type Keyer interface {
	// ChartKey generates a key for a full assembled chart result.
	ChartKey(opts ChartKeyOpts) string

	// EphemerisKey generates a key for a single body position lookup.
	EphemerisKey(body string, julianDay float64) string
}

// DefaultKeyer hashes key components into stable prefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ChartKey generates a key for a full assembled chart result.
func (k *DefaultKeyer) ChartKey(opts ChartKeyOpts) string {
	return hashKey("chart", opts)
}

// EphemerisKey generates a key for a single body position lookup.
func (k *DefaultKeyer) EphemerisKey(body string, julianDay float64) string {
	return hashKey("ephem", body, julianDay)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Useful when a shared Redis instance serves several deployments.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ChartKey generates a prefixed chart key.
func (k *ScopedKeyer) ChartKey(opts ChartKeyOpts) string {
	return k.prefix + k.inner.ChartKey(opts)
}

// EphemerisKey generates a prefixed ephemeris key.
func (k *ScopedKeyer) EphemerisKey(body string, julianDay float64) string {
	return k.prefix + k.inner.EphemerisKey(body, julianDay)
}
