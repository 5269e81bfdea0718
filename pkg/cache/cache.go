// Package cache provides the artifact cache behind the svgstack pipeline.
//
// Stacking, rescaling and rasterizing are pure functions of their inputs,
// so their outputs can be stored under a key derived from those inputs and
// reused across CLI runs or API requests.
//
// # Backends
//
//   - [FileCache]: JSON entries under a directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by svgstack serve
//   - [NullCache]: never stores anything; disables caching
//
// # Keys
//
// A [Keyer] maps operation inputs to cache keys. [DefaultKeyer] hashes the
// SVG inputs with SHA-256 and mixes in every option that changes the
// output, so keys never collide across option sets. [ScopedKeyer] adds a
// namespace prefix in front of another keyer.
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached artifacts.
const (
	// TTLArtifact applies to composed, rescaled and rasterized outputs.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for
// backend failures. A ttl of zero means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache drops every write and misses every read. The pipeline uses it
// for --no-cache and when no cache directory is available.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
