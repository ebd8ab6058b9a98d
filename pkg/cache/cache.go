// Package cache stores rendered artifacts keyed by a hash of everything
// that went into them.
//
// Only artifacts that do not embed the chart instance ID are worth caching:
// two runs over the same input draw the same PNG or Graphviz layout, but
// their SVG and JSON carry different shape IDs. [Cacheable] reports which
// formats qualify.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the data stored under key. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the cache's resources.
	Close() error
}

// Format names whose output is independent of the chart instance ID.
var cacheable = map[string]bool{
	"png":   true,
	"dot":   true,
	"graph": true,
}

// Cacheable reports whether artifacts of format can be served from a cache.
func Cacheable(format string) bool { return cacheable[format] }
