// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package cache

import (
	"fmt"
	"time"

	"github.com/tomtom215/synthmap/internal/config"
)

// Cacher defines the interface for cache implementations.
// Both Cache (in-memory) and BadgerCache (persistent) implement it, so the
// backend is chosen by configuration alone.
//
// Usage:
//
//	c, err := cache.NewFromConfig(&cfg.Cache)
//	c.Set("key", value)
//	if val, ok := c.Get("key"); ok {
//	    // Use cached value
//	}
type Cacher interface {
	// Get retrieves a value from the cache.
	// Returns the value and true if found and not expired.
	Get(key string) (interface{}, bool)

	// Set stores a value in the cache with the default TTL.
	Set(key string, value interface{})

	// SetWithTTL stores a value with a custom TTL.
	SetWithTTL(key string, value interface{}, ttl time.Duration)

	// Delete removes a value from the cache.
	Delete(key string)

	// Clear removes all entries from the cache.
	Clear()

	// GetStats returns cache statistics.
	GetStats() Stats

	// HitRate returns the cache hit rate as a percentage.
	HitRate() float64

	// Close releases background resources.
	Close() error
}

// NewFromConfig creates the backend selected by cfg.Backend.
func NewFromConfig(cfg *config.CacheConfig) (Cacher, error) {
	switch cfg.Backend {
	case config.CacheBackendBadger:
		return NewBadgerCache(BadgerOptions{Path: cfg.BadgerPath, TTL: cfg.TTL, GCInterval: cfg.GCInterval})
	case config.CacheBackendMemory, "":
		return New(cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Verify interface implementations at compile time
var (
	_ Cacher = (*Cache)(nil)
	_ Cacher = (*BadgerCache)(nil)
)
