// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/synthmap/internal/logging"
)

// badgerKeyPrefix namespaces cache entries inside the Badger keyspace.
const badgerKeyPrefix = "stats_cache:"

// BadgerOptions configures a BadgerCache.
type BadgerOptions struct {
	// Path is the data directory. Empty opens an in-memory store.
	Path string
	// TTL is the default entry lifetime.
	TTL time.Duration
	// GCInterval is how often Serve runs value log GC. Default 10m.
	GCInterval time.Duration
}

// BadgerCache is a persistent Cacher. Values are stored as JSON with a Badger
// entry TTL and come back from Get as json.RawMessage, which marshals verbatim
// into a response envelope.
type BadgerCache struct {
	db         *badger.DB
	ttl        time.Duration
	gcInterval time.Duration
	inMemory   bool

	mu    sync.Mutex
	stats Stats
}

// NewBadgerCache opens the Badger store described by opts.
func NewBadgerCache(opts BadgerOptions) (*BadgerCache, error) {
	bopts := badger.DefaultOptions(opts.Path)
	if opts.Path == "" {
		bopts = bopts.WithInMemory(true)
	}
	bopts.Logger = nil // Suppress BadgerDB internal logs
	bopts.ValueLogFileSize = 64 << 20

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	gcInterval := opts.GCInterval
	if gcInterval <= 0 {
		gcInterval = 10 * time.Minute
	}

	return &BadgerCache{
		db:         db,
		ttl:        ttl,
		gcInterval: gcInterval,
		inMemory:   opts.Path == "",
		stats:      Stats{LastCleanup: time.Now()},
	}, nil
}

// Get returns the stored JSON as json.RawMessage. Expired and missing keys
// are misses; a corrupt read is logged and reported as a miss.
func (b *BadgerCache) Get(key string) (interface{}, bool) {
	var raw []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.Warn().Err(err).Str("key", key).Msg("Badger cache read failed")
		}
		b.record(func(s *Stats) { s.Misses++ })
		return nil, false
	}

	b.record(func(s *Stats) { s.Hits++ })
	return json.RawMessage(raw), true
}

// Set stores value with the default TTL.
func (b *BadgerCache) Set(key string, value interface{}) {
	b.SetWithTTL(key, value, b.ttl)
}

// SetWithTTL stores value as JSON. Values that cannot be marshaled are dropped
// with a warning; a cache write never fails the caller.
func (b *BadgerCache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	data, err := encodeValue(value)
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Badger cache value not cacheable")
		return
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(badgerKeyPrefix+key), data)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Badger cache write failed")
		return
	}
	b.record(func(s *Stats) { s.TotalKeys++ })
}

func encodeValue(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case json.RawMessage:
		return v, nil
	case []byte:
		if !json.Valid(v) {
			return nil, errors.New("byte value is not JSON")
		}
		return v, nil
	default:
		return json.Marshal(v)
	}
}

// Delete removes key.
func (b *BadgerCache) Delete(key string) {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(badgerKeyPrefix + key))
	})
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Badger cache delete failed")
		return
	}
	b.record(func(s *Stats) { s.Evictions++ })
}

// Clear drops every cache entry.
func (b *BadgerCache) Clear() {
	n := b.countKeys()
	if err := b.db.DropPrefix([]byte(badgerKeyPrefix)); err != nil {
		logging.Warn().Err(err).Msg("Badger cache clear failed")
		return
	}
	b.record(func(s *Stats) {
		s.Evictions += n
		s.TotalKeys = 0
	})
}

// GetStats returns hit and miss counters. TotalKeys counts live entries.
func (b *BadgerCache) GetStats() Stats {
	keys := b.countKeys()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.TotalKeys = keys
	return Stats{
		Hits:        b.stats.Hits,
		Misses:      b.stats.Misses,
		Evictions:   b.stats.Evictions,
		TotalKeys:   keys,
		LastCleanup: b.stats.LastCleanup,
	}
}

// HitRate returns the cache hit rate as a percentage
func (b *BadgerCache) HitRate() float64 {
	return hitRate(b.GetStats())
}

// countKeys iterates keys only; expired entries are skipped by the iterator.
func (b *BadgerCache) countKeys() int64 {
	var n int64
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(badgerKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		logging.Warn().Err(err).Msg("Badger cache key count failed")
	}
	return n
}

func (b *BadgerCache) record(update func(*Stats)) {
	b.mu.Lock()
	update(&b.stats)
	b.mu.Unlock()
}

// RunGC reclaims value log space until Badger reports nothing left to rewrite.
// In-memory stores have no value log.
func (b *BadgerCache) RunGC() error {
	if b.inMemory {
		return nil
	}
	for {
		err := b.db.RunValueLogGC(0.5)
		if errors.Is(err, badger.ErrNoRewrite) {
			break
		}
		if err != nil {
			return fmt.Errorf("badger value log gc: %w", err)
		}
	}
	b.record(func(s *Stats) { s.LastCleanup = time.Now() })
	return nil
}

// Serve implements suture.Service by running RunGC every GCInterval until ctx
// is canceled.
func (b *BadgerCache) Serve(ctx context.Context) error {
	ticker := time.NewTicker(b.gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := b.RunGC(); err != nil {
				logging.Warn().Err(err).Msg("Badger cache GC failed")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (b *BadgerCache) String() string {
	return "badger-cache-gc"
}

// Close closes the Badger store.
func (b *BadgerCache) Close() error {
	return b.db.Close()
}
