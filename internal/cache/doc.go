// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

/*
Package cache memoizes statistics responses for a short TTL.

Two backends implement Cacher:

  - Cache: in-process map with per-entry expiry and a background cleanup loop
  - BadgerCache: BadgerDB-backed store that survives restarts; values are kept
    as JSON and come back as json.RawMessage

Keys come from GenerateKey, which hashes the operation name together with the
normalized filter descriptor and the clamped parameters, so equivalent requests
share an entry:

	key := cache.GenerateKey("location_stats", params)
	if data, ok := c.Get(key); ok {
	    // serve data
	}
	c.Set(key, result)

Cached entries are never invalidated explicitly. The catalog only changes through
offline seeding, and the TTL bounds staleness.

Thread Safety:

Both backends are safe for concurrent use.
*/
package cache
