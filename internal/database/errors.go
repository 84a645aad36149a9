// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package database

import "errors"

var (
	// ErrInvalidLocationLevel is returned for a level outside point|country|state|city.
	ErrInvalidLocationLevel = errors.New("invalid location level")

	// ErrInvalidProductGrouping is returned for a grouping outside company|global.
	ErrInvalidProductGrouping = errors.New("invalid product grouping")

	// ErrUnknownLookupFamily is returned by ListLookups for an unknown family.
	ErrUnknownLookupFamily = errors.New("unknown lookup family")
)
