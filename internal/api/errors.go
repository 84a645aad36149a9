// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package api

import "errors"

// Error codes carried in the envelope's error body.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeDatabase           = "DATABASE_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
)

// ErrStoreUnavailable is returned when the handler was built without a catalog store.
var ErrStoreUnavailable = errors.New("catalog store not available")
