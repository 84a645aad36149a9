// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package models

import (
	"time"
)

// APIResponse is the envelope every HTTP endpoint returns.
//
// Status field values:
//   - "success": Request completed, see Data
//   - "error": Request failed, see Error
//
// Example success response for /api/stats/locations?level=country:
//
//	{
//	  "status": "success",
//	  "data": [{"key": "India", "count": 3, "geometry": null}],
//	  "metadata": {"timestamp": "2026-01-10T12:00:00Z", "query_time_ms": 4}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "metadata": {"timestamp": "2026-01-10T12:00:00Z"},
//	  "error": {"code": "VALIDATION_ERROR", "message": "level must be one of [point country state city]"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing and cache information for a response.
//
// Fields:
//   - Timestamp: Server time when the response was generated
//   - QueryTimeMS: Time spent resolving and aggregating (omitted on cache hits)
//   - Cached: True when Data came from the response cache
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the error body of a failed request.
//
// Codes in use: VALIDATION_ERROR, NOT_FOUND, METHOD_NOT_ALLOWED, TOO_MANY_REQUESTS,
// DATABASE_ERROR, SERVICE_UNAVAILABLE.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
