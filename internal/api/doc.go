// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

/*
Package api provides the HTTP layer for Synthmap.

It exposes the read-only statistics endpoints over the catalog store, plus
lookup listings and health probes. Every response uses the models.APIResponse
envelope.

Key Components:

  - Router: chi route groups and the global middleware stack
  - Handler: request handlers, holding the store, response cache and circuit breaker
  - StatsQueryExecutor: cache lookup, breaker-guarded query, cache store, response
  - ChiMiddleware: CORS, per-IP rate limits (httprate) and security headers

Endpoints:

	GET /api/stats/locations    level=point|country|state|city, limit (default 200)
	GET /api/stats/chemistries  limit (default 50)
	GET /api/stats/products     by=company|global, limit (default 50)
	GET /api/lookups/{family}   processes, certifications, equipment, analytics, services
	GET /health, /health/live, /health/ready
	GET /metrics                Prometheus exposition
	GET /swagger/*              Swagger UI

Filter parameters shared by the stats endpoints:

	country, state, city        exact match; blank or missing means unrestricted
	chemistries                 repeatable; company must have every code available
	certifications              repeatable; company must hold every code

Limits outside [1, 10000] are clamped, and a limit that does not parse as an
integer is rejected with VALIDATION_ERROR.

Caching:

Results are cached under a key built from the normalized filter and the query
parameters, so equivalent requests (reordered or duplicated codes, padded
values) share an entry. Errors are never cached.

Circuit Breaker:

Store queries run through a gobreaker circuit breaker named "duckdb-stats".
After consecutive failures the breaker opens and requests get 503
SERVICE_UNAVAILABLE until the timeout elapses. Validation errors and client
cancellations do not count as failures.

Error Codes:

  - VALIDATION_ERROR (400): bad level, grouping, limit or lookup family
  - NOT_FOUND (404): unknown route or lookup family
  - METHOD_NOT_ALLOWED (405)
  - TOO_MANY_REQUESTS (429): rate limit exceeded
  - DATABASE_ERROR (500): store query failed
  - SERVICE_UNAVAILABLE (503): no store, breaker open, or request canceled

See Also:

  - internal/database: filter normalization, matching sets and aggregations
  - internal/cache: response cache backends
  - internal/middleware: request id, access log and Prometheus middleware
*/
package api
