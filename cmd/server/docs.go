// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

// @title Synthmap API
// @version 1.0
// @description Read-only statistics over a catalog of chemical manufacturers.
// @description
// @description ## Filters
// @description
// @description Every /api/stats endpoint accepts `country`, `state` and `city` (exact match,
// @description blank means unrestricted) and repeatable `chemistries` and `certifications`
// @description codes. A company must have every listed chemistry available and hold every
// @description listed certification.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message",
// @description     "details": {}
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-01-10T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/synthmap/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8000
// @BasePath /
// @schemes http https
//
// @tag.name Stats
// @tag.description Aggregated counts over the companies matching a filter
//
// @tag.name Lookups
// @tag.description Reference codes used by the chemistries and certifications filters
//
// @tag.name Core
// @tag.description Health and readiness probes
package main
