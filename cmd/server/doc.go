// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

/*
Package main is the entry point for the Synthmap server.

Synthmap serves read-only statistics over a catalog of chemical manufacturers:
where matching companies are located, which chemistries they run, and how many
products they list. Every statistic accepts the same company filter.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("synthmap")
	├── DataSupervisor ("data-layer")
	│   ├── DuckDB checkpoint service
	│   └── Badger cache GC (CACHE_BACKEND=badger only)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Database: DuckDB catalog, versioned migrations, optional fixture seed
 4. Cache: in-memory TTL cache or BadgerDB
 5. Supervisor Tree: Suture v4 process supervision
 6. HTTP Server: Chi router with middleware stack

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	DUCKDB_PATH=/data/synthmap.duckdb  # or :memory:
	SEED_ON_START=false                # seed the fixture into an empty catalog
	HTTP_PORT=8000
	CORS_ORIGINS=*
	CACHE_BACKEND=memory               # memory or badger
	CACHE_TTL=60s
	LOG_LEVEL=info                     # trace, debug, info, warn, error
	LOG_FORMAT=json                    # json or console

# Endpoints

	GET /api/stats/locations?level=country|state|city|point
	GET /api/stats/chemistries
	GET /api/stats/products?by=company|global
	GET /api/lookups/{family}
	GET /health, /health/live, /health/ready
	GET /metrics
	GET /swagger/index.html

All stats endpoints accept country, state, city and repeated chemistries and
certifications query parameters, plus a limit clamped to [1, 10000].

# Usage Examples

Development with the fixture catalog:

	DUCKDB_PATH=:memory: SEED_ON_START=true LOG_FORMAT=console go run ./cmd/server

Schema and data maintenance lives in the synthctl command.

# See Also

  - internal/config: Configuration management
  - internal/database: Filter normalization, matching sets and aggregations
  - internal/api: HTTP handlers and routing
  - internal/supervisor: Process supervision
  - cmd/synthctl: Maintenance CLI
*/
package main
