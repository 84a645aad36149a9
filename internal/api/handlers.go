// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package api

import (
	"context"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/synthmap/internal/cache"
	"github.com/tomtom215/synthmap/internal/config"
	"github.com/tomtom215/synthmap/internal/database"
	"github.com/tomtom215/synthmap/internal/logging"
	"github.com/tomtom215/synthmap/internal/models"
)

// CatalogStore is the read side of the catalog the handlers need.
// *database.DB satisfies it; tests substitute fakes.
type CatalogStore interface {
	Ping(ctx context.Context) error
	GetLocationStats(ctx context.Context, level models.LocationLevel, f database.CompanyFilter, limit int) (models.LocationStatsResult, error)
	GetChemistryStats(ctx context.Context, f database.CompanyFilter, limit int) ([]models.ChemistryStat, error)
	GetProductStats(ctx context.Context, by models.ProductGrouping, f database.CompanyFilter, limit int) (models.ProductStatsResult, error)
	ListLookups(ctx context.Context, family models.LookupFamily) ([]models.LookupEntry, error)
}

var _ CatalogStore = (*database.DB)(nil)

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response and parameter helpers
//   - handlers_health.go: health, liveness and readiness probes
//   - handlers_stats.go: location, chemistry and product aggregations
//   - handlers_lookups.go: lookup family listings
//   - stats_executor.go: cache-first, breaker-guarded query execution
type Handler struct {
	store     CatalogStore
	cache     cache.Cacher
	breaker   *gobreaker.CircuitBreaker[any]
	config    *config.Config
	startTime time.Time
}

// NewHandler builds the API handler. A nil cache disables response caching;
// a nil cfg uses breaker defaults.
//
//	handler := api.NewHandler(db, responseCache, cfg)
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(":8000", router.SetupChi())
func NewHandler(store CatalogStore, c cache.Cacher, cfg *config.Config) *Handler {
	var breakerCfg config.BreakerConfig
	if cfg != nil {
		breakerCfg = cfg.Breaker
	}

	return &Handler{
		store:     store,
		cache:     c,
		breaker:   newStatsBreaker(breakerCfg),
		config:    cfg,
		startTime: time.Now(),
	}
}

// ClearCache drops every cached stats response.
func (h *Handler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
		logging.Info().Msg("Stats cache cleared")
	}
}
