// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/synthmap/internal/cache"
	"github.com/tomtom215/synthmap/internal/database"
	"github.com/tomtom215/synthmap/internal/logging"
	"github.com/tomtom215/synthmap/internal/metrics"
	"github.com/tomtom215/synthmap/internal/models"
)

// StatsQueryExecutor runs a stats query cache-first behind the circuit breaker:
//
//  1. Build the cache key from operation, normalized filter and params
//  2. Serve a cached result when present (metadata.cached = true)
//  3. Otherwise run the query through the breaker
//  4. Cache the result and respond with the query time
//
// An open breaker answers 503 SERVICE_UNAVAILABLE without touching the store;
// a store failure answers 500 DATABASE_ERROR.
type StatsQueryExecutor struct {
	handler *Handler
}

// NewStatsQueryExecutor creates an executor bound to h's store, cache and breaker.
func NewStatsQueryExecutor(h *Handler) *StatsQueryExecutor {
	return &StatsQueryExecutor{handler: h}
}

// StatsQueryFunc computes one aggregation. The result must be JSON-serializable.
type StatsQueryFunc func(ctx context.Context, store CatalogStore) (interface{}, error)

// statsCacheKey is what distinguishes two stats responses. Params carries the
// level or grouping and the clamped limit.
type statsCacheKey struct {
	Filter database.CompanyFilter `json:"filter"`
	Params interface{}            `json:"params"`
}

// ExecuteWithCache runs queryFunc for operation, caching by filter and params.
//
//	executor.ExecuteWithCache(w, r, "GetChemistryStats", filter, statsParams{Limit: limit},
//	    func(ctx context.Context, store CatalogStore) (interface{}, error) {
//	        return store.GetChemistryStats(ctx, filter, limit)
//	    })
func (e *StatsQueryExecutor) ExecuteWithCache(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	filter database.CompanyFilter,
	params interface{},
	queryFunc StatsQueryFunc,
) {
	h := e.handler
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Database not available", ErrStoreUnavailable)
		return
	}

	cacheKey := cache.GenerateKey(operation, statsCacheKey{Filter: filter, Params: params})

	if h.cache != nil {
		cached, found := h.cache.Get(cacheKey)
		metrics.RecordCacheLookup(operation, found)
		if found {
			respondSuccess(w, cached, models.Metadata{Timestamp: time.Now(), Cached: true})
			return
		}
	}

	start := time.Now()
	ctx := r.Context()
	result, err := h.breaker.Execute(func() (any, error) {
		return queryFunc(ctx, h.store)
	})
	if err != nil {
		e.respondQueryError(w, r, operation, err)
		return
	}

	if h.cache != nil {
		h.cache.Set(cacheKey, result)
	}

	respondSuccess(w, result, models.Metadata{
		Timestamp:   time.Now(),
		QueryTimeMS: time.Since(start).Milliseconds(),
	})
}

func (e *StatsQueryExecutor) respondQueryError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	logger := logging.Ctx(r.Context())

	switch {
	case isBreakerRejection(err):
		logger.Warn().Err(err).Str("operation", operation).Msg("[CIRCUIT BREAKER] Request rejected")
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Statistics are temporarily unavailable, retry shortly", nil)
	case errors.Is(err, context.Canceled):
		logger.Debug().Str("operation", operation).Msg("Client canceled stats request")
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Request canceled", nil)
	case errors.Is(err, database.ErrInvalidLocationLevel),
		errors.Is(err, database.ErrInvalidProductGrouping):
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
	default:
		logger.Error().Err(err).Str("operation", operation).Msg("Stats query failed")
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to compute statistics", nil)
	}
}
