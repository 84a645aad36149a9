// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package api

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/synthmap/internal/config"
	"github.com/tomtom215/synthmap/internal/database"
	"github.com/tomtom215/synthmap/internal/logging"
	"github.com/tomtom215/synthmap/internal/metrics"
)

const statsBreakerName = "duckdb-stats"

// Fallbacks for zero-valued breaker settings.
const (
	defaultBreakerMaxRequests = 1
	defaultBreakerInterval    = time.Minute
	defaultBreakerTimeout     = 30 * time.Second
	defaultBreakerThreshold   = 5
)

// newStatsBreaker guards every stats query. It opens after FailureThreshold
// consecutive store failures and lets MaxRequests probes through once Timeout
// has elapsed. Client cancellations and rejected parameters are not failures.
func newStatsBreaker(cfg config.BreakerConfig) *gobreaker.CircuitBreaker[any] {
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = defaultBreakerMaxRequests
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultBreakerInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultBreakerTimeout
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = defaultBreakerThreshold
	}

	metrics.CircuitBreakerState.WithLabelValues(statsBreakerName).Set(stateToFloat(gobreaker.StateClosed))

	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        statsBreakerName,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= cfg.FailureThreshold
			if shouldTrip {
				logging.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] State transition")
			metrics.RecordBreakerState(name, from.String(), to.String(), stateToFloat(to))
		},

		IsSuccessful: isBreakerSuccess,
	})
}

// isBreakerSuccess reports whether err should leave the breaker's failure count alone.
func isBreakerSuccess(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, context.Canceled):
		return true
	case errors.Is(err, database.ErrInvalidLocationLevel),
		errors.Is(err, database.ErrInvalidProductGrouping),
		errors.Is(err, database.ErrUnknownLookupFamily):
		return true
	}
	return false
}

// isBreakerRejection reports whether the breaker refused to run the query.
func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// stateToFloat maps breaker state to the gauge value (0 closed, 1 half-open, 2 open).
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
