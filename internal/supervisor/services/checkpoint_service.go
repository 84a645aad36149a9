// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package services

import (
	"context"
	"time"

	"github.com/tomtom215/synthmap/internal/logging"
)

// Checkpointer flushes the DuckDB WAL into the database file. *database.DB satisfies it.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// DefaultCheckpointInterval is used when NewCheckpointService gets a non-positive interval.
const DefaultCheckpointInterval = 5 * time.Minute

// CheckpointService checkpoints the catalog on a fixed interval. A failed
// checkpoint is logged and retried on the next tick; it never stops the service.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
}

// NewCheckpointService creates the service.
func NewCheckpointService(db Checkpointer, interval time.Duration) *CheckpointService {
	if interval <= 0 {
		interval = DefaultCheckpointInterval
	}
	return &CheckpointService{db: db, interval: interval}
}

// Serve implements suture.Service.
func (c *CheckpointService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := c.db.Checkpoint(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logging.Warn().Err(err).Msg("DuckDB checkpoint failed")
				continue
			}
			logging.Debug().Dur("duration", time.Since(start)).Msg("DuckDB checkpoint completed")
		}
	}
}

// String implements fmt.Stringer.
func (c *CheckpointService) String() string {
	return "duckdb-checkpoint"
}
