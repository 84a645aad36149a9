// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

/*
Package services adapts server components to suture's Serve(ctx) error model.

  - HTTPServerService: ListenAndServe with graceful Shutdown on cancellation
  - CheckpointService: periodic DuckDB CHECKPOINT so the WAL stays small

Each service implements fmt.Stringer so supervisor events name it.
*/
package services
