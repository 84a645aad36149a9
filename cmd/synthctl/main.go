// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

// Command synthctl maintains the Synthmap catalog database.
//
// Examples:
//
//	synthctl init-db                 # migrate and seed the fixture into an empty catalog
//	synthctl init-db --drop          # drop every catalog table first
//	synthctl init-db --no-seed       # migrate only
//	synthctl missing-geo --json      # companies without coordinates
//	synthctl version
//
// It reads the same configuration as the server (config file, then environment).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
