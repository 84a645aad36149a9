// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitDBCommand(opts *rootOptions) *cobra.Command {
	var drop, noSeed bool

	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create the catalog schema and seed the fixture",
		Long: `Apply pending schema migrations and, unless --no-seed is given, insert the
fixture catalog when no companies exist yet.

With --drop every catalog table is dropped first. All catalog data is lost.

Examples:
  synthctl init-db                 # Migrate and seed an empty catalog
  synthctl init-db --drop          # Rebuild from scratch
  synthctl init-db --no-seed       # Schema only`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := opts.openCatalog(cmd)
			if err != nil {
				return err
			}
			defer closeCatalog(db)

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if drop {
				if err := db.ResetCatalog(ctx); err != nil {
					return fmt.Errorf("drop catalog: %w", err)
				}
				fmt.Fprintln(out, "Dropped existing catalog tables")
			}

			if !noSeed {
				seeded, err := db.SeedCatalog(ctx)
				if err != nil {
					return fmt.Errorf("seed catalog: %w", err)
				}
				if seeded {
					fmt.Fprintln(out, "Seeded fixture catalog")
				} else {
					fmt.Fprintln(out, "Catalog already has companies; seed skipped")
				}
			}

			version, err := db.GetCurrentSchemaVersion(ctx)
			if err != nil {
				return fmt.Errorf("read schema version: %w", err)
			}
			companies, err := db.CountCompanies(ctx)
			if err != nil {
				return fmt.Errorf("count companies: %w", err)
			}
			fmt.Fprintf(out, "Catalog ready at %s (schema version %d, %d companies)\n", db.GetDatabasePath(), version, companies)
			return nil
		},
	}

	cmd.Flags().BoolVar(&drop, "drop", false, "drop all catalog tables before migrating")
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "skip inserting the fixture catalog")
	return cmd
}
