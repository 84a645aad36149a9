// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/synthmap/internal/models"
)

const noLocationLabel = "(no location)"

func newMissingGeoCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "missing-geo",
		Short: "List companies without coordinates",
		Long: `List companies whose latitude or longitude is unset. These companies are
left out of point-level location statistics.

Each line shows the company id, its name and the best location text on record.

Examples:
  synthctl missing-geo           # Table output
  synthctl missing-geo --json    # JSON array`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := opts.openCatalog(cmd)
			if err != nil {
				return err
			}
			defer closeCatalog(db)

			companies, err := db.ListMissingGeo(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeMissingGeoJSON(cmd.OutOrStdout(), companies)
			}
			return writeMissingGeoTable(cmd.OutOrStdout(), companies)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON array instead of a table")
	return cmd
}

type missingGeoRow struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

func writeMissingGeoJSON(w io.Writer, companies []models.MissingGeoCompany) error {
	rows := make([]missingGeoRow, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, missingGeoRow{ID: c.ID, Name: c.Name, Label: c.Label()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func writeMissingGeoTable(w io.Writer, companies []models.MissingGeoCompany) error {
	if len(companies) == 0 {
		_, err := fmt.Fprintln(w, "All companies have coordinates.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION")
	for _, c := range companies {
		label := c.Label()
		if label == "" {
			label = noLocationLabel
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Name, label)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d companies without coordinates\n", len(companies))
	return err
}
