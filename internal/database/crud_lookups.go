// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/synthmap/internal/metrics"
	"github.com/tomtom215/synthmap/internal/models"
)

// lookupTables maps each lookup family to its table.
var lookupTables = map[models.LookupFamily]string{
	models.LookupProcesses:      "process_types",
	models.LookupCertifications: "certification_types",
	models.LookupEquipment:      "equipment_types",
	models.LookupAnalytics:      "analytics_types",
	models.LookupServices:       "service_types",
}

// ListLookups returns every code of a lookup family ordered by code.
func (db *DB) ListLookups(ctx context.Context, family models.LookupFamily) ([]models.LookupEntry, error) {
	table, ok := lookupTables[family]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLookupFamily, family)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, "SELECT id, code, name FROM "+table+" ORDER BY code")
	if err != nil {
		metrics.RecordDBQuery("list_lookups", table, time.Since(start), err)
		return nil, fmt.Errorf("failed to list %s: %w", family, err)
	}
	defer rows.Close()

	entries := []models.LookupEntry{}
	for rows.Next() {
		var e models.LookupEntry
		if err := rows.Scan(&e.ID, &e.Code, &e.Name); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", family, err)
		}
		entries = append(entries, e)
	}
	err = rows.Err()
	metrics.RecordDBQuery("list_lookups", table, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", family, err)
	}
	return entries, nil
}

// ListMissingGeo returns the companies without coordinates, ordered by id, with
// whatever location text they carry.
func (db *DB) ListMissingGeo(ctx context.Context) ([]models.MissingGeoCompany, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `SELECT id, name, location, city, state, country
FROM companies
WHERE lat IS NULL OR lon IS NULL
ORDER BY id`)
	if err != nil {
		metrics.RecordDBQuery("list_missing_geo", "companies", time.Since(start), err)
		return nil, fmt.Errorf("failed to list companies without coordinates: %w", err)
	}
	defer rows.Close()

	out := []models.MissingGeoCompany{}
	for rows.Next() {
		var (
			c                              models.MissingGeoCompany
			location, city, state, country sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &location, &city, &state, &country); err != nil {
			return nil, fmt.Errorf("failed to scan company row: %w", err)
		}
		c.Location = nullStringPtr(location)
		c.City = nullStringPtr(city)
		c.State = nullStringPtr(state)
		c.Country = nullStringPtr(country)
		out = append(out, c)
	}
	err = rows.Err()
	metrics.RecordDBQuery("list_missing_geo", "companies", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("error iterating company rows: %w", err)
	}
	return out, nil
}
