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

	"github.com/tomtom215/synthmap/internal/database/query"
	"github.com/tomtom215/synthmap/internal/metrics"
	"github.com/tomtom215/synthmap/internal/models"
)

// Result size limits.
const (
	DefaultLocationLimit  = 200
	DefaultChemistryLimit = 50
	DefaultProductLimit   = 50
	MinLimit              = 1
	MaxLimit              = 10000
)

// ClampLimit forces limit into [MinLimit, MaxLimit].
func ClampLimit(limit int) int {
	return min(max(limit, MinLimit), MaxLimit)
}

// locationColumns maps grouped levels to their companies column.
var locationColumns = map[models.LocationLevel]string{
	models.LocationLevelCountry: "country",
	models.LocationLevelState:   "state",
	models.LocationLevelCity:    "city",
}

// beginRead opens the transaction that holds the matching-set resolution and the
// aggregation together, so both see the same catalog snapshot. The driver rejects
// read-only transaction options; callers only ever roll back.
func (db *DB) beginRead(ctx context.Context) (*sql.Tx, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	return tx, nil
}

// GetLocationStats aggregates the companies matching f by level. Grouped levels
// return {key, count} rows with blank keys excluded, ordered by count descending
// then key ascending. The point level returns one GeoJSON feature per company that
// has coordinates, ordered by company id.
func (db *DB) GetLocationStats(ctx context.Context, level models.LocationLevel, f CompanyFilter, limit int) (models.LocationStatsResult, error) {
	if !level.Valid() {
		return models.LocationStatsResult{}, fmt.Errorf("%w: %q", ErrInvalidLocationLevel, level)
	}
	limit = ClampLimit(limit)

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.beginRead(ctx)
	if err != nil {
		return models.LocationStatsResult{}, err
	}
	defer rollbackQuietly(tx)

	set, err := db.ResolveMatchingSet(ctx, tx, f)
	if err != nil {
		return models.LocationStatsResult{}, err
	}

	if level == models.LocationLevelPoint {
		if set.IsEmpty() {
			return models.FeatureResult(nil), nil
		}
		return db.locationPoints(ctx, tx, set, limit)
	}

	if set.IsEmpty() {
		return models.GroupResult(nil), nil
	}
	return db.locationGroups(ctx, tx, locationColumns[level], set, limit)
}

func (db *DB) locationGroups(ctx context.Context, q Querier, column string, set MatchSet, limit int) (models.LocationStatsResult, error) {
	wb := query.NewWhereBuilder().AddNotBlank(column)
	set.restrictTo(wb, "id")
	where, args := wb.BuildWithPrefix()
	args = append(args, limit)

	sqlText := fmt.Sprintf(`SELECT %[1]s AS group_key, COUNT(*) AS cnt
FROM companies
%[2]s
GROUP BY %[1]s
ORDER BY cnt DESC, group_key ASC
LIMIT ?`, column, where)

	start := time.Now()
	rows, err := q.QueryContext(ctx, sqlText, args...)
	if err != nil {
		metrics.RecordDBQuery("location_stats_"+column, "companies", time.Since(start), err)
		return models.LocationStatsResult{}, fmt.Errorf("failed to query %s stats: %w", column, err)
	}
	defer rows.Close()

	groups := make([]models.LocationGroup, 0, limit/4)
	for rows.Next() {
		var g models.LocationGroup
		if err := rows.Scan(&g.Key, &g.Count); err != nil {
			return models.LocationStatsResult{}, fmt.Errorf("failed to scan %s row: %w", column, err)
		}
		groups = append(groups, g)
	}
	err = rows.Err()
	metrics.RecordDBQuery("location_stats_"+column, "companies", time.Since(start), err)
	if err != nil {
		return models.LocationStatsResult{}, fmt.Errorf("error iterating %s rows: %w", column, err)
	}
	return models.GroupResult(groups), nil
}

func (db *DB) locationPoints(ctx context.Context, q Querier, set MatchSet, limit int) (models.LocationStatsResult, error) {
	wb := query.NewWhereBuilder().AddClause("lat IS NOT NULL AND lon IS NOT NULL")
	set.restrictTo(wb, "id")
	where, args := wb.BuildWithPrefix()
	args = append(args, limit)

	sqlText := `SELECT id, location, city, state, country, lat, lon
FROM companies
` + where + `
ORDER BY id
LIMIT ?`

	start := time.Now()
	rows, err := q.QueryContext(ctx, sqlText, args...)
	if err != nil {
		metrics.RecordDBQuery("location_stats_point", "companies", time.Since(start), err)
		return models.LocationStatsResult{}, fmt.Errorf("failed to query company points: %w", err)
	}
	defer rows.Close()

	var features []models.GeoJSONFeature
	for rows.Next() {
		var (
			id                             int64
			location, city, state, country sql.NullString
			lat, lon                       float64
		)
		if err := rows.Scan(&id, &location, &city, &state, &country, &lat, &lon); err != nil {
			return models.LocationStatsResult{}, fmt.Errorf("failed to scan company point: %w", err)
		}

		key := models.JoinPlace(nullStringPtr(location), nullStringPtr(city), nullStringPtr(state), nullStringPtr(country))
		if key == "" {
			key = fmt.Sprintf("company:%d", id)
		}
		features = append(features, models.GeoJSONFeature{
			Type: "Feature",
			Geometry: models.GeoJSONGeometry{
				Type:        "Point",
				Coordinates: [2]float64{lon, lat},
			},
			Properties: models.GeoJSONProperties{Key: key, Count: 1, CompanyID: id},
		})
	}
	err = rows.Err()
	metrics.RecordDBQuery("location_stats_point", "companies", time.Since(start), err)
	if err != nil {
		return models.LocationStatsResult{}, fmt.Errorf("error iterating company points: %w", err)
	}
	return models.FeatureResult(features), nil
}

// GetChemistryStats counts, per process code, the distinct matching companies that
// have the process available. Ordered by count descending then code ascending.
func (db *DB) GetChemistryStats(ctx context.Context, f CompanyFilter, limit int) ([]models.ChemistryStat, error) {
	limit = ClampLimit(limit)

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.beginRead(ctx)
	if err != nil {
		return nil, err
	}
	defer rollbackQuietly(tx)

	set, err := db.ResolveMatchingSet(ctx, tx, f)
	if err != nil {
		return nil, err
	}
	stats := []models.ChemistryStat{}
	if set.IsEmpty() {
		return stats, nil
	}

	wb := query.NewWhereBuilder().AddClause("p.available = TRUE")
	set.restrictTo(wb, "p.company_id")
	where, args := wb.BuildWithPrefix()
	args = append(args, limit)

	sqlText := `SELECT t.code, COUNT(DISTINCT p.company_id) AS cnt
FROM company_processes p
JOIN process_types t ON t.id = p.process_type_id
` + where + `
GROUP BY t.code
ORDER BY cnt DESC, t.code ASC
LIMIT ?`

	start := time.Now()
	rows, err := tx.QueryContext(ctx, sqlText, args...)
	if err != nil {
		metrics.RecordDBQuery("chemistry_stats", "company_processes", time.Since(start), err)
		return nil, fmt.Errorf("failed to query chemistry stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.ChemistryStat
		if err := rows.Scan(&s.Chemistry, &s.CompanyCount); err != nil {
			return nil, fmt.Errorf("failed to scan chemistry row: %w", err)
		}
		stats = append(stats, s)
	}
	err = rows.Err()
	metrics.RecordDBQuery("chemistry_stats", "company_processes", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("error iterating chemistry rows: %w", err)
	}
	return stats, nil
}

// GetProductStats counts products of the matching companies, either per company or
// per product type. Per-company rows are ordered by count descending then name; a
// company with no products does not appear. Global rows skip blank product types.
func (db *DB) GetProductStats(ctx context.Context, by models.ProductGrouping, f CompanyFilter, limit int) (models.ProductStatsResult, error) {
	if !by.Valid() {
		return models.ProductStatsResult{}, fmt.Errorf("%w: %q", ErrInvalidProductGrouping, by)
	}
	limit = ClampLimit(limit)

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.beginRead(ctx)
	if err != nil {
		return models.ProductStatsResult{}, err
	}
	defer rollbackQuietly(tx)

	set, err := db.ResolveMatchingSet(ctx, tx, f)
	if err != nil {
		return models.ProductStatsResult{}, err
	}

	if by == models.ProductGroupingGlobal {
		result := models.ProductStatsResult{Kind: models.ProductStatsGlobal, Global: []models.ProductStatGlobal{}}
		if set.IsEmpty() {
			return result, nil
		}
		result.Global, err = productsGlobal(ctx, tx, set, limit)
		return result, err
	}

	result := models.ProductStatsResult{Kind: models.ProductStatsByCompany, ByCompany: []models.ProductStatByCompany{}}
	if set.IsEmpty() {
		return result, nil
	}
	result.ByCompany, err = productsByCompany(ctx, tx, set, limit)
	return result, err
}

func productsByCompany(ctx context.Context, q Querier, set MatchSet, limit int) ([]models.ProductStatByCompany, error) {
	wb := query.NewWhereBuilder()
	set.restrictTo(wb, "c.id")
	where, args := wb.BuildWithPrefix()
	args = append(args, limit)

	sqlText := `SELECT c.id, c.name, COUNT(p.id) AS cnt
FROM companies c
JOIN company_products p ON p.company_id = c.id
` + where + `
GROUP BY c.id, c.name
ORDER BY cnt DESC, c.name ASC, c.id ASC
LIMIT ?`

	start := time.Now()
	rows, err := q.QueryContext(ctx, sqlText, args...)
	if err != nil {
		metrics.RecordDBQuery("product_stats_company", "company_products", time.Since(start), err)
		return nil, fmt.Errorf("failed to query product stats by company: %w", err)
	}
	defer rows.Close()

	out := []models.ProductStatByCompany{}
	for rows.Next() {
		var s models.ProductStatByCompany
		if err := rows.Scan(&s.CompanyID, &s.CompanyName, &s.ProductCount); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		out = append(out, s)
	}
	err = rows.Err()
	metrics.RecordDBQuery("product_stats_company", "company_products", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return out, nil
}

func productsGlobal(ctx context.Context, q Querier, set MatchSet, limit int) ([]models.ProductStatGlobal, error) {
	wb := query.NewWhereBuilder().AddNotBlank("product_type")
	set.restrictTo(wb, "company_id")
	where, args := wb.BuildWithPrefix()
	args = append(args, limit)

	sqlText := `SELECT product_type, COUNT(*) AS cnt
FROM company_products
` + where + `
GROUP BY product_type
ORDER BY cnt DESC, product_type ASC
LIMIT ?`

	start := time.Now()
	rows, err := q.QueryContext(ctx, sqlText, args...)
	if err != nil {
		metrics.RecordDBQuery("product_stats_global", "company_products", time.Since(start), err)
		return nil, fmt.Errorf("failed to query product stats by type: %w", err)
	}
	defer rows.Close()

	out := []models.ProductStatGlobal{}
	for rows.Next() {
		var s models.ProductStatGlobal
		if err := rows.Scan(&s.ProductType, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan product type row: %w", err)
		}
		out = append(out, s)
	}
	err = rows.Err()
	metrics.RecordDBQuery("product_stats_global", "company_products", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("error iterating product type rows: %w", err)
	}
	return out, nil
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
