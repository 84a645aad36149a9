// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/synthmap/internal/database"
	"github.com/tomtom215/synthmap/internal/models"
)

// statsParams is the non-filter part of a stats cache key.
type statsParams struct {
	Level string `json:"level,omitempty"`
	By    string `json:"by,omitempty"`
	Limit int    `json:"limit"`
}

// LocationStats handles company counts grouped by location.
//
// @Summary Company counts by location
// @Description Groups matching companies by country, state or city, or returns one GeoJSON point per company with coordinates (level=point). Rows are ordered by count descending, then key.
// @Tags Stats
// @Produce json
// @Param level query string false "Aggregation level" Enums(point, country, state, city) default(country)
// @Param limit query int false "Maximum rows or features, clamped to [1, 10000]" default(200)
// @Param country query string false "Country, case-insensitive exact match"
// @Param state query string false "State, case-insensitive exact match"
// @Param city query string false "City, case-insensitive exact match"
// @Param chemistries query []string false "Process codes the company must all have available" collectionFormat(multi)
// @Param certifications query []string false "Certification codes the company must all hold" collectionFormat(multi)
// @Success 200 {object} models.APIResponse{data=[]models.LocationGroup} "Grouped counts, or a FeatureCollection for level=point"
// @Failure 400 {object} models.APIResponse "Invalid level or limit"
// @Failure 500 {object} models.APIResponse "Database error"
// @Failure 503 {object} models.APIResponse "Circuit breaker open"
// @Router /api/stats/locations [get]
func (h *Handler) LocationStats(w http.ResponseWriter, r *http.Request) {
	req := newLocationStatsRequest(r)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	level := models.LocationLevel(req.Level)
	limit := limitOrDefault(req.Limit, database.DefaultLocationLimit)
	filter := buildFilter(r)

	NewStatsQueryExecutor(h).ExecuteWithCache(w, r, "GetLocationStats", filter,
		statsParams{Level: req.Level, Limit: limit},
		func(ctx context.Context, store CatalogStore) (interface{}, error) {
			return store.GetLocationStats(ctx, level, filter, limit)
		})
}

// ChemistryStats handles company counts per available process.
//
// @Summary Company counts by chemistry
// @Description Counts distinct matching companies per process code they have available, ordered by count descending, then code.
// @Tags Stats
// @Produce json
// @Param limit query int false "Maximum rows, clamped to [1, 10000]" default(50)
// @Param country query string false "Country, case-insensitive exact match"
// @Param state query string false "State, case-insensitive exact match"
// @Param city query string false "City, case-insensitive exact match"
// @Param chemistries query []string false "Process codes the company must all have available" collectionFormat(multi)
// @Param certifications query []string false "Certification codes the company must all hold" collectionFormat(multi)
// @Success 200 {object} models.APIResponse{data=[]models.ChemistryStat} "Chemistry counts"
// @Failure 400 {object} models.APIResponse "Invalid limit"
// @Failure 500 {object} models.APIResponse "Database error"
// @Failure 503 {object} models.APIResponse "Circuit breaker open"
// @Router /api/stats/chemistries [get]
func (h *Handler) ChemistryStats(w http.ResponseWriter, r *http.Request) {
	req := newChemistryStatsRequest(r)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	limit := limitOrDefault(req.Limit, database.DefaultChemistryLimit)
	filter := buildFilter(r)

	NewStatsQueryExecutor(h).ExecuteWithCache(w, r, "GetChemistryStats", filter,
		statsParams{Limit: limit},
		func(ctx context.Context, store CatalogStore) (interface{}, error) {
			return store.GetChemistryStats(ctx, filter, limit)
		})
}

// ProductStats handles product counts per company or per product type.
//
// @Summary Product counts
// @Description by=company counts products per matching company (companies without products are omitted); by=global counts products per product type across matching companies.
// @Tags Stats
// @Produce json
// @Param by query string false "Grouping" Enums(company, global) default(company)
// @Param limit query int false "Maximum rows, clamped to [1, 10000]" default(50)
// @Param country query string false "Country, case-insensitive exact match"
// @Param state query string false "State, case-insensitive exact match"
// @Param city query string false "City, case-insensitive exact match"
// @Param chemistries query []string false "Process codes the company must all have available" collectionFormat(multi)
// @Param certifications query []string false "Certification codes the company must all hold" collectionFormat(multi)
// @Success 200 {object} models.APIResponse{data=[]models.ProductStatByCompany} "Per-company counts, or []models.ProductStatGlobal for by=global"
// @Failure 400 {object} models.APIResponse "Invalid grouping or limit"
// @Failure 500 {object} models.APIResponse "Database error"
// @Failure 503 {object} models.APIResponse "Circuit breaker open"
// @Router /api/stats/products [get]
func (h *Handler) ProductStats(w http.ResponseWriter, r *http.Request) {
	req := newProductStatsRequest(r)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	by := models.ProductGrouping(req.By)
	limit := limitOrDefault(req.Limit, database.DefaultProductLimit)
	filter := buildFilter(r)

	NewStatsQueryExecutor(h).ExecuteWithCache(w, r, "GetProductStats", filter,
		statsParams{By: req.By, Limit: limit},
		func(ctx context.Context, store CatalogStore) (interface{}, error) {
			return store.GetProductStats(ctx, by, filter, limit)
		})
}
