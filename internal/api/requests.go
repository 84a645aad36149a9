// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

// Request structs for the stats and lookup routes, validated with
// go-playground/validator tags. Field errors are reported under the query
// parameter name from the `query` tag.
//
//   - oneof: value must be one of the listed options
//   - integer: base-10 integer string (limits are clamped, never rejected for range)
//   - lookup_family: one of the five lookup families
//   - omitempty: skip validation when the parameter is absent
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/synthmap/internal/database"
	"github.com/tomtom215/synthmap/internal/models"
)

// LocationStatsRequest holds /api/stats/locations parameters.
type LocationStatsRequest struct {
	Level string `query:"level" validate:"oneof=point country state city"`
	Limit string `query:"limit" validate:"omitempty,integer"`
}

// ChemistryStatsRequest holds /api/stats/chemistries parameters.
type ChemistryStatsRequest struct {
	Limit string `query:"limit" validate:"omitempty,integer"`
}

// ProductStatsRequest holds /api/stats/products parameters.
type ProductStatsRequest struct {
	By    string `query:"by" validate:"oneof=company global"`
	Limit string `query:"limit" validate:"omitempty,integer"`
}

// LookupRequest holds the /api/lookups/{family} path parameter.
type LookupRequest struct {
	Family string `query:"family" validate:"required,lookup_family"`
}

func newLocationStatsRequest(r *http.Request) LocationStatsRequest {
	return LocationStatsRequest{
		Level: getStringParam(r, "level", string(models.LocationLevelCountry)),
		Limit: strings.TrimSpace(r.URL.Query().Get("limit")),
	}
}

func newChemistryStatsRequest(r *http.Request) ChemistryStatsRequest {
	return ChemistryStatsRequest{Limit: strings.TrimSpace(r.URL.Query().Get("limit"))}
}

func newProductStatsRequest(r *http.Request) ProductStatsRequest {
	return ProductStatsRequest{
		By:    getStringParam(r, "by", string(models.ProductGroupingCompany)),
		Limit: strings.TrimSpace(r.URL.Query().Get("limit")),
	}
}

func newLookupRequest(r *http.Request) LookupRequest {
	return LookupRequest{Family: chi.URLParam(r, "family")}
}

// limitOrDefault parses an already validated limit and clamps it.
func limitOrDefault(raw string, defaultValue int) int {
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return database.ClampLimit(n)
}

// buildFilter reads the facet parameters shared by every stats route and
// normalizes them. country, state and city are absent unless present in the
// query; chemistries and certifications accept repeated and comma-joined values.
func buildFilter(r *http.Request) database.CompanyFilter {
	q := r.URL.Query()
	return database.NormalizeFilters(database.RawFilters{
		Country:        optionalParam(q, "country"),
		State:          optionalParam(q, "state"),
		City:           optionalParam(q, "city"),
		Chemistries:    q["chemistries"],
		Certifications: q["certifications"],
	})
}
