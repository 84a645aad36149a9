// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goccy/go-json"
	"github.com/tomtom215/synthmap/internal/models"
)

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{200, 200},
		{10000, 10000},
		{10001, 10000},
		{1000000, 10000},
	}
	for _, tt := range tests {
		if got := ClampLimit(tt.in); got != tt.want {
			t.Errorf("ClampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestGetLocationStats_Grouped(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	tests := []struct {
		name   string
		level  models.LocationLevel
		filter CompanyFilter
		limit  int
		want   []models.LocationGroup
	}{
		{
			name:  "country unfiltered",
			level: models.LocationLevelCountry,
			limit: DefaultLocationLimit,
			want:  []models.LocationGroup{{Key: "India", Count: 3}, {Key: "Switzerland", Count: 1}},
		},
		{
			name:  "state skips missing state",
			level: models.LocationLevelState,
			limit: DefaultLocationLimit,
			want:  []models.LocationGroup{{Key: "Gujarat", Count: 1}, {Key: "Karnataka", Count: 1}, {Key: "Telangana", Count: 1}},
		},
		{
			name:  "city ties by key",
			level: models.LocationLevelCity,
			limit: DefaultLocationLimit,
			want: []models.LocationGroup{
				{Key: "Ahmedabad", Count: 1}, {Key: "Bangalore", Count: 1},
				{Key: "Basel", Count: 1}, {Key: "Hyderabad", Count: 1},
			},
		},
		{
			name:   "india and hydrogenation",
			level:  models.LocationLevelCountry,
			filter: CompanyFilter{Country: "India", Chemistries: []string{"HYDROGENATION"}},
			limit:  DefaultLocationLimit,
			want:   []models.LocationGroup{{Key: "India", Count: 2}},
		},
		{
			name:   "certifications all of with country",
			level:  models.LocationLevelCountry,
			filter: CompanyFilter{Country: "India", Certifications: []string{"ISO9001", "USFDA"}},
			limit:  DefaultLocationLimit,
			want:   []models.LocationGroup{{Key: "India", Count: 2}},
		},
		{
			name:  "limit applied after ordering",
			level: models.LocationLevelCountry,
			limit: 1,
			want:  []models.LocationGroup{{Key: "India", Count: 3}},
		},
		{
			name:  "zero limit clamps to one",
			level: models.LocationLevelCity,
			limit: 0,
			want:  []models.LocationGroup{{Key: "Ahmedabad", Count: 1}},
		},
		{
			name:   "empty matching set",
			level:  models.LocationLevelCountry,
			filter: CompanyFilter{Chemistries: []string{"UNKNOWN"}},
			limit:  DefaultLocationLimit,
			want:   []models.LocationGroup{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := db.GetLocationStats(ctx, tt.level, tt.filter, tt.limit)
			checkNoError(t, err)
			if res.Kind != models.LocationStatsGroups {
				t.Fatalf("Kind = %q, want groups", res.Kind)
			}
			checkIntEqual(t, "rows", len(res.Groups), len(tt.want))
			for i := range tt.want {
				if i >= len(res.Groups) {
					break
				}
				got := res.Groups[i]
				if got.Key != tt.want[i].Key || got.Count != tt.want[i].Count || got.Geometry != nil {
					t.Errorf("row %d = %+v, want %+v", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestGetLocationStats_ScenarioJSON(t *testing.T) {
	db := setupTestDB(t)
	f := NormalizeFilters(RawFilters{Country: ptr("India"), Chemistries: []string{"HYDROGENATION"}})

	res, err := db.GetLocationStats(testContext(t), models.LocationLevelCountry, f, DefaultLocationLimit)
	checkNoError(t, err)
	b, err := json.Marshal(res)
	checkNoError(t, err)
	checkStringEqual(t, "json", string(b), `[{"key":"India","count":2,"geometry":null}]`)
}

func TestGetLocationStats_Point(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	res, err := db.GetLocationStats(ctx, models.LocationLevelPoint, CompanyFilter{}, DefaultLocationLimit)
	checkNoError(t, err)
	if res.Kind != models.LocationStatsFeatures {
		t.Fatalf("Kind = %q, want features", res.Kind)
	}
	features := res.Collection.Features
	checkStringEqual(t, "collection type", res.Collection.Type, "FeatureCollection")
	checkIntEqual(t, "features", len(features), 3)

	var ids []int64
	for _, f := range features {
		ids = append(ids, f.Properties.CompanyID)
		checkStringEqual(t, "feature type", f.Type, "Feature")
		checkStringEqual(t, "geometry type", f.Geometry.Type, "Point")
		checkIntEqual(t, "count", f.Properties.Count, 1)
	}
	// BluePeak (3) has no coordinates.
	checkIDs(t, "feature ids", ids, []int64{1, 2, 4})

	acme := features[0]
	if acme.Geometry.Coordinates != [2]float64{77.5946, 12.9716} {
		t.Errorf("coordinates = %v, want [lon lat]", acme.Geometry.Coordinates)
	}
	checkStringEqual(t, "key", acme.Properties.Key, "Bangalore, Karnataka, India, Bangalore, Karnataka, India")
	checkStringEqual(t, "euro key", features[2].Properties.Key, "Basel, Switzerland, Basel, Switzerland")
}

func TestGetLocationStats_PointFilteredAndEmpty(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	res, err := db.GetLocationStats(ctx, models.LocationLevelPoint,
		CompanyFilter{Certifications: []string{"ISO9001"}}, DefaultLocationLimit)
	checkNoError(t, err)
	checkIntEqual(t, "features", res.Len(), 1)
	if res.Len() == 1 && res.Collection.Features[0].Properties.CompanyID != 1 {
		t.Errorf("expected Acme only, got %+v", res.Collection.Features)
	}

	res, err = db.GetLocationStats(ctx, models.LocationLevelPoint,
		CompanyFilter{State: "Gujarat"}, DefaultLocationLimit)
	checkNoError(t, err)
	b, err := json.Marshal(res)
	checkNoError(t, err)
	checkStringEqual(t, "json", string(b), `{"type":"FeatureCollection","features":[]}`)
}

func TestGetLocationStats_PointKeyFallback(t *testing.T) {
	db := setupEmptyTestDB(t)
	ctx := testContext(t)

	_, err := db.conn.ExecContext(ctx, "INSERT INTO companies (name, lat, lon) VALUES ('Nowhere Fine Chem', 1.5, 2.5)")
	checkNoError(t, err)

	res, err := db.GetLocationStats(ctx, models.LocationLevelPoint, CompanyFilter{}, 10)
	checkNoError(t, err)
	checkIntEqual(t, "features", res.Len(), 1)
	if res.Len() == 1 {
		f := res.Collection.Features[0]
		checkStringEqual(t, "key", f.Properties.Key, fmt.Sprintf("company:%d", f.Properties.CompanyID))
	}
}

func TestGetLocationStats_InvalidLevel(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.GetLocationStats(testContext(t), "region", CompanyFilter{}, 10)
	if !errors.Is(err, ErrInvalidLocationLevel) {
		t.Errorf("expected ErrInvalidLocationLevel, got %v", err)
	}
}

func TestGetLocationStats_LimitNeverExceeded(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	for _, level := range []models.LocationLevel{
		models.LocationLevelPoint, models.LocationLevelCountry,
		models.LocationLevelState, models.LocationLevelCity,
	} {
		for _, limit := range []int{-1, 1, 2} {
			res, err := db.GetLocationStats(ctx, level, CompanyFilter{}, limit)
			checkNoError(t, err)
			if res.Len() > ClampLimit(limit) {
				t.Errorf("%s limit %d returned %d rows", level, limit, res.Len())
			}
		}
	}
}

func TestGetChemistryStats(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	stats, err := db.GetChemistryStats(ctx, CompanyFilter{}, DefaultChemistryLimit)
	checkNoError(t, err)
	want := []models.ChemistryStat{
		{Chemistry: "ACYLATION", CompanyCount: 2},
		{Chemistry: "HYDROGENATION", CompanyCount: 2},
		{Chemistry: "NITRATION", CompanyCount: 2},
		{Chemistry: "OXIDATION", CompanyCount: 2},
		{Chemistry: "REDUCTION", CompanyCount: 2},
	}
	checkIntEqual(t, "rows", len(stats), len(want))
	for i := range want {
		if i < len(stats) && stats[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, stats[i], want[i])
		}
	}

	stats, err = db.GetChemistryStats(ctx, CompanyFilter{Country: "India"}, DefaultChemistryLimit)
	checkNoError(t, err)
	if len(stats) == 0 || stats[0].Chemistry != "HYDROGENATION" || stats[0].CompanyCount != 2 {
		t.Errorf("india: expected even-row processes first with count 2, got %+v", stats)
	}

	stats, err = db.GetChemistryStats(ctx, CompanyFilter{Country: "Atlantis"}, DefaultChemistryLimit)
	checkNoError(t, err)
	if stats == nil || len(stats) != 0 {
		t.Errorf("empty set should give empty non-nil slice, got %#v", stats)
	}
}

func TestGetChemistryStats_CommaJoinedFilter(t *testing.T) {
	db := setupTestDB(t)
	f := NormalizeFilters(RawFilters{Chemistries: []string{"HYDROGENATION,OXIDATION"}})

	stats, err := db.GetChemistryStats(testContext(t), f, DefaultChemistryLimit)
	checkNoError(t, err)

	keys := make(map[string]int)
	for _, s := range stats {
		keys[s.Chemistry] = s.CompanyCount
	}
	for _, code := range []string{"HYDROGENATION", "OXIDATION"} {
		if keys[code] != 2 {
			t.Errorf("%s: expected count 2, got %d (rows %+v)", code, keys[code], stats)
		}
	}
	if _, ok := keys["NITRATION"]; ok {
		t.Error("companies filtered out should not contribute NITRATION")
	}
}

func TestGetChemistryStats_Limit(t *testing.T) {
	db := setupTestDB(t)
	stats, err := db.GetChemistryStats(testContext(t), CompanyFilter{}, 2)
	checkNoError(t, err)
	checkIntEqual(t, "rows", len(stats), 2)
}

func TestGetProductStats_ByCompany(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	res, err := db.GetProductStats(ctx, models.ProductGroupingCompany, CompanyFilter{}, DefaultProductLimit)
	checkNoError(t, err)
	if res.Kind != models.ProductStatsByCompany {
		t.Fatalf("Kind = %q", res.Kind)
	}
	want := []models.ProductStatByCompany{
		{CompanyID: 4, CompanyName: "EuroSynth Labs", ProductCount: 3},
		{CompanyID: 2, CompanyName: "Nova Intermediates", ProductCount: 3},
		{CompanyID: 1, CompanyName: "Acme Pharma CDMO", ProductCount: 2},
		{CompanyID: 3, CompanyName: "BluePeak Chemicals", ProductCount: 2},
	}
	checkIntEqual(t, "rows", len(res.ByCompany), len(want))
	for i := range want {
		if i < len(res.ByCompany) && res.ByCompany[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, res.ByCompany[i], want[i])
		}
	}
}

func TestGetProductStats_LocationScenario(t *testing.T) {
	db := setupTestDB(t)
	f := NormalizeFilters(RawFilters{Country: ptr("india"), City: ptr("HYDERABAD")})

	res, err := db.GetProductStats(testContext(t), models.ProductGroupingCompany, f, DefaultProductLimit)
	checkNoError(t, err)
	want := []models.ProductStatByCompany{{CompanyID: 2, CompanyName: "Nova Intermediates", ProductCount: 3}}
	if len(res.ByCompany) != 1 || res.ByCompany[0] != want[0] {
		t.Errorf("got %+v, want %+v", res.ByCompany, want)
	}
}

func TestGetProductStats_CompanyWithoutProducts(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	_, err := db.conn.ExecContext(ctx, "INSERT INTO companies (name, country) VALUES ('Empty Shelf Ltd', 'India')")
	checkNoError(t, err)

	res, err := db.GetProductStats(ctx, models.ProductGroupingCompany, CompanyFilter{Country: "India"}, DefaultProductLimit)
	checkNoError(t, err)
	for _, r := range res.ByCompany {
		if r.CompanyName == "Empty Shelf Ltd" {
			t.Errorf("company without products listed: %+v", r)
		}
	}
	checkIntEqual(t, "rows", len(res.ByCompany), 3)
}

func TestGetProductStats_Global(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	_, err := db.conn.ExecContext(ctx, `INSERT INTO company_products (company_id, product_name, product_type)
VALUES (1, 'UNTYPED-1', NULL), (1, 'BLANK-1', '')`)
	checkNoError(t, err)

	res, err := db.GetProductStats(ctx, models.ProductGroupingGlobal, CompanyFilter{}, DefaultProductLimit)
	checkNoError(t, err)
	if res.Kind != models.ProductStatsGlobal {
		t.Fatalf("Kind = %q", res.Kind)
	}
	want := []models.ProductStatGlobal{{ProductType: "API", Count: 6}, {ProductType: "Intermediate", Count: 4}}
	checkIntEqual(t, "rows", len(res.Global), len(want))
	for i := range want {
		if i < len(res.Global) && res.Global[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, res.Global[i], want[i])
		}
	}

	res, err = db.GetProductStats(ctx, models.ProductGroupingGlobal, CompanyFilter{Country: "Switzerland"}, DefaultProductLimit)
	checkNoError(t, err)
	want = []models.ProductStatGlobal{{ProductType: "API", Count: 2}, {ProductType: "Intermediate", Count: 1}}
	if len(res.Global) != 2 || res.Global[0] != want[0] || res.Global[1] != want[1] {
		t.Errorf("switzerland: got %+v, want %+v", res.Global, want)
	}
}

func TestGetProductStats_EmptyAndInvalid(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	res, err := db.GetProductStats(ctx, models.ProductGroupingGlobal, CompanyFilter{Certifications: []string{"EDQM"}}, DefaultProductLimit)
	checkNoError(t, err)
	b, err := json.Marshal(res)
	checkNoError(t, err)
	checkStringEqual(t, "json", string(b), `[]`)

	_, err = db.GetProductStats(ctx, "type", CompanyFilter{}, DefaultProductLimit)
	if !errors.Is(err, ErrInvalidProductGrouping) {
		t.Errorf("expected ErrInvalidProductGrouping, got %v", err)
	}
}

// Filtering by one certification of a pair both companies hold gives the same
// count as requiring the pair.
func TestCertificationAllOfMatchesSingle(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	count := func(f CompanyFilter) int {
		t.Helper()
		res, err := db.GetLocationStats(ctx, models.LocationLevelCountry, f, DefaultLocationLimit)
		checkNoError(t, err)
		if len(res.Groups) != 1 || res.Groups[0].Key != "India" {
			t.Fatalf("expected only India, got %+v", res.Groups)
		}
		return res.Groups[0].Count
	}

	both := count(CompanyFilter{Country: "India", Certifications: []string{"ISO9001", "USFDA"}})
	iso := count(CompanyFilter{Country: "India", Certifications: []string{"ISO9001"}})
	fda := count(CompanyFilter{Country: "India", Certifications: []string{"USFDA"}})
	withChem := count(CompanyFilter{Country: "India", Certifications: []string{"ISO9001", "USFDA"}, Chemistries: []string{"HYDROGENATION"}})

	checkIntEqual(t, "both", both, 2)
	checkIntEqual(t, "iso", iso, both)
	checkIntEqual(t, "fda", fda, both)
	checkIntEqual(t, "with chemistry", withChem, both)
}

func TestUnfilteredEqualsNoFacets(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	a, err := db.GetChemistryStats(ctx, CompanyFilter{}, DefaultChemistryLimit)
	checkNoError(t, err)
	b, err := db.GetChemistryStats(ctx, NormalizeFilters(RawFilters{Country: ptr("  "), Chemistries: []string{","}}), DefaultChemistryLimit)
	checkNoError(t, err)
	if fmt.Sprint(a) != fmt.Sprint(b) {
		t.Errorf("blank filters changed result: %v vs %v", a, b)
	}
	checkStrings(t, "keys", chemistryKeys(a), chemistryKeys(b))
}

func chemistryKeys(stats []models.ChemistryStat) []string {
	out := make([]string, len(stats))
	for i, s := range stats {
		out[i] = s.Chemistry
	}
	return out
}
