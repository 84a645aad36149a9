// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func strPtr(s string) *string { return &s }

func marshalString(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestLocationStatsResult_MarshalGroups(t *testing.T) {
	r := GroupResult([]LocationGroup{{Key: "India", Count: 2}})
	got := marshalString(t, r)
	want := `[{"key":"India","count":2,"geometry":null}]`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestLocationStatsResult_MarshalEmpty(t *testing.T) {
	tests := []struct {
		name string
		r    LocationStatsResult
		want string
	}{
		{"zero value", LocationStatsResult{}, `[]`},
		{"empty groups", GroupResult(nil), `[]`},
		{"empty features", FeatureResult(nil), `{"type":"FeatureCollection","features":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := marshalString(t, tt.r); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLocationStatsResult_MarshalFeatures(t *testing.T) {
	r := FeatureResult([]GeoJSONFeature{{
		Type:       "Feature",
		Geometry:   GeoJSONGeometry{Type: "Point", Coordinates: [2]float64{77.5946, 12.9716}},
		Properties: GeoJSONProperties{Key: "Bangalore, Karnataka, India", Count: 1, CompanyID: 1},
	}})
	got := marshalString(t, r)
	want := `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Point","coordinates":[77.5946,12.9716]},"properties":{"key":"Bangalore, Karnataka, India","count":1,"company_id":1}}]}`
	if got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
}

func TestLocationStatsResult_RoundTrip(t *testing.T) {
	for _, in := range []LocationStatsResult{
		GroupResult([]LocationGroup{{Key: "Gujarat", Count: 1}}),
		FeatureResult([]GeoJSONFeature{{Type: "Feature", Properties: GeoJSONProperties{Key: "company:9", Count: 1, CompanyID: 9}}}),
	} {
		var out LocationStatsResult
		if err := json.Unmarshal([]byte(marshalString(t, in)), &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if out.Kind != in.Kind || out.Len() != in.Len() {
			t.Errorf("round trip changed result: %+v -> %+v", in, out)
		}
	}
}

func TestProductStatsResult_Marshal(t *testing.T) {
	byCompany := ProductStatsResult{Kind: ProductStatsByCompany, ByCompany: []ProductStatByCompany{{CompanyID: 2, CompanyName: "Nova Intermediates", ProductCount: 3}}}
	if got, want := marshalString(t, byCompany), `[{"company_id":2,"company_name":"Nova Intermediates","product_count":3}]`; got != want {
		t.Errorf("by company: got %s, want %s", got, want)
	}

	global := ProductStatsResult{Kind: ProductStatsGlobal, Global: []ProductStatGlobal{{ProductType: "API", Count: 6}}}
	if got, want := marshalString(t, global), `[{"product_type":"API","count":6}]`; got != want {
		t.Errorf("global: got %s, want %s", got, want)
	}

	if got := marshalString(t, ProductStatsResult{Kind: ProductStatsGlobal}); got != `[]` {
		t.Errorf("empty global: got %s", got)
	}
	if _, err := json.Marshal(ProductStatsResult{Kind: "weird"}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestLevelAndGroupingValid(t *testing.T) {
	for _, l := range []LocationLevel{"point", "country", "state", "city"} {
		if !l.Valid() {
			t.Errorf("%q should be valid", l)
		}
	}
	for _, l := range []LocationLevel{"", "region", "Country"} {
		if l.Valid() {
			t.Errorf("%q should be invalid", l)
		}
	}
	if !ProductGroupingCompany.Valid() || !ProductGroupingGlobal.Valid() {
		t.Error("known groupings should be valid")
	}
	if ProductGrouping("type").Valid() {
		t.Error("unknown grouping should be invalid")
	}
}

func TestJoinPlace(t *testing.T) {
	tests := []struct {
		name  string
		parts []*string
		want  string
	}{
		{"all present", []*string{strPtr("Plant 2"), strPtr("Basel"), strPtr("BS"), strPtr("Switzerland")}, "Plant 2, Basel, BS, Switzerland"},
		{"skips nil and empty", []*string{nil, strPtr("Basel"), strPtr(""), strPtr("Switzerland")}, "Basel, Switzerland"},
		{"nothing", []*string{nil, strPtr(""), nil, nil}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinPlace(tt.parts...); got != tt.want {
				t.Errorf("JoinPlace() = %q, want %q", got, tt.want)
			}
		})
	}

	m := MissingGeoCompany{ID: 3, Name: "BluePeak Chemicals", City: strPtr("Ahmedabad"), Country: strPtr("India")}
	if got := m.Label(); got != "Ahmedabad, India" {
		t.Errorf("Label() = %q", got)
	}
}
