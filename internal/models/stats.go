// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package models

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// LocationLevel selects how GetLocationStats groups companies.
type LocationLevel string

const (
	LocationLevelPoint   LocationLevel = "point"
	LocationLevelCountry LocationLevel = "country"
	LocationLevelState   LocationLevel = "state"
	LocationLevelCity    LocationLevel = "city"
)

// Valid reports whether l is one of the four known levels.
func (l LocationLevel) Valid() bool {
	switch l {
	case LocationLevelPoint, LocationLevelCountry, LocationLevelState, LocationLevelCity:
		return true
	}
	return false
}

// ProductGrouping selects how GetProductStats groups products.
type ProductGrouping string

const (
	ProductGroupingCompany ProductGrouping = "company"
	ProductGroupingGlobal  ProductGrouping = "global"
)

// Valid reports whether g is a known grouping.
func (g ProductGrouping) Valid() bool {
	return g == ProductGroupingCompany || g == ProductGroupingGlobal
}

// LocationGroup is one row of a country, state or city aggregation.
// Geometry is always null for grouped levels; the field exists so grouped rows and
// point features share a shape on the client.
type LocationGroup struct {
	Key      string           `json:"key"`
	Count    int              `json:"count"`
	Geometry *GeoJSONGeometry `json:"geometry"`
}

// GeoJSONGeometry is a GeoJSON Point. Coordinates are [lon, lat].
type GeoJSONGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// GeoJSONProperties are attached to every company point feature.
//
// Fields:
//   - Key: "location, city, state, country" with empty parts skipped, or "company:<id>"
//   - Count: Always 1 (one company per feature)
//   - CompanyID: The company the point belongs to
type GeoJSONProperties struct {
	Key       string `json:"key"`
	Count     int    `json:"count"`
	CompanyID int64  `json:"company_id"`
}

// GeoJSONFeature is a single company point.
type GeoJSONFeature struct {
	Type       string            `json:"type"`
	Geometry   GeoJSONGeometry   `json:"geometry"`
	Properties GeoJSONProperties `json:"properties"`
}

// GeoJSONFeatureCollection wraps point features.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []GeoJSONFeature `json:"features"`
}

// NewFeatureCollection returns a collection that marshals features as [] when empty.
func NewFeatureCollection(features []GeoJSONFeature) GeoJSONFeatureCollection {
	if features == nil {
		features = []GeoJSONFeature{}
	}
	return GeoJSONFeatureCollection{Type: "FeatureCollection", Features: features}
}

// LocationStatsKind tags which half of LocationStatsResult is populated.
type LocationStatsKind string

const (
	LocationStatsGroups   LocationStatsKind = "groups"
	LocationStatsFeatures LocationStatsKind = "features"
)

// LocationStatsResult is the output of GetLocationStats. Exactly one of Groups or
// Collection is meaningful, selected by Kind. It marshals to the bare group list or
// the bare FeatureCollection, never to a wrapper object.
type LocationStatsResult struct {
	Kind       LocationStatsKind
	Groups     []LocationGroup
	Collection GeoJSONFeatureCollection
}

// GroupResult builds a grouped result.
func GroupResult(groups []LocationGroup) LocationStatsResult {
	if groups == nil {
		groups = []LocationGroup{}
	}
	return LocationStatsResult{Kind: LocationStatsGroups, Groups: groups}
}

// FeatureResult builds a point-level result.
func FeatureResult(features []GeoJSONFeature) LocationStatsResult {
	return LocationStatsResult{Kind: LocationStatsFeatures, Collection: NewFeatureCollection(features)}
}

// Len returns the number of rows or features.
func (r LocationStatsResult) Len() int {
	if r.Kind == LocationStatsFeatures {
		return len(r.Collection.Features)
	}
	return len(r.Groups)
}

// MarshalJSON implements json.Marshaler.
func (r LocationStatsResult) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case LocationStatsFeatures:
		return json.Marshal(NewFeatureCollection(r.Collection.Features))
	case LocationStatsGroups, "":
		if r.Groups == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(r.Groups)
	default:
		return nil, fmt.Errorf("unknown location stats kind %q", r.Kind)
	}
}

// UnmarshalJSON accepts either a group list or a FeatureCollection.
func (r *LocationStatsResult) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var fc GeoJSONFeatureCollection
		if err := json.Unmarshal(trimmed, &fc); err != nil {
			return err
		}
		*r = FeatureResult(fc.Features)
		return nil
	}
	var groups []LocationGroup
	if err := json.Unmarshal(trimmed, &groups); err != nil {
		return err
	}
	*r = GroupResult(groups)
	return nil
}

// ChemistryStat counts distinct companies that have a process available.
type ChemistryStat struct {
	Chemistry    string `json:"chemistry"`
	CompanyCount int    `json:"company_count"`
}

// ProductStatByCompany is one row of the per-company product aggregation.
type ProductStatByCompany struct {
	CompanyID    int64  `json:"company_id"`
	CompanyName  string `json:"company_name"`
	ProductCount int    `json:"product_count"`
}

// ProductStatGlobal is one row of the per-product-type aggregation.
type ProductStatGlobal struct {
	ProductType string `json:"product_type"`
	Count       int    `json:"count"`
}

// ProductStatsKind tags which half of ProductStatsResult is populated.
type ProductStatsKind string

const (
	ProductStatsByCompany ProductStatsKind = "by_company"
	ProductStatsGlobal    ProductStatsKind = "global"
)

// ProductStatsResult is the output of GetProductStats. It marshals to the bare list
// selected by Kind.
type ProductStatsResult struct {
	Kind      ProductStatsKind
	ByCompany []ProductStatByCompany
	Global    []ProductStatGlobal
}

// Len returns the number of rows.
func (r ProductStatsResult) Len() int {
	if r.Kind == ProductStatsGlobal {
		return len(r.Global)
	}
	return len(r.ByCompany)
}

// MarshalJSON implements json.Marshaler.
func (r ProductStatsResult) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case ProductStatsGlobal:
		if r.Global == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(r.Global)
	case ProductStatsByCompany, "":
		if r.ByCompany == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(r.ByCompany)
	default:
		return nil, fmt.Errorf("unknown product stats kind %q", r.Kind)
	}
}
