// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package database

import (
	"slices"
	"strings"
)

// RawFilters carries facet values exactly as a client sent them. Nil text facets
// are absent; multi-value facets may hold repeated and comma-joined tokens.
type RawFilters struct {
	Country        *string
	State          *string
	City           *string
	Chemistries    []string
	Certifications []string
}

// CompanyFilter is the normalized filter descriptor. Empty text facets and empty
// code lists are inactive. Two descriptors built from equivalent input are Equal
// and serialize identically, so the descriptor is used directly in cache keys.
type CompanyFilter struct {
	Country        string   `json:"country,omitempty"`
	State          string   `json:"state,omitempty"`
	City           string   `json:"city,omitempty"`
	Chemistries    []string `json:"chemistries,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
}

// NormalizeFilters trims text facets (blank becomes absent, case is kept) and
// turns each multi-value facet into an ordered, deduplicated list of uppercase
// codes. Normalizing an already normalized descriptor changes nothing.
//
//	NormalizeFilters(RawFilters{Chemistries: []string{"a", "A", "a,b"}}).Chemistries
//	// ["A", "B"]
func NormalizeFilters(raw RawFilters) CompanyFilter {
	return CompanyFilter{
		Country:        normalizeText(raw.Country),
		State:          normalizeText(raw.State),
		City:           normalizeText(raw.City),
		Chemistries:    normalizeCodes(raw.Chemistries),
		Certifications: normalizeCodes(raw.Certifications),
	}
}

func normalizeText(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func normalizeCodes(values []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, item := range values {
		for _, part := range strings.Split(item, ",") {
			code := strings.ToUpper(strings.TrimSpace(part))
			if code == "" {
				continue
			}
			if _, dup := seen[code]; dup {
				continue
			}
			seen[code] = struct{}{}
			out = append(out, code)
		}
	}
	return out
}

// Raw converts the descriptor back into RawFilters.
func (f CompanyFilter) Raw() RawFilters {
	opt := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}
	return RawFilters{
		Country:        opt(f.Country),
		State:          opt(f.State),
		City:           opt(f.City),
		Chemistries:    append([]string(nil), f.Chemistries...),
		Certifications: append([]string(nil), f.Certifications...),
	}
}

// IsEmpty reports whether no facet is active.
func (f CompanyFilter) IsEmpty() bool {
	return !f.hasLocation() && len(f.Chemistries) == 0 && len(f.Certifications) == 0
}

func (f CompanyFilter) hasLocation() bool {
	return f.Country != "" || f.State != "" || f.City != ""
}

// Equal compares two descriptors field by field, including code order.
func (f CompanyFilter) Equal(other CompanyFilter) bool {
	return f.Country == other.Country &&
		f.State == other.State &&
		f.City == other.City &&
		slices.Equal(f.Chemistries, other.Chemistries) &&
		slices.Equal(f.Certifications, other.Certifications)
}
