// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package models

// LookupFamily names one of the five lookup tables.
type LookupFamily string

const (
	LookupProcesses      LookupFamily = "processes"
	LookupCertifications LookupFamily = "certifications"
	LookupEquipment      LookupFamily = "equipment"
	LookupAnalytics      LookupFamily = "analytics"
	LookupServices       LookupFamily = "services"
)

// LookupFamilies lists the families in display order.
var LookupFamilies = []LookupFamily{
	LookupProcesses,
	LookupCertifications,
	LookupEquipment,
	LookupAnalytics,
	LookupServices,
}

// LookupEntry is one code of a lookup family.
type LookupEntry struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// MissingGeoCompany is a company without coordinates, reported by synthctl missing-geo.
type MissingGeoCompany struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Location *string `json:"location,omitempty"`
	City     *string `json:"city,omitempty"`
	State    *string `json:"state,omitempty"`
	Country  *string `json:"country,omitempty"`
}

// Label is the best human-readable place description for the company.
func (m MissingGeoCompany) Label() string {
	return JoinPlace(m.Location, m.City, m.State, m.Country)
}

// JoinPlace joins the non-empty parts with ", ".
func JoinPlace(parts ...*string) string {
	out := ""
	for _, p := range parts {
		if p == nil || *p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += *p
	}
	return out
}
