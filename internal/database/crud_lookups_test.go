// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package database

import (
	"errors"
	"testing"

	"github.com/tomtom215/synthmap/internal/models"
)

func TestListLookups(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	tests := []struct {
		family    models.LookupFamily
		wantCodes []string
	}{
		{models.LookupProcesses, []string{"ACYLATION", "HYDROGENATION", "NITRATION", "OXIDATION", "REDUCTION"}},
		{models.LookupCertifications, []string{"EDQM", "GLP", "ISO9001", "USFDA", "WHO_GMP"}},
		{models.LookupEquipment, []string{"DISTILLATION_COLUMN", "FBD", "KILO_LAB", "MICRONIZER", "SPRAY_DRYER"}},
		{models.LookupAnalytics, []string{"GC", "HPLC", "LCMS", "NMR", "STABILITY_CHAMBER"}},
		{models.LookupServices, []string{"CHARACTERIZATION", "IMPURITY_SYNTHESIS", "METHOD_DEVELOPMENT", "PATENT_CHECK", "STABILITY_STUDIES"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.family), func(t *testing.T) {
			entries, err := db.ListLookups(ctx, tt.family)
			checkNoError(t, err)
			codes := make([]string, len(entries))
			for i, e := range entries {
				codes[i] = e.Code
				if e.ID <= 0 || e.Name == "" {
					t.Errorf("incomplete entry %+v", e)
				}
			}
			checkStrings(t, "codes", codes, tt.wantCodes)
		})
	}
}

func TestListLookups_UnknownFamily(t *testing.T) {
	db := setupEmptyTestDB(t)
	_, err := db.ListLookups(testContext(t), "reagents")
	if !errors.Is(err, ErrUnknownLookupFamily) {
		t.Errorf("expected ErrUnknownLookupFamily, got %v", err)
	}
}

func TestListLookups_EmptyCatalog(t *testing.T) {
	db := setupEmptyTestDB(t)
	entries, err := db.ListLookups(testContext(t), models.LookupProcesses)
	checkNoError(t, err)
	if entries == nil || len(entries) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", entries)
	}
}

func TestListMissingGeo(t *testing.T) {
	db := setupTestDB(t)

	missing, err := db.ListMissingGeo(testContext(t))
	checkNoError(t, err)
	checkIntEqual(t, "missing", len(missing), 1)
	if len(missing) != 1 {
		return
	}
	c := missing[0]
	checkStringEqual(t, "name", c.Name, "BluePeak Chemicals")
	if c.ID != 3 {
		t.Errorf("id = %d, want 3", c.ID)
	}
	if c.State == nil || *c.State != "Gujarat" {
		t.Errorf("state = %v", c.State)
	}
	checkStringEqual(t, "label", c.Label(), "Ahmedabad, Gujarat, India, Ahmedabad, Gujarat, India")
}
