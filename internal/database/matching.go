// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package database

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/tomtom215/synthmap/internal/database/query"
	"github.com/tomtom215/synthmap/internal/metrics"
)

// Querier is the read surface shared by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// MatchSet is the set of companies satisfying a filter. The zero value is the
// unrestricted set (every company matches), which is distinct from a restricted
// set that happens to be empty.
type MatchSet struct {
	restricted bool
	ids        map[int64]struct{}
}

// Unrestricted returns the set that places no restriction on companies.
func Unrestricted() MatchSet {
	return MatchSet{}
}

// NewMatchSet returns a restricted set holding ids. With no ids it is empty.
func NewMatchSet(ids ...int64) MatchSet {
	m := MatchSet{restricted: true, ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		m.ids[id] = struct{}{}
	}
	return m
}

// IsUnrestricted reports whether the set places no restriction.
func (m MatchSet) IsUnrestricted() bool {
	return !m.restricted
}

// IsEmpty reports whether the set is restricted and holds no company.
func (m MatchSet) IsEmpty() bool {
	return m.restricted && len(m.ids) == 0
}

// Contains reports whether id is in the set. Every id is in the unrestricted set.
func (m MatchSet) Contains(id int64) bool {
	if !m.restricted {
		return true
	}
	_, ok := m.ids[id]
	return ok
}

// Len returns the number of ids, or -1 for the unrestricted set.
func (m MatchSet) Len() int {
	if !m.restricted {
		return -1
	}
	return len(m.ids)
}

// IDs returns the ids in ascending order, or nil for the unrestricted set.
func (m MatchSet) IDs() []int64 {
	if !m.restricted {
		return nil
	}
	out := make([]int64, 0, len(m.ids))
	for id := range m.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Intersect returns the companies present in both sets. The unrestricted set is
// the identity element.
func (m MatchSet) Intersect(other MatchSet) MatchSet {
	switch {
	case !m.restricted:
		return other
	case !other.restricted:
		return m
	}
	small, large := m, other
	if len(large.ids) < len(small.ids) {
		small, large = large, small
	}
	out := NewMatchSet()
	for id := range small.ids {
		if _, ok := large.ids[id]; ok {
			out.ids[id] = struct{}{}
		}
	}
	return out
}

// restrictTo adds the matching-set condition on column to wb. Nothing is added
// for the unrestricted set.
func (m MatchSet) restrictTo(wb *query.WhereBuilder, column string) {
	if m.restricted {
		wb.AddInInt64(column, m.IDs())
	}
}

// facet evaluates one filter dimension. An inactive facet returns Unrestricted.
type facet func(ctx context.Context, q Querier, f CompanyFilter) (MatchSet, error)

// codeFacet describes a lookup family whose codes are matched with ALL-of
// semantics through a junction table.
type codeFacet struct {
	name          string
	lookupTable   string
	junctionTable string
	junctionFK    string
	flagColumn    string
}

var (
	chemistryFacet = codeFacet{
		name:          "chemistries",
		lookupTable:   "process_types",
		junctionTable: "company_processes",
		junctionFK:    "process_type_id",
		flagColumn:    "available",
	}
	certificationFacet = codeFacet{
		name:          "certifications",
		lookupTable:   "certification_types",
		junctionTable: "company_certifications",
		junctionFK:    "certification_type_id",
		flagColumn:    "has_cert",
	}
)

// facets are folded in this order; the cheap location facet goes first so an
// empty result skips the junction scans.
var facets = []facet{
	locationFacet,
	func(ctx context.Context, q Querier, f CompanyFilter) (MatchSet, error) {
		return hasAllCodes(ctx, q, chemistryFacet, f.Chemistries)
	},
	func(ctx context.Context, q Querier, f CompanyFilter) (MatchSet, error) {
		return hasAllCodes(ctx, q, certificationFacet, f.Certifications)
	},
}

// locationFacet matches country, state and city case-insensitively, all present
// text facets combined with AND.
func locationFacet(ctx context.Context, q Querier, f CompanyFilter) (MatchSet, error) {
	if !f.hasLocation() {
		return Unrestricted(), nil
	}

	wb := query.NewWhereBuilder().
		AddEqualFold("country", f.Country).
		AddEqualFold("state", f.State).
		AddEqualFold("city", f.City)
	where, args := wb.BuildWithPrefix()

	return collectIDs(ctx, q, "resolve_location", "companies", "SELECT id FROM companies "+where, args)
}

// hasAllCodes returns the companies holding every code in codes with the facet's
// flag set. A code missing from the lookup table can never be held, so it yields
// an empty set rather than an error.
func hasAllCodes(ctx context.Context, q Querier, cf codeFacet, codes []string) (MatchSet, error) {
	if len(codes) == 0 {
		return Unrestricted(), nil
	}

	wb := query.NewWhereBuilder().
		AddClause(fmt.Sprintf("j.%s = TRUE", cf.flagColumn)).
		AddInStrings("t.code", codes)
	where, args := wb.BuildWithPrefix()
	args = append(args, len(codes))

	sqlText := fmt.Sprintf(`SELECT j.company_id
FROM %s j
JOIN %s t ON t.id = j.%s
%s
GROUP BY j.company_id
HAVING COUNT(DISTINCT t.code) = ?`, cf.junctionTable, cf.lookupTable, cf.junctionFK, where)

	return collectIDs(ctx, q, "resolve_"+cf.name, cf.junctionTable, sqlText, args)
}

func collectIDs(ctx context.Context, q Querier, operation, table, sqlText string, args []interface{}) (MatchSet, error) {
	start := time.Now()
	rows, err := q.QueryContext(ctx, sqlText, args...)
	if err != nil {
		metrics.RecordDBQuery(operation, table, time.Since(start), err)
		return MatchSet{}, fmt.Errorf("%s: %w", operation, err)
	}
	defer rows.Close()

	set := NewMatchSet()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return MatchSet{}, fmt.Errorf("%s: scan: %w", operation, err)
		}
		set.ids[id] = struct{}{}
	}
	err = rows.Err()
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
	if err != nil {
		return MatchSet{}, fmt.Errorf("%s: %w", operation, err)
	}
	return set, nil
}

// ResolveMatchingSet returns the companies satisfying every active facet of f,
// reading through q. With no active facet the result is Unrestricted and no
// query runs. Facets are intersected in turn and evaluation stops as soon as the
// set becomes empty.
func (db *DB) ResolveMatchingSet(ctx context.Context, q Querier, f CompanyFilter) (MatchSet, error) {
	if q == nil {
		q = db.conn
	}
	set := Unrestricted()
	if f.IsEmpty() {
		return set, nil
	}

	for _, eval := range facets {
		part, err := eval(ctx, q, f)
		if err != nil {
			return MatchSet{}, err
		}
		set = set.Intersect(part)
		if set.IsEmpty() {
			break
		}
	}

	if !set.IsUnrestricted() {
		metrics.RecordMatchingSet(set.Len())
	}
	return set, nil
}
