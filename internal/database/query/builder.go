// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

// Package query provides SQL building helpers for the database package.
// Column names passed to the helpers must come from code, never from request input;
// only values are bound as parameters.
package query

import (
	"fmt"
	"strings"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	wb.AddEqualFold("country", "india")
//	wb.AddInInt64("id", []int64{1, 2})
//	whereClause, args := wb.Build()
//	// lower(country) = lower(?) AND id IN (?, ?)
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddClause adds a raw condition with its arguments.
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddEqualFold adds a case-insensitive equality test. Empty values are skipped.
//
// Generates "lower(column) = lower(?)".
func (wb *WhereBuilder) AddEqualFold(column, value string) *WhereBuilder {
	if value == "" {
		return wb
	}
	return wb.AddClause(fmt.Sprintf("lower(%s) = lower(?)", column), value)
}

// AddNotBlank requires column to be non-null and non-empty.
func (wb *WhereBuilder) AddNotBlank(column string) *WhereBuilder {
	return wb.AddClause(fmt.Sprintf("%s IS NOT NULL AND %s <> ''", column, column))
}

// AddInStrings adds "column IN (?, ...)". An empty slice is skipped.
func (wb *WhereBuilder) AddInStrings(column string, values []string) *WhereBuilder {
	if len(values) == 0 {
		return wb
	}
	for _, v := range values {
		wb.args = append(wb.args, v)
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s IN (%s)", column, Placeholders(len(values))))
	return wb
}

// AddInInt64 adds "column IN (?, ...)" for identifiers. An empty slice matches
// nothing and generates "FALSE", unlike AddInStrings.
func (wb *WhereBuilder) AddInInt64(column string, ids []int64) *WhereBuilder {
	if len(ids) == 0 {
		wb.clauses = append(wb.clauses, "FALSE")
		return wb
	}
	for _, id := range ids {
		wb.args = append(wb.args, id)
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s IN (%s)", column, Placeholders(len(ids))))
	return wb
}

// Build joins the clauses with AND. Returns ("1=1", []) if nothing was added.
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix returns the WHERE clause with "WHERE " prefix.
func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}

// Count returns the number of clauses added to the builder.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// IsEmpty returns true if no clauses have been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}

// Placeholders returns n comma-separated "?" markers.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
