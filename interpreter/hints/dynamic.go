// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hints

import (
	"github.com/latticeql/engine/ir"
	"github.com/latticeql/engine/value"
)

// DynamicallyResolvedValue is a handle to a @tag-sourced filter
// argument: VertexInfo.DynamicFieldValue returns one instead of a
// CandidateValue directly because the tag's value isn't known until
// the rows at hand are actually inspected. Source names the @tag's
// originating vertex and field; IsMultiple is true for a `one_of`
// filter (the tag is expected to hold a List).
type DynamicallyResolvedValue struct {
	Source     ir.FieldRef
	IsMultiple bool
}

// RowTag is what a caller supplies, per row, to Resolve: whether
// Source.VertexID is currently bound in that row (false inside a dead
// @optional scope) and, if so, the resolved tag value.
type RowTag struct {
	Bound bool
	Value value.Value
}

// Resolve turns per-row RowTag lookups into CandidateValues. Two
// cases need care:
//
//   - Source.VertexID unbound (a @optional scope that didn't exist for
//     this row): the referencing filter must pass vacuously, so the
//     candidate is All rather than a value-based restriction.
//   - the tag resolves to Null on a nullable field: Single(Null) in
//     single-valued mode, Impossible in IsMultiple mode (a one_of
//     filter can never be satisfied by a null list).
func (d *DynamicallyResolvedValue) Resolve(rows []RowTag) []CandidateValue {
	out := make([]CandidateValue, len(rows))
	for i, row := range rows {
		if !row.Bound {
			out[i] = AllValue()
			continue
		}
		if row.Value.IsNull() {
			if d.IsMultiple {
				out[i] = ImpossibleValue()
			} else {
				out[i] = SingleValue(value.Null())
			}
			continue
		}
		if d.IsMultiple {
			elts, ok := row.Value.AsList()
			if !ok {
				out[i] = ImpossibleValue()
				continue
			}
			out[i] = MultipleValue(elts)
			continue
		}
		out[i] = SingleValue(row.Value)
	}
	return out
}
