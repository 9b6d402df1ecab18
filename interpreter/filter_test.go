// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package interpreter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticeql/engine/ir"
	"github.com/latticeql/engine/value"
)

func evalOp(t *testing.T, op ir.Operation, lhs value.Value, args map[string]value.Value) bool {
	t.Helper()
	dc := NewDataContext(0, 0)
	got, err := evaluateOperation(dc, args, op, lhs)
	require.NoError(t, err)
	return got
}

func TestFilterOperators(t *testing.T) {
	args := map[string]value.Value{
		"n":    value.Int64(5),
		"s":    value.String("bar"),
		"list": value.List([]value.Value{value.Int64(1), value.Int64(2)}),
		"re":   value.String("^ba"),
	}

	tests := []struct {
		name string
		op   ir.Operation
		lhs  value.Value
		want bool
	}{
		{"equals", ir.Equals("f", ir.Variable("n")), value.Int64(5), true},
		{"equals cross-variant", ir.Equals("f", ir.Variable("n")), value.Uint64(5), false},
		{"not equals", ir.Cmp(ir.OpNotEquals, "f", ir.Variable("n")), value.Int64(4), true},
		{"less than", ir.Cmp(ir.OpLessThan, "f", ir.Variable("n")), value.Int64(4), true},
		{"less than equal boundary", ir.Cmp(ir.OpLessThanOrEqual, "f", ir.Variable("n")), value.Int64(5), true},
		{"greater than", ir.Cmp(ir.OpGreaterThan, "f", ir.Variable("n")), value.Int64(5), false},
		{"greater than equal", ir.Cmp(ir.OpGreaterThanOrEqual, "f", ir.Variable("n")), value.Int64(5), true},
		{"mixed numeric compare", ir.Cmp(ir.OpLessThan, "f", ir.Variable("n")), value.Float64(4.5), true},
		{"has prefix", ir.Cmp(ir.OpHasPrefix, "f", ir.Variable("s")), value.String("barista"), true},
		{"has suffix", ir.Cmp(ir.OpHasSuffix, "f", ir.Variable("s")), value.String("rebar"), true},
		{"has substring", ir.Cmp(ir.OpHasSubstring, "f", ir.Variable("s")), value.String("a bar b"), true},
		{"regex", ir.Cmp(ir.OpRegex, "f", ir.Variable("re")), value.String("bar"), true},
		{"not regex", ir.Cmp(ir.OpNotRegex, "f", ir.Variable("re")), value.String("foo"), true},
		{"one of", ir.OneOf("f", ir.Variable("list")), value.Int64(2), true},
		{"not one of", ir.Cmp(ir.OpNotOneOf, "f", ir.Variable("list")), value.Int64(3), true},
		{"contains", ir.Cmp(ir.OpContains, "f", ir.Variable("n")), value.List([]value.Value{value.Int64(5)}), true},
		{"not contains", ir.Cmp(ir.OpNotContains, "f", ir.Variable("n")), value.List([]value.Value{value.Int64(4)}), true},
		{"is null", ir.IsNull("f"), value.Null(), true},
		{"is not null", ir.IsNotNull("f"), value.Int64(1), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, evalOp(t, tc.op, tc.lhs, args))
		})
	}
}

// A null operand fails every operator except is_null / is_not_null /
// equality, negated forms included.
func TestFilterNullOperands(t *testing.T) {
	args := map[string]value.Value{
		"n":    value.Int64(5),
		"null": value.Null(),
	}

	tests := []struct {
		name string
		op   ir.Operation
		lhs  value.Value
		want bool
	}{
		{"null < n fails", ir.Cmp(ir.OpLessThan, "f", ir.Variable("n")), value.Null(), false},
		{"n < null fails", ir.Cmp(ir.OpLessThan, "f", ir.Variable("null")), value.Int64(1), false},
		{"null >= n fails", ir.Cmp(ir.OpGreaterThanOrEqual, "f", ir.Variable("n")), value.Null(), false},
		{"null has_prefix fails", ir.Cmp(ir.OpHasPrefix, "f", ir.Variable("n")), value.Null(), false},
		{"null not_one_of fails", ir.Cmp(ir.OpNotOneOf, "f", ir.Variable("n")), value.Null(), false},
		{"null equals null", ir.Equals("f", ir.Variable("null")), value.Null(), true},
		{"null != n", ir.Cmp(ir.OpNotEquals, "f", ir.Variable("n")), value.Null(), true},
		{"is_null on null", ir.IsNull("f"), value.Null(), true},
		{"is_not_null on null", ir.IsNotNull("f"), value.Null(), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, evalOp(t, tc.op, tc.lhs, args))
		})
	}
}

func TestFilterTagFromDeadScopePassesVacuously(t *testing.T) {
	dc := NewDataContext(0, 7)
	op := ir.Cmp(ir.OpLessThan, "f", ir.TagArgument(ir.FieldRef{VertexID: 3, FieldName: "value"}))

	// Tag never imported: the filter must pass regardless of operands.
	got, err := evaluateOperation(dc, nil, op, value.Int64(100))
	require.NoError(t, err)
	require.True(t, got)

	// Once the tag is bound, the filter applies for real.
	dc.ImportTag(ir.FieldRef{VertexID: 3, FieldName: "value"}, value.Int64(50))
	got, err = evaluateOperation(dc, nil, op, value.Int64(100))
	require.NoError(t, err)
	require.False(t, got)
}

func TestFilterMissingVariableIsError(t *testing.T) {
	dc := NewDataContext(0, 7)
	op := ir.Equals("f", ir.Variable("absent"))
	_, err := evaluateOperation(dc, nil, op, value.Int64(1))
	require.Error(t, err)
}
