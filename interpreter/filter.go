// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package interpreter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/latticeql/engine/ir"
	"github.com/latticeql/engine/value"
)

// resolveArgument evaluates a @filter's RHS against the current
// arguments and the context's imported @tags. ok is false when the
// argument is a @tag whose source vertex never bound (a dead
// @optional scope); the filter that asked for it must then pass
// vacuously, matching the dynamically-resolved-value semantics
// DataContext.Tag documents.
func resolveArgument[V any](dc *DataContext[V], arguments map[string]value.Value, arg ir.Argument) (value.Value, bool, error) {
	switch arg.Kind {
	case ir.ArgVariable:
		v, ok := arguments[arg.VariableName]
		if !ok {
			return value.Value{}, false, fmt.Errorf("interpreter: missing argument %q", arg.VariableName)
		}
		return v, true, nil
	case ir.ArgTag:
		v, ok := dc.Tag(arg.Tag)
		return v, ok, nil
	default:
		return value.Value{}, false, fmt.Errorf("interpreter: unknown argument kind %d", arg.Kind)
	}
}

// evaluateOperation applies op against lhs, the value resolved for
// op.FieldName on the active vertex. A @filter whose @tag argument
// comes from a dead scope passes vacuously (CandidateValue::All).
func evaluateOperation[V any](dc *DataContext[V], arguments map[string]value.Value, op ir.Operation, lhs value.Value) (bool, error) {
	switch op.Kind {
	case ir.OpIsNull:
		return lhs.IsNull(), nil
	case ir.OpIsNotNull:
		return !lhs.IsNull(), nil
	}

	if op.RHS == nil {
		return false, fmt.Errorf("interpreter: operation %v requires an argument", op.Kind)
	}
	rhs, ok, err := resolveArgument(dc, arguments, *op.RHS)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}

	switch op.Kind {
	case ir.OpEquals:
		return lhs.Equal(rhs), nil
	case ir.OpNotEquals:
		return !lhs.Equal(rhs), nil
	}

	// Every remaining operator fails outright on a null operand:
	// null is never less than, a prefix of, or a member of anything,
	// and the negated forms fail the same way rather than vacuously
	// inverting.
	if lhs.IsNull() || rhs.IsNull() {
		return false, nil
	}

	switch op.Kind {
	case ir.OpLessThan, ir.OpLessThanOrEqual, ir.OpGreaterThan, ir.OpGreaterThanOrEqual:
		return compareOrdered(op.Kind, lhs, rhs)
	case ir.OpContains, ir.OpNotContains:
		return listContains(op.Kind, lhs, rhs)
	case ir.OpOneOf, ir.OpNotOneOf:
		return oneOf(op.Kind, lhs, rhs)
	case ir.OpHasPrefix:
		return stringOp(lhs, rhs, strings.HasPrefix)
	case ir.OpHasSuffix:
		return stringOp(lhs, rhs, strings.HasSuffix)
	case ir.OpHasSubstring:
		return stringOp(lhs, rhs, strings.Contains)
	case ir.OpRegex, ir.OpNotRegex:
		return regexOp(op.Kind, lhs, rhs)
	default:
		return false, fmt.Errorf("interpreter: unsupported operation kind %d", op.Kind)
	}
}

func compareOrdered(kind ir.OpKind, lhs, rhs value.Value) (bool, error) {
	lf, lok := numericValue(lhs)
	rf, rok := numericValue(rhs)
	if !lok || !rok {
		return false, fmt.Errorf("interpreter: comparison requires numeric operands, got %v and %v", lhs.Kind(), rhs.Kind())
	}
	switch kind {
	case ir.OpLessThan:
		return lf < rf, nil
	case ir.OpLessThanOrEqual:
		return lf <= rf, nil
	case ir.OpGreaterThan:
		return lf > rf, nil
	case ir.OpGreaterThanOrEqual:
		return lf >= rf, nil
	default:
		return false, fmt.Errorf("interpreter: %d is not an ordering operation", kind)
	}
}

func numericValue(v value.Value) (float64, bool) {
	switch v.Kind() {
	case value.KindInt64:
		i, _ := v.AsInt64()
		return float64(i), true
	case value.KindUint64:
		u, _ := v.AsUint64()
		return float64(u), true
	case value.KindFloat64:
		f, _ := v.AsFloat64()
		return f, true
	default:
		return 0, false
	}
}

func listContains(kind ir.OpKind, lhs, rhs value.Value) (bool, error) {
	elts, ok := lhs.AsList()
	if !ok {
		return false, fmt.Errorf("interpreter: %%contains requires a List field, got %v", lhs.Kind())
	}
	found := false
	for _, elt := range elts {
		if elt.Equal(rhs) {
			found = true
			break
		}
	}
	if kind == ir.OpNotContains {
		return !found, nil
	}
	return found, nil
}

func oneOf(kind ir.OpKind, lhs, rhs value.Value) (bool, error) {
	elts, ok := rhs.AsList()
	if !ok {
		return false, fmt.Errorf("interpreter: one_of requires a List argument, got %v", rhs.Kind())
	}
	found := false
	for _, elt := range elts {
		if elt.Equal(lhs) {
			found = true
			break
		}
	}
	if kind == ir.OpNotOneOf {
		return !found, nil
	}
	return found, nil
}

func stringOp(lhs, rhs value.Value, fn func(s, substr string) bool) (bool, error) {
	l, ok := lhs.AsString()
	if !ok {
		return false, fmt.Errorf("interpreter: string operation requires a String field, got %v", lhs.Kind())
	}
	r, ok := rhs.AsString()
	if !ok {
		return false, fmt.Errorf("interpreter: string operation requires a String argument, got %v", rhs.Kind())
	}
	return fn(l, r), nil
}

func regexOp(kind ir.OpKind, lhs, rhs value.Value) (bool, error) {
	l, ok := lhs.AsString()
	if !ok {
		return false, fmt.Errorf("interpreter: regex operation requires a String field, got %v", lhs.Kind())
	}
	pattern, ok := rhs.AsString()
	if !ok {
		return false, fmt.Errorf("interpreter: regex operation requires a String argument, got %v", rhs.Kind())
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Errorf("interpreter: invalid regex %q: %w", pattern, err)
	}
	matched := re.MatchString(l)
	if kind == ir.OpNotRegex {
		return !matched, nil
	}
	return matched, nil
}
