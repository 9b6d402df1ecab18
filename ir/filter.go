// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ir

// OpKind names a @filter comparison operator.
type OpKind uint8

const (
	OpEquals OpKind = iota
	OpNotEquals
	OpLessThan
	OpLessThanOrEqual
	OpGreaterThan
	OpGreaterThanOrEqual
	OpContains
	OpNotContains
	OpHasPrefix
	OpHasSuffix
	OpHasSubstring
	OpIsNull
	OpIsNotNull
	OpOneOf
	OpNotOneOf
	OpRegex
	OpNotRegex
)

// ArgumentKind discriminates an Argument's source.
type ArgumentKind uint8

const (
	// ArgVariable means the filter's RHS is a query variable, looked
	// up by name in the query's arguments map.
	ArgVariable ArgumentKind = iota
	// ArgTag means the filter's RHS is a @tag bound earlier in the
	// query, looked up by its source FieldRef.
	ArgTag
)

// FieldRef names a property on a specific vertex: the source of a
// @tag, or the destination a @tag resolves against.
type FieldRef struct {
	VertexID  Vid
	FieldName string
}

// Argument is the RHS of a @filter: either a query variable or a
// @tag reference. IsNull/IsNotNull have no Argument at all.
type Argument struct {
	Kind         ArgumentKind
	VariableName string
	Tag          FieldRef
}

// Variable constructs a variable Argument.
func Variable(name string) Argument {
	return Argument{Kind: ArgVariable, VariableName: name}
}

// TagArgument constructs a @tag Argument.
func TagArgument(ref FieldRef) Argument {
	return Argument{Kind: ArgTag, Tag: ref}
}

// Operation is a single @filter predicate evaluated against a local
// field of the vertex it's attached to. RHS is nil for IsNull/IsNotNull.
type Operation struct {
	Kind      OpKind
	FieldName string
	RHS       *Argument
}

// IsNull builds an `is_null` filter.
func IsNull(field string) Operation { return Operation{Kind: OpIsNull, FieldName: field} }

// IsNotNull builds an `is_not_null` filter.
func IsNotNull(field string) Operation { return Operation{Kind: OpIsNotNull, FieldName: field} }

// Equals builds an `=` filter.
func Equals(field string, rhs Argument) Operation {
	return Operation{Kind: OpEquals, FieldName: field, RHS: &rhs}
}

// OneOf builds a `one_of` filter.
func OneOf(field string, rhs Argument) Operation {
	return Operation{Kind: OpOneOf, FieldName: field, RHS: &rhs}
}

// Cmp builds any of the comparison/string/regex filters that take a
// single RHS argument.
func Cmp(kind OpKind, field string, rhs Argument) Operation {
	return Operation{Kind: kind, FieldName: field, RHS: &rhs}
}
