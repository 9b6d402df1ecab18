// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hints

import (
	"github.com/latticeql/engine/ir"
	"github.com/latticeql/engine/ir/indexed"
	"github.com/latticeql/engine/value"
)

// QueryInfo is the root hint view handed to every adapter call: it
// names where in the query this call originates (AtVid) and, for
// resolve_neighbors, which edge it's crossing (CrossingEid).
type QueryInfo struct {
	query         *indexed.Query
	arguments     map[string]value.Value
	currentVertex ir.Vid
	crossingEid   *ir.Eid
}

// NewQueryInfo builds the hint view for one adapter call. crossingEid
// is nil for resolve_starting_vertices/resolve_property/resolve_coercion
// and set to the traversed edge's Eid for resolve_neighbors.
func NewQueryInfo(query *indexed.Query, arguments map[string]value.Value, currentVertex ir.Vid, crossingEid *ir.Eid) *QueryInfo {
	return &QueryInfo{query: query, arguments: arguments, currentVertex: currentVertex, crossingEid: crossingEid}
}

// AtVid returns the vertex this call originates from.
func (q *QueryInfo) AtVid() ir.Vid { return q.currentVertex }

// CrossingEid returns the edge being traversed, for resolve_neighbors
// calls; nil otherwise.
func (q *QueryInfo) CrossingEid() *ir.Eid { return q.crossingEid }

// Here returns the VertexInfo view of the call's own originating
// vertex.
func (q *QueryInfo) Here() *LocalQueryInfo {
	return &LocalQueryInfo{query: q, currentVertex: q.currentVertex}
}

// Destination returns the VertexInfo view of the vertex CrossingEid
// leads to, or nil if this call isn't crossing an edge.
func (q *QueryInfo) Destination() *LocalQueryInfo {
	if q.crossingEid == nil {
		return nil
	}
	toVid, ok := toVidOf(q.query, *q.crossingEid)
	if !ok {
		return nil
	}
	return &LocalQueryInfo{query: q, currentVertex: toVid}
}

func toVidOf(query *indexed.Query, eid ir.Eid) (ir.Vid, bool) {
	switch query.Eids[eid] {
	case indexed.EdgeKindRegular:
		e, ok := query.Edge(eid)
		if !ok {
			return 0, false
		}
		return e.ToVid, true
	case indexed.EdgeKindFold:
		f, ok := query.Fold(eid)
		if !ok {
			return 0, false
		}
		return f.ToVid, true
	default:
		return 0, false
	}
}

// VertexInfo is the read-only view of a single vertex's static shape
// that adapters use to narrow their result sets. It is implemented by
// LocalQueryInfo (the call's own originating vertex) and by
// NeighboringQueryInfo (a vertex reached by following one or more
// edges from EdgeInfo.Destination, used to inspect downstream
// filters before a traversal is even made).
type VertexInfo interface {
	// CurrentVertex returns the IR vertex this view describes.
	CurrentVertex() (*ir.Vertex, bool)

	// CoercedToType reports the type this vertex was narrowed to, if
	// any `... on SomeType` coercion applies here.
	CoercedToType() (string, bool)

	// StaticFieldValue returns the conservative set of values
	// fieldName can hold, derived purely from this vertex's filters
	// whose RHS is a query variable (or an is_null/is_not_null check).
	// ok is false when no is_null filter and no `=`/`one_of` filter
	// with a variable RHS touches fieldName (range filters and a lone
	// is_not_null do not count here).
	StaticFieldValue(fieldName string) (CandidateValue, bool)

	// StaticFieldRange returns the intersected range of a field's
	// ordering-operator filters (>, >=, <, <=), if any exist.
	StaticFieldRange(fieldName string) (*RangeBoundKind, bool)

	// DynamicFieldValue returns a handle that, once resolved by an
	// adapter against the rows at hand, yields fieldName's possible
	// values — used when the filter's RHS is a @tag rather than a
	// query variable. ok is false if no `=`/`one_of` @tag-sourced
	// filter touches fieldName. Where the tag's source vertex lives is
	// not checked: a tag bound inside a fold's sub-component yields a
	// handle like any other.
	DynamicFieldValue(fieldName string) (*DynamicallyResolvedValue, bool)

	// FirstRequiredEdge returns the first non-optional, non-recursive
	// edge named edgeName leaving this vertex, by IR-insertion order.
	FirstRequiredEdge(edgeName string) (*EdgeInfo, bool)

	// FirstEdge returns the first edge (regular or folded, optional or
	// not) named edgeName leaving this vertex, by IR-insertion order.
	FirstEdge(edgeName string) (*EdgeInfo, bool)
}

// LocalQueryInfo is the VertexInfo for the vertex an adapter call
// directly originates from or crosses to.
type LocalQueryInfo struct {
	query         *QueryInfo
	currentVertex ir.Vid
}

func (l *LocalQueryInfo) CurrentVertex() (*ir.Vertex, bool) { return l.query.query.Vertex(l.currentVertex) }

func (l *LocalQueryInfo) CoercedToType() (string, bool) {
	return coercedToType(l.query.query, l.currentVertex)
}

func (l *LocalQueryInfo) StaticFieldValue(fieldName string) (CandidateValue, bool) {
	v, ok := l.CurrentVertex()
	if !ok {
		return CandidateValue{}, false
	}
	return staticFieldValue(v, fieldName, l.query.arguments)
}

func (l *LocalQueryInfo) StaticFieldRange(fieldName string) (*RangeBoundKind, bool) {
	v, ok := l.CurrentVertex()
	if !ok {
		return nil, false
	}
	return staticFieldRange(v, fieldName, l.query.arguments)
}

func (l *LocalQueryInfo) DynamicFieldValue(fieldName string) (*DynamicallyResolvedValue, bool) {
	v, ok := l.CurrentVertex()
	if !ok {
		return nil, false
	}
	return dynamicFieldValue(v, fieldName, nil)
}

func (l *LocalQueryInfo) FirstRequiredEdge(edgeName string) (*EdgeInfo, bool) {
	return firstRequiredEdge(l.query, l.currentVertex, edgeName, []ir.Eid{})
}

func (l *LocalQueryInfo) FirstEdge(edgeName string) (*EdgeInfo, bool) {
	return firstEdge(l.query, l.currentVertex, edgeName, []ir.Eid{})
}

// NeighboringQueryInfo is the VertexInfo for a vertex reached by
// following one or more edges from some starting vertex, used to
// inspect a downstream vertex's filters (e.g. via
// EdgeInfo.Destination().FirstEdge(...).Destination()) before the
// traversal that would reach it is actually made.
type NeighboringQueryInfo struct {
	query          *QueryInfo
	startingVertex ir.Vid
	neighborVertex ir.Vid
	neighborPath   []ir.Eid
}

func (n *NeighboringQueryInfo) CurrentVertex() (*ir.Vertex, bool) {
	return n.query.query.Vertex(n.neighborVertex)
}

func (n *NeighboringQueryInfo) CoercedToType() (string, bool) {
	return coercedToType(n.query.query, n.neighborVertex)
}

func (n *NeighboringQueryInfo) StaticFieldValue(fieldName string) (CandidateValue, bool) {
	v, ok := n.CurrentVertex()
	if !ok {
		return CandidateValue{}, false
	}
	return staticFieldValue(v, fieldName, n.query.arguments)
}

func (n *NeighboringQueryInfo) StaticFieldRange(fieldName string) (*RangeBoundKind, bool) {
	v, ok := n.CurrentVertex()
	if !ok {
		return nil, false
	}
	return staticFieldRange(v, fieldName, n.query.arguments)
}

// DynamicFieldValue is eligible only for @tag filters whose source
// vertex is at or before StartingVertex in query order: a tag bound
// further down the query than where this neighboring scope begins
// isn't resolvable yet.
func (n *NeighboringQueryInfo) DynamicFieldValue(fieldName string) (*DynamicallyResolvedValue, bool) {
	v, ok := n.CurrentVertex()
	if !ok {
		return nil, false
	}
	return dynamicFieldValue(v, fieldName, &n.startingVertex)
}

func (n *NeighboringQueryInfo) FirstRequiredEdge(edgeName string) (*EdgeInfo, bool) {
	return firstRequiredEdge(n.query, n.neighborVertex, edgeName, n.neighborPath)
}

func (n *NeighboringQueryInfo) FirstEdge(edgeName string) (*EdgeInfo, bool) {
	return firstEdge(n.query, n.neighborVertex, edgeName, n.neighborPath)
}

func coercedToType(query *indexed.Query, vid ir.Vid) (string, bool) {
	v, ok := query.Vertex(vid)
	if !ok || v.CoercedFromType == "" {
		return "", false
	}
	return v.TypeName, true
}

// staticFieldValue implements VertexInfo.StaticFieldValue: it scans
// v's filters for is_null/is_not_null and for `=`/`one_of` filters
// whose RHS is a query variable, merging every match found.
func staticFieldValue(v *ir.Vertex, fieldName string, arguments map[string]value.Value) (CandidateValue, bool) {
	isNull, isNotNull := false, false
	for _, op := range v.Filters {
		if op.FieldName != fieldName {
			continue
		}
		switch op.Kind {
		case ir.OpIsNull:
			isNull = true
		case ir.OpIsNotNull:
			isNotNull = true
		}
	}
	if isNull && isNotNull {
		return ImpossibleValue(), true
	}

	var candidate *CandidateValue
	if isNull {
		c := SingleValue(value.Null())
		candidate = &c
	}

	for _, op := range v.Filters {
		if op.FieldName != fieldName || op.RHS == nil || op.RHS.Kind != ir.ArgVariable {
			continue
		}
		var next CandidateValue
		switch op.Kind {
		case ir.OpEquals:
			next = SingleValue(arguments[op.RHS.VariableName])
		case ir.OpOneOf:
			elts, _ := arguments[op.RHS.VariableName].AsList()
			next = MultipleValue(elts)
		default:
			continue
		}
		if candidate == nil {
			candidate = &next
		} else {
			merged := Merge(*candidate, next)
			candidate = &merged
		}
	}

	if candidate == nil {
		return CandidateValue{}, false
	}
	return *candidate, true
}

// staticFieldRange scans v's filters for ordering operators on
// fieldName whose RHS is a query variable, intersecting every match
// found into a single RangeBoundKind.
func staticFieldRange(v *ir.Vertex, fieldName string, arguments map[string]value.Value) (*RangeBoundKind, bool) {
	var result *RangeBoundKind
	for _, op := range v.Filters {
		if op.FieldName != fieldName || op.RHS == nil || op.RHS.Kind != ir.ArgVariable {
			continue
		}
		val, ok := arguments[op.RHS.VariableName]
		if !ok {
			continue
		}
		var r RangeBoundKind
		switch op.Kind {
		case ir.OpGreaterThan:
			r = RangeBoundKind{Start: &Bound{Value: val, Inclusive: false}}
		case ir.OpGreaterThanOrEqual:
			r = RangeBoundKind{Start: &Bound{Value: val, Inclusive: true}}
		case ir.OpLessThan:
			r = RangeBoundKind{End: &Bound{Value: val, Inclusive: false}}
		case ir.OpLessThanOrEqual:
			r = RangeBoundKind{End: &Bound{Value: val, Inclusive: true}}
		default:
			continue
		}
		if result == nil {
			result = &r
		} else {
			merged := intersectRanges(*result, r)
			result = &merged
		}
	}
	return result, result != nil
}

// dynamicFieldValue scans v's filters for a `=`/`one_of` filter whose
// RHS is a @tag. It does not look at which component the tag's
// source vertex belongs to, so a tag sourced inside a fold's
// sub-component is returned like any other.
// eligibleAtOrBefore, when non-nil, restricts matches to tags whose
// source vertex id is <= *eligibleAtOrBefore.
func dynamicFieldValue(v *ir.Vertex, fieldName string, eligibleAtOrBefore *ir.Vid) (*DynamicallyResolvedValue, bool) {
	for _, op := range v.Filters {
		if op.FieldName != fieldName || op.RHS == nil || op.RHS.Kind != ir.ArgTag {
			continue
		}
		ref := op.RHS.Tag
		if eligibleAtOrBefore != nil && ref.VertexID > *eligibleAtOrBefore {
			continue
		}
		switch op.Kind {
		case ir.OpEquals:
			return &DynamicallyResolvedValue{Source: ref, IsMultiple: false}, true
		case ir.OpOneOf:
			return &DynamicallyResolvedValue{Source: ref, IsMultiple: true}, true
		}
	}
	return nil, false
}

func firstRequiredEdge(query *QueryInfo, vid ir.Vid, edgeName string, path []ir.Eid) (*EdgeInfo, bool) {
	for _, e := range query.query.EdgesFrom(vid) {
		if e.EdgeName == edgeName && !e.Optional && e.Recursive == nil {
			return edgeInfoFromEdge(query, e, path), true
		}
	}
	return nil, false
}

func firstEdge(query *QueryInfo, vid ir.Vid, edgeName string, path []ir.Eid) (*EdgeInfo, bool) {
	for _, e := range query.query.EdgesFrom(vid) {
		if e.EdgeName == edgeName {
			return edgeInfoFromEdge(query, e, path), true
		}
	}
	for _, f := range query.query.FoldsFrom(vid) {
		if f.EdgeName == edgeName {
			return edgeInfoFromFold(query, f, path), true
		}
	}
	return nil, false
}

func edgeInfoFromEdge(query *QueryInfo, e *ir.Edge, path []ir.Eid) *EdgeInfo {
	newPath := append(append([]ir.Eid{}, path...), e.Eid)
	return &EdgeInfo{
		eid:       e.Eid,
		optional:  e.Optional,
		recursive: e.Recursive,
		folded:    false,
		destination: &NeighboringQueryInfo{
			query:          query,
			startingVertex: e.FromVid,
			neighborVertex: e.ToVid,
			neighborPath:   newPath,
		},
	}
}

func edgeInfoFromFold(query *QueryInfo, f *ir.Fold, path []ir.Eid) *EdgeInfo {
	newPath := append(append([]ir.Eid{}, path...), f.Eid)
	return &EdgeInfo{
		eid:       f.Eid,
		optional:  true,
		recursive: f.Recursive,
		folded:    true,
		destination: &NeighboringQueryInfo{
			query:          query,
			startingVertex: f.FromVid,
			neighborVertex: f.ToVid,
			neighborPath:   newPath,
		},
	}
}

// EdgeInfo reflects the shape of a single outgoing edge, reached via
// VertexInfo.FirstRequiredEdge/FirstEdge.
type EdgeInfo struct {
	eid         ir.Eid
	optional    bool
	recursive   *ir.Recursive
	folded      bool
	destination *NeighboringQueryInfo
}

// Eid returns the edge's id.
func (e *EdgeInfo) Eid() ir.Eid { return e.eid }

// Optional reports whether the edge is @optional. A @fold edge
// always reports true.
func (e *EdgeInfo) Optional() bool { return e.optional }

// Recursive returns the edge's @recurse bound, if any.
func (e *EdgeInfo) Recursive() *ir.Recursive { return e.recursive }

// Folded reports whether the edge is a @fold.
func (e *EdgeInfo) Folded() bool { return e.folded }

// Destination returns the VertexInfo view of the vertex this edge
// leads to, for recursive inspection of downstream filters.
func (e *EdgeInfo) Destination() *NeighboringQueryInfo { return e.destination }
