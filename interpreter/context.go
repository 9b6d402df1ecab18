// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package interpreter drives an adapter.Adapter through an
// indexed.Query, producing output rows. It owns the per-row
// DataContext bookkeeping and the four @optional / @fold / @recurse /
// @filter evaluation stages built on top of the adapter primitives.
package interpreter

import (
	"github.com/latticeql/engine/ir"
	"github.com/latticeql/engine/value"
)

// DataContext is the unit of state threaded through a query's
// evaluation: one per candidate result row, forked at every edge
// traversal and merged back at component boundaries. It is never
// shared between goroutines; the engine is single-threaded by design.
type DataContext[V any] struct {
	// ActiveVertex is the vertex currently being resolved against. A
	// nil pointer means the active scope is dead (e.g. a @optional
	// edge that resolved no neighbors); the context survives but no
	// further property, filter, or edge resolution does anything
	// except propagate nulls.
	ActiveVertex *V

	// Vertices holds every vertex bound so far, keyed by the Vid that
	// bound it, so outputs and tags from ancestor vertices remain
	// reachable after the active vertex moves on.
	Vertices map[ir.Vid]V

	// OutputValues holds every named output resolved so far, keyed by
	// its declared output name. It's the running row: once a branch
	// has no further edges to traverse, OutputValues is exactly the
	// row that branch contributes.
	OutputValues map[string]value.Value

	// SuspendedVertices is a stack of vertices set aside on each edge
	// traversal (Descend) and on entering a dead @optional scope
	// (Suspend), restored when that scope's processing completes and
	// the context returns to its parent vertex to continue sibling
	// edge traversal. A @fold's sub-component runs in a fresh context
	// of its own and does not push here.
	SuspendedVertices []*V

	// FoldedValues holds, per fold Eid, the aggregated List value for
	// each of that fold's declared outputs.
	FoldedValues map[ir.Eid]map[string]value.Value

	// ImportedTags holds @tag values captured from earlier vertices in
	// query order, addressable by FieldRef for @filter operations
	// whose RHS is a @tag.
	ImportedTags map[ir.FieldRef]value.Value
}

// NewDataContext starts a fresh context with vertex bound at vid.
func NewDataContext[V any](vid ir.Vid, vertex V) *DataContext[V] {
	dc := &DataContext[V]{
		ActiveVertex: &vertex,
		Vertices:     map[ir.Vid]V{vid: vertex},
		FoldedValues: make(map[ir.Eid]map[string]value.Value),
		ImportedTags: make(map[ir.FieldRef]value.Value),
		OutputValues: make(map[string]value.Value),
	}
	return dc
}

// IsActive reports whether this context currently has a live vertex
// to resolve against.
func (dc *DataContext[V]) IsActive() bool { return dc.ActiveVertex != nil }

// Clone returns a deep-enough copy of dc suitable for forking at an
// edge traversal: map/slice fields are copied so mutating the clone
// never affects dc.
func (dc *DataContext[V]) Clone() *DataContext[V] {
	clone := &DataContext[V]{
		ActiveVertex:      dc.ActiveVertex,
		Vertices:          make(map[ir.Vid]V, len(dc.Vertices)),
		SuspendedVertices: append([]*V(nil), dc.SuspendedVertices...),
		FoldedValues:      make(map[ir.Eid]map[string]value.Value, len(dc.FoldedValues)),
		ImportedTags:      make(map[ir.FieldRef]value.Value, len(dc.ImportedTags)),
		OutputValues:      make(map[string]value.Value, len(dc.OutputValues)),
	}
	for k, v := range dc.Vertices {
		clone.Vertices[k] = v
	}
	for k, v := range dc.OutputValues {
		clone.OutputValues[k] = v
	}
	for k, v := range dc.FoldedValues {
		inner := make(map[string]value.Value, len(v))
		for ik, iv := range v {
			inner[ik] = iv
		}
		clone.FoldedValues[k] = inner
	}
	for k, v := range dc.ImportedTags {
		clone.ImportedTags[k] = v
	}
	return clone
}

// Bind records vertex as the binding for vid and makes it the active
// vertex.
func (dc *DataContext[V]) Bind(vid ir.Vid, vertex V) {
	dc.Vertices[vid] = vertex
	dc.ActiveVertex = &vertex
}

// Descend pushes the current active vertex onto SuspendedVertices and
// binds vertex at vid as the new active one: one edge traversal down.
// The matching Unsuspend happens once the subtree rooted at vid has
// been fully evaluated.
func (dc *DataContext[V]) Descend(vid ir.Vid, vertex V) {
	dc.SuspendedVertices = append(dc.SuspendedVertices, dc.ActiveVertex)
	dc.Bind(vid, vertex)
}

// Suspend sets the active vertex aside (pushing it onto
// SuspendedVertices) and clears ActiveVertex, entering a dead scope.
// Used for a @optional edge with no matching neighbor.
func (dc *DataContext[V]) Suspend() {
	dc.SuspendedVertices = append(dc.SuspendedVertices, dc.ActiveVertex)
	dc.ActiveVertex = nil
}

// Unsuspend restores the most recently suspended vertex as the active
// one, reversing the most recent Suspend call.
func (dc *DataContext[V]) Unsuspend() {
	n := len(dc.SuspendedVertices)
	if n == 0 {
		dc.ActiveVertex = nil
		return
	}
	dc.ActiveVertex = dc.SuspendedVertices[n-1]
	dc.SuspendedVertices = dc.SuspendedVertices[:n-1]
}

// ImportTag records a @tag's resolved value, addressable by the
// FieldRef that declared it.
func (dc *DataContext[V]) ImportTag(ref ir.FieldRef, v value.Value) {
	dc.ImportedTags[ref] = v
}

// Tag looks up a previously imported @tag value. ok is false if the
// tag's source vertex never bound (e.g. it lives inside a dead
// @optional scope); callers must treat that as CandidateValue::All,
// not as an error.
func (dc *DataContext[V]) Tag(ref ir.FieldRef) (value.Value, bool) {
	v, ok := dc.ImportedTags[ref]
	return v, ok
}

// SetFoldOutput records the aggregated value for a fold's named
// output.
func (dc *DataContext[V]) SetFoldOutput(eid ir.Eid, name string, v value.Value) {
	m, ok := dc.FoldedValues[eid]
	if !ok {
		m = make(map[string]value.Value)
		dc.FoldedValues[eid] = m
	}
	m[name] = v
}
