// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package trace records every adapter interaction an Engine makes
// while interpreting a query, and replays a recorded trace back
// through the same Adapter[V] interface deterministically. A
// Recorder wraps a real adapter and appends one TraceOp per
// primitive call, per input pulled, and per output item yielded. A
// Replay consumes a *Trace and asserts, at every step, that the
// engine driving it asks exactly what was recorded.
package trace

import (
	"github.com/latticeql/engine/ir"
	"github.com/latticeql/engine/metrics"
	"github.com/latticeql/engine/value"
)

// Opid is a trace-local operation id, assigned in emission order and
// unique within a single Trace.
type Opid uint64

// ContentKind discriminates a TraceOp's payload.
type ContentKind uint8

const (
	// Call records an adapter primitive invocation and its arguments.
	Call ContentKind = iota
	// AdvanceInputIterator records the engine requesting the next item
	// from an input VertexIterator.
	AdvanceInputIterator
	// YieldInto records the vertex token handed back by the input
	// iterator in response to an AdvanceInputIterator.
	YieldInto
	// InputIteratorExhausted records the input iterator returning
	// ok=false.
	InputIteratorExhausted
	// YieldFrom records one unit of output a primitive produced for
	// the input it was just given: a property value, a coercion
	// match, or, for resolve_neighbors, the source vertex whose
	// neighbor batch follows and then one neighbor at a given index.
	YieldFrom
	// OutputIteratorExhausted records the adapter's per-call output
	// iterator (or, for resolve_neighbors, a single neighbor sub-
	// iterator) running out.
	OutputIteratorExhausted
	// ProduceQueryResult records one completed output row reaching
	// the query's caller.
	ProduceQueryResult
)

// TraceOp is one recorded event. ParentOpid is nil for Call and
// ProduceQueryResult ops. Every input and output op of a call is
// parented to that call's Call op, except the ops of a
// resolve_neighbors call's per-vertex neighbor sub-iterator, which
// are parented to the YieldFrom op that announced that source vertex,
// so a replay can tell which input vertex a given neighbor batch
// belongs to.
type TraceOp[V any] struct {
	Opid       Opid
	ParentOpid *Opid
	Kind       ContentKind

	// Call fields.
	Primitive  metrics.Primitive
	EdgeName   string
	TypeName   string
	FieldName  string
	CoerceTo   string
	Parameters ir.EdgeParameters

	// YieldInto / YieldFrom(neighbor) fields.
	Vertex V
	// NeighborIndex is set alongside Vertex for a neighbor yielded by
	// a resolve_neighbors call's per-vertex sub-iterator; it is
	// contiguous from 0 within that sub-iterator.
	NeighborIndex int
	HasVertex     bool

	// YieldFrom(property) / YieldFrom(coercion) fields.
	PropertyValue value.Value
	HasProperty   bool
	CoercionMatch bool
	HasCoercion   bool

	// ProduceQueryResult field.
	Row map[string]value.Value
}

// Trace is the complete, ordered log of one query run, sufficient to
// replay the run's adapter interactions deterministically.
type Trace[V any] struct {
	Ops []TraceOp[V]
}

// Len returns the number of recorded ops.
func (t *Trace[V]) Len() int { return len(t.Ops) }

// CountKind returns how many recorded ops have the given kind, e.g.
// to compare a replay's input consumption against the original run's
// AdvanceInputIterator events.
func (t *Trace[V]) CountKind(kind ContentKind) int {
	n := 0
	for _, op := range t.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Rows returns the output rows the recorded run produced, in
// production order: the payloads of every ProduceQueryResult op.
func (t *Trace[V]) Rows() []map[string]value.Value {
	var rows []map[string]value.Value
	for _, op := range t.Ops {
		if op.Kind == ProduceQueryResult {
			rows = append(rows, op.Row)
		}
	}
	return rows
}
