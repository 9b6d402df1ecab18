// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"sync/atomic"

	"github.com/latticeql/engine/interpreter/adapter"
	"github.com/latticeql/engine/interpreter/hints"
	"github.com/latticeql/engine/ir"
	"github.com/latticeql/engine/metrics"
	"github.com/latticeql/engine/value"
)

// Recorder wraps an Adapter[V], appending a TraceOp to its Trace for
// every primitive call, every input pulled, and every output
// yielded. It is not safe for concurrent use; neither is the engine
// that drives it.
type Recorder[V any] struct {
	Adapter adapter.Adapter[V]
	Metrics *metrics.Interpreter

	trace Trace[V]
	next  uint64
}

// NewRecorder wraps ad for tracing.
func NewRecorder[V any](ad adapter.Adapter[V], metricsInterpreter *metrics.Interpreter) *Recorder[V] {
	return &Recorder[V]{Adapter: ad, Metrics: metricsInterpreter}
}

// Trace returns the ops recorded so far. The returned Trace shares no
// mutable state with the recorder's internal buffer once the query
// this recorder drove has finished; callers should not read it
// concurrently with further adapter calls.
func (r *Recorder[V]) Trace() *Trace[V] {
	cp := append([]TraceOp[V](nil), r.trace.Ops...)
	return &Trace[V]{Ops: cp}
}

// RecordProducedRow appends a ProduceQueryResult op for row, for the
// engine to call once a row reaches its caller.
func (r *Recorder[V]) RecordProducedRow(row map[string]value.Value) {
	r.append(TraceOp[V]{Kind: ProduceQueryResult, Row: row})
}

func (r *Recorder[V]) append(op TraceOp[V]) Opid {
	op.Opid = Opid(atomic.AddUint64(&r.next, 1) - 1)
	r.trace.Ops = append(r.trace.Ops, op)
	r.Metrics.RecordTraceOp()
	return op.Opid
}

func (r *Recorder[V]) ResolveStartingVertices(ctx context.Context, edgeName string, parameters ir.EdgeParameters, info *hints.QueryInfo) adapter.VertexIterator[V] {
	callOpid := r.append(TraceOp[V]{Kind: Call, Primitive: metrics.PrimitiveResolveStartingVertices, EdgeName: edgeName, Parameters: parameters})
	inner := r.Adapter.ResolveStartingVertices(ctx, edgeName, parameters, info)
	return &recordedVertexIterator[V]{r: r, parent: callOpid, inner: inner}
}

func (r *Recorder[V]) ResolveProperty(ctx context.Context, vertices adapter.VertexIterator[V], typeName, fieldName string, info *hints.QueryInfo) adapter.Iterator[adapter.ContextAndValue[V]] {
	callOpid := r.append(TraceOp[V]{Kind: Call, Primitive: metrics.PrimitiveResolveProperty, TypeName: typeName, FieldName: fieldName})
	recordedInput := &recordedVertexIterator[V]{r: r, parent: callOpid, inner: vertices}
	inner := r.Adapter.ResolveProperty(ctx, recordedInput, typeName, fieldName, info)
	return &recordedPropertyIterator[V]{r: r, parent: callOpid, inner: inner}
}

func (r *Recorder[V]) ResolveCoercion(ctx context.Context, vertices adapter.VertexIterator[V], typeName, coerceTo string, info *hints.QueryInfo) adapter.Iterator[adapter.ContextAndCoercion[V]] {
	callOpid := r.append(TraceOp[V]{Kind: Call, Primitive: metrics.PrimitiveResolveCoercion, TypeName: typeName, CoerceTo: coerceTo})
	recordedInput := &recordedVertexIterator[V]{r: r, parent: callOpid, inner: vertices}
	inner := r.Adapter.ResolveCoercion(ctx, recordedInput, typeName, coerceTo, info)
	return &recordedCoercionIterator[V]{r: r, parent: callOpid, inner: inner}
}

func (r *Recorder[V]) ResolveNeighbors(ctx context.Context, vertices adapter.VertexIterator[V], typeName, edgeName string, parameters ir.EdgeParameters, info *hints.QueryInfo) adapter.Iterator[adapter.ContextAndNeighbors[V]] {
	callOpid := r.append(TraceOp[V]{Kind: Call, Primitive: metrics.PrimitiveResolveNeighbors, TypeName: typeName, EdgeName: edgeName, Parameters: parameters})
	recordedInput := &recordedVertexIterator[V]{r: r, parent: callOpid, inner: vertices}
	inner := r.Adapter.ResolveNeighbors(ctx, recordedInput, typeName, edgeName, parameters, info)
	return &recordedNeighborsIterator[V]{r: r, parent: callOpid, inner: inner}
}

// recordedVertexIterator wraps an input VertexIterator, recording an
// AdvanceInputIterator/YieldInto pair (or InputIteratorExhausted) for
// every pull.
type recordedVertexIterator[V any] struct {
	r      *Recorder[V]
	parent Opid
	inner  adapter.VertexIterator[V]
}

func (it *recordedVertexIterator[V]) Next(ctx context.Context) (V, bool, error) {
	it.r.append(TraceOp[V]{Kind: AdvanceInputIterator, ParentOpid: &it.parent})
	v, ok, err := it.inner.Next(ctx)
	if err != nil {
		var zero V
		return zero, false, err
	}
	if !ok {
		it.r.append(TraceOp[V]{Kind: InputIteratorExhausted, ParentOpid: &it.parent})
		var zero V
		return zero, false, nil
	}
	it.r.append(TraceOp[V]{Kind: YieldInto, ParentOpid: &it.parent, Vertex: v, HasVertex: true})
	return v, true, nil
}

type recordedPropertyIterator[V any] struct {
	r      *Recorder[V]
	parent Opid
	inner  adapter.Iterator[adapter.ContextAndValue[V]]
}

func (it *recordedPropertyIterator[V]) Next(ctx context.Context) (adapter.ContextAndValue[V], bool, error) {
	item, ok, err := it.inner.Next(ctx)
	if err != nil {
		return adapter.ContextAndValue[V]{}, false, err
	}
	if !ok {
		it.r.append(TraceOp[V]{Kind: OutputIteratorExhausted, ParentOpid: &it.parent})
		return adapter.ContextAndValue[V]{}, false, nil
	}
	it.r.append(TraceOp[V]{Kind: YieldFrom, ParentOpid: &it.parent, Vertex: item.Vertex, HasVertex: true, PropertyValue: item.Value, HasProperty: true})
	return item, true, nil
}

type recordedCoercionIterator[V any] struct {
	r      *Recorder[V]
	parent Opid
	inner  adapter.Iterator[adapter.ContextAndCoercion[V]]
}

func (it *recordedCoercionIterator[V]) Next(ctx context.Context) (adapter.ContextAndCoercion[V], bool, error) {
	item, ok, err := it.inner.Next(ctx)
	if err != nil {
		return adapter.ContextAndCoercion[V]{}, false, err
	}
	if !ok {
		it.r.append(TraceOp[V]{Kind: OutputIteratorExhausted, ParentOpid: &it.parent})
		return adapter.ContextAndCoercion[V]{}, false, nil
	}
	it.r.append(TraceOp[V]{Kind: YieldFrom, ParentOpid: &it.parent, Vertex: item.Vertex, HasVertex: true, CoercionMatch: item.Matched, HasCoercion: true})
	return item, true, nil
}

type recordedNeighborsIterator[V any] struct {
	r      *Recorder[V]
	parent Opid
	inner  adapter.Iterator[adapter.ContextAndNeighbors[V]]
}

func (it *recordedNeighborsIterator[V]) Next(ctx context.Context) (adapter.ContextAndNeighbors[V], bool, error) {
	item, ok, err := it.inner.Next(ctx)
	if err != nil {
		return adapter.ContextAndNeighbors[V]{}, false, err
	}
	if !ok {
		it.r.append(TraceOp[V]{Kind: OutputIteratorExhausted, ParentOpid: &it.parent})
		return adapter.ContextAndNeighbors[V]{}, false, nil
	}
	// ResolveNeighborsInner: the source vertex is recorded as a
	// YieldFrom parented to this call, and the per-vertex neighbor
	// sub-iterator as its own child op chain parented to that YieldFrom,
	// so a replay can tell which input vertex a given neighbor batch
	// belongs to.
	innerOpid := it.r.append(TraceOp[V]{Kind: YieldFrom, ParentOpid: &it.parent, Vertex: item.Vertex, HasVertex: true})
	return adapter.ContextAndNeighbors[V]{
		Vertex:    item.Vertex,
		Neighbors: &recordedNeighborBatch[V]{r: it.r, parent: innerOpid, inner: item.Neighbors},
	}, true, nil
}

// recordedNeighborBatch wraps the lazy neighbor iterator yielded for
// one source vertex, recording each neighbor's contiguous index.
type recordedNeighborBatch[V any] struct {
	r      *Recorder[V]
	parent Opid
	inner  adapter.VertexIterator[V]
	index  int
}

func (it *recordedNeighborBatch[V]) Next(ctx context.Context) (V, bool, error) {
	v, ok, err := it.inner.Next(ctx)
	if err != nil {
		var zero V
		return zero, false, err
	}
	if !ok {
		it.r.append(TraceOp[V]{Kind: OutputIteratorExhausted, ParentOpid: &it.parent})
		var zero V
		return zero, false, nil
	}
	it.r.append(TraceOp[V]{Kind: YieldFrom, ParentOpid: &it.parent, Vertex: v, HasVertex: true, NeighborIndex: it.index})
	it.index++
	return v, true, nil
}
