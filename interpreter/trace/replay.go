// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"fmt"

	"github.com/latticeql/engine/interpreter/adapter"
	"github.com/latticeql/engine/interpreter/hints"
	"github.com/latticeql/engine/ir"
)

// Mismatch is the panic value raised when a Replay's actual call
// sequence diverges from its recorded Trace. Traces are assumed
// self-consistent with the query that produced them: a Mismatch means
// either the trace was recorded against a different query/arguments,
// or the engine driving the replay is non-deterministic.
type Mismatch struct {
	Opid   Opid
	Reason string
}

func (m Mismatch) Error() string {
	return fmt.Sprintf("trace replay mismatch at opid %d: %s", m.Opid, m.Reason)
}

// EqualFunc reports whether two vertex tokens are the same vertex,
// used to assert a replayed input matches what was recorded.
type EqualFunc[V any] func(a, b V) bool

// Replay is a deterministic Adapter[V] driven entirely by a recorded
// Trace: it never consults a real data source. Every call asserts
// that what the engine is asking for (the primitive, its type, field,
// edge and coercion-target names, and the vertices it pulls through
// the replay's input iterators) matches what the trace recorded,
// panicking with a Mismatch otherwise. Edge parameters are not
// compared.
type Replay[V any] struct {
	trace *Trace[V]
	equal EqualFunc[V]
	pos   int
}

// NewReplay builds a Replay adapter over t. equal is used to compare
// a vertex pulled from an engine-supplied input iterator against the
// vertex the original recording observed at the same point.
func NewReplay[V any](t *Trace[V], equal EqualFunc[V]) *Replay[V] {
	return &Replay[V]{trace: t, equal: equal}
}

func (p *Replay[V]) current() TraceOp[V] {
	// ProduceQueryResult ops mark rows reaching the original caller,
	// not adapter interactions; the replayed engine produces its own
	// rows, so the cursor steps over them.
	for p.pos < len(p.trace.Ops) && p.trace.Ops[p.pos].Kind == ProduceQueryResult {
		p.pos++
	}
	if p.pos >= len(p.trace.Ops) {
		panic(Mismatch{Reason: "trace exhausted but engine requested another op"})
	}
	return p.trace.Ops[p.pos]
}

func (p *Replay[V]) advance() TraceOp[V] {
	op := p.current()
	p.pos++
	return op
}

func (p *Replay[V]) expectCall(primitive string, matches func(TraceOp[V]) (bool, string)) TraceOp[V] {
	op := p.advance()
	if op.Kind != Call {
		panic(Mismatch{Opid: op.Opid, Reason: fmt.Sprintf("expected Call(%s), got kind %d", primitive, op.Kind)})
	}
	if string(op.Primitive) != primitive {
		panic(Mismatch{Opid: op.Opid, Reason: fmt.Sprintf("expected Call(%s), got Call(%s)", primitive, op.Primitive)})
	}
	if ok, reason := matches(op); !ok {
		panic(Mismatch{Opid: op.Opid, Reason: reason})
	}
	if op.ParentOpid != nil {
		panic(Mismatch{Opid: op.Opid, Reason: "root Call op must have no parent"})
	}
	return op
}

func (p *Replay[V]) ResolveStartingVertices(ctx context.Context, edgeName string, parameters ir.EdgeParameters, info *hints.QueryInfo) adapter.VertexIterator[V] {
	call := p.expectCall("resolve_starting_vertices", func(op TraceOp[V]) (bool, string) {
		if op.EdgeName != edgeName {
			return false, fmt.Sprintf("edge name mismatch: recorded %q, got %q", op.EdgeName, edgeName)
		}
		return true, ""
	})
	return &replaySourceIterator[V]{p: p, parent: call.Opid}
}

func (p *Replay[V]) ResolveProperty(ctx context.Context, vertices adapter.VertexIterator[V], typeName, fieldName string, info *hints.QueryInfo) adapter.Iterator[adapter.ContextAndValue[V]] {
	call := p.expectCall("resolve_property", func(op TraceOp[V]) (bool, string) {
		if op.TypeName != typeName || op.FieldName != fieldName {
			return false, fmt.Sprintf("property mismatch: recorded %s.%s, got %s.%s", op.TypeName, op.FieldName, typeName, fieldName)
		}
		return true, ""
	})
	p.consumeAdvanceAndYield(call.Opid, vertices)
	return &replayPropertyIterator[V]{p: p, parent: call.Opid}
}

func (p *Replay[V]) ResolveCoercion(ctx context.Context, vertices adapter.VertexIterator[V], typeName, coerceTo string, info *hints.QueryInfo) adapter.Iterator[adapter.ContextAndCoercion[V]] {
	call := p.expectCall("resolve_coercion", func(op TraceOp[V]) (bool, string) {
		if op.TypeName != typeName || op.CoerceTo != coerceTo {
			return false, fmt.Sprintf("coercion mismatch: recorded %s->%s, got %s->%s", op.TypeName, op.CoerceTo, typeName, coerceTo)
		}
		return true, ""
	})
	p.consumeAdvanceAndYield(call.Opid, vertices)
	return &replayCoercionIterator[V]{p: p, parent: call.Opid}
}

func (p *Replay[V]) ResolveNeighbors(ctx context.Context, vertices adapter.VertexIterator[V], typeName, edgeName string, parameters ir.EdgeParameters, info *hints.QueryInfo) adapter.Iterator[adapter.ContextAndNeighbors[V]] {
	call := p.expectCall("resolve_neighbors", func(op TraceOp[V]) (bool, string) {
		if op.TypeName != typeName || op.EdgeName != edgeName {
			return false, fmt.Sprintf("neighbor edge mismatch: recorded %s.%s, got %s.%s", op.TypeName, op.EdgeName, typeName, edgeName)
		}
		return true, ""
	})
	p.consumeAdvanceAndYield(call.Opid, vertices)
	return &replayNeighborsIterator[V]{p: p, parent: call.Opid}
}

// consumeAdvanceAndYield replays the AdvanceInputIterator/YieldInto
// pair a ResolveX primitive's single input pull produced, asserting
// the vertex actually pulled from vertices (the engine's live input)
// equals the one recorded.
func (p *Replay[V]) consumeAdvanceAndYield(parent Opid, vertices adapter.VertexIterator[V]) {
	adv := p.advance()
	if adv.Kind != AdvanceInputIterator || adv.ParentOpid == nil || *adv.ParentOpid != parent {
		panic(Mismatch{Opid: adv.Opid, Reason: "expected AdvanceInputIterator under this call"})
	}
	yield := p.advance()
	if yield.Kind != YieldInto {
		panic(Mismatch{Opid: yield.Opid, Reason: "expected YieldInto after AdvanceInputIterator"})
	}
	live, ok, err := vertices.Next(context.Background())
	if err != nil || !ok {
		panic(Mismatch{Opid: yield.Opid, Reason: "engine's live input iterator produced nothing for a recorded YieldInto"})
	}
	if p.equal != nil && !p.equal(live, yield.Vertex) {
		panic(Mismatch{Opid: yield.Opid, Reason: "live input vertex does not match recorded context"})
	}
}

type replaySourceIterator[V any] struct {
	p      *Replay[V]
	parent Opid
}

func (it *replaySourceIterator[V]) Next(ctx context.Context) (V, bool, error) {
	op := it.p.advance()
	var zero V
	switch op.Kind {
	case AdvanceInputIterator:
		if op.ParentOpid == nil || *op.ParentOpid != it.parent {
			panic(Mismatch{Opid: op.Opid, Reason: "AdvanceInputIterator parented to the wrong call"})
		}
		next := it.p.advance()
		if next.Kind == InputIteratorExhausted {
			return zero, false, nil
		}
		if next.Kind != YieldInto {
			panic(Mismatch{Opid: next.Opid, Reason: "expected YieldInto or InputIteratorExhausted"})
		}
		return next.Vertex, true, nil
	default:
		panic(Mismatch{Opid: op.Opid, Reason: "expected AdvanceInputIterator"})
	}
}

type replayPropertyIterator[V any] struct {
	p      *Replay[V]
	parent Opid
}

func (it *replayPropertyIterator[V]) Next(ctx context.Context) (adapter.ContextAndValue[V], bool, error) {
	op := it.p.advance()
	if op.Kind == OutputIteratorExhausted {
		return adapter.ContextAndValue[V]{}, false, nil
	}
	if op.Kind != YieldFrom || !op.HasProperty {
		panic(Mismatch{Opid: op.Opid, Reason: "expected YieldFrom(property) or OutputIteratorExhausted"})
	}
	return adapter.ContextAndValue[V]{Vertex: op.Vertex, Value: op.PropertyValue}, true, nil
}

type replayCoercionIterator[V any] struct {
	p      *Replay[V]
	parent Opid
}

func (it *replayCoercionIterator[V]) Next(ctx context.Context) (adapter.ContextAndCoercion[V], bool, error) {
	op := it.p.advance()
	if op.Kind == OutputIteratorExhausted {
		return adapter.ContextAndCoercion[V]{}, false, nil
	}
	if op.Kind != YieldFrom || !op.HasCoercion {
		panic(Mismatch{Opid: op.Opid, Reason: "expected YieldFrom(coercion) or OutputIteratorExhausted"})
	}
	return adapter.ContextAndCoercion[V]{Vertex: op.Vertex, Matched: op.CoercionMatch}, true, nil
}

type replayNeighborsIterator[V any] struct {
	p      *Replay[V]
	parent Opid
}

func (it *replayNeighborsIterator[V]) Next(ctx context.Context) (adapter.ContextAndNeighbors[V], bool, error) {
	op := it.p.advance()
	if op.Kind == OutputIteratorExhausted {
		return adapter.ContextAndNeighbors[V]{}, false, nil
	}
	if op.Kind != YieldFrom {
		panic(Mismatch{Opid: op.Opid, Reason: "expected YieldFrom(neighbor batch) or OutputIteratorExhausted"})
	}
	return adapter.ContextAndNeighbors[V]{
		Vertex:    op.Vertex,
		Neighbors: &replayNeighborBatch[V]{p: it.p, parent: op.Opid},
	}, true, nil
}

// replayNeighborBatch replays one source vertex's recorded neighbor
// sub-iterator, asserting indices are contiguous from 0.
type replayNeighborBatch[V any] struct {
	p      *Replay[V]
	parent Opid
	next   int
}

func (it *replayNeighborBatch[V]) Next(ctx context.Context) (V, bool, error) {
	op := it.p.advance()
	var zero V
	if op.Kind == OutputIteratorExhausted {
		if op.ParentOpid == nil || *op.ParentOpid != it.parent {
			panic(Mismatch{Opid: op.Opid, Reason: "OutputIteratorExhausted parented to the wrong neighbor batch"})
		}
		return zero, false, nil
	}
	if op.Kind != YieldFrom || op.ParentOpid == nil || *op.ParentOpid != it.parent {
		panic(Mismatch{Opid: op.Opid, Reason: "expected YieldFrom(neighbor) parented to this batch"})
	}
	if op.NeighborIndex != it.next {
		panic(Mismatch{Opid: op.Opid, Reason: fmt.Sprintf("neighbor index not contiguous: expected %d, got %d", it.next, op.NeighborIndex)})
	}
	it.next++
	return op.Vertex, true, nil
}
