// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package interpreter

import (
	"context"
	"fmt"

	"github.com/latticeql/engine/interpreter/adapter"
	"github.com/latticeql/engine/interpreter/hints"
	"github.com/latticeql/engine/interpreter/trace"
	"github.com/latticeql/engine/ir"
	"github.com/latticeql/engine/ir/indexed"
	"github.com/latticeql/engine/log"
	"github.com/latticeql/engine/metrics"
	"github.com/latticeql/engine/value"
)

// Row is one produced query result: output name to resolved value.
type Row map[string]value.Value

// Engine interprets an indexed.Query against an Adapter[V], one row
// at a time, pulled lazily from the root edge's starting vertices.
type Engine[V any] struct {
	Adapter adapter.Adapter[V]
	Query   *indexed.Query
	Logger  log.Logger
	Metrics *metrics.Interpreter

	// Tracer, if set, must be the same *trace.Recorder[V] Adapter was
	// built from (via trace.NewRecorder); the engine calls
	// Tracer.RecordProducedRow for every row it yields, so the
	// resulting Trace also captures ProduceQueryResult ops. A nil
	// Tracer disables this without otherwise changing behavior.
	Tracer *trace.Recorder[V]
}

// WithTracing wraps ad in a trace.Recorder and returns an Engine that
// records every adapter interaction, including produced rows, into
// the recorder's Trace (read back via the returned *trace.Recorder's
// Trace method once the query finishes).
func WithTracing[V any](ad adapter.Adapter[V], query *indexed.Query, logger log.Logger, metricsInterpreter *metrics.Interpreter) (*Engine[V], *trace.Recorder[V]) {
	rec := trace.NewRecorder(ad, metricsInterpreter)
	e := New[V](rec, query, logger, metricsInterpreter)
	e.Tracer = rec
	return e, rec
}

// New builds an Engine. logger and metricsInterpreter may be nil; a
// nil logger behaves as log.NewNoOpLogger, a nil metrics.Interpreter
// is itself already nil-receiver-safe.
func New[V any](ad adapter.Adapter[V], query *indexed.Query, logger log.Logger, metricsInterpreter *metrics.Interpreter) *Engine[V] {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &Engine[V]{Adapter: ad, Query: query, Logger: logger, Metrics: metricsInterpreter}
}

// Interpret drives the query to completion, returning a lazy iterator
// of output rows. edgeName/parameters designate the query's root
// edge (the call into resolve_starting_vertices); arguments supplies
// every query variable referenced by a @filter.
func (e *Engine[V]) Interpret(ctx context.Context, edgeName string, parameters ir.EdgeParameters, arguments map[string]value.Value) (adapter.Iterator[Row], error) {
	if e.Query == nil {
		return nil, fmt.Errorf("interpreter: engine has no query")
	}
	e.Logger.Debug("interpreting query", "rootVid", e.Query.RootVid(), "rootEdge", edgeName)
	e.Metrics.QueryStarted()
	rootInfo := hints.NewQueryInfo(e.Query, arguments, e.Query.RootVid(), nil)
	starting := e.Adapter.ResolveStartingVertices(ctx, edgeName, parameters, rootInfo)
	e.Metrics.RecordAdapterCall(metrics.PrimitiveResolveStartingVertices)
	return &rowIterator[V]{engine: e, starting: starting, arguments: arguments}, nil
}

type rowIterator[V any] struct {
	engine    *Engine[V]
	starting  adapter.VertexIterator[V]
	arguments map[string]value.Value
	pending   []Row
	done      bool
}

func (it *rowIterator[V]) Next(ctx context.Context) (Row, bool, error) {
	for len(it.pending) == 0 {
		if it.done {
			return nil, false, nil
		}
		v, ok, err := it.starting.Next(ctx)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			it.done = true
			it.engine.Metrics.QueryFinished()
			it.engine.Logger.Debug("query finished")
			return nil, false, nil
		}
		dc := NewDataContext(it.engine.Query.RootVid(), v)
		results, err := it.engine.processVertex(ctx, it.engine.Query.RootVid(), dc, it.arguments)
		if err != nil {
			return nil, false, err
		}
		rows := make([]Row, len(results))
		for i, r := range results {
			rows[i] = Row(cloneOutputMap(r.OutputValues))
			it.engine.Metrics.RecordRowProduced()
			if it.engine.Tracer != nil {
				it.engine.Tracer.RecordProducedRow(map[string]value.Value(rows[i]))
			}
		}
		it.pending = rows
	}
	row := it.pending[0]
	it.pending = it.pending[1:]
	return row, true, nil
}

// processVertex resolves coercion, filters, tags, and outputs at vid,
// evaluates its folds, then chains its outgoing edges in Eid order.
// It returns every context that survives the subtree rooted here: one
// per complete result branch, each carrying the branch's accumulated
// OutputValues and ImportedTags. A nil slice with a nil error means
// the branch was pruned by a coercion, filter, or required edge with
// no neighbors.
func (e *Engine[V]) processVertex(ctx context.Context, vid ir.Vid, dc *DataContext[V], arguments map[string]value.Value) ([]*DataContext[V], error) {
	vertex, ok := e.Query.Vertex(vid)
	if !ok {
		return nil, fmt.Errorf("interpreter: no vertex %s in query", vid)
	}

	if !dc.IsActive() {
		return e.processDeadVertex(vid, dc)
	}

	if vertex.CoercedFromType != "" {
		matched, err := e.resolveCoercion(ctx, vid, *dc.ActiveVertex, vertex.CoercedFromType, vertex.TypeName, arguments)
		if err != nil {
			return nil, err
		}
		if !matched {
			return nil, nil
		}
	}

	for _, filterOp := range vertex.Filters {
		fieldVal, err := e.resolveProperty(ctx, vid, *dc.ActiveVertex, vertex.TypeName, filterOp.FieldName, arguments)
		if err != nil {
			return nil, err
		}
		passed, err := evaluateOperation(dc, arguments, filterOp, fieldVal)
		if err != nil {
			return nil, err
		}
		if !passed {
			return nil, nil
		}
	}

	for _, tag := range vertex.Tags {
		tagVal, err := e.resolveProperty(ctx, vid, *dc.ActiveVertex, vertex.TypeName, tag.FieldName, arguments)
		if err != nil {
			return nil, err
		}
		dc.ImportTag(ir.FieldRef{VertexID: vid, FieldName: tag.FieldName}, tagVal)
	}

	for _, out := range vertex.Outputs {
		outVal, err := e.resolveProperty(ctx, vid, *dc.ActiveVertex, vertex.TypeName, out.FieldName, arguments)
		if err != nil {
			return nil, err
		}
		dc.OutputValues[out.Name] = outVal
	}

	for _, fold := range e.Query.FoldsFrom(vid) {
		kept, err := e.processFold(ctx, vid, fold, dc, arguments)
		if err != nil {
			return nil, err
		}
		if !kept {
			return nil, nil
		}
	}

	return e.traverseEdges(ctx, e.Query.EdgesFrom(vid), dc, arguments)
}

// traverseEdges evaluates edges one at a time: the contexts produced
// by the first edge's subtree each continue through the remaining
// edges. Threading contexts rather than joining per-edge result sets
// keeps @tags bound inside one edge's subtree visible to @filter
// operations behind later sibling edges, as query order demands.
func (e *Engine[V]) traverseEdges(ctx context.Context, edges []*ir.Edge, dc *DataContext[V], arguments map[string]value.Value) ([]*DataContext[V], error) {
	if len(edges) == 0 {
		return []*DataContext[V]{dc}, nil
	}

	children, err := e.processEdge(ctx, edges[0], dc, arguments)
	if err != nil {
		return nil, err
	}

	var out []*DataContext[V]
	for _, child := range children {
		more, err := e.traverseEdges(ctx, edges[1:], child, arguments)
		if err != nil {
			return nil, err
		}
		out = append(out, more...)
	}
	return out, nil
}

// processDeadVertex handles a vertex whose scope is already dead (a
// @optional edge with no matching neighbor): every output in the
// subtree resolves to null, every fold in the subtree resolves to an
// empty list, and no adapter call is made.
func (e *Engine[V]) processDeadVertex(vid ir.Vid, dc *DataContext[V]) ([]*DataContext[V], error) {
	vertex, ok := e.Query.Vertex(vid)
	if !ok {
		return nil, fmt.Errorf("interpreter: no vertex %s in query", vid)
	}
	for _, out := range vertex.Outputs {
		dc.OutputValues[out.Name] = value.Null()
	}
	for _, fold := range e.Query.FoldsFrom(vid) {
		for _, out := range fold.Outputs {
			dc.SetFoldOutput(fold.Eid, out.Name, value.List(nil))
			dc.OutputValues[out.Name] = value.List(nil)
		}
	}
	for _, edge := range e.Query.EdgesFrom(vid) {
		if _, err := e.processDeadVertex(edge.ToVid, dc); err != nil {
			return nil, err
		}
	}
	return []*DataContext[V]{dc}, nil
}

// processEdge fans dc out over one edge's neighbors, fully evaluating
// the subtree behind the edge for each, and restores the source
// vertex as active on every surviving context. A @optional edge with
// no surviving contexts contributes exactly one continuation context
// whose whole subtree is dead (null-bound).
func (e *Engine[V]) processEdge(ctx context.Context, edge *ir.Edge, dc *DataContext[V], arguments map[string]value.Value) ([]*DataContext[V], error) {
	vertex, _ := e.Query.Vertex(edge.FromVid)

	if edge.Recursive != nil {
		return e.processRecursiveEdge(ctx, vertex, edge, dc, arguments)
	}

	neighbors, err := e.resolveNeighbors(ctx, edge.FromVid, edge.Eid, *dc.ActiveVertex, vertex.TypeName, edge.EdgeName, edge.Parameters, arguments)
	if err != nil {
		return nil, err
	}

	var out []*DataContext[V]
	for {
		neighbor, ok, err := neighbors.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		child := dc.Clone()
		child.Descend(edge.ToVid, neighbor)
		results, err := e.processVertex(ctx, edge.ToVid, child, arguments)
		if err != nil {
			return nil, err
		}
		for _, r := range results {
			r.Unsuspend()
			out = append(out, r)
		}
	}

	if len(out) == 0 && edge.Optional {
		child := dc.Clone()
		child.Suspend()
		results, err := e.processDeadVertex(edge.ToVid, child)
		if err != nil {
			return nil, err
		}
		for _, r := range results {
			r.Unsuspend()
			out = append(out, r)
		}
	}

	return out, nil
}

// processRecursiveEdge expands a @recurse edge breadth-first, up to
// and including Recursive.Depth hops. Depth 0 is the source vertex
// itself, reinterpreted at the target vid. The frontier grows from
// the adapter's neighbor order and is never de-duplicated; that is an
// adapter concern.
func (e *Engine[V]) processRecursiveEdge(ctx context.Context, fromVertex *ir.Vertex, edge *ir.Edge, dc *DataContext[V], arguments map[string]value.Value) ([]*DataContext[V], error) {
	reached, err := e.expandRecursion(ctx, fromVertex, edge.Eid, edge.EdgeName, edge.Parameters, edge.Recursive.Depth, *dc.ActiveVertex, arguments)
	if err != nil {
		return nil, err
	}

	var out []*DataContext[V]
	for _, v := range reached {
		child := dc.Clone()
		child.Descend(edge.ToVid, v)
		results, err := e.processVertex(ctx, edge.ToVid, child, arguments)
		if err != nil {
			return nil, err
		}
		for _, r := range results {
			r.Unsuspend()
			out = append(out, r)
		}
	}
	return out, nil
}

// expandRecursion collects every vertex reachable from source within
// depth hops of edgeName, in strict ascending depth order; within one
// depth, in the adapter's neighbor order. The source itself is depth 0.
func (e *Engine[V]) expandRecursion(ctx context.Context, fromVertex *ir.Vertex, eid ir.Eid, edgeName string, parameters ir.EdgeParameters, depth uint32, source V, arguments map[string]value.Value) ([]V, error) {
	reached := []V{source}
	frontier := []V{source}

	for level := uint32(1); level <= depth; level++ {
		var next []V
		for _, v := range frontier {
			neighbors, err := e.resolveNeighbors(ctx, fromVertex.Vid, eid, v, fromVertex.TypeName, edgeName, parameters, arguments)
			if err != nil {
				return nil, err
			}
			for {
				neighbor, ok, err := neighbors.Next(ctx)
				if err != nil {
					return nil, err
				}
				if !ok {
					break
				}
				next = append(next, neighbor)
			}
		}
		if len(next) == 0 {
			break
		}
		reached = append(reached, next...)
		frontier = next
	}
	return reached, nil
}

// processFold eagerly evaluates fold's sub-component for every
// neighbor reached by its edge (expanded breadth-first when the fold
// is also @recurse), aggregating each declared output into a List
// value attached to dc. Post-aggregation filters (e.g. a count bound)
// run once the fold is drained; kept=false means the outer row is
// discarded.
func (e *Engine[V]) processFold(ctx context.Context, fromVid ir.Vid, fold *ir.Fold, dc *DataContext[V], arguments map[string]value.Value) (bool, error) {
	vertex, _ := e.Query.Vertex(fromVid)

	var vertices []V
	if fold.Recursive != nil {
		reached, err := e.expandRecursion(ctx, vertex, fold.Eid, fold.EdgeName, fold.Parameters, fold.Recursive.Depth, *dc.ActiveVertex, arguments)
		if err != nil {
			return false, err
		}
		vertices = reached
	} else {
		neighbors, err := e.resolveNeighbors(ctx, fromVid, fold.Eid, *dc.ActiveVertex, vertex.TypeName, fold.EdgeName, fold.Parameters, arguments)
		if err != nil {
			return false, err
		}
		for {
			neighbor, ok, err := neighbors.Next(ctx)
			if err != nil {
				return false, err
			}
			if !ok {
				break
			}
			vertices = append(vertices, neighbor)
		}
	}

	var foldedRows []map[string]value.Value
	for _, neighbor := range vertices {
		child := NewDataContext(fold.ToVid, neighbor)
		for ref, v := range dc.ImportedTags {
			child.ImportTag(ref, v)
		}
		results, err := e.processVertex(ctx, fold.ToVid, child, arguments)
		if err != nil {
			return false, err
		}
		for _, r := range results {
			foldedRows = append(foldedRows, cloneOutputMap(r.OutputValues))
		}
	}

	for _, postFilter := range fold.PostFilters {
		count := value.Int64(int64(len(foldedRows)))
		passed, err := evaluateOperation(dc, arguments, postFilter, count)
		if err != nil {
			return false, err
		}
		if !passed {
			return false, nil
		}
	}

	for _, out := range fold.Outputs {
		list := make([]value.Value, len(foldedRows))
		for i, r := range foldedRows {
			v, ok := r[out.FieldName]
			if !ok {
				v = value.Null()
			}
			list[i] = v
		}
		dc.SetFoldOutput(fold.Eid, out.Name, value.List(list))
		dc.OutputValues[out.Name] = value.List(list)
	}

	return true, nil
}

func (e *Engine[V]) resolveProperty(ctx context.Context, vid ir.Vid, vertex V, typeName, fieldName string, arguments map[string]value.Value) (value.Value, error) {
	e.Metrics.RecordAdapterCall(metrics.PrimitiveResolveProperty)
	info := hints.NewQueryInfo(e.Query, arguments, vid, nil)
	results := e.Adapter.ResolveProperty(ctx, adapter.FromSlice([]V{vertex}), typeName, fieldName, info)
	item, ok, err := results.Next(ctx)
	if err != nil {
		return value.Value{}, err
	}
	if !ok {
		return value.Value{}, fmt.Errorf("interpreter: resolve_property(%s.%s) yielded nothing for its one input", typeName, fieldName)
	}
	return item.Value, nil
}

func (e *Engine[V]) resolveCoercion(ctx context.Context, vid ir.Vid, vertex V, typeName, coerceTo string, arguments map[string]value.Value) (bool, error) {
	e.Metrics.RecordAdapterCall(metrics.PrimitiveResolveCoercion)
	info := hints.NewQueryInfo(e.Query, arguments, vid, nil)
	results := e.Adapter.ResolveCoercion(ctx, adapter.FromSlice([]V{vertex}), typeName, coerceTo, info)
	item, ok, err := results.Next(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("interpreter: resolve_coercion(%s -> %s) yielded nothing for its one input", typeName, coerceTo)
	}
	return item.Matched, nil
}

func (e *Engine[V]) resolveNeighbors(ctx context.Context, vid ir.Vid, eid ir.Eid, vertex V, typeName, edgeName string, parameters ir.EdgeParameters, arguments map[string]value.Value) (adapter.VertexIterator[V], error) {
	e.Metrics.RecordAdapterCall(metrics.PrimitiveResolveNeighbors)
	info := hints.NewQueryInfo(e.Query, arguments, vid, &eid)
	results := e.Adapter.ResolveNeighbors(ctx, adapter.FromSlice([]V{vertex}), typeName, edgeName, parameters, info)
	item, ok, err := results.Next(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("interpreter: resolve_neighbors(%s.%s) yielded nothing for its one input", typeName, edgeName)
	}
	return item.Neighbors, nil
}

func cloneOutputMap(m map[string]value.Value) map[string]value.Value {
	clone := make(map[string]value.Value, len(m))
	for k, v := range m {
		clone[k] = v
	}
	return clone
}
