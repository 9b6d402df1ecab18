// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package adapter defines the pull-based interface between the
// interpreter engine and a data source: the four primitives an
// Adapter[V] must implement, and the lazy iterator shapes the engine
// drives them through. Nothing in this package knows about any
// concrete data source; concrete adapters (a database, an in-memory
// fixture such as package numbers) live outside this package.
package adapter

import (
	"context"

	"github.com/latticeql/engine/interpreter/hints"
	"github.com/latticeql/engine/ir"
	"github.com/latticeql/engine/value"
)

// VertexIterator lazily yields vertex tokens of type V. Iterators are
// never buffered ahead of demand: each Next call does at most the
// work needed to produce one element.
type VertexIterator[V any] interface {
	// Next returns the next vertex, or ok=false once exhausted. Once
	// Next returns ok=false it must keep doing so on every later call.
	Next(ctx context.Context) (v V, ok bool, err error)
}

// ContextAndValue pairs a DataContext's active vertex with a resolved
// property value, the unit resolve_property yields.
type ContextAndValue[V any] struct {
	Vertex V
	Value  value.Value
}

// ContextAndNeighbors pairs a DataContext's active vertex with the
// lazy iterator of neighboring vertices reached by one edge
// invocation, the unit resolve_neighbors yields.
type ContextAndNeighbors[V any] struct {
	Vertex    V
	Neighbors VertexIterator[V]
}

// ContextAndCoercion pairs a DataContext's active vertex with whether
// it satisfies a type coercion, the unit resolve_coercion yields.
type ContextAndCoercion[V any] struct {
	Vertex  V
	Matched bool
}

// Adapter is the data source contract: four pull-based primitives,
// each a strict one-to-one transform over an input iterator of
// vertex tokens. No primitive may reorder, drop, duplicate, or
// look ahead past what's demanded of it.
type Adapter[V any] interface {
	// ResolveStartingVertices produces the vertices a query's root
	// edge designates, e.g. every vertex of a given type. info
	// exposes whatever static hints are available at the root vertex.
	ResolveStartingVertices(ctx context.Context, edgeName string, parameters ir.EdgeParameters, info *hints.QueryInfo) VertexIterator[V]

	// ResolveProperty resolves fieldName against every vertex pulled
	// from vertices, yielding exactly one ContextAndValue per input
	// vertex, in input order. info.Here() describes the vertex being
	// resolved.
	ResolveProperty(ctx context.Context, vertices VertexIterator[V], typeName, fieldName string, info *hints.QueryInfo) Iterator[ContextAndValue[V]]

	// ResolveNeighbors resolves the neighbors reached by edgeName from
	// every vertex pulled from vertices, yielding exactly one
	// ContextAndNeighbors per input vertex, in input order. The
	// returned neighbor iterators must remain lazy even if the
	// ContextAndNeighbors itself has already been yielded. info.Here()
	// describes the source vertex; info.Destination() describes the
	// neighbor, for adapters that want to inspect downstream filters.
	ResolveNeighbors(ctx context.Context, vertices VertexIterator[V], typeName, edgeName string, parameters ir.EdgeParameters, info *hints.QueryInfo) Iterator[ContextAndNeighbors[V]]

	// ResolveCoercion tests whether every vertex pulled from vertices
	// can be coerced to coerceTo, yielding exactly one
	// ContextAndCoercion per input vertex, in input order.
	ResolveCoercion(ctx context.Context, vertices VertexIterator[V], typeName, coerceTo string, info *hints.QueryInfo) Iterator[ContextAndCoercion[V]]
}

// Iterator is the lazy pull protocol for any element type T.
type Iterator[T any] interface {
	Next(ctx context.Context) (item T, ok bool, err error)
}
