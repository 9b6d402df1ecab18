// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package numbers is a reference Adapter[int] over a window of
// integers, used to exercise every interpreter primitive and
// directive (@optional, @fold, @recurse, @filter, @tag) without
// needing a real external data source.
package numbers

import (
	"context"

	"github.com/latticeql/engine/interpreter/adapter"
	"github.com/latticeql/engine/interpreter/hints"
	"github.com/latticeql/engine/ir"
	"github.com/latticeql/engine/value"
)

// Adapter resolves a window of integers [Min, Max] and the
// successor/predecessor edges between them. Both bounds are set by
// the caller; predecessor has no neighbor at Min and successor none
// at Max, making them useful for exercising @optional.
type Adapter struct {
	Min, Max int64
}

// New returns an Adapter over [min, max], inclusive.
func New(min, max int64) *Adapter { return &Adapter{Min: min, Max: max} }

func (a *Adapter) ResolveStartingVertices(ctx context.Context, edgeName string, parameters ir.EdgeParameters, info *hints.QueryInfo) adapter.VertexIterator[int] {
	min, max := a.Min, a.Max
	if v, ok := parameters.Get("min"); ok {
		if i, ok := v.AsInt64(); ok {
			min = i
		}
	}
	if v, ok := parameters.Get("max"); ok {
		if i, ok := v.AsInt64(); ok {
			max = i
		}
	}
	items := make([]int, 0, max-min+1)
	for i := min; i <= max; i++ {
		items = append(items, int(i))
	}
	return adapter.FromSlice(items)
}

func (a *Adapter) ResolveProperty(ctx context.Context, vertices adapter.VertexIterator[int], typeName, fieldName string, info *hints.QueryInfo) adapter.Iterator[adapter.ContextAndValue[int]] {
	return adapter.FromFunc(func(ctx context.Context) (adapter.ContextAndValue[int], bool, error) {
		n, ok, err := vertices.Next(ctx)
		if err != nil || !ok {
			return adapter.ContextAndValue[int]{}, false, err
		}
		return adapter.ContextAndValue[int]{Vertex: n, Value: resolveNumberProperty(n, fieldName)}, true, nil
	})
}

func resolveNumberProperty(n int, fieldName string) value.Value {
	switch fieldName {
	case "value":
		return value.Int64(int64(n))
	case "name":
		return value.String(nameOf(n))
	case "isPrime":
		return value.Boolean(isPrime(n))
	default:
		return value.Null()
	}
}

func (a *Adapter) ResolveNeighbors(ctx context.Context, vertices adapter.VertexIterator[int], typeName, edgeName string, parameters ir.EdgeParameters, info *hints.QueryInfo) adapter.Iterator[adapter.ContextAndNeighbors[int]] {
	return adapter.FromFunc(func(ctx context.Context) (adapter.ContextAndNeighbors[int], bool, error) {
		n, ok, err := vertices.Next(ctx)
		if err != nil || !ok {
			return adapter.ContextAndNeighbors[int]{}, false, err
		}
		return adapter.ContextAndNeighbors[int]{Vertex: n, Neighbors: a.neighborsOf(n, edgeName)}, true, nil
	})
}

func (a *Adapter) neighborsOf(n int, edgeName string) adapter.VertexIterator[int] {
	switch edgeName {
	case "successor":
		if int64(n) >= a.Max {
			return adapter.FromSlice[int](nil)
		}
		return adapter.FromSlice([]int{n + 1})
	case "predecessor":
		if int64(n) <= a.Min {
			return adapter.FromSlice[int](nil)
		}
		return adapter.FromSlice([]int{n - 1})
	default:
		return adapter.FromSlice[int](nil)
	}
}

func (a *Adapter) ResolveCoercion(ctx context.Context, vertices adapter.VertexIterator[int], typeName, coerceTo string, info *hints.QueryInfo) adapter.Iterator[adapter.ContextAndCoercion[int]] {
	return adapter.FromFunc(func(ctx context.Context) (adapter.ContextAndCoercion[int], bool, error) {
		n, ok, err := vertices.Next(ctx)
		if err != nil || !ok {
			return adapter.ContextAndCoercion[int]{}, false, err
		}
		matched := false
		switch coerceTo {
		case "Prime":
			matched = isPrime(n)
		case "Composite":
			matched = n > 1 && !isPrime(n)
		}
		return adapter.ContextAndCoercion[int]{Vertex: n, Matched: matched}, true, nil
	})
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

var ones = [...]string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}

func nameOf(n int) string {
	if n < 0 || n > 9 {
		return ""
	}
	return ones[n]
}
