// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package numbers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticeql/engine/interpreter/adapter"
	"github.com/latticeql/engine/ir"
	"github.com/latticeql/engine/value"
)

func drainVertices(t *testing.T, it adapter.VertexIterator[int]) []int {
	t.Helper()
	var out []int
	for {
		v, ok, err := it.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestStartingVerticesCoverWindow(t *testing.T) {
	a := New(0, 3)
	got := drainVertices(t, a.ResolveStartingVertices(context.Background(), "Number", nil, nil))
	require.Equal(t, []int{0, 1, 2, 3}, got)
}

func TestStartingVerticesHonorParameters(t *testing.T) {
	a := New(0, 10)
	params := ir.EdgeParameters{"min": value.Int64(4), "max": value.Int64(6)}
	got := drainVertices(t, a.ResolveStartingVertices(context.Background(), "Number", params, nil))
	require.Equal(t, []int{4, 5, 6}, got)
}

func TestResolvePropertyPairsInOrder(t *testing.T) {
	a := New(0, 10)
	input := adapter.FromSlice([]int{2, 5, 9})
	results := a.ResolveProperty(context.Background(), input, "Number", "value", nil)

	for _, want := range []int{2, 5, 9} {
		item, ok, err := results.Next(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, want, item.Vertex)
		require.True(t, value.Int64(int64(want)).Equal(item.Value))
	}
	_, ok, err := results.Next(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResolvePropertyFields(t *testing.T) {
	a := New(0, 10)

	item, ok, err := a.ResolveProperty(context.Background(), adapter.FromSlice([]int{7}), "Number", "isPrime", nil).Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	b, isBool := item.Value.AsBool()
	require.True(t, isBool)
	require.True(t, b)

	item, _, err = a.ResolveProperty(context.Background(), adapter.FromSlice([]int{7}), "Number", "name", nil).Next(context.Background())
	require.NoError(t, err)
	s, isString := item.Value.AsString()
	require.True(t, isString)
	require.Equal(t, "seven", s)

	item, _, err = a.ResolveProperty(context.Background(), adapter.FromSlice([]int{7}), "Number", "unknown", nil).Next(context.Background())
	require.NoError(t, err)
	require.True(t, item.Value.IsNull())
}

func TestNeighborsRespectWindowEdges(t *testing.T) {
	a := New(0, 5)

	item, ok, err := a.ResolveNeighbors(context.Background(), adapter.FromSlice([]int{0}), "Number", "predecessor", nil, nil).Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, drainVertices(t, item.Neighbors))

	item, _, err = a.ResolveNeighbors(context.Background(), adapter.FromSlice([]int{3}), "Number", "successor", nil, nil).Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{4}, drainVertices(t, item.Neighbors))

	item, _, err = a.ResolveNeighbors(context.Background(), adapter.FromSlice([]int{5}), "Number", "successor", nil, nil).Next(context.Background())
	require.NoError(t, err)
	require.Empty(t, drainVertices(t, item.Neighbors))
}

func TestCoercion(t *testing.T) {
	a := New(0, 10)
	input := adapter.FromSlice([]int{2, 4, 1})
	results := a.ResolveCoercion(context.Background(), input, "Number", "Prime", nil)

	wants := []bool{true, false, false}
	for i, want := range wants {
		item, ok, err := results.Next(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, want, item.Matched, "input %d", i)
	}

	item, ok, err := a.ResolveCoercion(context.Background(), adapter.FromSlice([]int{9}), "Number", "Composite", nil).Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, item.Matched)
}
