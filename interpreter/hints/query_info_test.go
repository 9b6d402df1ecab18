// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hints

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticeql/engine/ir"
	"github.com/latticeql/engine/ir/indexed"
	"github.com/latticeql/engine/value"
)

// hintQuery builds:
//
//	v0 (Number, value = $wanted, value tagged) --e0 successor--> v1
//	v0 --e1 successor @optional--> v2 (value < %tag-from-v0)
//	v0 --e2 predecessor @fold--> v3
//
// e0 and e1 share an edge name so first-edge lookups have a duplicate
// to disambiguate.
func hintQuery(t *testing.T) *indexed.Query {
	t.Helper()
	q := ir.NewQuery(0)
	q.AddVertex(q.RootComponent, &ir.Vertex{
		Vid: 0, TypeName: "Number",
		Filters: []ir.Operation{
			ir.Equals("value", ir.Variable("wanted")),
			ir.IsNotNull("value"),
		},
		Tags: []ir.Tag{{Name: "t", FieldName: "value"}},
	})
	q.AddVertex(q.RootComponent, &ir.Vertex{Vid: 1, TypeName: "Number"})
	q.AddVertex(q.RootComponent, &ir.Vertex{
		Vid: 2, TypeName: "Number",
		Filters: []ir.Operation{
			ir.Cmp(ir.OpLessThan, "value", ir.TagArgument(ir.FieldRef{VertexID: 0, FieldName: "value"})),
			ir.Equals("value", ir.TagArgument(ir.FieldRef{VertexID: 0, FieldName: "value"})),
		},
	})
	q.AddEdge(q.RootComponent, &ir.Edge{Eid: 0, FromVid: 0, ToVid: 1, EdgeName: "successor"})
	q.AddEdge(q.RootComponent, &ir.Edge{Eid: 1, FromVid: 0, ToVid: 2, EdgeName: "successor", Optional: true})

	foldComponent := ir.NewQueryComponent(3)
	q.AddVertex(foldComponent, &ir.Vertex{Vid: 3, TypeName: "Number"})
	q.AddFold(q.RootComponent, &ir.Fold{
		Eid: 2, FromVid: 0, ToVid: 3, EdgeName: "predecessor", Component: foldComponent,
	})

	idx, err := indexed.Build(q)
	require.NoError(t, err)
	return idx
}

func TestStaticFieldValueFromEqualsFilter(t *testing.T) {
	idx := hintQuery(t)
	args := map[string]value.Value{"wanted": value.Int64(7)}

	candidate, ok := NewQueryInfo(idx, args, 0, nil).Here().StaticFieldValue("value")
	require.True(t, ok)
	single, ok := candidate.AsSingle()
	require.True(t, ok)
	require.True(t, value.Int64(7).Equal(single))

	_, ok = NewQueryInfo(idx, args, 0, nil).Here().StaticFieldValue("name")
	require.False(t, ok)
}

func TestStaticFieldValueIsNullConflictIsImpossible(t *testing.T) {
	q := ir.NewQuery(0)
	q.AddVertex(q.RootComponent, &ir.Vertex{
		Vid: 0, TypeName: "Number",
		Filters: []ir.Operation{ir.IsNull("value"), ir.IsNotNull("value")},
	})
	idx, err := indexed.Build(q)
	require.NoError(t, err)

	candidate, ok := NewQueryInfo(idx, nil, 0, nil).Here().StaticFieldValue("value")
	require.True(t, ok)
	require.Equal(t, Impossible, candidate.Kind())
}

func TestStaticFieldValueIsNullAlone(t *testing.T) {
	q := ir.NewQuery(0)
	q.AddVertex(q.RootComponent, &ir.Vertex{
		Vid: 0, TypeName: "Number",
		Filters: []ir.Operation{ir.IsNull("value")},
	})
	idx, err := indexed.Build(q)
	require.NoError(t, err)

	candidate, ok := NewQueryInfo(idx, nil, 0, nil).Here().StaticFieldValue("value")
	require.True(t, ok)
	single, ok := candidate.AsSingle()
	require.True(t, ok)
	require.True(t, single.IsNull())
}

func TestStaticFieldRangeIntersectsFilters(t *testing.T) {
	q := ir.NewQuery(0)
	q.AddVertex(q.RootComponent, &ir.Vertex{
		Vid: 0, TypeName: "Number",
		Filters: []ir.Operation{
			ir.Cmp(ir.OpGreaterThanOrEqual, "value", ir.Variable("min")),
			ir.Cmp(ir.OpGreaterThan, "value", ir.Variable("min")),
			ir.Cmp(ir.OpLessThan, "value", ir.Variable("max")),
		},
	})
	idx, err := indexed.Build(q)
	require.NoError(t, err)

	args := map[string]value.Value{"min": value.Int64(2), "max": value.Int64(9)}
	rng, ok := NewQueryInfo(idx, args, 0, nil).Here().StaticFieldRange("value")
	require.True(t, ok)
	// The strict > wins over >= at the same bound value.
	require.False(t, rng.Start.Inclusive)
	require.True(t, value.Int64(2).Equal(rng.Start.Value))
	require.False(t, rng.End.Inclusive)
	require.True(t, value.Int64(9).Equal(rng.End.Value))
}

func TestFirstEdgeReturnsFirstByInsertionOrder(t *testing.T) {
	idx := hintQuery(t)
	info := NewQueryInfo(idx, nil, 0, nil)

	// Two edges named "successor": lookup returns eid 0, not eid 1.
	edge, ok := info.Here().FirstEdge("successor")
	require.True(t, ok)
	require.Equal(t, ir.Eid(0), edge.Eid())
	require.False(t, edge.Optional())
	require.False(t, edge.Folded())

	required, ok := info.Here().FirstRequiredEdge("successor")
	require.True(t, ok)
	require.Equal(t, ir.Eid(0), required.Eid())

	fold, ok := info.Here().FirstEdge("predecessor")
	require.True(t, ok)
	require.True(t, fold.Folded())
	require.Equal(t, ir.Eid(2), fold.Eid())

	_, ok = info.Here().FirstEdge("sibling")
	require.False(t, ok)
}

func TestDestinationChainsIntoDownstreamFilters(t *testing.T) {
	idx := hintQuery(t)
	args := map[string]value.Value{"wanted": value.Int64(7)}
	info := NewQueryInfo(idx, args, 0, nil)

	edge, ok := info.Here().FirstEdge("successor")
	require.True(t, ok)
	dest := edge.Destination()
	v, ok := dest.CurrentVertex()
	require.True(t, ok)
	require.Equal(t, ir.Vid(1), v.Vid)
}

func TestCrossingEidDestination(t *testing.T) {
	idx := hintQuery(t)
	eid := ir.Eid(1)
	info := NewQueryInfo(idx, nil, 0, &eid)

	dest := info.Destination()
	require.NotNil(t, dest)
	v, ok := dest.CurrentVertex()
	require.True(t, ok)
	require.Equal(t, ir.Vid(2), v.Vid)

	noEdge := NewQueryInfo(idx, nil, 0, nil)
	require.Nil(t, noEdge.Destination())
}

func TestCoercedToType(t *testing.T) {
	q := ir.NewQuery(0)
	q.AddVertex(q.RootComponent, &ir.Vertex{
		Vid: 0, TypeName: "Prime", CoercedFromType: "Number",
	})
	idx, err := indexed.Build(q)
	require.NoError(t, err)

	narrowed, ok := NewQueryInfo(idx, nil, 0, nil).Here().CoercedToType()
	require.True(t, ok)
	require.Equal(t, "Prime", narrowed)

	plain := hintQuery(t)
	_, ok = NewQueryInfo(plain, nil, 0, nil).Here().CoercedToType()
	require.False(t, ok)
}

func TestDynamicFieldValueFindsTagFilter(t *testing.T) {
	idx := hintQuery(t)
	info := NewQueryInfo(idx, nil, 2, nil)

	dyn, ok := info.Here().DynamicFieldValue("value")
	require.True(t, ok)
	require.Equal(t, ir.FieldRef{VertexID: 0, FieldName: "value"}, dyn.Source)
	require.False(t, dyn.IsMultiple)

	_, ok = info.Here().DynamicFieldValue("name")
	require.False(t, ok)
}

// A tag bound later in query order than the neighboring scope's
// starting vertex is not resolvable yet, so the hint stays silent.
func TestDynamicFieldValueEligibilityByQueryOrder(t *testing.T) {
	q := ir.NewQuery(0)
	q.AddVertex(q.RootComponent, &ir.Vertex{Vid: 0, TypeName: "Number"})
	q.AddVertex(q.RootComponent, &ir.Vertex{
		Vid: 1, TypeName: "Number",
		// Tagged by a vertex later in query order than vid 0, where
		// the neighboring scope starts.
		Filters: []ir.Operation{
			ir.Equals("value", ir.TagArgument(ir.FieldRef{VertexID: 2, FieldName: "value"})),
		},
	})
	q.AddVertex(q.RootComponent, &ir.Vertex{
		Vid: 2, TypeName: "Number",
		Tags: []ir.Tag{{Name: "late", FieldName: "value"}},
	})
	q.AddEdge(q.RootComponent, &ir.Edge{Eid: 0, FromVid: 0, ToVid: 1, EdgeName: "successor"})
	q.AddEdge(q.RootComponent, &ir.Edge{Eid: 1, FromVid: 0, ToVid: 2, EdgeName: "predecessor"})
	idx, err := indexed.Build(q)
	require.NoError(t, err)

	edge, ok := NewQueryInfo(idx, nil, 0, nil).Here().FirstEdge("successor")
	require.True(t, ok)
	_, ok = edge.Destination().DynamicFieldValue("value")
	require.False(t, ok)
}
