// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package indexed

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticeql/engine/ir"
)

func buildSampleQuery() *ir.Query {
	q := ir.NewQuery(0)
	q.AddVertex(q.RootComponent, &ir.Vertex{Vid: 0, TypeName: "Number"})

	successorComponent := ir.NewQueryComponent(1)
	q.AddVertex(successorComponent, &ir.Vertex{Vid: 1, TypeName: "Number"})
	q.AddEdge(q.RootComponent, &ir.Edge{
		Eid: 0, FromVid: 0, ToVid: 1, EdgeName: "successor", ToComponent: successorComponent,
	})

	predecessorComponent := ir.NewQueryComponent(2)
	q.AddVertex(predecessorComponent, &ir.Vertex{Vid: 2, TypeName: "Number"})
	q.AddFold(q.RootComponent, &ir.Fold{
		Eid: 1, FromVid: 0, ToVid: 2, EdgeName: "predecessor", Component: predecessorComponent,
	})

	return q
}

func TestBuildIndexesEdgeAndFoldKinds(t *testing.T) {
	indexed, err := Build(buildSampleQuery())
	require.NoError(t, err)

	require.Equal(t, EdgeKindRegular, indexed.Eids[ir.Eid(0)])
	require.Equal(t, EdgeKindFold, indexed.Eids[ir.Eid(1)])
	require.Equal(t, ir.Vid(0), indexed.RootVid())
}

func TestBuildRejectsNilQuery(t *testing.T) {
	_, err := Build(nil)
	require.Error(t, err)
}

func TestBuildRejectsDuplicateEid(t *testing.T) {
	q := buildSampleQuery()
	q.Folds[ir.Eid(0)] = q.Folds[ir.Eid(1)]
	_, err := Build(q)
	require.Error(t, err)
}

func TestEdgesFromAndFoldsFromOrderByEid(t *testing.T) {
	q := buildSampleQuery()
	indexed, err := Build(q)
	require.NoError(t, err)

	edges := indexed.EdgesFrom(0)
	require.Len(t, edges, 1)
	require.Equal(t, ir.Eid(0), edges[0].Eid)

	folds := indexed.FoldsFrom(0)
	require.Len(t, folds, 1)
	require.Equal(t, ir.Eid(1), folds[0].Eid)
}
