// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package indexed wraps an ir.Query into the immutable, fully
// cross-referenced form the interpreter actually runs: every vertex
// and edge reachable by id, with no further tree-walking required.
// IndexedQuery is built once per query and never mutated afterward.
package indexed

import (
	"fmt"

	"github.com/latticeql/engine/internal/set"
	"github.com/latticeql/engine/ir"
)

// EdgeKind discriminates what an Eid refers to, so the interpreter
// can dispatch without carrying a separate type tag alongside every
// Eid it passes around.
type EdgeKind uint8

const (
	EdgeKindRegular EdgeKind = iota
	EdgeKindFold
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeKindRegular:
		return "regular"
	case EdgeKindFold:
		return "fold"
	default:
		return fmt.Sprintf("EdgeKind(%d)", uint8(k))
	}
}

// Query is the indexed, immutable view of an ir.Query that the
// interpreter consumes. It never constructs IR of its own; it's a
// read-only index over one.
type Query struct {
	inner *ir.Query

	// Eids records, for every Eid reachable from the root, whether it
	// names a regular edge or a fold, so interpreter code can look up
	// the right table without guessing.
	Eids map[ir.Eid]EdgeKind
}

// Build walks q and produces its indexed form. Build does not mutate
// q; the returned Query shares q's underlying vertex/edge/fold maps,
// relying on the frontend's guarantee that an ir.Query is never
// mutated once handed to the interpreter.
func Build(q *ir.Query) (*Query, error) {
	if q == nil {
		return nil, fmt.Errorf("indexed: cannot build from a nil query")
	}
	if q.RootComponent == nil {
		return nil, fmt.Errorf("indexed: query has no root component")
	}

	seen := make(set.Set[ir.Eid], len(q.Edges)+len(q.Folds))
	eids := make(map[ir.Eid]EdgeKind, len(q.Edges)+len(q.Folds))
	for eid := range q.Edges {
		seen.Add(eid)
		eids[eid] = EdgeKindRegular
	}
	for eid := range q.Folds {
		if seen.Contains(eid) {
			return nil, fmt.Errorf("indexed: eid %s used by both an edge and a fold", eid)
		}
		seen.Add(eid)
		eids[eid] = EdgeKindFold
	}

	return &Query{inner: q, Eids: eids}, nil
}

// RootVid returns the Vid of the query's starting vertex.
func (q *Query) RootVid() ir.Vid { return q.inner.RootComponent.RootVid }

// Vertex looks up a vertex by id.
func (q *Query) Vertex(vid ir.Vid) (*ir.Vertex, bool) { return q.inner.Vertex(vid) }

// Edge looks up a regular edge by id.
func (q *Query) Edge(eid ir.Eid) (*ir.Edge, bool) {
	e, ok := q.inner.Edges[eid]
	return e, ok
}

// Fold looks up a fold by id.
func (q *Query) Fold(eid ir.Eid) (*ir.Fold, bool) {
	f, ok := q.inner.Folds[eid]
	return f, ok
}

// ComponentOf returns the component that owns vid.
func (q *Query) ComponentOf(vid ir.Vid) (*ir.QueryComponent, bool) { return q.inner.ComponentOf(vid) }

// EdgesFrom returns every regular edge whose source is vid, in Eid
// order (which is also query order, since Eids are assigned in the
// same depth-first preorder as Vids).
func (q *Query) EdgesFrom(vid ir.Vid) []*ir.Edge {
	component, ok := q.inner.ComponentOf(vid)
	if !ok {
		return nil
	}
	var out []*ir.Edge
	for _, e := range component.Edges {
		if e.FromVid == vid {
			out = append(out, e)
		}
	}
	sortEdgesByEid(out)
	return out
}

// FoldsFrom returns every fold whose source is vid, in Eid order.
func (q *Query) FoldsFrom(vid ir.Vid) []*ir.Fold {
	component, ok := q.inner.ComponentOf(vid)
	if !ok {
		return nil
	}
	var out []*ir.Fold
	for _, f := range component.Folds {
		if f.FromVid == vid {
			out = append(out, f)
		}
	}
	sortFoldsByEid(out)
	return out
}

func sortEdgesByEid(edges []*ir.Edge) {
	for i := 1; i < len(edges); i++ {
		for j := i; j > 0 && edges[j].Eid < edges[j-1].Eid; j-- {
			edges[j], edges[j-1] = edges[j-1], edges[j]
		}
	}
}

func sortFoldsByEid(folds []*ir.Fold) {
	for i := 1; i < len(folds); i++ {
		for j := i; j > 0 && folds[j].Eid < folds[j-1].Eid; j-- {
			folds[j], folds[j-1] = folds[j-1], folds[j]
		}
	}
}
