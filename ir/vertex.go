// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ir

// Output names a value this vertex contributes to the query's output
// row, under the given output key.
type Output struct {
	Name      string
	FieldName string
}

// Tag names a local field bound as a @tag, available to @filter
// operations on later vertices in query order.
type Tag struct {
	Name      string
	FieldName string
}

// Vertex is a single IR vertex: a type, the coercions/filters applied
// to it, and the outputs/tags it contributes.
type Vertex struct {
	Vid Vid

	// TypeName is the vertex's static type, as produced by the (out of
	// scope) frontend. It may be narrower than the schema type the edge
	// leading here declares, if a type coercion already happened.
	TypeName string

	// CoercedFromType names the broader type the vertex was resolved
	// as before a `... on SomeType` coercion narrowed it to TypeName.
	// Filters and outputs only run on vertices the adapter confirms as
	// members of TypeName. Empty when no coercion is required.
	CoercedFromType string

	Filters []Operation
	Outputs []Output
	Tags    []Tag
}

// Recursive bounds a @recurse edge's breadth-first expansion. Depth 0
// always includes the source vertex itself.
type Recursive struct {
	Depth uint32
}

// Edge is a regular (non-fold) IR edge: a traversal from one vertex to
// a neighboring one, optionally marked @optional and/or @recurse.
type Edge struct {
	Eid Eid

	FromVid Vid
	ToVid   Vid

	EdgeName   string
	Parameters EdgeParameters

	Optional  bool
	Recursive *Recursive

	// ToComponent holds the sub-query rooted at ToVid: its own
	// vertices, edges, and folds, scoped as a nested component of the
	// parent query.
	ToComponent *QueryComponent
}

// Fold is an IR fold: an eagerly-evaluated sub-component whose entire
// result set is aggregated into a single List value per row of the
// enclosing component.
type Fold struct {
	Eid Eid

	FromVid Vid
	ToVid   Vid

	EdgeName   string
	Parameters EdgeParameters

	// Recursive, when set, expands the folded edge breadth-first up to
	// the given depth before aggregating, exactly as a regular
	// @recurse edge would before each hop's results are folded.
	Recursive *Recursive

	Component *QueryComponent

	// PostFilters apply to aggregates computed over the fold's
	// results (e.g. `@filter` on `_x_count`), evaluated once the fold's
	// component has been fully drained.
	PostFilters []Operation

	// Outputs from inside the folded component that should appear as
	// List-valued outputs on the enclosing row, keyed by the folded
	// output name.
	Outputs []Output
}

// QueryComponent is a connected subgraph of the query: one root
// vertex plus the regular edges and folds leading out of vertices
// within the component. @fold and the top-level query each define
// their own component.
type QueryComponent struct {
	RootVid Vid

	Vertices map[Vid]*Vertex
	Edges    map[Eid]*Edge
	Folds    map[Eid]*Fold
}

// NewQueryComponent returns an empty component rooted at root.
func NewQueryComponent(root Vid) *QueryComponent {
	return &QueryComponent{
		RootVid:  root,
		Vertices: make(map[Vid]*Vertex),
		Edges:    make(map[Eid]*Edge),
		Folds:    make(map[Eid]*Fold),
	}
}
