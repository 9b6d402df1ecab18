// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ir

// Query is the complete IR for a single query: its root component
// plus every nested component reachable through edges and folds,
// flattened into lookup tables keyed by Vid/Eid. Query is produced
// once, by an out-of-scope frontend, and is treated as immutable by
// everything downstream.
type Query struct {
	RootComponent *QueryComponent

	// Vertices and Edges index every vertex/edge/fold across every
	// component by id, so the interpreter never has to walk the
	// component tree to answer "what does vertex v look like".
	Vertices map[Vid]*Vertex
	Edges    map[Eid]*Edge
	Folds    map[Eid]*Fold

	// VertexComponent records which component owns each vertex, so the
	// edges and folds leaving a vertex can be found from its owning
	// component (see ComponentOf).
	VertexComponent map[Vid]*QueryComponent
}

// NewQuery constructs an empty Query rooted at root.
func NewQuery(root Vid) *Query {
	rootComponent := NewQueryComponent(root)
	return &Query{
		RootComponent:   rootComponent,
		Vertices:        make(map[Vid]*Vertex),
		Edges:           make(map[Eid]*Edge),
		Folds:           make(map[Eid]*Fold),
		VertexComponent: map[Vid]*QueryComponent{root: rootComponent},
	}
}

// AddVertex registers v as living in component, indexing it by Vid in
// both the component and the query-wide lookup table.
func (q *Query) AddVertex(component *QueryComponent, v *Vertex) {
	component.Vertices[v.Vid] = v
	q.Vertices[v.Vid] = v
	q.VertexComponent[v.Vid] = component
}

// AddEdge registers e as living in component, along with the nested
// component it leads to (if e.ToComponent is set, its vertices are
// indexed too).
func (q *Query) AddEdge(component *QueryComponent, e *Edge) {
	component.Edges[e.Eid] = e
	q.Edges[e.Eid] = e
	if e.ToComponent != nil {
		for vid, v := range e.ToComponent.Vertices {
			q.Vertices[vid] = v
			q.VertexComponent[vid] = e.ToComponent
		}
	}
}

// AddFold registers f as living in component.
func (q *Query) AddFold(component *QueryComponent, f *Fold) {
	component.Folds[f.Eid] = f
	q.Folds[f.Eid] = f
}

// Vertex looks up a vertex by id.
func (q *Query) Vertex(vid Vid) (*Vertex, bool) {
	v, ok := q.Vertices[vid]
	return v, ok
}

// ComponentOf returns the component that owns vid.
func (q *Query) ComponentOf(vid Vid) (*QueryComponent, bool) {
	c, ok := q.VertexComponent[vid]
	return c, ok
}
