// Package graph defines the read-only graph view consumed by the motif
// engine and an in-memory implementation of it.
package graph

import (
	"fmt"
	"sort"
)

// Accessor is a read-only view of a graph.
//
// For undirected graphs Successors and Predecessors both return the
// adjacency set and HasEdge is symmetric.
type Accessor interface {
	Directed() bool
	Nodes() []string
	Edges() [][2]string
	HasNode(id string) bool
	Degree(id string) int
	Successors(id string) []string
	Predecessors(id string) []string
	NodeAttributes(id string) map[string]any
	EdgeAttributes(u, v string) map[string]any
	HasEdge(u, v string) bool
}

// Compile-time check: *Graph must satisfy Accessor.
var _ Accessor = (*Graph)(nil)

// Graph is an in-memory attributed graph. It is safe for concurrent reads
// once construction is finished.
type Graph struct {
	directed bool
	order    []string
	nodes    map[string]map[string]any
	succ     map[string]map[string]map[string]any
	pred     map[string]map[string]map[string]any
	edges    int
}

// New creates an empty graph.
func New(directed bool) *Graph {
	return &Graph{
		directed: directed,
		nodes:    make(map[string]map[string]any),
		succ:     make(map[string]map[string]map[string]any),
		pred:     make(map[string]map[string]map[string]any),
	}
}

// AddNode adds id, merging attrs into any attributes it already has.
func (g *Graph) AddNode(id string, attrs map[string]any) {
	cur, ok := g.nodes[id]
	if !ok {
		cur = make(map[string]any, len(attrs))
		g.nodes[id] = cur
		g.succ[id] = make(map[string]map[string]any)
		g.pred[id] = make(map[string]map[string]any)
		g.order = append(g.order, id)
	}

	for k, v := range attrs {
		cur[k] = v
	}
}

// AddEdge adds the edge u→v (or u–v for undirected graphs), creating missing
// endpoints. Adding an existing edge merges attributes.
func (g *Graph) AddEdge(u, v string, attrs map[string]any) {
	g.AddNode(u, nil)
	g.AddNode(v, nil)

	cur, ok := g.succ[u][v]
	if !ok {
		cur = make(map[string]any, len(attrs))
		g.succ[u][v] = cur
		g.edges++

		if g.directed {
			g.pred[v][u] = cur
		} else {
			g.succ[v][u] = cur
		}
	}

	for k, val := range attrs {
		cur[k] = val
	}
}

// Directed reports whether edges are ordered pairs.
func (g *Graph) Directed() bool { return g.directed }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.order) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Nodes returns node ids in sorted order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	sort.Strings(out)

	return out
}

// Edges returns every edge once. Undirected edges are reported with the
// smaller id first.
func (g *Graph) Edges() [][2]string {
	out := make([][2]string, 0, g.edges)

	for _, u := range g.Nodes() {
		for _, v := range sortedKeys(g.succ[u]) {
			if !g.directed && v < u {
				continue
			}

			out = append(out, [2]string{u, v})
		}
	}

	return out
}

// HasNode reports whether id is in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Degree returns in+out degree for directed graphs and the adjacency size
// for undirected ones. A self-loop counts twice, matching the usual
// convention.
func (g *Graph) Degree(id string) int {
	d := len(g.succ[id])
	if g.directed {
		d += len(g.pred[id])
	} else if _, loop := g.succ[id][id]; loop {
		d++
	}

	return d
}

// Successors returns the out-neighbors of id (neighbors, if undirected).
func (g *Graph) Successors(id string) []string {
	return sortedKeys(g.succ[id])
}

// Predecessors returns the in-neighbors of id (neighbors, if undirected).
func (g *Graph) Predecessors(id string) []string {
	if !g.directed {
		return sortedKeys(g.succ[id])
	}

	return sortedKeys(g.pred[id])
}

// NodeAttributes returns the attribute map of id. The map must not be
// modified by callers.
func (g *Graph) NodeAttributes(id string) map[string]any {
	return g.nodes[id]
}

// EdgeAttributes returns the attribute map of edge u→v, or nil if there is
// no such edge.
func (g *Graph) EdgeAttributes(u, v string) map[string]any {
	return g.succ[u][v]
}

// HasEdge reports whether the edge u→v exists.
func (g *Graph) HasEdge(u, v string) bool {
	_, ok := g.succ[u][v]
	return ok
}

// String implements fmt.Stringer.
func (g *Graph) String() string {
	kind := "undirected"
	if g.directed {
		kind = "directed"
	}

	return fmt.Sprintf("%s graph (%d nodes, %d edges)", kind, len(g.order), g.edges)
}

func sortedKeys(m map[string]map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	sort.Strings(out)

	return out
}
