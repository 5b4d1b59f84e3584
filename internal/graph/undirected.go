package graph

import "sort"

// Undirected returns an undirected view of a. Undirected accessors are
// returned unchanged; directed ones are wrapped so that neighbors are the
// union of successors and predecessors and an edge exists between u and v if
// either orientation exists in a.
func Undirected(a Accessor) Accessor {
	if !a.Directed() {
		return a
	}

	return undirectedView{a}
}

type undirectedView struct {
	Accessor
}

func (u undirectedView) Directed() bool { return false }

func (u undirectedView) Edges() [][2]string {
	seen := make(map[[2]string]bool)
	out := make([][2]string, 0)

	for _, e := range u.Accessor.Edges() {
		key := e
		if key[1] < key[0] {
			key[0], key[1] = key[1], key[0]
		}

		if seen[key] {
			continue
		}

		seen[key] = true
		out = append(out, key)
	}

	return out
}

// Degree counts a self-loop twice, matching Graph.Degree on undirected
// graphs.
func (u undirectedView) Degree(id string) int {
	d := len(u.neighbors(id))
	if u.Accessor.HasEdge(id, id) {
		d++
	}

	return d
}

func (u undirectedView) Successors(id string) []string {
	return u.neighbors(id)
}

func (u undirectedView) Predecessors(id string) []string {
	return u.neighbors(id)
}

func (u undirectedView) HasEdge(a, b string) bool {
	return u.Accessor.HasEdge(a, b) || u.Accessor.HasEdge(b, a)
}

// EdgeAttributes prefers the a→b orientation and falls back to b→a.
func (u undirectedView) EdgeAttributes(a, b string) map[string]any {
	if u.Accessor.HasEdge(a, b) {
		return u.Accessor.EdgeAttributes(a, b)
	}

	return u.Accessor.EdgeAttributes(b, a)
}

func (u undirectedView) neighbors(id string) []string {
	set := make(map[string]struct{})
	for _, v := range u.Accessor.Successors(id) {
		set[v] = struct{}{}
	}

	for _, v := range u.Accessor.Predecessors(id) {
		set[v] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}

	sort.Strings(out)

	return out
}

// IsConnected reports whether a is non-empty and weakly connected.
func IsConnected(a Accessor) bool {
	nodes := a.Nodes()
	if len(nodes) == 0 {
		return false
	}

	seen := map[string]bool{nodes[0]: true}
	frontier := []string{nodes[0]}

	for len(frontier) > 0 {
		cur := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		for _, next := range [][]string{a.Successors(cur), a.Predecessors(cur)} {
			for _, v := range next {
				if !seen[v] {
					seen[v] = true
					frontier = append(frontier, v)
				}
			}
		}
	}

	return len(seen) == len(nodes)
}
