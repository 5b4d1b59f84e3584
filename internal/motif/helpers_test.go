package motif

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/persistorai/motif/internal/graph"
)

// path builds a graph with edges between consecutive ids.
func path(directed bool, ids ...string) *graph.Graph {
	g := graph.New(directed)
	for i := 0; i+1 < len(ids); i++ {
		g.AddEdge(ids[i], ids[i+1], nil)
	}

	return g
}

func cycle(directed bool, ids ...string) *graph.Graph {
	return path(directed, append(ids, ids[0])...)
}

func star(n int) *graph.Graph {
	g := graph.New(false)
	for i := 1; i <= n; i++ {
		g.AddEdge("0", strconv.Itoa(i), nil)
	}

	return g
}

func complete(directed bool, ids ...string) *graph.Graph {
	g := graph.New(directed)
	for _, u := range ids {
		for _, v := range ids {
			if u != v {
				g.AddEdge(u, v, nil)
			}
		}
	}

	return g
}

// randomGraph builds a G(n, p) graph with ids "1".."n" and a deterministic seed.
func randomGraph(r *rand.Rand, directed bool, n int, p float64) *graph.Graph {
	g := graph.New(directed)
	for i := 1; i <= n; i++ {
		g.AddNode(strconv.Itoa(i), nil)
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			if i == j || (!directed && j < i) {
				continue
			}

			if r.Float64() < p {
				g.AddEdge(strconv.Itoa(i), strconv.Itoa(j), nil)
			}
		}
	}

	return g
}

// randomMotif builds a connected motif on k nodes: a random spanning tree plus
// a few extra edges.
func randomMotif(r *rand.Rand, directed bool, k int) *graph.Graph {
	g := graph.New(directed)
	name := func(i int) string { return fmt.Sprintf("m%d", i) }

	g.AddNode(name(0), nil)

	for i := 1; i < k; i++ {
		j := r.IntN(i)
		if directed && r.IntN(2) == 0 {
			g.AddEdge(name(i), name(j), nil)
		} else {
			g.AddEdge(name(j), name(i), nil)
		}
	}

	for extra := r.IntN(k); extra > 0; extra-- {
		u, v := r.IntN(k), r.IntN(k)
		if u != v {
			g.AddEdge(name(u), name(v), nil)
		}
	}

	return g
}

// bruteForce counts injective mappings by exhaustive enumeration.
func bruteForce(motif, host graph.Accessor, directed, iso bool) int {
	if !directed {
		motif = graph.Undirected(motif)
		host = graph.Undirected(host)
	}

	ms := motif.Nodes()
	hs := host.Nodes()
	assign := make(map[string]string, len(ms))
	used := make(map[string]bool, len(hs))
	count := 0

	var rec func(i int)
	rec = func(i int) {
		if i == len(ms) {
			for _, e := range motif.Edges() {
				if !host.HasEdge(assign[e[0]], assign[e[1]]) {
					return
				}
			}

			if iso {
				for _, u := range ms {
					for _, v := range ms {
						if !motif.HasEdge(u, v) && host.HasEdge(assign[u], assign[v]) {
							return
						}
					}
				}
			}

			count++

			return
		}

		for _, h := range hs {
			if used[h] {
				continue
			}

			used[h] = true
			assign[ms[i]] = h
			rec(i + 1)
			used[h] = false
		}
	}

	rec(0)

	return count
}

func boolPtr(b bool) *bool { return &b }
