package motif

import "fmt"

// requiredEdge is a motif edge between the node being placed and an already
// mapped node. out means the edge leaves the node being placed.
type requiredEdge struct {
	other int
	out   bool
}

// expand returns every valid one-node extension of b. Partial results are
// returned as-is; complete ones only if they pass the final edge checks.
func (s *Session) expand(b Backbone) ([]Backbone, error) {
	s.expanded.Add(1)

	if b.size == 0 {
		return s.starts(), nil
	}

	next, err := s.nextNode(b)
	if err != nil {
		return nil, err
	}

	required := s.requiredEdges(next, b)
	if len(required) == 0 {
		return nil, fmt.Errorf("%w: motif node %q has no edge to the backbone", ErrStructural, s.ids[next])
	}

	used := b.used()
	out := make([]Backbone, 0)

	for _, c := range s.candidateHosts(b, required) {
		if _, taken := used[c]; taken {
			continue
		}

		if !s.nodeMatch(next, c) || !s.requiredMatch(next, c, b, required) {
			continue
		}

		ext := b.extend(next, c)
		if ext.Complete() && !s.accept(ext) {
			s.discarded.Add(1)

			continue
		}

		out = append(out, ext)
	}

	return out, nil
}

// starts seeds singleton backbones for the start node.
func (s *Session) starts() []Backbone {
	first := s.startNode()
	empty := newBackbone(len(s.ids))
	out := make([]Backbone, 0)

	for _, h := range s.host.Nodes() {
		if !s.nodeMatch(first, h) {
			continue
		}

		b := empty.extend(first, h)
		if b.Complete() && !s.accept(b) {
			s.discarded.Add(1)

			continue
		}

		out = append(out, b)
	}

	return out
}

func (s *Session) requiredEdges(next int, b Backbone) []requiredEdge {
	var out []requiredEdge

	for _, j := range s.out[next] {
		if j != next && b.has(j) {
			out = append(out, requiredEdge{other: j, out: true})
		}
	}

	for _, j := range s.in[next] {
		if j != next && b.has(j) {
			out = append(out, requiredEdge{other: j, out: false})
		}
	}

	return out
}

// candidateHosts returns host nodes adjacent to the images of every required
// edge's mapped endpoint, in the right direction. The smallest neighborhood
// seeds the intersection; the rest are checked edge by edge.
func (s *Session) candidateHosts(b Backbone, required []requiredEdge) []string {
	seed := 0
	for k := 1; k < len(required); k++ {
		if s.host.Degree(b.host(required[k].other)) < s.host.Degree(b.host(required[seed].other)) {
			seed = k
		}
	}

	var pool []string

	anchor := b.host(required[seed].other)
	if required[seed].out && s.directed {
		// motif edge next→other: the candidate must point at the anchor.
		pool = s.host.Predecessors(anchor)
	} else {
		pool = s.host.Successors(anchor)
	}

	if len(required) == 1 {
		return pool
	}

	out := pool[:0:0]

	for _, c := range pool {
		ok := true

		for k, r := range required {
			if k == seed {
				continue
			}

			if !s.hostEdge(c, b.host(r.other), r.out) {
				ok = false

				break
			}
		}

		if ok {
			out = append(out, c)
		}
	}

	return out
}

// hostEdge reports whether the host has the edge between candidate c and
// anchor a in the direction given by out.
func (s *Session) hostEdge(c, a string, out bool) bool {
	if out {
		return s.host.HasEdge(c, a)
	}

	return s.host.HasEdge(a, c)
}

// requiredMatch checks edge attributes of every required edge for candidate c.
func (s *Session) requiredMatch(next int, c string, b Backbone, required []requiredEdge) bool {
	for _, r := range required {
		if r.out {
			if !s.edgeMatch(next, r.other, c, b.host(r.other)) {
				return false
			}
		} else if !s.edgeMatch(r.other, next, b.host(r.other), c) {
			return false
		}
	}

	return true
}

func (s *Session) nodeMatch(i int, h string) bool {
	return s.matcher.NodeAttrMatch(s.ids[i], h) && s.matcher.NodeStructuralMatch(s.ids[i], h)
}

// edgeMatch checks that the host has edge hu→hv standing in for motif edge
// u→v, with matching attributes.
func (s *Session) edgeMatch(u, v int, hu, hv string) bool {
	if !s.host.HasEdge(hu, hv) {
		return false
	}

	return s.matcher.EdgeAttrMatch([2]string{s.ids[u], s.ids[v]}, [2]string{hu, hv})
}

// accept validates a complete backbone against every motif edge and, in
// isomorphism mode, against extra induced host edges.
func (s *Session) accept(b Backbone) bool {
	for _, e := range s.edges {
		if !s.edgeMatch(e[0], e[1], b.host(e[0]), b.host(e[1])) {
			return false
		}
	}

	if s.iso {
		return s.noExtraEdges(b)
	}

	return true
}

// noExtraEdges reports whether every host edge among the mapped nodes of b
// corresponds to a motif edge. Self-pairs are included so that host
// self-loops are rejected when the motif has none.
func (s *Session) noExtraEdges(b Backbone) bool {
	for i := range s.ids {
		if !b.has(i) {
			continue
		}

		for j := range s.ids {
			if !b.has(j) {
				continue
			}

			if !s.motif.HasEdge(s.ids[i], s.ids[j]) && s.host.HasEdge(b.host(i), b.host(j)) {
				return false
			}
		}
	}

	return true
}
