// Package motif finds every mapping of a small pattern graph (the motif)
// into a larger host graph that preserves motif edges and attributes.
//
// The search grows partial mappings ("backbones") one motif node at a time.
// Each step picks the unmapped motif node with the most already-mapped
// neighbors, intersects the host neighborhoods of those neighbors' images to
// get candidates, and filters them by injectivity, attributes and degree.
// Complete backbones are verified against every motif edge before they are
// reported. Isomorphism mode further rejects mappings that induce host edges
// missing from the motif.
package motif

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/persistorai/motif/internal/graph"
)

// Options tunes a search. The zero value searches for monomorphisms
// depth-first with uniform interestingness, inferring directedness from the
// motif.
type Options struct {
	// Interestingness ranks motif nodes; higher scores are expanded first
	// when the frontier ties. Missing entries score zero. Nil means uniform.
	Interestingness map[string]float64

	// Directed overrides the directedness inferred from the motif.
	Directed *bool

	// IsomorphismsOnly rejects mappings whose host nodes share an edge that
	// the motif does not have.
	IsomorphismsOnly bool

	// Hints seed the search with partial mappings. Each hint is an
	// independent origin; results are the union over hints.
	Hints []Mapping

	// Policy selects depth-first or breadth-first expansion.
	Policy Policy

	// MaxPending bounds the number of queued backbones. Zero is unbounded.
	MaxPending int

	// Profile records the queue length after every operation.
	Profile bool

	// Matcher replaces the default predicates.
	Matcher Matcher

	// CacheSize is the predicate cache capacity. Zero uses DefaultCacheSize;
	// a negative value disables caching.
	CacheSize int
}

// Stats summarizes the last run of a Session.
type Stats struct {
	Expanded     int64 `json:"expanded"`
	Emitted      int64 `json:"emitted"`
	Discarded    int64 `json:"discarded"`
	PeakPending  int   `json:"peak_pending"`
	DroppedHints int   `json:"dropped_hints"`
	QueueHistory []int `json:"queue_history,omitempty"`
}

// Session is a prepared search of one motif in one host. A Session may be
// run several times but not concurrently with itself.
type Session struct {
	motif    graph.Accessor
	host     graph.Accessor
	directed bool
	iso      bool
	matcher  Matcher

	ids      []string
	index    map[string]int
	interest []float64

	// out[i] and in[i] list motif neighbors of node i by edge direction; for
	// undirected searches only out is populated.
	out   [][]int
	in    [][]int
	adj   [][]int
	edges [][2]int

	seeds        []Backbone
	droppedHints int

	policy     Policy
	maxPending int
	profile    bool

	expanded  atomic.Int64
	emitted   atomic.Int64
	discarded atomic.Int64
	peak      int
	history   []int
}

// Prepare validates the motif and options and builds a Session.
//
// Empty or disconnected motifs fail with ErrStructural, as does a directed
// search over an undirected motif, whose edges have no orientation to
// match against. Hints naming unknown
// motif or host nodes fail with ErrInvalidHint. Hints that are merely
// inconsistent (two motif nodes on one host node, failing predicates,
// missing host edges) are dropped and seed nothing.
func Prepare(motif, host graph.Accessor, opts Options) (*Session, error) {
	directed := motif.Directed()
	if opts.Directed != nil {
		directed = *opts.Directed
	}

	if directed && !motif.Directed() {
		return nil, fmt.Errorf("%w: directed search needs a directed motif", ErrStructural)
	}

	if !directed {
		motif = graph.Undirected(motif)
		host = graph.Undirected(host)
	}

	ids := motif.Nodes()
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: motif has no nodes", ErrStructural)
	}

	if !graph.IsConnected(motif) {
		return nil, fmt.Errorf("%w: motif is not connected", ErrStructural)
	}

	s := &Session{
		motif:      motif,
		host:       host,
		directed:   directed,
		iso:        opts.IsomorphismsOnly,
		ids:        ids,
		index:      make(map[string]int, len(ids)),
		interest:   make([]float64, len(ids)),
		policy:     opts.Policy,
		maxPending: opts.MaxPending,
		profile:    opts.Profile,
	}

	for i, id := range ids {
		s.index[id] = i
		s.interest[i] = 1

		if opts.Interestingness != nil {
			s.interest[i] = opts.Interestingness[id]
		}
	}

	s.buildAdjacency()

	matcher := opts.Matcher
	if matcher == nil {
		matcher = NewDefaultMatcher(motif, host)
	}

	if opts.CacheSize >= 0 {
		cached, err := NewCachedMatcher(matcher, opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating predicate cache: %w", err)
		}

		matcher = cached
	}

	s.matcher = matcher

	if err := s.seed(opts.Hints); err != nil {
		return nil, err
	}

	return s, nil
}

// Directed reports whether the session honours edge direction.
func (s *Session) Directed() bool { return s.directed }

// MotifNodes returns the motif node ids in index order.
func (s *Session) MotifNodes() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)

	return out
}

// Stats returns counters from the most recent run.
func (s *Session) Stats() Stats {
	st := Stats{
		Expanded:     s.expanded.Load(),
		Emitted:      s.emitted.Load(),
		Discarded:    s.discarded.Load(),
		PeakPending:  s.peak,
		DroppedHints: s.droppedHints,
	}

	if s.history != nil {
		st.QueueHistory = append([]int(nil), s.history...)
	}

	return st
}

func (s *Session) buildAdjacency() {
	n := len(s.ids)
	s.out = make([][]int, n)
	s.in = make([][]int, n)
	s.adj = make([][]int, n)

	for i, id := range s.ids {
		seen := make(map[int]bool)

		for _, v := range s.motif.Successors(id) {
			j := s.index[v]
			s.out[i] = append(s.out[i], j)
			seen[j] = true
		}

		if s.directed {
			for _, v := range s.motif.Predecessors(id) {
				j := s.index[v]
				s.in[i] = append(s.in[i], j)
				seen[j] = true
			}
		}

		for j := range seen {
			if j != i {
				s.adj[i] = append(s.adj[i], j)
			}
		}

		sort.Ints(s.adj[i])
	}

	for _, e := range s.motif.Edges() {
		s.edges = append(s.edges, [2]int{s.index[e[0]], s.index[e[1]]})
	}
}

// seed turns hints into initial backbones.
func (s *Session) seed(hints []Mapping) error {
	s.seeds = nil
	s.droppedHints = 0

	if len(hints) == 0 {
		s.seeds = []Backbone{newBackbone(len(s.ids))}

		return nil
	}

	for n, hint := range hints {
		b := newBackbone(len(s.ids))
		ok := true
		taken := make(map[string]bool, len(hint))

		for _, m := range sortedMappingKeys(hint) {
			h := hint[m]

			i, known := s.index[m]
			if !known {
				return fmt.Errorf("%w: hint %d: motif node %q does not exist", ErrInvalidHint, n, m)
			}

			if !s.host.HasNode(h) {
				return fmt.Errorf("%w: hint %d: host node %q does not exist", ErrInvalidHint, n, h)
			}

			if taken[h] || !s.nodeMatch(i, h) {
				ok = false
			}

			taken[h] = true
			b = b.extend(i, h)
		}

		if ok && b.size > 0 && !s.consistent(b) {
			ok = false
		}

		if !ok {
			s.droppedHints++

			continue
		}

		s.seeds = append(s.seeds, b)
	}

	return nil
}

// consistent reports whether every motif edge between mapped nodes of b is
// present in the host, and in isomorphism mode that no extra host edges
// exist between them.
func (s *Session) consistent(b Backbone) bool {
	for _, e := range s.edges {
		if b.has(e[0]) && b.has(e[1]) && !s.edgeMatch(e[0], e[1], b.host(e[0]), b.host(e[1])) {
			return false
		}
	}

	if s.iso {
		return s.noExtraEdges(b)
	}

	return true
}

func sortedMappingKeys(m Mapping) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
