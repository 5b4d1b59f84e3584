package motif

import (
	"reflect"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/persistorai/motif/internal/graph"
)

// DefaultCacheSize is the predicate cache capacity used when Options.CacheSize is zero.
const DefaultCacheSize = 1 << 16

// Matcher decides whether a host node or edge may stand in for a motif node
// or edge. Implementations must be pure and safe for concurrent use.
type Matcher interface {
	NodeAttrMatch(motifNode, hostNode string) bool
	NodeStructuralMatch(motifNode, hostNode string) bool
	EdgeAttrMatch(motifEdge, hostEdge [2]string) bool
}

// DefaultMatcher requires every motif attribute to be present on the host
// with an equal value, and the host degree to be at least the motif degree.
type DefaultMatcher struct {
	motif graph.Accessor
	host  graph.Accessor
}

// NewDefaultMatcher creates a DefaultMatcher over the given graphs.
func NewDefaultMatcher(motif, host graph.Accessor) *DefaultMatcher {
	return &DefaultMatcher{motif: motif, host: host}
}

// NodeAttrMatch implements Matcher.
func (m *DefaultMatcher) NodeAttrMatch(motifNode, hostNode string) bool {
	return attrsSubset(m.motif.NodeAttributes(motifNode), m.host.NodeAttributes(hostNode))
}

// NodeStructuralMatch implements Matcher.
func (m *DefaultMatcher) NodeStructuralMatch(motifNode, hostNode string) bool {
	return m.host.Degree(hostNode) >= m.motif.Degree(motifNode)
}

// EdgeAttrMatch implements Matcher. A host edge carrying a "relations" list
// matches a motif "relation" equal to any element of that list.
func (m *DefaultMatcher) EdgeAttrMatch(motifEdge, hostEdge [2]string) bool {
	want := m.motif.EdgeAttributes(motifEdge[0], motifEdge[1])
	have := m.host.EdgeAttributes(hostEdge[0], hostEdge[1])

	rel, hasRel := want["relation"]
	rels, hasList := have["relations"].([]any)

	if !hasRel || !hasList {
		return attrsSubset(want, have)
	}

	found := false

	for _, r := range rels {
		if valuesEqual(rel, r) {
			found = true

			break
		}
	}

	if !found {
		return false
	}

	for k, v := range want {
		if k == "relation" {
			continue
		}

		got, ok := have[k]
		if !ok || !valuesEqual(v, got) {
			return false
		}
	}

	return true
}

func attrsSubset(want, have map[string]any) bool {
	for k, v := range want {
		got, ok := have[k]
		if !ok || !valuesEqual(v, got) {
			return false
		}
	}

	return true
}

// valuesEqual compares attribute values. Numbers compare by value regardless
// of their Go type so that 1 from YAML equals 1.0 from JSON.
func valuesEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}

	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

type predicateKind uint8

const (
	predNodeAttr predicateKind = iota
	predNodeStructural
	predEdgeAttr
)

type predicateKey struct {
	kind   predicateKind
	motifA string
	motifB string
	hostA  string
	hostB  string
}

// CachedMatcher memoizes another Matcher. Each search session owns its own
// CachedMatcher, so entries never leak between motif/host pairings.
type CachedMatcher struct {
	inner Matcher
	cache *lru.Cache[predicateKey, bool]
}

// NewCachedMatcher wraps inner with a bounded cache of the given size.
func NewCachedMatcher(inner Matcher, size int) (*CachedMatcher, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	cache, err := lru.New[predicateKey, bool](size)
	if err != nil {
		return nil, err
	}

	return &CachedMatcher{inner: inner, cache: cache}, nil
}

// NodeAttrMatch implements Matcher.
func (c *CachedMatcher) NodeAttrMatch(motifNode, hostNode string) bool {
	key := predicateKey{kind: predNodeAttr, motifA: motifNode, hostA: hostNode}

	return c.lookup(key, func() bool { return c.inner.NodeAttrMatch(motifNode, hostNode) })
}

// NodeStructuralMatch implements Matcher.
func (c *CachedMatcher) NodeStructuralMatch(motifNode, hostNode string) bool {
	key := predicateKey{kind: predNodeStructural, motifA: motifNode, hostA: hostNode}

	return c.lookup(key, func() bool { return c.inner.NodeStructuralMatch(motifNode, hostNode) })
}

// EdgeAttrMatch implements Matcher.
func (c *CachedMatcher) EdgeAttrMatch(motifEdge, hostEdge [2]string) bool {
	key := predicateKey{
		kind:   predEdgeAttr,
		motifA: motifEdge[0],
		motifB: motifEdge[1],
		hostA:  hostEdge[0],
		hostB:  hostEdge[1],
	}

	return c.lookup(key, func() bool { return c.inner.EdgeAttrMatch(motifEdge, hostEdge) })
}

// Len returns the number of cached predicate results.
func (c *CachedMatcher) Len() int { return c.cache.Len() }

func (c *CachedMatcher) lookup(key predicateKey, eval func() bool) bool {
	if v, ok := c.cache.Get(key); ok {
		return v
	}

	v := eval()
	c.cache.Add(key, v)

	return v
}
