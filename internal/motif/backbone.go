package motif

// Mapping assigns motif node ids to host node ids.
type Mapping map[string]string

// Backbone is a partial mapping indexed by motif node position. Backbones are
// immutable once built: extending one copies it.
type Backbone struct {
	hosts  []string
	mapped []bool
	size   int
}

func newBackbone(n int) Backbone {
	return Backbone{
		hosts:  make([]string, n),
		mapped: make([]bool, n),
	}
}

// Len returns the number of assigned motif nodes.
func (b Backbone) Len() int { return b.size }

// Complete reports whether every motif node is assigned.
func (b Backbone) Complete() bool { return b.size == len(b.hosts) }

func (b Backbone) has(i int) bool { return b.mapped[i] }

func (b Backbone) host(i int) string { return b.hosts[i] }

// extend returns a copy of b with motif node i assigned to h.
func (b Backbone) extend(i int, h string) Backbone {
	next := Backbone{
		hosts:  make([]string, len(b.hosts)),
		mapped: make([]bool, len(b.mapped)),
		size:   b.size + 1,
	}
	copy(next.hosts, b.hosts)
	copy(next.mapped, b.mapped)
	next.hosts[i] = h
	next.mapped[i] = true

	return next
}

// used returns the set of host ids already taken by b.
func (b Backbone) used() map[string]struct{} {
	out := make(map[string]struct{}, b.size)

	for i, ok := range b.mapped {
		if ok {
			out[b.hosts[i]] = struct{}{}
		}
	}

	return out
}

func (b Backbone) mapping(ids []string) Mapping {
	out := make(Mapping, b.size)

	for i, ok := range b.mapped {
		if ok {
			out[ids[i]] = b.hosts[i]
		}
	}

	return out
}
