package motif

import (
	"fmt"
	"strings"
)

// Policy selects the order in which pending backbones are expanded.
type Policy int

const (
	// DepthFirst expands the most recently queued backbone first. It finishes
	// nearly complete backbones early and keeps the pending set small.
	DepthFirst Policy = iota

	// BreadthFirst expands backbones in the order they were queued.
	BreadthFirst
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	switch p {
	case DepthFirst:
		return "depth"
	case BreadthFirst:
		return "breadth"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy converts "depth" or "breadth" (case-insensitive) into a Policy.
// The empty string means DepthFirst.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "depth", "depthfirst", "dfs":
		return DepthFirst, nil
	case "breadth", "breadthfirst", "bfs":
		return BreadthFirst, nil
	default:
		return DepthFirst, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Queue holds pending backbones. Implementations need not be safe for
// concurrent use; the parallel driver serializes access.
type Queue interface {
	Put(b Backbone) error
	Get() (Backbone, bool)
	Empty() bool
	Len() int
}

// Deque is a slice-backed Queue whose pop end depends on its Policy.
type Deque struct {
	policy     Policy
	items      []Backbone
	head       int
	maxPending int
	peak       int
}

// NewDeque creates a Deque. A positive maxPending bounds the number of
// pending backbones; Put fails with ErrQueueFull beyond it.
func NewDeque(policy Policy, maxPending int) *Deque {
	return &Deque{policy: policy, maxPending: maxPending}
}

// Put implements Queue.
func (d *Deque) Put(b Backbone) error {
	if d.maxPending > 0 && d.Len() >= d.maxPending {
		return fmt.Errorf("%w (%d)", ErrQueueFull, d.maxPending)
	}

	d.items = append(d.items, b)

	if n := d.Len(); n > d.peak {
		d.peak = n
	}

	return nil
}

// Get implements Queue.
func (d *Deque) Get() (Backbone, bool) {
	if d.Empty() {
		return Backbone{}, false
	}

	var b Backbone

	if d.policy == BreadthFirst {
		b = d.items[d.head]
		d.items[d.head] = Backbone{}
		d.head++
		d.compact()
	} else {
		last := len(d.items) - 1
		b = d.items[last]
		d.items[last] = Backbone{}
		d.items = d.items[:last]
	}

	return b, true
}

// Empty implements Queue.
func (d *Deque) Empty() bool { return d.Len() == 0 }

// Len implements Queue.
func (d *Deque) Len() int { return len(d.items) - d.head }

// Peak returns the largest number of pending backbones seen so far.
func (d *Deque) Peak() int { return d.peak }

// compact reclaims the consumed prefix once it dominates the slice.
func (d *Deque) compact() {
	if d.head == len(d.items) {
		d.items = d.items[:0]
		d.head = 0

		return
	}

	if d.head > 1024 && d.head*2 > len(d.items) {
		n := copy(d.items, d.items[d.head:])
		d.items = d.items[:n]
		d.head = 0
	}
}

// ProfilingQueue wraps a Queue and records its length after every operation.
// The history grows without bound; use it for diagnosis only.
type ProfilingQueue struct {
	inner   Queue
	history []int
}

// NewProfilingQueue wraps inner.
func NewProfilingQueue(inner Queue) *ProfilingQueue {
	return &ProfilingQueue{inner: inner}
}

// Put implements Queue.
func (p *ProfilingQueue) Put(b Backbone) error {
	if err := p.inner.Put(b); err != nil {
		return err
	}

	p.history = append(p.history, p.inner.Len())

	return nil
}

// Get implements Queue.
func (p *ProfilingQueue) Get() (Backbone, bool) {
	b, ok := p.inner.Get()
	if ok {
		p.history = append(p.history, p.inner.Len())
	}

	return b, ok
}

// Empty implements Queue.
func (p *ProfilingQueue) Empty() bool { return p.inner.Empty() }

// Len implements Queue.
func (p *ProfilingQueue) Len() int { return p.inner.Len() }

// History returns the recorded queue lengths, oldest first.
func (p *ProfilingQueue) History() []int {
	out := make([]int, len(p.history))
	copy(out, p.history)

	return out
}

// Peak returns the largest recorded length.
func (p *ProfilingQueue) Peak() int {
	peak := 0
	for _, n := range p.history {
		peak = max(peak, n)
	}

	return peak
}
