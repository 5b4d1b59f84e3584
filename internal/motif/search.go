package motif

import (
	"context"
	"iter"

	"github.com/persistorai/motif/internal/graph"
)

// Search prepares a session and returns its lazy result sequence. Preparation
// errors are yielded as the first and only element.
func Search(ctx context.Context, motif, host graph.Accessor, opts Options) iter.Seq2[Mapping, error] {
	s, err := Prepare(motif, host, opts)
	if err != nil {
		return func(yield func(Mapping, error) bool) {
			yield(nil, err)
		}
	}

	return s.Search(ctx)
}

// Collect prepares a session and drains it. A positive limit stops the search
// once that many results have been produced.
func Collect(ctx context.Context, motif, host graph.Accessor, opts Options, limit int) ([]Mapping, error) {
	s, err := Prepare(motif, host, opts)
	if err != nil {
		return nil, err
	}

	return s.Collect(ctx, limit)
}

// Count prepares a session and counts its results without materializing them.
func Count(ctx context.Context, motif, host graph.Accessor, opts Options, limit int) (int, error) {
	s, err := Prepare(motif, host, opts)
	if err != nil {
		return 0, err
	}

	return s.Count(ctx, limit)
}

// Search returns the results lazily, in traversal order. The search advances
// only while the caller keeps ranging; breaking out of the loop ends it. An
// error is yielded once and ends the sequence.
func (s *Session) Search(ctx context.Context) iter.Seq2[Mapping, error] {
	return func(yield func(Mapping, error) bool) {
		stopped := false

		err := s.run(ctx, func(b Backbone) bool {
			if !yield(b.mapping(s.ids), nil) {
				stopped = true

				return false
			}

			return true
		})

		if err != nil && !stopped {
			yield(nil, err)
		}
	}
}

// Collect drains the search into a slice. A positive limit caps the result
// count; when the cap is hit the search stops and exactly limit results are
// returned.
func (s *Session) Collect(ctx context.Context, limit int) ([]Mapping, error) {
	results := make([]Mapping, 0)

	err := s.run(ctx, func(b Backbone) bool {
		results = append(results, b.mapping(s.ids))

		return limit <= 0 || len(results) < limit
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// Count drains the search and returns only the number of results, capped by
// a positive limit.
func (s *Session) Count(ctx context.Context, limit int) (int, error) {
	n := 0

	err := s.run(ctx, func(Backbone) bool {
		n++

		return limit <= 0 || n < limit
	})
	if err != nil {
		return 0, err
	}

	return n, nil
}

// newQueue builds the pending-backbone queue for one run.
func (s *Session) newQueue() Queue {
	var q Queue = NewDeque(s.policy, s.maxPending)
	if s.profile {
		q = NewProfilingQueue(q)
	}

	return q
}

func (s *Session) reset() {
	s.expanded.Store(0)
	s.emitted.Store(0)
	s.discarded.Store(0)
	s.peak = 0
	s.history = nil
}

func (s *Session) finish(q Queue) {
	switch v := q.(type) {
	case *ProfilingQueue:
		s.peak = v.Peak()
		s.history = v.History()
	case *Deque:
		s.peak = v.Peak()
	}
}

// run drives the worklist until it is empty, emit returns false, or an error
// occurs. Every transition grows a backbone by one node, so the loop ends.
func (s *Session) run(ctx context.Context, emit func(Backbone) bool) error {
	s.reset()

	q := s.newQueue()
	defer s.finish(q)

	for _, b := range s.seeds {
		if b.Complete() {
			s.emitted.Add(1)

			if !emit(b) {
				return nil
			}

			continue
		}

		if err := q.Put(b); err != nil {
			return err
		}
	}

	for !q.Empty() {
		if err := ctx.Err(); err != nil {
			return err
		}

		b, _ := q.Get()

		next, err := s.expand(b)
		if err != nil {
			return err
		}

		for _, c := range next {
			if c.Complete() {
				s.emitted.Add(1)

				if !emit(c) {
					return nil
				}

				continue
			}

			if err := q.Put(c); err != nil {
				return err
			}
		}
	}

	return nil
}
