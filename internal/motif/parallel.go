package motif

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/persistorai/motif/internal/graph"
)

// SearchParallel prepares a session and runs it on a worker pool.
func SearchParallel(ctx context.Context, motif, host graph.Accessor, opts Options, workers int) ([]Mapping, error) {
	s, err := Prepare(motif, host, opts)
	if err != nil {
		return nil, err
	}

	return s.SearchParallel(ctx, workers)
}

// SearchParallel expands backbones on workers goroutines sharing one queue and
// returns every result, in no particular order. The first error stops all
// workers and is returned. workers <= 0 means GOMAXPROCS.
func (s *Session) SearchParallel(ctx context.Context, workers int) ([]Mapping, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	s.reset()

	tq := newTaskQueue(s.newQueue())
	defer s.finish(tq.q)

	var (
		mu      sync.Mutex
		results = make([]Mapping, 0)
	)

	for _, b := range s.seeds {
		if b.Complete() {
			s.emitted.Add(1)
			results = append(results, b.mapping(s.ids))

			continue
		}

		if err := tq.put(b); err != nil {
			return nil, err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	stop := context.AfterFunc(gctx, tq.close)
	defer stop()

	for range workers {
		g.Go(func() error {
			for {
				b, ok := tq.get()
				if !ok {
					return nil
				}

				next, err := s.expand(b)
				if err != nil {
					tq.close()

					return err
				}

				partial := next[:0:0]

				for _, c := range next {
					if !c.Complete() {
						partial = append(partial, c)

						continue
					}

					s.emitted.Add(1)

					m := c.mapping(s.ids)

					mu.Lock()
					results = append(results, m)
					mu.Unlock()
				}

				if err := tq.done(partial); err != nil {
					return err
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// taskQueue is a Queue shared between workers. It counts backbones that have
// been queued but not yet marked done, and releases waiting workers only when
// that count reaches zero or the queue is closed. Observing an empty queue is
// not enough to stop: a sibling may be about to queue more work.
type taskQueue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	q        Queue
	inflight int
	closed   bool
}

func newTaskQueue(q Queue) *taskQueue {
	t := &taskQueue{q: q}
	t.cond = sync.NewCond(&t.mu)

	return t
}

// put queues b before any worker has started.
func (t *taskQueue) put(b Backbone) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.q.Put(b); err != nil {
		return err
	}

	t.inflight++

	return nil
}

// get blocks until a backbone is available, returning false once all work is
// done or the queue is closed.
func (t *taskQueue) get() (Backbone, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for t.q.Empty() && t.inflight > 0 && !t.closed {
		t.cond.Wait()
	}

	if t.closed || t.q.Empty() {
		return Backbone{}, false
	}

	b, _ := t.q.Get()

	return b, true
}

// done queues the children of one expanded backbone and marks the backbone
// itself finished.
func (t *taskQueue) done(children []Backbone) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}

	for _, c := range children {
		if err := t.q.Put(c); err != nil {
			t.closed = true
			t.cond.Broadcast()

			return err
		}

		t.inflight++
	}

	t.inflight--
	t.cond.Broadcast()

	return nil
}

// close wakes every worker and makes get return false.
func (t *taskQueue) close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	t.cond.Broadcast()
}
