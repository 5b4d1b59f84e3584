package motif

import (
	"errors"
	"testing"
)

func item(h string) Backbone {
	return newBackbone(1).extend(0, h)
}

func allQueues() map[string]func() Queue {
	return map[string]func() Queue{
		"depth":           func() Queue { return NewDeque(DepthFirst, 0) },
		"breadth":         func() Queue { return NewDeque(BreadthFirst, 0) },
		"profiling depth": func() Queue { return NewProfilingQueue(NewDeque(DepthFirst, 0)) },
	}
}

func TestQueue_Empty(t *testing.T) {
	for name, mk := range allQueues() {
		t.Run(name, func(t *testing.T) {
			q := mk()
			if !q.Empty() {
				t.Fatal("new queue should be empty")
			}

			if err := q.Put(item("x")); err != nil {
				t.Fatalf("Put: %v", err)
			}

			if q.Empty() {
				t.Fatal("queue with one item reported empty")
			}

			if _, ok := q.Get(); !ok {
				t.Fatal("Get on non-empty queue failed")
			}

			if !q.Empty() {
				t.Fatal("drained queue should be empty")
			}

			if _, ok := q.Get(); ok {
				t.Fatal("Get on empty queue succeeded")
			}
		})
	}
}

func TestQueue_PutAndGet(t *testing.T) {
	for name, mk := range allQueues() {
		t.Run(name, func(t *testing.T) {
			q := mk()
			for _, h := range []string{"1", "2", "3"} {
				if err := q.Put(item(h)); err != nil {
					t.Fatalf("Put: %v", err)
				}
			}

			if q.Len() != 3 {
				t.Fatalf("Len = %d, want 3", q.Len())
			}

			for range 3 {
				q.Get()
			}

			if !q.Empty() {
				t.Fatal("queue not empty after three gets")
			}
		})
	}
}

func TestQueue_Discipline(t *testing.T) {
	dfs := NewDeque(DepthFirst, 0)
	bfs := NewDeque(BreadthFirst, 0)

	for _, q := range []*Deque{dfs, bfs} {
		q.Put(item("1")) //nolint:errcheck // unbounded.
		q.Put(item("2")) //nolint:errcheck // unbounded.
	}

	if b, _ := dfs.Get(); b.host(0) != "2" {
		t.Errorf("depth-first returned %s first, want 2", b.host(0))
	}

	if b, _ := bfs.Get(); b.host(0) != "1" {
		t.Errorf("breadth-first returned %s first, want 1", b.host(0))
	}
}

func TestDeque_BreadthFirstCompacts(t *testing.T) {
	q := NewDeque(BreadthFirst, 0)

	for i := range 5000 {
		if err := q.Put(item(string(rune('a' + i%26)))); err != nil {
			t.Fatalf("Put: %v", err)
		}

		if i%2 == 1 {
			q.Get()
		}
	}

	if q.Len() != 2500 {
		t.Fatalf("Len = %d, want 2500", q.Len())
	}

	n := 0
	for !q.Empty() {
		q.Get()
		n++
	}

	if n != 2500 {
		t.Errorf("drained %d, want 2500", n)
	}
}

func TestDeque_Bounded(t *testing.T) {
	q := NewDeque(DepthFirst, 2)

	if err := q.Put(item("1")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := q.Put(item("2")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := q.Put(item("3")); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("third Put error = %v, want ErrQueueFull", err)
	}

	q.Get()

	if err := q.Put(item("3")); err != nil {
		t.Fatalf("Put after Get: %v", err)
	}

	if q.Peak() != 2 {
		t.Errorf("Peak = %d, want 2", q.Peak())
	}
}

func TestProfilingQueue_History(t *testing.T) {
	q := NewProfilingQueue(NewDeque(BreadthFirst, 0))
	q.Put(item("1")) //nolint:errcheck // unbounded.
	q.Put(item("2")) //nolint:errcheck // unbounded.
	q.Get()
	q.Put(item("3")) //nolint:errcheck // unbounded.
	q.Get()
	q.Get()

	want := []int{1, 2, 1, 2, 1, 0}
	got := q.History()

	if len(got) != len(want) {
		t.Fatalf("History = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("History = %v, want %v", got, want)
		}
	}

	if q.Peak() != 2 {
		t.Errorf("Peak = %d, want 2", q.Peak())
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{in: "", want: DepthFirst},
		{in: "depth", want: DepthFirst},
		{in: "DFS", want: DepthFirst},
		{in: "breadth", want: BreadthFirst},
		{in: " bfs ", want: BreadthFirst},
		{in: "random", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParsePolicy(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownPolicy) {
				t.Errorf("ParsePolicy(%q) error = %v, want ErrUnknownPolicy", tc.in, err)
			}

			continue
		}

		if err != nil || got != tc.want {
			t.Errorf("ParsePolicy(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}
