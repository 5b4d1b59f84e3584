package motif

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
)

func TestHints(t *testing.T) {
	host := cycle(true, "A", "B", "C")
	m := cycle(true, "a", "b", "c")

	tests := []struct {
		name    string
		hints   []Mapping
		want    int
		dropped int
	}{
		{name: "no hints", hints: nil, want: 3},
		{name: "empty hint list", hints: []Mapping{}, want: 3},
		{name: "one empty hint", hints: []Mapping{{}}, want: 3},
		{name: "single anchor", hints: []Mapping{{"a": "A"}}, want: 1},
		{name: "union of anchors", hints: []Mapping{{"a": "A"}, {"b": "A"}}, want: 2},
		{name: "complete hint", hints: []Mapping{{"a": "A", "b": "B", "c": "C"}}, want: 1},
		{name: "two motif nodes on one host node", hints: []Mapping{{"a": "A", "b": "A"}}, want: 0, dropped: 1},
		{name: "inconsistent pair", hints: []Mapping{{"a": "A", "b": "C"}}, want: 0, dropped: 1},
		{name: "one good one broken", hints: []Mapping{{"a": "A", "b": "C"}, {"a": "B"}}, want: 1, dropped: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Prepare(m, host, Options{Hints: tc.hints})
			if err != nil {
				t.Fatalf("Prepare: %v", err)
			}

			got, err := s.Count(context.Background(), 0)
			if err != nil {
				t.Fatalf("Count: %v", err)
			}

			if got != tc.want {
				t.Errorf("Count = %d, want %d", got, tc.want)
			}

			if s.Stats().DroppedHints != tc.dropped {
				t.Errorf("DroppedHints = %d, want %d", s.Stats().DroppedHints, tc.dropped)
			}

			par, err := s.SearchParallel(context.Background(), 3)
			if err != nil {
				t.Fatalf("SearchParallel: %v", err)
			}

			if len(par) != tc.want {
				t.Errorf("SearchParallel returned %d, want %d", len(par), tc.want)
			}
		})
	}
}

func TestHints_AnchorIsRespected(t *testing.T) {
	results, err := Collect(context.Background(), cycle(true, "a", "b", "c"), cycle(true, "A", "B", "C"),
		Options{Hints: []Mapping{{"b": "A"}}}, 0)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("results = %v", results)
	}

	want := Mapping{"a": "C", "b": "A", "c": "B"}
	for k, v := range want {
		if results[0][k] != v {
			t.Errorf("result[%s] = %s, want %s", k, results[0][k], v)
		}
	}
}

func TestHints_UnknownNodes(t *testing.T) {
	host := cycle(true, "A", "B", "C")
	m := cycle(true, "a", "b", "c")

	for name, hint := range map[string]Mapping{
		"unknown motif node": {"z": "A"},
		"unknown host node":  {"a": "Z"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Prepare(m, host, Options{Hints: []Mapping{hint}})
			if !errors.Is(err, ErrInvalidHint) {
				t.Errorf("error = %v, want ErrInvalidHint", err)
			}
		})
	}
}

func TestHints_EmptyListMatchesNoHints(t *testing.T) {
	r := rand.New(rand.NewPCG(21, 42))

	for i := range 5 {
		host := randomGraph(r, false, 10, 0.3)
		m := randomMotif(r, false, 4)

		a, err := Count(context.Background(), m, host, Options{}, 0)
		if err != nil {
			t.Fatalf("#%d: %v", i, err)
		}

		b, err := Count(context.Background(), m, host, Options{Hints: []Mapping{}}, 0)
		if err != nil {
			t.Fatalf("#%d: %v", i, err)
		}

		if a != b {
			t.Errorf("#%d: without hints %d, with empty hints %d", i, a, b)
		}
	}
}
