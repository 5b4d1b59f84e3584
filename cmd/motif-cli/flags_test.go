package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/persistorai/motif/internal/motif"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const triangleYAML = `
directed: true
nodes:
  - id: a
  - id: b
  - id: c
edges:
  - {source: a, target: b}
  - {source: b, target: c}
  - {source: c, target: a}
`

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		in      string
		want    map[string]string
		wantErr bool
	}{
		{in: "a=1", want: map[string]string{"a": "1"}},
		{in: "a=1, b=2", want: map[string]string{"a": "1", "b": "2"}},
		{in: "a", wantErr: true},
		{in: "a=", wantErr: true},
		{in: "=1", wantErr: true},
		{in: "a=1,a=2", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseAssignments(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseAssignments(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseAssignments(%q): %v", tt.in, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parseAssignments(%q) = %v", tt.in, got)
		}
		for k, v := range tt.want {
			if got[k] != v {
				t.Errorf("parseAssignments(%q)[%s] = %q, want %q", tt.in, k, got[k], v)
			}
		}
	}
}

func TestSearchFlags_Request(t *testing.T) {
	path := writeFile(t, "motif.yaml", triangleYAML)
	f := searchFlags{
		hints:      []string{"a=1", "a=2,b=3"},
		interest:   map[string]string{"a": "2.5"},
		limit:      5,
		iso:        true,
		undirected: true,
	}

	req, err := f.request(path)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if len(req.Motif.Nodes) != 3 || len(req.Motif.Edges) != 3 || !req.Motif.Directed {
		t.Errorf("motif = %+v", req.Motif)
	}
	if req.Directed == nil || *req.Directed {
		t.Errorf("Directed = %v, want false override", req.Directed)
	}
	if len(req.Hints) != 2 || req.Hints[1]["b"] != "3" {
		t.Errorf("Hints = %v", req.Hints)
	}
	if req.Interestingness["a"] != 2.5 || !req.IsomorphismsOnly || req.Limit != 5 {
		t.Errorf("request = %+v", req)
	}
}

func TestSearchFlags_Errors(t *testing.T) {
	path := writeFile(t, "motif.yaml", triangleYAML)

	if _, err := (&searchFlags{interest: map[string]string{"a": "high"}}).request(path); err == nil {
		t.Error("non-numeric interest should fail")
	}
	if _, err := (&searchFlags{hints: []string{"oops"}}).request(path); err == nil {
		t.Error("malformed hint should fail")
	}
	if _, err := (&searchFlags{}).request(writeFile(t, "empty.yaml", "directed: true\n")); err == nil {
		t.Error("empty graph should fail")
	}
	if _, err := (&searchFlags{policy: "random"}).engineOptions(); err == nil {
		t.Error("unknown policy should fail")
	}
}

func TestSearchFlags_EngineOptions(t *testing.T) {
	f := searchFlags{policy: "breadth", hints: []string{"a=x"}, directed: true, profile: true}

	opts, err := f.engineOptions()
	if err != nil {
		t.Fatalf("engineOptions: %v", err)
	}
	if opts.Policy != motif.BreadthFirst || !opts.Profile {
		t.Errorf("opts = %+v", opts)
	}
	if opts.Directed == nil || !*opts.Directed {
		t.Errorf("Directed = %v", opts.Directed)
	}
	if len(opts.Hints) != 1 || opts.Hints[0]["a"] != "x" {
		t.Errorf("Hints = %v", opts.Hints)
	}
}
