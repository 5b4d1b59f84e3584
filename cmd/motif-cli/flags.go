package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/persistorai/motif/client"
	"github.com/persistorai/motif/internal/motif"
)

// searchFlags are shared by search, count and local.
type searchFlags struct {
	hints      []string
	interest   map[string]string
	policy     string
	limit      int
	workers    int
	iso        bool
	profile    bool
	directed   bool
	undirected bool
}

func (f *searchFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringArrayVar(&f.hints, "hint", nil, "Partial mapping motifNode=hostNode[,...]; repeat for several origins")
	fl.StringToStringVar(&f.interest, "interest", nil, "Node interestingness, e.g. a=2,b=0.5")
	fl.StringVar(&f.policy, "policy", "", "Queue policy: depth|breadth")
	fl.IntVar(&f.limit, "limit", 0, "Max results (0 = server maximum)")
	fl.IntVar(&f.workers, "workers", 0, "Parallel workers; more than 1 selects the parallel search")
	fl.BoolVar(&f.iso, "iso", false, "Only report isomorphisms (no extra host edges)")
	fl.BoolVar(&f.profile, "profile", false, "Record queue length history")
	fl.BoolVar(&f.directed, "directed", false, "Treat motif and host as directed")
	fl.BoolVar(&f.undirected, "undirected", false, "Treat motif and host as undirected")
	cmd.MarkFlagsMutuallyExclusive("directed", "undirected")
}

// directedness returns the override, or nil to use the motif's own flag.
func (f *searchFlags) directedness() *bool {
	switch {
	case f.directed:
		v := true
		return &v
	case f.undirected:
		v := false
		return &v
	default:
		return nil
	}
}

func (f *searchFlags) parsedHints() ([]map[string]string, error) {
	var out []map[string]string
	for _, h := range f.hints {
		m, err := parseAssignments(h)
		if err != nil {
			return nil, fmt.Errorf("--hint %q: %w", h, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *searchFlags) parsedInterest() (map[string]float64, error) {
	if len(f.interest) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(f.interest))
	for k, v := range f.interest {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("--interest %s: %w", k, err)
		}
		out[k] = n
	}
	return out, nil
}

// request builds the API request for the motif in path.
func (f *searchFlags) request(path string) (*client.SearchRequest, error) {
	g, err := readGraphFile(path)
	if err != nil {
		return nil, err
	}
	hints, err := f.parsedHints()
	if err != nil {
		return nil, err
	}
	interest, err := f.parsedInterest()
	if err != nil {
		return nil, err
	}
	return &client.SearchRequest{
		Motif:            *g,
		Directed:         f.directedness(),
		IsomorphismsOnly: f.iso,
		Hints:            hints,
		Interestingness:  interest,
		Policy:           f.policy,
		Limit:            f.limit,
		Workers:          f.workers,
		Profile:          f.profile,
	}, nil
}

// engineOptions builds in-process search options for local runs.
func (f *searchFlags) engineOptions() (motif.Options, error) {
	policy, err := motif.ParsePolicy(f.policy)
	if err != nil {
		return motif.Options{}, err
	}
	hints, err := f.parsedHints()
	if err != nil {
		return motif.Options{}, err
	}
	interest, err := f.parsedInterest()
	if err != nil {
		return motif.Options{}, err
	}

	opts := motif.Options{
		Interestingness:  interest,
		Directed:         f.directedness(),
		IsomorphismsOnly: f.iso,
		Policy:           policy,
		Profile:          f.profile,
	}
	for _, h := range hints {
		opts.Hints = append(opts.Hints, motif.Mapping(h))
	}
	return opts, nil
}

// parseAssignments parses "a=1,b=2".
func parseAssignments(s string) (map[string]string, error) {
	out := make(map[string]string)
	for part := range strings.SplitSeq(s, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || k == "" || v == "" {
			return nil, fmt.Errorf("expected key=value, got %q", part)
		}
		if _, dup := out[k]; dup {
			return nil, fmt.Errorf("%q assigned twice", k)
		}
		out[k] = v
	}
	return out, nil
}

// readGraphFile decodes a YAML or JSON graph document.
func readGraphFile(path string) (*client.Graph, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the user.
	if err != nil {
		return nil, err
	}
	var g client.Graph
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(g.Nodes) == 0 && len(g.Edges) == 0 {
		return nil, fmt.Errorf("%s: graph has no nodes", path)
	}
	return &g, nil
}
