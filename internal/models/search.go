// Package models defines the request and response payloads of the motif API.
package models

import (
	"fmt"
	"math"

	"github.com/persistorai/motif/internal/graph"
	"github.com/persistorai/motif/internal/motif"
)

// Request limits. A motif is matched by exhaustive search, so its size is
// kept small.
const (
	MaxMotifNodes = 64
	MaxMotifEdges = 1024
	MaxHints      = 1000
	MaxWorkers    = 64
	maxIDLen      = 255
)

// SearchRequest is the payload of POST /api/v1/motifs/search and /count.
type SearchRequest struct {
	// Motif is the pattern to find, in graph document form.
	Motif graph.Document `json:"motif"`

	// Directed overrides motif.directed for both the motif and the host.
	Directed *bool `json:"directed,omitempty"`

	IsomorphismsOnly bool                `json:"isomorphisms_only,omitempty"`
	Hints            []map[string]string `json:"hints,omitempty"`
	Interestingness  map[string]float64  `json:"interestingness,omitempty"`
	Policy           string              `json:"policy,omitempty"`

	// Limit caps the number of results. Zero means the server maximum.
	Limit int `json:"limit,omitempty"`

	CountOnly bool `json:"count_only,omitempty"`

	// Workers > 1 selects the parallel driver. The parallel driver ignores
	// Limit until it finishes, so the server maximum still applies.
	Workers int `json:"workers,omitempty"`

	// Profile records the queue length after every operation and returns it
	// in SearchResult.Stats.QueueHistory.
	Profile bool `json:"profile,omitempty"`
}

// Validate checks that required fields are present and within limits.
func (r *SearchRequest) Validate() error {
	if len(r.Motif.Nodes) == 0 && len(r.Motif.Edges) == 0 {
		return ErrMissingMotif
	}

	if len(r.Motif.Nodes) > MaxMotifNodes {
		return ErrOutOfRange("motif.nodes", 1, MaxMotifNodes)
	}

	if len(r.Motif.Edges) > MaxMotifEdges {
		return ErrOutOfRange("motif.edges", 0, MaxMotifEdges)
	}

	for _, n := range r.Motif.Nodes {
		if n.ID == "" {
			return ErrMissingNodeID
		}

		if len(n.ID) > maxIDLen {
			return ErrFieldTooLong("node id", maxIDLen)
		}
	}

	for _, e := range r.Motif.Edges {
		if e.Source == "" {
			return ErrMissingSource
		}

		if e.Target == "" {
			return ErrMissingTarget
		}
	}

	if len(r.Hints) > MaxHints {
		return ErrOutOfRange("hints", 0, MaxHints)
	}

	if r.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", ErrInvalidRequest)
	}

	if r.Workers < 0 || r.Workers > MaxWorkers {
		return ErrOutOfRange("workers", 0, MaxWorkers)
	}

	if _, err := motif.ParsePolicy(r.Policy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	for id, v := range r.Interestingness {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: interestingness of %q must be finite", ErrInvalidRequest, id)
		}
	}

	return nil
}

// MotifGraph builds the motif graph. Nodes named only by edges count
// towards MaxMotifNodes. The result may still be structurally unusable
// (disconnected); the engine reports that.
func (r *SearchRequest) MotifGraph() (*graph.Graph, error) {
	g, err := r.Motif.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: motif: %w", ErrInvalidRequest, err)
	}

	if g.Len() > MaxMotifNodes {
		return nil, ErrOutOfRange("motif.nodes", 1, MaxMotifNodes)
	}

	return g, nil
}

// Directedness returns the effective directedness of the search.
func (r *SearchRequest) Directedness() bool {
	if r.Directed != nil {
		return *r.Directed
	}

	return r.Motif.Directed
}

// EngineHints converts the hints to engine mappings.
func (r *SearchRequest) EngineHints() []motif.Mapping {
	if r.Hints == nil {
		return nil
	}

	out := make([]motif.Mapping, len(r.Hints))
	for i, h := range r.Hints {
		out[i] = motif.Mapping(h)
	}

	return out
}

// SearchResult is the response of a motif search.
type SearchResult struct {
	Mappings []map[string]string `json:"mappings,omitempty"`
	Count    int                 `json:"count"`

	// Truncated reports that the search stopped at the result limit; more
	// mappings may exist.
	Truncated bool `json:"truncated"`

	HostNodes  int         `json:"host_nodes"`
	HostEdges  int         `json:"host_edges"`
	Mode       string      `json:"mode"`
	DurationMS float64     `json:"duration_ms"`
	Stats      motif.Stats `json:"stats"`
}
