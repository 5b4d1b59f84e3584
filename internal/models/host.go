package models

import (
	"fmt"

	"github.com/persistorai/motif/internal/graph"
)

// Import limits match the largest host graph the service will load.
const (
	MaxImportNodes = 200_000
	MaxImportEdges = 1_000_000
)

// ImportHostRequest is the payload of POST /api/v1/hosts/import.
//
// Node attributes "type" and "label" fill the matching columns; the rest are
// stored as properties. Edge attribute "relation" names the edge (default
// "related_to"); the rest are stored as properties.
type ImportHostRequest struct {
	Graph graph.Document `json:"graph"`

	// Replace deletes the tenant's existing graph first.
	Replace bool `json:"replace,omitempty"`
}

// Validate checks sizes and required fields.
func (r *ImportHostRequest) Validate() error {
	if len(r.Graph.Nodes) == 0 && len(r.Graph.Edges) == 0 && !r.Replace {
		return fmt.Errorf("%w: graph is empty", ErrInvalidRequest)
	}

	if len(r.Graph.Nodes) > MaxImportNodes {
		return ErrOutOfRange("graph.nodes", 0, MaxImportNodes)
	}

	if len(r.Graph.Edges) > MaxImportEdges {
		return ErrOutOfRange("graph.edges", 0, MaxImportEdges)
	}

	for _, n := range r.Graph.Nodes {
		if n.ID == "" {
			return ErrMissingNodeID
		}

		if len(n.ID) > maxIDLen {
			return ErrFieldTooLong("node id", maxIDLen)
		}
	}

	for _, e := range r.Graph.Edges {
		if e.Source == "" {
			return ErrMissingSource
		}

		if e.Target == "" {
			return ErrMissingTarget
		}
	}

	return nil
}

// ImportHostResult reports what an import wrote.
type ImportHostResult struct {
	Nodes    int  `json:"nodes"`
	Edges    int  `json:"edges"`
	Replaced bool `json:"replaced"`
}
