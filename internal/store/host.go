package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/motif/internal/graph"
	"github.com/persistorai/motif/internal/models"
)

// Host graph size limits. A host graph lives in memory for the duration of
// every search against it.
const (
	maxHostNodes = 200_000
	maxHostEdges = 1_000_000
)

// HostStore loads a tenant's knowledge graph as a motif search host.
type HostStore struct {
	Base
}

// NewHostStore creates a new HostStore.
func NewHostStore(base Base) *HostStore {
	return &HostStore{Base: base}
}

// LoadHost reads every node and edge of the tenant into an in-memory graph.
//
// Node attributes are the node's properties plus "type" and "label"; edge
// attributes are the edge's properties plus "relation". Parallel edges
// between one pair of nodes (different relations) collapse into one host
// edge whose "relation" is the first in sort order and whose "relations"
// lists all of them. Graphs beyond maxHostNodes or maxHostEdges fail with
// models.ErrHostTooLarge.
func (s *HostStore) LoadHost(ctx context.Context, tenantID string, directed bool) (*graph.Graph, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("loading host graph: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // read-only, nothing to commit.

	g := graph.New(directed)

	if err := loadNodes(ctx, tx, g); err != nil {
		return nil, err
	}

	if err := loadEdges(ctx, tx, g); err != nil {
		return nil, err
	}

	s.Log.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"directed":  directed,
		"nodes":     g.Len(),
		"edges":     g.EdgeCount(),
	}).Debug("host.load")

	return g, nil
}

func loadNodes(ctx context.Context, tx pgx.Tx, g *graph.Graph) error {
	rows, err := tx.Query(ctx,
		`SELECT id, type, label, properties FROM kg_nodes
		 WHERE tenant_id = current_setting('app.tenant_id')::uuid
		 ORDER BY id LIMIT $1`,
		maxHostNodes+1,
	)
	if err != nil {
		return fmt.Errorf("querying host nodes: %w", err)
	}
	defer rows.Close()

	n := 0

	for rows.Next() {
		var (
			id, typ, label string
			props          []byte
		)

		if err := rows.Scan(&id, &typ, &label, &props); err != nil {
			return fmt.Errorf("scanning host node: %w", err)
		}

		if n++; n > maxHostNodes {
			return fmt.Errorf("%w: more than %d nodes", models.ErrHostTooLarge, maxHostNodes)
		}

		attrs, err := decodeProperties(props)
		if err != nil {
			return fmt.Errorf("node %s: %w", id, err)
		}

		attrs["type"] = typ
		attrs["label"] = label
		g.AddNode(id, attrs)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating host nodes: %w", err)
	}

	return nil
}

func loadEdges(ctx context.Context, tx pgx.Tx, g *graph.Graph) error {
	rows, err := tx.Query(ctx,
		`SELECT source, target, relation, properties FROM kg_edges
		 WHERE tenant_id = current_setting('app.tenant_id')::uuid
		 ORDER BY source, target, relation LIMIT $1`,
		maxHostEdges+1,
	)
	if err != nil {
		return fmt.Errorf("querying host edges: %w", err)
	}
	defer rows.Close()

	n := 0

	for rows.Next() {
		var (
			source, target, relation string
			props                    []byte
		)

		if err := rows.Scan(&source, &target, &relation, &props); err != nil {
			return fmt.Errorf("scanning host edge: %w", err)
		}

		if n++; n > maxHostEdges {
			return fmt.Errorf("%w: more than %d edges", models.ErrHostTooLarge, maxHostEdges)
		}

		attrs, err := decodeProperties(props)
		if err != nil {
			return fmt.Errorf("edge %s->%s: %w", source, target, err)
		}

		addHostEdge(g, source, target, relation, attrs)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating host edges: %w", err)
	}

	return nil
}

// addHostEdge adds one kg_edges row to g, folding parallel relations into
// the "relations" list of the existing edge. Rows must arrive sorted by
// relation.
func addHostEdge(g *graph.Graph, source, target, relation string, attrs map[string]any) {
	if !g.HasEdge(source, target) {
		attrs["relation"] = relation
		attrs["relations"] = []any{relation}
		g.AddEdge(source, target, attrs)

		return
	}

	prev, _ := g.EdgeAttributes(source, target)["relations"].([]any)
	g.AddEdge(source, target, map[string]any{"relations": append(prev, relation)})
}

// decodeProperties unmarshals a JSONB properties column. NULL and empty
// values yield an empty map.
func decodeProperties(raw []byte) (map[string]any, error) {
	attrs := make(map[string]any)
	if len(raw) == 0 {
		return attrs, nil
	}

	if err := json.Unmarshal(raw, &attrs); err != nil {
		return nil, fmt.Errorf("unmarshalling properties: %w", err)
	}

	if attrs == nil {
		attrs = make(map[string]any)
	}

	return attrs, nil
}
