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

// importBatchSize is the number of statements sent per round trip.
const importBatchSize = 500

const defaultRelation = "related_to"

// ImportHost writes g into the tenant's graph in one transaction, upserting
// nodes and edges. With replace, the tenant's existing graph is deleted
// first. Attribute mapping is the inverse of LoadHost.
func (s *HostStore) ImportHost(ctx context.Context, tenantID string, g *graph.Graph, replace bool) (*models.ImportHostResult, error) {
	if g.Len() > maxHostNodes || g.EdgeCount() > maxHostEdges {
		return nil, models.ErrHostTooLarge
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("importing host graph: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	if replace {
		// Edges go with their nodes through ON DELETE CASCADE.
		if _, err := tx.Exec(ctx, "DELETE FROM kg_nodes WHERE tenant_id = $1", tenantID); err != nil {
			return nil, fmt.Errorf("clearing host graph: %w", err)
		}
	}

	batch := &pgx.Batch{}

	for _, id := range g.Nodes() {
		typ, label, props, err := nodeColumns(id, g.NodeAttributes(id))
		if err != nil {
			return nil, err
		}

		batch.Queue(`
			INSERT INTO kg_nodes (tenant_id, id, type, label, properties)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (tenant_id, id) DO UPDATE
			SET type = EXCLUDED.type, label = EXCLUDED.label,
			    properties = EXCLUDED.properties, updated_at = now()`,
			tenantID, id, typ, label, props)

		if err := flushBatch(ctx, tx, batch, false); err != nil {
			return nil, fmt.Errorf("inserting nodes: %w", err)
		}
	}

	if err := flushBatch(ctx, tx, batch, true); err != nil {
		return nil, fmt.Errorf("inserting nodes: %w", err)
	}

	for _, e := range g.Edges() {
		relation, props, err := edgeColumns(g.EdgeAttributes(e[0], e[1]))
		if err != nil {
			return nil, err
		}

		batch.Queue(`
			INSERT INTO kg_edges (tenant_id, source, target, relation, properties)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (tenant_id, source, target, relation) DO UPDATE
			SET properties = EXCLUDED.properties, updated_at = now()`,
			tenantID, e[0], e[1], relation, props)

		if err := flushBatch(ctx, tx, batch, false); err != nil {
			return nil, fmt.Errorf("inserting edges: %w", err)
		}
	}

	if err := flushBatch(ctx, tx, batch, true); err != nil {
		return nil, fmt.Errorf("inserting edges: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing host import: %w", err)
	}

	res := &models.ImportHostResult{Nodes: g.Len(), Edges: g.EdgeCount(), Replaced: replace}

	s.Log.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"nodes":     res.Nodes,
		"edges":     res.Edges,
		"replace":   replace,
	}).Info("host.import")

	return res, nil
}

// flushBatch sends the batch when it is full, or when force is set and it is
// not empty, and resets it.
func flushBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch, force bool) error {
	if batch.Len() == 0 || (!force && batch.Len() < importBatchSize) {
		return nil
	}

	err := tx.SendBatch(ctx, batch).Close()
	*batch = pgx.Batch{}

	return err
}

// nodeColumns splits node attributes into the type and label columns and a
// JSON properties document.
func nodeColumns(id string, attrs map[string]any) (typ, label string, props []byte, err error) {
	typ, label = "node", id
	rest := make(map[string]any, len(attrs))

	for k, v := range attrs {
		switch s, isString := v.(string); {
		case k == "type" && isString && s != "":
			typ = s
		case k == "label" && isString && s != "":
			label = s
		default:
			rest[k] = v
		}
	}

	props, err = json.Marshal(rest)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: node %s properties: %w", models.ErrInvalidRequest, id, err)
	}

	return typ, label, props, nil
}

// edgeColumns splits edge attributes into the relation column and a JSON
// properties document. "relations" is derived by LoadHost and never stored.
func edgeColumns(attrs map[string]any) (relation string, props []byte, err error) {
	relation = defaultRelation
	rest := make(map[string]any, len(attrs))

	for k, v := range attrs {
		switch s, isString := v.(string); {
		case k == "relation" && isString && s != "":
			relation = s
		case k == "relations":
		default:
			rest[k] = v
		}
	}

	props, err = json.Marshal(rest)
	if err != nil {
		return "", nil, fmt.Errorf("%w: edge properties: %w", models.ErrInvalidRequest, err)
	}

	return relation, props, nil
}
