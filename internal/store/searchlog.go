package store

import (
	"context"
	"fmt"

	"github.com/persistorai/motif/internal/models"
)

// maxListLimit is a defense-in-depth cap on limit values for list queries.
const maxListLimit = 1000

// SearchLogStore provides data access for the motif_search_log table.
type SearchLogStore struct {
	Base
}

// NewSearchLogStore creates a SearchLogStore.
func NewSearchLogStore(base Base) *SearchLogStore {
	return &SearchLogStore{Base: base}
}

// RecordSearch inserts one search log entry.
func (s *SearchLogStore) RecordSearch(ctx context.Context, e *models.SearchLogEntry) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, e.TenantID)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	_, err = tx.Exec(ctx, `
		INSERT INTO motif_search_log
			(tenant_id, mode, motif_nodes, motif_edges, isomorphic, count_only,
			 results, truncated, expanded, duration_ms, error_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.TenantID, e.Mode, e.MotifNodes, e.MotifEdges, e.Isomorphic, e.CountOnly,
		e.Results, e.Truncated, e.Expanded, e.DurationMS, e.ErrorCode,
	)
	if err != nil {
		return fmt.Errorf("inserting search log entry: %w", err)
	}

	return tx.Commit(ctx)
}

// ListSearches returns the tenant's most recent searches, newest first.
func (s *SearchLogStore) ListSearches(ctx context.Context, tenantID string, limit int) ([]models.SearchLogEntry, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // read-only, nothing to commit.

	rows, err := tx.Query(ctx, `
		SELECT id, mode, motif_nodes, motif_edges, isomorphic, count_only,
		       results, truncated, expanded, duration_ms, error_code, created_at
		FROM motif_search_log
		WHERE tenant_id = current_setting('app.tenant_id')::uuid
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying search log: %w", err)
	}
	defer rows.Close()

	entries := make([]models.SearchLogEntry, 0, 16)

	for rows.Next() {
		e := models.SearchLogEntry{TenantID: tenantID}

		if err := rows.Scan(
			&e.ID, &e.Mode, &e.MotifNodes, &e.MotifEdges, &e.Isomorphic, &e.CountOnly,
			&e.Results, &e.Truncated, &e.Expanded, &e.DurationMS, &e.ErrorCode, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning search log row: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search log rows: %w", err)
	}

	return entries, nil
}
