package db

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/motif/internal/dbpool"
)

// requiredColumns lists the columns the host loader reads. A database whose
// schema is owned by another service must provide at least these.
var requiredColumns = map[string][]string{
	"kg_nodes": {"tenant_id", "id", "type", "label", "properties"},
	"kg_edges": {"tenant_id", "source", "target", "relation", "properties"},
	"tenants":  {"id", "api_key_hash"},
}

// VerifySchema checks that every required table and column exists. It is
// used instead of RunMigrations when RUN_MIGRATIONS=false and by the
// readiness probe.
func VerifySchema(ctx context.Context, pool *dbpool.Pool, log *logrus.Logger) error {
	rows, err := pool.Query(ctx,
		`SELECT table_name, column_name
		 FROM information_schema.columns
		 WHERE table_schema = current_schema() AND table_name = ANY($1)`,
		[]string{"kg_nodes", "kg_edges", "tenants"},
	)
	if err != nil {
		return fmt.Errorf("querying schema columns: %w", err)
	}
	defer rows.Close()

	found := make(map[string][]string)

	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return fmt.Errorf("scanning schema row: %w", err)
		}

		found[table] = append(found[table], column)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating schema rows: %w", err)
	}

	var missing []string

	for table, cols := range requiredColumns {
		for _, col := range cols {
			if !slices.Contains(found[table], col) {
				missing = append(missing, table+"."+col)
			}
		}
	}

	if len(missing) > 0 {
		slices.Sort(missing)

		return fmt.Errorf("schema is missing columns: %s", strings.Join(missing, ", "))
	}

	log.Debug("schema verified")

	return nil
}
