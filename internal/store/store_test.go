package store_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/motif/internal/db"
	"github.com/persistorai/motif/internal/db/migrations"
	"github.com/persistorai/motif/internal/dbpool"
	"github.com/persistorai/motif/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL, 4)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		t.Fatalf("migrating test DB: %v", err)
	}

	sharedEnv = &testEnv{pool: pool, log: log}

	return sharedEnv
}

// setupTenant inserts a fresh tenant, removed again after the test.
func setupTenant(t *testing.T) (store.Base, string, string) {
	t.Helper()

	env := getTestEnv(t)
	tenantID := uuid.New().String()
	apiKey := "test-key-" + tenantID
	ctx := context.Background()

	_, err := env.pool.Exec(ctx,
		"INSERT INTO tenants (id, name, api_key_hash) VALUES ($1, $2, $3)",
		tenantID, fmt.Sprintf("test-tenant-%s", tenantID[:8]), store.HashAPIKey(apiKey),
	)
	if err != nil {
		t.Fatalf("creating test tenant: %v", err)
	}

	t.Cleanup(func() {
		cleanCtx := context.Background()
		env.pool.Exec(cleanCtx, "DELETE FROM motif_search_log WHERE tenant_id = $1", tenantID) //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM kg_edges WHERE tenant_id = $1", tenantID)         //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM kg_nodes WHERE tenant_id = $1", tenantID)         //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM tenants WHERE id = $1", tenantID)                 //nolint:errcheck // best-effort cleanup
	})

	return store.Base{Pool: env.pool, Log: env.log}, tenantID, apiKey
}

func insertNode(t *testing.T, base store.Base, tenantID, id, typ, props string) {
	t.Helper()

	_, err := base.Pool.Exec(context.Background(),
		"INSERT INTO kg_nodes (tenant_id, id, type, label, properties) VALUES ($1, $2, $3, $4, $5::jsonb)",
		tenantID, id, typ, "label "+id, props,
	)
	if err != nil {
		t.Fatalf("inserting node %s: %v", id, err)
	}
}

func insertEdge(t *testing.T, base store.Base, tenantID, source, target, relation string) {
	t.Helper()

	_, err := base.Pool.Exec(context.Background(),
		"INSERT INTO kg_edges (tenant_id, source, target, relation) VALUES ($1, $2, $3, $4)",
		tenantID, source, target, relation,
	)
	if err != nil {
		t.Fatalf("inserting edge %s->%s: %v", source, target, err)
	}
}
