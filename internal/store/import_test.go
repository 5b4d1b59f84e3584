package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/persistorai/motif/internal/graph"
	"github.com/persistorai/motif/internal/models"
	"github.com/persistorai/motif/internal/store"
)

func TestImportHost_RoundTrip(t *testing.T) {
	base, tenantID, _ := setupTenant(t)
	hs := store.NewHostStore(base)

	g := graph.New(true)
	g.AddNode("ada", map[string]any{"type": "person", "label": "Ada", "born": 1815})
	g.AddNode("engine", map[string]any{"type": "machine"})
	g.AddEdge("ada", "engine", map[string]any{"relation": "programs", "year": 1843})

	res, err := hs.ImportHost(context.Background(), tenantID, g, false)
	if err != nil {
		t.Fatalf("ImportHost: %v", err)
	}

	if res.Nodes != 2 || res.Edges != 1 || res.Replaced {
		t.Errorf("result = %+v", res)
	}

	loaded, err := hs.LoadHost(context.Background(), tenantID, true)
	if err != nil {
		t.Fatalf("LoadHost: %v", err)
	}

	ada := loaded.NodeAttributes("ada")
	if ada["type"] != "person" || ada["label"] != "Ada" || ada["born"] != float64(1815) {
		t.Errorf("ada = %v", ada)
	}

	if loaded.NodeAttributes("engine")["label"] != "engine" {
		t.Error("label should default to the node id")
	}

	e := loaded.EdgeAttributes("ada", "engine")
	if e["relation"] != "programs" || e["year"] != float64(1843) {
		t.Errorf("edge = %v", e)
	}
}

func TestImportHost_Replace(t *testing.T) {
	base, tenantID, _ := setupTenant(t)
	hs := store.NewHostStore(base)

	insertNode(t, base, tenantID, "old", "n", `{}`)

	g := graph.New(false)
	g.AddEdge("a", "b", nil)

	if _, err := hs.ImportHost(context.Background(), tenantID, g, true); err != nil {
		t.Fatalf("ImportHost: %v", err)
	}

	loaded, err := hs.LoadHost(context.Background(), tenantID, false)
	if err != nil {
		t.Fatalf("LoadHost: %v", err)
	}

	if loaded.HasNode("old") || loaded.Len() != 2 {
		t.Errorf("after replace: %s", loaded)
	}
}

func TestImportHost_InvalidTenant(t *testing.T) {
	env := getTestEnv(t)
	hs := store.NewHostStore(store.Base{Pool: env.pool, Log: env.log})

	_, err := hs.ImportHost(context.Background(), "not-a-uuid", graph.New(true), false)
	if err == nil {
		t.Fatal("expected error for invalid tenant id")
	}

	if errors.Is(err, models.ErrHostTooLarge) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestImportHost_TooLarge(t *testing.T) {
	// The size guard runs before any database access, so a zero Base is enough.
	hs := store.NewHostStore(store.Base{})

	g := graph.New(false)
	for i := 0; i <= 200_000; i++ {
		g.AddNode(fmt.Sprintf("n%d", i), nil)
	}

	_, err := hs.ImportHost(context.Background(), "t1", g, false)
	if !errors.Is(err, models.ErrHostTooLarge) {
		t.Fatalf("ImportHost error = %v, want ErrHostTooLarge", err)
	}
}
