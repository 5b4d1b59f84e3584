package service

import (
	"context"
	"errors"
	"testing"

	"github.com/persistorai/motif/internal/graph"
	"github.com/persistorai/motif/internal/models"
)

type mockImporter struct {
	importHost func(ctx context.Context, tenantID string, g *graph.Graph, replace bool) (*models.ImportHostResult, error)
}

func (m *mockImporter) ImportHost(ctx context.Context, tenantID string, g *graph.Graph, replace bool) (*models.ImportHostResult, error) {
	return m.importHost(ctx, tenantID, g, replace)
}

func TestHostService_ImportInvalidatesCache(t *testing.T) {
	loader := staticLoader(cycleGraph(true, "A", "B"))

	cache, err := NewHostCache(loader, testLogger(), 4)
	if err != nil {
		t.Fatalf("NewHostCache: %v", err)
	}

	if _, err := cache.Get(context.Background(), "t1", true); err != nil {
		t.Fatalf("Get: %v", err)
	}

	var imported *graph.Graph

	svc := NewHostService(&mockImporter{
		importHost: func(_ context.Context, _ string, g *graph.Graph, replace bool) (*models.ImportHostResult, error) {
			imported = g
			return &models.ImportHostResult{Nodes: g.Len(), Edges: g.EdgeCount(), Replaced: replace}, nil
		},
	}, cache, testLogger())

	res, err := svc.ImportHost(context.Background(), "t1", models.ImportHostRequest{Graph: triangleDoc(), Replace: true})
	if err != nil {
		t.Fatalf("ImportHost: %v", err)
	}

	if res.Nodes != 3 || res.Edges != 3 || !res.Replaced {
		t.Errorf("result = %+v", res)
	}

	if imported == nil || !imported.Directed() {
		t.Error("importer did not receive the directed graph")
	}

	if cache.Len() != 0 {
		t.Error("import did not invalidate the host cache")
	}
}

func TestHostService_ReplaceWithEmptyGraph(t *testing.T) {
	cache, err := NewHostCache(staticLoader(cycleGraph(true, "A")), testLogger(), 4)
	if err != nil {
		t.Fatalf("NewHostCache: %v", err)
	}

	svc := NewHostService(&mockImporter{
		importHost: func(_ context.Context, _ string, g *graph.Graph, _ bool) (*models.ImportHostResult, error) {
			if g.Len() != 0 {
				t.Errorf("expected an empty graph, got %d nodes", g.Len())
			}

			return &models.ImportHostResult{Replaced: true}, nil
		},
	}, cache, testLogger())

	if _, err := svc.ImportHost(context.Background(), "t1", models.ImportHostRequest{Replace: true}); err != nil {
		t.Fatalf("ImportHost: %v", err)
	}
}

func TestHostService_ImportErrors(t *testing.T) {
	cache, err := NewHostCache(staticLoader(cycleGraph(true, "A")), testLogger(), 4)
	if err != nil {
		t.Fatalf("NewHostCache: %v", err)
	}

	boom := errors.New("db down")
	svc := NewHostService(&mockImporter{
		importHost: func(context.Context, string, *graph.Graph, bool) (*models.ImportHostResult, error) {
			return nil, boom
		},
	}, cache, testLogger())

	if _, err := svc.ImportHost(context.Background(), "t1", models.ImportHostRequest{}); !errors.Is(err, models.ErrInvalidRequest) {
		t.Errorf("empty import error = %v, want ErrInvalidRequest", err)
	}

	if _, err := svc.ImportHost(context.Background(), "t1", models.ImportHostRequest{Graph: triangleDoc()}); !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}
