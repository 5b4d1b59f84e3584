package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/motif/internal/graph"
	"github.com/persistorai/motif/internal/models"
)

// mockHostLoader counts loads and returns configured responses.
type mockHostLoader struct {
	loads atomic.Int64

	loadHost func(ctx context.Context, tenantID string, directed bool) (*graph.Graph, error)
}

func (m *mockHostLoader) LoadHost(ctx context.Context, tenantID string, directed bool) (*graph.Graph, error) {
	m.loads.Add(1)
	return m.loadHost(ctx, tenantID, directed)
}

// mockRecorder collects recorded search log entries.
type mockRecorder struct {
	mu      sync.Mutex
	entries []*models.SearchLogEntry
	err     error
}

func (m *mockRecorder) RecordSearch(_ context.Context, e *models.SearchLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)

	return m.err
}

func (m *mockRecorder) getEntries() []*models.SearchLogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*models.SearchLogEntry(nil), m.entries...)
}

// mockSearchLogger captures enqueued entries synchronously.
type mockSearchLogger struct {
	mu      sync.Mutex
	entries []*models.SearchLogEntry
}

func (m *mockSearchLogger) Enqueue(e *models.SearchLogEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
}

func (m *mockSearchLogger) last() *models.SearchLogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) == 0 {
		return nil
	}

	return m.entries[len(m.entries)-1]
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return log
}

// cycleGraph builds a cycle through ids in order.
func cycleGraph(directed bool, ids ...string) *graph.Graph {
	g := graph.New(directed)
	for _, id := range ids {
		g.AddNode(id, nil)
	}

	for i, id := range ids {
		g.AddEdge(id, ids[(i+1)%len(ids)], nil)
	}

	return g
}

// staticLoader always returns g.
func staticLoader(g *graph.Graph) *mockHostLoader {
	return &mockHostLoader{
		loadHost: func(context.Context, string, bool) (*graph.Graph, error) { return g, nil },
	}
}

// triangleDoc is a directed 3-cycle motif document.
func triangleDoc() graph.Document {
	return graph.Document{
		Directed: true,
		Nodes:    []graph.NodeDocument{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []graph.EdgeDocument{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "c"},
			{Source: "c", Target: "a"},
		},
	}
}
