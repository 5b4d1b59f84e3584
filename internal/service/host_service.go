package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/motif/internal/graph"
	"github.com/persistorai/motif/internal/models"
)

// HostImporter writes a graph into a tenant's storage.
type HostImporter interface {
	ImportHost(ctx context.Context, tenantID string, g *graph.Graph, replace bool) (*models.ImportHostResult, error)
}

// HostService implements domain.HostService.
type HostService struct {
	importer HostImporter
	cache    *HostCache
	log      *logrus.Logger
}

// NewHostService creates a HostService.
func NewHostService(importer HostImporter, cache *HostCache, log *logrus.Logger) *HostService {
	return &HostService{importer: importer, cache: cache, log: log}
}

// ImportHost validates and stores a graph, then drops the tenant's cached
// host graphs. The change listener would do the same once the notification
// arrives; invalidating here makes the next search see the import at once.
func (s *HostService) ImportHost(ctx context.Context, tenantID string, req models.ImportHostRequest) (*models.ImportHostResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	g := graph.New(req.Graph.Directed)
	if len(req.Graph.Nodes) > 0 || len(req.Graph.Edges) > 0 {
		built, err := req.Graph.Build()
		if err != nil {
			return nil, fmt.Errorf("%w: graph: %w", models.ErrInvalidRequest, err)
		}

		g = built
	}

	res, err := s.importer.ImportHost(ctx, tenantID, g, req.Replace)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(tenantID)

	return res, nil
}

// Invalidate drops the tenant's cached host graphs.
func (s *HostService) Invalidate(tenantID string) {
	s.cache.Invalidate(tenantID)
}
