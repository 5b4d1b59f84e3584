// Package domain defines the service interfaces shared by the REST layer and
// the service implementation. Consumers should depend on these interfaces
// rather than re-declaring equivalent ones.
package domain

import (
	"context"

	"github.com/persistorai/motif/internal/models"
)

// MotifService runs motif searches against a tenant's graph.
type MotifService interface {
	Search(ctx context.Context, tenantID string, req models.SearchRequest) (*models.SearchResult, error)
}

// HostService manages the tenant graph that searches run against.
type HostService interface {
	ImportHost(ctx context.Context, tenantID string, req models.ImportHostRequest) (*models.ImportHostResult, error)
	Invalidate(tenantID string)
}

// SearchHistory lists past searches of a tenant.
type SearchHistory interface {
	ListSearches(ctx context.Context, tenantID string, limit int) ([]models.SearchLogEntry, error)
}
