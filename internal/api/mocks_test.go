package api_test

import (
	"context"

	"github.com/persistorai/motif/internal/models"
)

// mockMotifService implements api.MotifService for testing.
type mockMotifService struct {
	searchFn func(ctx context.Context, tenantID string, req models.SearchRequest) (*models.SearchResult, error)
}

func (m *mockMotifService) Search(ctx context.Context, tenantID string, req models.SearchRequest) (*models.SearchResult, error) {
	return m.searchFn(ctx, tenantID, req)
}

// mockHostService implements api.HostService for testing.
type mockHostService struct {
	importFn     func(ctx context.Context, tenantID string, req models.ImportHostRequest) (*models.ImportHostResult, error)
	invalidateFn func(tenantID string)
}

func (m *mockHostService) ImportHost(ctx context.Context, tenantID string, req models.ImportHostRequest) (*models.ImportHostResult, error) {
	return m.importFn(ctx, tenantID, req)
}

func (m *mockHostService) Invalidate(tenantID string) {
	m.invalidateFn(tenantID)
}

// mockHistory implements api.SearchHistory for testing.
type mockHistory struct {
	listFn func(ctx context.Context, tenantID string, limit int) ([]models.SearchLogEntry, error)
}

func (m *mockHistory) ListSearches(ctx context.Context, tenantID string, limit int) ([]models.SearchLogEntry, error) {
	return m.listFn(ctx, tenantID, limit)
}

// mockTenantLookup maps API keys to tenants.
type mockTenantLookup map[string]string

func (m mockTenantLookup) GetTenantByAPIKey(_ context.Context, apiKey string) (string, error) {
	if tid, ok := m[apiKey]; ok {
		return tid, nil
	}

	return "", models.ErrTenantNotFound
}
