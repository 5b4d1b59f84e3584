package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/persistorai/motif/internal/api"
	"github.com/persistorai/motif/internal/middleware"
	"github.com/persistorai/motif/internal/models"
)

func newFullRouter(svc api.MotifService) http.Handler {
	return api.NewRouter(&api.RouterDeps{
		Log:               testLogger(),
		Motifs:            svc,
		Hosts:             &mockHostService{},
		TenantLookup:      mockTenantLookup{"key-1": testTenantID},
		Version:           "test",
		SearchesPerTenant: 2,
	})
}

func TestRouter_RequiresAuth(t *testing.T) {
	t.Parallel()

	h := newFullRouter(&mockMotifService{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/motifs/search", strings.NewReader(triangleBody)))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRouter_SearchWithAPIKey(t *testing.T) {
	t.Parallel()

	svc := &mockMotifService{
		searchFn: func(_ context.Context, tenantID string, _ models.SearchRequest) (*models.SearchResult, error) {
			if tenantID != testTenantID {
				t.Errorf("tenantID = %q", tenantID)
			}

			return &models.SearchResult{Count: 3, Mode: "sequential"}, nil
		},
	}

	h := newFullRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/motifs/search", strings.NewReader(triangleBody))
	req.Header.Set("Authorization", "Bearer key-1")
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("missing request id header")
	}

	if w.Header().Get(middleware.VersionHeader) != "test" {
		t.Error("missing version header")
	}
}

func TestRouter_HealthIsPublic(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	newFullRouter(&mockMotifService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
