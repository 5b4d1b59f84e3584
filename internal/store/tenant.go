package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/persistorai/motif/internal/dbpool"
	"github.com/persistorai/motif/internal/models"
)

// TenantStore handles tenant lookups (API key → tenant ID).
type TenantStore struct {
	Pool *dbpool.Pool
}

// NewTenantStore creates a new TenantStore.
func NewTenantStore(pool *dbpool.Pool) *TenantStore {
	return &TenantStore{Pool: pool}
}

// HashAPIKey returns the hex SHA-256 digest stored in tenants.api_key_hash.
func HashAPIKey(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))

	return hex.EncodeToString(sum[:])
}

// GetTenantByAPIKey looks up a tenant ID by API key hash.
func (s *TenantStore) GetTenantByAPIKey(ctx context.Context, apiKey string) (string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var tenantID string

	err := s.Pool.QueryRow(ctx, "SELECT id::text FROM tenants WHERE api_key_hash = $1", HashAPIKey(apiKey)).Scan(&tenantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", models.ErrTenantNotFound
	}

	if err != nil {
		return "", fmt.Errorf("looking up tenant by API key: %w", err)
	}

	return tenantID, nil
}
