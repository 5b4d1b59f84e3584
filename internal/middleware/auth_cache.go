package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	tenantCacheTTL   = 5 * time.Minute
	negativeCacheTTL = 30 * time.Second
	maxCacheEntries  = 10000
)

// errCachedNotFound is returned for negative cache hits.
var errCachedNotFound = errors.New("tenant not found (cached)")

// hashKey returns the hex SHA-256 of an API key so raw keys are never held
// in memory.
func hashKey(apiKey string) string {
	h := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(h[:])
}

// CachedTenantLookup wraps a TenantLookup with bounded, expiring caches of
// hits and misses. Misses expire sooner so a newly issued key works quickly.
type CachedTenantLookup struct {
	inner    TenantLookup
	hits     *expirable.LRU[string, string]
	negative *expirable.LRU[string, struct{}]
}

// NewCachedTenantLookup creates a caching wrapper around inner.
func NewCachedTenantLookup(inner TenantLookup) *CachedTenantLookup {
	return &CachedTenantLookup{
		inner:    inner,
		hits:     expirable.NewLRU[string, string](maxCacheEntries, nil, tenantCacheTTL),
		negative: expirable.NewLRU[string, struct{}](maxCacheEntries, nil, negativeCacheTTL),
	}
}

// GetTenantByAPIKey returns a cached tenant ID or delegates to the inner lookup.
func (c *CachedTenantLookup) GetTenantByAPIKey(ctx context.Context, apiKey string) (string, error) {
	hk := hashKey(apiKey)

	if tenantID, ok := c.hits.Get(hk); ok {
		return tenantID, nil
	}

	if c.negative.Contains(hk) {
		return "", errCachedNotFound
	}

	tenantID, err := c.inner.GetTenantByAPIKey(ctx, apiKey)
	if err != nil {
		// Context errors say nothing about the key.
		if ctx.Err() == nil {
			c.negative.Add(hk, struct{}{})
		}

		return "", err
	}

	c.hits.Add(hk, tenantID)

	return tenantID, nil
}
