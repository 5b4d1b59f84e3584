package service

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/persistorai/motif/internal/graph"
	"github.com/persistorai/motif/internal/metrics"
)

// HostLoader reads a tenant's graph from storage.
type HostLoader interface {
	LoadHost(ctx context.Context, tenantID string, directed bool) (*graph.Graph, error)
}

type hostKey struct {
	tenantID string
	directed bool
}

// HostCache keeps recently searched host graphs in memory. Concurrent misses
// for the same graph share one load. Graphs are immutable once cached, so
// searches may read them concurrently.
type HostCache struct {
	loader HostLoader
	log    *logrus.Logger
	cache  *lru.Cache[hostKey, *graph.Graph]
	group  singleflight.Group

	// gen counts invalidations per tenant. A load started before an
	// invalidation must not repopulate the cache.
	mu  sync.Mutex
	gen map[string]uint64
}

// NewHostCache creates a HostCache holding at most size graphs.
func NewHostCache(loader HostLoader, log *logrus.Logger, size int) (*HostCache, error) {
	cache, err := lru.New[hostKey, *graph.Graph](max(size, 1))
	if err != nil {
		return nil, fmt.Errorf("creating host cache: %w", err)
	}

	return &HostCache{
		loader: loader,
		log:    log,
		cache:  cache,
		gen:    make(map[string]uint64),
	}, nil
}

// Get returns the tenant's host graph, loading it on a miss.
func (h *HostCache) Get(ctx context.Context, tenantID string, directed bool) (*graph.Graph, error) {
	key := hostKey{tenantID: tenantID, directed: directed}

	if g, ok := h.cache.Get(key); ok {
		metrics.HostCacheEvents.WithLabelValues("hit").Inc()

		return g, nil
	}

	metrics.HostCacheEvents.WithLabelValues("miss").Inc()

	gen := h.generation(tenantID)
	flight := fmt.Sprintf("%s/%t/%d", tenantID, directed, gen)

	// The shared load must outlive any single caller's cancellation.
	loadCtx := context.WithoutCancel(ctx)

	ch := h.group.DoChan(flight, func() (any, error) {
		g, err := h.loader.LoadHost(loadCtx, tenantID, directed)
		if err != nil {
			return nil, err
		}

		metrics.HostGraphNodes.Set(float64(g.Len()))

		h.mu.Lock()
		if h.gen[tenantID] == gen {
			h.cache.Add(key, g)
		}
		h.mu.Unlock()

		return g, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("loading host graph: %w", res.Err)
		}

		return res.Val.(*graph.Graph), nil //nolint:forcetypeassert // only *graph.Graph is stored.
	}
}

// Invalidate drops every cached graph of the tenant.
func (h *HostCache) Invalidate(tenantID string) {
	h.mu.Lock()
	h.gen[tenantID]++
	h.cache.Remove(hostKey{tenantID: tenantID, directed: true})
	h.cache.Remove(hostKey{tenantID: tenantID, directed: false})
	h.mu.Unlock()

	metrics.HostCacheEvents.WithLabelValues("invalidate").Inc()
	h.log.WithField("tenant_id", tenantID).Debug("host.invalidate")
}

// Len returns the number of cached graphs.
func (h *HostCache) Len() int { return h.cache.Len() }

func (h *HostCache) generation(tenantID string) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.gen[tenantID]
}
