// Package service runs motif searches against tenant host graphs.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/motif/internal/metrics"
	"github.com/persistorai/motif/internal/models"
	"github.com/persistorai/motif/internal/motif"
)

// SearchLimits are the server-side bounds applied to every search.
type SearchLimits struct {
	Workers    int
	Policy     motif.Policy
	MaxPending int
	MaxResults int
	Timeout    time.Duration

	// CacheSize is the predicate cache capacity per search. Zero disables it.
	CacheSize int
}

// SearchLogger receives one entry per finished search.
type SearchLogger interface {
	Enqueue(e *models.SearchLogEntry)
}

// MotifService implements domain.MotifService.
type MotifService struct {
	hosts   *HostCache
	limits  SearchLimits
	history SearchLogger
	log     *logrus.Logger
}

// NewMotifService creates a MotifService. history may be nil.
func NewMotifService(hosts *HostCache, limits SearchLimits, history SearchLogger, log *logrus.Logger) *MotifService {
	if limits.MaxResults <= 0 {
		limits.MaxResults = 10000
	}

	if limits.Workers <= 0 {
		limits.Workers = 1
	}

	return &MotifService{hosts: hosts, limits: limits, history: history, log: log}
}

// Search finds the mappings of req.Motif into the tenant's graph.
func (s *MotifService) Search(ctx context.Context, tenantID string, req models.SearchRequest) (*models.SearchResult, error) {
	start := time.Now()

	res, err := s.search(ctx, tenantID, &req)

	elapsed := time.Since(start)
	s.record(tenantID, &req, res, elapsed, err)

	if err != nil {
		return nil, err
	}

	res.DurationMS = float64(elapsed.Microseconds()) / 1000

	metrics.SearchDuration.WithLabelValues(res.Mode).Observe(elapsed.Seconds())
	metrics.SearchResults.Add(float64(res.Count))
	metrics.BackbonesExpanded.Add(float64(res.Stats.Expanded))
	metrics.PeakPending.Observe(float64(res.Stats.PeakPending))

	s.log.WithFields(logrus.Fields{
		"tenant_id":   tenantID,
		"mode":        res.Mode,
		"count":       res.Count,
		"truncated":   res.Truncated,
		"expanded":    res.Stats.Expanded,
		"duration_ms": res.DurationMS,
	}).Debug("motif.search")

	return res, nil
}

func (s *MotifService) search(ctx context.Context, tenantID string, req *models.SearchRequest) (*models.SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m, err := req.MotifGraph()
	if err != nil {
		return nil, err
	}

	if s.limits.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.limits.Timeout)
		defer cancel()
	}

	directed := req.Directedness()

	host, err := s.hosts.Get(ctx, tenantID, directed)
	if err != nil {
		return nil, err
	}

	sess, err := motif.Prepare(m, host, s.options(req, directed))
	if err != nil {
		return nil, err
	}

	if dropped := sess.Stats().DroppedHints; dropped > 0 {
		s.log.WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"dropped":   dropped,
			"hints":     len(req.Hints),
		}).Warn("inconsistent hints dropped")
	}

	res := &models.SearchResult{
		HostNodes: host.Len(),
		HostEdges: host.EdgeCount(),
	}

	limit := s.limits.MaxResults
	if req.Limit > 0 {
		limit = min(req.Limit, limit)
	}

	workers := min(req.Workers, s.limits.Workers)

	switch {
	case workers > 1:
		res.Mode = "parallel"

		found, err := sess.SearchParallel(ctx, workers)
		if err != nil {
			return nil, err
		}

		if req.CountOnly {
			res.Count, res.Truncated = capCount(len(found), req.Limit)

			break
		}

		if len(found) > limit {
			found = found[:limit]
			res.Truncated = true
		}

		res.Mappings = toMaps(found)
		res.Count = len(found)
	case req.CountOnly:
		res.Mode = "count"

		// Counting holds no mappings, so only an explicit limit applies.
		countLimit := 0
		if req.Limit > 0 {
			countLimit = req.Limit + 1
		}

		n, err := sess.Count(ctx, countLimit)
		if err != nil {
			return nil, err
		}

		res.Count, res.Truncated = capCount(n, req.Limit)
	default:
		res.Mode = "sequential"

		found, err := sess.Collect(ctx, limit+1)
		if err != nil {
			return nil, err
		}

		if len(found) > limit {
			found = found[:limit]
			res.Truncated = true
		}

		res.Mappings = toMaps(found)
		res.Count = len(found)
	}

	res.Stats = sess.Stats()

	return res, nil
}

func (s *MotifService) options(req *models.SearchRequest, directed bool) motif.Options {
	policy := s.limits.Policy
	if req.Policy != "" {
		// Validate has already parsed it.
		policy, _ = motif.ParsePolicy(req.Policy)
	}

	cacheSize := s.limits.CacheSize
	if cacheSize <= 0 {
		cacheSize = -1
	}

	return motif.Options{
		Interestingness:  req.Interestingness,
		Directed:         &directed,
		IsomorphismsOnly: req.IsomorphismsOnly,
		Hints:            req.EngineHints(),
		Policy:           policy,
		MaxPending:       s.limits.MaxPending,
		Profile:          req.Profile,
		CacheSize:        cacheSize,
	}
}

func (s *MotifService) record(tenantID string, req *models.SearchRequest, res *models.SearchResult, elapsed time.Duration, err error) {
	if s.history == nil {
		return
	}

	e := &models.SearchLogEntry{
		TenantID:   tenantID,
		MotifNodes: len(req.Motif.Nodes),
		MotifEdges: len(req.Motif.Edges),
		Isomorphic: req.IsomorphismsOnly,
		CountOnly:  req.CountOnly,
		DurationMS: float64(elapsed.Microseconds()) / 1000,
		CreatedAt:  time.Now().UTC(),
	}

	if err != nil {
		e.ErrorCode = ErrorCode(err)
	} else {
		e.Mode = res.Mode
		e.Results = res.Count
		e.Truncated = res.Truncated
		e.Expanded = res.Stats.Expanded
	}

	s.history.Enqueue(e)
}

// ErrorCode classifies a search error for logs and API responses.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, models.ErrInvalidRequest),
		errors.Is(err, motif.ErrStructural),
		errors.Is(err, motif.ErrInvalidHint):
		return "invalid_request"
	case errors.Is(err, motif.ErrQueueFull):
		return "search_limit"
	case errors.Is(err, models.ErrHostTooLarge):
		return "host_too_large"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "internal_error"
	}
}

// capCount applies an optional limit to a count.
func capCount(n, limit int) (int, bool) {
	if limit > 0 && n > limit {
		return limit, true
	}

	return n, false
}

func toMaps(found []motif.Mapping) []map[string]string {
	out := make([]map[string]string, len(found))
	for i, m := range found {
		out[i] = m
	}

	return out
}
