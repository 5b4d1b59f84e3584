package client

import (
	"context"
	"net/url"
	"strconv"
)

// MotifService handles motif searches.
type MotifService struct {
	c *Client
}

// Search finds mappings of req.Motif into the tenant's graph.
func (s *MotifService) Search(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	var resp SearchResult
	if err := s.c.post(ctx, "/api/v1/motifs/search", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Count returns the number of mappings without transferring them.
func (s *MotifService) Count(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	var resp SearchResult
	if err := s.c.post(ctx, "/api/v1/motifs/count", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// History returns the tenant's most recent searches, newest first.
func (s *MotifService) History(ctx context.Context, limit int) ([]SearchLogEntry, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var resp struct {
		Searches []SearchLogEntry `json:"searches"`
	}
	if err := s.c.get(ctx, "/api/v1/motifs/history", params, &resp); err != nil {
		return nil, err
	}
	return resp.Searches, nil
}
