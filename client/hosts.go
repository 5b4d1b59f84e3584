package client

import "context"

// HostService manages the tenant graph that searches run against.
type HostService struct {
	c *Client
}

// Import upserts g into the tenant's graph. With replace, the existing graph
// is deleted first.
func (s *HostService) Import(ctx context.Context, g *Graph, replace bool) (*ImportResult, error) {
	body := struct {
		Graph   *Graph `json:"graph"`
		Replace bool   `json:"replace,omitempty"`
	}{Graph: g, Replace: replace}

	var resp ImportResult
	if err := s.c.post(ctx, "/api/v1/hosts/import", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Invalidate drops the server's cached copy of the tenant graph.
func (s *HostService) Invalidate(ctx context.Context) error {
	return s.c.post(ctx, "/api/v1/hosts/invalidate", nil, nil)
}
