package models

import "time"

// SearchLogEntry records one finished search for the tenant's history.
type SearchLogEntry struct {
	ID         int64     `json:"id"`
	TenantID   string    `json:"-"`
	Mode       string    `json:"mode"`
	MotifNodes int       `json:"motif_nodes"`
	MotifEdges int       `json:"motif_edges"`
	Isomorphic bool      `json:"isomorphisms_only"`
	CountOnly  bool      `json:"count_only"`
	Results    int       `json:"results"`
	Truncated  bool      `json:"truncated"`
	Expanded   int64     `json:"expanded"`
	DurationMS float64   `json:"duration_ms"`
	ErrorCode  string    `json:"error_code,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
