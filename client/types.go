package client

import "time"

// Graph is a graph document: the motif of a search or a host graph import.
type Graph struct {
	Directed bool        `json:"directed" yaml:"directed"`
	Nodes    []GraphNode `json:"nodes" yaml:"nodes"`
	Edges    []GraphEdge `json:"edges" yaml:"edges"`
}

// GraphNode is one node of a Graph.
type GraphNode struct {
	ID         string         `json:"id" yaml:"id"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// GraphEdge is one edge of a Graph.
type GraphEdge struct {
	Source     string         `json:"source" yaml:"source"`
	Target     string         `json:"target" yaml:"target"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// SearchRequest is the body of a motif search.
type SearchRequest struct {
	Motif            Graph               `json:"motif"`
	Directed         *bool               `json:"directed,omitempty"`
	IsomorphismsOnly bool                `json:"isomorphisms_only,omitempty"`
	Hints            []map[string]string `json:"hints,omitempty"`
	Interestingness  map[string]float64  `json:"interestingness,omitempty"`
	Policy           string              `json:"policy,omitempty"`
	Limit            int                 `json:"limit,omitempty"`
	CountOnly        bool                `json:"count_only,omitempty"`
	Workers          int                 `json:"workers,omitempty"`
	Profile          bool                `json:"profile,omitempty"`
}

// SearchStats are the engine counters of one search.
type SearchStats struct {
	Expanded     int64 `json:"expanded"`
	Emitted      int64 `json:"emitted"`
	Discarded    int64 `json:"discarded"`
	PeakPending  int   `json:"peak_pending"`
	DroppedHints int   `json:"dropped_hints"`
	QueueHistory []int `json:"queue_history,omitempty"`
}

// SearchResult is the response of a motif search or count.
type SearchResult struct {
	Mappings   []map[string]string `json:"mappings,omitempty"`
	Count      int                 `json:"count"`
	Truncated  bool                `json:"truncated"`
	HostNodes  int                 `json:"host_nodes"`
	HostEdges  int                 `json:"host_edges"`
	Mode       string              `json:"mode"`
	DurationMS float64             `json:"duration_ms"`
	Stats      SearchStats         `json:"stats"`
}

// SearchLogEntry is one past search.
type SearchLogEntry struct {
	ID         int64     `json:"id"`
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

// ImportResult reports what a host import wrote.
type ImportResult struct {
	Nodes    int  `json:"nodes"`
	Edges    int  `json:"edges"`
	Replaced bool `json:"replaced"`
}

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	SchemaVersion int     `json:"schema_version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ReadinessResponse is returned by the readiness endpoint.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
