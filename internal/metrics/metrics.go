// Package metrics defines Prometheus metrics for the motif service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "motif_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motif_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motif_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	// SearchDuration is labelled by driver: sequential or parallel.
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "motif_search_duration_seconds",
			Help:    "Motif search duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"mode"},
	)

	SearchResults = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "motif_search_results_total",
			Help: "Total mappings emitted by motif searches",
		},
	)

	BackbonesExpanded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "motif_backbones_expanded_total",
			Help: "Total partial mappings expanded by motif searches",
		},
	)

	PeakPending = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "motif_search_peak_pending",
			Help:    "Largest work queue length reached per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		},
	)

	HostGraphNodes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "motif_host_graph_nodes",
			Help: "Node count of the most recently loaded host graph",
		},
	)

	HostCacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motif_host_cache_events_total",
			Help: "Host graph cache hits, misses and invalidations",
		},
		[]string{"event"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		SearchDuration, SearchResults, BackbonesExpanded, PeakPending,
		HostGraphNodes, HostCacheEvents,
	)
}
