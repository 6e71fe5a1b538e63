package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "testhub",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "testhub",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Report pipeline
	ReportsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "testhub",
			Subsystem: "reports",
			Name:      "generated_total",
			Help:      "Total report artifacts rendered",
		},
		[]string{"format"},
	)

	ReportCacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "testhub",
			Subsystem: "reports",
			Name:      "cache_hits_total",
			Help:      "Total report downloads served from an existing artifact",
		},
		[]string{"format"},
	)

	ReportJobFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "testhub",
			Subsystem: "reports",
			Name:      "job_failures_total",
			Help:      "Total background report generation failures",
		},
	)

	// Batch uploads
	BatchUploadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "testhub",
			Subsystem: "integration",
			Name:      "batch_uploads_total",
			Help:      "Total accepted batch upload requests",
		},
	)

	BatchEntriesCommittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "testhub",
			Subsystem: "integration",
			Name:      "batch_entries_committed_total",
			Help:      "Total batch entries committed to the store",
		},
	)

	BatchEntriesSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "testhub",
			Subsystem: "integration",
			Name:      "batch_entries_skipped_total",
			Help:      "Total batch entries skipped due to validation or lookup failures",
		},
	)

	// Jira integration
	JiraSyncErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "testhub",
			Subsystem: "jira",
			Name:      "sync_errors_total",
			Help:      "Total per-issue Jira synchronization failures",
		},
	)
)

// RecordRequest records counters and latency for one HTTP request.
func RecordRequest(method, endpoint, status string, seconds float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(seconds)
}
