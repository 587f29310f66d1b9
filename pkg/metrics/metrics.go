// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// UpstreamRequestDuration tracks calls to the CRM backend.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Upstream API request duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path", "status"},
	)

	// StoreSize tracks the number of cached entities per store.
	StoreSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "entity_store_size",
			Help: "Number of cached entities per store",
		},
		[]string{"kind"},
	)

	// StoreMutationsTotal tracks store mutations by kind and operation.
	StoreMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_store_mutations_total",
			Help: "Total store mutations",
		},
		[]string{"kind", "op"},
	)

	// OptimisticRollbacksTotal tracks optimistic updates undone after an
	// upstream failure.
	OptimisticRollbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimistic_rollbacks_total",
			Help: "Optimistic updates rolled back after upstream failure",
		},
		[]string{"kind"},
	)

	// IntentClassificationsTotal tracks AI intent classifications.
	IntentClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intent_classifications_total",
			Help: "Total intent classifications",
		},
		[]string{"provider", "label"},
	)

	// EventsPublishedTotal tracks audit events published to JetStream.
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_events_published_total",
			Help: "Audit events published to the event stream",
		},
		[]string{"kind", "type"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordUpstreamRequest records metrics for an upstream API call.
func RecordUpstreamRequest(method, path, status string, duration float64) {
	UpstreamRequestDuration.WithLabelValues(method, path, status).Observe(duration)
}

// RecordMutation records a store mutation.
func RecordMutation(kind, op string) {
	StoreMutationsTotal.WithLabelValues(kind, op).Inc()
}

// RecordRollback records an optimistic rollback.
func RecordRollback(kind string) {
	OptimisticRollbacksTotal.WithLabelValues(kind).Inc()
}
