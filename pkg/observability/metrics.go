// Package observability exposes the application's Prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StorageOperations counts repository-level storage calls by operation
	// and outcome.
	StorageOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_storage_operations_total",
		Help: "Storage operations by operation name and result.",
	}, []string{"operation", "result"})

	// EventsPublished counts notification events by type and outcome.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_notification_events_total",
		Help: "Notification events by event type and result.",
	}, []string{"event_type", "result"})

	// EventsDropped counts events discarded because the dispatch queue was
	// full.
	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_notification_events_dropped_total",
		Help: "Notification events dropped due to a full dispatch queue.",
	})
)

// ObserveStorage records one storage call outcome.
func ObserveStorage(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	StorageOperations.WithLabelValues(operation, result).Inc()
}
