package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Catalog client metrics
var (
	CatalogRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showfinder_catalog_requests_total",
			Help: "Total number of catalog API requests by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	CatalogRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showfinder_catalog_request_duration_seconds",
			Help:    "Latency of catalog API requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// UI event metrics
var (
	UIEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showfinder_ui_events_total",
			Help: "Total number of dispatched UI events by event type and outcome.",
		},
		[]string{"event", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		CatalogRequestsTotal,
		CatalogRequestDuration,
		UIEventsTotal,
	)
}
