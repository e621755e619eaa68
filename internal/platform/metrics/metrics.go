// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ResultCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "longest_route_cache_hits_total",
			Help: "Day queries answered from a cache level without scanning waypoints",
		},
		[]string{"level"}, // "memory", "store"
	)

	ResultCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "longest_route_cache_misses_total",
			Help: "Day queries that required a waypoint scan",
		},
	)

	AggregatorScans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daily_aggregator_scans_total",
			Help: "Longest-route scans over a day-window",
		},
		[]string{"mode"}, // "pushdown", "in_process"
	)

	WaypointsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoints_total",
			Help: "Waypoint submissions by outcome",
		},
		[]string{"result"}, // "accepted", "not_found", "stale", "invalid", "error"
	)

	RoutesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "routes_created_total",
			Help: "Route ids allocated",
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
