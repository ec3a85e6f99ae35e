package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labtrack_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "labtrack_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lab_sessions_started_total",
			Help: "Sessions started via the login endpoint",
		},
	)

	SessionsEnded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lab_sessions_ended_total",
			Help: "Sessions ended, by who ended them",
		},
		[]string{"reason"}, // self | forced
	)

	SessionsArchived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lab_sessions_archived_total",
			Help: "Sessions hidden from the dashboard by clear_logs",
		},
	)
)
