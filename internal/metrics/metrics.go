// Package metrics defines prometheus metrics to expose
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "frontend_api_upstream_request_duration_seconds",
			Help:    "Time taken for upstream api calls in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"route", "status_code"},
	)

	SessionLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontend_api_session_lookups_total",
			Help: "Session lookups by where they were answered from",
		},
		[]string{"source"},
	)

	ResponseCodes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontend_api_status_code",
			Help: "Status Codes",
		},
		[]string{"path", "status_code"},
	)
)

// Session lookup sources
const (
	SessionSourceCache = "cache"
	SessionSourceStore = "store"
	SessionSourceMiss  = "miss"
)
