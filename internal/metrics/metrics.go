// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeOK                = "ok"
	OutcomeNotFound          = "not_found"
	OutcomeAlreadyRegistered = "already_registered"
	OutcomeNotRegistered     = "not_registered"
	OutcomeInvalid           = "invalid"
	OutcomeError             = "error"
)

var (
	Signups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_signups_total",
			Help: "Total number of signup attempts by outcome",
		},
		[]string{"outcome"},
	)

	Unregistrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_unregistrations_total",
			Help: "Total number of unregister attempts by outcome",
		},
		[]string{"outcome"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
