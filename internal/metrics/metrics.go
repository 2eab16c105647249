// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Enrollment outcomes.
const (
	OutcomeEnrolled        = "enrolled"
	OutcomeFull            = "full"
	OutcomeAlreadyEnrolled = "already_enrolled"
	OutcomeNotFound        = "not_found"
	OutcomeError           = "error"
)

var (
	EnrollmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventos_enrollments_total",
			Help: "Enrollment attempts by outcome",
		},
		[]string{"outcome"},
	)

	EventsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventos_events_created_total",
			Help: "Events created",
		},
	)

	EventsDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventos_events_deleted_total",
			Help: "Events deleted",
		},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventos_logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eventos_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
