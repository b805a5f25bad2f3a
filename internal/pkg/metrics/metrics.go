// Package metrics holds the prometheus instrumentation for the handover
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics.
type Metrics struct {
	DeliveriesCreated    prometheus.Counter
	CouriersAssigned     prometheus.Counter
	StatusTransitions    *prometheus.CounterVec
	VerificationFailures prometheus.Counter
	RequestDuration      prometheus.Histogram
	ErrorsCount          *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered on the default registry.
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer, namespace)
}

// NewMetricsWith creates new prometheus metrics registered on the given
// registerer. Tests pass a fresh registry to avoid duplicate registration.
func NewMetricsWith(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DeliveriesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_created_total",
			Help:      "The total number of deliveries created",
		}),
		CouriersAssigned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "couriers_assigned_total",
			Help:      "The total number of successful courier assignments",
		}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "The total number of accepted status transitions",
		}, []string{"target"}),
		VerificationFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verification_failures_total",
			Help:      "The total number of rejected handover verifications",
		}),
		RequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time taken to serve HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
