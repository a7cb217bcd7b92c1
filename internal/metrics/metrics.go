// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StageDuration observes how long each workflow stage takes.
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "po_workflow",
		Name:      "stage_duration_seconds",
		Help:      "Duration of workflow stage execution.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})

	// Decisions counts completed workflow runs by business outcome.
	Decisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "po_workflow",
		Name:      "decisions_total",
		Help:      "Completed workflow runs by final decision.",
	}, []string{"decision"})

	// CollaboratorErrors counts transport-level collaborator failures.
	CollaboratorErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "po_workflow",
		Name:      "collaborator_errors_total",
		Help:      "Collaborator call failures by operation.",
	}, []string{"operation"})

	// PlanRequests counts payment plan computations by result.
	PlanRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "po_workflow",
		Name:      "payment_plan_requests_total",
		Help:      "Payment plan computations by result.",
	}, []string{"result"})
)
