package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reconcileTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "company",
		Subsystem: "reconcile",
		Name:      "total",
		Help:      "Total number of reconcile calls broken down by entity kind and outcome.",
	}, []string{"kind", "outcome"})

	reconcileDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "company",
		Subsystem: "reconcile",
		Name:      "duration_seconds",
		Help:      "Duration of reconcile calls including the transaction commit.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})

	reconcileEdgesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "company",
		Subsystem: "reconcile",
		Name:      "edges_written_total",
		Help:      "Relationship edges written by committed reconcile calls.",
	}, []string{"kind"})

	resolverMissingIDs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "company",
		Subsystem: "resolver",
		Name:      "missing_ids_total",
		Help:      "Requested related ids that did not resolve to an entity.",
	}, []string{"kind"})
)

func recordReconcile(kind Kind, outcome string, elapsed time.Duration) {
	reconcileTotal.WithLabelValues(string(kind), outcome).Inc()
	reconcileDuration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

func recordEdgesWritten(kind Kind, n int) {
	if n <= 0 {
		return
	}
	reconcileEdgesWritten.WithLabelValues(string(kind)).Add(float64(n))
}

func recordMissingReferences(kind Kind, n int) {
	resolverMissingIDs.WithLabelValues(string(kind)).Add(float64(n))
}
