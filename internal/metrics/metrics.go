// Package metrics exposes prometheus instrumentation for run execution:
// counters for runs started/completed/failed, and histograms for run
// duration and neighbourhoods explored, registered against a private
// registry so multiple server instances in tests don't collide on the
// global one.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry bundles the metrics internal/apiserver and cmd/server record
// against, plus the prometheus.Registerer they're registered on.
type Registry struct {
	Registerer prometheus.Registerer

	RunsStarted   *prometheus.CounterVec
	RunsCompleted *prometheus.CounterVec
	RunsFailed    *prometheus.CounterVec

	RunDuration        *prometheus.HistogramVec
	NeighboursExplored *prometheus.HistogramVec
}

// New builds a Registry and registers all of its collectors on reg.
func New(reg prometheus.Registerer) *Registry {
	m := &Registry{
		Registerer: reg,
		RunsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metaheuristics",
			Name:      "runs_started_total",
			Help:      "Number of algorithm runs started, labeled by algorithm.",
		}, []string{"algorithm"}),
		RunsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metaheuristics",
			Name:      "runs_completed_total",
			Help:      "Number of algorithm runs that completed successfully, labeled by algorithm.",
		}, []string{"algorithm"}),
		RunsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metaheuristics",
			Name:      "runs_failed_total",
			Help:      "Number of algorithm runs that returned an error, labeled by algorithm and reason.",
		}, []string{"algorithm", "reason"}),
		RunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "metaheuristics",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of a completed run, labeled by algorithm.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"algorithm"}),
		NeighboursExplored: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "metaheuristics",
			Name:      "neighbours_explored",
			Help:      "Number of neighbourhoods explored by a completed run, labeled by algorithm.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"algorithm"}),
	}

	reg.MustRegister(
		m.RunsStarted,
		m.RunsCompleted,
		m.RunsFailed,
		m.RunDuration,
		m.NeighboursExplored,
	)
	return m
}
