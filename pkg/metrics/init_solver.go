package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSolverMetrics() {
	r.SolvesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "thermosim_solves_total",
			Help: "Total number of solve runs",
		},
		[]string{"status"}, // converged, not-converged, errored
	)

	r.SolveDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "thermosim_solve_duration_seconds",
			Help:    "Duration of solve runs in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
	)

	r.SolveIterations = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "thermosim_solve_iterations",
			Help:    "Number of iterations per solve run",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	r.EquationErrorsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "thermosim_equation_errors_total",
			Help: "Total number of component equation failures",
		},
	)

	r.BalanceWarningsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "thermosim_balance_warnings_total",
			Help: "Total number of non-fatal balance computation warnings",
		},
	)

	r.PropertyEvaluationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "thermosim_property_evaluations_total",
			Help: "Total number of property backend evaluations",
		},
		[]string{"fluid", "status"},
	)
}
