package metrics

import (
	"time"
)

// RecordSolve records a completed solve run with its outcome. Safe to call
// on a nil registry so instrumentation stays optional.
func (r *Registry) RecordSolve(status string, iterations int, duration time.Duration) {
	if r == nil {
		return
	}
	r.SolvesTotal.WithLabelValues(status).Inc()
	r.SolveDuration.Observe(duration.Seconds())
	r.SolveIterations.Observe(float64(iterations))
}

// RecordEquationError records a component equation failure
func (r *Registry) RecordEquationError() {
	if r == nil {
		return
	}
	r.EquationErrorsTotal.Inc()
}

// RecordBalanceWarning records a non-fatal balance computation warning
func (r *Registry) RecordBalanceWarning() {
	if r == nil {
		return
	}
	r.BalanceWarningsTotal.Inc()
}

// RecordPropertyEvaluation records one property backend call
func (r *Registry) RecordPropertyEvaluation(fluid, status string) {
	if r == nil {
		return
	}
	r.PropertyEvaluationsTotal.WithLabelValues(fluid, status).Inc()
}

// UpdateGraphMetrics updates the gauges describing the system graph
func (r *Registry) UpdateGraphMetrics(models, blocks, ports, connections int) {
	if r == nil {
		return
	}
	r.ModelsRegistered.Set(float64(models))
	r.BlocksRegistered.Set(float64(blocks))
	r.PortsRegistered.Set(float64(ports))
	r.ConnectionsTotal.Set(float64(connections))
}
