package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the simulator
type Registry struct {
	// Solver Metrics
	SolvesTotal         *prometheus.CounterVec
	SolveDuration       prometheus.Histogram
	SolveIterations     prometheus.Histogram
	EquationErrorsTotal prometheus.Counter
	BalanceWarningsTotal prometheus.Counter

	// System Graph Metrics
	ModelsRegistered prometheus.Gauge
	BlocksRegistered prometheus.Gauge
	PortsRegistered  prometheus.Gauge
	ConnectionsTotal prometheus.Gauge

	// Property Backend Metrics
	PropertyEvaluationsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initSolverMetrics()
	r.initGraphMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
