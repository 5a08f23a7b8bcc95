package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)
	require.NotNil(t, r.GetPrometheusRegistry())

	r.RecordSolve("converged", 3, 50*time.Millisecond)
	r.RecordSolve("converged", 5, 80*time.Millisecond)
	r.RecordSolve("errored", 1, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.SolvesTotal.WithLabelValues("converged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SolvesTotal.WithLabelValues("errored")))
}

func TestGraphGauges(t *testing.T) {
	r := NewRegistry()
	r.UpdateGraphMetrics(4, 2, 12, 6)

	assert.Equal(t, 4.0, testutil.ToFloat64(r.ModelsRegistered))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.BlocksRegistered))
	assert.Equal(t, 12.0, testutil.ToFloat64(r.PortsRegistered))
	assert.Equal(t, 6.0, testutil.ToFloat64(r.ConnectionsTotal))
}

func TestNilRegistryIsSafe(t *testing.T) {
	var r *Registry

	assert.NotPanics(t, func() {
		r.RecordSolve("converged", 3, time.Millisecond)
		r.RecordEquationError()
		r.RecordBalanceWarning()
		r.RecordPropertyEvaluation("Water", "ok")
		r.UpdateGraphMetrics(1, 1, 1, 1)
	})
}

func TestDefaultRegistryIsSingleton(t *testing.T) {
	assert.Same(t, DefaultRegistry(), DefaultRegistry())
}
