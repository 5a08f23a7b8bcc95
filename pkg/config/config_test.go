package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	sc := cfg.SimConfig()
	assert.Equal(t, 1.0, sc.StopCriterionEnergy)
	assert.Equal(t, 1.0, sc.StopCriterionMomentum)
	assert.Equal(t, 0.001, sc.StopCriterionMass)
	assert.Equal(t, 0.001, sc.StopCriterionSignal)
	assert.Equal(t, 1000, sc.MaxIterations)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
solver:
  stop_criterion_mass: 0.01
  max_iterations: 50
strict: true
`))
	require.NoError(t, err)

	assert.Equal(t, 0.01, cfg.Solver.StopCriterionMass)
	assert.Equal(t, 50, cfg.Solver.MaxIterations)
	assert.True(t, cfg.Strict)
	// Untouched fields keep their defaults.
	assert.Equal(t, 1.0, cfg.Solver.StopCriterionEnergy)
	assert.True(t, cfg.Export.DecimalComma)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero tolerance", "solver:\n  stop_criterion_energy: 0\n"},
		{"negative tolerance", "solver:\n  stop_criterion_signal: -0.5\n"},
		{"zero iteration cap", "solver:\n  max_iterations: 0\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("solver: [not a mapping"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solver:\n  max_iterations: 7\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Solver.MaxIterations)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
