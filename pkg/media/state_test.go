package media

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWaterState(t *testing.T) *State {
	t.Helper()
	backend, err := NewIncompressible(Water)
	require.NoError(t, err)
	state, err := NewStatePT(backend, 100000, 300, 0.01)
	require.NoError(t, err)
	return state
}

func TestStateConstructors(t *testing.T) {
	t.Run("nil backend", func(t *testing.T) {
		_, err := NewStatePT(nil, 100000, 300, 0.01)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("pressure and temperature", func(t *testing.T) {
		state := newWaterState(t)
		assert.Equal(t, 100000.0, state.P())
		assert.Equal(t, 300.0, state.T())
		assert.Equal(t, 0.01, state.MFlow())
		assert.Equal(t, "Water", state.FluidName())
		assert.Equal(t, MediumPure, state.Kind())
	})

	t.Run("mixture needs mixture backend", func(t *testing.T) {
		backend, err := NewIncompressible(Water)
		require.NoError(t, err)
		_, err = NewStatePTW(backend, 100000, 300, 0.01, 0.5)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("humid air mixture", func(t *testing.T) {
		state, err := NewStatePTW(NewHumidAir(), 101325, 293.15, 0.01, 0.5)
		require.NoError(t, err)
		assert.Equal(t, 0.01, state.W())
		assert.Equal(t, MediumHumidAir, state.Kind())
	})
}

func TestStateSettersRebaseAtomically(t *testing.T) {
	state := newWaterState(t)
	hBefore := state.Hmass()

	// failing re-base leaves the cached bundle untouched
	err := state.SetPT(100000, 1000)
	require.Error(t, err)
	assert.Equal(t, 300.0, state.T())
	assert.Equal(t, hBefore, state.Hmass())

	require.NoError(t, state.SetPT(120000, 310))
	assert.Equal(t, 120000.0, state.P())
	assert.Equal(t, 310.0, state.T())
	assert.NotEqual(t, hBefore, state.Hmass())
}

func TestStateSetterFamily(t *testing.T) {
	state := newWaterState(t)
	ref := state.Copy()

	t.Run("SetPH", func(t *testing.T) {
		require.NoError(t, state.SetPH(100000, ref.Hmass()))
		assert.InDelta(t, ref.T(), state.T(), 1e-9)
	})

	t.Run("SetPS", func(t *testing.T) {
		require.NoError(t, state.SetPS(100000, ref.Smass()))
		assert.InDelta(t, ref.T(), state.T(), 1e-9)
	})

	t.Run("SetPX unsupported for incompressible", func(t *testing.T) {
		err := state.SetPX(100000, 0.5)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPropertyEvaluation)
	})

	t.Run("SetPTW requires mixture backend", func(t *testing.T) {
		err := state.SetPTW(100000, 300, 0.01)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfiguration)
	})
}

func TestStateCopyIsIndependent(t *testing.T) {
	state := newWaterState(t)
	clone := state.Copy()

	require.NoError(t, clone.SetPT(200000, 350))
	clone.SetMFlow(1.5)

	assert.Equal(t, 100000.0, state.P())
	assert.Equal(t, 300.0, state.T())
	assert.Equal(t, 0.01, state.MFlow())
	assert.Equal(t, 200000.0, clone.P())
	assert.Equal(t, 1.5, clone.MFlow())
}

func TestStateFlowEnthalpy(t *testing.T) {
	t.Run("pure fluid", func(t *testing.T) {
		state := newWaterState(t)
		assert.InDelta(t, 0.01*state.Hmass(), state.FlowEnthalpy(), 1e-9)
	})

	t.Run("humid air uses dry-carrier basis", func(t *testing.T) {
		state, err := NewStatePTW(NewHumidAir(), 101325, 293.15, 0.01, 0.5)
		require.NoError(t, err)
		assert.InDelta(t, 0.5/1.01*state.Hmass(), state.FlowEnthalpy(), 1e-9)
	})
}

func TestStateMarshalJSON(t *testing.T) {
	state := newWaterState(t)

	raw, err := json.Marshal(state)
	require.NoError(t, err)

	var snapshot map[string]any
	require.NoError(t, json.Unmarshal(raw, &snapshot))
	assert.Equal(t, "Water", snapshot["fluid"])
	assert.Equal(t, "pure", snapshot["kind"])
	assert.Equal(t, 100000.0, snapshot["p"])
	assert.Equal(t, 0.01, snapshot["m_flow"])
}
