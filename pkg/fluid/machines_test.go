package fluid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-thermosim/pkg/media"
	"github.com/dd0wney/cluso-thermosim/pkg/sim"
)

func waterState(t *testing.T, p, temp, mflow float64) *media.State {
	t.Helper()
	backend, err := media.NewIncompressible(media.Water)
	require.NoError(t, err)
	state, err := media.NewStatePT(backend, p, temp, mflow)
	require.NoError(t, err)
	return state
}

func airState(t *testing.T, p, temp, mflow float64) *media.State {
	t.Helper()
	backend, err := media.NewIdealGas(media.Air)
	require.NoError(t, err)
	state, err := media.NewStatePT(backend, p, temp, mflow)
	require.NoError(t, err)
	return state
}

func humidAirState(t *testing.T, p, temp, w, mflow float64) *media.State {
	t.Helper()
	state, err := media.NewStatePTW(media.NewHumidAir(), p, temp, w, mflow)
	require.NoError(t, err)
	return state
}

func TestNewPumpSimpleRejectsHumidAir(t *testing.T) {
	_, err := NewPumpSimple("pump", humidAirState(t, 101325, 293.15, 0.01, 0.5), 1000)
	require.Error(t, err)
	assert.ErrorIs(t, err, media.ErrConfiguration)
}

func TestPumpSimpleEquation(t *testing.T) {
	state := waterState(t, 100000, 300, 0.01)
	pump, err := NewPumpSimple("pump", state, 1000)
	require.NoError(t, err)

	require.NoError(t, pump.Equation())

	out := pump.PortB().State()
	assert.InDelta(t, 101000.0, out.P(), 1e-9)
	// isentropic: entropy and, for an incompressible fluid, temperature are
	// unchanged
	assert.InDelta(t, state.Smass(), out.Smass(), 1e-9)
	assert.InDelta(t, 300.0, out.T(), 1e-9)
	assert.Equal(t, 0.01, out.MFlow())
}

func TestPumpSimpleIdempotence(t *testing.T) {
	pump, err := NewPumpSimple("pump", waterState(t, 100000, 300, 0.01), 1000)
	require.NoError(t, err)

	require.NoError(t, pump.Equation())
	first := pump.PortB().State().Copy()

	require.NoError(t, pump.Equation())
	assert.Equal(t, first.P(), pump.PortB().State().P())
	assert.Equal(t, first.Hmass(), pump.PortB().State().Hmass())
	assert.Zero(t, pump.StopCriterionEnergy())
	assert.Zero(t, pump.StopCriterionMomentum())
	assert.Zero(t, pump.StopCriterionMass())
}

func TestCompressorSimpleEquation(t *testing.T) {
	state := airState(t, 100000, 300, 0.05)
	comp, err := NewCompressorSimple("comp", state, 50000)
	require.NoError(t, err)

	require.NoError(t, comp.Equation())

	out := comp.PortB().State()
	assert.InDelta(t, 150000.0, out.P(), 1e-9)
	assert.InDelta(t, state.Smass(), out.Smass(), 1e-9)
	// isentropic compression of an ideal gas heats it
	assert.Greater(t, out.T(), 300.0)
	assert.Equal(t, 0.05, out.MFlow())
}

func TestTurbineSimpleEquation(t *testing.T) {
	t.Run("rejects non-positive drop", func(t *testing.T) {
		_, err := NewTurbineSimple("turbine", airState(t, 300000, 600, 0.05), -100)
		require.Error(t, err)
		assert.ErrorIs(t, err, media.ErrConfiguration)
	})

	state := airState(t, 300000, 600, 0.05)
	turbine, err := NewTurbineSimple("turbine", state, 100000)
	require.NoError(t, err)

	require.NoError(t, turbine.Equation())

	out := turbine.PortB().State()
	assert.InDelta(t, 200000.0, out.P(), 1e-9)
	assert.InDelta(t, state.Smass(), out.Smass(), 1e-9)
	// isentropic expansion cools the gas
	assert.Less(t, out.T(), 600.0)
}

func TestTwoPumpSystemEndToEnd(t *testing.T) {
	initial := waterState(t, 100000, 300, 0.01)

	source, err := NewSourceFixedState("source", initial)
	require.NoError(t, err)
	pump1, err := NewPumpSimple("pump1", initial, 1000)
	require.NoError(t, err)
	pump2, err := NewPumpSimple("pump2", initial, 1000)
	require.NoError(t, err)
	sink, err := NewSinkFixedState("sink", initial)
	require.NoError(t, err)

	sys := sim.NewSystem()
	require.NoError(t, sys.AddModel(source))
	require.NoError(t, sys.AddModel(pump1))
	require.NoError(t, sys.AddModel(pump2))
	require.NoError(t, sys.AddModel(sink))
	require.NoError(t, sys.Connect("source_port_b", "pump1_port_a"))
	require.NoError(t, sys.Connect("pump1_port_b", "pump2_port_a"))
	require.NoError(t, sys.Connect("pump2_port_b", "sink_port_a"))

	result := sys.Solve(context.Background())

	require.Equal(t, sim.StatusSuccess, result.Status)
	assert.LessOrEqual(t, result.Iterations, 5)

	final := pump2.PortB().State()
	assert.InDelta(t, 102000.0, final.P(), 1e-9)
	assert.InDelta(t, 0.01, final.MFlow(), 1e-12)
	assert.InDelta(t, 102000.0, sink.PortA().State().P(), 1e-9)

	// pass-through components satisfy their balances
	require.NoError(t, pump1.UpdateBalances())
	assert.InDelta(t, 0.0, pump1.Balances().Mass, 1e-12)
}
