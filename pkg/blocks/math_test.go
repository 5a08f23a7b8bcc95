package blocks

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-thermosim/pkg/sim"
)

func TestBinaryBlocks(t *testing.T) {
	tests := []struct {
		name string
		make func(string, sim.Signal, sim.Signal) (sim.Block, error)
		a    float64
		b    float64
		want float64
	}{
		{"add", func(n string, a, b sim.Signal) (sim.Block, error) { return NewAdd(n, a, b) }, 2, 3, 5},
		{"subtract", func(n string, a, b sim.Signal) (sim.Block, error) { return NewSubtract(n, a, b) }, 2, 3, -1},
		{"multiply", func(n string, a, b sim.Signal) (sim.Block, error) { return NewMultiply(n, a, b) }, 2, 3, 6},
		{"divide", func(n string, a, b sim.Signal) (sim.Block, error) { return NewDivide(n, a, b) }, 3, 2, 1.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blk, err := tc.make(tc.name, sim.FloatSignal(tc.a), sim.FloatSignal(tc.b))
			require.NoError(t, err)
			require.NoError(t, blk.Equation())

			ports := blk.Ports()
			require.Len(t, ports, 3)
			got, ok := ports[2].Signal().Float()
			require.True(t, ok)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestDivideByZero(t *testing.T) {
	blk, err := NewDivide("div", sim.FloatSignal(1), sim.FloatSignal(0))
	require.NoError(t, err)

	err = blk.Equation()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMathDomain)

	var simErr *sim.SimError
	require.ErrorAs(t, err, &simErr)
	assert.Equal(t, "div", simErr.Node)
}

func TestUnaryBlocks(t *testing.T) {
	tests := []struct {
		name string
		make func(string, sim.Signal) (sim.Block, error)
		in   float64
		want float64
	}{
		{"sqrt", func(n string, s sim.Signal) (sim.Block, error) { return NewSqrt(n, s) }, 9, 3},
		{"abs", func(n string, s sim.Signal) (sim.Block, error) { return NewAbs(n, s) }, -4.5, 4.5},
		{"sin", func(n string, s sim.Signal) (sim.Block, error) { return NewSin(n, s) }, math.Pi / 2, 1},
		{"cos", func(n string, s sim.Signal) (sim.Block, error) { return NewCos(n, s) }, 0, 1},
		{"exp", func(n string, s sim.Signal) (sim.Block, error) { return NewExp(n, s) }, 1, math.E},
		{"log", func(n string, s sim.Signal) (sim.Block, error) { return NewLog(n, s) }, math.E, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blk, err := tc.make(tc.name, sim.FloatSignal(tc.in))
			require.NoError(t, err)
			require.NoError(t, blk.Equation())

			ports := blk.Ports()
			require.Len(t, ports, 2)
			got, ok := ports[1].Signal().Float()
			require.True(t, ok)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestUnaryDomainErrors(t *testing.T) {
	tests := []struct {
		name string
		make func(string, sim.Signal) (sim.Block, error)
		in   float64
	}{
		{"sqrt negative", func(n string, s sim.Signal) (sim.Block, error) { return NewSqrt(n, s) }, -1},
		{"log zero", func(n string, s sim.Signal) (sim.Block, error) { return NewLog(n, s) }, 0},
		{"log negative", func(n string, s sim.Signal) (sim.Block, error) { return NewLog(n, s) }, -2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blk, err := tc.make("blk", sim.FloatSignal(tc.in))
			require.NoError(t, err)

			err = blk.Equation()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMathDomain)
		})
	}
}

func TestStopCriterionTracksOutlet(t *testing.T) {
	blk, err := NewAdd("sum", sim.FloatSignal(2), sim.FloatSignal(3))
	require.NoError(t, err)

	// Before any Equation call the outlet still holds its seed value.
	assert.InDelta(t, 0.0, blk.StopCriterionSignal(), 1e-12)

	require.NoError(t, blk.Equation())
	assert.InDelta(t, 5.0, blk.StopCriterionSignal(), 1e-12)

	require.NoError(t, blk.Equation())
	assert.InDelta(t, 0.0, blk.StopCriterionSignal(), 1e-12)
}

func TestMathChainEndToEnd(t *testing.T) {
	c1, err := NewConstant("c1", sim.FloatSignal(9))
	require.NoError(t, err)
	c2, err := NewConstant("c2", sim.FloatSignal(16))
	require.NoError(t, err)
	sum, err := NewAdd("sum", sim.FloatSignal(0), sim.FloatSignal(0))
	require.NoError(t, err)
	root, err := NewSqrt("root", sim.FloatSignal(0))
	require.NoError(t, err)

	sys := sim.NewSystem()
	require.NoError(t, sys.AddBlock(c1))
	require.NoError(t, sys.AddBlock(c2))
	require.NoError(t, sys.AddBlock(sum))
	require.NoError(t, sys.AddBlock(root))
	require.NoError(t, sys.Connect("c1_port_b", "sum_port_c1"))
	require.NoError(t, sys.Connect("c2_port_b", "sum_port_c2"))
	require.NoError(t, sys.Connect("sum_port_d", "root_port_a"))

	result := sys.Solve(context.Background())
	require.NoError(t, result.Err)
	assert.Equal(t, sim.StatusSuccess, result.Status)
	assert.LessOrEqual(t, result.Iterations, 5)

	assert.InDelta(t, 25.0, sum.PortD().Signal().MustFloat(), 1e-9)
	assert.InDelta(t, 5.0, root.PortB().Signal().MustFloat(), 1e-9)

	blockResult, ok := result.Blocks["root"]
	require.True(t, ok)
	got, ok := blockResult.Signals["root_port_b"].Float()
	require.True(t, ok)
	assert.InDelta(t, 5.0, got, 1e-9)
}

func TestBlockZeroDivisionInsideSolve(t *testing.T) {
	c1, err := NewConstant("num", sim.FloatSignal(1))
	require.NoError(t, err)
	c2, err := NewConstant("den", sim.FloatSignal(0))
	require.NoError(t, err)
	div, err := NewDivide("ratio", sim.FloatSignal(1), sim.FloatSignal(1))
	require.NoError(t, err)

	sys := sim.NewSystem()
	require.NoError(t, sys.AddBlock(c1))
	require.NoError(t, sys.AddBlock(c2))
	require.NoError(t, sys.AddBlock(div))
	require.NoError(t, sys.Connect("num_port_b", "ratio_port_c1"))
	require.NoError(t, sys.Connect("den_port_b", "ratio_port_c2"))

	result := sys.Solve(context.Background())
	assert.Equal(t, sim.StatusError, result.Status)
	require.Error(t, result.Err)
	assert.True(t, errors.Is(result.Err, ErrMathDomain))
}
