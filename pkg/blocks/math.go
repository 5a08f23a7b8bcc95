package blocks

import (
	"errors"
	"fmt"
	"math"

	"github.com/dd0wney/cluso-thermosim/pkg/sim"
)

// ErrMathDomain reports an operation evaluated outside its domain
var ErrMathDomain = errors.New("math block domain error")

// binaryOp applies a two-argument function to the inlet values
type binaryOp func(a, b float64) (float64, error)

// binaryBlock is the shared machinery of all two-inlet math blocks
type binaryBlock struct {
	twoInletsOneOutlet
	op binaryOp
}

func newBinaryBlock(name string, signal01, signal02 sim.Signal, op binaryOp) (*binaryBlock, error) {
	inner, err := newTwoInletsOneOutlet(name, signal01, signal02)
	if err != nil {
		return nil, err
	}
	return &binaryBlock{twoInletsOneOutlet: inner, op: op}, nil
}

// Equation applies the operation to both inlet signals
func (b *binaryBlock) Equation() error {
	b.last = b.portD.Signal().MustFloat()

	v1 := b.portC1.Signal().MustFloat()
	v2 := b.portC2.Signal().MustFloat()
	out, err := b.op(v1, v2)
	if err != nil {
		return &sim.SimError{Op: "Equation", Node: b.name, Cause: err}
	}
	b.portD.SetSignal(sim.FloatSignal(out))
	return nil
}

// Add sums its two inlet signals
type Add struct{ *binaryBlock }

// NewAdd creates an addition block
func NewAdd(name string, signal01, signal02 sim.Signal) (*Add, error) {
	inner, err := newBinaryBlock(name, signal01, signal02,
		func(a, b float64) (float64, error) { return a + b, nil })
	if err != nil {
		return nil, err
	}
	return &Add{binaryBlock: inner}, nil
}

// Subtract subtracts inlet 2 from inlet 1
type Subtract struct{ *binaryBlock }

// NewSubtract creates a subtraction block
func NewSubtract(name string, signal01, signal02 sim.Signal) (*Subtract, error) {
	inner, err := newBinaryBlock(name, signal01, signal02,
		func(a, b float64) (float64, error) { return a - b, nil })
	if err != nil {
		return nil, err
	}
	return &Subtract{binaryBlock: inner}, nil
}

// Multiply multiplies its two inlet signals
type Multiply struct{ *binaryBlock }

// NewMultiply creates a multiplication block
func NewMultiply(name string, signal01, signal02 sim.Signal) (*Multiply, error) {
	inner, err := newBinaryBlock(name, signal01, signal02,
		func(a, b float64) (float64, error) { return a * b, nil })
	if err != nil {
		return nil, err
	}
	return &Multiply{binaryBlock: inner}, nil
}

// Divide divides inlet 1 by inlet 2
type Divide struct{ *binaryBlock }

// NewDivide creates a division block
func NewDivide(name string, signal01, signal02 sim.Signal) (*Divide, error) {
	inner, err := newBinaryBlock(name, signal01, signal02,
		func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, fmt.Errorf("%w: division by zero", ErrMathDomain)
			}
			return a / b, nil
		})
	if err != nil {
		return nil, err
	}
	return &Divide{binaryBlock: inner}, nil
}

// unaryOp applies a one-argument function to the inlet value
type unaryOp func(v float64) (float64, error)

// unaryBlock is the shared machinery of all one-inlet math blocks
type unaryBlock struct {
	oneInletOneOutlet
	op unaryOp
}

func newUnaryBlock(name string, signal0 sim.Signal, op unaryOp) (*unaryBlock, error) {
	inner, err := newOneInletOneOutlet(name, signal0)
	if err != nil {
		return nil, err
	}
	return &unaryBlock{oneInletOneOutlet: inner, op: op}, nil
}

// Equation applies the operation to the inlet signal
func (b *unaryBlock) Equation() error {
	b.last = b.portB.Signal().MustFloat()

	out, err := b.op(b.portA.Signal().MustFloat())
	if err != nil {
		return &sim.SimError{Op: "Equation", Node: b.name, Cause: err}
	}
	b.portB.SetSignal(sim.FloatSignal(out))
	return nil
}

// Sqrt takes the square root of its inlet signal
type Sqrt struct{ *unaryBlock }

// NewSqrt creates a square root block
func NewSqrt(name string, signal0 sim.Signal) (*Sqrt, error) {
	inner, err := newUnaryBlock(name, signal0, func(v float64) (float64, error) {
		if v < 0 {
			return 0, fmt.Errorf("%w: sqrt of negative value %g", ErrMathDomain, v)
		}
		return math.Sqrt(v), nil
	})
	if err != nil {
		return nil, err
	}
	return &Sqrt{unaryBlock: inner}, nil
}

// Abs takes the absolute value of its inlet signal
type Abs struct{ *unaryBlock }

// NewAbs creates an absolute value block
func NewAbs(name string, signal0 sim.Signal) (*Abs, error) {
	inner, err := newUnaryBlock(name, signal0,
		func(v float64) (float64, error) { return math.Abs(v), nil })
	if err != nil {
		return nil, err
	}
	return &Abs{unaryBlock: inner}, nil
}

// Sin takes the sine of its inlet signal
type Sin struct{ *unaryBlock }

// NewSin creates a sine block
func NewSin(name string, signal0 sim.Signal) (*Sin, error) {
	inner, err := newUnaryBlock(name, signal0,
		func(v float64) (float64, error) { return math.Sin(v), nil })
	if err != nil {
		return nil, err
	}
	return &Sin{unaryBlock: inner}, nil
}

// Cos takes the cosine of its inlet signal
type Cos struct{ *unaryBlock }

// NewCos creates a cosine block
func NewCos(name string, signal0 sim.Signal) (*Cos, error) {
	inner, err := newUnaryBlock(name, signal0,
		func(v float64) (float64, error) { return math.Cos(v), nil })
	if err != nil {
		return nil, err
	}
	return &Cos{unaryBlock: inner}, nil
}

// Exp takes the natural exponential of its inlet signal
type Exp struct{ *unaryBlock }

// NewExp creates an exponential block
func NewExp(name string, signal0 sim.Signal) (*Exp, error) {
	inner, err := newUnaryBlock(name, signal0,
		func(v float64) (float64, error) { return math.Exp(v), nil })
	if err != nil {
		return nil, err
	}
	return &Exp{unaryBlock: inner}, nil
}

// Log takes the natural logarithm of its inlet signal
type Log struct{ *unaryBlock }

// NewLog creates a natural logarithm block
func NewLog(name string, signal0 sim.Signal) (*Log, error) {
	inner, err := newUnaryBlock(name, signal0, func(v float64) (float64, error) {
		if v <= 0 {
			return 0, fmt.Errorf("%w: log of non-positive value %g", ErrMathDomain, v)
		}
		return math.Log(v), nil
	})
	if err != nil {
		return nil, err
	}
	return &Log{unaryBlock: inner}, nil
}
