package sim

import "fmt"

// SignalType identifies the scalar kind a Signal carries.
type SignalType uint8

const (
	SignalBool SignalType = iota
	SignalInt
	SignalFloat
	SignalComplex
)

// String returns the name of the signal type
func (t SignalType) String() string {
	switch t {
	case SignalBool:
		return "bool"
	case SignalInt:
		return "int"
	case SignalFloat:
		return "float"
	case SignalComplex:
		return "complex"
	default:
		return "unknown"
	}
}

// Signal is a scalar value exchanged between signal ports. It is a plain
// value type: assignment copies, so signals can never alias across the graph.
type Signal struct {
	typ SignalType
	b   bool
	i   int64
	f   float64
	c   complex128
}

// BoolSignal creates a boolean signal
func BoolSignal(v bool) Signal { return Signal{typ: SignalBool, b: v} }

// IntSignal creates an integer signal
func IntSignal(v int64) Signal { return Signal{typ: SignalInt, i: v} }

// FloatSignal creates a float signal
func FloatSignal(v float64) Signal { return Signal{typ: SignalFloat, f: v} }

// ComplexSignal creates a complex signal
func ComplexSignal(v complex128) Signal { return Signal{typ: SignalComplex, c: v} }

// Type returns the scalar kind of the signal
func (s Signal) Type() SignalType { return s.typ }

// Bool returns the boolean value; ok is false for non-boolean signals
func (s Signal) Bool() (bool, bool) { return s.b, s.typ == SignalBool }

// Int returns the integer value; ok is false for non-integer signals
func (s Signal) Int() (int64, bool) { return s.i, s.typ == SignalInt }

// Complex returns the complex value; ok is false for non-complex signals
func (s Signal) Complex() (complex128, bool) { return s.c, s.typ == SignalComplex }

// Float returns the numeric value of the signal widened to float64.
// Boolean signals read as 0 or 1; complex signals report ok=false.
func (s Signal) Float() (float64, bool) {
	switch s.typ {
	case SignalFloat:
		return s.f, true
	case SignalInt:
		return float64(s.i), true
	case SignalBool:
		if s.b {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// MustFloat returns the float value of a numeric signal and 0 otherwise.
// Convergence deltas use it so non-numeric signals contribute no delta.
func (s Signal) MustFloat() float64 {
	v, _ := s.Float()
	return v
}

// String formats the signal value for logs and results
func (s Signal) String() string {
	switch s.typ {
	case SignalBool:
		return fmt.Sprintf("%t", s.b)
	case SignalInt:
		return fmt.Sprintf("%d", s.i)
	case SignalFloat:
		return fmt.Sprintf("%g", s.f)
	case SignalComplex:
		return fmt.Sprintf("%g", s.c)
	default:
		return "unknown"
	}
}
