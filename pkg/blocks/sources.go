package blocks

import (
	"github.com/dd0wney/cluso-thermosim/pkg/sim"
)

// Constant publishes a fixed signal value on its outlet port.
type Constant struct {
	oneOutlet
	value sim.Signal
}

// NewConstant creates a constant signal source
func NewConstant(name string, value sim.Signal) (*Constant, error) {
	inner, err := newOneOutlet(name, value)
	if err != nil {
		return nil, err
	}
	return &Constant{oneOutlet: inner, value: value}, nil
}

// Equation republishes the constant value
func (b *Constant) Equation() error {
	b.last = b.portB.Signal().MustFloat()
	b.portB.SetSignal(b.value)
	return nil
}
