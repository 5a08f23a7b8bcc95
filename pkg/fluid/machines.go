package fluid

import (
	"fmt"

	"github.com/dd0wney/cluso-thermosim/pkg/media"
)

// PumpSimple delivers the inlet mass flow with a constant pressure rise dp
// and ideal, isentropic behavior. No height or velocity difference between
// inlet and outlet.
type PumpSimple struct {
	oneInletOneOutlet
	dp    float64
	lastP float64
}

// NewPumpSimple creates a pump with a fixed pressure rise. Pumps move
// liquids; humid-air states are rejected at construction.
func NewPumpSimple(name string, state0 *media.State, dp float64) (*PumpSimple, error) {
	if state0.Kind() != media.MediumPure {
		return nil, fmt.Errorf("%w: pump %s needs a pure medium, got %s",
			media.ErrConfiguration, name, state0.Kind())
	}
	inner, err := newOneInletOneOutlet(name, state0)
	if err != nil {
		return nil, err
	}
	return &PumpSimple{oneInletOneOutlet: inner, dp: dp, lastP: state0.P()}, nil
}

// StopCriterionMomentum tracks the outlet pressure between iterations
func (m *PumpSimple) StopCriterionMomentum() float64 {
	return m.portB.State().P() - m.lastP
}

// Equation raises the inlet pressure by dp at constant entropy and passes
// the mass flow through
func (m *PumpSimple) Equation() error {
	in := m.portA.State()
	out := m.portB.State()

	if err := out.SetPS(in.P()+m.dp, in.Smass()); err != nil {
		return err
	}
	out.SetMFlow(in.MFlow())

	m.lastHmass = out.Hmass()
	m.lastP = out.P()
	m.lastMFlow = out.MFlow()
	return nil
}

// CompressorSimple delivers the inlet mass flow with a constant pressure
// rise dp and ideal, isentropic behavior.
type CompressorSimple struct {
	oneInletOneOutlet
	dp    float64
	lastP float64
}

// NewCompressorSimple creates a compressor with a fixed pressure rise
func NewCompressorSimple(name string, state0 *media.State, dp float64) (*CompressorSimple, error) {
	if state0.Kind() != media.MediumPure {
		return nil, fmt.Errorf("%w: compressor %s needs a pure medium, got %s",
			media.ErrConfiguration, name, state0.Kind())
	}
	inner, err := newOneInletOneOutlet(name, state0)
	if err != nil {
		return nil, err
	}
	return &CompressorSimple{oneInletOneOutlet: inner, dp: dp, lastP: state0.P()}, nil
}

// StopCriterionMomentum tracks the outlet pressure between iterations
func (m *CompressorSimple) StopCriterionMomentum() float64 {
	return m.portB.State().P() - m.lastP
}

// Equation compresses isentropically by dp and passes the mass flow through
func (m *CompressorSimple) Equation() error {
	in := m.portA.State()
	out := m.portB.State()

	if err := out.SetPS(in.P()+m.dp, in.Smass()); err != nil {
		return err
	}
	out.SetMFlow(in.MFlow())

	m.lastHmass = out.Hmass()
	m.lastP = out.P()
	m.lastMFlow = out.MFlow()
	return nil
}

// TurbineSimple expands the inlet flow by a constant pressure drop dp with
// ideal, isentropic behavior.
type TurbineSimple struct {
	oneInletOneOutlet
	dp    float64
	lastP float64
}

// NewTurbineSimple creates a turbine with a fixed pressure drop dp > 0
func NewTurbineSimple(name string, state0 *media.State, dp float64) (*TurbineSimple, error) {
	if state0.Kind() != media.MediumPure {
		return nil, fmt.Errorf("%w: turbine %s needs a pure medium, got %s",
			media.ErrConfiguration, name, state0.Kind())
	}
	if dp <= 0 {
		return nil, fmt.Errorf("%w: turbine %s needs a positive pressure drop, got %g",
			media.ErrConfiguration, name, dp)
	}
	inner, err := newOneInletOneOutlet(name, state0)
	if err != nil {
		return nil, err
	}
	return &TurbineSimple{oneInletOneOutlet: inner, dp: dp, lastP: state0.P()}, nil
}

// StopCriterionMomentum tracks the outlet pressure between iterations
func (m *TurbineSimple) StopCriterionMomentum() float64 {
	return m.portB.State().P() - m.lastP
}

// Equation expands isentropically by dp and passes the mass flow through
func (m *TurbineSimple) Equation() error {
	in := m.portA.State()
	out := m.portB.State()

	if err := out.SetPS(in.P()-m.dp, in.Smass()); err != nil {
		return err
	}
	out.SetMFlow(in.MFlow())

	m.lastHmass = out.Hmass()
	m.lastP = out.P()
	m.lastMFlow = out.MFlow()
	return nil
}
