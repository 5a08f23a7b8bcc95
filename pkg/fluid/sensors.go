package fluid

import (
	"github.com/dd0wney/cluso-thermosim/pkg/media"
	"github.com/dd0wney/cluso-thermosim/pkg/sim"
)

// SensorP passes the fluid through unchanged and publishes its pressure on
// the signal outlet.
type SensorP struct {
	oneInletOneOutletSignalOutlet
}

// NewSensorP creates a pressure sensor
func NewSensorP(name string, state0 *media.State) (*SensorP, error) {
	inner, err := newOneInletOneOutletSignalOutlet(name, state0, sim.FloatSignal(state0.P()))
	if err != nil {
		return nil, err
	}
	return &SensorP{oneInletOneOutletSignalOutlet: inner}, nil
}

// Equation forwards the inlet state and measures its pressure
func (m *SensorP) Equation() error {
	m.lastHmass = m.portB.State().Hmass()
	m.lastMFlow = m.portB.State().MFlow()
	m.lastSignal = m.portD.Signal().MustFloat()

	m.portB.SetState(m.portA.State())
	m.portD.SetSignal(sim.FloatSignal(m.portA.State().P()))
	return nil
}

// SensorT passes the fluid through unchanged and publishes its temperature
// on the signal outlet.
type SensorT struct {
	oneInletOneOutletSignalOutlet
}

// NewSensorT creates a temperature sensor
func NewSensorT(name string, state0 *media.State) (*SensorT, error) {
	inner, err := newOneInletOneOutletSignalOutlet(name, state0, sim.FloatSignal(state0.T()))
	if err != nil {
		return nil, err
	}
	return &SensorT{oneInletOneOutletSignalOutlet: inner}, nil
}

// Equation forwards the inlet state and measures its temperature
func (m *SensorT) Equation() error {
	m.lastHmass = m.portB.State().Hmass()
	m.lastMFlow = m.portB.State().MFlow()
	m.lastSignal = m.portD.Signal().MustFloat()

	m.portB.SetState(m.portA.State())
	m.portD.SetSignal(sim.FloatSignal(m.portA.State().T()))
	return nil
}

// SensorMflow passes the fluid through unchanged and publishes its mass flow
// on the signal outlet.
type SensorMflow struct {
	oneInletOneOutletSignalOutlet
}

// NewSensorMflow creates a mass flow sensor
func NewSensorMflow(name string, state0 *media.State) (*SensorMflow, error) {
	inner, err := newOneInletOneOutletSignalOutlet(name, state0, sim.FloatSignal(state0.MFlow()))
	if err != nil {
		return nil, err
	}
	return &SensorMflow{oneInletOneOutletSignalOutlet: inner}, nil
}

// Equation forwards the inlet state and measures its mass flow
func (m *SensorMflow) Equation() error {
	m.lastHmass = m.portB.State().Hmass()
	m.lastMFlow = m.portB.State().MFlow()
	m.lastSignal = m.portD.Signal().MustFloat()

	m.portB.SetState(m.portA.State())
	m.portD.SetSignal(sim.FloatSignal(m.portA.State().MFlow()))
	return nil
}
