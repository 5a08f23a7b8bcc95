// Package fluid provides the physical component library: machines, heat
// exchangers, junctions, sensors and boundary conditions. Every component
// embeds one of the port-arity bases below, which own the ports, the
// convergence bookkeeping and the balance computation; the component itself
// contributes only its physics in Equation.
package fluid

import (
	"fmt"

	"github.com/dd0wney/cluso-thermosim/pkg/media"
	"github.com/dd0wney/cluso-thermosim/pkg/sim"
)

// base carries the name and balance bookkeeping shared by all fluid models
type base struct {
	name     string
	balances sim.Balances
}

func (b *base) Name() string           { return b.name }
func (b *base) Balances() sim.Balances { return b.balances }
func (b *base) CheckSelf() bool        { return true }

// mismatchError builds the balance error for heterogeneous media across
// ports expected to carry the same medium kind
func mismatchError(op, name string, a, b *media.State) error {
	return &sim.SimError{Op: op, Node: name, Cause: sim.ErrMediaTypeMismatch,
		Context: fmt.Sprintf("%s <-> %s", a.Kind(), b.Kind())}
}

// oneInlet is the base for sink-like models with a single state inlet
type oneInlet struct {
	base
	portA     *sim.Port
	lastHmass float64
	lastMFlow float64
}

func newOneInlet(name string, state0 *media.State) (oneInlet, error) {
	portA, err := sim.NewStatePort(name+"_port_a", sim.StateInlet, state0)
	if err != nil {
		return oneInlet{}, err
	}
	return oneInlet{
		base:      base{name: name},
		portA:     portA,
		lastHmass: state0.Hmass(),
		lastMFlow: state0.MFlow(),
	}, nil
}

func (m *oneInlet) PortA() *sim.Port   { return m.portA }
func (m *oneInlet) Ports() []*sim.Port { return []*sim.Port{m.portA} }

func (m *oneInlet) StopCriterionEnergy() float64 {
	return m.portA.State().Hmass() - m.lastHmass
}
func (m *oneInlet) StopCriterionMomentum() float64 { return 0 }
func (m *oneInlet) StopCriterionMass() float64 {
	return m.portA.State().MFlow() - m.lastMFlow
}
func (m *oneInlet) StopCriterionSignal() float64 { return 0 }

func (m *oneInlet) UpdateBalances() error {
	m.balances = sim.Balances{}
	return nil
}

func (m *oneInlet) Results() sim.ModelResult {
	states, signals := sim.SnapshotPorts(m.Ports())
	return sim.ModelResult{Name: m.name, States: states, Signals: signals, Balances: m.balances}
}

// oneOutlet is the base for source-like models with a single state outlet
type oneOutlet struct {
	base
	portB     *sim.Port
	lastHmass float64
	lastMFlow float64
}

func newOneOutlet(name string, state0 *media.State) (oneOutlet, error) {
	portB, err := sim.NewStatePort(name+"_port_b", sim.StateOutlet, state0)
	if err != nil {
		return oneOutlet{}, err
	}
	return oneOutlet{
		base:      base{name: name},
		portB:     portB,
		lastHmass: state0.Hmass(),
		lastMFlow: state0.MFlow(),
	}, nil
}

func (m *oneOutlet) PortB() *sim.Port   { return m.portB }
func (m *oneOutlet) Ports() []*sim.Port { return []*sim.Port{m.portB} }

func (m *oneOutlet) StopCriterionEnergy() float64 {
	return m.portB.State().Hmass() - m.lastHmass
}
func (m *oneOutlet) StopCriterionMomentum() float64 { return 0 }
func (m *oneOutlet) StopCriterionMass() float64 {
	return m.portB.State().MFlow() - m.lastMFlow
}
func (m *oneOutlet) StopCriterionSignal() float64 { return 0 }

func (m *oneOutlet) UpdateBalances() error {
	m.balances = sim.Balances{}
	return nil
}

func (m *oneOutlet) Results() sim.ModelResult {
	states, signals := sim.SnapshotPorts(m.Ports())
	return sim.ModelResult{Name: m.name, States: states, Signals: signals, Balances: m.balances}
}

// oneInletOneOutlet is the base for pass-through models
type oneInletOneOutlet struct {
	base
	portA     *sim.Port
	portB     *sim.Port
	lastHmass float64
	lastMFlow float64
}

func newOneInletOneOutlet(name string, state0 *media.State) (oneInletOneOutlet, error) {
	portA, err := sim.NewStatePort(name+"_port_a", sim.StateInlet, state0)
	if err != nil {
		return oneInletOneOutlet{}, err
	}
	portB, err := sim.NewStatePort(name+"_port_b", sim.StateOutlet, state0)
	if err != nil {
		return oneInletOneOutlet{}, err
	}
	return oneInletOneOutlet{
		base:      base{name: name},
		portA:     portA,
		portB:     portB,
		lastHmass: state0.Hmass(),
		lastMFlow: state0.MFlow(),
	}, nil
}

func (m *oneInletOneOutlet) PortA() *sim.Port   { return m.portA }
func (m *oneInletOneOutlet) PortB() *sim.Port   { return m.portB }
func (m *oneInletOneOutlet) Ports() []*sim.Port { return []*sim.Port{m.portA, m.portB} }

func (m *oneInletOneOutlet) StopCriterionEnergy() float64 {
	return m.portB.State().Hmass() - m.lastHmass
}
func (m *oneInletOneOutlet) StopCriterionMomentum() float64 { return 0 }
func (m *oneInletOneOutlet) StopCriterionMass() float64 {
	return m.portB.State().MFlow() - m.lastMFlow
}
func (m *oneInletOneOutlet) StopCriterionSignal() float64 { return 0 }

func (m *oneInletOneOutlet) UpdateBalances() error {
	a, b := m.portA.State(), m.portB.State()
	if a.Kind() != b.Kind() {
		return mismatchError("UpdateBalances", m.name, a, b)
	}
	m.balances = sim.Balances{
		Energy: b.FlowEnthalpy() - a.FlowEnthalpy(),
		Mass:   b.MFlow() - a.MFlow(),
	}
	return nil
}

func (m *oneInletOneOutlet) Results() sim.ModelResult {
	states, signals := sim.SnapshotPorts(m.Ports())
	return sim.ModelResult{Name: m.name, States: states, Signals: signals, Balances: m.balances}
}

// oneInletTwoOutlets is the base for splitting fittings
type oneInletTwoOutlets struct {
	base
	portA     *sim.Port
	portB1    *sim.Port
	portB2    *sim.Port
	lastHmass float64
	lastP     float64
	lastMFlow float64
}

func newOneInletTwoOutlets(name string, state0 *media.State) (oneInletTwoOutlets, error) {
	portA, err := sim.NewStatePort(name+"_port_a", sim.StateInlet, state0)
	if err != nil {
		return oneInletTwoOutlets{}, err
	}
	portB1, err := sim.NewStatePort(name+"_port_b1", sim.StateOutlet, state0)
	if err != nil {
		return oneInletTwoOutlets{}, err
	}
	portB2, err := sim.NewStatePort(name+"_port_b2", sim.StateOutlet, state0)
	if err != nil {
		return oneInletTwoOutlets{}, err
	}
	return oneInletTwoOutlets{
		base:      base{name: name},
		portA:     portA,
		portB1:    portB1,
		portB2:    portB2,
		lastHmass: state0.Hmass(),
		lastP:     state0.P(),
		lastMFlow: state0.MFlow(),
	}, nil
}

func (m *oneInletTwoOutlets) PortA() *sim.Port  { return m.portA }
func (m *oneInletTwoOutlets) PortB1() *sim.Port { return m.portB1 }
func (m *oneInletTwoOutlets) PortB2() *sim.Port { return m.portB2 }
func (m *oneInletTwoOutlets) Ports() []*sim.Port {
	return []*sim.Port{m.portA, m.portB1, m.portB2}
}

func (m *oneInletTwoOutlets) StopCriterionEnergy() float64 {
	return m.portA.State().Hmass() - m.lastHmass
}
func (m *oneInletTwoOutlets) StopCriterionMomentum() float64 {
	return m.portA.State().P() - m.lastP
}
func (m *oneInletTwoOutlets) StopCriterionMass() float64 {
	return m.portA.State().MFlow() - m.lastMFlow
}
func (m *oneInletTwoOutlets) StopCriterionSignal() float64 { return 0 }

func (m *oneInletTwoOutlets) UpdateBalances() error {
	a, b1, b2 := m.portA.State(), m.portB1.State(), m.portB2.State()
	if a.Kind() != b1.Kind() || a.Kind() != b2.Kind() {
		return mismatchError("UpdateBalances", m.name, a, b1)
	}
	m.balances = sim.Balances{
		Energy: b1.FlowEnthalpy() + b2.FlowEnthalpy() - a.FlowEnthalpy(),
		Mass:   b1.MFlow() + b2.MFlow() - a.MFlow(),
	}
	return nil
}

func (m *oneInletTwoOutlets) Results() sim.ModelResult {
	states, signals := sim.SnapshotPorts(m.Ports())
	return sim.ModelResult{Name: m.name, States: states, Signals: signals, Balances: m.balances}
}

// twoInletsOneOutlet is the base for mixing fittings
type twoInletsOneOutlet struct {
	base
	portA1    *sim.Port
	portA2    *sim.Port
	portB     *sim.Port
	lastHmass float64
	lastP     float64
	lastMFlow float64
}

func newTwoInletsOneOutlet(name string, state0 *media.State) (twoInletsOneOutlet, error) {
	portA1, err := sim.NewStatePort(name+"_port_a1", sim.StateInlet, state0)
	if err != nil {
		return twoInletsOneOutlet{}, err
	}
	portA2, err := sim.NewStatePort(name+"_port_a2", sim.StateInlet, state0)
	if err != nil {
		return twoInletsOneOutlet{}, err
	}
	portB, err := sim.NewStatePort(name+"_port_b", sim.StateOutlet, state0)
	if err != nil {
		return twoInletsOneOutlet{}, err
	}
	return twoInletsOneOutlet{
		base:      base{name: name},
		portA1:    portA1,
		portA2:    portA2,
		portB:     portB,
		lastHmass: state0.Hmass(),
		lastP:     state0.P(),
		lastMFlow: state0.MFlow(),
	}, nil
}

func (m *twoInletsOneOutlet) PortA1() *sim.Port { return m.portA1 }
func (m *twoInletsOneOutlet) PortA2() *sim.Port { return m.portA2 }
func (m *twoInletsOneOutlet) PortB() *sim.Port  { return m.portB }
func (m *twoInletsOneOutlet) Ports() []*sim.Port {
	return []*sim.Port{m.portA1, m.portA2, m.portB}
}

func (m *twoInletsOneOutlet) StopCriterionEnergy() float64 {
	return m.portB.State().Hmass() - m.lastHmass
}
func (m *twoInletsOneOutlet) StopCriterionMomentum() float64 {
	return m.portB.State().P() - m.lastP
}
func (m *twoInletsOneOutlet) StopCriterionMass() float64 {
	return m.portB.State().MFlow() - m.lastMFlow
}
func (m *twoInletsOneOutlet) StopCriterionSignal() float64 { return 0 }

func (m *twoInletsOneOutlet) UpdateBalances() error {
	a1, a2, b := m.portA1.State(), m.portA2.State(), m.portB.State()
	if a1.Kind() != a2.Kind() || a1.Kind() != b.Kind() {
		return mismatchError("UpdateBalances", m.name, a1, a2)
	}
	m.balances = sim.Balances{
		Energy: b.FlowEnthalpy() - a1.FlowEnthalpy() - a2.FlowEnthalpy(),
		Mass:   b.MFlow() - a1.MFlow() - a2.MFlow(),
	}
	return nil
}

func (m *twoInletsOneOutlet) Results() sim.ModelResult {
	states, signals := sim.SnapshotPorts(m.Ports())
	return sim.ModelResult{Name: m.name, States: states, Signals: signals, Balances: m.balances}
}

// oneInletOneOutletSignalOutlet is the base for sensors: a pass-through
// state pair plus a measurement signal outlet
type oneInletOneOutletSignalOutlet struct {
	base
	portA      *sim.Port
	portB      *sim.Port
	portD      *sim.Port
	lastHmass  float64
	lastMFlow  float64
	lastSignal float64
}

func newOneInletOneOutletSignalOutlet(name string, state0 *media.State, signal0 sim.Signal) (oneInletOneOutletSignalOutlet, error) {
	portA, err := sim.NewStatePort(name+"_port_a", sim.StateInlet, state0)
	if err != nil {
		return oneInletOneOutletSignalOutlet{}, err
	}
	portB, err := sim.NewStatePort(name+"_port_b", sim.StateOutlet, state0)
	if err != nil {
		return oneInletOneOutletSignalOutlet{}, err
	}
	portD, err := sim.NewSignalPort(name+"_port_d", sim.SignalOutlet, signal0)
	if err != nil {
		return oneInletOneOutletSignalOutlet{}, err
	}
	return oneInletOneOutletSignalOutlet{
		base:       base{name: name},
		portA:      portA,
		portB:      portB,
		portD:      portD,
		lastHmass:  state0.Hmass(),
		lastMFlow:  state0.MFlow(),
		lastSignal: signal0.MustFloat(),
	}, nil
}

func (m *oneInletOneOutletSignalOutlet) PortA() *sim.Port { return m.portA }
func (m *oneInletOneOutletSignalOutlet) PortB() *sim.Port { return m.portB }
func (m *oneInletOneOutletSignalOutlet) PortD() *sim.Port { return m.portD }
func (m *oneInletOneOutletSignalOutlet) Ports() []*sim.Port {
	return []*sim.Port{m.portA, m.portB, m.portD}
}

func (m *oneInletOneOutletSignalOutlet) StopCriterionEnergy() float64 {
	return m.portB.State().Hmass() - m.lastHmass
}
func (m *oneInletOneOutletSignalOutlet) StopCriterionMomentum() float64 { return 0 }
func (m *oneInletOneOutletSignalOutlet) StopCriterionMass() float64 {
	return m.portB.State().MFlow() - m.lastMFlow
}
func (m *oneInletOneOutletSignalOutlet) StopCriterionSignal() float64 {
	return m.portD.Signal().MustFloat() - m.lastSignal
}

func (m *oneInletOneOutletSignalOutlet) UpdateBalances() error {
	a, b := m.portA.State(), m.portB.State()
	if a.Kind() != b.Kind() {
		return mismatchError("UpdateBalances", m.name, a, b)
	}
	m.balances = sim.Balances{
		Energy: b.FlowEnthalpy() - a.FlowEnthalpy(),
		Mass:   b.MFlow() - a.MFlow(),
	}
	return nil
}

func (m *oneInletOneOutletSignalOutlet) Results() sim.ModelResult {
	states, signals := sim.SnapshotPorts(m.Ports())
	return sim.ModelResult{Name: m.name, States: states, Signals: signals, Balances: m.balances}
}
