// Package blocks provides signal-only computational units: constant sources
// and math operations. Blocks carry no physical state, so their only
// convergence contribution is the signal delta.
package blocks

import (
	"github.com/dd0wney/cluso-thermosim/pkg/sim"
)

type base struct {
	name string
}

func (b *base) Name() string    { return b.name }
func (b *base) CheckSelf() bool { return true }

// oneOutlet is the base for source blocks with a single signal outlet
type oneOutlet struct {
	base
	portB *sim.Port
	last  float64
}

func newOneOutlet(name string, signal0 sim.Signal) (oneOutlet, error) {
	portB, err := sim.NewSignalPort(name+"_port_b", sim.SignalOutlet, signal0)
	if err != nil {
		return oneOutlet{}, err
	}
	return oneOutlet{base: base{name: name}, portB: portB, last: signal0.MustFloat()}, nil
}

func (b *oneOutlet) PortB() *sim.Port   { return b.portB }
func (b *oneOutlet) Ports() []*sim.Port { return []*sim.Port{b.portB} }

func (b *oneOutlet) StopCriterionSignal() float64 {
	return b.portB.Signal().MustFloat() - b.last
}

func (b *oneOutlet) Results() sim.BlockResult {
	_, signals := sim.SnapshotPorts(b.Ports())
	return sim.BlockResult{Name: b.name, Signals: signals}
}

// oneInletOneOutlet is the base for unary math blocks
type oneInletOneOutlet struct {
	base
	portA *sim.Port
	portB *sim.Port
	last  float64
}

func newOneInletOneOutlet(name string, signal0 sim.Signal) (oneInletOneOutlet, error) {
	portA, err := sim.NewSignalPort(name+"_port_a", sim.SignalInlet, signal0)
	if err != nil {
		return oneInletOneOutlet{}, err
	}
	portB, err := sim.NewSignalPort(name+"_port_b", sim.SignalOutlet, signal0)
	if err != nil {
		return oneInletOneOutlet{}, err
	}
	return oneInletOneOutlet{
		base:  base{name: name},
		portA: portA,
		portB: portB,
		last:  signal0.MustFloat(),
	}, nil
}

func (b *oneInletOneOutlet) PortA() *sim.Port   { return b.portA }
func (b *oneInletOneOutlet) PortB() *sim.Port   { return b.portB }
func (b *oneInletOneOutlet) Ports() []*sim.Port { return []*sim.Port{b.portA, b.portB} }

func (b *oneInletOneOutlet) StopCriterionSignal() float64 {
	return b.portB.Signal().MustFloat() - b.last
}

func (b *oneInletOneOutlet) Results() sim.BlockResult {
	_, signals := sim.SnapshotPorts(b.Ports())
	return sim.BlockResult{Name: b.name, Signals: signals}
}

// twoInletsOneOutlet is the base for binary math blocks
type twoInletsOneOutlet struct {
	base
	portC1 *sim.Port
	portC2 *sim.Port
	portD  *sim.Port
	last   float64
}

func newTwoInletsOneOutlet(name string, signal01, signal02 sim.Signal) (twoInletsOneOutlet, error) {
	portC1, err := sim.NewSignalPort(name+"_port_c1", sim.SignalInlet, signal01)
	if err != nil {
		return twoInletsOneOutlet{}, err
	}
	portC2, err := sim.NewSignalPort(name+"_port_c2", sim.SignalInlet, signal02)
	if err != nil {
		return twoInletsOneOutlet{}, err
	}
	portD, err := sim.NewSignalPort(name+"_port_d", sim.SignalOutlet, sim.FloatSignal(0))
	if err != nil {
		return twoInletsOneOutlet{}, err
	}
	return twoInletsOneOutlet{
		base:   base{name: name},
		portC1: portC1,
		portC2: portC2,
		portD:  portD,
	}, nil
}

func (b *twoInletsOneOutlet) PortC1() *sim.Port { return b.portC1 }
func (b *twoInletsOneOutlet) PortC2() *sim.Port { return b.portC2 }
func (b *twoInletsOneOutlet) PortD() *sim.Port  { return b.portD }
func (b *twoInletsOneOutlet) Ports() []*sim.Port {
	return []*sim.Port{b.portC1, b.portC2, b.portD}
}

func (b *twoInletsOneOutlet) StopCriterionSignal() float64 {
	return b.portD.Signal().MustFloat() - b.last
}

func (b *twoInletsOneOutlet) Results() sim.BlockResult {
	_, signals := sim.SnapshotPorts(b.Ports())
	return sim.BlockResult{Name: b.name, Signals: signals}
}
