package sim

import (
	"fmt"

	"github.com/dd0wney/cluso-thermosim/pkg/media"
)

// PortType combines the payload kind of a port with its directional role.
type PortType uint8

const (
	StateInlet PortType = iota
	StateOutlet
	StateInletOutlet
	SignalInlet
	SignalOutlet
	SignalInletOutlet
)

// String returns the name of the port type
func (t PortType) String() string {
	switch t {
	case StateInlet:
		return "state-inlet"
	case StateOutlet:
		return "state-outlet"
	case StateInletOutlet:
		return "state-inlet-outlet"
	case SignalInlet:
		return "signal-inlet"
	case SignalOutlet:
		return "signal-outlet"
	case SignalInletOutlet:
		return "signal-inlet-outlet"
	default:
		return "unknown"
	}
}

// IsState reports whether the port carries a thermodynamic state
func (t PortType) IsState() bool {
	return t == StateInlet || t == StateOutlet || t == StateInletOutlet
}

// IsSignal reports whether the port carries a signal
func (t PortType) IsSignal() bool {
	return t == SignalInlet || t == SignalOutlet || t == SignalInletOutlet
}

// IsInlet reports whether the port can receive values (inlet-like)
func (t PortType) IsInlet() bool {
	return t == StateInlet || t == StateInletOutlet || t == SignalInlet || t == SignalInletOutlet
}

// IsOutlet reports whether the port can publish values (outlet-like)
func (t PortType) IsOutlet() bool {
	return t == StateOutlet || t == StateInletOutlet || t == SignalOutlet || t == SignalInletOutlet
}

// Port is a named connection point on a model or block. Its payload kind is
// fixed at construction. Every payload write stores an independent copy, so
// no two ports ever share a state instance; propagation correctness depends
// on this discipline living here and nowhere else.
type Port struct {
	name   string
	typ    PortType
	state  *media.State
	signal Signal
}

// NewStatePort creates a state-carrying port holding a copy of the initial
// state
func NewStatePort(name string, typ PortType, initial *media.State) (*Port, error) {
	if !typ.IsState() {
		return nil, &SimError{Op: "NewStatePort", Port: name, Cause: ErrPayloadKind,
			Context: fmt.Sprintf("port type %s does not carry states", typ)}
	}
	if initial == nil {
		return nil, &SimError{Op: "NewStatePort", Port: name, Cause: ErrPayloadKind,
			Context: "state port needs an initial state"}
	}
	return &Port{name: name, typ: typ, state: initial.Copy()}, nil
}

// NewSignalPort creates a signal-carrying port with the given initial value
func NewSignalPort(name string, typ PortType, initial Signal) (*Port, error) {
	if !typ.IsSignal() {
		return nil, &SimError{Op: "NewSignalPort", Port: name, Cause: ErrPayloadKind,
			Context: fmt.Sprintf("port type %s does not carry signals", typ)}
	}
	return &Port{name: name, typ: typ, signal: initial}, nil
}

// Name returns the globally unique port name
func (p *Port) Name() string { return p.name }

// Type returns the port type
func (p *Port) Type() PortType { return p.typ }

// State returns the state payload. The port keeps ownership: component
// equations may mutate the returned state in place, but writing it into
// another port always goes through SetState.
func (p *Port) State() *media.State { return p.state }

// SetState stores an independent copy of the given state
func (p *Port) SetState(s *media.State) {
	p.state = s.Copy()
}

// Signal returns the signal payload
func (p *Port) Signal() Signal { return p.signal }

// SetSignal stores the given signal value
func (p *Port) SetSignal(s Signal) {
	p.signal = s
}

// compatibleWith reports whether a value can propagate from p into target:
// p must be outlet-like, target inlet-like, and both must carry the same
// payload kind.
func (p *Port) compatibleWith(target *Port) bool {
	if !p.typ.IsOutlet() || !target.typ.IsInlet() {
		return false
	}
	return p.typ.IsState() == target.typ.IsState()
}

// copyPayloadTo propagates this port's payload into target as a copy
func (p *Port) copyPayloadTo(target *Port) {
	if p.typ.IsState() {
		target.SetState(p.state)
		return
	}
	target.SetSignal(p.signal)
}
