package sim

import "github.com/dd0wney/cluso-thermosim/pkg/media"

// Balances holds the per-model conservation residuals recomputed by
// UpdateBalances. Inlet flows count negative, outlet flows positive, so a
// perfectly balanced model sits at zero.
type Balances struct {
	Energy   float64 // enthalpy-flow residual [W]
	Momentum float64 // pressure residual [Pa]
	Mass     float64 // mass-flow residual [kg/s]
}

// Model is a physical component in the system graph. Concrete components
// (pumps, heat exchangers, junctions, sensors) implement this interface; the
// solver never depends on concrete types.
//
// Equation must be idempotent: reinvoked with unchanged input ports it yields
// identical output payloads and zero deltas, which is what the convergence
// test relies on. It mutates only the component's own output ports.
type Model interface {
	// Name returns the unique component name
	Name() string
	// Ports returns all ports in declaration order
	Ports() []*Port
	// Equation advances the output ports from the current input ports
	Equation() error
	// CheckSelf reports whether the component is internally consistent
	CheckSelf() bool
	// UpdateBalances recomputes the conservation residuals across all
	// state ports
	UpdateBalances() error
	// Balances returns the residuals of the last UpdateBalances call
	Balances() Balances

	// Convergence deltas: tracked output value minus the value recorded
	// before this iteration's Equation call. Criteria without physical
	// meaning for a component return exactly 0.
	StopCriterionEnergy() float64
	StopCriterionMomentum() float64
	StopCriterionMass() float64
	StopCriterionSignal() float64

	// Results returns an immutable snapshot of the current port payloads
	Results() ModelResult
}

// Block is a signal-only computational unit (math, logic). Blocks have no
// physical balances; their only convergence contribution is the signal delta.
type Block interface {
	Name() string
	Ports() []*Port
	Equation() error
	CheckSelf() bool
	StopCriterionSignal() float64
	Results() BlockResult
}

// simNode is the solver-internal view common to models and blocks
type simNode interface {
	Name() string
	Ports() []*Port
	Equation() error
	CheckSelf() bool
}

// SnapshotPorts copies the payloads of the given ports into result maps,
// keyed by port name. Components use it to assemble their Results.
func SnapshotPorts(ports []*Port) (map[string]*media.State, map[string]Signal) {
	var states map[string]*media.State
	var signals map[string]Signal
	for _, p := range ports {
		if p.Type().IsState() {
			if states == nil {
				states = make(map[string]*media.State)
			}
			states[p.Name()] = p.State().Copy()
			continue
		}
		if signals == nil {
			signals = make(map[string]Signal)
		}
		signals[p.Name()] = p.Signal()
	}
	return states, signals
}
