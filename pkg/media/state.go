package media

import (
	"encoding/json"
	"fmt"
)

// State wraps a property backend together with the cached property bundle of
// the current state basis and the mass flow through it. All thermodynamic
// properties are re-based atomically: a setter either replaces the whole
// bundle or leaves the state untouched.
//
// The mass flow is the one mutable field owned by the wrapper itself, not by
// the backend.
type State struct {
	backend Backend
	props   Properties
	w       float64 // water loading for mixture states [kg/kg dry air]
	mflow   float64 // mass flow [kg/s]
}

// NewState creates a state from two independent properties and a mass flow
func NewState(backend Backend, k1 PropertyKind, v1 float64, k2 PropertyKind, v2 float64, mflow float64) (*State, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: state needs a property backend", ErrConfiguration)
	}
	props, err := backend.Evaluate(k1, v1, k2, v2)
	if err != nil {
		return nil, err
	}
	return &State{backend: backend, props: props, mflow: mflow}, nil
}

// NewStatePT creates a state from pressure and temperature
func NewStatePT(backend Backend, p, temp, mflow float64) (*State, error) {
	return NewState(backend, P, p, T, temp, mflow)
}

// NewStatePH creates a state from pressure and specific enthalpy
func NewStatePH(backend Backend, p, h, mflow float64) (*State, error) {
	return NewState(backend, P, p, Hmass, h, mflow)
}

// NewStatePTW creates a mixture state from pressure, temperature and water
// loading. The backend must support mixtures.
func NewStatePTW(backend Backend, p, temp, w, mflow float64) (*State, error) {
	mix, ok := backend.(MixtureBackend)
	if !ok {
		return nil, fmt.Errorf("%w: backend %s does not support mixture states", ErrConfiguration, backend.FluidName())
	}
	props, err := mix.EvaluateW(P, p, T, temp, w)
	if err != nil {
		return nil, err
	}
	return &State{backend: backend, props: props, w: w, mflow: mflow}, nil
}

// Copy returns a storage-independent clone with identical property basis and
// mass flow. The backend is shared: backends are stateless pure functions.
func (s *State) Copy() *State {
	clone := *s
	return &clone
}

// set re-bases the cached bundle, leaving the state untouched on error
func (s *State) set(k1 PropertyKind, v1 float64, k2 PropertyKind, v2 float64) error {
	props, err := s.backend.Evaluate(k1, v1, k2, v2)
	if err != nil {
		return err
	}
	s.props = props
	return nil
}

// setW re-bases a mixture state
func (s *State) setW(k1 PropertyKind, v1 float64, k2 PropertyKind, v2 float64, w float64) error {
	mix, ok := s.backend.(MixtureBackend)
	if !ok {
		return fmt.Errorf("%w: backend %s does not support mixture states", ErrConfiguration, s.backend.FluidName())
	}
	props, err := mix.EvaluateW(k1, v1, k2, v2, w)
	if err != nil {
		return err
	}
	s.props = props
	s.w = w
	return nil
}

// SetPT re-bases the state on pressure and temperature
func (s *State) SetPT(p, temp float64) error { return s.set(P, p, T, temp) }

// SetPH re-bases the state on pressure and specific enthalpy
func (s *State) SetPH(p, h float64) error { return s.set(P, p, Hmass, h) }

// SetPS re-bases the state on pressure and specific entropy
func (s *State) SetPS(p, sm float64) error { return s.set(P, p, Smass, sm) }

// SetPX re-bases the state on pressure and vapor quality
func (s *State) SetPX(p, x float64) error { return s.set(P, p, Q, x) }

// SetTX re-bases the state on temperature and vapor quality
func (s *State) SetTX(temp, x float64) error { return s.set(T, temp, Q, x) }

// SetPTW re-bases a mixture state on pressure, temperature and water loading
func (s *State) SetPTW(p, temp, w float64) error { return s.setW(P, p, T, temp, w) }

// SetPHW re-bases a mixture state on pressure, specific enthalpy and water
// loading
func (s *State) SetPHW(p, h, w float64) error { return s.setW(P, p, Hmass, h, w) }

// Read-only property surface, delegating to the cached bundle

func (s *State) P() float64            { return s.props.P }
func (s *State) T() float64            { return s.props.T }
func (s *State) Hmass() float64        { return s.props.Hmass }
func (s *State) Smass() float64        { return s.props.Smass }
func (s *State) Rhomass() float64      { return s.props.Rhomass }
func (s *State) Cpmass() float64       { return s.props.Cpmass }
func (s *State) Cvmass() float64       { return s.props.Cvmass }
func (s *State) Conductivity() float64 { return s.props.Conductivity }
func (s *State) Viscosity() float64    { return s.props.Viscosity }
func (s *State) Quality() float64      { return s.props.Quality }
func (s *State) Z() float64            { return s.props.Z }
func (s *State) Phase() Phase          { return s.props.Phase }

// FluidName returns the name of the underlying fluid
func (s *State) FluidName() string { return s.backend.FluidName() }

// Kind returns the medium kind of the underlying backend
func (s *State) Kind() MediumKind { return s.backend.Kind() }

// W returns the water loading of a mixture state, 0 for pure fluids
func (s *State) W() float64 { return s.w }

// MFlow returns the mass flow through the state [kg/s]
func (s *State) MFlow() float64 { return s.mflow }

// SetMFlow sets the mass flow through the state [kg/s]
func (s *State) SetMFlow(mflow float64) { s.mflow = mflow }

// FlowEnthalpy returns the enthalpy flow of the state [W]. Mixture mass flows
// are normalized to the dry-carrier basis before weighting.
func (s *State) FlowEnthalpy() float64 {
	if s.Kind() == MediumHumidAir {
		return s.mflow / (1 + s.w) * s.props.Hmass
	}
	return s.mflow * s.props.Hmass
}

// stateJSON is the flat serialization of a state snapshot
type stateJSON struct {
	Fluid   string  `json:"fluid"`
	Kind    string  `json:"kind"`
	P       float64 `json:"p"`
	T       float64 `json:"T"`
	Hmass   float64 `json:"hmass"`
	Smass   float64 `json:"smass"`
	Rhomass float64 `json:"rhomass"`
	W       float64 `json:"w,omitempty"`
	MFlow   float64 `json:"m_flow"`
}

// MarshalJSON serializes the state as a flat property snapshot
func (s *State) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateJSON{
		Fluid:   s.FluidName(),
		Kind:    s.Kind().String(),
		P:       s.props.P,
		T:       s.props.T,
		Hmass:   s.props.Hmass,
		Smass:   s.props.Smass,
		Rhomass: s.props.Rhomass,
		W:       s.w,
		MFlow:   s.mflow,
	})
}
