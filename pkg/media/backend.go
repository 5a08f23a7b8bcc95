// Package media provides the thermodynamic property boundary of the simulator:
// fluids, property backends and the State wrapper carried by state ports.
// Backends are stateless. Every call maps a pair of known properties to a full
// property bundle, so a single backend instance may be shared across states.
package media

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrPropertyEvaluation = errors.New("property evaluation failed")
	ErrConfiguration      = errors.New("invalid media configuration")
)

// PropertyKind identifies one of the properties a backend accepts as input.
type PropertyKind uint8

const (
	P     PropertyKind = iota // pressure [Pa]
	T                         // temperature [K]
	Hmass                     // specific enthalpy [J/kg]
	Smass                     // specific entropy [J/(kg*K)]
	Q                         // vapor quality [-]
	Dmass                     // density [kg/m^3]
)

// String returns the symbol of the property kind
func (k PropertyKind) String() string {
	switch k {
	case P:
		return "P"
	case T:
		return "T"
	case Hmass:
		return "Hmass"
	case Smass:
		return "Smass"
	case Q:
		return "Q"
	case Dmass:
		return "Dmass"
	default:
		return "unknown"
	}
}

// Phase describes the aggregate state of a fluid
type Phase uint8

const (
	PhaseUnknown Phase = iota
	PhaseLiquid
	PhaseGas
	PhaseTwoPhase
	PhaseSupercritical
)

// String returns the name of the phase
func (p Phase) String() string {
	switch p {
	case PhaseLiquid:
		return "liquid"
	case PhaseGas:
		return "gas"
	case PhaseTwoPhase:
		return "two-phase"
	case PhaseSupercritical:
		return "supercritical"
	default:
		return "unknown"
	}
}

// MediumKind distinguishes pure fluids from humid-air-like binary mixtures.
// Balance computations normalize mixture mass flows to the dry-carrier basis,
// so the two kinds must never be mixed within one balance.
type MediumKind uint8

const (
	MediumPure MediumKind = iota
	MediumHumidAir
)

// String returns the name of the medium kind
func (k MediumKind) String() string {
	switch k {
	case MediumPure:
		return "pure"
	case MediumHumidAir:
		return "humid-air"
	default:
		return "unknown"
	}
}

// Properties is the full property bundle returned by a backend evaluation.
// Quality is -1 when undefined for the medium (single-phase liquids, gases).
type Properties struct {
	P            float64 // pressure [Pa]
	T            float64 // temperature [K]
	Hmass        float64 // specific enthalpy [J/kg]
	Smass        float64 // specific entropy [J/(kg*K)]
	Rhomass      float64 // density [kg/m^3]
	Cpmass       float64 // specific isobaric heat capacity [J/(kg*K)]
	Cvmass       float64 // specific isochoric heat capacity [J/(kg*K)]
	Conductivity float64 // thermal conductivity [W/(m*K)]
	Viscosity    float64 // dynamic viscosity [Pa*s]
	Quality      float64 // vapor quality [-], -1 when undefined
	Z            float64 // compressibility factor [-]
	Phase        Phase
}

// Backend resolves a pair of known properties to a full property bundle.
// Implementations must be pure: identical inputs yield identical bundles.
type Backend interface {
	// FluidName returns the name of the fluid this backend evaluates
	FluidName() string
	// Kind returns the medium kind of the backend
	Kind() MediumKind
	// Evaluate computes the property bundle from two independent properties.
	// States outside the backend's validity domain fail with
	// ErrPropertyEvaluation.
	Evaluate(k1 PropertyKind, v1 float64, k2 PropertyKind, v2 float64) (Properties, error)
}

// MixtureBackend extends Backend for binary mixtures such as humid air,
// where the water loading w (kg water per kg dry air) is a third input.
type MixtureBackend interface {
	Backend
	// EvaluateW computes the property bundle of a mixture with loading w
	EvaluateW(k1 PropertyKind, v1 float64, k2 PropertyKind, v2 float64, w float64) (Properties, error)
}

// orderPair normalizes an input pair so backends only need to handle one
// ordering of each supported combination.
func orderPair(k1 PropertyKind, v1 float64, k2 PropertyKind, v2 float64) (PropertyKind, float64, PropertyKind, float64) {
	if k1 > k2 {
		return k2, v2, k1, v1
	}
	return k1, v1, k2, v2
}

func unsupportedPair(fluid string, k1, k2 PropertyKind) error {
	return fmt.Errorf("%w: fluid %s does not support input pair (%s, %s)",
		ErrPropertyEvaluation, fluid, k1, k2)
}
