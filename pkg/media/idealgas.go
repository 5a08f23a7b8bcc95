package media

import (
	"fmt"
	"math"
)

// referenceP is the entropy reference pressure [Pa]
const referenceP = 101325.0

// IdealGasFluid describes a gas obeying the ideal gas law with constant cp.
type IdealGasFluid struct {
	Name         string
	R            float64 // specific gas constant [J/(kg*K)]
	Cp           float64 // specific isobaric heat capacity [J/(kg*K)]
	Conductivity float64 // thermal conductivity [W/(m*K)]
	Viscosity    float64 // dynamic viscosity [Pa*s]
	TMin         float64 // lower validity bound [K]
	TMax         float64 // upper validity bound [K]
}

// Predefined ideal gases
var (
	Air = IdealGasFluid{
		Name:         "Air",
		R:            287.05,
		Cp:           1006.0,
		Conductivity: 0.0262,
		Viscosity:    1.82e-5,
		TMin:         200.0,
		TMax:         1500.0,
	}

	Nitrogen = IdealGasFluid{
		Name:         "Nitrogen",
		R:            296.80,
		Cp:           1040.0,
		Conductivity: 0.0259,
		Viscosity:    1.76e-5,
		TMin:         100.0,
		TMax:         1500.0,
	}
)

// IdealGas is a property backend for ideal gases with constant cp.
// Enthalpy is referenced to 0 J/kg at 273.15 K; entropy to 273.15 K and
// 101325 Pa.
type IdealGas struct {
	fluid IdealGasFluid
}

// NewIdealGas creates a backend for the given ideal gas
func NewIdealGas(fluid IdealGasFluid) (*IdealGas, error) {
	if fluid.Name == "" || fluid.R <= 0 || fluid.Cp <= fluid.R {
		return nil, fmt.Errorf("%w: ideal gas needs a name, positive R and cp > R", ErrConfiguration)
	}
	if fluid.TMin <= 0 || fluid.TMax <= fluid.TMin {
		return nil, fmt.Errorf("%w: ideal gas %s has an invalid validity range", ErrConfiguration, fluid.Name)
	}
	return &IdealGas{fluid: fluid}, nil
}

// FluidName returns the name of the gas
func (b *IdealGas) FluidName() string { return b.fluid.Name }

// Kind returns MediumPure
func (b *IdealGas) Kind() MediumKind { return MediumPure }

// Evaluate resolves the supported input pairs (P,T), (P,Hmass), (P,Smass)
// and (P,Dmass)
func (b *IdealGas) Evaluate(k1 PropertyKind, v1 float64, k2 PropertyKind, v2 float64) (Properties, error) {
	k1, v1, k2, v2 = orderPair(k1, v1, k2, v2)

	var p, temp float64
	switch {
	case k1 == P && k2 == T:
		p, temp = v1, v2
	case k1 == P && k2 == Hmass:
		p, temp = v1, referenceT+v2/b.fluid.Cp
	case k1 == P && k2 == Smass:
		p, temp = v1, referenceT*math.Exp((v2+b.fluid.R*math.Log(v1/referenceP))/b.fluid.Cp)
	case k1 == P && k2 == Dmass:
		if v2 <= 0 {
			return Properties{}, fmt.Errorf("%w: fluid %s: non-positive density %g kg/m^3",
				ErrPropertyEvaluation, b.fluid.Name, v2)
		}
		p, temp = v1, v1/(b.fluid.R*v2)
	default:
		return Properties{}, unsupportedPair(b.fluid.Name, k1, k2)
	}

	if p <= 0 {
		return Properties{}, fmt.Errorf("%w: fluid %s: non-positive pressure %g Pa",
			ErrPropertyEvaluation, b.fluid.Name, p)
	}
	if temp < b.fluid.TMin || temp > b.fluid.TMax {
		return Properties{}, fmt.Errorf("%w: fluid %s: temperature %g K outside validity range [%g, %g]",
			ErrPropertyEvaluation, b.fluid.Name, temp, b.fluid.TMin, b.fluid.TMax)
	}

	return Properties{
		P:            p,
		T:            temp,
		Hmass:        b.fluid.Cp * (temp - referenceT),
		Smass:        b.fluid.Cp*math.Log(temp/referenceT) - b.fluid.R*math.Log(p/referenceP),
		Rhomass:      p / (b.fluid.R * temp),
		Cpmass:       b.fluid.Cp,
		Cvmass:       b.fluid.Cp - b.fluid.R,
		Conductivity: b.fluid.Conductivity,
		Viscosity:    b.fluid.Viscosity,
		Quality:      -1,
		Z:            1,
		Phase:        PhaseGas,
	}, nil
}
