package media

import (
	"fmt"
	"math"
)

// referenceT is the enthalpy/entropy reference temperature [K]
const referenceT = 273.15

// IncompressibleFluid describes a liquid with constant density and heat
// capacity. Transport properties are constants taken at typical operating
// conditions.
type IncompressibleFluid struct {
	Name         string
	Rho          float64 // density [kg/m^3]
	Cp           float64 // specific heat capacity [J/(kg*K)]
	Conductivity float64 // thermal conductivity [W/(m*K)]
	Viscosity    float64 // dynamic viscosity [Pa*s]
	TMin         float64 // lower validity bound [K]
	TMax         float64 // upper validity bound [K]
}

// Predefined incompressible pure fluids
var (
	Water = IncompressibleFluid{
		Name:         "Water",
		Rho:          997.0,
		Cp:           4180.0,
		Conductivity: 0.606,
		Viscosity:    0.00089,
		TMin:         273.15,
		TMax:         413.15,
	}

	EthyleneGlycol = IncompressibleFluid{
		Name:         "EthyleneGlycol",
		Rho:          1113.0,
		Cp:           2415.0,
		Conductivity: 0.252,
		Viscosity:    0.0162,
		TMin:         260.15,
		TMax:         470.15,
	}

	ThermalOil = IncompressibleFluid{
		Name:         "ThermalOil",
		Rho:          860.0,
		Cp:           2100.0,
		Conductivity: 0.12,
		Viscosity:    0.032,
		TMin:         263.15,
		TMax:         573.15,
	}
)

// Incompressible is a property backend for liquids with constant rho and cp.
// Enthalpy and entropy are referenced to 273.15 K.
type Incompressible struct {
	fluid IncompressibleFluid
}

// NewIncompressible creates a backend for the given incompressible fluid
func NewIncompressible(fluid IncompressibleFluid) (*Incompressible, error) {
	if fluid.Name == "" || fluid.Rho <= 0 || fluid.Cp <= 0 {
		return nil, fmt.Errorf("%w: incompressible fluid needs a name, positive rho and positive cp", ErrConfiguration)
	}
	if fluid.TMin <= 0 || fluid.TMax <= fluid.TMin {
		return nil, fmt.Errorf("%w: incompressible fluid %s has an invalid validity range", ErrConfiguration, fluid.Name)
	}
	return &Incompressible{fluid: fluid}, nil
}

// FluidName returns the name of the fluid
func (b *Incompressible) FluidName() string { return b.fluid.Name }

// Kind returns MediumPure
func (b *Incompressible) Kind() MediumKind { return MediumPure }

// Evaluate resolves the supported input pairs (P,T), (P,Hmass) and (P,Smass)
func (b *Incompressible) Evaluate(k1 PropertyKind, v1 float64, k2 PropertyKind, v2 float64) (Properties, error) {
	k1, v1, k2, v2 = orderPair(k1, v1, k2, v2)

	var p, temp float64
	switch {
	case k1 == P && k2 == T:
		p, temp = v1, v2
	case k1 == P && k2 == Hmass:
		p, temp = v1, referenceT+v2/b.fluid.Cp
	case k1 == P && k2 == Smass:
		p, temp = v1, referenceT*math.Exp(v2/b.fluid.Cp)
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
		Smass:        b.fluid.Cp * math.Log(temp/referenceT),
		Rhomass:      b.fluid.Rho,
		Cpmass:       b.fluid.Cp,
		Cvmass:       b.fluid.Cp,
		Conductivity: b.fluid.Conductivity,
		Viscosity:    b.fluid.Viscosity,
		Quality:      -1,
		Z:            0,
		Phase:        PhaseLiquid,
	}, nil
}
