package media

import (
	"fmt"
	"math"
)

// Ideal-mixture constants for humid air
const (
	gasConstantDryAir = 287.0474730938159 // specific gas constant of dry air [J/(kg*K)]
	gasConstantWater  = 461.5230869726723 // specific gas constant of water vapor [J/(kg*K)]
	cpDryAir          = 1006.0            // cp of dry air [J/(kg*K)]
	cpWaterVapor      = 1860.0            // cp of water vapor [J/(kg*K)]
	hEvaporation      = 2.501e6           // evaporation enthalpy of water at 0 degC [J/kg]
)

// HumidAir is an ideal-mixture property backend for humid air. Specific
// quantities are referenced to one kilogram of dry air; the water loading w
// (kg water per kg dry air) is a third state variable supplied through
// EvaluateW.
type HumidAir struct {
	tMin, tMax float64
}

// NewHumidAir creates an ideal humid air backend
func NewHumidAir() *HumidAir {
	return &HumidAir{tMin: 213.15, tMax: 473.15}
}

// FluidName returns "HumidAir"
func (b *HumidAir) FluidName() string { return "HumidAir" }

// Kind returns MediumHumidAir
func (b *HumidAir) Kind() MediumKind { return MediumHumidAir }

// Evaluate resolves the mixture at zero water loading
func (b *HumidAir) Evaluate(k1 PropertyKind, v1 float64, k2 PropertyKind, v2 float64) (Properties, error) {
	return b.EvaluateW(k1, v1, k2, v2, 0)
}

// EvaluateW resolves the supported input pairs (P,T) and (P,Hmass) for the
// given water loading w
func (b *HumidAir) EvaluateW(k1 PropertyKind, v1 float64, k2 PropertyKind, v2 float64, w float64) (Properties, error) {
	if w < 0 {
		return Properties{}, fmt.Errorf("%w: humid air: negative water loading %g", ErrPropertyEvaluation, w)
	}

	k1, v1, k2, v2 = orderPair(k1, v1, k2, v2)

	var p, temp float64
	switch {
	case k1 == P && k2 == T:
		p, temp = v1, v2
	case k1 == P && k2 == Hmass:
		// h = cp_a*t + w*(h_ev + cp_v*t), t in degC per kg dry air
		p, temp = v1, referenceT+(v2-w*hEvaporation)/(cpDryAir+w*cpWaterVapor)
	default:
		return Properties{}, unsupportedPair(b.FluidName(), k1, k2)
	}

	if p <= 0 {
		return Properties{}, fmt.Errorf("%w: humid air: non-positive pressure %g Pa", ErrPropertyEvaluation, p)
	}
	if temp < b.tMin || temp > b.tMax {
		return Properties{}, fmt.Errorf("%w: humid air: temperature %g K outside validity range [%g, %g]",
			ErrPropertyEvaluation, temp, b.tMin, b.tMax)
	}

	t := temp - referenceT
	rMix := (gasConstantDryAir + w*gasConstantWater) / (1 + w)
	cpMix := (cpDryAir + w*cpWaterVapor) / (1 + w)

	return Properties{
		P:            p,
		T:            temp,
		Hmass:        cpDryAir*t + w*(hEvaporation+cpWaterVapor*t),
		Smass:        cpMix*math.Log(temp/referenceT) - rMix*math.Log(p/referenceP),
		Rhomass:      p / (rMix * temp),
		Cpmass:       cpMix,
		Cvmass:       cpMix - rMix,
		Conductivity: 0.0262,
		Viscosity:    1.82e-5,
		Quality:      -1,
		Z:            1,
		Phase:        PhaseGas,
	}, nil
}
