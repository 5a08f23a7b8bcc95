package fluid

import (
	"math"

	"github.com/dd0wney/cluso-thermosim/pkg/media"
)

// eps-NTU effectiveness correlations. N is the number of transfer units
// kA/Cmin, C the heat capacity ratio Cmin/Cmax in [0, 1], eps the
// effectiveness in [0, 1).

// NTUCounterflow returns N for a counterflow heat exchanger
func NTUCounterflow(eps, c float64) float64 {
	switch c {
	case 1:
		return eps / (1 - eps)
	case 0:
		return -math.Log(1 - eps)
	default:
		return (1 / (1 - c)) * math.Log((1-c*eps)/(1-eps))
	}
}

// EffectivenessCounterflow returns eps for a counterflow heat exchanger
func EffectivenessCounterflow(n, c float64) float64 {
	switch c {
	case 1:
		return n / (1 + n)
	case 0:
		return 1 - math.Exp(-n)
	default:
		return (1 - math.Exp((c-1)*n)) / (1 - c*math.Exp((c-1)*n))
	}
}

// NTUParallelflow returns N for a parallel flow heat exchanger
func NTUParallelflow(eps, c float64) float64 {
	if c == 0 {
		return -math.Log(1 - eps)
	}
	return -math.Log(1-eps*(1+c)) / (1 + c)
}

// EffectivenessParallelflow returns eps for a parallel flow heat exchanger
func EffectivenessParallelflow(n, c float64) float64 {
	if c == 0 {
		return 1 - math.Exp(-n)
	}
	return (1 - math.Exp(-(1+c)*n)) / (1 + c)
}

// NTUCrossflowOneSideMixed returns N for a crossflow heat exchanger with one
// stream mixed
func NTUCrossflowOneSideMixed(eps, c float64) float64 {
	if c == 0 {
		return -math.Log(1 - eps)
	}
	return (-1 / c) * math.Log(1+c*math.Log(1-eps))
}

// EffectivenessCrossflowOneSideMixed returns eps for a crossflow heat
// exchanger with one stream mixed
func EffectivenessCrossflowOneSideMixed(n, c float64) float64 {
	if c == 0 {
		return 1 - math.Exp(-n)
	}
	return 1 - math.Exp((-1/c)*(1-math.Exp(-c*n)))
}

// EffectivenessCrossflowUnmixed returns eps for a crossflow heat exchanger
// with both streams unmixed (analytic approximation)
func EffectivenessCrossflowUnmixed(n, c float64) float64 {
	if c == 0 {
		return 1 - math.Exp(-n)
	}
	return 1 - math.Exp((1/c)*math.Pow(n, 0.22)*(math.Exp(-c*math.Pow(n, 0.78))-1))
}

// NTUCrossflowUnmixed inverts EffectivenessCrossflowUnmixed by bisection.
// The correlation is monotonic in N, so the bracket [0, 500] covers every
// physically meaningful effectiveness.
func NTUCrossflowUnmixed(eps, c float64) float64 {
	if c == 0 {
		return -math.Log(1 - eps)
	}

	lo, hi := 0.0, 500.0
	for i := 0; i < 100; i++ {
		mid := (lo + hi) / 2
		if EffectivenessCrossflowUnmixed(mid, c) < eps {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < 1e-12 {
			break
		}
	}
	return (lo + hi) / 2
}

// HeatSinkSource is a single-fluid heat exchanger: the flow is heated or
// cooled by a fixed heat duty Q and loses dp across the device.
type HeatSinkSource struct {
	oneInletOneOutlet
	q     float64
	dp    float64
	lastP float64
}

// NewHeatSinkSource creates a heat sink (Q < 0) or source (Q > 0) with a
// fixed pressure change dp
func NewHeatSinkSource(name string, state0 *media.State, q, dp float64) (*HeatSinkSource, error) {
	inner, err := newOneInletOneOutlet(name, state0)
	if err != nil {
		return nil, err
	}
	return &HeatSinkSource{oneInletOneOutlet: inner, q: q, dp: dp, lastP: state0.P()}, nil
}

// StopCriterionMomentum tracks the outlet pressure between iterations
func (m *HeatSinkSource) StopCriterionMomentum() float64 {
	return m.portB.State().P() - m.lastP
}

// Equation applies the heat duty to the flow enthalpy. Humid-air flows are
// heated on the dry-carrier basis at constant water loading.
func (m *HeatSinkSource) Equation() error {
	in := m.portA.State()
	out := m.portB.State()

	m.lastHmass = out.Hmass()
	m.lastP = out.P()
	m.lastMFlow = out.MFlow()

	if in.MFlow() <= 0 {
		return nil
	}

	switch in.Kind() {
	case media.MediumPure:
		hOut := m.q/in.MFlow() + in.Hmass()
		if err := out.SetPH(in.P()+m.dp, hOut); err != nil {
			return err
		}
	case media.MediumHumidAir:
		hOut := m.q/(in.MFlow()/(1+in.W())) + in.Hmass()
		if err := out.SetPHW(in.P()+m.dp, hOut, in.W()); err != nil {
			return err
		}
	default:
		return mismatchError("Equation", m.name, in, out)
	}

	out.SetMFlow(in.MFlow())
	return nil
}
