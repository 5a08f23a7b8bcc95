package fluid

import (
	"fmt"
	"math"

	"github.com/dd0wney/cluso-thermosim/pkg/media"
)

// JunctionOneToTwo splits the inlet flow onto two outlets with fixed mass
// fractions. The fractions are normalized at construction, so any positive
// pair is accepted.
type JunctionOneToTwo struct {
	oneInletTwoOutlets
	fraction [2]float64
}

// NewJunctionOneToTwo creates a splitting junction
func NewJunctionOneToTwo(name string, state0 *media.State, fraction [2]float64) (*JunctionOneToTwo, error) {
	sum := fraction[0] + fraction[1]
	if fraction[0] < 0 || fraction[1] < 0 || sum <= 0 {
		return nil, fmt.Errorf("%w: junction %s: invalid mass flow fractions %v",
			media.ErrConfiguration, name, fraction)
	}
	inner, err := newOneInletTwoOutlets(name, state0)
	if err != nil {
		return nil, err
	}
	j := &JunctionOneToTwo{
		oneInletTwoOutlets: inner,
		fraction:           [2]float64{fraction[0] / sum, fraction[1] / sum},
	}
	j.portB1.State().SetMFlow(state0.MFlow() * j.fraction[0])
	j.portB2.State().SetMFlow(state0.MFlow() * j.fraction[1])
	return j, nil
}

// Equation copies the inlet state onto both outlets and splits the mass flow
func (m *JunctionOneToTwo) Equation() error {
	in := m.portA.State()

	m.lastHmass = in.Hmass()
	m.lastP = in.P()
	m.lastMFlow = in.MFlow()

	if in.MFlow() <= 0 {
		return nil
	}

	m.portB1.SetState(in)
	m.portB2.SetState(in)
	m.portB1.State().SetMFlow(in.MFlow() * m.fraction[0])
	m.portB2.State().SetMFlow(in.MFlow() * m.fraction[1])
	return nil
}

// JunctionTwoToOne mixes two inlet flows into one outlet. The outlet
// pressure is the lower of the two inlet pressures; the outlet enthalpy is
// the flow-weighted mixture. Humid-air inlets additionally mix their water
// loadings on the dry-carrier basis.
type JunctionTwoToOne struct {
	twoInletsOneOutlet
}

// NewJunctionTwoToOne creates a mixing junction
func NewJunctionTwoToOne(name string, state0 *media.State) (*JunctionTwoToOne, error) {
	inner, err := newTwoInletsOneOutlet(name, state0)
	if err != nil {
		return nil, err
	}
	return &JunctionTwoToOne{twoInletsOneOutlet: inner}, nil
}

// Equation mixes the two inlet flows into the outlet state
func (m *JunctionTwoToOne) Equation() error {
	a1 := m.portA1.State()
	a2 := m.portA2.State()
	out := m.portB.State()

	m.lastHmass = out.Hmass()
	m.lastP = out.P()
	m.lastMFlow = out.MFlow()

	if a1.MFlow() <= 0 && a2.MFlow() <= 0 {
		return nil
	}

	pOut := math.Min(a1.P(), a2.P())

	switch {
	case a1.Kind() == media.MediumPure && a2.Kind() == media.MediumPure:
		hOut := (a1.MFlow()*a1.Hmass() + a2.MFlow()*a2.Hmass()) / (a1.MFlow() + a2.MFlow())
		if err := out.SetPH(pOut, hOut); err != nil {
			return err
		}

	case a1.Kind() == media.MediumHumidAir && a2.Kind() == media.MediumHumidAir:
		// dry-carrier mass flows
		mDry1 := a1.MFlow() / (1 + a1.W())
		mDry2 := a2.MFlow() / (1 + a2.W())
		wOut := (a1.MFlow()+a2.MFlow())/(mDry1+mDry2) - 1
		hOut := (mDry1*a1.Hmass() + mDry2*a2.Hmass()) / ((a1.MFlow() + a2.MFlow()) / (1 + wOut))
		if err := out.SetPHW(pOut, hOut, wOut); err != nil {
			return err
		}

	default:
		return mismatchError("Equation", m.name, a1, a2)
	}

	out.SetMFlow(a1.MFlow() + a2.MFlow())
	return nil
}
