package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-thermosim/pkg/media"
)

// sourceModel publishes a fixed state on its only outlet port
type sourceModel struct {
	name    string
	portB   *Port
	fixed   *media.State
	lastP   float64
	deltaP  float64
	healthy bool
	calls   int
}

func newSourceModel(t *testing.T, name string, fixed *media.State) *sourceModel {
	t.Helper()
	port, err := NewStatePort(name+"_port_b", StateOutlet, fixed)
	require.NoError(t, err)
	return &sourceModel{name: name, portB: port, fixed: fixed.Copy(), healthy: true}
}

func (m *sourceModel) Name() string   { return m.name }
func (m *sourceModel) Ports() []*Port { return []*Port{m.portB} }

func (m *sourceModel) Equation() error {
	m.calls++
	m.portB.SetState(m.fixed)
	cur := m.portB.State().P()
	m.deltaP = cur - m.lastP
	m.lastP = cur
	return nil
}

func (m *sourceModel) CheckSelf() bool            { return m.healthy }
func (m *sourceModel) UpdateBalances() error      { return nil }
func (m *sourceModel) Balances() Balances         { return Balances{} }
func (m *sourceModel) StopCriterionEnergy() float64   { return 0 }
func (m *sourceModel) StopCriterionMomentum() float64 { return m.deltaP }
func (m *sourceModel) StopCriterionMass() float64     { return 0 }
func (m *sourceModel) StopCriterionSignal() float64   { return 0 }

func (m *sourceModel) Results() ModelResult {
	states, signals := SnapshotPorts(m.Ports())
	return ModelResult{Name: m.name, States: states, Signals: signals}
}

// boostModel raises the inlet pressure by a fixed dp and passes the mass
// flow through
type boostModel struct {
	name   string
	dp     float64
	portA  *Port
	portB  *Port
	lastP  float64
	deltaP float64
	errOn  int // fail the equation on this call number, 0 disables
	calls  int
}

func newBoostModel(t *testing.T, name string, dp float64, initial *media.State) *boostModel {
	t.Helper()
	portA, err := NewStatePort(name+"_port_a", StateInlet, initial)
	require.NoError(t, err)
	portB, err := NewStatePort(name+"_port_b", StateOutlet, initial)
	require.NoError(t, err)
	return &boostModel{name: name, dp: dp, portA: portA, portB: portB}
}

func (m *boostModel) Name() string   { return m.name }
func (m *boostModel) Ports() []*Port { return []*Port{m.portA, m.portB} }

func (m *boostModel) Equation() error {
	m.calls++
	if m.errOn > 0 && m.calls == m.errOn {
		return ErrPayloadKind
	}
	out := m.portA.State().Copy()
	if err := out.SetPT(out.P()+m.dp, out.T()); err != nil {
		return err
	}
	out.SetMFlow(m.portA.State().MFlow())
	m.portB.SetState(out)

	cur := m.portB.State().P()
	m.deltaP = cur - m.lastP
	m.lastP = cur
	return nil
}

func (m *boostModel) CheckSelf() bool            { return true }
func (m *boostModel) UpdateBalances() error      { return nil }
func (m *boostModel) Balances() Balances         { return Balances{} }
func (m *boostModel) StopCriterionEnergy() float64   { return 0 }
func (m *boostModel) StopCriterionMomentum() float64 { return m.deltaP }
func (m *boostModel) StopCriterionMass() float64     { return 0 }
func (m *boostModel) StopCriterionSignal() float64   { return 0 }

func (m *boostModel) Results() ModelResult {
	states, signals := SnapshotPorts(m.Ports())
	return ModelResult{Name: m.name, States: states, Signals: signals}
}

// steadyBlock always publishes the same value and never reports a delta
type steadyBlock struct {
	name  string
	out   *Port
	value float64
	calls int
}

func newSteadyBlock(t *testing.T, name string, value float64) *steadyBlock {
	t.Helper()
	out, err := NewSignalPort(name+"_port_b", SignalOutlet, FloatSignal(value))
	require.NoError(t, err)
	return &steadyBlock{name: name, out: out, value: value}
}

func (b *steadyBlock) Name() string   { return b.name }
func (b *steadyBlock) Ports() []*Port { return []*Port{b.out} }

func (b *steadyBlock) Equation() error {
	b.calls++
	b.out.SetSignal(FloatSignal(b.value))
	return nil
}

func (b *steadyBlock) CheckSelf() bool              { return true }
func (b *steadyBlock) StopCriterionSignal() float64 { return 0 }

func (b *steadyBlock) Results() BlockResult {
	_, signals := SnapshotPorts(b.Ports())
	return BlockResult{Name: b.name, Signals: signals}
}

// oscillatorBlock alternates its output each pass and never settles
type oscillatorBlock struct {
	name  string
	out   *Port
	amp   float64
	last  float64
	delta float64
}

func newOscillatorBlock(t *testing.T, name string, amp float64) *oscillatorBlock {
	t.Helper()
	out, err := NewSignalPort(name+"_port_b", SignalOutlet, FloatSignal(0))
	require.NoError(t, err)
	return &oscillatorBlock{name: name, out: out, amp: amp}
}

func (b *oscillatorBlock) Name() string   { return b.name }
func (b *oscillatorBlock) Ports() []*Port { return []*Port{b.out} }

func (b *oscillatorBlock) Equation() error {
	next := b.amp - b.last
	b.out.SetSignal(FloatSignal(next))
	b.delta = next - b.last
	b.last = next
	return nil
}

func (b *oscillatorBlock) CheckSelf() bool              { return true }
func (b *oscillatorBlock) StopCriterionSignal() float64 { return b.delta }

func (b *oscillatorBlock) Results() BlockResult {
	_, signals := SnapshotPorts(b.Ports())
	return BlockResult{Name: b.name, Signals: signals}
}
