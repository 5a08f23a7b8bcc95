package fluid

import (
	"github.com/dd0wney/cluso-thermosim/pkg/media"
)

// SourceFixedState is a fixed boundary condition with a single outlet port.
// The state set at construction is published unchanged every pass.
type SourceFixedState struct {
	oneOutlet
}

// NewSourceFixedState creates a fixed-state source
func NewSourceFixedState(name string, state0 *media.State) (*SourceFixedState, error) {
	inner, err := newOneOutlet(name, state0)
	if err != nil {
		return nil, err
	}
	return &SourceFixedState{oneOutlet: inner}, nil
}

// Equation does nothing: the outlet state is fixed
func (m *SourceFixedState) Equation() error { return nil }

// SinkFixedState is a fixed boundary condition with a single inlet port
// absorbing whatever arrives.
type SinkFixedState struct {
	oneInlet
}

// NewSinkFixedState creates a fixed-state sink
func NewSinkFixedState(name string, state0 *media.State) (*SinkFixedState, error) {
	inner, err := newOneInlet(name, state0)
	if err != nil {
		return nil, err
	}
	return &SinkFixedState{oneInlet: inner}, nil
}

// Equation does nothing: the sink only receives
func (m *SinkFixedState) Equation() error { return nil }
