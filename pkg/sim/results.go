package sim

import (
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-thermosim/pkg/media"
)

// Status is the terminal outcome of a solve run.
type Status uint8

const (
	StatusSuccess Status = iota
	StatusNotConverged
	StatusError
)

// String returns the name of the status
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "converged"
	case StatusNotConverged:
		return "not-converged"
	case StatusError:
		return "errored"
	default:
		return "unknown"
	}
}

// ModelResult is an immutable snapshot of a model's port payloads and
// balances. Kind is the concrete component type name, filled in by
// System.NodeResults.
type ModelResult struct {
	Name     string
	Kind     string
	States   map[string]*media.State
	Signals  map[string]Signal
	Balances Balances
}

// BlockResult is an immutable snapshot of a block's signal ports
type BlockResult struct {
	Name    string
	Kind    string
	Signals map[string]Signal
}

// SystemResult is produced by every solve run, for all three terminal
// outcomes. On error it still carries whatever partial results exist.
type SystemResult struct {
	ID         uuid.UUID
	Status     Status
	Message    string
	Err        error
	Iterations int
	Duration   time.Duration
	Models     map[string]ModelResult
	Blocks     map[string]BlockResult
}

// Converged reports whether the run reached a fixed point within the
// iteration cap
func (r *SystemResult) Converged() bool {
	return r.Status == StatusSuccess
}

func newSystemResult(status Status, message string, err error, iterations int, started time.Time,
	models map[string]ModelResult, blocks map[string]BlockResult) *SystemResult {
	return &SystemResult{
		ID:         uuid.New(),
		Status:     status,
		Message:    message,
		Err:        err,
		Iterations: iterations,
		Duration:   time.Since(started),
		Models:     models,
		Blocks:     blocks,
	}
}
