package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dd0wney/cluso-thermosim/pkg/logging"
)

// Solve iterates the system graph to a steady state. Each pass evaluates
// every component in registration order (models first, then blocks) and
// propagates its outlet payloads along the user-declared connections.
// Later components observe values already updated earlier in the same pass;
// this in-place update order is what the convergence behavior is built on
// and must not be reordered.
//
// Solve always returns a result, for all three terminal outcomes. A failing
// component equation aborts the run and is reported once at this level,
// never retried. The context is checked between component evaluations;
// cancellation surfaces as an errored result.
func (s *System) Solve(ctx context.Context) *SystemResult {
	started := time.Now()
	s.log.Info("solve started",
		logging.Int("models", len(s.models)),
		logging.Int("blocks", len(s.blocks)),
		logging.Int("max_iterations", s.cfg.MaxIterations))

	nodes, err := s.preSolve()
	if err != nil {
		return s.finish(StatusError, err.Error(), err, started)
	}

	var solveErr error
loop:
	for s.continueIteration() {
		for _, node := range nodes {
			if err := ctx.Err(); err != nil {
				solveErr = &SimError{Op: "Solve", Cause: ErrSolveCancelled, Context: err.Error()}
				break loop
			}
			if err := node.Equation(); err != nil {
				s.metrics.RecordEquationError()
				solveErr = &SimError{Op: "Solve", Node: node.Name(), Cause: err,
					Context: fmt.Sprintf("iteration %d", s.iteration)}
				break loop
			}
			s.propagate(node)
		}
	}

	if solveErr != nil {
		s.log.Error("solve aborted", logging.Error(solveErr), logging.Iteration(s.iteration))
		return s.finish(StatusError, solveErr.Error(), solveErr, started)
	}

	if err := s.postSolve(); err != nil {
		return s.finish(StatusError, err.Error(), err, started)
	}

	if s.iteration > s.cfg.MaxIterations {
		msg := fmt.Sprintf("no convergence within %d iterations", s.cfg.MaxIterations)
		s.log.Warn("solve did not converge", logging.Iteration(s.iteration))
		return s.finish(StatusNotConverged, msg, nil, started)
	}

	msg := fmt.Sprintf("converged after %d iterations", s.iteration)
	s.log.Info("solve converged", logging.Iteration(s.iteration))
	return s.finish(StatusSuccess, msg, nil, started)
}

// preSolve resets the iteration counter and runs the structural self-check.
// Self-check failures are warnings by default and hard errors in strict
// mode.
func (s *System) preSolve() ([]simNode, error) {
	s.iteration = 0
	if !s.CheckSelf() && s.strict {
		return nil, &SimError{Op: "Solve", Cause: errors.New("self-check failed"),
			Context: "strict mode"}
	}

	nodes := make([]simNode, 0, len(s.models)+len(s.blocks))
	for _, m := range s.models {
		nodes = append(nodes, m)
	}
	for _, b := range s.blocks {
		nodes = append(nodes, b)
	}
	return nodes, nil
}

// continueIteration increments the iteration counter and decides whether
// another pass is needed. The first call always answers yes so every solve
// performs at least one full equation pass before any convergence judgment.
// Iteration continues while any component's any tracked delta exceeds its
// tolerance.
func (s *System) continueIteration() bool {
	if s.iteration == 0 {
		s.iteration++
		return true
	}
	s.iteration++
	if s.iteration > s.cfg.MaxIterations {
		return false
	}

	for _, m := range s.models {
		if math.Abs(m.StopCriterionEnergy()) > s.cfg.StopCriterionEnergy {
			return true
		}
		if math.Abs(m.StopCriterionMomentum()) > s.cfg.StopCriterionMomentum {
			return true
		}
		if math.Abs(m.StopCriterionMass()) > s.cfg.StopCriterionMass {
			return true
		}
		if math.Abs(m.StopCriterionSignal()) > s.cfg.StopCriterionSignal {
			return true
		}
	}
	for _, b := range s.blocks {
		if math.Abs(b.StopCriterionSignal()) > s.cfg.StopCriterionSignal {
			return true
		}
	}
	return false
}

// propagate pushes the node's outlet payloads along user connections.
// An outlet state with no flow is physically stagnant and publishes
// nothing this pass. Writes go through the ports' copying setters, and an
// inlet-outlet port relays the received value one hop further so pass-through
// components see it within the same pass.
func (s *System) propagate(node simNode) {
	owner, ok := s.graph.lookup(node.Name())
	if !ok {
		return
	}

	for _, outletHandle := range s.graph.successors(owner) {
		outlet := s.payloads[outletHandle]
		if outlet == nil {
			continue
		}
		if outlet.Type().IsState() && outlet.State().MFlow() <= 0 {
			continue
		}
		for _, targetHandle := range s.graph.successors(outletHandle) {
			target := s.payloads[targetHandle]
			if target == nil || !outlet.compatibleWith(target) {
				continue
			}
			outlet.copyPayloadTo(target)
			s.relay(target, targetHandle)
		}
	}
}

// relay forwards the freshly written payload of an inlet-outlet port to its
// own connected inlets
func (s *System) relay(port *Port, handle int32) {
	if port.Type() != StateInletOutlet && port.Type() != SignalInletOutlet {
		return
	}
	if port.Type().IsState() && port.State().MFlow() <= 0 {
		return
	}
	for _, nextHandle := range s.graph.successors(handle) {
		next := s.payloads[nextHandle]
		if next == nil || !port.compatibleWith(next) {
			continue
		}
		port.copyPayloadTo(next)
	}
}

// postSolve recomputes the balances of every model. Media-type mismatches
// are logged and counted by default; in strict mode they fail the run.
func (s *System) postSolve() error {
	for _, m := range s.models {
		if err := m.UpdateBalances(); err != nil {
			if s.strict {
				return &SimError{Op: "Solve", Node: m.Name(), Cause: err}
			}
			s.metrics.RecordBalanceWarning()
			s.log.Error("balance update failed", logging.Model(m.Name()), logging.Error(err))
		}
	}
	return nil
}

// finish assembles the terminal result, records it and updates metrics
func (s *System) finish(status Status, message string, err error, started time.Time) *SystemResult {
	modelResults, blockResults := s.NodeResults()
	result := newSystemResult(status, message, err, s.iteration, started, modelResults, blockResults)
	s.last = result
	s.metrics.RecordSolve(status.String(), result.Iterations, result.Duration)
	return result
}
