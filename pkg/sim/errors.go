package sim

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrDuplicateName     = errors.New("duplicate node name")
	ErrPortIncompatible  = errors.New("incompatible port connection")
	ErrMediaTypeMismatch = errors.New("media type mismatch")
	ErrUnknownPort       = errors.New("port not found")
	ErrUnknownNode       = errors.New("node not found")
	ErrPayloadKind       = errors.New("wrong payload kind")
	ErrSolveCancelled    = errors.New("solve cancelled")
)

// SimError provides structured error information for system operations.
type SimError struct {
	Op      string // Operation that failed (e.g., "AddModel", "Connect")
	Node    string // Model or block name (if applicable)
	Port    string // Port name (if applicable)
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *SimError) Error() string {
	switch {
	case e.Node != "" && e.Port != "":
		return fmt.Sprintf("%s %s (port %s): %v", e.Op, e.Node, e.Port, e.Cause)
	case e.Port != "":
		return fmt.Sprintf("%s port %s: %v", e.Op, e.Port, e.Cause)
	case e.Node != "" && e.Context != "":
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Node, e.Context, e.Cause)
	case e.Node != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Node, e.Cause)
	case e.Context != "":
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Context, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *SimError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *SimError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
