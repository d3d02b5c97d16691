package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNoMatch signals that a binding did not match the event.
	ErrNoMatch = errors.New("binding does not match")

	// ErrNotTerminal indicates an interactive command was run without a terminal.
	ErrNotTerminal = errors.New("standard input is not a terminal")

	// ErrInvalidRecords indicates a replay finished with undecodable records.
	ErrInvalidRecords = errors.New("replay had invalid records")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "replay", "watch")
	Target string // Target of the operation (e.g., file path)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
