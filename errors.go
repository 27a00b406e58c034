package dcel

import (
	"errors"
	"fmt"
)

// ErrUnimplemented is returned by entry points that are declared but
// deliberately unsupported.
var ErrUnimplemented = errors.New("dcel: unimplemented operation")

// PreconditionError reports an argument outside an operation's documented
// domain, such as a ratio outside [0, 1] or an edge that does not belong to
// the face it was invoked on.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("dcel: %s: %s", e.Op, e.Reason)
}

// TopologyError reports an operation invoked against missing or malformed
// required structure, such as a half-edge without a twin where one is
// required.
type TopologyError struct {
	Op     string
	Reason string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("dcel: %s: %s", e.Op, e.Reason)
}

// DegeneracyError reports that an assumed-unique geometric result does not
// exist or is not unique, such as a subdividing probe crossing zero or
// several opposite edges.
type DegeneracyError struct {
	Op     string
	Reason string
}

func (e *DegeneracyError) Error() string {
	return fmt.Sprintf("dcel: %s: %s", e.Op, e.Reason)
}

func errPrecondition(op, format string, args ...any) error {
	return &PreconditionError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

func errTopology(op, format string, args ...any) error {
	return &TopologyError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

func errDegeneracy(op, format string, args ...any) error {
	return &DegeneracyError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
