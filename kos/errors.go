package kos

import "fmt"

// PreconditionError is the panic value for calls made outside their contract,
// such as querying a device before the bridge is initialised.
// These are not recoverable conditions of the protocol.
type PreconditionError struct {
	Err    error
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("kos: %s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("kos: %s: %s", e.Op, e.Reason)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// Fatal panics with a *PreconditionError for op.
func Fatal(op, reason string) {
	panic(&PreconditionError{Op: op, Reason: reason})
}
