package driverapi

import (
	"errors"
	"fmt"
)

// ErrNoMoreRows signals that a cursor has been fully consumed.
var ErrNoMoreRows = errors.New("no more rows in cursor")

// Error is the native driver error type. Every error a client implementation
// surfaces is of this type, so that callers can classify failures with
// errors.As regardless of which client produced them. The triggering cause
// is preserved unmodified and reachable via Unwrap.
type Error struct {
	Op  string
	Err error
}

// NewError wraps err as a native driver error for the given operation.
// A nil err maps to nil; an err that already is a native driver error is
// returned as-is so the original identity survives layered calls.
func NewError(op string, err error) error {
	if err == nil {
		return nil
	}

	var native *Error
	if errors.As(err, &native) {
		return err
	}

	return &Error{Op: op, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the triggering cause.
func (e *Error) Unwrap() error {
	return e.Err
}
