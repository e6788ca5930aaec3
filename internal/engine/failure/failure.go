// Released under an MIT license. See LICENSE.

// Package failure defines the kinds of error an evaluation can end with.
//
// Every error returned by the engine wraps exactly one of the sentinel
// errors below. Use errors.Is to tell them apart.
package failure

import (
	"errors"
	"fmt"
)

//nolint:gochecknoglobals
var (
	// ErrInvalidArgument is a malformed special form or an argument
	// outside the domain of the operation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDivisionByZero is a division or remainder with a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrStepLimit means evaluation did not reach a normal form within
	// the allowed number of steps. This usually points at a faulty or
	// cyclic set of rules.
	ErrStepLimit = errors.New("step limit exceeded")
)

// InvalidArgument returns an ErrInvalidArgument with a formatted message.
func InvalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidArgument}, args...)...)
}

// DivisionByZero returns an ErrDivisionByZero for the operator op.
func DivisionByZero(op string) error {
	return fmt.Errorf("%w: %s", ErrDivisionByZero, op)
}

// StepLimit returns an ErrStepLimit for the limit n.
func StepLimit(n int) error {
	return fmt.Errorf("%w: more than %d steps (non-terminating rules?)", ErrStepLimit, n)
}

// Kind returns the sentinel error that err wraps, or nil.
func Kind(err error) error {
	for _, kind := range []error{ErrInvalidArgument, ErrDivisionByZero, ErrStepLimit} {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return nil
}
