package query

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned by Run when an invocation is missing its
// collection or query function.
var ErrInvalidArgument = errors.New("query: invalid argument")

// PanicError carries a value recovered from a panicking query function.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("query: panic: %v", e.Value)
}

// Unwrap exposes the recovered value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func invalidArgument(field string) error {
	return fmt.Errorf("%w: %s is required", ErrInvalidArgument, field)
}
