package pipeline

import (
	"fmt"

	"github.com/jaa/cast2gif/internal/plan"
)

// NotImplementedError means no converter is registered for a format.
type NotImplementedError struct {
	Format plan.Format
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("output format %q is not implemented yet; open an issue to ask for it", e.Format)
}

// ConversionError is a failure reported by the conversion worker.
type ConversionError struct {
	Format plan.Format
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert to %s: %v", e.Format, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// DefectError is an internal fault: a recovered panic or a broken
// internal contract. It is never caused by user input.
type DefectError struct {
	Err   error
	Stack []byte
}

func (e *DefectError) Error() string {
	return fmt.Sprintf("internal defect: %v", e.Err)
}

func (e *DefectError) Unwrap() error {
	return e.Err
}

// Recovered converts a value obtained from recover into a DefectError.
func Recovered(value any, stack []byte) *DefectError {
	err, ok := value.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", value)
	}
	return &DefectError{Err: err, Stack: stack}
}
