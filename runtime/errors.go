package plruntime

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeUnresolved       Code = "E_UNRESOLVED"
	CodeUnknownProcedure Code = "E_UNKNOWN_PROCEDURE"
	CodeDivisionByZero   Code = "E_DIV_ZERO"
	CodeBadInput         Code = "E_BAD_INPUT"
	CodeInput            Code = "E_INPUT"
	CodeInvariant        Code = "E_INVARIANT"
	CodeStepLimit        Code = "E_STEP_LIMIT"
)

var (
	ErrUnresolved     = errors.New("unresolved identifier")
	ErrDivisionByZero = errors.New("division by zero")
	ErrBadInput       = errors.New("malformed integer input")
	ErrNoInput        = errors.New("no input available")
	ErrInvariant      = errors.New("invariant violation")
	ErrStepLimit      = errors.New("step limit exceeded")
)

// RuntimeError aborts a run. Every runtime failure is fatal; the outputs
// produced before it stay visible to the caller.
type RuntimeError struct {
	Code    Code
	Name    string
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RuntimeError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func (e *RuntimeError) sentinel() error {
	switch e.Code {
	case CodeUnresolved, CodeUnknownProcedure:
		return ErrUnresolved
	case CodeDivisionByZero:
		return ErrDivisionByZero
	case CodeBadInput:
		return ErrBadInput
	case CodeInput:
		return ErrNoInput
	case CodeInvariant:
		return ErrInvariant
	case CodeStepLimit:
		return ErrStepLimit
	default:
		return nil
	}
}

func runtimeErrorf(code Code, name string, format string, args ...any) *RuntimeError {
	return &RuntimeError{Code: code, Name: name, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode extracts the runtime error code from err, if any.
func ErrorCode(err error) (Code, bool) {
	var rtErr *RuntimeError
	if errors.As(err, &rtErr) {
		return rtErr.Code, true
	}
	return "", false
}
