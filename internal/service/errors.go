package service

import "fmt"

// ValidationError marks malformed-input failures whose message enumerates
// the accepted values, mapped to a 400 at the boundary.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
