package units

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidHierarchy = errors.New("manufacture must not have a provider")
	ErrMissingProvider  = errors.New("non-manufacture unit requires a provider")
	ErrCyclicHierarchy  = errors.New("provider chain contains a cycle")
)

// ValidationError reports a malformed field in an incoming request.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func validationErr(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

func notFoundErr(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
}
