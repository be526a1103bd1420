package records

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("transaction not found")
	ErrMalformedInput = errors.New("malformed input")
	ErrEmptyStore     = errors.New("store is empty")
)

// ValidationError reports a missing field or a value of the wrong kind.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "required field is missing"}
}
