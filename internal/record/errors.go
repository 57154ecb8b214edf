package record

import (
	"errors"
	"fmt"
)

// ValidationError indicates malformed or incomplete document metadata, or a
// collection-level invariant violation such as a bibcode clash.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// validationf builds a ValidationError from a format string.
func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation returns true if the error is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
