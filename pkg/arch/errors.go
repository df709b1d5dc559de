package arch

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedData indicates a buffer is inconsistent with the layout it
	// is being decoded against.
	ErrMalformedData = errors.New("malformed data")

	// ErrAddressDerivationExhausted indicates no bump produced an off-curve
	// address for the provided seeds.
	ErrAddressDerivationExhausted = errors.New("unable to find a viable program address bump seed")
)

// ValidationError is returned when a value violates one of the program's
// acceptance rules. Values are never truncated to fit.
type ValidationError struct {
	Field  string
	Limit  int
	Actual int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s: length %d exceeds max of %d", e.Field, e.Actual, e.Limit)
}

// IsValidationError reports whether err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// MalformedDataf wraps ErrMalformedData with additional context.
func MalformedDataf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedData, format, args...)
}
