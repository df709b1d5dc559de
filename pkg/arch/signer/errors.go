package signer

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidPrivateKey = errors.New("invalid private key")
	ErrWitnessTooShort   = errors.New("witness too short")
)

// SigningError is returned when a signature cannot be produced. It is never
// worth retrying with the same inputs.
type SigningError struct {
	Op  string
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("signer: %s: %v", e.Op, e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

func newSigningError(op string, err error) error {
	return &SigningError{Op: op, Err: err}
}
