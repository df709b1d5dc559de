package testutil

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
)

// AssertValidationError verifies that err is a validation failure for the
// provided field.
func AssertValidationError(t *testing.T, err error, field string) {
	require.Error(t, err)

	var validationErr *arch.ValidationError
	require.True(t, errors.As(err, &validationErr), "expected validation error, got %v", err)
	assert.Equal(t, field, validationErr.Field)
	assert.Contains(t, err.Error(), field)
}

// AssertMalformedData verifies that err signals a buffer that does not match
// the layout being decoded.
func AssertMalformedData(t *testing.T, err error) {
	require.Error(t, err)
	assert.True(t, errors.Is(err, arch.ErrMalformedData), "expected malformed data, got %v", err)
}
