package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "investwise/internal/errors"
)

// AssertAppError requires err to be an *AppError and checks its code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	require.Error(t, err, "expected AppError with code %q", expectedCode)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code, "error message: %s", appErr.Message)
}

// AssertNoError stops the test on a non-nil error.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	require.NoError(t, err)
}

// AssertDecimalEqual compares amounts numerically, so "3" matches "3.00".
func AssertDecimalEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, got.Equal(Dec(want)), "expected %s, got %s", want, got)
}
