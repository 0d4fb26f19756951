package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_IsMatchesByCode(t *testing.T) {
	err := NewInvalidQuantity(-3)

	assert.True(t, errors.Is(err, ErrInvalidQuantity))
	assert.False(t, errors.Is(err, ErrInvalidPublicPrice))
	assert.Equal(t, "INVALID_QUANTITY: quantity cannot be negative, got -3", err.Error())
	assert.Equal(t, int64(-3), err.Details["quantity"])
}

func TestAppError_WrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("row 4: %w", NewDivisionByZero("gross discount"))

	assert.True(t, errors.Is(wrapped, ErrDivisionByZero))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeDivisionByZero, appErr.Code)
}

func TestAppError_WithCause(t *testing.T) {
	cause := errors.New("bad digit")
	err := NewInvalidInput("unit_price is not a number").WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "caused by: bad digit")
}

func TestIsValidation(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"quantity", NewInvalidQuantity(-1), true},
		{"public price", NewInvalidPublicPrice("0"), true},
		{"vat", NewInvalidVATRate("-1"), true},
		{"offer", NewInvalidOffer("unit price cannot be negative"), true},
		{"division by zero", NewDivisionByZero("net discount"), false},
		{"not found", NewProductNotFound("P1"), false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidation(tc.err))
		})
	}
}
