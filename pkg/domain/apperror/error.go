// Package apperror provides structured errors for the pricing engine.
// Every rejection of caller input uses AppError so hosts can tell input
// validation apart from genuine failures.
package apperror

import (
	"errors"
	"fmt"
)

// Error codes
const (
	// Input validation
	CodeInvalidQuantity    = "INVALID_QUANTITY"
	CodeInvalidPublicPrice = "INVALID_PUBLIC_PRICE"
	CodeInvalidVATRate     = "INVALID_VAT_RATE"
	CodeInvalidOffer       = "INVALID_OFFER"
	CodeInvalidInput       = "INVALID_INPUT"

	// Arithmetic
	CodeDivisionByZero = "DIVISION_BY_ZERO"

	// Lookup
	CodeProductNotFound = "PRODUCT_NOT_FOUND"
)

// Sentinels for errors.Is. AppError.Is matches on Code, so any error built
// by the factories below matches the sentinel with the same code.
var (
	ErrInvalidQuantity    = &AppError{Code: CodeInvalidQuantity, Message: "invalid quantity"}
	ErrInvalidPublicPrice = &AppError{Code: CodeInvalidPublicPrice, Message: "invalid public price"}
	ErrInvalidVATRate     = &AppError{Code: CodeInvalidVATRate, Message: "invalid VAT rate"}
	ErrInvalidOffer       = &AppError{Code: CodeInvalidOffer, Message: "invalid supplier offer"}
	ErrInvalidInput       = &AppError{Code: CodeInvalidInput, Message: "invalid input"}
	ErrDivisionByZero     = &AppError{Code: CodeDivisionByZero, Message: "division by zero"}
	ErrProductNotFound    = &AppError{Code: CodeProductNotFound, Message: "product not found"}
)

// AppError is the standard error type of the engine.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (offending values, ids)
	Details map[string]any `json:"details,omitempty"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions ---

// NewInvalidQuantity rejects a requested quantity below zero.
func NewInvalidQuantity(quantity int64) *AppError {
	return &AppError{
		Code:    CodeInvalidQuantity,
		Message: fmt.Sprintf("quantity cannot be negative, got %d", quantity),
		Details: map[string]any{"quantity": quantity},
	}
}

// NewInvalidPublicPrice rejects a public price that is not strictly positive.
func NewInvalidPublicPrice(price string) *AppError {
	return &AppError{
		Code:    CodeInvalidPublicPrice,
		Message: fmt.Sprintf("public price must be positive, got %s", price),
		Details: map[string]any{"public_price": price},
	}
}

// NewInvalidVATRate rejects a negative VAT rate.
func NewInvalidVATRate(rate string) *AppError {
	return &AppError{
		Code:    CodeInvalidVATRate,
		Message: fmt.Sprintf("VAT rate cannot be negative, got %s", rate),
		Details: map[string]any{"vat_rate_percent": rate},
	}
}

// NewInvalidOffer rejects a malformed supplier offer.
func NewInvalidOffer(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidOffer,
		Message: message,
	}
}

// NewInvalidInput is used for malformed caller input that has no dedicated code.
func NewInvalidInput(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: message,
	}
}

// NewDivisionByZero is returned when a percentage would be computed against a zero base.
func NewDivisionByZero(operation string) *AppError {
	return &AppError{
		Code:    CodeDivisionByZero,
		Message: fmt.Sprintf("%s is undefined for a zero public price", operation),
		Details: map[string]any{"operation": operation},
	}
}

// NewProductNotFound creates a lookup error for an unknown product.
func NewProductNotFound(id string) *AppError {
	return &AppError{
		Code:    CodeProductNotFound,
		Message: fmt.Sprintf("product not found: %s", id),
		Details: map[string]any{"product_id": id},
	}
}

// --- Helper functions ---

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsValidation reports whether err originates from caller-controlled input
// and should be surfaced as input feedback rather than a generic failure.
func IsValidation(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return false
	}
	switch appErr.Code {
	case CodeInvalidQuantity, CodeInvalidPublicPrice, CodeInvalidVATRate, CodeInvalidOffer, CodeInvalidInput:
		return true
	default:
		return false
	}
}
