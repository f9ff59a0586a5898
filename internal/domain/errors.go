package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a missing, malformed or out-of-range input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrArithmetic marks a payment policy that cannot amortize the balance,
	// e.g. a payment that does not cover the accruing interest.
	ErrArithmetic = errors.New("arithmetic error")
)

// ValidationError reports an input problem together with the offending field.
// Message is user-facing and is shown verbatim by callers.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// ArithmeticError reports a repayment policy violation.
type ArithmeticError struct {
	Message string
	Period  int
}

func (e *ArithmeticError) Error() string {
	if e.Period > 0 {
		return fmt.Sprintf("%s (第 %d 期)", e.Message, e.Period)
	}
	return e.Message
}

func (e *ArithmeticError) Unwrap() error {
	return ErrArithmetic
}

// FieldOf returns the offending field of a validation error anywhere in err's
// chain, or "" when err is not a validation error.
func FieldOf(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Field
	}
	return ""
}
