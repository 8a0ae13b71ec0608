// Package error defines domain-specific errors for the expense tracker.
package error

import "errors"

// Expense validation errors.
var (
	// ErrMissingField is returned when a required expense field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidAmount is returned when the amount is not a decimal or is not positive.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidDate is returned when the date is not an ISO calendar date/time.
	ErrInvalidDate = errors.New("invalid date")

	// ErrDescriptionTooLong is returned when the description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrTooManyTags is returned when more tags than allowed are provided.
	ErrTooManyTags = errors.New("too many tags")

	// ErrInvalidTagType is returned when a tag is not a string.
	ErrInvalidTagType = errors.New("tags must be strings")

	// ErrEmptyTag is returned when a tag is empty after trimming.
	ErrEmptyTag = errors.New("empty tags are not allowed")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingField       ExpenseErrorCode = "EXP-010001"
	ErrCodeInvalidAmount      ExpenseErrorCode = "EXP-010002"
	ErrCodeInvalidDate        ExpenseErrorCode = "EXP-010003"
	ErrCodeDescriptionTooLong ExpenseErrorCode = "EXP-010004"
	ErrCodeTooManyTags        ExpenseErrorCode = "EXP-010005"
	ErrCodeInvalidTagType     ExpenseErrorCode = "EXP-010006"
	ErrCodeEmptyTag           ExpenseErrorCode = "EXP-010007"
	ErrCodeInvalidRequestBody ExpenseErrorCode = "EXP-010008"
)

// ExpenseError represents an expense validation error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
