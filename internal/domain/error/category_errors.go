// Package error defines domain-specific errors for the expense tracker.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryKeyExists is returned when the user already has a category with the key.
	ErrCategoryKeyExists = errors.New("category key already exists")

	// ErrInvalidCategoryKey is returned when a category key has an unsupported format.
	ErrInvalidCategoryKey = errors.New("invalid category key")

	// ErrCategoryNameTooLong is returned when the category name exceeds the maximum length.
	ErrCategoryNameTooLong = errors.New("category name too long")

	// ErrMissingCategoryFields is returned when a required category field is empty.
	ErrMissingCategoryFields = errors.New("missing category fields")

	// ErrInvalidBudgetLimit is returned when a budget limit is negative.
	ErrInvalidBudgetLimit = errors.New("invalid budget limit")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNameTooLong   CategoryErrorCode = "CAT-010001"
	ErrCodeInvalidCategoryKey    CategoryErrorCode = "CAT-010002"
	ErrCodeInvalidBudgetLimit    CategoryErrorCode = "CAT-010003"
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-010004"

	// Conflict errors (02XXXX)
	ErrCodeCategoryKeyExists  CategoryErrorCode = "CAT-020001"
	ErrCodeUnknownCategoryKey CategoryErrorCode = "CAT-020002"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
