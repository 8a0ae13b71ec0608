// Package error defines domain-specific errors for the expense tracker.
package error

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Budget domain errors.
var (
	// ErrCategoryNotFound is returned when the referenced category does not exist for the user.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrBudgetLimitExceeded is returned when an expense would push a category over its monthly limit.
	ErrBudgetLimitExceeded = errors.New("budget limit exceeded")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Business rule errors (02XXXX)
	ErrCodeCategoryNotFound    BudgetErrorCode = "BUD-020001"
	ErrCodeBudgetLimitExceeded BudgetErrorCode = "BUD-020002"
)

// BudgetOverrun describes the category whose limit would be exceeded.
type BudgetOverrun struct {
	CategoryName string
	Limit        decimal.Decimal
	WouldBeTotal decimal.Decimal
}

// BudgetError represents a budget rule violation with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
	Overrun *BudgetOverrun // Set for ErrCodeBudgetLimitExceeded
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewCategoryNotFoundError creates the error returned when a category key is unknown.
func NewCategoryNotFoundError(categoryKey string) *BudgetError {
	return NewBudgetError(
		ErrCodeCategoryNotFound,
		fmt.Sprintf("category %s not found", categoryKey),
		ErrCategoryNotFound,
	)
}

// NewBudgetLimitExceededError creates the error returned when a category budget would be exceeded.
func NewBudgetLimitExceededError(categoryName string, limit, wouldBeTotal decimal.Decimal) *BudgetError {
	e := NewBudgetError(
		ErrCodeBudgetLimitExceeded,
		fmt.Sprintf("this expense would exceed the budget limit for category %s", categoryName),
		ErrBudgetLimitExceeded,
	)
	e.Overrun = &BudgetOverrun{
		CategoryName: categoryName,
		Limit:        limit,
		WouldBeTotal: wouldBeTotal,
	}
	return e
}
