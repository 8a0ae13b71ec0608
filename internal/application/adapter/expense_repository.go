// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseFilter defines filter options for reading a user's expenses.
// Nil fields are not applied. StartDate is inclusive, EndDate is exclusive.
type ExpenseFilter struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Category  *string
}

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create stores a canonical expense for the user and returns the persisted entity.
	Create(ctx context.Context, userID uuid.UUID, data entity.CanonicalExpense) (*entity.Expense, error)

	// CreateWithinLimit stores the expense only if the user's total for the
	// category within [periodStart, periodEnd) plus the new amount stays within limit.
	// The re-check and the insert must be atomic at the storage layer.
	// Returns a budget-limit-exceeded domain error when the condition fails.
	CreateWithinLimit(
		ctx context.Context,
		userID uuid.UUID,
		data entity.CanonicalExpense,
		categoryName string,
		limit decimal.Decimal,
		periodStart time.Time,
		periodEnd time.Time,
	) (*entity.Expense, error)

	// Find retrieves the user's expenses matching the filter, ordered by date.
	Find(ctx context.Context, filter ExpenseFilter) ([]*entity.Expense, error)

	// CategoryTotal sums the user's expense amounts for a category within [periodStart, periodEnd).
	CategoryTotal(
		ctx context.Context,
		userID uuid.UUID,
		categoryKey string,
		periodStart time.Time,
		periodEnd time.Time,
	) (decimal.Decimal, error)
}
