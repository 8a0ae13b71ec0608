// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category represents a user-defined spending bucket, optionally carrying
// a monthly budget limit. The expense engine only reads categories; they are
// managed through the category use cases.
type Category struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Key         string // Referenced by Expense.Category
	Name        string
	BudgetLimit *decimal.Decimal // nil means unlimited
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasBudgetLimit reports whether the category carries a budget limit.
func (c *Category) HasBudgetLimit() bool {
	return c.BudgetLimit != nil
}

// NewCategory creates a new Category with generated ID and timestamps.
func NewCategory(userID uuid.UUID, key, name string, budgetLimit *decimal.Decimal) *Category {
	now := time.Now().UTC()
	return &Category{
		ID:          uuid.New(),
		UserID:      userID,
		Key:         key,
		Name:        name,
		BudgetLimit: budgetLimit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
