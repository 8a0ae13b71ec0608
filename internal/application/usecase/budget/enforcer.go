// Package budget contains the per-category budget enforcement rules.
package budget

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// EnforcementResult is the outcome of a successful budget check.
type EnforcementResult struct {
	Category     *entity.Category
	Limited      bool
	CurrentTotal decimal.Decimal
	WouldBeTotal decimal.Decimal
	Period       valueobject.Period
}

// Enforcer checks candidate expenses against monthly category budgets.
//
// Check is a read followed later by a write, so two concurrent writers can both
// pass it. Commit closes that gap by delegating to the repository's conditional
// write, which re-evaluates the month total and inserts in one transaction.
type Enforcer struct {
	categoryRepo adapter.CategoryRepository
	expenseRepo  adapter.ExpenseRepository
}

// NewEnforcer creates a new Enforcer instance.
func NewEnforcer(categoryRepo adapter.CategoryRepository, expenseRepo adapter.ExpenseRepository) *Enforcer {
	return &Enforcer{
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
	}
}

// Check verifies that adding candidate to the category total for the UTC calendar
// month containing asOf stays within the category's budget limit.
func (e *Enforcer) Check(
	ctx context.Context,
	userID uuid.UUID,
	categoryKey string,
	candidate decimal.Decimal,
	asOf time.Time,
) (*EnforcementResult, error) {
	category, err := e.categoryRepo.Get(ctx, userID, categoryKey)
	if err != nil {
		return nil, domainerror.NewRepositoryError("get_category", err)
	}
	if category == nil {
		return nil, domainerror.NewCategoryNotFoundError(categoryKey)
	}

	period := valueobject.MonthPeriodOf(asOf.UTC())
	if !category.HasBudgetLimit() {
		return &EnforcementResult{
			Category:     category,
			CurrentTotal: decimal.Zero,
			WouldBeTotal: candidate,
			Period:       period,
		}, nil
	}

	current, err := e.expenseRepo.CategoryTotal(ctx, userID, categoryKey, period.Start, period.End)
	if err != nil {
		return nil, domainerror.NewRepositoryError("category_total", err)
	}

	limit := *category.BudgetLimit
	wouldBe := current.Add(candidate)
	if wouldBe.GreaterThan(limit) {
		return nil, domainerror.NewBudgetLimitExceededError(category.Name, limit, wouldBe)
	}

	return &EnforcementResult{
		Category:     category,
		Limited:      true,
		CurrentTotal: current,
		WouldBeTotal: wouldBe,
		Period:       period,
	}, nil
}

// Commit persists the canonical expense under the outcome of a prior Check.
// Limited categories go through the repository's conditional write.
func (e *Enforcer) Commit(
	ctx context.Context,
	userID uuid.UUID,
	data entity.CanonicalExpense,
	result *EnforcementResult,
) (*entity.Expense, error) {
	if result == nil || !result.Limited {
		expense, err := e.expenseRepo.Create(ctx, userID, data)
		if err != nil {
			return nil, domainerror.NewRepositoryError("create_expense", err)
		}
		return expense, nil
	}

	expense, err := e.expenseRepo.CreateWithinLimit(
		ctx,
		userID,
		data,
		result.Category.Name,
		*result.Category.BudgetLimit,
		result.Period.Start,
		result.Period.End,
	)
	if err != nil {
		return nil, domainerror.NewRepositoryError("create_expense", err)
	}
	return expense, nil
}
