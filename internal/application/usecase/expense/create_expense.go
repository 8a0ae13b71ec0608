package expense

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/budget"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// CreateExpenseInput represents the input for expense creation.
type CreateExpenseInput struct {
	UserID uuid.UUID
	Raw    entity.RawExpense
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *entity.Expense
}

// CreateExpenseUseCase validates, budget-checks, normalizes and stores an expense.
type CreateExpenseUseCase struct {
	enforcer     *budget.Enforcer
	summaryCache adapter.SummaryCache
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
// summaryCache may be nil when caching is disabled.
func NewCreateExpenseUseCase(enforcer *budget.Enforcer, summaryCache adapter.SummaryCache) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		enforcer:     enforcer,
		summaryCache: summaryCache,
	}
}

// Execute performs the expense creation.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	validated, err := Validate(input.Raw)
	if err != nil {
		return nil, err
	}

	result, err := uc.enforcer.Check(ctx, input.UserID, validated.Category, validated.Amount, validated.Date)
	if err != nil {
		uc.logRepositoryError(err, input.UserID, "budget_check", validated.Category)
		return nil, err
	}

	canonical := Normalize(validated)

	expense, err := uc.enforcer.Commit(ctx, input.UserID, canonical, result)
	if err != nil {
		uc.logRepositoryError(err, input.UserID, "create_expense", validated.Category)
		return nil, err
	}

	if uc.summaryCache != nil {
		month := expense.Date.UTC()
		if err := uc.summaryCache.Invalidate(ctx, input.UserID, month.Year(), month.Month()); err != nil {
			slog.Warn("Failed to invalidate monthly summary cache",
				"userID", input.UserID,
				"expenseID", expense.ID,
				"error", err,
			)
		}
	}

	slog.Info("Created expense",
		"userID", input.UserID,
		"expenseID", expense.ID,
		"category", expense.Category,
	)

	return &CreateExpenseOutput{Expense: expense}, nil
}

func (uc *CreateExpenseUseCase) logRepositoryError(err error, userID uuid.UUID, operation, category string) {
	if !errors.Is(err, domainerror.ErrRepository) {
		return
	}
	slog.Error("Expense repository failure",
		"userID", userID,
		"operation", operation,
		"category", category,
		"error", err,
	)
}
