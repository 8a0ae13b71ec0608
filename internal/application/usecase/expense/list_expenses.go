package expense

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ListExpensesInput represents the input for listing a user's expenses.
// Nil filters are not applied.
type ListExpensesInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Category  *string
}

// ListExpensesOutput represents the output of listing expenses.
type ListExpensesOutput struct {
	Expenses []*entity.Expense
}

// ListExpensesUseCase reads a user's expenses through the repository filter.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute passes the filters through unchanged and returns the matching expenses.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	expenses, err := uc.expenseRepo.Find(ctx, adapter.ExpenseFilter{
		UserID:    input.UserID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Category:  input.Category,
	})
	if err != nil {
		slog.Error("Expense repository failure",
			"userID", input.UserID,
			"operation", "find_expenses",
			"error", err,
		)
		return nil, domainerror.NewRepositoryError("find_expenses", err)
	}

	if expenses == nil {
		expenses = []*entity.Expense{}
	}

	return &ListExpensesOutput{Expenses: expenses}, nil
}
