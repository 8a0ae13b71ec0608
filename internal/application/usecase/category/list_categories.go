package category

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

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	UserID uuid.UUID
	AsOf   time.Time // Selects the month used for spending; zero means now
}

// CategoryWithSpending is a category together with its spending in the month of AsOf.
type CategoryWithSpending struct {
	Category       *entity.Category
	SpentThisMonth decimal.Decimal
	Remaining      *decimal.Decimal // nil for unlimited categories; negative when over budget
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []CategoryWithSpending
	Period     valueobject.Period
}

// ListCategoriesUseCase lists a user's categories with month-to-date spending.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
	expenseRepo  adapter.ExpenseRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(
	categoryRepo adapter.CategoryRepository,
	expenseRepo adapter.ExpenseRepository,
) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
	}
}

// Execute lists the categories.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	asOf := input.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}
	period := valueobject.MonthPeriodOf(asOf.UTC())

	categories, err := uc.categoryRepo.List(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewRepositoryError("list_categories", err)
	}

	out := make([]CategoryWithSpending, 0, len(categories))
	for _, category := range categories {
		spent, err := uc.expenseRepo.CategoryTotal(ctx, input.UserID, category.Key, period.Start, period.End)
		if err != nil {
			return nil, domainerror.NewRepositoryError("category_total", err)
		}

		item := CategoryWithSpending{
			Category:       category,
			SpentThisMonth: spent.Round(limitPlaces),
		}
		if category.HasBudgetLimit() {
			remaining := category.BudgetLimit.Sub(item.SpentThisMonth)
			item.Remaining = &remaining
		}
		out = append(out, item)
	}

	return &ListCategoriesOutput{
		Categories: out,
		Period:     period,
	}, nil
}
