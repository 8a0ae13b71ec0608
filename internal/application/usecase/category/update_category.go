package category

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// UpdateCategoryInput represents the input for category update.
// The key itself is immutable since expenses reference it.
type UpdateCategoryInput struct {
	UserID           uuid.UUID
	Key              string
	Name             *string          // Optional
	BudgetLimit      *decimal.Decimal // Optional
	ClearBudgetLimit bool             // Makes the category unlimited; wins over BudgetLimit
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	category, err := uc.categoryRepo.Get(ctx, input.UserID, input.Key)
	if err != nil {
		return nil, domainerror.NewRepositoryError("get_category", err)
	}
	if category == nil {
		return nil, newUnknownCategoryError(input.Key)
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		category.Name = name
	}

	switch {
	case input.ClearBudgetLimit:
		category.BudgetLimit = nil
	case input.BudgetLimit != nil:
		limit, err := validateLimit(input.BudgetLimit)
		if err != nil {
			return nil, err
		}
		category.BudgetLimit = limit
	}

	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, domainerror.NewRepositoryError("update_category", err)
	}

	return &UpdateCategoryOutput{
		Category: category,
	}, nil
}
