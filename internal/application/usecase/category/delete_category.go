package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	UserID uuid.UUID
	Key    string
}

// DeleteCategoryUseCase handles category deletion. Expenses that reference
// the key are kept; new expenses for it are rejected until it is recreated.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	deleted, err := uc.categoryRepo.Delete(ctx, input.UserID, input.Key)
	if err != nil {
		return domainerror.NewRepositoryError("delete_category", err)
	}
	if !deleted {
		return newUnknownCategoryError(input.Key)
	}
	return nil
}
