// Package category contains the budget category management use cases.
package category

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const (
	// MaxCategoryNameLength is the maximum allowed length for category names.
	MaxCategoryNameLength = 100
	// MaxCategoryKeyLength is the maximum allowed length for category keys.
	MaxCategoryKeyLength = 100

	limitPlaces = 2
)

// categoryKeyRegex is compiled once at package level for performance.
var categoryKeyRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	UserID      uuid.UUID
	Key         string
	Name        string
	BudgetLimit *decimal.Decimal // Optional, nil means unlimited
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	key := strings.TrimSpace(input.Key)
	if err := validateKey(key); err != nil {
		return nil, err
	}

	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	limit, err := validateLimit(input.BudgetLimit)
	if err != nil {
		return nil, err
	}

	// Check if the key is already taken for this user
	existing, err := uc.categoryRepo.Get(ctx, input.UserID, key)
	if err != nil {
		return nil, domainerror.NewRepositoryError("get_category", err)
	}
	if existing != nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryKeyExists,
			"a category with this key already exists",
			domainerror.ErrCategoryKeyExists,
		)
	}

	category := entity.NewCategory(input.UserID, key, name, limit)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, domainerror.NewRepositoryError("create_category", err)
	}

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}

func validateKey(key string) error {
	if key == "" {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"category key is required",
			domainerror.ErrMissingCategoryFields,
		)
	}
	if len(key) > MaxCategoryKeyLength || !categoryKeyRegex.MatchString(key) {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryKey,
			fmt.Sprintf("category key must be lowercase letters, digits, '_' or '-' and at most %d characters", MaxCategoryKeyLength),
			domainerror.ErrInvalidCategoryKey,
		)
	}
	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"category name is required",
			domainerror.ErrMissingCategoryFields,
		)
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}
	return name, nil
}

// validateLimit rounds the limit to cents. A nil limit stays nil.
func validateLimit(limit *decimal.Decimal) (*decimal.Decimal, error) {
	if limit == nil {
		return nil, nil
	}
	rounded := limit.Round(limitPlaces)
	if rounded.IsNegative() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidBudgetLimit,
			"budget limit must not be negative",
			domainerror.ErrInvalidBudgetLimit,
		)
	}
	return &rounded, nil
}

func newUnknownCategoryError(categoryKey string) *domainerror.CategoryError {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeUnknownCategoryKey,
		fmt.Sprintf("category '%s' not found", categoryKey),
		domainerror.ErrCategoryNotFound,
	)
}
