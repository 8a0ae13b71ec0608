// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// CreateCategoryRequest represents the request body for category creation.
// budget_limit accepts a number or a numeric string; absent or null means unlimited.
type CreateCategoryRequest struct {
	Key         string          `json:"key" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	BudgetLimit json.RawMessage `json:"budget_limit"`
}

// ToInput converts the request into the create use case input.
func (r *CreateCategoryRequest) ToInput(userID uuid.UUID) (category.CreateCategoryInput, error) {
	input := category.CreateCategoryInput{
		UserID: userID,
		Key:    r.Key,
		Name:   r.Name,
	}
	limit, err := parseBudgetLimit(r.BudgetLimit)
	if err != nil {
		return input, err
	}
	input.BudgetLimit = limit
	return input, nil
}

// UpdateCategoryRequest represents the request body for category update.
// An absent budget_limit leaves the limit unchanged, null removes it.
type UpdateCategoryRequest struct {
	Name        *string         `json:"name"`
	BudgetLimit json.RawMessage `json:"budget_limit"`
}

// ToInput converts the request into the update use case input.
func (r *UpdateCategoryRequest) ToInput(userID uuid.UUID, key string) (category.UpdateCategoryInput, error) {
	input := category.UpdateCategoryInput{
		UserID: userID,
		Key:    key,
		Name:   r.Name,
	}
	if len(bytes.TrimSpace(r.BudgetLimit)) == 0 {
		return input, nil
	}
	if isAbsent(r.BudgetLimit) {
		input.ClearBudgetLimit = true
		return input, nil
	}
	limit, err := parseBudgetLimit(r.BudgetLimit)
	if err != nil {
		return input, err
	}
	input.BudgetLimit = limit
	return input, nil
}

func parseBudgetLimit(msg json.RawMessage) (*decimal.Decimal, error) {
	text, ok := scalarText(msg)
	if !ok {
		return nil, nil
	}
	limit, err := decimal.NewFromString(text)
	if err != nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidBudgetLimit,
			"budget_limit must be a number",
			domainerror.ErrInvalidBudgetLimit,
		)
	}
	return &limit, nil
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	BudgetLimit *string   `json:"budget_limit"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategorySpendingResponse is a category with its spending in the current month.
type CategorySpendingResponse struct {
	CategoryResponse
	SpentThisMonth string  `json:"spent_this_month"`
	Remaining      *string `json:"remaining"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories  []CategorySpendingResponse `json:"categories"`
	PeriodStart string                     `json:"period_start"`
	PeriodEnd   string                     `json:"period_end"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	resp := CategoryResponse{
		ID:        cat.ID.String(),
		Key:       cat.Key,
		Name:      cat.Name,
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
	if cat.HasBudgetLimit() {
		limit := formatAmount(*cat.BudgetLimit)
		resp.BudgetLimit = &limit
	}
	return resp
}

// ToCategoryListResponse converts the list output to a CategoryListResponse DTO.
func ToCategoryListResponse(output *category.ListCategoriesOutput) CategoryListResponse {
	items := make([]CategorySpendingResponse, len(output.Categories))
	for i, item := range output.Categories {
		items[i] = CategorySpendingResponse{
			CategoryResponse: ToCategoryResponse(item.Category),
			SpentThisMonth:   formatAmount(item.SpentThisMonth),
		}
		if item.Remaining != nil {
			remaining := formatAmount(*item.Remaining)
			items[i].Remaining = &remaining
		}
	}
	return CategoryListResponse{
		Categories:  items,
		PeriodStart: output.Period.Start.Format(time.RFC3339),
		PeriodEnd:   output.Period.End.Format(time.RFC3339),
	}
}
