// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// CreateExpenseRequest represents the request body for expense creation.
// Fields are kept raw so that type problems surface as validation errors
// instead of binding errors.
type CreateExpenseRequest struct {
	Amount      json.RawMessage `json:"amount"`
	Category    *string         `json:"category"`
	Date        json.RawMessage `json:"date"`
	Description *string         `json:"description"`
	Tags        json.RawMessage `json:"tags"`
}

// ToRawExpense converts the request into a raw expense for validation.
func (r *CreateExpenseRequest) ToRawExpense() (entity.RawExpense, error) {
	raw := entity.RawExpense{
		Category:    r.Category,
		Description: r.Description,
	}

	if text, ok := scalarText(r.Amount); ok {
		raw.Amount = &text
	}

	if text, ok := scalarText(r.Date); ok {
		raw.Date = entity.RawDateFromText(text)
	}

	if isAbsent(r.Tags) {
		return raw, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(r.Tags, &items); err != nil {
		return raw, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidTagType,
			"tags must be a list of strings",
			domainerror.ErrInvalidTagType,
		)
	}

	raw.Tags = make([]entity.RawTag, len(items))
	for i, item := range items {
		var value string
		if err := json.Unmarshal(item, &value); err != nil || isAbsent(item) {
			raw.Tags[i] = entity.RawTag{Value: string(item), NotString: true}
			continue
		}
		raw.Tags[i] = entity.RawTag{Value: value}
	}

	return raw, nil
}

// scalarText returns a JSON string's content, or the literal text of any other
// value. Absent and null values report false.
func scalarText(msg json.RawMessage) (string, bool) {
	if isAbsent(msg) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s, true
	}
	return string(bytes.TrimSpace(msg)), true
}

func isAbsent(msg json.RawMessage) bool {
	trimmed := bytes.TrimSpace(msg)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExpenseListResponse represents the response for listing expenses.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Count    int               `json:"count"`
}

// ToExpenseResponse converts a domain Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}

	return ExpenseResponse{
		ID:          e.ID.String(),
		UserID:      e.UserID.String(),
		Amount:      formatAmount(e.Amount),
		Category:    e.Category,
		Date:        e.Date.Format(time.RFC3339),
		Description: e.Description,
		Tags:        tags,
		CreatedAt:   e.CreatedAt,
	}
}

// ToExpenseListResponse converts expenses to an ExpenseListResponse DTO.
func ToExpenseListResponse(expenses []*entity.Expense) ExpenseListResponse {
	items := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		items[i] = ToExpenseResponse(e)
	}
	return ExpenseListResponse{
		Expenses: items,
		Count:    len(items),
	}
}
