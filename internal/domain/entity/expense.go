// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents a single dated monetary outflow owned by a user.
// Expenses are immutable once created.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal // Always exactly 2 fractional digits, > 0
	Category    string          // Category key, references a Category owned by UserID
	Date        time.Time
	Description string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewExpense creates a new Expense entity from canonical data.
func NewExpense(userID uuid.UUID, data CanonicalExpense) *Expense {
	now := time.Now().UTC()

	tags := make([]string, len(data.Tags))
	copy(tags, data.Tags)

	return &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      data.Amount,
		Category:    data.Category,
		Date:        data.Date,
		Description: data.Description,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CanonicalExpense is the normalized form of an expense, ready to be persisted.
type CanonicalExpense struct {
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	Description string
	Tags        []string
}

// RawExpense is an expense record as received from a caller, before validation.
// A nil pointer means the field was absent.
type RawExpense struct {
	Amount      *string
	Category    *string
	Date        *RawDate
	Description *string
	Tags        []RawTag // nil when absent
}

// RawDate carries a date either as text or as an already-typed time value.
type RawDate struct {
	Text  string
	Time  time.Time
	Typed bool
}

// RawDateFromText creates a RawDate holding unparsed text.
func RawDateFromText(text string) *RawDate {
	return &RawDate{Text: text}
}

// RawDateFromTime creates a RawDate holding a typed time value.
func RawDateFromTime(t time.Time) *RawDate {
	return &RawDate{Time: t, Typed: true}
}

// RawTag is a single tag as received. NotString is set when the caller sent
// a non-string value (number, object, null...).
type RawTag struct {
	Value     string
	NotString bool
}

// RawTagsFromStrings converts plain strings into raw tags.
func RawTagsFromStrings(values ...string) []RawTag {
	tags := make([]RawTag, len(values))
	for i, v := range values {
		tags[i] = RawTag{Value: v}
	}
	return tags
}
