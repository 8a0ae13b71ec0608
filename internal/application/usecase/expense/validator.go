// Package expense contains expense-related use cases.
package expense

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for expense descriptions.
	MaxDescriptionLength = 500
	// MaxTags is the maximum number of tags on a single expense.
	MaxTags = 10
)

// dateLayouts are the ISO 8601 forms accepted for textual dates, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ValidatedExpense holds the fields of a raw expense after validation,
// with amount and date already parsed.
type ValidatedExpense struct {
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	Description string
	Tags        []string
}

// Validate checks a raw expense and returns the first violation found.
// Checks run in a fixed order: required fields, amount, date, description,
// tag count, then each tag.
func Validate(raw entity.RawExpense) (*ValidatedExpense, error) {
	if err := checkRequired(raw); err != nil {
		return nil, err
	}

	amount, err := parseAmount(*raw.Amount)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(*raw.Date)
	if err != nil {
		return nil, err
	}

	if utf8.RuneCountInString(*raw.Description) > MaxDescriptionLength {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	if len(raw.Tags) > MaxTags {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeTooManyTags,
			fmt.Sprintf("an expense can have at most %d tags", MaxTags),
			domainerror.ErrTooManyTags,
		)
	}

	tags := make([]string, 0, len(raw.Tags))
	for i, tag := range raw.Tags {
		if tag.NotString {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeInvalidTagType,
				fmt.Sprintf("tag at position %d is not a string", i),
				domainerror.ErrInvalidTagType,
			)
		}
		if strings.TrimSpace(tag.Value) == "" {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeEmptyTag,
				fmt.Sprintf("tag at position %d is empty", i),
				domainerror.ErrEmptyTag,
			)
		}
		tags = append(tags, tag.Value)
	}

	return &ValidatedExpense{
		Amount:      amount,
		Category:    *raw.Category,
		Date:        date,
		Description: *raw.Description,
		Tags:        tags,
	}, nil
}

func checkRequired(raw entity.RawExpense) error {
	var missing string
	switch {
	case raw.Amount == nil:
		missing = "amount"
	case raw.Category == nil:
		missing = "category"
	case raw.Date == nil:
		missing = "date"
	case raw.Description == nil:
		missing = "description"
	default:
		return nil
	}

	return domainerror.NewExpenseError(
		domainerror.ErrCodeMissingField,
		fmt.Sprintf("missing required field: %s", missing),
		domainerror.ErrMissingField,
	)
}

func parseAmount(text string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidAmount,
			fmt.Sprintf("amount %q is not a valid decimal", text),
			domainerror.ErrInvalidAmount,
		)
	}

	// Amounts that would round down to 0.00 break the positive-amount invariant.
	if !amount.IsPositive() || !amount.Round(AmountPlaces).IsPositive() {
		return decimal.Zero, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be greater than 0",
			domainerror.ErrInvalidAmount,
		)
	}

	return amount, nil
}

func parseDate(raw entity.RawDate) (time.Time, error) {
	if raw.Typed {
		return raw.Time, nil
	}

	text := strings.TrimSpace(raw.Text)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}

	return time.Time{}, domainerror.NewExpenseError(
		domainerror.ErrCodeInvalidDate,
		fmt.Sprintf("date %q is not a valid ISO date", raw.Text),
		domainerror.ErrInvalidDate,
	)
}
