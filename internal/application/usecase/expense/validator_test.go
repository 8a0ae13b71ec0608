package expense

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func strPtr(s string) *string {
	return &s
}

func validRaw() entity.RawExpense {
	return entity.RawExpense{
		Amount:      strPtr("45.50"),
		Category:    strPtr("food"),
		Date:        entity.RawDateFromText("2024-03-15"),
		Description: strPtr("Grocery store run"),
		Tags:        entity.RawTagsFromStrings("Weekly", " Groceries "),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(r *entity.RawExpense)
		expectedErr  error
		expectedCode domainerror.ExpenseErrorCode
	}{
		{
			name:         "missing amount",
			mutate:       func(r *entity.RawExpense) { r.Amount = nil },
			expectedErr:  domainerror.ErrMissingField,
			expectedCode: domainerror.ErrCodeMissingField,
		},
		{
			name:         "missing category",
			mutate:       func(r *entity.RawExpense) { r.Category = nil },
			expectedErr:  domainerror.ErrMissingField,
			expectedCode: domainerror.ErrCodeMissingField,
		},
		{
			name:         "missing date",
			mutate:       func(r *entity.RawExpense) { r.Date = nil },
			expectedErr:  domainerror.ErrMissingField,
			expectedCode: domainerror.ErrCodeMissingField,
		},
		{
			name:         "missing description",
			mutate:       func(r *entity.RawExpense) { r.Description = nil },
			expectedErr:  domainerror.ErrMissingField,
			expectedCode: domainerror.ErrCodeMissingField,
		},
		{
			name:         "amount not a decimal",
			mutate:       func(r *entity.RawExpense) { r.Amount = strPtr("ten") },
			expectedErr:  domainerror.ErrInvalidAmount,
			expectedCode: domainerror.ErrCodeInvalidAmount,
		},
		{
			name:         "zero amount",
			mutate:       func(r *entity.RawExpense) { r.Amount = strPtr("0") },
			expectedErr:  domainerror.ErrInvalidAmount,
			expectedCode: domainerror.ErrCodeInvalidAmount,
		},
		{
			name:         "negative amount",
			mutate:       func(r *entity.RawExpense) { r.Amount = strPtr("-5.00") },
			expectedErr:  domainerror.ErrInvalidAmount,
			expectedCode: domainerror.ErrCodeInvalidAmount,
		},
		{
			name:         "amount rounding to zero",
			mutate:       func(r *entity.RawExpense) { r.Amount = strPtr("0.004") },
			expectedErr:  domainerror.ErrInvalidAmount,
			expectedCode: domainerror.ErrCodeInvalidAmount,
		},
		{
			name:         "date not ISO",
			mutate:       func(r *entity.RawExpense) { r.Date = entity.RawDateFromText("15/03/2024") },
			expectedErr:  domainerror.ErrInvalidDate,
			expectedCode: domainerror.ErrCodeInvalidDate,
		},
		{
			name:         "impossible calendar date",
			mutate:       func(r *entity.RawExpense) { r.Date = entity.RawDateFromText("2024-02-30") },
			expectedErr:  domainerror.ErrInvalidDate,
			expectedCode: domainerror.ErrCodeInvalidDate,
		},
		{
			name: "description too long",
			mutate: func(r *entity.RawExpense) {
				r.Description = strPtr(strings.Repeat("a", MaxDescriptionLength+1))
			},
			expectedErr:  domainerror.ErrDescriptionTooLong,
			expectedCode: domainerror.ErrCodeDescriptionTooLong,
		},
		{
			name: "multibyte description too long",
			mutate: func(r *entity.RawExpense) {
				r.Description = strPtr(strings.Repeat("é", MaxDescriptionLength+1))
			},
			expectedErr:  domainerror.ErrDescriptionTooLong,
			expectedCode: domainerror.ErrCodeDescriptionTooLong,
		},
		{
			name: "too many tags",
			mutate: func(r *entity.RawExpense) {
				r.Tags = entity.RawTagsFromStrings("a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k")
			},
			expectedErr:  domainerror.ErrTooManyTags,
			expectedCode: domainerror.ErrCodeTooManyTags,
		},
		{
			name: "non-string tag",
			mutate: func(r *entity.RawExpense) {
				r.Tags = []entity.RawTag{{Value: "ok"}, {Value: "42", NotString: true}}
			},
			expectedErr:  domainerror.ErrInvalidTagType,
			expectedCode: domainerror.ErrCodeInvalidTagType,
		},
		{
			name:         "whitespace-only tag",
			mutate:       func(r *entity.RawExpense) { r.Tags = entity.RawTagsFromStrings("ok", "   ") },
			expectedErr:  domainerror.ErrEmptyTag,
			expectedCode: domainerror.ErrCodeEmptyTag,
		},
		{
			name: "first failure wins",
			mutate: func(r *entity.RawExpense) {
				r.Amount = strPtr("-1")
				r.Date = entity.RawDateFromText("not a date")
			},
			expectedErr:  domainerror.ErrInvalidAmount,
			expectedCode: domainerror.ErrCodeInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(&raw)

			result, err := Validate(raw)

			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.expectedErr)

			var expenseErr *domainerror.ExpenseError
			require.ErrorAs(t, err, &expenseErr)
			assert.Equal(t, tt.expectedCode, expenseErr.Code)
		})
	}
}

func TestValidate_MissingFieldNamesField(t *testing.T) {
	raw := validRaw()
	raw.Date = nil
	raw.Description = nil

	_, err := Validate(raw)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "date")
	assert.NotContains(t, err.Error(), "description")
}

func TestValidate_Success(t *testing.T) {
	t.Run("parses amount and date", func(t *testing.T) {
		result, err := Validate(validRaw())

		require.NoError(t, err)
		assert.Equal(t, "45.5", result.Amount.String())
		assert.Equal(t, "food", result.Category)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), result.Date)
		assert.Equal(t, []string{"Weekly", " Groceries "}, result.Tags)
	})

	t.Run("accepted date layouts", func(t *testing.T) {
		for _, text := range []string{
			"2024-03-15",
			"2024-03-15T10:30:00",
			"2024-03-15T10:30:00.123",
			"2024-03-15 10:30:00",
			"2024-03-15T10:30:00Z",
			"2024-03-15T10:30:00+02:00",
			"2024-03-15T10:30",
		} {
			raw := validRaw()
			raw.Date = entity.RawDateFromText(text)

			result, err := Validate(raw)

			require.NoError(t, err, text)
			assert.Equal(t, 2024, result.Date.Year(), text)
			assert.Equal(t, 15, result.Date.Day(), text)
		}
	})

	t.Run("typed date passes through", func(t *testing.T) {
		typed := time.Date(2023, 12, 31, 23, 59, 0, 0, time.FixedZone("X", 3600))
		raw := validRaw()
		raw.Date = entity.RawDateFromTime(typed)

		result, err := Validate(raw)

		require.NoError(t, err)
		assert.True(t, typed.Equal(result.Date))
	})

	t.Run("absent tags", func(t *testing.T) {
		raw := validRaw()
		raw.Tags = nil

		result, err := Validate(raw)

		require.NoError(t, err)
		assert.Empty(t, result.Tags)
	})

	t.Run("boundary lengths", func(t *testing.T) {
		raw := validRaw()
		raw.Description = strPtr(strings.Repeat("a", MaxDescriptionLength))
		raw.Tags = entity.RawTagsFromStrings("a", "b", "c", "d", "e", "f", "g", "h", "i", "j")

		_, err := Validate(raw)

		require.NoError(t, err)
	})

	t.Run("description length counts characters", func(t *testing.T) {
		raw := validRaw()
		raw.Description = strPtr(strings.Repeat("é", MaxDescriptionLength))

		result, err := Validate(raw)

		require.NoError(t, err)
		assert.Equal(t, MaxDescriptionLength, utf8.RuneCountInString(result.Description))
	})

	t.Run("amount with surrounding whitespace", func(t *testing.T) {
		raw := validRaw()
		raw.Amount = strPtr(" 12.3 ")

		result, err := Validate(raw)

		require.NoError(t, err)
		assert.Equal(t, "12.3", result.Amount.String())
	})
}
