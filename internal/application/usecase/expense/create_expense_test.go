package expense

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/application/adapter/mock"
	"github.com/expense-tracker/backend/internal/application/usecase/budget"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type createFixture struct {
	useCase    *CreateExpenseUseCase
	categories *mock.CategoryRepository
	expenses   *mock.ExpenseRepository
	cache      *mock.SummaryCache
	userID     uuid.UUID
}

func setupCreate(t *testing.T) *createFixture {
	t.Helper()

	categories := mock.NewCategoryRepository()
	expenses := mock.NewExpenseRepository()
	cache := mock.NewSummaryCache()
	return &createFixture{
		useCase:    NewCreateExpenseUseCase(budget.NewEnforcer(categories, expenses), cache),
		categories: categories,
		expenses:   expenses,
		cache:      cache,
		userID:     uuid.New(),
	}
}

func TestCreateExpenseUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("stores canonical expense", func(t *testing.T) {
		f := setupCreate(t)
		f.categories.Add(f.userID, "food", "Food", "500")

		raw := validRaw()
		raw.Amount = strPtr("45.555")

		output, err := f.useCase.Execute(ctx, CreateExpenseInput{UserID: f.userID, Raw: raw})

		require.NoError(t, err)
		expense := output.Expense
		assert.NotEqual(t, uuid.Nil, expense.ID)
		assert.Equal(t, f.userID, expense.UserID)
		assert.Equal(t, "45.56", expense.Amount.StringFixed(2))
		assert.Equal(t, "food", expense.Category)
		assert.Equal(t, []string{"weekly", "groceries"}, expense.Tags)
		assert.Len(t, f.expenses.All(), 1)
	})

	t.Run("validation failure performs no lookup", func(t *testing.T) {
		f := setupCreate(t)
		f.categories.GetErr = errors.New("must not be called")

		raw := validRaw()
		raw.Amount = strPtr("abc")

		_, err := f.useCase.Execute(ctx, CreateExpenseInput{UserID: f.userID, Raw: raw})

		assert.ErrorIs(t, err, domainerror.ErrInvalidAmount)
		assert.Zero(t, f.expenses.CreateCalls)
	})

	t.Run("unknown category performs no write", func(t *testing.T) {
		f := setupCreate(t)

		_, err := f.useCase.Execute(ctx, CreateExpenseInput{UserID: f.userID, Raw: validRaw()})

		assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)
		assert.Zero(t, f.expenses.CreateCalls)
		assert.Empty(t, f.expenses.All())
	})

	t.Run("budget overrun performs no write", func(t *testing.T) {
		f := setupCreate(t)
		f.categories.Add(f.userID, "food", "Food", "200")
		f.expenses.Seed(f.userID, "food", "150", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))

		raw := validRaw()
		raw.Amount = strPtr("60")

		_, err := f.useCase.Execute(ctx, CreateExpenseInput{UserID: f.userID, Raw: raw})

		assert.ErrorIs(t, err, domainerror.ErrBudgetLimitExceeded)
		assert.Zero(t, f.expenses.CreateCalls)
	})

	t.Run("repository failure keeps its kind", func(t *testing.T) {
		f := setupCreate(t)
		f.categories.Add(f.userID, "food", "Food", "")
		f.expenses.CreateErr = errors.New("connection reset by peer")

		_, err := f.useCase.Execute(ctx, CreateExpenseInput{UserID: f.userID, Raw: validRaw()})

		require.Error(t, err)
		assert.ErrorIs(t, err, domainerror.ErrRepository)
		assert.NotErrorIs(t, err, domainerror.ErrInvalidAmount)
		assert.Equal(t, "connection reset by peer", err.Error())
	})

	t.Run("invalidates the month summary", func(t *testing.T) {
		f := setupCreate(t)
		f.categories.Add(f.userID, "food", "Food", "")
		require.NoError(t, f.cache.Set(ctx, f.userID, 2024, time.March, entity.NewMonthlySummary()))

		_, err := f.useCase.Execute(ctx, CreateExpenseInput{UserID: f.userID, Raw: validRaw()})

		require.NoError(t, err)
		assert.False(t, f.cache.Has(f.userID, 2024, time.March))
	})

	t.Run("zoned date is budgeted in its UTC month", func(t *testing.T) {
		f := setupCreate(t)
		f.categories.Add(f.userID, "food", "Food", "100")
		f.expenses.Seed(f.userID, "food", "90", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

		raw := validRaw()
		raw.Amount = strPtr("20")
		raw.Date = entity.RawDateFromText("2024-02-01T00:30:00+02:00")

		_, err := f.useCase.Execute(ctx, CreateExpenseInput{UserID: f.userID, Raw: raw})

		assert.ErrorIs(t, err, domainerror.ErrBudgetLimitExceeded)
		assert.Len(t, f.expenses.All(), 1)
	})

	t.Run("zoned date invalidates its UTC month", func(t *testing.T) {
		f := setupCreate(t)
		f.categories.Add(f.userID, "food", "Food", "")
		require.NoError(t, f.cache.Set(ctx, f.userID, 2024, time.January, entity.NewMonthlySummary()))

		raw := validRaw()
		raw.Date = entity.RawDateFromText("2024-02-01T00:30:00+02:00")

		_, err := f.useCase.Execute(ctx, CreateExpenseInput{UserID: f.userID, Raw: raw})

		require.NoError(t, err)
		assert.False(t, f.cache.Has(f.userID, 2024, time.January))
	})

	t.Run("works without cache", func(t *testing.T) {
		categories := mock.NewCategoryRepository()
		expenses := mock.NewExpenseRepository()
		userID := uuid.New()
		categories.Add(userID, "food", "Food", "")
		useCase := NewCreateExpenseUseCase(budget.NewEnforcer(categories, expenses), nil)

		output, err := useCase.Execute(ctx, CreateExpenseInput{UserID: userID, Raw: validRaw()})

		require.NoError(t, err)
		assert.NotNil(t, output.Expense)
	})
}
