package analysis

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/application/adapter/mock"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

func TestAnalyzeSpendingUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	analyzer := NewAnalyzer(valueobject.DefaultCategorizationRules())
	asOf := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	t.Run("uses the default window", func(t *testing.T) {
		repo := mock.NewExpenseRepository()
		repo.Seed(userID, "food", "30", time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC))
		repo.Seed(userID, "food", "60", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
		repo.Seed(userID, "food", "999", time.Date(2024, 2, 9, 23, 59, 0, 0, time.UTC))
		repo.Seed(userID, "food", "999", time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))
		useCase := NewAnalyzeSpendingUseCase(repo, analyzer, 0)

		output, err := useCase.Execute(ctx, AnalyzeSpendingInput{UserID: userID, AsOf: asOf})

		require.NoError(t, err)
		assert.Equal(t, DefaultPeriodDays, output.PeriodDays)
		assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), output.Period.Start)
		assert.Equal(t, "90.00", output.Analysis.TotalSpent.StringFixed(2))
		assert.Equal(t, "3.00", output.Analysis.AverageDaily.StringFixed(2))
	})

	t.Run("invalid period does not touch storage", func(t *testing.T) {
		repo := mock.NewExpenseRepository()
		useCase := NewAnalyzeSpendingUseCase(repo, analyzer, 30)
		days := 0

		_, err := useCase.Execute(ctx, AnalyzeSpendingInput{UserID: userID, PeriodDays: &days, AsOf: asOf})

		assert.ErrorIs(t, err, domainerror.ErrInvalidPeriod)
		assert.Zero(t, repo.FindCalls)
	})

	t.Run("oversized period does not touch storage", func(t *testing.T) {
		repo := mock.NewExpenseRepository()
		useCase := NewAnalyzeSpendingUseCase(repo, analyzer, 30)
		days := math.MaxInt

		_, err := useCase.Execute(ctx, AnalyzeSpendingInput{UserID: userID, PeriodDays: &days, AsOf: asOf})

		assert.ErrorIs(t, err, domainerror.ErrInvalidPeriod)
		assert.Zero(t, repo.FindCalls)
	})

	t.Run("oversized configured default falls back", func(t *testing.T) {
		useCase := NewAnalyzeSpendingUseCase(mock.NewExpenseRepository(), analyzer, MaxPeriodDays+1)

		output, err := useCase.Execute(ctx, AnalyzeSpendingInput{UserID: userID, AsOf: asOf})

		require.NoError(t, err)
		assert.Equal(t, DefaultPeriodDays, output.PeriodDays)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := mock.NewExpenseRepository()
		repo.FindErr = errors.New("boom")
		useCase := NewAnalyzeSpendingUseCase(repo, analyzer, 30)

		_, err := useCase.Execute(ctx, AnalyzeSpendingInput{UserID: userID, AsOf: asOf})

		assert.ErrorIs(t, err, domainerror.ErrRepository)
	})
}

func TestSuggestCategoryUseCase_Execute(t *testing.T) {
	useCase := NewSuggestCategoryUseCase(NewAnalyzer(valueobject.DefaultCategorizationRules()))

	output := useCase.Execute(SuggestCategoryInput{Description: "Taxi home"})

	assert.Equal(t, "transport", output.Category)
}
