package summary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// GetMonthlySummaryInput represents the input for a monthly summary request.
type GetMonthlySummaryInput struct {
	UserID uuid.UUID
	Year   int
	Month  int
}

// GetMonthlySummaryOutput represents the output of a monthly summary request.
type GetMonthlySummaryOutput struct {
	Year    int
	Month   time.Month
	Summary *entity.MonthlySummary
	Cached  bool
}

// GetMonthlySummaryUseCase summarizes a user's expenses for one calendar month.
type GetMonthlySummaryUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	summaryCache adapter.SummaryCache
}

// NewGetMonthlySummaryUseCase creates a new GetMonthlySummaryUseCase instance.
// summaryCache may be nil when caching is disabled.
func NewGetMonthlySummaryUseCase(expenseRepo adapter.ExpenseRepository, summaryCache adapter.SummaryCache) *GetMonthlySummaryUseCase {
	return &GetMonthlySummaryUseCase{
		expenseRepo:  expenseRepo,
		summaryCache: summaryCache,
	}
}

// Execute returns the summary for [first of month, first of next month).
func (uc *GetMonthlySummaryUseCase) Execute(ctx context.Context, input GetMonthlySummaryInput) (*GetMonthlySummaryOutput, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, domainerror.NewAnalysisError(
			domainerror.ErrCodeInvalidMonth,
			fmt.Sprintf("invalid month %d", input.Month),
			domainerror.ErrInvalidMonth,
		)
	}
	month := time.Month(input.Month)

	if uc.summaryCache != nil {
		cached, err := uc.summaryCache.Get(ctx, input.UserID, input.Year, month)
		if err != nil {
			slog.Warn("Failed to read monthly summary cache",
				"userID", input.UserID,
				"year", input.Year,
				"month", input.Month,
				"error", err,
			)
		} else if cached != nil {
			return &GetMonthlySummaryOutput{Year: input.Year, Month: month, Summary: cached, Cached: true}, nil
		}
	}

	period := valueobject.NewMonthPeriod(input.Year, month, time.UTC)
	expenses, err := uc.expenseRepo.Find(ctx, adapter.ExpenseFilter{
		UserID:    input.UserID,
		StartDate: &period.Start,
		EndDate:   &period.End,
	})
	if err != nil {
		slog.Error("Expense repository failure",
			"userID", input.UserID,
			"operation", "monthly_summary",
			"error", err,
		)
		return nil, domainerror.NewRepositoryError("monthly_summary", err)
	}

	summary := Summarize(expenses)

	if uc.summaryCache != nil {
		if err := uc.summaryCache.Set(ctx, input.UserID, input.Year, month, summary); err != nil {
			slog.Warn("Failed to store monthly summary cache",
				"userID", input.UserID,
				"year", input.Year,
				"month", input.Month,
				"error", err,
			)
		}
	}

	return &GetMonthlySummaryOutput{Year: input.Year, Month: month, Summary: summary}, nil
}
