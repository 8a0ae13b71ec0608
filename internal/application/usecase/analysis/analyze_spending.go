package analysis

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// DefaultPeriodDays is the analysis window used when none is requested.
const DefaultPeriodDays = 30

// AnalyzeSpendingInput represents the input for a spending analysis.
// A nil PeriodDays uses the configured default; a zero AsOf means now.
type AnalyzeSpendingInput struct {
	UserID     uuid.UUID
	PeriodDays *int
	AsOf       time.Time
}

// AnalyzeSpendingOutput represents the output of a spending analysis.
type AnalyzeSpendingOutput struct {
	Period     valueobject.Period
	PeriodDays int
	Analysis   *entity.SpendingPatternAnalysis
}

// AnalyzeSpendingUseCase analyzes a user's expenses over a trailing window of days.
type AnalyzeSpendingUseCase struct {
	expenseRepo       adapter.ExpenseRepository
	analyzer          *Analyzer
	defaultPeriodDays int
}

// NewAnalyzeSpendingUseCase creates a new AnalyzeSpendingUseCase instance.
func NewAnalyzeSpendingUseCase(expenseRepo adapter.ExpenseRepository, analyzer *Analyzer, defaultPeriodDays int) *AnalyzeSpendingUseCase {
	if defaultPeriodDays <= 0 || defaultPeriodDays > MaxPeriodDays {
		defaultPeriodDays = DefaultPeriodDays
	}
	return &AnalyzeSpendingUseCase{
		expenseRepo:       expenseRepo,
		analyzer:          analyzer,
		defaultPeriodDays: defaultPeriodDays,
	}
}

// Execute fetches the expenses of the periodDays days ending on AsOf and analyzes them.
func (uc *AnalyzeSpendingUseCase) Execute(ctx context.Context, input AnalyzeSpendingInput) (*AnalyzeSpendingOutput, error) {
	periodDays := uc.defaultPeriodDays
	if input.PeriodDays != nil {
		periodDays = *input.PeriodDays
	}

	if err := checkPeriod(periodDays); err != nil {
		return nil, err
	}

	asOf := input.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	period := valueobject.TrailingDaysPeriod(asOf, periodDays)

	expenses, err := uc.expenseRepo.Find(ctx, adapter.ExpenseFilter{
		UserID:    input.UserID,
		StartDate: &period.Start,
		EndDate:   &period.End,
	})
	if err != nil {
		slog.Error("Expense repository failure",
			"userID", input.UserID,
			"operation", "analyze_spending",
			"error", err,
		)
		return nil, domainerror.NewRepositoryError("analyze_spending", err)
	}

	analysis, err := uc.analyzer.Analyze(expenses, periodDays)
	if err != nil {
		return nil, err
	}

	return &AnalyzeSpendingOutput{
		Period:     period,
		PeriodDays: periodDays,
		Analysis:   analysis,
	}, nil
}
