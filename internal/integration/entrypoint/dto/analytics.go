// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/analysis"
	"github.com/expense-tracker/backend/internal/application/usecase/summary"
)

// MonthlySummaryResponse represents the monthly summary in API responses.
type MonthlySummaryResponse struct {
	Year        int               `json:"year"`
	Month       int               `json:"month"`
	Total       string            `json:"total"`
	Categories  map[string]string `json:"categories"`
	Tags        map[string]string `json:"tags"`
	DailyTotals map[string]string `json:"daily_totals"`
	Count       int               `json:"count"`
}

// ToMonthlySummaryResponse converts a summary output to a MonthlySummaryResponse DTO.
func ToMonthlySummaryResponse(output *summary.GetMonthlySummaryOutput) MonthlySummaryResponse {
	s := output.Summary
	return MonthlySummaryResponse{
		Year:        output.Year,
		Month:       int(output.Month),
		Total:       formatAmount(s.Total),
		Categories:  formatTotals(s.Categories),
		Tags:        formatTotals(s.Tags),
		DailyTotals: formatTotals(s.DailyTotals),
		Count:       s.Count,
	}
}

// SpendingAnalysisResponse represents a spending pattern analysis in API responses.
type SpendingAnalysisResponse struct {
	PeriodDays           int               `json:"period_days"`
	PeriodStart          string            `json:"period_start"`
	PeriodEnd            string            `json:"period_end"`
	TotalSpent           string            `json:"total_spent"`
	AverageDaily         string            `json:"average_daily"`
	HighestExpense       *ExpenseResponse  `json:"highest_expense"`
	MostFrequentCategory *string           `json:"most_frequent_category"`
	CategoryDistribution map[string]string `json:"category_distribution"`
	UnusualExpenses      []ExpenseResponse `json:"unusual_expenses"`
}

// ToSpendingAnalysisResponse converts an analysis output to a SpendingAnalysisResponse DTO.
func ToSpendingAnalysisResponse(output *analysis.AnalyzeSpendingOutput) SpendingAnalysisResponse {
	a := output.Analysis
	response := SpendingAnalysisResponse{
		PeriodDays:           output.PeriodDays,
		PeriodStart:          output.Period.Start.Format(time.RFC3339),
		PeriodEnd:            output.Period.End.Format(time.RFC3339),
		TotalSpent:           formatAmount(a.TotalSpent),
		AverageDaily:         formatAmount(a.AverageDaily),
		CategoryDistribution: formatTotals(a.CategoryDistribution),
		UnusualExpenses:      make([]ExpenseResponse, len(a.UnusualExpenses)),
	}

	if a.HighestExpense != nil {
		highest := ToExpenseResponse(a.HighestExpense)
		response.HighestExpense = &highest
	}
	if a.MostFrequentCategory != "" {
		category := a.MostFrequentCategory
		response.MostFrequentCategory = &category
	}
	for i, e := range a.UnusualExpenses {
		response.UnusualExpenses[i] = ToExpenseResponse(e)
	}

	return response
}

// CategorizeRequest represents the request body for a category suggestion.
type CategorizeRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
}

// CategorizeResponse represents a suggested category.
type CategorizeResponse struct {
	Category string `json:"category"`
}
