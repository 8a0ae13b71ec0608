// Package summary contains monthly expense summary computation.
package summary

import (
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// Summarize aggregates expenses into totals per category, tag and day.
// Order of the input does not affect the result.
func Summarize(expenses []*entity.Expense) *entity.MonthlySummary {
	summary := entity.NewMonthlySummary()

	for _, e := range expenses {
		summary.Total = summary.Total.Add(e.Amount)
		summary.Categories[e.Category] = summary.Categories[e.Category].Add(e.Amount)

		for _, tag := range e.Tags {
			summary.Tags[tag] = summary.Tags[tag].Add(e.Amount)
		}

		day := e.Date.Format(entity.DailyTotalsDateFormat)
		summary.DailyTotals[day] = summary.DailyTotals[day].Add(e.Amount)
	}
	summary.Count = len(expenses)

	return summary
}
