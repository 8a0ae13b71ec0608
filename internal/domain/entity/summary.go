// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/shopspring/decimal"

// DailyTotalsDateFormat is the key format of MonthlySummary.DailyTotals.
const DailyTotalsDateFormat = "2006-01-02"

// MonthlySummary holds aggregate totals for a list of expenses.
// Total equals the sum of Categories and the sum of DailyTotals.
type MonthlySummary struct {
	Total       decimal.Decimal
	Categories  map[string]decimal.Decimal
	Tags        map[string]decimal.Decimal
	DailyTotals map[string]decimal.Decimal
	Count       int
}

// NewMonthlySummary creates an empty MonthlySummary.
func NewMonthlySummary() *MonthlySummary {
	return &MonthlySummary{
		Total:       decimal.Zero,
		Categories:  make(map[string]decimal.Decimal),
		Tags:        make(map[string]decimal.Decimal),
		DailyTotals: make(map[string]decimal.Decimal),
	}
}
