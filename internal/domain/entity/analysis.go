// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/shopspring/decimal"

// SpendingPatternAnalysis holds derived statistics over an arbitrary set of expenses.
type SpendingPatternAnalysis struct {
	TotalSpent           decimal.Decimal
	AverageDaily         decimal.Decimal
	HighestExpense       *Expense // nil when no expenses were analyzed
	MostFrequentCategory string   // empty when no expenses were analyzed
	CategoryDistribution map[string]decimal.Decimal
	UnusualExpenses      []*Expense
}
