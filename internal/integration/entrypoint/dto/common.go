// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/shopspring/decimal"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// BudgetErrorResponse is returned when an expense would exceed a category budget.
type BudgetErrorResponse struct {
	Error        string `json:"error"`
	Code         string `json:"code"`
	Category     string `json:"category"`
	BudgetLimit  string `json:"budget_limit"`
	WouldBeTotal string `json:"would_be_total"`
}

// formatAmount renders money with exactly two fractional digits.
func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatTotals(totals map[string]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(totals))
	for k, v := range totals {
		out[k] = formatAmount(v)
	}
	return out
}
