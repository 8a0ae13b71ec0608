// Package analysis contains spending pattern analysis and category suggestion.
package analysis

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// unusualFactor is how many times its category average an expense must exceed
// to be reported as unusual.
var unusualFactor = decimal.NewFromInt(2)

// MaxPeriodDays bounds the analysis window to ten years.
const MaxPeriodDays = 3660

// Analyzer categorizes descriptions and computes spending statistics.
// It is immutable after construction and safe for concurrent use.
type Analyzer struct {
	rules valueobject.CategorizationRules
}

// NewAnalyzer creates a new Analyzer from a categorization rule table.
func NewAnalyzer(rules valueobject.CategorizationRules) *Analyzer {
	return &Analyzer{rules: rules.Normalized()}
}

// Rules returns the rule table the analyzer was built with.
func (a *Analyzer) Rules() valueobject.CategorizationRules {
	return a.rules.Normalized()
}

// Categorize suggests a category key for an expense description.
// The first rule with a keyword contained in the description wins; unmatched
// expenses above the major-expense threshold get the major-expense category.
func (a *Analyzer) Categorize(description string, amount decimal.Decimal) string {
	text := strings.ToLower(description)
	for _, rule := range a.rules.Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Category
			}
		}
	}

	if amount.GreaterThan(a.rules.MajorExpenseThreshold) {
		return a.rules.MajorExpenseCategory
	}
	return a.rules.FallbackCategory
}

// Analyze computes spending statistics over expenses for a period of periodDays.
// Ties for the highest expense and the most frequent category go to the
// first one seen in input order.
func (a *Analyzer) Analyze(expenses []*entity.Expense, periodDays int) (*entity.SpendingPatternAnalysis, error) {
	if err := checkPeriod(periodDays); err != nil {
		return nil, err
	}

	result := &entity.SpendingPatternAnalysis{
		TotalSpent:           decimal.Zero,
		AverageDaily:         decimal.Zero,
		CategoryDistribution: make(map[string]decimal.Decimal),
		UnusualExpenses:      []*entity.Expense{},
	}

	counts := make(map[string]int)
	var order []string

	for _, e := range expenses {
		result.TotalSpent = result.TotalSpent.Add(e.Amount)

		if _, seen := counts[e.Category]; !seen {
			order = append(order, e.Category)
		}
		counts[e.Category]++
		result.CategoryDistribution[e.Category] = result.CategoryDistribution[e.Category].Add(e.Amount)

		if result.HighestExpense == nil || e.Amount.GreaterThan(result.HighestExpense.Amount) {
			result.HighestExpense = e
		}
	}

	if len(expenses) == 0 {
		return result, nil
	}

	result.AverageDaily = result.TotalSpent.Div(decimal.NewFromInt(int64(periodDays)))

	best := 0
	for _, category := range order {
		if counts[category] > best {
			best = counts[category]
			result.MostFrequentCategory = category
		}
	}

	// amount > 2 * (total / count) is evaluated as amount * count > 2 * total
	// so no rounding from the division leaks into the comparison.
	for _, e := range expenses {
		count := decimal.NewFromInt(int64(counts[e.Category]))
		if e.Amount.Mul(count).GreaterThan(unusualFactor.Mul(result.CategoryDistribution[e.Category])) {
			result.UnusualExpenses = append(result.UnusualExpenses, e)
		}
	}

	return result, nil
}

func checkPeriod(periodDays int) error {
	if periodDays <= 0 || periodDays > MaxPeriodDays {
		return domainerror.NewAnalysisError(
			domainerror.ErrCodeInvalidPeriod,
			fmt.Sprintf("invalid period of %d days", periodDays),
			domainerror.ErrInvalidPeriod,
		)
	}
	return nil
}
