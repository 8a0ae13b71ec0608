// Package valueobject contains domain value objects for the expense tracker.
package valueobject

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultMajorExpenseCategory is suggested for unmatched expenses above the threshold.
	DefaultMajorExpenseCategory = "major_expense"
	// DefaultFallbackCategory is suggested for unmatched expenses at or below the threshold.
	DefaultFallbackCategory = "other"
)

// CategoryRule maps a category key to the keywords that identify it.
type CategoryRule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// CategorizationRules is the ordered keyword table used to suggest a category
// from an expense description. The first matching rule wins.
type CategorizationRules struct {
	Rules                 []CategoryRule  `yaml:"rules"`
	MajorExpenseThreshold decimal.Decimal `yaml:"major_expense_threshold"`
	MajorExpenseCategory  string          `yaml:"major_expense_category"`
	FallbackCategory      string          `yaml:"fallback_category"`
}

// DefaultCategorizationRules returns the built-in rule table.
func DefaultCategorizationRules() CategorizationRules {
	return CategorizationRules{
		Rules: []CategoryRule{
			{Category: "food", Keywords: []string{"restaurant", "grocery", "food", "meal"}},
			{Category: "transport", Keywords: []string{"gas", "fuel", "taxi", "uber", "train"}},
			{Category: "utilities", Keywords: []string{"electricity", "water", "internet", "phone"}},
			{Category: "entertainment", Keywords: []string{"movie", "game", "concert", "show"}},
		},
		MajorExpenseThreshold: decimal.NewFromInt(1000),
		MajorExpenseCategory:  DefaultMajorExpenseCategory,
		FallbackCategory:      DefaultFallbackCategory,
	}
}

// Normalized returns a copy with lower-cased keywords and defaults filled in
// for empty category names.
func (r CategorizationRules) Normalized() CategorizationRules {
	out := CategorizationRules{
		Rules:                 make([]CategoryRule, 0, len(r.Rules)),
		MajorExpenseThreshold: r.MajorExpenseThreshold,
		MajorExpenseCategory:  r.MajorExpenseCategory,
		FallbackCategory:      r.FallbackCategory,
	}
	if out.MajorExpenseCategory == "" {
		out.MajorExpenseCategory = DefaultMajorExpenseCategory
	}
	if out.FallbackCategory == "" {
		out.FallbackCategory = DefaultFallbackCategory
	}

	for _, rule := range r.Rules {
		keywords := make([]string, 0, len(rule.Keywords))
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		out.Rules = append(out.Rules, CategoryRule{Category: rule.Category, Keywords: keywords})
	}
	return out
}

// Validate checks that every rule names a category.
func (r CategorizationRules) Validate() error {
	for i, rule := range r.Rules {
		if strings.TrimSpace(rule.Category) == "" {
			return fmt.Errorf("rule %d: category is required", i)
		}
	}
	if r.MajorExpenseThreshold.IsNegative() {
		return fmt.Errorf("major expense threshold must not be negative")
	}
	return nil
}
