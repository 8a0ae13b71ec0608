package analysis

import (
	"github.com/shopspring/decimal"
)

// SuggestCategoryInput represents the input for a category suggestion.
type SuggestCategoryInput struct {
	Description string
	Amount      decimal.Decimal
}

// SuggestCategoryOutput represents the suggested category key.
type SuggestCategoryOutput struct {
	Category string
}

// SuggestCategoryUseCase exposes keyword categorization as an operation.
type SuggestCategoryUseCase struct {
	analyzer *Analyzer
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance.
func NewSuggestCategoryUseCase(analyzer *Analyzer) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{analyzer: analyzer}
}

// Execute returns the suggested category for the description and amount.
func (uc *SuggestCategoryUseCase) Execute(input SuggestCategoryInput) *SuggestCategoryOutput {
	return &SuggestCategoryOutput{
		Category: uc.analyzer.Categorize(input.Description, input.Amount),
	}
}
