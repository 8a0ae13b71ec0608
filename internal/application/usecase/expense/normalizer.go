package expense

import (
	"strings"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// AmountPlaces is the number of fractional digits kept on expense amounts.
const AmountPlaces = 2

// Normalize converts a validated expense into its canonical form.
// Amounts are rounded half away from zero to two places; tags are trimmed and
// lower-cased with order and duplicates kept.
func Normalize(v *ValidatedExpense) entity.CanonicalExpense {
	tags := make([]string, 0, len(v.Tags))
	for _, tag := range v.Tags {
		tags = append(tags, strings.ToLower(strings.TrimSpace(tag)))
	}

	return entity.CanonicalExpense{
		Amount:      v.Amount.Round(AmountPlaces),
		Category:    v.Category,
		Date:        v.Date,
		Description: v.Description,
		Tags:        tags,
	}
}
