// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// SummaryCache stores computed monthly summaries per user and month.
type SummaryCache interface {
	// Get returns the cached summary, or (nil, nil) on a miss.
	Get(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*entity.MonthlySummary, error)

	// Set stores a summary.
	Set(ctx context.Context, userID uuid.UUID, year int, month time.Month, summary *entity.MonthlySummary) error

	// Invalidate drops the cached summary for the month.
	Invalidate(ctx context.Context, userID uuid.UUID, year int, month time.Month) error
}
