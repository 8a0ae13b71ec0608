package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// SummaryCache is an in-memory adapter.SummaryCache.
type SummaryCache struct {
	mu      sync.Mutex
	entries map[string]*entity.MonthlySummary

	GetErr error
	SetErr error

	GetCalls        int
	SetCalls        int
	InvalidateCalls int
}

var _ adapter.SummaryCache = (*SummaryCache)(nil)

// NewSummaryCache creates an empty in-memory summary cache.
func NewSummaryCache() *SummaryCache {
	return &SummaryCache{entries: make(map[string]*entity.MonthlySummary)}
}

func summaryKey(userID uuid.UUID, year int, month time.Month) string {
	return fmt.Sprintf("%s:%04d-%02d", userID, year, int(month))
}

// Get returns the cached summary or (nil, nil).
func (c *SummaryCache) Get(_ context.Context, userID uuid.UUID, year int, month time.Month) (*entity.MonthlySummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.GetCalls++
	if c.GetErr != nil {
		return nil, c.GetErr
	}
	return c.entries[summaryKey(userID, year, month)], nil
}

// Set stores the summary.
func (c *SummaryCache) Set(_ context.Context, userID uuid.UUID, year int, month time.Month, summary *entity.MonthlySummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.SetCalls++
	if c.SetErr != nil {
		return c.SetErr
	}
	c.entries[summaryKey(userID, year, month)] = summary
	return nil
}

// Invalidate drops the cached summary.
func (c *SummaryCache) Invalidate(_ context.Context, userID uuid.UUID, year int, month time.Month) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.InvalidateCalls++
	delete(c.entries, summaryKey(userID, year, month))
	return nil
}

// Has reports whether a summary is cached for the month.
func (c *SummaryCache) Has(userID uuid.UUID, year int, month time.Month) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[summaryKey(userID, year, month)]
	return ok
}
