// Package cache implements Redis-backed caches for the application layer.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

const summaryKeyPrefix = "expense:summary"

// cachedSummary is the JSON document stored per user and month.
type cachedSummary struct {
	Total       decimal.Decimal            `json:"total"`
	Categories  map[string]decimal.Decimal `json:"categories"`
	Tags        map[string]decimal.Decimal `json:"tags"`
	DailyTotals map[string]decimal.Decimal `json:"daily_totals"`
	Count       int                        `json:"count"`
}

// summaryCache implements the adapter.SummaryCache interface.
type summaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a new Redis summary cache instance.
func NewSummaryCache(client *redis.Client, ttl time.Duration) adapter.SummaryCache {
	return &summaryCache{
		client: client,
		ttl:    ttl,
	}
}

// SummaryKey returns the Redis key holding a user's summary for a month.
func SummaryKey(userID uuid.UUID, year int, month time.Month) string {
	return fmt.Sprintf("%s:%s:%04d-%02d", summaryKeyPrefix, userID, year, int(month))
}

// Get returns the cached summary, or (nil, nil) on a miss.
func (c *summaryCache) Get(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*entity.MonthlySummary, error) {
	data, err := c.client.Get(ctx, SummaryKey(userID, year, month)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read summary cache: %w", err)
	}

	var cached cachedSummary
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("failed to decode cached summary: %w", err)
	}

	summary := entity.NewMonthlySummary()
	summary.Total = cached.Total
	summary.Count = cached.Count
	copyTotals(summary.Categories, cached.Categories)
	copyTotals(summary.Tags, cached.Tags)
	copyTotals(summary.DailyTotals, cached.DailyTotals)
	return summary, nil
}

// Set stores a summary with the configured TTL.
func (c *summaryCache) Set(ctx context.Context, userID uuid.UUID, year int, month time.Month, summary *entity.MonthlySummary) error {
	data, err := json.Marshal(cachedSummary{
		Total:       summary.Total,
		Categories:  summary.Categories,
		Tags:        summary.Tags,
		DailyTotals: summary.DailyTotals,
		Count:       summary.Count,
	})
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	if err := c.client.Set(ctx, SummaryKey(userID, year, month), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write summary cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached summary for the month.
func (c *summaryCache) Invalidate(ctx context.Context, userID uuid.UUID, year int, month time.Month) error {
	if err := c.client.Del(ctx, SummaryKey(userID, year, month)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate summary cache: %w", err)
	}
	return nil
}

func copyTotals(dst, src map[string]decimal.Decimal) {
	for k, v := range src {
		dst[k] = v
	}
}
