// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 60
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute

	rateLimitKeyPrefix = "expense:ratelimit"
)

// counterStore counts hits per key within a fixed window.
type counterStore interface {
	// hit records one attempt and returns the attempt count in the current window.
	hit(ctx context.Context, key string, window time.Duration) (int64, error)
	reset(ctx context.Context) error
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int64
	resetTime time.Time
}

// memoryStore keeps counters in process memory.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]*rateLimitEntry)}
}

func (s *memoryStore) hit(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	entry, exists := s.entries[key]
	if !exists || now.After(entry.resetTime) {
		// First request from this key, or the window has expired
		s.entries[key] = &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(window),
		}
		return 1, nil
	}

	entry.attempts++
	return entry.attempts, nil
}

func (s *memoryStore) reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*rateLimitEntry)
	return nil
}

// cleanup removes expired entries.
func (s *memoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, entry := range s.entries {
		if now.After(entry.resetTime) {
			delete(s.entries, key)
		}
	}
}

// redisStore keeps counters in Redis so every API instance shares the window.
type redisStore struct {
	client *redis.Client
}

func (s *redisStore) hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	redisKey := fmt.Sprintf("%s:%s", rateLimitKeyPrefix, key)

	attempts, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, err
	}

	// The first hit opens the window.
	if attempts == 1 {
		if err := s.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return 0, err
		}
	}
	return attempts, nil
}

func (s *redisStore) reset(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, rateLimitKeyPrefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// RateLimiter limits requests per authenticated user, falling back to client IP.
type RateLimiter struct {
	store          counterStore
	maxAttempts    int64
	windowDuration time.Duration
}

// NewRateLimiter creates a new in-memory rate limiter with default settings.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultMaxAttempts, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates a new in-memory rate limiter with custom settings.
func NewRateLimiterWithConfig(maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		store:          newMemoryStore(),
		maxAttempts:    int64(maxAttempts),
		windowDuration: windowDuration,
	}
}

// NewRedisRateLimiter creates a rate limiter whose counters live in Redis.
func NewRedisRateLimiter(client *redis.Client, maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		store:          &redisStore{client: client},
		maxAttempts:    int64(maxAttempts),
		windowDuration: windowDuration,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip rate limiting in E2E mode
		if os.Getenv("E2E_MODE") == "true" {
			c.Next()
			return
		}

		key := c.ClientIP()
		if userID, ok := GetUserIDFromContext(c); ok {
			key = "user:" + userID.String()
		} else if key == "" {
			key = c.Request.RemoteAddr
		}

		attempts, err := rl.store.hit(c.Request.Context(), key, rl.windowDuration)
		if err != nil {
			// Counter store unavailable: let the request through.
			slog.Warn("Rate limiter store failure", "key", key, "error", err)
			c.Next()
			return
		}

		if attempts > rl.maxAttempts {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// Reset clears the rate limiter state (useful for testing).
func (rl *RateLimiter) Reset() {
	if err := rl.store.reset(context.Background()); err != nil {
		slog.Warn("Failed to reset rate limiter", "error", err)
	}
}

// Cleanup removes expired in-memory entries. Redis expires its keys itself.
func (rl *RateLimiter) Cleanup() {
	if store, ok := rl.store.(*memoryStore); ok {
		store.cleanup()
	}
}
