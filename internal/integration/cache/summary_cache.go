// Package cache implements the summary cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/billtrack/recurring-engine/internal/application/adapter"
	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
)

// redisSummaryCache caches cash-flow summaries in Redis, keyed by user and
// calendar month. Invalidation drops all of a user's months at once so a new
// link never leaves a stale neighbour month behind.
type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSummaryCache creates a new Redis-backed summary cache.
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) adapter.SummaryCache {
	return &redisSummaryCache{
		client: client,
		ttl:    ttl,
	}
}

func cashFlowKey(userID uuid.UUID, month time.Time) string {
	return fmt.Sprintf("cashflow:%s:%s", userID, month.Format("2006-01"))
}

// GetCashFlow returns the cached summary for the month containing month.
func (c *redisSummaryCache) GetCashFlow(ctx context.Context, userID uuid.UUID, month time.Time) (*valueobject.CashFlowSummary, bool, error) {
	payload, err := c.client.Get(ctx, cashFlowKey(userID, month)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	var summary valueobject.CashFlowSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, false, nil
	}
	return &summary, true, nil
}

// SetCashFlow stores the summary for the month containing month.
func (c *redisSummaryCache) SetCashFlow(ctx context.Context, userID uuid.UUID, month time.Time, summary *valueobject.CashFlowSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cashFlowKey(userID, month), payload, c.ttl).Err()
}

// Invalidate drops every cached month for the user.
func (c *redisSummaryCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	pattern := fmt.Sprintf("cashflow:%s:*", userID)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// NoopSummaryCache is used when Redis is not configured; every lookup misses.
type NoopSummaryCache struct{}

// GetCashFlow always misses.
func (NoopSummaryCache) GetCashFlow(_ context.Context, _ uuid.UUID, _ time.Time) (*valueobject.CashFlowSummary, bool, error) {
	return nil, false, nil
}

// SetCashFlow discards the summary.
func (NoopSummaryCache) SetCashFlow(_ context.Context, _ uuid.UUID, _ time.Time, _ *valueobject.CashFlowSummary) error {
	return nil
}

// Invalidate does nothing.
func (NoopSummaryCache) Invalidate(_ context.Context, _ uuid.UUID) error {
	return nil
}
