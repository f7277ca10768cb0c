package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
)

func newTestCache(t *testing.T) (*redisSummaryCache, *miniredis.Miniredis) {
	t.Helper()
	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mini.Close)

	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	return &redisSummaryCache{client: client, ttl: time.Hour}, mini
}

func sampleSummary() *valueobject.CashFlowSummary {
	return &valueobject.CashFlowSummary{
		ThisMonth: valueobject.MonthCashFlow{
			PaidCents:      30000,
			TotalCents:     50000,
			RemainingCents: 20000,
			PercentPaid:    60,
		},
		NextMonth:      valueobject.NextMonthCashFlow{TotalCents: 50000},
		ShortfallCents: 20000,
	}
}

func TestRedisSummaryCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	userID := uuid.New()
	month := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	if _, ok, err := c.GetCashFlow(context.Background(), userID, month); err != nil || ok {
		t.Fatalf("empty cache hit: ok=%v err=%v", ok, err)
	}

	if err := c.SetCashFlow(context.Background(), userID, month, sampleSummary()); err != nil {
		t.Fatalf("SetCashFlow() error = %v", err)
	}

	got, ok, err := c.GetCashFlow(context.Background(), userID, month)
	if err != nil || !ok {
		t.Fatalf("GetCashFlow() ok=%v err=%v", ok, err)
	}
	if got.ThisMonth.RemainingCents != 20000 || got.ShortfallCents != 20000 {
		t.Errorf("round trip lost fields: %+v", got)
	}

	// A different day in the same month resolves to the same entry.
	if _, ok, _ := c.GetCashFlow(context.Background(), userID, month.AddDate(0, 0, 10)); !ok {
		t.Error("same-month lookup missed")
	}
	// The next month is a separate entry.
	if _, ok, _ := c.GetCashFlow(context.Background(), userID, month.AddDate(0, 1, 0)); ok {
		t.Error("next-month lookup hit")
	}
}

func TestRedisSummaryCache_InvalidateDropsAllMonths(t *testing.T) {
	c, _ := newTestCache(t)
	userID := uuid.New()
	other := uuid.New()
	march := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	april := march.AddDate(0, 1, 0)

	for _, m := range []time.Time{march, april} {
		if err := c.SetCashFlow(context.Background(), userID, m, sampleSummary()); err != nil {
			t.Fatalf("SetCashFlow() error = %v", err)
		}
	}
	if err := c.SetCashFlow(context.Background(), other, march, sampleSummary()); err != nil {
		t.Fatalf("SetCashFlow() error = %v", err)
	}

	if err := c.Invalidate(context.Background(), userID); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}

	for _, m := range []time.Time{march, april} {
		if _, ok, _ := c.GetCashFlow(context.Background(), userID, m); ok {
			t.Errorf("entry for %v survived invalidation", m.Month())
		}
	}
	if _, ok, _ := c.GetCashFlow(context.Background(), other, march); !ok {
		t.Error("other user's entry was invalidated")
	}
}

func TestRedisSummaryCache_Expiry(t *testing.T) {
	c, mini := newTestCache(t)
	userID := uuid.New()
	month := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	if err := c.SetCashFlow(context.Background(), userID, month, sampleSummary()); err != nil {
		t.Fatalf("SetCashFlow() error = %v", err)
	}
	mini.FastForward(2 * time.Hour)

	if _, ok, _ := c.GetCashFlow(context.Background(), userID, month); ok {
		t.Error("entry survived past its TTL")
	}
}
