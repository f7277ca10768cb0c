package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
)

// SummaryCache caches computed cash-flow summaries keyed by user and month.
// Implementations must treat the cache as best-effort: a miss or an error
// only costs a recomputation.
type SummaryCache interface {
	// GetCashFlow returns the cached summary for the month containing month,
	// and whether one was present.
	GetCashFlow(ctx context.Context, userID uuid.UUID, month time.Time) (*valueobject.CashFlowSummary, bool, error)

	// SetCashFlow stores the summary for the month containing month.
	SetCashFlow(ctx context.Context, userID uuid.UUID, month time.Time, summary *valueobject.CashFlowSummary) error

	// Invalidate drops any cached summaries for the user.
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
