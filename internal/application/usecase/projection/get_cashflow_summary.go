package projection

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billtrack/recurring-engine/internal/application/adapter"
	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
)

// GetCashFlowSummaryInput represents the input for the cash-flow summary.
type GetCashFlowSummaryInput struct {
	UserID uuid.UUID
}

// GetCashFlowSummaryOutput represents the cash-flow summary result.
type GetCashFlowSummaryOutput struct {
	Summary *valueobject.CashFlowSummary
	Cached  bool
}

// GetCashFlowSummaryUseCase computes the paid/remaining view of the current
// month plus next month's expected total. Results are cached per user+month;
// link and delete operations invalidate the cache.
type GetCashFlowSummaryUseCase struct {
	recurringRepo adapter.RecurringExpenseRepository
	matchedRepo   adapter.MatchedInstanceRepository
	summaryCache  adapter.SummaryCache
	loc           *time.Location
	now           func() time.Time
}

// NewGetCashFlowSummaryUseCase creates a new GetCashFlowSummaryUseCase instance.
func NewGetCashFlowSummaryUseCase(
	recurringRepo adapter.RecurringExpenseRepository,
	matchedRepo adapter.MatchedInstanceRepository,
	summaryCache adapter.SummaryCache,
	loc *time.Location,
) *GetCashFlowSummaryUseCase {
	return &GetCashFlowSummaryUseCase{
		recurringRepo: recurringRepo,
		matchedRepo:   matchedRepo,
		summaryCache:  summaryCache,
		loc:           loc,
		now:           time.Now,
	}
}

// Execute returns the cash-flow summary for the month containing today.
// Amounts are reported as positive magnitudes regardless of the stored sign
// (outflows persist as negative cents). Shortfall equals the remaining
// baseline: every unpaid expected occurrence is money the month still owes.
func (uc *GetCashFlowSummaryUseCase) Execute(ctx context.Context, input GetCashFlowSummaryInput) (*GetCashFlowSummaryOutput, error) {
	today := uc.now().In(uc.loc)

	if uc.summaryCache != nil {
		if cached, ok, err := uc.summaryCache.GetCashFlow(ctx, input.UserID, today); err == nil && ok {
			return &GetCashFlowSummaryOutput{Summary: cached, Cached: true}, nil
		}
	}

	expenses, err := uc.recurringRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	matches, err := uc.matchedRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	thisMonth := valueobject.MonthWindow(today, uc.loc)
	nextMonth := valueobject.MonthWindow(thisMonth.End.AddDate(0, 0, 1), uc.loc)

	var totalCents, paidCents, nextTotalCents int64
	for _, expense := range expenses {
		expected, err := valueobject.CountOccurrences(expense.AnchorDueDate, expense.RecurrenceType, thisMonth)
		if err != nil {
			return nil, err
		}
		totalCents += int64(expected) * absCents(expense.ExpectedAmountCents)

		upcoming, err := valueobject.CountOccurrences(expense.AnchorDueDate, expense.RecurrenceType, nextMonth)
		if err != nil {
			return nil, err
		}
		nextTotalCents += int64(upcoming) * absCents(expense.ExpectedAmountCents)

		for _, m := range MatchedInWindow(expense, matches, thisMonth) {
			paidCents += absCents(m.Transaction.AmountCents)
		}
	}

	remaining := totalCents - paidCents
	if remaining < 0 {
		remaining = 0
	}

	percentPaid := 0.0
	if totalCents > 0 {
		percentPaid, _ = decimal.NewFromInt(paidCents).
			Div(decimal.NewFromInt(totalCents)).
			Mul(decimal.NewFromInt(100)).
			Round(1).
			Float64()
	}

	summary := &valueobject.CashFlowSummary{
		ThisMonth: valueobject.MonthCashFlow{
			PaidCents:      paidCents,
			TotalCents:     totalCents,
			RemainingCents: remaining,
			PercentPaid:    percentPaid,
		},
		NextMonth:      valueobject.NextMonthCashFlow{TotalCents: nextTotalCents},
		ShortfallCents: remaining,
	}

	if uc.summaryCache != nil {
		_ = uc.summaryCache.SetCashFlow(ctx, input.UserID, today, summary)
	}

	return &GetCashFlowSummaryOutput{Summary: summary}, nil
}

func absCents(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
