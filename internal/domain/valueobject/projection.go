package valueobject

import (
	"time"

	"github.com/google/uuid"
)

// OccurrenceInstance is one expected due date of a recurring expense.
type OccurrenceInstance struct {
	RecurringExpenseID uuid.UUID
	Name               string
	DueDate            time.Time
	AmountCents        int64
}

// CondensedExpenseRow collapses one or more occurrences of the same expense
// within a display bucket into a single row. AllOccurrences retains the raw
// instances for drill-down.
type CondensedExpenseRow struct {
	RecurringExpenseID uuid.UUID
	OccurrenceCount    int
	CondensedLabel     string
	TotalAmountCents   int64
	AllOccurrences     []OccurrenceInstance
}

// CondensedTimelineGroup is one calendar bucket of the projection timeline.
type CondensedTimelineGroup struct {
	Label            string
	Window           PeriodWindow
	TotalAmountCents int64
	IsPast           bool
	Expenses         []CondensedExpenseRow
}

// MonthCashFlow summarizes expected versus matched amounts for one calendar month.
type MonthCashFlow struct {
	PaidCents      int64
	TotalCents     int64
	RemainingCents int64
	PercentPaid    float64
}

// NextMonthCashFlow carries the expected total for the following month.
type NextMonthCashFlow struct {
	TotalCents int64
}

// CashFlowSummary is the paid/remaining/shortfall view for the current month.
type CashFlowSummary struct {
	ThisMonth      MonthCashFlow
	NextMonth      NextMonthCashFlow
	ShortfallCents int64
}
