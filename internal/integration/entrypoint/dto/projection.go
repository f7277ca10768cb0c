package dto

import (
	"time"

	"github.com/billtrack/recurring-engine/internal/application/usecase/projection"
	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
)

// OccurrenceDTO represents one expected due date.
type OccurrenceDTO struct {
	RecurringExpenseID string    `json:"recurring_expense_id"`
	Name               string    `json:"name"`
	DueDate            time.Time `json:"due_date"`
	AmountCents        int64     `json:"amount_cents"`
}

// CondensedRowDTO represents a condensed expense row inside a timeline bucket.
type CondensedRowDTO struct {
	RecurringExpenseID string          `json:"recurring_expense_id"`
	OccurrenceCount    int             `json:"occurrence_count"`
	Label              string          `json:"label"`
	TotalAmountCents   int64           `json:"total_amount_cents"`
	Occurrences        []OccurrenceDTO `json:"occurrences"`
}

// TimelineGroupDTO represents one bucket of the forward timeline.
type TimelineGroupDTO struct {
	Label            string            `json:"label"`
	StartDate        string            `json:"start_date"`
	EndDate          string            `json:"end_date"`
	TotalAmountCents int64             `json:"total_amount_cents"`
	IsPast           bool              `json:"is_past"`
	Expenses         []CondensedRowDTO `json:"expenses"`
}

// UpcomingResponse represents the forward timeline.
type UpcomingResponse struct {
	Groups []TimelineGroupDTO `json:"groups"`
}

// ToTimelineGroupDTO converts a timeline group to its response shape.
func ToTimelineGroupDTO(group valueobject.CondensedTimelineGroup) TimelineGroupDTO {
	rows := make([]CondensedRowDTO, len(group.Expenses))
	for i, row := range group.Expenses {
		occurrences := make([]OccurrenceDTO, len(row.AllOccurrences))
		for j, occ := range row.AllOccurrences {
			occurrences[j] = OccurrenceDTO{
				RecurringExpenseID: occ.RecurringExpenseID.String(),
				Name:               occ.Name,
				DueDate:            occ.DueDate,
				AmountCents:        occ.AmountCents,
			}
		}
		rows[i] = CondensedRowDTO{
			RecurringExpenseID: row.RecurringExpenseID.String(),
			OccurrenceCount:    row.OccurrenceCount,
			Label:              row.CondensedLabel,
			TotalAmountCents:   row.TotalAmountCents,
			Occurrences:        occurrences,
		}
	}

	return TimelineGroupDTO{
		Label:            group.Label,
		StartDate:        group.Window.Start.Format("2006-01-02"),
		EndDate:          group.Window.End.Format("2006-01-02"),
		TotalAmountCents: group.TotalAmountCents,
		IsPast:           group.IsPast,
		Expenses:         rows,
	}
}

// ExpensePeriodStatusDTO represents one expense's expected-versus-matched row.
type ExpensePeriodStatusDTO struct {
	Expense       RecurringExpenseDTO  `json:"expense"`
	ExpectedCount int                  `json:"expected_count"`
	MatchedCount  int                  `json:"matched_count"`
	FullyCovered  bool                 `json:"fully_covered"`
	PaidInstances []MatchedInstanceDTO `json:"paid_instances"`
}

// PeriodStatusResponse represents the period view.
type PeriodStatusResponse struct {
	Label     string                   `json:"label"`
	StartDate string                   `json:"start_date"`
	EndDate   string                   `json:"end_date"`
	Expenses  []ExpensePeriodStatusDTO `json:"expenses"`
}

// ToPeriodStatusResponse converts the period view to its response shape.
func ToPeriodStatusResponse(output *projection.GetPeriodStatusOutput) PeriodStatusResponse {
	rows := make([]ExpensePeriodStatusDTO, len(output.Expenses))
	for i, status := range output.Expenses {
		paid := make([]MatchedInstanceDTO, len(status.PaidInstances))
		for j, instance := range status.PaidInstances {
			paid[j] = ToMatchedInstanceDTO(instance)
		}
		rows[i] = ExpensePeriodStatusDTO{
			Expense:       ToRecurringExpenseDTO(status.Expense),
			ExpectedCount: status.ExpectedCount,
			MatchedCount:  status.MatchedCount,
			FullyCovered:  status.FullyCovered,
			PaidInstances: paid,
		}
	}

	return PeriodStatusResponse{
		Label:     output.Window.Label(),
		StartDate: output.Window.Start.Format("2006-01-02"),
		EndDate:   output.Window.End.Format("2006-01-02"),
		Expenses:  rows,
	}
}

// CashFlowResponse represents the cash-flow summary.
type CashFlowResponse struct {
	ThisMonth struct {
		PaidCents      int64   `json:"paid_cents"`
		TotalCents     int64   `json:"total_cents"`
		RemainingCents int64   `json:"remaining_cents"`
		PercentPaid    float64 `json:"percent_paid"`
	} `json:"this_month"`
	NextMonth struct {
		TotalCents int64 `json:"total_cents"`
	} `json:"next_month"`
	ShortfallCents int64 `json:"shortfall_cents"`
	Cached         bool  `json:"cached"`
}

// ToCashFlowResponse converts a summary to its response shape.
func ToCashFlowResponse(summary *valueobject.CashFlowSummary, cached bool) CashFlowResponse {
	var response CashFlowResponse
	response.ThisMonth.PaidCents = summary.ThisMonth.PaidCents
	response.ThisMonth.TotalCents = summary.ThisMonth.TotalCents
	response.ThisMonth.RemainingCents = summary.ThisMonth.RemainingCents
	response.ThisMonth.PercentPaid = summary.ThisMonth.PercentPaid
	response.NextMonth.TotalCents = summary.NextMonth.TotalCents
	response.ShortfallCents = summary.ShortfallCents
	response.Cached = cached
	return response
}
