package projection

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/application/adapter"
	domainerror "github.com/billtrack/recurring-engine/internal/domain/error"
	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
)

// GetUpcomingInput represents the input for building the forward timeline.
type GetUpcomingInput struct {
	UserID        uuid.UUID
	HorizonMonths int
	Granularity   valueobject.PeriodType
	Mode          DisplayMode
}

// GetUpcomingOutput represents the forward timeline.
type GetUpcomingOutput struct {
	Groups []valueobject.CondensedTimelineGroup
}

// GetUpcomingUseCase builds the bucketed forward timeline of expected
// occurrences from the start of the current month to the projection horizon.
type GetUpcomingUseCase struct {
	recurringRepo adapter.RecurringExpenseRepository
	loc           *time.Location
	now           func() time.Time
}

// NewGetUpcomingUseCase creates a new GetUpcomingUseCase instance.
func NewGetUpcomingUseCase(recurringRepo adapter.RecurringExpenseRepository, loc *time.Location) *GetUpcomingUseCase {
	return &GetUpcomingUseCase{
		recurringRepo: recurringRepo,
		loc:           loc,
		now:           time.Now,
	}
}

// Execute builds the timeline. The range starts at the first day of the
// current month (so sub-monthly buckets earlier in the month come back marked
// past) and ends HorizonMonths calendar months after today. Occurrences are
// enumerated once per expense over the whole range and then assigned to
// buckets, so a bucket never reports a due date that belongs to a neighbour.
func (uc *GetUpcomingUseCase) Execute(ctx context.Context, input GetUpcomingInput) (*GetUpcomingOutput, error) {
	if input.HorizonMonths <= 0 {
		return nil, domainerror.NewProjectionError(
			domainerror.ErrCodeInvalidHorizon,
			fmt.Sprintf("horizon must be positive, got %d", input.HorizonMonths),
			domainerror.ErrInvalidHorizon,
		)
	}
	if !input.Granularity.IsValid() {
		return nil, domainerror.NewProjectionError(
			domainerror.ErrCodeInvalidGranularity,
			fmt.Sprintf("unsupported granularity %q", input.Granularity),
			domainerror.ErrInvalidGranularity,
		)
	}
	if !input.Mode.IsValid() {
		return nil, domainerror.NewProjectionError(
			domainerror.ErrCodeInvalidDisplayMode,
			fmt.Sprintf("unsupported display mode %q", input.Mode),
			domainerror.ErrInvalidDisplayMode,
		)
	}

	expenses, err := uc.recurringRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	today := valueobject.DayOf(uc.now().In(uc.loc))
	rangeWindow := valueobject.PeriodWindow{
		Start: valueobject.MonthWindow(today, uc.loc).Start,
		End:   today.AddDate(0, input.HorizonMonths, 0),
	}

	var all []valueobject.OccurrenceInstance
	for _, expense := range expenses {
		dates, err := valueobject.OccurrencesInWindow(expense.AnchorDueDate, expense.RecurrenceType, rangeWindow)
		if err != nil {
			return nil, err
		}
		for _, d := range dates {
			all = append(all, valueobject.OccurrenceInstance{
				RecurringExpenseID: expense.ID,
				Name:               expense.Name,
				DueDate:            d,
				AmountCents:        expense.ExpectedAmountCents,
			})
		}
	}

	var groups []valueobject.CondensedTimelineGroup
	for cursor := rangeWindow.Start; !cursor.After(rangeWindow.End); {
		window, err := valueobject.PeriodBounds(cursor, input.Granularity, uc.loc)
		if err != nil {
			return nil, err
		}

		var bucket []valueobject.OccurrenceInstance
		var total int64
		for _, occ := range all {
			if window.Contains(occ.DueDate) {
				bucket = append(bucket, occ)
				total += occ.AmountCents
			}
		}

		rows, err := Condense(bucket, input.Mode)
		if err != nil {
			return nil, err
		}

		groups = append(groups, valueobject.CondensedTimelineGroup{
			Label:            window.Label(),
			Window:           window,
			TotalAmountCents: total,
			IsPast:           window.End.Before(today),
			Expenses:         rows,
		})

		cursor = window.End.AddDate(0, 0, 1)
	}

	return &GetUpcomingOutput{Groups: groups}, nil
}
