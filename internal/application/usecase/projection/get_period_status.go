package projection

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/application/adapter"
	"github.com/billtrack/recurring-engine/internal/domain/entity"
	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
)

// GetPeriodStatusInput represents the input for the expected-versus-matched
// view of one budget period.
type GetPeriodStatusInput struct {
	UserID     uuid.UUID
	Date       time.Time
	PeriodType valueobject.PeriodType
}

// ExpensePeriodStatus is the per-expense row of the period view.
type ExpensePeriodStatus struct {
	Expense       *entity.RecurringExpense
	ExpectedCount int
	MatchedCount  int
	FullyCovered  bool
	PaidInstances []*entity.MatchedInstance
}

// GetPeriodStatusOutput represents the period view.
type GetPeriodStatusOutput struct {
	Window   valueobject.PeriodWindow
	Expenses []ExpensePeriodStatus
}

// GetPeriodStatusUseCase reports expected occurrence counts against matched
// payments for the budget period containing a given date.
type GetPeriodStatusUseCase struct {
	recurringRepo adapter.RecurringExpenseRepository
	matchedRepo   adapter.MatchedInstanceRepository
	loc           *time.Location
}

// NewGetPeriodStatusUseCase creates a new GetPeriodStatusUseCase instance.
func NewGetPeriodStatusUseCase(
	recurringRepo adapter.RecurringExpenseRepository,
	matchedRepo adapter.MatchedInstanceRepository,
	loc *time.Location,
) *GetPeriodStatusUseCase {
	return &GetPeriodStatusUseCase{
		recurringRepo: recurringRepo,
		matchedRepo:   matchedRepo,
		loc:           loc,
	}
}

// Execute computes the period window for the date, then for every expense
// compares expected occurrences (over the effective window) against matched
// payments in the same window. Expenses with neither expected occurrences nor
// matches are left out of the result.
func (uc *GetPeriodStatusUseCase) Execute(ctx context.Context, input GetPeriodStatusInput) (*GetPeriodStatusOutput, error) {
	window, err := valueobject.PeriodBounds(input.Date, input.PeriodType, uc.loc)
	if err != nil {
		return nil, err
	}

	expenses, err := uc.recurringRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	matches, err := uc.matchedRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	rows := make([]ExpensePeriodStatus, 0, len(expenses))
	for _, expense := range expenses {
		expected, err := valueobject.CountOccurrences(expense.AnchorDueDate, expense.RecurrenceType, window)
		if err != nil {
			return nil, err
		}

		paid := MatchedInWindow(expense, matches, window)
		if expected == 0 && len(paid) == 0 {
			continue
		}

		rows = append(rows, ExpensePeriodStatus{
			Expense:       expense,
			ExpectedCount: expected,
			MatchedCount:  len(paid),
			FullyCovered:  len(paid) >= expected,
			PaidInstances: paid,
		})
	}

	return &GetPeriodStatusOutput{Window: window, Expenses: rows}, nil
}
