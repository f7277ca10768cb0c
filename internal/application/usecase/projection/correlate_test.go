package projection

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/domain/entity"
	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
)

func expenseWith(userID uuid.UUID, name string, rt valueobject.RecurrenceType, anchor time.Time, amount int64) *entity.RecurringExpense {
	return entity.NewRecurringExpense(userID, name, name, amount, rt, anchor, 1.0, 3, nil)
}

func matchAt(expense *entity.RecurringExpense, settled time.Time, amount int64) *entity.MatchedInstance {
	tx := entity.TransactionRecord{
		ID:          uuid.New(),
		UserID:      expense.UserID,
		AccountID:   "acc-1",
		Description: expense.Name,
		AmountCents: amount,
		SettledAt:   &settled,
		CreatedAt:   settled,
	}
	return entity.NewManualMatch(expense.UserID, expense.ID, tx)
}

// A monthly bill due the 20th paid on the 20th must count as matched when the
// period view asks about the fortnight of the 1st-14th: both the expected
// count and the match check run over the expanded full-month window.
func TestMatchedCount_WindowExpansionMirrorsCounter(t *testing.T) {
	userID := uuid.New()
	anchor := time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC)
	expense := expenseWith(userID, "Insurance", valueobject.RecurrenceMonthly, anchor, -9900)
	matches := []*entity.MatchedInstance{
		matchAt(expense, time.Date(2026, time.February, 20, 9, 0, 0, 0, time.UTC), -9900),
	}

	window := valueobject.PeriodWindow{
		Start: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC),
	}

	if got := MatchedCount(expense, matches, window); got != 1 {
		t.Fatalf("MatchedCount = %d, want 1 (expanded window)", got)
	}

	expected, err := valueobject.CountOccurrences(expense.AnchorDueDate, expense.RecurrenceType, window)
	if err != nil {
		t.Fatalf("CountOccurrences() error = %v", err)
	}
	if expected != 1 {
		t.Fatalf("expected occurrences = %d, want 1", expected)
	}

	covered, err := FullyCovered(expense, matches, window)
	if err != nil {
		t.Fatalf("FullyCovered() error = %v", err)
	}
	if !covered {
		t.Error("FullyCovered = false, want true")
	}
}

func TestMatchedInWindow_IgnoresOtherExpensesAndOutsideDates(t *testing.T) {
	userID := uuid.New()
	anchor := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	gym := expenseWith(userID, "Gym", valueobject.RecurrenceWeekly, anchor, -2500)
	rent := expenseWith(userID, "Rent", valueobject.RecurrenceMonthly, anchor, -180000)

	matches := []*entity.MatchedInstance{
		matchAt(gym, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), -2500),
		matchAt(gym, time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC), -2500),
		matchAt(rent, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), -180000),
	}

	window := valueobject.MonthWindow(anchor, time.UTC)
	inside := MatchedInWindow(gym, matches, window)
	if len(inside) != 1 {
		t.Fatalf("MatchedInWindow = %d matches, want 1", len(inside))
	}
	if inside[0].RecurringExpenseID != gym.ID {
		t.Error("match belongs to the wrong expense")
	}
}
