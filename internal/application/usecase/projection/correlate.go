package projection

import (
	"github.com/billtrack/recurring-engine/internal/domain/entity"
	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
)

// MatchedInWindow returns the matched instances whose transaction occurrence
// date falls inside the effective window for the expense's recurrence type.
// Expansion mirrors the occurrence counter, so expected and matched counts
// are always compared over the same window.
func MatchedInWindow(expense *entity.RecurringExpense, matches []*entity.MatchedInstance, w valueobject.PeriodWindow) []*entity.MatchedInstance {
	effective := valueobject.EffectiveWindow(expense.RecurrenceType, w)

	var inside []*entity.MatchedInstance
	for _, m := range matches {
		if m.RecurringExpenseID != expense.ID {
			continue
		}
		if effective.Contains(m.Transaction.OccurredAt()) {
			inside = append(inside, m)
		}
	}
	return inside
}

// MatchedCount counts the expense's matches inside the effective window.
func MatchedCount(expense *entity.RecurringExpense, matches []*entity.MatchedInstance, w valueobject.PeriodWindow) int {
	return len(MatchedInWindow(expense, matches, w))
}

// FullyCovered reports whether every expected occurrence of the expense in
// the window has a matched payment.
func FullyCovered(expense *entity.RecurringExpense, matches []*entity.MatchedInstance, w valueobject.PeriodWindow) (bool, error) {
	expected, err := valueobject.CountOccurrences(expense.AnchorDueDate, expense.RecurrenceType, w)
	if err != nil {
		return false, err
	}
	return MatchedCount(expense, matches, w) >= expected, nil
}
