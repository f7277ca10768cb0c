// Package projection contains forward-timeline and cash-flow use cases.
package projection

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	domainerror "github.com/billtrack/recurring-engine/internal/domain/error"
	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
)

// DisplayMode controls whether repeated occurrences of an expense within one
// timeline bucket collapse into a single row.
type DisplayMode string

const (
	DisplayCondensed  DisplayMode = "condensed"
	DisplayIndividual DisplayMode = "individual"
)

// IsValid reports whether the display mode is supported.
func (m DisplayMode) IsValid() bool {
	return m == DisplayCondensed || m == DisplayIndividual
}

// Condense collapses occurrences of the same expense into one row per
// expense. A row with more than one occurrence gets the label
// "<name> ×<count>"; single occurrences keep the plain name. Rows come back
// ordered by earliest due date, then name. Condensing already-condensed input
// (one occurrence per expense) yields the same rows, so the operation is
// idempotent.
func Condense(occurrences []valueobject.OccurrenceInstance, mode DisplayMode) ([]valueobject.CondensedExpenseRow, error) {
	if !mode.IsValid() {
		return nil, domainerror.NewProjectionError(
			domainerror.ErrCodeInvalidDisplayMode,
			fmt.Sprintf("unsupported display mode %q", mode),
			domainerror.ErrInvalidDisplayMode,
		)
	}

	if mode == DisplayIndividual {
		rows := make([]valueobject.CondensedExpenseRow, 0, len(occurrences))
		for _, occ := range occurrences {
			rows = append(rows, valueobject.CondensedExpenseRow{
				RecurringExpenseID: occ.RecurringExpenseID,
				OccurrenceCount:    1,
				CondensedLabel:     occ.Name,
				TotalAmountCents:   occ.AmountCents,
				AllOccurrences:     []valueobject.OccurrenceInstance{occ},
			})
		}
		sortRows(rows)
		return rows, nil
	}

	byExpense := make(map[uuid.UUID]*valueobject.CondensedExpenseRow)
	for _, occ := range occurrences {
		row, ok := byExpense[occ.RecurringExpenseID]
		if !ok {
			row = &valueobject.CondensedExpenseRow{RecurringExpenseID: occ.RecurringExpenseID}
			byExpense[occ.RecurringExpenseID] = row
		}
		row.OccurrenceCount++
		row.TotalAmountCents += occ.AmountCents
		row.AllOccurrences = append(row.AllOccurrences, occ)
	}

	rows := make([]valueobject.CondensedExpenseRow, 0, len(byExpense))
	for _, row := range byExpense {
		sort.Slice(row.AllOccurrences, func(i, j int) bool {
			return row.AllOccurrences[i].DueDate.Before(row.AllOccurrences[j].DueDate)
		})
		name := row.AllOccurrences[0].Name
		if row.OccurrenceCount > 1 {
			row.CondensedLabel = fmt.Sprintf("%s ×%d", name, row.OccurrenceCount)
		} else {
			row.CondensedLabel = name
		}
		rows = append(rows, *row)
	}
	sortRows(rows)
	return rows, nil
}

func sortRows(rows []valueobject.CondensedExpenseRow) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].AllOccurrences[0], rows[j].AllOccurrences[0]
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		return a.Name < b.Name
	})
}
