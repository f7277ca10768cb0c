package valueobject

import (
	"fmt"
	"time"

	domainerror "github.com/billtrack/recurring-engine/internal/domain/error"
)

// RecurrenceType classifies how often a recurring expense is due.
type RecurrenceType string

const (
	RecurrenceWeekly      RecurrenceType = "weekly"
	RecurrenceFortnightly RecurrenceType = "fortnightly"
	RecurrenceMonthly     RecurrenceType = "monthly"
	RecurrenceQuarterly   RecurrenceType = "quarterly"
	RecurrenceYearly      RecurrenceType = "yearly"
	RecurrenceOneTime     RecurrenceType = "one-time"
	RecurrenceIrregular   RecurrenceType = "irregular"
)

// IsValid reports whether the recurrence type is a known classification.
func (rt RecurrenceType) IsValid() bool {
	switch rt {
	case RecurrenceWeekly, RecurrenceFortnightly, RecurrenceMonthly,
		RecurrenceQuarterly, RecurrenceYearly, RecurrenceOneTime, RecurrenceIrregular:
		return true
	}
	return false
}

// IsCyclical reports whether the type repeats on a known interval.
func (rt RecurrenceType) IsCyclical() bool {
	switch rt {
	case RecurrenceWeekly, RecurrenceFortnightly, RecurrenceMonthly,
		RecurrenceQuarterly, RecurrenceYearly:
		return true
	}
	return false
}

// IntervalDays returns the nominal cycle length in days, used for timing
// dispersion checks. Calendar-month cycles use their nominal lengths.
func (rt RecurrenceType) IntervalDays() float64 {
	switch rt {
	case RecurrenceWeekly:
		return 7
	case RecurrenceFortnightly:
		return 14
	case RecurrenceMonthly:
		return 30
	case RecurrenceQuarterly:
		return 91
	case RecurrenceYearly:
		return 365
	}
	return 0
}

// StepFromAnchor returns occurrence n of a recurrence, computed directly from
// the anchor date (n may be negative for past occurrences). Day-based cycles
// advance by whole weeks; calendar-month cycles advance by whole months with
// the anchor's day-of-month clamped to the target month's length, so Jan 31
// stepped monthly visits Feb 28/29 and then Mar 31. Because every occurrence
// derives from the anchor rather than from the previous occurrence, the clamp
// never compounds into drift. One-time and irregular expenses have a single
// occurrence: the anchor itself.
func StepFromAnchor(anchor time.Time, rt RecurrenceType, n int) (time.Time, error) {
	switch rt {
	case RecurrenceWeekly:
		return anchor.AddDate(0, 0, 7*n), nil
	case RecurrenceFortnightly:
		return anchor.AddDate(0, 0, 14*n), nil
	case RecurrenceMonthly:
		return addMonthsClamped(anchor, n), nil
	case RecurrenceQuarterly:
		return addMonthsClamped(anchor, 3*n), nil
	case RecurrenceYearly:
		return addMonthsClamped(anchor, 12*n), nil
	case RecurrenceOneTime, RecurrenceIrregular:
		return anchor, nil
	}
	return time.Time{}, domainerror.NewRecurringError(
		domainerror.ErrCodeInvalidRecurrenceType,
		fmt.Sprintf("unsupported recurrence type %q", rt),
		domainerror.ErrInvalidRecurrenceType,
	)
}

// EffectiveWindow applies the window-expansion rule: a window shorter than 28
// days cannot faithfully report expected occurrences of a monthly-or-longer
// cycle (the due date may fall just outside the narrow slice but inside the
// same month), so such windows are replaced with the full calendar month
// containing the window start. Shorter cycles keep the window as-is.
func EffectiveWindow(rt RecurrenceType, w PeriodWindow) PeriodWindow {
	switch rt {
	case RecurrenceMonthly, RecurrenceQuarterly, RecurrenceYearly:
		if w.Days() < 28 {
			return MonthWindow(w.Start, w.Start.Location())
		}
	}
	return w
}

// OccurrencesInWindow returns the civil due dates of a recurrence anchored
// at anchor that fall inside the window, after window expansion, in ascending
// order. One-time and irregular expenses yield at most the anchor itself.
func OccurrencesInWindow(anchor time.Time, rt RecurrenceType, w PeriodWindow) ([]time.Time, error) {
	if !rt.IsValid() {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurrenceType,
			fmt.Sprintf("unsupported recurrence type %q", rt),
			domainerror.ErrInvalidRecurrenceType,
		)
	}

	effective := EffectiveWindow(rt, w)
	loc := effective.Start.Location()

	if !rt.IsCyclical() {
		if effective.Contains(anchor) {
			return []time.Time{DayOf(anchor.In(loc))}, nil
		}
		return nil, nil
	}

	var before, after []time.Time

	// Backward from the anchor (n = -1, -2, ...) until before the window start.
	for n := -1; ; n-- {
		occ, err := StepFromAnchor(anchor, rt, n)
		if err != nil {
			return nil, err
		}
		day := DayOf(occ.In(loc))
		if day.Before(effective.Start) {
			break
		}
		if !day.After(effective.End) {
			before = append(before, day)
		}
	}
	// Collected newest-first; flip into ascending order.
	for i, j := 0, len(before)-1; i < j; i, j = i+1, j-1 {
		before[i], before[j] = before[j], before[i]
	}

	// Forward from the anchor (n = 0, 1, 2, ...) until past the window end.
	for n := 0; ; n++ {
		occ, err := StepFromAnchor(anchor, rt, n)
		if err != nil {
			return nil, err
		}
		day := DayOf(occ.In(loc))
		if day.After(effective.End) {
			break
		}
		if !day.Before(effective.Start) {
			after = append(after, day)
		}
	}

	return append(before, after...), nil
}

// CountOccurrences returns how many occurrences of a recurrence anchored at
// anchor fall inside the window, after window expansion.
func CountOccurrences(anchor time.Time, rt RecurrenceType, w PeriodWindow) (int, error) {
	occs, err := OccurrencesInWindow(anchor, rt, w)
	if err != nil {
		return 0, err
	}
	return len(occs), nil
}

// addMonthsClamped advances t by the given number of calendar months,
// clamping the day-of-month to the target month's length instead of letting
// the date roll over into the following month.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month, 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	if last := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	hour, min, sec := t.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}
