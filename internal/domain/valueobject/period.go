// Package valueobject contains domain value objects for the recurring-expense engine.
package valueobject

import (
	"fmt"
	"time"

	domainerror "github.com/billtrack/recurring-engine/internal/domain/error"
)

// PeriodType represents the budgeting period granularity.
type PeriodType string

const (
	PeriodWeekly      PeriodType = "weekly"
	PeriodFortnightly PeriodType = "fortnightly"
	PeriodMonthly     PeriodType = "monthly"
)

// IsValid reports whether the period type is one of the supported granularities.
func (p PeriodType) IsValid() bool {
	switch p {
	case PeriodWeekly, PeriodFortnightly, PeriodMonthly:
		return true
	}
	return false
}

// PeriodWindow is an inclusive date range in the budgeting timezone.
// Start and End are civil dates at midnight; End is the last day of the window.
type PeriodWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the civil date of t falls inside the window.
// The instant is converted to the window's timezone before comparing, so the
// same transaction always lands in the same window regardless of host clock.
func (w PeriodWindow) Contains(t time.Time) bool {
	d := DayOf(t.In(w.Start.Location()))
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days returns the number of civil days the window spans, inclusive.
func (w PeriodWindow) Days() int {
	// Rounding absorbs DST shifts of up to an hour in either direction.
	return int(w.End.Sub(w.Start).Hours()/24+0.5) + 1
}

// Label renders the window for display: "Mar 2026" when it covers a whole
// calendar month, "8-14 Mar 2026" for a sub-monthly slice.
func (w PeriodWindow) Label() string {
	lastDay := daysInMonth(w.Start.Year(), w.Start.Month())
	if w.Start.Day() == 1 && w.End.Day() == lastDay && w.Start.Month() == w.End.Month() {
		return fmt.Sprintf("%s %d", w.Start.Format("Jan"), w.Start.Year())
	}
	return fmt.Sprintf("%d-%d %s %d", w.Start.Day(), w.End.Day(), w.Start.Format("Jan"), w.Start.Year())
}

// DayOf truncates an instant to its civil date, preserving the location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// PeriodBounds computes the period window containing anchor for the given
// period type, in the given timezone. Monthly windows are full calendar
// months. Weekly and fortnightly windows are month-aligned slices (weekly:
// days 1-7, 8-14, 15-21, 22-end; fortnightly: 1-14, 15-end), so the final
// slice of a month absorbs any remainder days and slices always tile the
// month exactly.
func PeriodBounds(anchor time.Time, periodType PeriodType, loc *time.Location) (PeriodWindow, error) {
	local := anchor.In(loc)
	year, month, day := local.Date()
	lastDay := daysInMonth(year, month)

	var startDay, endDay int
	switch periodType {
	case PeriodMonthly:
		startDay, endDay = 1, lastDay
	case PeriodWeekly:
		slice := (day - 1) / 7
		if slice > 3 {
			slice = 3
		}
		startDay = slice*7 + 1
		endDay = startDay + 6
		if slice == 3 {
			endDay = lastDay
		}
	case PeriodFortnightly:
		if day <= 14 {
			startDay, endDay = 1, 14
		} else {
			startDay, endDay = 15, lastDay
		}
	default:
		return PeriodWindow{}, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidPeriodType,
			fmt.Sprintf("unsupported period type %q", periodType),
			domainerror.ErrInvalidPeriodType,
		)
	}

	return PeriodWindow{
		Start: time.Date(year, month, startDay, 0, 0, 0, 0, loc),
		End:   time.Date(year, month, endDay, 0, 0, 0, 0, loc),
	}, nil
}

// MonthWindow returns the full calendar month containing anchor.
func MonthWindow(anchor time.Time, loc *time.Location) PeriodWindow {
	local := anchor.In(loc)
	year, month, _ := local.Date()
	return PeriodWindow{
		Start: time.Date(year, month, 1, 0, 0, 0, 0, loc),
		End:   time.Date(year, month, daysInMonth(year, month), 0, 0, 0, 0, loc),
	}
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
