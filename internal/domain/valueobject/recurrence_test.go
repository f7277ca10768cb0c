package valueobject

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/billtrack/recurring-engine/internal/domain/error"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStepFromAnchor_ClampsDayOfMonth(t *testing.T) {
	anchor := date(2026, time.January, 31)

	t.Run("one step lands on end of February", func(t *testing.T) {
		got, err := StepFromAnchor(anchor, RecurrenceMonthly, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(date(2026, time.February, 28)) {
			t.Errorf("expected Feb 28, got %v", got)
		}
	})

	t.Run("leap year lands on Feb 29", func(t *testing.T) {
		got, _ := StepFromAnchor(date(2028, time.January, 31), RecurrenceMonthly, 1)
		if !got.Equal(date(2028, time.February, 29)) {
			t.Errorf("expected Feb 29, got %v", got)
		}
	})

	t.Run("two steps recover the 31st", func(t *testing.T) {
		got, _ := StepFromAnchor(anchor, RecurrenceMonthly, 2)
		if !got.Equal(date(2026, time.March, 31)) {
			t.Errorf("expected Mar 31, got %v", got)
		}
	})
}

func TestStepFromAnchor_NoDriftOverTwelveSteps(t *testing.T) {
	// Stepping N intervals directly from a Jan 31 anchor must visit the last
	// day of every short month and the 31st of every long one, never the 1st
	// of the following month.
	anchor := date(2026, time.January, 31)
	expectedDays := map[time.Month]int{
		time.February: 28, time.March: 31, time.April: 30, time.May: 31,
		time.June: 30, time.July: 31, time.August: 31, time.September: 30,
		time.October: 31, time.November: 30, time.December: 31, time.January: 31,
	}

	for n := 1; n <= 12; n++ {
		got, err := StepFromAnchor(anchor, RecurrenceMonthly, n)
		if err != nil {
			t.Fatalf("step %d: unexpected error: %v", n, err)
		}
		if got.Day() != expectedDays[got.Month()] {
			t.Errorf("step %d: expected day %d of %v, got %v", n, expectedDays[got.Month()], got.Month(), got)
		}
	}
}

func TestStepFromAnchor_BackwardAndNonMonthly(t *testing.T) {
	if got, _ := StepFromAnchor(date(2026, time.March, 31), RecurrenceMonthly, -1); !got.Equal(date(2026, time.February, 28)) {
		t.Errorf("expected Feb 28, got %v", got)
	}
	if got, _ := StepFromAnchor(date(2026, time.March, 2), RecurrenceWeekly, 3); !got.Equal(date(2026, time.March, 23)) {
		t.Errorf("expected Mar 23, got %v", got)
	}
	if got, _ := StepFromAnchor(date(2026, time.March, 2), RecurrenceFortnightly, -2); !got.Equal(date(2026, time.February, 2)) {
		t.Errorf("expected Feb 2, got %v", got)
	}
	if got, _ := StepFromAnchor(date(2024, time.February, 29), RecurrenceYearly, 1); !got.Equal(date(2025, time.February, 28)) {
		t.Errorf("expected Feb 28 2025, got %v", got)
	}
}

func TestStepFromAnchor_InvalidType(t *testing.T) {
	_, err := StepFromAnchor(time.Now(), RecurrenceType("biannual"), 1)
	if !errors.Is(err, domainerror.ErrInvalidRecurrenceType) {
		t.Errorf("expected ErrInvalidRecurrenceType, got %v", err)
	}
}

func TestEffectiveWindow_ExpandsNarrowWindowsForMonthlyCycles(t *testing.T) {
	loc := time.UTC
	narrow := PeriodWindow{Start: date(2026, time.February, 1), End: date(2026, time.February, 14)}

	expanded := EffectiveWindow(RecurrenceMonthly, narrow)
	if expanded.Start.Day() != 1 || expanded.End.Day() != 28 {
		t.Errorf("expected full February, got [%v,%v]", expanded.Start, expanded.End)
	}

	// Weekly cycles keep narrow windows as-is.
	same := EffectiveWindow(RecurrenceWeekly, narrow)
	if !same.Start.Equal(narrow.Start) || !same.End.Equal(narrow.End) {
		t.Errorf("expected unchanged window, got [%v,%v]", same.Start, same.End)
	}

	// Windows of 28+ days are never expanded.
	month := MonthWindow(date(2026, time.February, 1), loc)
	if got := EffectiveWindow(RecurrenceQuarterly, month); !got.Start.Equal(month.Start) || !got.End.Equal(month.End) {
		t.Errorf("expected unchanged month window, got [%v,%v]", got.Start, got.End)
	}
}

func TestCountOccurrences(t *testing.T) {
	t.Run("monthly bill in fortnightly window counts via expansion", func(t *testing.T) {
		// Fortnightly budget window days 1-14, bill due on the 20th of the
		// same month: the expanded month must still see it.
		window := PeriodWindow{Start: date(2026, time.February, 1), End: date(2026, time.February, 14)}
		count, err := CountOccurrences(date(2026, time.February, 20), RecurrenceMonthly, window)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 occurrence, got %d", count)
		}
	})

	t.Run("weekly bill in a month", func(t *testing.T) {
		window := PeriodWindow{Start: date(2026, time.March, 1), End: date(2026, time.March, 31)}
		count, err := CountOccurrences(date(2026, time.March, 2), RecurrenceWeekly, window)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Mar 2, 9, 16, 23, 30.
		if count != 5 {
			t.Errorf("expected 5 occurrences, got %d", count)
		}
	})

	t.Run("anchor far before the window", func(t *testing.T) {
		window := PeriodWindow{Start: date(2026, time.June, 1), End: date(2026, time.June, 30)}
		count, err := CountOccurrences(date(2024, time.January, 31), RecurrenceMonthly, window)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 occurrence, got %d", count)
		}
	})

	t.Run("anchor after the window counts backward", func(t *testing.T) {
		window := PeriodWindow{Start: date(2026, time.January, 1), End: date(2026, time.January, 31)}
		count, err := CountOccurrences(date(2026, time.June, 15), RecurrenceMonthly, window)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 occurrence, got %d", count)
		}
	})

	t.Run("one-time counts only when the anchor is inside", func(t *testing.T) {
		window := PeriodWindow{Start: date(2026, time.April, 1), End: date(2026, time.April, 30)}
		if count, _ := CountOccurrences(date(2026, time.April, 10), RecurrenceOneTime, window); count != 1 {
			t.Errorf("expected 1, got %d", count)
		}
		if count, _ := CountOccurrences(date(2026, time.May, 10), RecurrenceOneTime, window); count != 0 {
			t.Errorf("expected 0, got %d", count)
		}
	})

	t.Run("irregular behaves like one-time", func(t *testing.T) {
		window := PeriodWindow{Start: date(2026, time.April, 1), End: date(2026, time.April, 30)}
		if count, _ := CountOccurrences(date(2026, time.April, 10), RecurrenceIrregular, window); count != 1 {
			t.Errorf("expected 1, got %d", count)
		}
	})

	t.Run("quarterly over a year", func(t *testing.T) {
		window := PeriodWindow{Start: date(2026, time.January, 1), End: date(2026, time.December, 31)}
		count, err := CountOccurrences(date(2026, time.January, 31), RecurrenceQuarterly, window)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Jan 31, Apr 30, Jul 31, Oct 31.
		if count != 4 {
			t.Errorf("expected 4 occurrences, got %d", count)
		}
	})

	t.Run("invalid recurrence type", func(t *testing.T) {
		window := PeriodWindow{Start: date(2026, time.January, 1), End: date(2026, time.January, 31)}
		_, err := CountOccurrences(date(2026, time.January, 1), RecurrenceType("sometimes"), window)
		if !errors.Is(err, domainerror.ErrInvalidRecurrenceType) {
			t.Errorf("expected ErrInvalidRecurrenceType, got %v", err)
		}
	})
}
