package scheduler

import "time"

// DateOf truncates t to midnight UTC so calendar dates compare by day
// regardless of the wall-clock component of the input.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// HolidaySet holds non-working dates, keyed by normalized date.
type HolidaySet map[time.Time]struct{}

// NewHolidaySet builds a holiday set from arbitrary timestamps.
func NewHolidaySet(dates ...time.Time) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[DateOf(d)] = struct{}{}
	}
	return set
}

// Contains reports whether date falls on a holiday.
func (h HolidaySet) Contains(date time.Time) bool {
	_, ok := h[DateOf(date)]
	return ok
}

// IsBusinessDay reports whether date is a weekday outside the holiday set.
func IsBusinessDay(date time.Time, holidays HolidaySet) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !holidays.Contains(date)
}

// Window is the inclusive calendar range a course may occupy.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow normalizes both bounds to calendar dates.
func NewWindow(start, end time.Time) Window {
	return Window{Start: DateOf(start), End: DateOf(end)}
}

// WeekIndex is the zero-based count of whole weeks between the window
// start and date. Biweekly placement parity is anchored to it.
func (w Window) WeekIndex(date time.Time) int {
	days := int(DateOf(date).Sub(DateOf(w.Start)).Hours() / 24)
	return days / 7
}
