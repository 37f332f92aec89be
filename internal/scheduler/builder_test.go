package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-03-03 is a Monday.
var windowStart = day(2025, time.March, 3)

func fourTrackSubjects() []Subject {
	return []Subject{
		{Code: "BIO", Name: "Bio Data Analysis", TotalHours: 24},
		{Code: "STAT", Name: "Health Statistics", TotalHours: 20},
		{Code: "ML", Name: "Machine Learning", TotalHours: 64},
		{Code: "PRJ", Name: "Capstone Project", TotalHours: 48},
	}
}

func TestBuilderPacksUnconstrainedSubjects(t *testing.T) {
	window := NewWindow(windowStart, windowStart.AddDate(0, 0, 99))

	result, err := Generate(window, nil, fourTrackSubjects())
	require.NoError(t, err)

	// 156 hours at 8h per business day fills 19 full days plus one morning.
	require.Len(t, result.Entries, 20)
	assert.Empty(t, result.Residual)

	last := result.Entries[len(result.Entries)-1]
	assert.Equal(t, 4, last.Morning.Hours)
	assert.True(t, last.Afternoon.Empty())

	assertConservation(t, result, fourTrackSubjects())
	assertSlotCapacity(t, result)
	assertNoWeekendOrHoliday(t, result, nil)
}

func TestBuilderFallbackWhenPinnedWeekdayNeverOccurs(t *testing.T) {
	subjects := []Subject{
		{Code: "FRI", Name: "Friday Seminar", TotalHours: 8, Weekday: weekdayPtr(time.Friday)},
	}
	// Monday through Thursday: the pin can never be honored.
	window := NewWindow(windowStart, day(2025, time.March, 6))

	result, err := Generate(window, nil, subjects)
	require.NoError(t, err)

	require.Len(t, result.Entries, 1)
	entry := result.Entries[0]
	assert.Equal(t, windowStart, entry.Date, "fallback schedules on day one instead of stalling")
	assert.Equal(t, "FRI", entry.Morning.SubjectCode)
	assert.True(t, entry.Morning.Fallback)
	assert.True(t, entry.Afternoon.Fallback)
	assert.Empty(t, result.Residual)
}

func TestBuilderSkipsWeekendsAndHolidays(t *testing.T) {
	subjects := []Subject{{Code: "A", TotalHours: 16}}
	holidays := NewHolidaySet(day(2025, time.March, 4))
	window := NewWindow(windowStart, windowStart.AddDate(0, 0, 13))

	result, err := Generate(window, holidays, subjects)
	require.NoError(t, err)

	require.Len(t, result.Entries, 2)
	assert.Equal(t, day(2025, time.March, 3), result.Entries[0].Date)
	assert.Equal(t, day(2025, time.March, 5), result.Entries[1].Date, "holiday tuesday is skipped silently")
	assertNoWeekendOrHoliday(t, result, holidays)
}

func TestBuilderCarryContinuesIntoNextMorning(t *testing.T) {
	subjects := []Subject{
		{Code: "A", TotalHours: 4},
		{Code: "B", TotalHours: 12, Weekday: weekdayPtr(time.Friday)},
	}
	window := NewWindow(windowStart, windowStart.AddDate(0, 0, 11))

	result, err := Generate(window, nil, subjects)
	require.NoError(t, err)

	require.Len(t, result.Entries, 2)

	monday := result.Entries[0]
	assert.Equal(t, "A", monday.Morning.SubjectCode)
	assert.Equal(t, "B", monday.Afternoon.SubjectCode, "afternoon switches when the primary finishes at the boundary")

	tuesday := result.Entries[1]
	assert.Equal(t, day(2025, time.March, 4), tuesday.Date)
	assert.Equal(t, "B", tuesday.Morning.SubjectCode, "afternoon starter pre-empts the next morning")
	assert.True(t, tuesday.Morning.Fallback)
	assert.Equal(t, "B", tuesday.Afternoon.SubjectCode)
	assert.Empty(t, result.Residual)
}

func TestBuilderHonorsBiweeklyParity(t *testing.T) {
	subjects := []Subject{
		{Code: "A", TotalHours: 16},
		{Code: "BW", TotalHours: 8, Weekday: weekdayPtr(time.Wednesday), Biweekly: true, WeekOffset: 0},
	}
	window := NewWindow(windowStart, windowStart.AddDate(0, 0, 30))

	result, err := Generate(window, nil, subjects)
	require.NoError(t, err)

	require.Len(t, result.Entries, 3)
	bwEntry := result.Entries[2]
	assert.Equal(t, day(2025, time.March, 5), bwEntry.Date)
	assert.Equal(t, time.Wednesday, bwEntry.Date.Weekday())
	assert.False(t, bwEntry.Morning.Fallback)
	assert.Empty(t, result.Residual)
}

func TestBuilderWindowExhaustionReportsResidual(t *testing.T) {
	subjects := []Subject{{Code: "LONG", TotalHours: 80}}
	window := NewWindow(windowStart, day(2025, time.March, 7))

	result, err := Generate(window, nil, subjects)
	require.NoError(t, err)

	assert.Len(t, result.Entries, 5)
	assert.Equal(t, map[string]int{"LONG": 40}, result.Residual)
	assertConservation(t, result, subjects)
}

func TestBuilderMixedConstraintProperties(t *testing.T) {
	subjects := []Subject{
		{Code: "PY", Name: "Python", TotalHours: 24},
		{Code: "SQL", Name: "Databases", TotalHours: 16, Weekday: weekdayPtr(time.Tuesday)},
		{Code: "BW", Name: "Biweekly Lab", TotalHours: 8, Weekday: weekdayPtr(time.Wednesday), Biweekly: true, WeekOffset: 1},
		{Code: "ML", Name: "Machine Learning", TotalHours: 40},
	}
	holidays := NewHolidaySet(day(2025, time.March, 10))
	window := NewWindow(windowStart, day(2025, time.April, 30))

	result, err := Generate(window, holidays, subjects)
	require.NoError(t, err)

	assert.Empty(t, result.Residual)
	assertConservation(t, result, subjects)
	assertSlotCapacity(t, result)
	assertNoWeekendOrHoliday(t, result, holidays)

	// Biweekly parity holds for every block not placed by a fallback path.
	for _, entry := range result.Entries {
		for _, block := range []SlotAssignment{entry.Morning, entry.Afternoon} {
			if block.SubjectCode != "BW" || block.Fallback {
				continue
			}
			assert.Equal(t, 1, window.WeekIndex(entry.Date)%2,
				"preferred-path biweekly block on %s violates parity", entry.Date.Format("2006-01-02"))
		}
	}

	// Termination bound: never more entries than calendar days in the window.
	assert.LessOrEqual(t, len(result.Entries), 59)
}

func TestBuilderDeterminism(t *testing.T) {
	window := NewWindow(windowStart, windowStart.AddDate(0, 0, 99))
	holidays := NewHolidaySet(day(2025, time.March, 14))

	first, err := Generate(window, holidays, fourTrackSubjects())
	require.NoError(t, err)
	second, err := Generate(window, holidays, fourTrackSubjects())
	require.NoError(t, err)

	assert.Equal(t, first.Entries, second.Entries)
	assert.Equal(t, first.Residual, second.Residual)
}

func TestBuilderConfigErrors(t *testing.T) {
	valid := []Subject{{Code: "A", TotalHours: 8}}

	_, err := Generate(NewWindow(day(2025, time.March, 7), windowStart), nil, valid)
	assert.ErrorIs(t, err, ErrWindowInverted)

	window := NewWindow(windowStart, day(2025, time.March, 7))

	_, err = Generate(window, nil, []Subject{{Code: "A", TotalHours: 0}})
	assert.ErrorIs(t, err, ErrNonPositiveHours)

	_, err = Generate(window, nil, []Subject{{Code: "A", TotalHours: 8, Biweekly: true, WeekOffset: 2}})
	assert.ErrorIs(t, err, ErrInvalidWeekOffset)

	_, err = Generate(window, nil, []Subject{{Code: "A", TotalHours: 8}, {Code: "A", TotalHours: 4}})
	assert.ErrorIs(t, err, ErrDuplicateSubject)
}

func TestBuilderNoSubjectsProducesNothing(t *testing.T) {
	window := NewWindow(windowStart, day(2025, time.March, 7))

	result, err := Generate(window, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	assert.Empty(t, result.Residual)
}

func assertConservation(t *testing.T, result *Result, subjects []Subject) {
	t.Helper()
	scheduled := make(map[string]int)
	for _, entry := range result.Entries {
		scheduled[entry.Morning.SubjectCode] += entry.Morning.Hours
		scheduled[entry.Afternoon.SubjectCode] += entry.Afternoon.Hours
	}
	for _, s := range subjects {
		assert.Equal(t, s.TotalHours-result.Residual[s.Code], scheduled[s.Code],
			"subject %s must account for every hour", s.Code)
		assert.LessOrEqual(t, scheduled[s.Code], s.TotalHours)
	}
}

func assertSlotCapacity(t *testing.T, result *Result) {
	t.Helper()
	for _, entry := range result.Entries {
		for _, block := range []SlotAssignment{entry.Morning, entry.Afternoon} {
			if block.Empty() {
				continue
			}
			assert.GreaterOrEqual(t, block.Hours, 1)
			assert.LessOrEqual(t, block.Hours, SlotCapacity)
		}
	}
}

func assertNoWeekendOrHoliday(t *testing.T, result *Result, holidays HolidaySet) {
	t.Helper()
	for _, entry := range result.Entries {
		assert.True(t, IsBusinessDay(entry.Date, holidays),
			"entry on %s is not a business day", entry.Date.Format("2006-01-02"))
	}
}
