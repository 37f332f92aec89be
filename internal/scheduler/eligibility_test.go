package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdayPtr(d time.Weekday) *time.Weekday {
	return &d
}

func TestResolvePrimaryPrefersMatchingWeekday(t *testing.T) {
	l := NewLedger([]Subject{
		{Code: "FRI", TotalHours: 8, Weekday: weekdayPtr(time.Friday)},
		{Code: "ANY", TotalHours: 8},
	})

	primary, off, ok := resolvePrimary(l, time.Friday, 0)
	require.True(t, ok)
	assert.False(t, off)
	assert.Equal(t, "FRI", primary.Code, "tie on hours resolves to registration order")

	primary, off, ok = resolvePrimary(l, time.Monday, 0)
	require.True(t, ok)
	assert.False(t, off)
	assert.Equal(t, "ANY", primary.Code, "pinned subject is not eligible off its weekday")
}

func TestResolvePrimaryPicksLargestRemaining(t *testing.T) {
	l := NewLedger([]Subject{
		{Code: "A", TotalHours: 8},
		{Code: "B", TotalHours: 40},
	})

	primary, off, ok := resolvePrimary(l, time.Monday, 0)
	require.True(t, ok)
	assert.False(t, off)
	assert.Equal(t, "B", primary.Code)
}

func TestResolvePrimaryBiweeklyParity(t *testing.T) {
	l := NewLedger([]Subject{
		{Code: "BW", TotalHours: 16, Weekday: weekdayPtr(time.Wednesday), Biweekly: true, WeekOffset: 1},
		{Code: "ANY", TotalHours: 8},
	})

	primary, _, ok := resolvePrimary(l, time.Wednesday, 0)
	require.True(t, ok)
	assert.Equal(t, "ANY", primary.Code, "wrong parity week excludes the biweekly subject")

	primary, off, ok := resolvePrimary(l, time.Wednesday, 1)
	require.True(t, ok)
	assert.False(t, off)
	assert.Equal(t, "BW", primary.Code)

	primary, _, ok = resolvePrimary(l, time.Wednesday, 3)
	require.True(t, ok)
	assert.Equal(t, "BW", primary.Code, "parity matches every other week")
}

func TestResolvePrimaryFallsBackAcrossConstraints(t *testing.T) {
	l := NewLedger([]Subject{
		{Code: "FRI", TotalHours: 8, Weekday: weekdayPtr(time.Friday)},
	})

	primary, off, ok := resolvePrimary(l, time.Monday, 0)
	require.True(t, ok)
	assert.True(t, off, "fallback placement must be marked")
	assert.Equal(t, "FRI", primary.Code)
}

func TestResolvePrimaryNothingLeft(t *testing.T) {
	l := NewLedger([]Subject{{Code: "A", TotalHours: 4}})
	l.Consume("A", 4)

	_, _, ok := resolvePrimary(l, time.Monday, 0)
	assert.False(t, ok)
}
