package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillDaySameSubjectSpansBothBlocks(t *testing.T) {
	l := NewLedger([]Subject{{Code: "A", Name: "Anatomy", TotalHours: 12}})

	morning, afternoon, carry := fillDay(l, l.subjects[0], false)

	assert.Equal(t, "A", morning.SubjectCode)
	assert.Equal(t, 4, morning.Hours)
	assert.Equal(t, "A", afternoon.SubjectCode)
	assert.Equal(t, 4, afternoon.Hours)
	assert.Nil(t, carry)
	assert.Equal(t, 4, l.Remaining("A"))
}

func TestFillDayPartialAfternoon(t *testing.T) {
	l := NewLedger([]Subject{{Code: "A", TotalHours: 6}})

	morning, afternoon, carry := fillDay(l, l.subjects[0], false)

	assert.Equal(t, 4, morning.Hours)
	assert.Equal(t, 2, afternoon.Hours)
	assert.Nil(t, carry)
	assert.Equal(t, 0, l.Remaining("A"))
}

func TestFillDaySwitchOnMorningCompletion(t *testing.T) {
	l := NewLedger([]Subject{
		{Code: "A", TotalHours: 4},
		{Code: "B", TotalHours: 12},
	})

	morning, afternoon, carry := fillDay(l, l.subjects[0], false)

	assert.Equal(t, "A", morning.SubjectCode)
	assert.Equal(t, 4, morning.Hours)
	assert.Equal(t, "B", afternoon.SubjectCode)
	assert.Equal(t, 4, afternoon.Hours)
	assert.True(t, afternoon.Fallback, "switched-in block bypasses placement rules")

	require.NotNil(t, carry, "unfinished afternoon starter continues tomorrow")
	assert.Equal(t, "B", carry.Code)
	assert.Equal(t, 4, l.Remaining("B"))
}

func TestFillDaySwitchWithoutCarryWhenReplacementFinishes(t *testing.T) {
	l := NewLedger([]Subject{
		{Code: "A", TotalHours: 4},
		{Code: "B", TotalHours: 3},
	})

	_, afternoon, carry := fillDay(l, l.subjects[0], false)

	assert.Equal(t, "B", afternoon.SubjectCode)
	assert.Equal(t, 3, afternoon.Hours)
	assert.Nil(t, carry)
	assert.Equal(t, 0, l.Remaining("B"))
}

func TestFillDayEmptyAfternoonWhenNothingElseRemains(t *testing.T) {
	l := NewLedger([]Subject{{Code: "A", TotalHours: 4}})

	morning, afternoon, carry := fillDay(l, l.subjects[0], false)

	assert.Equal(t, 4, morning.Hours)
	assert.True(t, afternoon.Empty())
	assert.Nil(t, carry)
}

func TestFillDayPropagatesOffPreferenceFlag(t *testing.T) {
	l := NewLedger([]Subject{{Code: "A", TotalHours: 8}})

	morning, afternoon, _ := fillDay(l, l.subjects[0], true)

	assert.True(t, morning.Fallback)
	assert.True(t, afternoon.Fallback)
}
