package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []DayEntry {
	anatomy := Subject{Code: "ANA", Name: "Anatomy", MainInstructor: "I-01", AssistantInstructor: "I-02", ReserveInstructor: "I-03"}
	stats := Subject{Code: "STAT", Name: "Statistics", MainInstructor: "I-04", ReserveInstructor: "I-05"}
	return []DayEntry{
		{
			Date:      day(2025, time.March, 3),
			Morning:   newAssignment(anatomy, 4, false),
			Afternoon: newAssignment(anatomy, 4, false),
		},
		{
			Date:      day(2025, time.March, 4),
			Morning:   newAssignment(stats, 4, false),
			Afternoon: SlotAssignment{},
		},
	}
}

func TestReplaceSlotSubject(t *testing.T) {
	entries := sampleEntries()
	replacement := Subject{
		Code: "ML", Name: "Machine Learning",
		MainInstructor: "I-07", AssistantInstructor: "I-08", ReserveInstructor: "I-09",
	}

	require.NoError(t, ReplaceSlotSubject(entries, 0, SlotAfternoon, replacement))

	block := entries[0].Afternoon
	assert.Equal(t, "ML", block.SubjectCode)
	assert.Equal(t, "Machine Learning", block.SubjectName)
	assert.Equal(t, "I-07", block.MainInstructor)
	assert.Equal(t, "I-08", block.AssistantInstructor)
	assert.Equal(t, "I-09", block.ReserveInstructor)
	assert.Equal(t, 4, block.Hours, "allocated hours survive the edit")

	assert.Equal(t, "ANA", entries[0].Morning.SubjectCode, "sibling block untouched")
}

func TestReplaceSlotSubjectErrors(t *testing.T) {
	entries := sampleEntries()
	replacement := Subject{Code: "ML"}

	assert.ErrorIs(t, ReplaceSlotSubject(entries, -1, SlotMorning, replacement), ErrDayOutOfRange)
	assert.ErrorIs(t, ReplaceSlotSubject(entries, 2, SlotMorning, replacement), ErrDayOutOfRange)
	assert.ErrorIs(t, ReplaceSlotSubject(entries, 0, Slot("NOON"), replacement), ErrUnknownSlot)
	assert.ErrorIs(t, ReplaceSlotSubject(entries, 1, SlotAfternoon, replacement), ErrEmptySlot)
}

func TestSwapInstructorsBothBlocks(t *testing.T) {
	entries := sampleEntries()

	require.NoError(t, SwapInstructors(entries, 0, RoleReserve))

	for _, block := range []SlotAssignment{entries[0].Morning, entries[0].Afternoon} {
		assert.Equal(t, "I-03", block.MainInstructor)
		assert.Equal(t, "I-01", block.ReserveInstructor)
		assert.Equal(t, "I-02", block.AssistantInstructor, "assistant is not part of the swap")
	}
}

func TestSwapInstructorsOnlyMatchingBlocks(t *testing.T) {
	entries := sampleEntries()
	other := Subject{Code: "ML", Name: "Machine Learning", MainInstructor: "I-07", ReserveInstructor: "I-09"}
	require.NoError(t, ReplaceSlotSubject(entries, 0, SlotAfternoon, other))

	require.NoError(t, SwapInstructors(entries, 0, RoleMain))

	assert.Equal(t, "I-03", entries[0].Morning.MainInstructor, "leading-subject block swapped")
	assert.Equal(t, "I-07", entries[0].Afternoon.MainInstructor, "other subject's block untouched")
}

func TestSwapInstructorsErrors(t *testing.T) {
	entries := sampleEntries()

	assert.ErrorIs(t, SwapInstructors(entries, 0, InstructorRole("assistant")), ErrUnknownRole)
	assert.ErrorIs(t, SwapInstructors(entries, 5, RoleMain), ErrDayOutOfRange)

	empty := []DayEntry{{Date: day(2025, time.March, 3)}}
	assert.ErrorIs(t, SwapInstructors(empty, 0, RoleMain), ErrEmptySlot)
}
