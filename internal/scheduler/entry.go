package scheduler

import (
	"errors"
	"time"
)

// Slot names one of the two fixed half-day blocks.
type Slot string

const (
	SlotMorning   Slot = "AM"
	SlotAfternoon Slot = "PM"
)

// InstructorRole identifies which instructor reference a swap promotes.
type InstructorRole string

const (
	RoleMain    InstructorRole = "main"
	RoleReserve InstructorRole = "reserve"
)

// Manual edit errors. These cover post-generation edits only; generation
// itself reports errors from the Builder.
var (
	ErrDayOutOfRange = errors.New("scheduler: day index out of range")
	ErrUnknownSlot   = errors.New("scheduler: unknown slot")
	ErrUnknownRole   = errors.New("scheduler: unknown instructor role")
	ErrEmptySlot     = errors.New("scheduler: slot holds no assignment")
)

// SlotAssignment is the content of one half-day block. The zero value is
// the explicit empty marker.
type SlotAssignment struct {
	SubjectCode         string
	SubjectName         string
	Hours               int
	MainInstructor      string
	AssistantInstructor string
	ReserveInstructor   string
	// Fallback marks blocks placed outside the subject's weekday or
	// biweekly preference: resolver fallbacks, afternoon switches and
	// next-morning continuations.
	Fallback bool
}

// Empty reports whether the block holds no assignment.
func (a SlotAssignment) Empty() bool {
	return a.Hours == 0
}

func newAssignment(s Subject, hours int, fallback bool) SlotAssignment {
	return SlotAssignment{
		SubjectCode:         s.Code,
		SubjectName:         s.Name,
		Hours:               hours,
		MainInstructor:      s.MainInstructor,
		AssistantInstructor: s.AssistantInstructor,
		ReserveInstructor:   s.ReserveInstructor,
		Fallback:            fallback,
	}
}

// DayEntry is one generated business day: a date plus its two blocks.
type DayEntry struct {
	Date      time.Time
	Morning   SlotAssignment
	Afternoon SlotAssignment
}

// Subject returns the code of the day's leading subject: the morning
// subject when present, otherwise the afternoon's.
func (e DayEntry) Subject() string {
	if !e.Morning.Empty() {
		return e.Morning.SubjectCode
	}
	return e.Afternoon.SubjectCode
}

// ReplaceSlotSubject swaps the identity and instructor fields of one
// produced block for another subject, keeping the allocated hours. This
// is a data edit on a finished timetable; no ledger state exists anymore
// and none is touched.
func ReplaceSlotSubject(entries []DayEntry, dayIndex int, slot Slot, subject Subject) error {
	target, err := slotRef(entries, dayIndex, slot)
	if err != nil {
		return err
	}
	if target.Empty() {
		return ErrEmptySlot
	}
	target.SubjectCode = subject.Code
	target.SubjectName = subject.Name
	target.MainInstructor = subject.MainInstructor
	target.AssistantInstructor = subject.AssistantInstructor
	target.ReserveInstructor = subject.ReserveInstructor
	return nil
}

// SwapInstructors exchanges the main and reserve instructor references
// on every block of the day that teaches the day's leading subject. The
// role argument names the reference being promoted and must be main or
// reserve; the exchange itself is symmetric.
func SwapInstructors(entries []DayEntry, dayIndex int, role InstructorRole) error {
	if role != RoleMain && role != RoleReserve {
		return ErrUnknownRole
	}
	if dayIndex < 0 || dayIndex >= len(entries) {
		return ErrDayOutOfRange
	}
	entry := &entries[dayIndex]
	code := entry.Subject()
	if code == "" {
		return ErrEmptySlot
	}
	for _, block := range []*SlotAssignment{&entry.Morning, &entry.Afternoon} {
		if block.Empty() || block.SubjectCode != code {
			continue
		}
		block.MainInstructor, block.ReserveInstructor = block.ReserveInstructor, block.MainInstructor
	}
	return nil
}

func slotRef(entries []DayEntry, dayIndex int, slot Slot) (*SlotAssignment, error) {
	if dayIndex < 0 || dayIndex >= len(entries) {
		return nil, ErrDayOutOfRange
	}
	switch slot {
	case SlotMorning:
		return &entries[dayIndex].Morning, nil
	case SlotAfternoon:
		return &entries[dayIndex].Afternoon, nil
	default:
		return nil, ErrUnknownSlot
	}
}
