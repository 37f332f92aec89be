package scheduler

import "time"

// Subject is one teaching unit competing for calendar time. The scheduler
// treats instructor references as opaque identifiers; it never owns or
// validates them.
type Subject struct {
	Code       string
	Name       string
	TotalHours int
	// Weekday pins the subject to a single weekday (Monday..Friday).
	// Nil means the subject may run on any business day.
	Weekday *time.Weekday
	// Biweekly restricts the subject to every other week. WeekOffset
	// selects which alternate week (0 or 1), anchored to the window start.
	Biweekly   bool
	WeekOffset int

	MainInstructor      string
	AssistantInstructor string
	ReserveInstructor   string
}

// Pinned reports whether the subject is constrained to a specific weekday.
func (s Subject) Pinned() bool {
	return s.Weekday != nil
}
