package models

import "time"

// Timetable slot identifiers. Each business day holds one morning and
// one afternoon block of up to four hours.
const (
	SlotAM = "AM"
	SlotPM = "PM"
)

// TimetableEntry is one persisted half-day block of a saved timetable.
// Empty blocks are not stored; a missing row for a slot means the slot
// stayed empty.
type TimetableEntry struct {
	ID                  string    `db:"id" json:"id"`
	CourseCode          string    `db:"course_code" json:"course_code"`
	EntryDate           time.Time `db:"entry_date" json:"entry_date"`
	Slot                string    `db:"slot" json:"slot"`
	SubjectCode         string    `db:"subject_code" json:"subject_code"`
	SubjectName         string    `db:"subject_name" json:"subject_name"`
	Hours               int       `db:"hours" json:"hours"`
	MainInstructor      string    `db:"main_instructor" json:"main_instructor"`
	AssistantInstructor string    `db:"assistant_instructor" json:"assistant_instructor"`
	ReserveInstructor   string    `db:"reserve_instructor" json:"reserve_instructor"`
	Fallback            bool      `db:"fallback" json:"fallback"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// TimetableProposal is a generated but not yet saved timetable. It
// lives in the cache under a proposal ID until saved or expired.
type TimetableProposal struct {
	ID          string            `json:"id"`
	CourseCode  string            `json:"course_code"`
	WindowStart time.Time         `json:"window_start"`
	WindowEnd   time.Time         `json:"window_end"`
	Days        []TimetableDay    `json:"days"`
	Residual    []ResidualSubject `json:"residual,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// TimetableDay is one generated business day with its two blocks. A nil
// block means the half day stayed empty.
type TimetableDay struct {
	Date      time.Time       `json:"date"`
	Morning   *TimetableBlock `json:"morning,omitempty"`
	Afternoon *TimetableBlock `json:"afternoon,omitempty"`
}

// TimetableBlock is the content of one half-day block.
type TimetableBlock struct {
	SubjectCode         string `json:"subject_code"`
	SubjectName         string `json:"subject_name"`
	Hours               int    `json:"hours"`
	MainInstructor      string `json:"main_instructor,omitempty"`
	AssistantInstructor string `json:"assistant_instructor,omitempty"`
	ReserveInstructor   string `json:"reserve_instructor,omitempty"`
	Fallback            bool   `json:"fallback,omitempty"`
}

// ResidualSubject reports hours that did not fit inside the course
// window.
type ResidualSubject struct {
	SubjectCode    string `json:"subject_code"`
	RemainingHours int    `json:"remaining_hours"`
}
