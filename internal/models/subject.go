package models

import "time"

// Subject is one teachable unit within a course, carrying the total
// hours to schedule and optional placement preferences.
//
// DayOfWeek pins the subject to one business weekday: 0 is Monday
// through 4 is Friday; nil means the subject may land on any weekday.
// When IsBiweekly is set, the subject runs every other week and
// WeekOffset (0 or 1) selects which parity of course week it runs on.
type Subject struct {
	Code                string    `db:"code" json:"code"`
	Name                string    `db:"name" json:"name"`
	CourseCode          string    `db:"course_code" json:"course_code"`
	TotalHours          int       `db:"total_hours" json:"total_hours"`
	DayOfWeek           *int      `db:"day_of_week" json:"day_of_week,omitempty"`
	IsBiweekly          bool      `db:"is_biweekly" json:"is_biweekly"`
	WeekOffset          int       `db:"week_offset" json:"week_offset"`
	MainInstructor      string    `db:"main_instructor" json:"main_instructor"`
	AssistantInstructor string    `db:"assistant_instructor" json:"assistant_instructor"`
	ReserveInstructor   string    `db:"reserve_instructor" json:"reserve_instructor"`
	SortOrder           int       `db:"sort_order" json:"sort_order"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// SubjectFilter encapsulates allowed search parameters for listing
// subjects.
type SubjectFilter struct {
	Search     string
	CourseCode string
	Page       int
	PageSize   int
}
