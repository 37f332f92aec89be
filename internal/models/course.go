package models

import "time"

// Course is one cohort of the training programme. The course window
// (start through end date) bounds timetable generation.
type Course struct {
	Code      string     `db:"code" json:"code"`
	Name      string     `db:"name" json:"name"`
	StartDate time.Time  `db:"start_date" json:"start_date"`
	EndDate   *time.Time `db:"end_date" json:"end_date,omitempty"`
	Capacity  int        `db:"capacity" json:"capacity"`
	Note      string     `db:"note" json:"note"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// CourseFilter encapsulates allowed search parameters for listing courses.
type CourseFilter struct {
	Search   string
	Page     int
	PageSize int
}
