package models

import "time"

// Student represents a learner enrolled in a course.
type Student struct {
	ID         string     `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	Gender     string     `db:"gender" json:"gender"`
	BirthDate  *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Phone      string     `db:"phone" json:"phone"`
	Email      string     `db:"email" json:"email"`
	CourseCode string     `db:"course_code" json:"course_code"`
	Note       string     `db:"note" json:"note"`
	Active     bool       `db:"active" json:"active"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing
// students.
type StudentFilter struct {
	Search     string
	CourseCode string
	Active     *bool
	Page       int
	PageSize   int
}
