package models

import "time"

// Holiday marks a calendar date the allocator must skip in addition to
// weekends. Dates are stored at UTC midnight.
type Holiday struct {
	ID        string    `db:"id" json:"id"`
	Date      time.Time `db:"holiday_date" json:"date"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
