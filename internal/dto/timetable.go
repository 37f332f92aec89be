package dto

import "github.com/Emmett6401/bioHealthScheduleManager/internal/models"

// GenerateTimetableRequest asks for a fresh timetable proposal for a
// course. Dates use the 2006-01-02 form; omitted dates fall back to the
// course record.
type GenerateTimetableRequest struct {
	CourseCode string `json:"course_code" validate:"required"`
	StartDate  string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// GenerateTimetableResponse carries a generated proposal back to the
// caller. The proposal stays retrievable under ProposalID until saved
// or expired.
type GenerateTimetableResponse struct {
	ProposalID  string                   `json:"proposal_id"`
	CourseCode  string                   `json:"course_code"`
	WindowStart string                   `json:"window_start"`
	WindowEnd   string                   `json:"window_end"`
	Days        []models.TimetableDay    `json:"days"`
	Residual    []models.ResidualSubject `json:"residual,omitempty"`
}

// SaveTimetableRequest promotes a proposal into the saved timetable of
// its course.
type SaveTimetableRequest struct {
	ProposalID string `json:"proposal_id" validate:"required"`
}

// SaveTimetableResponse reports the outcome of saving a proposal.
type SaveTimetableResponse struct {
	CourseCode string `json:"course_code"`
	SavedSlots int    `json:"saved_slots"`
}

// TimetableResponse is a saved timetable grouped into days.
type TimetableResponse struct {
	CourseCode string                `json:"course_code"`
	Days       []models.TimetableDay `json:"days"`
}

// EditSlotRequest swaps the subject taught in one saved half-day block.
// The allocated hours of the block stay as generated.
type EditSlotRequest struct {
	EntryDate   string `json:"entry_date" validate:"required,datetime=2006-01-02"`
	Slot        string `json:"slot" validate:"required,oneof=AM PM"`
	SubjectCode string `json:"subject_code" validate:"required"`
}

// SwapInstructorsRequest exchanges the main and reserve instructors on
// every block of one saved day that teaches the day's leading subject.
type SwapInstructorsRequest struct {
	EntryDate string `json:"entry_date" validate:"required,datetime=2006-01-02"`
	Role      string `json:"role" validate:"required,oneof=main reserve"`
}
