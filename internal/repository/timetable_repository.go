package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Emmett6401/bioHealthScheduleManager/internal/models"
)

// TimetableRepository manages persistence for saved timetables. A saved
// timetable is the set of half-day rows belonging to one course; empty
// half days have no row.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs a TimetableRepository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

const timetableColumns = `id, course_code, entry_date, slot, subject_code, subject_name, hours,
        main_instructor, assistant_instructor, reserve_instructor, fallback, created_at, updated_at`

// ListByCourse returns the saved timetable of a course ordered by date
// with the morning block before the afternoon block.
func (r *TimetableRepository) ListByCourse(ctx context.Context, courseCode string) ([]models.TimetableEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM timetable_entries WHERE course_code = $1
        ORDER BY entry_date ASC, slot ASC`, timetableColumns)
	var entries []models.TimetableEntry
	if err := r.db.SelectContext(ctx, &entries, query, courseCode); err != nil {
		return nil, fmt.Errorf("list timetable: %w", err)
	}
	return entries, nil
}

// CountByCourse reports how many half-day rows a course has saved.
func (r *TimetableRepository) CountByCourse(ctx context.Context, courseCode string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM timetable_entries WHERE course_code = $1", courseCode); err != nil {
		return 0, fmt.Errorf("count timetable: %w", err)
	}
	return count, nil
}

// Replace atomically swaps the saved timetable of a course for the
// given rows. Saving a regenerated timetable must not leave a mix of
// old and new rows behind, so the delete and inserts share one
// transaction.
func (r *TimetableRepository) Replace(ctx context.Context, courseCode string, entries []models.TimetableEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace timetable: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM timetable_entries WHERE course_code = $1", courseCode); err != nil {
		return fmt.Errorf("clear timetable: %w", err)
	}

	const insert = `INSERT INTO timetable_entries (id, course_code, entry_date, slot, subject_code, subject_name, hours,
        main_instructor, assistant_instructor, reserve_instructor, fallback, created_at, updated_at)
        VALUES (:id, :course_code, :entry_date, :slot, :subject_code, :subject_name, :hours,
        :main_instructor, :assistant_instructor, :reserve_instructor, :fallback, :created_at, :updated_at)`

	now := time.Now().UTC()
	for i := range entries {
		entries[i].CourseCode = courseCode
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
		}
		if entries[i].CreatedAt.IsZero() {
			entries[i].CreatedAt = now
		}
		entries[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, insert, entries[i]); err != nil {
			return fmt.Errorf("insert timetable row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit timetable: %w", err)
	}
	return nil
}

// DeleteByCourse removes the saved timetable of a course and reports
// how many rows went away.
func (r *TimetableRepository) DeleteByCourse(ctx context.Context, courseCode string) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM timetable_entries WHERE course_code = $1", courseCode)
	if err != nil {
		return 0, fmt.Errorf("delete timetable: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete timetable: %w", err)
	}
	return affected, nil
}

// UpdateSlot rewrites one half-day row identified by course, date and
// slot. The allocated hours of the row are part of the update payload
// and stay untouched by identity edits.
func (r *TimetableRepository) UpdateSlot(ctx context.Context, entry *models.TimetableEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	const query = `UPDATE timetable_entries SET subject_code = :subject_code, subject_name = :subject_name,
        main_instructor = :main_instructor, assistant_instructor = :assistant_instructor,
        reserve_instructor = :reserve_instructor, updated_at = :updated_at
        WHERE course_code = :course_code AND entry_date = :entry_date AND slot = :slot`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("update timetable slot: %w", err)
	}
	return nil
}
