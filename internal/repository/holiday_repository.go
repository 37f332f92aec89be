package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Emmett6401/bioHealthScheduleManager/internal/models"
)

// HolidayRepository manages persistence for holiday records.
type HolidayRepository struct {
	db *sqlx.DB
}

// NewHolidayRepository constructs a HolidayRepository.
func NewHolidayRepository(db *sqlx.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// ListInRange returns holidays with dates inside [from, to] inclusive,
// ordered by date.
func (r *HolidayRepository) ListInRange(ctx context.Context, from, to time.Time) ([]models.Holiday, error) {
	const query = `SELECT id, holiday_date, name, created_at FROM holidays
        WHERE holiday_date >= $1 AND holiday_date <= $2 ORDER BY holiday_date ASC`
	var holidays []models.Holiday
	if err := r.db.SelectContext(ctx, &holidays, query, from, to); err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	return holidays, nil
}

// ListByYear returns all holidays of one calendar year.
func (r *HolidayRepository) ListByYear(ctx context.Context, year int) ([]models.Holiday, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return r.ListInRange(ctx, from, to)
}

// Create inserts a new holiday record.
func (r *HolidayRepository) Create(ctx context.Context, holiday *models.Holiday) error {
	if holiday.ID == "" {
		holiday.ID = uuid.NewString()
	}
	if holiday.CreatedAt.IsZero() {
		holiday.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO holidays (id, holiday_date, name, created_at)
        VALUES (:id, :holiday_date, :name, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, holiday); err != nil {
		return fmt.Errorf("create holiday: %w", err)
	}
	return nil
}

// Delete removes a holiday record.
func (r *HolidayRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete holiday: %w", err)
	}
	return nil
}

// ExistsOnDate checks whether a holiday already covers the given date.
func (r *HolidayRepository) ExistsOnDate(ctx context.Context, date time.Time) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM holidays WHERE holiday_date = $1", date); err != nil {
		return false, fmt.Errorf("check holiday date: %w", err)
	}
	return count > 0, nil
}
