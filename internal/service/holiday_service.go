package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Emmett6401/bioHealthScheduleManager/internal/models"
	"github.com/Emmett6401/bioHealthScheduleManager/internal/scheduler"
	appErrors "github.com/Emmett6401/bioHealthScheduleManager/pkg/errors"
)

type holidayRepository interface {
	ListInRange(ctx context.Context, from, to time.Time) ([]models.Holiday, error)
	ListByYear(ctx context.Context, year int) ([]models.Holiday, error)
	Create(ctx context.Context, holiday *models.Holiday) error
	Delete(ctx context.Context, id string) error
	ExistsOnDate(ctx context.Context, date time.Time) (bool, error)
}

// CreateHolidayRequest holds payload for registering holidays.
type CreateHolidayRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Name string `json:"name" validate:"required"`
}

// HolidayService handles holiday use-cases.
type HolidayService struct {
	repo      holidayRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewHolidayService constructs the holiday service.
func NewHolidayService(repo holidayRepository, validate *validator.Validate, logger *zap.Logger) *HolidayService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HolidayService{repo: repo, validator: validate, logger: logger}
}

// ListByYear returns every holiday of a calendar year.
func (s *HolidayService) ListByYear(ctx context.Context, year int) ([]models.Holiday, error) {
	if year < 2000 || year > 2100 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "year out of range")
	}
	holidays, err := s.repo.ListByYear(ctx, year)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list holidays")
	}
	return holidays, nil
}

// Create registers a holiday. Weekend dates are accepted but have no
// scheduling effect since weekends are always skipped.
func (s *HolidayService) Create(ctx context.Context, req CreateHolidayRequest) (*models.Holiday, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid holiday payload")
	}
	parsed, _ := time.Parse("2006-01-02", req.Date)
	date := scheduler.DateOf(parsed)

	exists, err := s.repo.ExistsOnDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate holiday date")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "holiday already registered on that date")
	}

	holiday := &models.Holiday{Date: date, Name: req.Name}
	if err := s.repo.Create(ctx, holiday); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create holiday")
	}
	return holiday, nil
}

// Delete removes a holiday.
func (s *HolidayService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "holiday id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete holiday")
	}
	return nil
}
