package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Emmett6401/bioHealthScheduleManager/internal/models"
	appErrors "github.com/Emmett6401/bioHealthScheduleManager/pkg/errors"
)

type subjectRepository interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error)
	FindByCode(ctx context.Context, code string) (*models.Subject, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, code string) error
}

type subjectCourseReader interface {
	FindByCode(ctx context.Context, code string) (*models.Course, error)
}

type subjectInstructorReader interface {
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// SubjectPayload holds the shared create/update fields of a subject.
type SubjectPayload struct {
	Name                string `json:"name" validate:"required"`
	CourseCode          string `json:"course_code" validate:"required"`
	TotalHours          int    `json:"total_hours" validate:"required,min=1"`
	DayOfWeek           *int   `json:"day_of_week" validate:"omitempty,min=0,max=4"`
	IsBiweekly          bool   `json:"is_biweekly"`
	WeekOffset          int    `json:"week_offset" validate:"min=0,max=1"`
	MainInstructor      string `json:"main_instructor"`
	AssistantInstructor string `json:"assistant_instructor"`
	ReserveInstructor   string `json:"reserve_instructor"`
	SortOrder           int    `json:"sort_order"`
}

// CreateSubjectRequest holds payload for creating subjects.
type CreateSubjectRequest struct {
	Code string `json:"code" validate:"required"`
	SubjectPayload
}

// SubjectService handles subject use-cases.
type SubjectService struct {
	repo        subjectRepository
	courses     subjectCourseReader
	instructors subjectInstructorReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewSubjectService constructs the subject service.
func NewSubjectService(
	repo subjectRepository,
	courses subjectCourseReader,
	instructors subjectInstructorReader,
	validate *validator.Validate,
	logger *zap.Logger,
) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, courses: courses, instructors: instructors, validator: validate, logger: logger}
}

// List returns subjects and pagination metadata.
func (s *SubjectService) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, *models.Pagination, error) {
	subjects, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}
	return subjects, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one subject by code.
func (s *SubjectService) Get(ctx context.Context, code string) (*models.Subject, error) {
	subject, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	return subject, nil
}

// Create registers a new subject under a course.
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	if err := s.checkReferences(ctx, req.SubjectPayload); err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate subject code")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "subject code already used")
	}
	subject := &models.Subject{Code: req.Code}
	applySubjectPayload(subject, req.SubjectPayload)
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	return subject, nil
}

// Update modifies an existing subject record.
func (s *SubjectService) Update(ctx context.Context, code string, req SubjectPayload) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}
	subject, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	applySubjectPayload(subject, req)
	if err := s.repo.Update(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update subject")
	}
	return subject, nil
}

// Delete removes a subject record.
func (s *SubjectService) Delete(ctx context.Context, code string) error {
	if _, err := s.Get(ctx, code); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, code); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	return nil
}

func (s *SubjectService) checkReferences(ctx context.Context, payload SubjectPayload) error {
	if s.courses != nil {
		if _, err := s.courses.FindByCode(ctx, payload.CourseCode); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "course not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
		}
	}
	if s.instructors == nil {
		return nil
	}
	for _, code := range []string{payload.MainInstructor, payload.AssistantInstructor, payload.ReserveInstructor} {
		if code == "" {
			continue
		}
		exists, err := s.instructors.ExistsByCode(ctx, code)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate instructor")
		}
		if !exists {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("instructor %s not found", code))
		}
	}
	return nil
}

func applySubjectPayload(subject *models.Subject, payload SubjectPayload) {
	subject.Name = payload.Name
	subject.CourseCode = payload.CourseCode
	subject.TotalHours = payload.TotalHours
	subject.DayOfWeek = payload.DayOfWeek
	subject.IsBiweekly = payload.IsBiweekly
	subject.WeekOffset = payload.WeekOffset
	subject.MainInstructor = payload.MainInstructor
	subject.AssistantInstructor = payload.AssistantInstructor
	subject.ReserveInstructor = payload.ReserveInstructor
	subject.SortOrder = payload.SortOrder
}
