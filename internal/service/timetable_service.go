package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Emmett6401/bioHealthScheduleManager/internal/dto"
	"github.com/Emmett6401/bioHealthScheduleManager/internal/models"
	"github.com/Emmett6401/bioHealthScheduleManager/internal/scheduler"
	appErrors "github.com/Emmett6401/bioHealthScheduleManager/pkg/errors"
)

const dateLayout = "2006-01-02"

type timetableCourseReader interface {
	FindByCode(ctx context.Context, code string) (*models.Course, error)
}

type timetableSubjectReader interface {
	ListByCourse(ctx context.Context, courseCode string) ([]models.Subject, error)
	FindByCode(ctx context.Context, code string) (*models.Subject, error)
}

type timetableHolidayReader interface {
	ListInRange(ctx context.Context, from, to time.Time) ([]models.Holiday, error)
}

type timetableStore interface {
	ListByCourse(ctx context.Context, courseCode string) ([]models.TimetableEntry, error)
	Replace(ctx context.Context, courseCode string, entries []models.TimetableEntry) error
	DeleteByCourse(ctx context.Context, courseCode string) (int64, error)
	UpdateSlot(ctx context.Context, entry *models.TimetableEntry) error
}

type proposalStore interface {
	Save(ctx context.Context, proposal *models.TimetableProposal, ttl time.Duration) error
	Get(ctx context.Context, id string) (*models.TimetableProposal, error)
	Delete(ctx context.Context, id string) error
}

// TimetableConfig governs timetable generation behaviour.
type TimetableConfig struct {
	ProposalTTL        time.Duration
	FallbackWindowDays int
}

// TimetableService runs the calendar allocator for a course and manages
// the proposal-then-save workflow plus edits on saved timetables.
type TimetableService struct {
	courses   timetableCourseReader
	subjects  timetableSubjectReader
	holidays  timetableHolidayReader
	store     timetableStore
	proposals proposalStore
	metrics   *MetricsService
	cfg       TimetableConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimetableService wires timetable dependencies.
func NewTimetableService(
	courses timetableCourseReader,
	subjects timetableSubjectReader,
	holidays timetableHolidayReader,
	store timetableStore,
	proposals proposalStore,
	metrics *MetricsService,
	cfg TimetableConfig,
	validate *validator.Validate,
	logger *zap.Logger,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ProposalTTL <= 0 {
		cfg.ProposalTTL = 30 * time.Minute
	}
	if cfg.FallbackWindowDays <= 0 {
		cfg.FallbackWindowDays = 100
	}
	return &TimetableService{
		courses:   courses,
		subjects:  subjects,
		holidays:  holidays,
		store:     store,
		proposals: proposals,
		metrics:   metrics,
		cfg:       cfg,
		validator: validate,
		logger:    logger,
	}
}

// Generate builds a timetable proposal for a course and parks it in the
// proposal store until saved or expired.
func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable generation payload")
	}

	course, err := s.courses.FindByCode(ctx, req.CourseCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	window, err := s.resolveWindow(course, req)
	if err != nil {
		return nil, err
	}

	subjects, err := s.subjects.ListByCourse(ctx, req.CourseCode)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course subjects")
	}
	if len(subjects) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "course has no subjects to schedule")
	}

	holidays, err := s.holidays.ListInRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load holidays")
	}
	holidayDates := make([]time.Time, 0, len(holidays))
	for _, h := range holidays {
		holidayDates = append(holidayDates, h.Date)
	}

	started := time.Now()
	result, err := scheduler.NewBuilder(window, scheduler.NewHolidaySet(holidayDates...), toSchedulerSubjects(subjects), s.logger).Run()
	if err != nil {
		s.metrics.ObserveGeneration("error", 0, time.Since(started))
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "timetable configuration rejected")
	}

	residualTotal := 0
	for _, hours := range result.Residual {
		residualTotal += hours
	}
	outcome := "ok"
	if residualTotal > 0 {
		outcome = "residual"
	}
	s.metrics.ObserveGeneration(outcome, residualTotal, time.Since(started))

	proposal := &models.TimetableProposal{
		ID:          uuid.NewString(),
		CourseCode:  req.CourseCode,
		WindowStart: window.Start,
		WindowEnd:   window.End,
		Days:        toTimetableDays(result.Entries),
		Residual:    toResidualSubjects(subjects, result.Residual),
		GeneratedAt: time.Now().UTC(),
	}
	if err := s.proposals.Save(ctx, proposal, s.cfg.ProposalTTL); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store timetable proposal")
	}

	s.logger.Info("timetable proposal generated",
		zap.String("course_code", req.CourseCode),
		zap.String("proposal_id", proposal.ID),
		zap.Int("days", len(proposal.Days)),
		zap.Int("residual_subjects", len(proposal.Residual)),
		zap.Duration("took", time.Since(started)),
	)

	return &dto.GenerateTimetableResponse{
		ProposalID:  proposal.ID,
		CourseCode:  proposal.CourseCode,
		WindowStart: window.Start.Format(dateLayout),
		WindowEnd:   window.End.Format(dateLayout),
		Days:        proposal.Days,
		Residual:    proposal.Residual,
	}, nil
}

// Save promotes a proposal into the saved timetable of its course,
// replacing any previously saved rows.
func (s *TimetableService) Save(ctx context.Context, req dto.SaveTimetableRequest) (*dto.SaveTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid save timetable payload")
	}

	proposal, err := s.proposals.Get(ctx, req.ProposalID)
	if err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable proposal")
	}

	rows := toTimetableEntries(proposal)
	if err := s.store.Replace(ctx, proposal.CourseCode, rows); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save timetable")
	}

	if err := s.proposals.Delete(ctx, req.ProposalID); err != nil {
		s.logger.Warn("failed to drop saved proposal", zap.String("proposal_id", req.ProposalID), zap.Error(err))
	}

	s.logger.Info("timetable saved",
		zap.String("course_code", proposal.CourseCode),
		zap.String("proposal_id", proposal.ID),
		zap.Int("slots", len(rows)),
	)
	return &dto.SaveTimetableResponse{CourseCode: proposal.CourseCode, SavedSlots: len(rows)}, nil
}

// Get returns the saved timetable of a course grouped into days.
func (s *TimetableService) Get(ctx context.Context, courseCode string) (*dto.TimetableResponse, error) {
	if courseCode == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course code is required")
	}
	entries, err := s.store.ListByCourse(ctx, courseCode)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	if len(entries) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no timetable saved for this course")
	}
	return &dto.TimetableResponse{CourseCode: courseCode, Days: groupEntries(entries)}, nil
}

// Delete removes the saved timetable of a course.
func (s *TimetableService) Delete(ctx context.Context, courseCode string) error {
	if courseCode == "" {
		return appErrors.Clone(appErrors.ErrValidation, "course code is required")
	}
	affected, err := s.store.DeleteByCourse(ctx, courseCode)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete timetable")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "no timetable saved for this course")
	}
	s.logger.Info("timetable deleted", zap.String("course_code", courseCode), zap.Int64("slots", affected))
	return nil
}

// EditSlot swaps the subject taught in one saved half-day block while
// keeping the block's allocated hours.
func (s *TimetableService) EditSlot(ctx context.Context, courseCode string, req dto.EditSlotRequest) (*dto.TimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot edit payload")
	}
	date, _ := time.Parse(dateLayout, req.EntryDate)

	subject, err := s.subjects.FindByCode(ctx, req.SubjectCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	days, err := s.loadSchedulerDays(ctx, courseCode)
	if err != nil {
		return nil, err
	}
	dayIndex := indexOfDate(days, date)
	if dayIndex < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no timetable entry on that date")
	}

	if err := scheduler.ReplaceSlotSubject(days, dayIndex, scheduler.Slot(req.Slot), toSchedulerSubject(*subject)); err != nil {
		return nil, mapEditError(err)
	}

	if err := s.persistDay(ctx, courseCode, days[dayIndex], scheduler.Slot(req.Slot)); err != nil {
		return nil, err
	}

	s.logger.Info("timetable slot edited",
		zap.String("course_code", courseCode),
		zap.String("entry_date", req.EntryDate),
		zap.String("slot", req.Slot),
		zap.String("subject_code", req.SubjectCode),
	)
	return s.Get(ctx, courseCode)
}

// SwapInstructors exchanges main and reserve instructors on every block
// of one saved day that teaches the day's leading subject.
func (s *TimetableService) SwapInstructors(ctx context.Context, courseCode string, req dto.SwapInstructorsRequest) (*dto.TimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid instructor swap payload")
	}
	date, _ := time.Parse(dateLayout, req.EntryDate)

	days, err := s.loadSchedulerDays(ctx, courseCode)
	if err != nil {
		return nil, err
	}
	dayIndex := indexOfDate(days, date)
	if dayIndex < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no timetable entry on that date")
	}

	if err := scheduler.SwapInstructors(days, dayIndex, scheduler.InstructorRole(req.Role)); err != nil {
		return nil, mapEditError(err)
	}

	for _, slot := range []scheduler.Slot{scheduler.SlotMorning, scheduler.SlotAfternoon} {
		if err := s.persistDay(ctx, courseCode, days[dayIndex], slot); err != nil {
			return nil, err
		}
	}

	s.logger.Info("timetable instructors swapped",
		zap.String("course_code", courseCode),
		zap.String("entry_date", req.EntryDate),
		zap.String("role", req.Role),
	)
	return s.Get(ctx, courseCode)
}

func (s *TimetableService) resolveWindow(course *models.Course, req dto.GenerateTimetableRequest) (scheduler.Window, error) {
	start := course.StartDate
	if req.StartDate != "" {
		start, _ = time.Parse(dateLayout, req.StartDate)
	}
	if start.IsZero() {
		return scheduler.Window{}, appErrors.Clone(appErrors.ErrPreconditionFailed, "course has no start date")
	}

	var end time.Time
	switch {
	case req.EndDate != "":
		end, _ = time.Parse(dateLayout, req.EndDate)
	case course.EndDate != nil:
		end = *course.EndDate
	default:
		end = start.AddDate(0, 0, s.cfg.FallbackWindowDays)
	}

	window := scheduler.NewWindow(start, end)
	if window.Start.After(window.End) {
		return scheduler.Window{}, appErrors.Clone(appErrors.ErrValidation, "window start date is after end date")
	}
	return window, nil
}

func (s *TimetableService) loadSchedulerDays(ctx context.Context, courseCode string) ([]scheduler.DayEntry, error) {
	if courseCode == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course code is required")
	}
	entries, err := s.store.ListByCourse(ctx, courseCode)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	if len(entries) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no timetable saved for this course")
	}
	return toSchedulerDays(entries), nil
}

func (s *TimetableService) persistDay(ctx context.Context, courseCode string, day scheduler.DayEntry, slot scheduler.Slot) error {
	block := day.Morning
	if slot == scheduler.SlotAfternoon {
		block = day.Afternoon
	}
	if block.Empty() {
		return nil
	}
	entry := &models.TimetableEntry{
		CourseCode:          courseCode,
		EntryDate:           day.Date,
		Slot:                string(slot),
		SubjectCode:         block.SubjectCode,
		SubjectName:         block.SubjectName,
		Hours:               block.Hours,
		MainInstructor:      block.MainInstructor,
		AssistantInstructor: block.AssistantInstructor,
		ReserveInstructor:   block.ReserveInstructor,
		Fallback:            block.Fallback,
	}
	if err := s.store.UpdateSlot(ctx, entry); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist timetable edit")
	}
	return nil
}

func mapEditError(err error) error {
	switch {
	case errors.Is(err, scheduler.ErrEmptySlot):
		return appErrors.Clone(appErrors.ErrConflict, "slot holds no assignment")
	case errors.Is(err, scheduler.ErrUnknownSlot), errors.Is(err, scheduler.ErrUnknownRole):
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid edit target")
	case errors.Is(err, scheduler.ErrDayOutOfRange):
		return appErrors.Clone(appErrors.ErrNotFound, "no timetable entry on that date")
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to apply timetable edit")
	}
}

// --- Conversions ---

func toSchedulerSubject(m models.Subject) scheduler.Subject {
	subject := scheduler.Subject{
		Code:                m.Code,
		Name:                m.Name,
		TotalHours:          m.TotalHours,
		Biweekly:            m.IsBiweekly,
		WeekOffset:          m.WeekOffset,
		MainInstructor:      m.MainInstructor,
		AssistantInstructor: m.AssistantInstructor,
		ReserveInstructor:   m.ReserveInstructor,
	}
	// Stored pins count Monday as 0 through Friday as 4.
	if m.DayOfWeek != nil && *m.DayOfWeek >= 0 && *m.DayOfWeek <= 4 {
		weekday := time.Weekday(*m.DayOfWeek + 1)
		subject.Weekday = &weekday
	}
	return subject
}

func toSchedulerSubjects(subjects []models.Subject) []scheduler.Subject {
	result := make([]scheduler.Subject, 0, len(subjects))
	for _, m := range subjects {
		result = append(result, toSchedulerSubject(m))
	}
	return result
}

func toTimetableBlock(a scheduler.SlotAssignment) *models.TimetableBlock {
	if a.Empty() {
		return nil
	}
	return &models.TimetableBlock{
		SubjectCode:         a.SubjectCode,
		SubjectName:         a.SubjectName,
		Hours:               a.Hours,
		MainInstructor:      a.MainInstructor,
		AssistantInstructor: a.AssistantInstructor,
		ReserveInstructor:   a.ReserveInstructor,
		Fallback:            a.Fallback,
	}
}

func toTimetableDays(entries []scheduler.DayEntry) []models.TimetableDay {
	days := make([]models.TimetableDay, 0, len(entries))
	for _, e := range entries {
		days = append(days, models.TimetableDay{
			Date:      e.Date,
			Morning:   toTimetableBlock(e.Morning),
			Afternoon: toTimetableBlock(e.Afternoon),
		})
	}
	return days
}

func toResidualSubjects(subjects []models.Subject, residual map[string]int) []models.ResidualSubject {
	if len(residual) == 0 {
		return nil
	}
	// Report in subject registration order for stable output.
	result := make([]models.ResidualSubject, 0, len(residual))
	for _, subject := range subjects {
		if hours, ok := residual[subject.Code]; ok {
			result = append(result, models.ResidualSubject{SubjectCode: subject.Code, RemainingHours: hours})
		}
	}
	return result
}

func toTimetableEntries(proposal *models.TimetableProposal) []models.TimetableEntry {
	appendRow := func(rows []models.TimetableEntry, date time.Time, slot string, block *models.TimetableBlock) []models.TimetableEntry {
		if block == nil {
			return rows
		}
		return append(rows, models.TimetableEntry{
			CourseCode:          proposal.CourseCode,
			EntryDate:           date,
			Slot:                slot,
			SubjectCode:         block.SubjectCode,
			SubjectName:         block.SubjectName,
			Hours:               block.Hours,
			MainInstructor:      block.MainInstructor,
			AssistantInstructor: block.AssistantInstructor,
			ReserveInstructor:   block.ReserveInstructor,
			Fallback:            block.Fallback,
		})
	}

	var rows []models.TimetableEntry
	for _, day := range proposal.Days {
		rows = appendRow(rows, day.Date, models.SlotAM, day.Morning)
		rows = appendRow(rows, day.Date, models.SlotPM, day.Afternoon)
	}
	return rows
}

func groupEntries(entries []models.TimetableEntry) []models.TimetableDay {
	var days []models.TimetableDay
	byDate := make(map[time.Time]int)
	for _, entry := range entries {
		date := scheduler.DateOf(entry.EntryDate)
		idx, ok := byDate[date]
		if !ok {
			days = append(days, models.TimetableDay{Date: date})
			idx = len(days) - 1
			byDate[date] = idx
		}
		block := &models.TimetableBlock{
			SubjectCode:         entry.SubjectCode,
			SubjectName:         entry.SubjectName,
			Hours:               entry.Hours,
			MainInstructor:      entry.MainInstructor,
			AssistantInstructor: entry.AssistantInstructor,
			ReserveInstructor:   entry.ReserveInstructor,
			Fallback:            entry.Fallback,
		}
		if entry.Slot == models.SlotAM {
			days[idx].Morning = block
		} else {
			days[idx].Afternoon = block
		}
	}
	return days
}

func toSchedulerDays(entries []models.TimetableEntry) []scheduler.DayEntry {
	grouped := groupEntries(entries)
	days := make([]scheduler.DayEntry, 0, len(grouped))
	for _, day := range grouped {
		entry := scheduler.DayEntry{Date: day.Date}
		if day.Morning != nil {
			entry.Morning = toSlotAssignment(day.Morning)
		}
		if day.Afternoon != nil {
			entry.Afternoon = toSlotAssignment(day.Afternoon)
		}
		days = append(days, entry)
	}
	return days
}

func toSlotAssignment(block *models.TimetableBlock) scheduler.SlotAssignment {
	return scheduler.SlotAssignment{
		SubjectCode:         block.SubjectCode,
		SubjectName:         block.SubjectName,
		Hours:               block.Hours,
		MainInstructor:      block.MainInstructor,
		AssistantInstructor: block.AssistantInstructor,
		ReserveInstructor:   block.ReserveInstructor,
		Fallback:            block.Fallback,
	}
}

func indexOfDate(days []scheduler.DayEntry, date time.Time) int {
	target := scheduler.DateOf(date)
	for i, day := range days {
		if day.Date.Equal(target) {
			return i
		}
	}
	return -1
}
