package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Emmett6401/bioHealthScheduleManager/internal/dto"
	"github.com/Emmett6401/bioHealthScheduleManager/internal/models"
	appErrors "github.com/Emmett6401/bioHealthScheduleManager/pkg/errors"
)

type mockCourseReader struct {
	courses map[string]*models.Course
}

func (m *mockCourseReader) FindByCode(ctx context.Context, code string) (*models.Course, error) {
	if course, ok := m.courses[code]; ok {
		cp := *course
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type mockSubjectReader struct {
	byCourse map[string][]models.Subject
	byCode   map[string]*models.Subject
}

func (m *mockSubjectReader) ListByCourse(ctx context.Context, courseCode string) ([]models.Subject, error) {
	return m.byCourse[courseCode], nil
}

func (m *mockSubjectReader) FindByCode(ctx context.Context, code string) (*models.Subject, error) {
	if subject, ok := m.byCode[code]; ok {
		cp := *subject
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type mockHolidayReader struct {
	holidays []models.Holiday
}

func (m *mockHolidayReader) ListInRange(ctx context.Context, from, to time.Time) ([]models.Holiday, error) {
	return m.holidays, nil
}

type mockTimetableStore struct {
	entries  map[string][]models.TimetableEntry
	replaced map[string][]models.TimetableEntry
	updated  []models.TimetableEntry
	deleted  []string
}

func (m *mockTimetableStore) ListByCourse(ctx context.Context, courseCode string) ([]models.TimetableEntry, error) {
	return m.entries[courseCode], nil
}

func (m *mockTimetableStore) Replace(ctx context.Context, courseCode string, entries []models.TimetableEntry) error {
	if m.replaced == nil {
		m.replaced = make(map[string][]models.TimetableEntry)
	}
	m.replaced[courseCode] = entries
	if m.entries == nil {
		m.entries = make(map[string][]models.TimetableEntry)
	}
	m.entries[courseCode] = entries
	return nil
}

func (m *mockTimetableStore) DeleteByCourse(ctx context.Context, courseCode string) (int64, error) {
	m.deleted = append(m.deleted, courseCode)
	count := int64(len(m.entries[courseCode]))
	delete(m.entries, courseCode)
	return count, nil
}

func (m *mockTimetableStore) UpdateSlot(ctx context.Context, entry *models.TimetableEntry) error {
	m.updated = append(m.updated, *entry)
	for i, existing := range m.entries[entry.CourseCode] {
		if existing.EntryDate.Equal(entry.EntryDate) && existing.Slot == entry.Slot {
			existing.SubjectCode = entry.SubjectCode
			existing.SubjectName = entry.SubjectName
			existing.MainInstructor = entry.MainInstructor
			existing.AssistantInstructor = entry.AssistantInstructor
			existing.ReserveInstructor = entry.ReserveInstructor
			m.entries[entry.CourseCode][i] = existing
		}
	}
	return nil
}

type mockProposalStore struct {
	saved   map[string]*models.TimetableProposal
	deleted []string
}

func (m *mockProposalStore) Save(ctx context.Context, proposal *models.TimetableProposal, ttl time.Duration) error {
	if m.saved == nil {
		m.saved = make(map[string]*models.TimetableProposal)
	}
	m.saved[proposal.ID] = proposal
	return nil
}

func (m *mockProposalStore) Get(ctx context.Context, id string) (*models.TimetableProposal, error) {
	if proposal, ok := m.saved[id]; ok {
		return proposal, nil
	}
	return nil, appErrors.ErrCacheMiss
}

func (m *mockProposalStore) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.saved, id)
	return nil
}

func weekdayOf(d int) *int { return &d }

func newTimetableFixture() (*TimetableService, *mockTimetableStore, *mockProposalStore) {
	endDate := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	courses := &mockCourseReader{courses: map[string]*models.Course{
		"kdt11": {
			Code:      "kdt11",
			Name:      "Bio Health Data Track 11",
			StartDate: time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
			EndDate:   &endDate,
		},
	}}
	subjects := &mockSubjectReader{
		byCourse: map[string][]models.Subject{
			"kdt11": {
				{Code: "PY", Name: "Python", CourseCode: "kdt11", TotalHours: 24, MainInstructor: "I-01", ReserveInstructor: "I-02", SortOrder: 1},
				{Code: "SQL", Name: "Databases", CourseCode: "kdt11", TotalHours: 16, DayOfWeek: weekdayOf(1), MainInstructor: "I-03", SortOrder: 2},
				{Code: "ML", Name: "Machine Learning", CourseCode: "kdt11", TotalHours: 40, MainInstructor: "I-04", SortOrder: 3},
			},
		},
		byCode: map[string]*models.Subject{
			"PY": {Code: "PY", Name: "Python", CourseCode: "kdt11", TotalHours: 24, MainInstructor: "I-01", ReserveInstructor: "I-02"},
			"ML": {Code: "ML", Name: "Machine Learning", CourseCode: "kdt11", TotalHours: 40, MainInstructor: "I-04"},
		},
	}
	holidays := &mockHolidayReader{holidays: []models.Holiday{
		{ID: "h1", Date: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), Name: "Foundation Day"},
	}}
	store := &mockTimetableStore{}
	proposals := &mockProposalStore{}

	svc := NewTimetableService(courses, subjects, holidays, store, proposals, nil, TimetableConfig{}, validator.New(), zap.NewNop())
	return svc, store, proposals
}

func TestTimetableServiceGenerate(t *testing.T) {
	svc, _, proposals := newTimetableFixture()

	resp, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{CourseCode: "kdt11"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ProposalID)
	assert.Equal(t, "kdt11", resp.CourseCode)
	assert.Equal(t, "2025-03-03", resp.WindowStart)
	assert.Empty(t, resp.Residual, "80 hours fit easily inside four months")
	// 80 hours at 8h per day fills exactly ten business days.
	assert.Len(t, resp.Days, 10)

	scheduled := 0
	for _, day := range resp.Days {
		assert.NotEqual(t, time.Saturday, day.Date.Weekday())
		assert.NotEqual(t, time.Sunday, day.Date.Weekday())
		assert.False(t, day.Date.Equal(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)), "holiday must be skipped")
		if day.Morning != nil {
			scheduled += day.Morning.Hours
		}
		if day.Afternoon != nil {
			scheduled += day.Afternoon.Hours
		}
	}
	assert.Equal(t, 80, scheduled)

	require.Len(t, proposals.saved, 1)
	assert.Contains(t, proposals.saved, resp.ProposalID)
}

func TestTimetableServiceGenerateUnknownCourse(t *testing.T) {
	svc, _, _ := newTimetableFixture()

	_, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{CourseCode: "nope"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestTimetableServiceGenerateNoSubjects(t *testing.T) {
	svc, _, _ := newTimetableFixture()
	start := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	svc.courses.(*mockCourseReader).courses["empty"] = &models.Course{Code: "empty", StartDate: start}

	_, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{CourseCode: "empty"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErr.Code)
}

func TestTimetableServiceGenerateWindowOverride(t *testing.T) {
	svc, _, _ := newTimetableFixture()

	// One week only: 80 subject hours cannot fit into five business days.
	resp, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		CourseCode: "kdt11",
		StartDate:  "2025-03-03",
		EndDate:    "2025-03-07",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Days, 5)
	assert.NotEmpty(t, resp.Residual)

	residualTotal := 0
	for _, r := range resp.Residual {
		residualTotal += r.RemainingHours
	}
	assert.Equal(t, 40, residualTotal, "five 8h days absorb half of the 80 hours")
}

func TestTimetableServiceSavePromotesProposal(t *testing.T) {
	svc, store, proposals := newTimetableFixture()

	generated, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{CourseCode: "kdt11"})
	require.NoError(t, err)

	saved, err := svc.Save(context.Background(), dto.SaveTimetableRequest{ProposalID: generated.ProposalID})
	require.NoError(t, err)
	assert.Equal(t, "kdt11", saved.CourseCode)
	assert.Equal(t, 20, saved.SavedSlots, "ten full days yield twenty half-day rows")

	require.Contains(t, store.replaced, "kdt11")
	assert.Len(t, store.replaced["kdt11"], 20)
	assert.Contains(t, proposals.deleted, generated.ProposalID, "saved proposal is dropped from the store")
}

func TestTimetableServiceSaveExpiredProposal(t *testing.T) {
	svc, _, _ := newTimetableFixture()

	_, err := svc.Save(context.Background(), dto.SaveTimetableRequest{ProposalID: "gone"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestTimetableServiceGetAndDelete(t *testing.T) {
	svc, _, _ := newTimetableFixture()

	generated, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{CourseCode: "kdt11"})
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), dto.SaveTimetableRequest{ProposalID: generated.ProposalID})
	require.NoError(t, err)

	fetched, err := svc.Get(context.Background(), "kdt11")
	require.NoError(t, err)
	assert.Len(t, fetched.Days, 10)

	require.NoError(t, svc.Delete(context.Background(), "kdt11"))

	_, err = svc.Get(context.Background(), "kdt11")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	err = svc.Delete(context.Background(), "kdt11")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTimetableServiceEditSlotKeepsHours(t *testing.T) {
	svc, store, _ := newTimetableFixture()

	generated, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{CourseCode: "kdt11"})
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), dto.SaveTimetableRequest{ProposalID: generated.ProposalID})
	require.NoError(t, err)

	firstDate := generated.Days[0].Date.Format("2006-01-02")
	resp, err := svc.EditSlot(context.Background(), "kdt11", dto.EditSlotRequest{
		EntryDate:   firstDate,
		Slot:        models.SlotAM,
		SubjectCode: "PY",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Days[0].Morning)
	assert.Equal(t, "PY", resp.Days[0].Morning.SubjectCode)
	assert.Equal(t, "I-01", resp.Days[0].Morning.MainInstructor)
	assert.Equal(t, generated.Days[0].Morning.Hours, resp.Days[0].Morning.Hours, "hours survive the edit")

	require.NotEmpty(t, store.updated)
	assert.Equal(t, models.SlotAM, store.updated[0].Slot)
}

func TestTimetableServiceEditSlotUnknownDate(t *testing.T) {
	svc, _, _ := newTimetableFixture()

	generated, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{CourseCode: "kdt11"})
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), dto.SaveTimetableRequest{ProposalID: generated.ProposalID})
	require.NoError(t, err)

	_, err = svc.EditSlot(context.Background(), "kdt11", dto.EditSlotRequest{
		EntryDate:   "2030-01-01",
		Slot:        models.SlotAM,
		SubjectCode: "PY",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTimetableServiceSwapInstructors(t *testing.T) {
	svc, store, _ := newTimetableFixture()

	generated, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{CourseCode: "kdt11"})
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), dto.SaveTimetableRequest{ProposalID: generated.ProposalID})
	require.NoError(t, err)

	day := generated.Days[0]
	require.NotNil(t, day.Morning)
	firstDate := day.Date.Format("2006-01-02")

	resp, err := svc.SwapInstructors(context.Background(), "kdt11", dto.SwapInstructorsRequest{
		EntryDate: firstDate,
		Role:      "reserve",
	})
	require.NoError(t, err)

	swapped := resp.Days[0].Morning
	require.NotNil(t, swapped)
	assert.Equal(t, day.Morning.ReserveInstructor, swapped.MainInstructor)
	assert.Equal(t, day.Morning.MainInstructor, swapped.ReserveInstructor)
	assert.NotEmpty(t, store.updated)
}
