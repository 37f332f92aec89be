package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Emmett6401/bioHealthScheduleManager/internal/dto"
	appErrors "github.com/Emmett6401/bioHealthScheduleManager/pkg/errors"
)

type timetablePlannerMock struct {
	generated dto.GenerateTimetableRequest
	saved     dto.SaveTimetableRequest
	edited    dto.EditSlotRequest
	editCode  string
	getErr    error
}

func (m *timetablePlannerMock) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	m.generated = req
	return &dto.GenerateTimetableResponse{ProposalID: "proposal-1", CourseCode: req.CourseCode}, nil
}

func (m *timetablePlannerMock) Save(ctx context.Context, req dto.SaveTimetableRequest) (*dto.SaveTimetableResponse, error) {
	m.saved = req
	return &dto.SaveTimetableResponse{CourseCode: "kdt11", SavedSlots: 20}, nil
}

func (m *timetablePlannerMock) Get(ctx context.Context, courseCode string) (*dto.TimetableResponse, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return &dto.TimetableResponse{CourseCode: courseCode}, nil
}

func (m *timetablePlannerMock) Delete(ctx context.Context, courseCode string) error {
	return nil
}

func (m *timetablePlannerMock) EditSlot(ctx context.Context, courseCode string, req dto.EditSlotRequest) (*dto.TimetableResponse, error) {
	m.editCode = courseCode
	m.edited = req
	return &dto.TimetableResponse{CourseCode: courseCode}, nil
}

func (m *timetablePlannerMock) SwapInstructors(ctx context.Context, courseCode string, req dto.SwapInstructorsRequest) (*dto.TimetableResponse, error) {
	return &dto.TimetableResponse{CourseCode: courseCode}, nil
}

func newTimetableRouter(mock *timetablePlannerMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, "/api/v1", Handlers{Timetables: &TimetableHandler{timetables: mock}})
	return r
}

func TestTimetableGenerateSuccess(t *testing.T) {
	mock := &timetablePlannerMock{}
	router := newTimetableRouter(mock)

	body := []byte(`{"course_code":"kdt11","start_date":"2025-03-03"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/timetables/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "kdt11", mock.generated.CourseCode)
	require.Equal(t, "2025-03-03", mock.generated.StartDate)

	var envelope struct {
		Data dto.GenerateTimetableResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "proposal-1", envelope.Data.ProposalID)
}

func TestTimetableGenerateRejectsMalformedBody(t *testing.T) {
	router := newTimetableRouter(&timetablePlannerMock{})

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/timetables/generate", bytes.NewReader([]byte(`{"course_code":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetableSave(t *testing.T) {
	mock := &timetablePlannerMock{}
	router := newTimetableRouter(mock)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/timetables", bytes.NewReader([]byte(`{"proposal_id":"proposal-1"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "proposal-1", mock.saved.ProposalID)
}

func TestTimetableGetNotFound(t *testing.T) {
	mock := &timetablePlannerMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "no timetable saved for course")}
	router := newTimetableRouter(mock)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/timetables/kdt99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTimetableEditSlot(t *testing.T) {
	mock := &timetablePlannerMock{}
	router := newTimetableRouter(mock)

	body := []byte(`{"entry_date":"2025-03-04","slot":"PM","subject_code":"ML"}`)
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/timetables/kdt11/slots", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "kdt11", mock.editCode)
	require.Equal(t, "PM", mock.edited.Slot)
	require.Equal(t, "ML", mock.edited.SubjectCode)
}

func TestTimetableSwapInstructors(t *testing.T) {
	router := newTimetableRouter(&timetablePlannerMock{})

	body := []byte(`{"entry_date":"2025-03-04","role":"reserve"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/timetables/kdt11/swap-instructors", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
