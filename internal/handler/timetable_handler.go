package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Emmett6401/bioHealthScheduleManager/internal/dto"
	"github.com/Emmett6401/bioHealthScheduleManager/internal/service"
	appErrors "github.com/Emmett6401/bioHealthScheduleManager/pkg/errors"
	"github.com/Emmett6401/bioHealthScheduleManager/pkg/response"
)

type timetablePlanner interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error)
	Save(ctx context.Context, req dto.SaveTimetableRequest) (*dto.SaveTimetableResponse, error)
	Get(ctx context.Context, courseCode string) (*dto.TimetableResponse, error)
	Delete(ctx context.Context, courseCode string) error
	EditSlot(ctx context.Context, courseCode string, req dto.EditSlotRequest) (*dto.TimetableResponse, error)
	SwapInstructors(ctx context.Context, courseCode string, req dto.SwapInstructorsRequest) (*dto.TimetableResponse, error)
}

// TimetableHandler exposes timetable generation and editing endpoints.
type TimetableHandler struct {
	timetables timetablePlanner
}

// NewTimetableHandler constructs TimetableHandler.
func NewTimetableHandler(timetables *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetables: timetables}
}

// Generate godoc
// @Summary Generate a timetable proposal for a course
// @Description Allocates the course subjects into morning and afternoon blocks across business days. The proposal is held for review and must be saved explicitly.
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Generation parameters"
// @Success 200 {object} response.Envelope{data=dto.GenerateTimetableResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timetables/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.timetables.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Save godoc
// @Summary Persist a previously generated proposal
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.SaveTimetableRequest true "Proposal reference"
// @Success 201 {object} response.Envelope{data=dto.SaveTimetableResponse}
// @Failure 404 {object} response.Envelope
// @Router /timetables [post]
func (h *TimetableHandler) Save(c *gin.Context) {
	var req dto.SaveTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.timetables.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Get godoc
// @Summary Get the saved timetable of a course
// @Tags Timetables
// @Produce json
// @Param courseCode path string true "Course code"
// @Success 200 {object} response.Envelope{data=dto.TimetableResponse}
// @Failure 404 {object} response.Envelope
// @Router /timetables/{courseCode} [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	timetable, err := h.timetables.Get(c.Request.Context(), c.Param("courseCode"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetable, nil)
}

// Delete godoc
// @Summary Delete the saved timetable of a course
// @Tags Timetables
// @Produce json
// @Param courseCode path string true "Course code"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /timetables/{courseCode} [delete]
func (h *TimetableHandler) Delete(c *gin.Context) {
	if err := h.timetables.Delete(c.Request.Context(), c.Param("courseCode")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// EditSlot godoc
// @Summary Replace the subject assigned to one slot
// @Description Swaps the subject identity and instructors of a single AM or PM block. Allocated hours are untouched.
// @Tags Timetables
// @Accept json
// @Produce json
// @Param courseCode path string true "Course code"
// @Param payload body dto.EditSlotRequest true "Slot override"
// @Success 200 {object} response.Envelope{data=dto.TimetableResponse}
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /timetables/{courseCode}/slots [put]
func (h *TimetableHandler) EditSlot(c *gin.Context) {
	var req dto.EditSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	timetable, err := h.timetables.EditSlot(c.Request.Context(), c.Param("courseCode"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetable, nil)
}

// SwapInstructors godoc
// @Summary Swap main and reserve instructors for a day
// @Description Exchanges the main instructor with the chosen stand-in on every block of the day taught by that day's leading subject.
// @Tags Timetables
// @Accept json
// @Produce json
// @Param courseCode path string true "Course code"
// @Param payload body dto.SwapInstructorsRequest true "Swap parameters"
// @Success 200 {object} response.Envelope{data=dto.TimetableResponse}
// @Failure 404 {object} response.Envelope
// @Router /timetables/{courseCode}/swap-instructors [post]
func (h *TimetableHandler) SwapInstructors(c *gin.Context) {
	var req dto.SwapInstructorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	timetable, err := h.timetables.SwapInstructors(c.Request.Context(), c.Param("courseCode"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetable, nil)
}
