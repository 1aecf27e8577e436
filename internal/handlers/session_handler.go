package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
	"github.com/formacentre/training-service/internal/services"
	"github.com/formacentre/training-service/internal/utils"
	"github.com/formacentre/training-service/internal/validator"
)

type SessionHandler struct {
	BaseHandler
	service services.SessionService
	exports services.ExportService
}

func NewSessionHandler(service services.SessionService, exports services.ExportService, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		exports:     exports,
	}
}

// ListSessions returns scheduled cohorts with seat availability
// @Summary List sessions
// @Tags sessions
// @Produce json
// @Param course_id query int false "Filter by course"
// @Param status query string false "Filter by status"
// @Param from query string false "RFC3339 lower bound on start date"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /sessions [get]
func (h *SessionHandler) ListSessions(c *gin.Context) {
	filters := repositories.SessionFilters{
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if courseID := parseIntQuery(c, "course_id", 0); courseID > 0 {
		id := uint(courseID)
		filters.CourseID = &id
	}
	if status := c.Query("status"); status != "" {
		st := models.SessionStatus(status)
		filters.Status = &st
	}
	if from := c.Query("from"); from != "" {
		if parsed, err := time.Parse(time.RFC3339, from); err == nil {
			filters.From = &parsed
		}
	}

	sessions, total, err := h.service.ListSessions(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": sessions, "total": total})
}

// GetSession returns one session with availability
// @Summary Get session
// @Tags sessions
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} services.SessionWithAvailability
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	session, err := h.service.GetSession(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// ScheduleSession creates a cohort
// @Summary Schedule session
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body validator.SessionCreateRequest true "Session payload"
// @Success 201 {object} models.TrainingSession
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /sessions [post]
func (h *SessionHandler) ScheduleSession(c *gin.Context) {
	var req validator.SessionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Scheduling session", "course_id", req.CourseID)

	session, err := h.service.ScheduleSession(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// UpdateSession reschedules or re-staffs a cohort
// @Summary Update session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param request body validator.SessionUpdateRequest true "Fields to update"
// @Success 200 {object} models.TrainingSession
// @Failure 422 {object} ErrorResponse "Invalid transition"
// @Router /sessions/{id} [put]
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req validator.SessionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Updating session", "session_id", id)

	session, err := h.service.UpdateSession(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// CancelSession cancels a cohort
// @Summary Cancel session
// @Tags sessions
// @Param id path int true "Session ID"
// @Success 204
// @Failure 422 {object} ErrorResponse "Invalid transition"
// @Router /sessions/{id} [delete]
func (h *SessionHandler) CancelSession(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Cancelling session", "session_id", id)

	if err := h.service.CancelSession(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ExportRoster streams the attendance sheet as XLSX
// @Summary Export session roster
// @Tags sessions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Session ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /sessions/{id}/roster [get]
func (h *SessionHandler) ExportRoster(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Exporting session roster", "session_id", id)

	data, filename, err := h.exports.SessionRosterXLSX(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
