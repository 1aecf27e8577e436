package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
	"github.com/formacentre/training-service/internal/services"
	"github.com/formacentre/training-service/internal/utils"
	"github.com/formacentre/training-service/internal/validator"
)

type EnrollmentHandler struct {
	BaseHandler
	service services.EnrollmentService
}

func NewEnrollmentHandler(service services.EnrollmentService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListEnrollments returns enrollments with optional filters
// @Summary List enrollments
// @Tags enrollments
// @Produce json
// @Param student_id query int false "Filter by student"
// @Param session_id query int false "Filter by session"
// @Param status query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /enrollments [get]
func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	filters := repositories.EnrollmentFilters{
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if studentID := parseIntQuery(c, "student_id", 0); studentID > 0 {
		id := uint(studentID)
		filters.StudentID = &id
	}
	if sessionID := parseIntQuery(c, "session_id", 0); sessionID > 0 {
		id := uint(sessionID)
		filters.SessionID = &id
	}
	if status := c.Query("status"); status != "" {
		st := models.EnrollmentStatus(status)
		filters.Status = &st
	}

	enrollments, total, err := h.service.ListEnrollments(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": enrollments, "total": total})
}

// GetEnrollment returns one enrollment
// @Summary Get enrollment
// @Tags enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} models.Enrollment
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /enrollments/{id} [get]
func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	enrollment, err := h.service.GetEnrollment(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollment)
}

// CreateEnrollment registers a student into a session
// @Summary Enroll a student
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body validator.EnrollmentCreateRequest true "Enrollment payload"
// @Success 201 {object} models.Enrollment
// @Failure 409 {object} ErrorResponse "Already enrolled"
// @Failure 422 {object} ErrorResponse "Session full"
// @Router /enrollments [post]
func (h *EnrollmentHandler) CreateEnrollment(c *gin.Context) {
	var req validator.EnrollmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Creating enrollment", "student_id", req.StudentID, "session_id", req.SessionID)

	enrollment, err := h.service.Enroll(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

// UpdateEnrollmentStatus moves an enrollment through its lifecycle
// @Summary Change enrollment status
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path int true "Enrollment ID"
// @Param request body object true "New status"
// @Success 200 {object} models.Enrollment
// @Failure 422 {object} ErrorResponse "Invalid transition"
// @Router /enrollments/{id}/status [put]
func (h *EnrollmentHandler) UpdateEnrollmentStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Status models.EnrollmentStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Changing enrollment status", "enrollment_id", id, "status", req.Status)

	enrollment, err := h.service.ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollment)
}
