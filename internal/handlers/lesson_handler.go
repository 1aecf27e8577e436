package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/services"
	"github.com/formacentre/training-service/internal/utils"
	"github.com/formacentre/training-service/internal/validator"
)

type LessonHandler struct {
	BaseHandler
	service services.LessonService
}

func NewLessonHandler(service services.LessonService, logger utils.Logger) *LessonHandler {
	return &LessonHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetLesson returns one driving lesson
// @Summary Get lesson
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.DrivingLesson
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /lessons/{id} [get]
func (h *LessonHandler) GetLesson(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	lesson, err := h.service.GetLesson(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// BookLesson books a driving lesson slot
// @Summary Book lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Param request body validator.LessonCreateRequest true "Lesson payload"
// @Success 201 {object} models.DrivingLesson
// @Failure 409 {object} ErrorResponse "Slot conflict"
// @Router /lessons [post]
func (h *LessonHandler) BookLesson(c *gin.Context) {
	var req validator.LessonCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Booking lesson",
		"student_id", req.StudentID, "instructor_id", req.InstructorID, "starts_at", req.StartsAt)

	lesson, err := h.service.BookLesson(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lesson)
}

// UpdateLessonStatus completes, cancels or marks a no-show
// @Summary Change lesson status
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param request body object true "New status"
// @Success 200 {object} models.DrivingLesson
// @Failure 422 {object} ErrorResponse "Invalid transition"
// @Router /lessons/{id}/status [put]
func (h *LessonHandler) UpdateLessonStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Status models.LessonStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Changing lesson status", "lesson_id", id, "status", req.Status)

	lesson, err := h.service.ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// ListVehicles returns the active fleet
// @Summary List vehicles
// @Tags lessons
// @Produce json
// @Success 200 {array} models.Vehicle
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /vehicles [get]
func (h *LessonHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.service.ListVehicles(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicles)
}
