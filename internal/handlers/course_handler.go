package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
	"github.com/formacentre/training-service/internal/services"
	"github.com/formacentre/training-service/internal/utils"
	"github.com/formacentre/training-service/internal/validator"
)

type CourseHandler struct {
	BaseHandler
	service services.CourseService
}

func NewCourseHandler(service services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListCourses returns the catalog
// @Summary List courses
// @Description List catalog entries with optional category and active filters
// @Tags courses
// @Produce json
// @Param category query string false "Filter by category: permis_b, ssiap, sst, vtc, taxi, caces"
// @Param active query bool false "Only active courses"
// @Param limit query int false "Page size (default: 20, max: 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	filters := repositories.CourseFilters{
		ActiveOnly: c.Query("active") == "true",
		Limit:      parseIntQuery(c, "limit", 20),
		Offset:     parseIntQuery(c, "offset", 0),
	}
	if category := c.Query("category"); category != "" {
		cat := models.CourseCategory(category)
		filters.Category = &cat
	}

	courses, total, err := h.service.ListCourses(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": courses, "total": total})
}

// GetCourse returns one course with its modules
// @Summary Get course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	course, err := h.service.GetCourse(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// CreateCourse adds a catalog entry
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body validator.CourseCreateRequest true "Course payload"
// @Success 201 {object} models.Course
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req validator.CourseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Creating course", "title", req.Title)

	course, err := h.service.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// UpdateCourse modifies a catalog entry
// @Summary Update course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body validator.CourseUpdateRequest true "Fields to update"
// @Success 200 {object} models.Course
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req validator.CourseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Updating course", "course_id", id)

	course, err := h.service.UpdateCourse(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// DeactivateCourse retires a catalog entry
// @Summary Deactivate course
// @Tags courses
// @Param id path int true "Course ID"
// @Success 204
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /courses/{id} [delete]
func (h *CourseHandler) DeactivateCourse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Deactivating course", "course_id", id)

	if err := h.service.DeactivateCourse(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseIDParam reads the :id path parameter, writing a 400 on failure
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid id parameter"})
		return 0, false
	}
	return uint(id), true
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	value := c.Query(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
