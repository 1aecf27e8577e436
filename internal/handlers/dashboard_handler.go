package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formacentre/training-service/internal/services"
	"github.com/formacentre/training-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// AdminOverview returns center-wide indicators
// @Summary Admin dashboard
// @Description Enrollment counts by status, upcoming sessions and outstanding balance
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.AdminDashboard
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /dashboard/admin [get]
func (h *DashboardHandler) AdminOverview(c *gin.Context) {
	h.LogRequest(c, "Getting admin dashboard")

	dashboard, err := h.service.AdminOverview(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// MyOverview returns the authenticated student's dashboard
// @Summary Student dashboard
// @Description Enrollments, next driving lesson and document pile for the current user
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.StudentDashboard
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /dashboard/me [get]
func (h *DashboardHandler) MyOverview(c *gin.Context) {
	userID := CurrentUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	dashboard, err := h.service.StudentOverview(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
