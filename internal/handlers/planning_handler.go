package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/formacentre/training-service/internal/services"
	"github.com/formacentre/training-service/internal/utils"
)

type PlanningHandler struct {
	BaseHandler
	service services.PlanningService
}

func NewPlanningHandler(service services.PlanningService, logger utils.Logger) *PlanningHandler {
	return &PlanningHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// MyWeek returns the current user's agenda for one week
// @Summary Get weekly planning
// @Description Merged agenda of driving lessons and training session days for the authenticated user
// @Tags planning
// @Produce json
// @Param week query string false "Week start date (2006-01-02), defaults to today"
// @Success 200 {array} services.PlanningEntry
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /planning/me [get]
func (h *PlanningHandler) MyWeek(c *gin.Context) {
	userID := CurrentUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	weekStart := time.Now()
	if week := c.Query("week"); week != "" {
		parsed, err := time.Parse("2006-01-02", week)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid week parameter"})
			return
		}
		weekStart = parsed
	}

	entries, err := h.service.WeekFor(c.Request.Context(), userID, weekStart)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
