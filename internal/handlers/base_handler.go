package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formacentre/training-service/internal/repositories"
	"github.com/formacentre/training-service/internal/services"
	"github.com/formacentre/training-service/internal/utils"
	"github.com/formacentre/training-service/internal/validator"
)

// ErrorResponse is the JSON error body returned by every handler
type ErrorResponse struct {
	Message string                     `json:"message"`
	Details validator.ValidationErrors `json:"details,omitempty"`
}

// BaseHandler provides request-scoped logging and shared error mapping
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a base handler with the given logger
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs the start of handler processing with request context
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.LoggerFromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

// LogError logs a handler-level error with request context
func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.LoggerFromContext(c.Request.Context(), h.logger).Error(msg, args...)
}

// handleServiceError maps service and repository errors to HTTP status
// codes with a JSON body.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrs,
		})
		return
	}

	switch {
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Resource not found"})
	case errors.Is(err, services.ErrAlreadyEnrolled),
		errors.Is(err, services.ErrSlotConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrSessionFull),
		errors.Is(err, services.ErrCourseInactive),
		errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Message: err.Error()})
	default:
		h.LogError(c, err, "Unhandled service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}
