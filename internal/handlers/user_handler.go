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

type UserHandler struct {
	BaseHandler
	users     services.UserService
	documents services.DocumentService
	validator *validator.Validator
}

func NewUserHandler(users services.UserService, documents services.DocumentService, v *validator.Validator, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		users:       users,
		documents:   documents,
		validator:   v,
	}
}

// Me returns the authenticated user's profile and roles
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers returns the user directory
// @Summary List users
// @Tags users
// @Produce json
// @Param q query string false "Name or email search"
// @Param role query string false "Filter by role"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	filters := repositories.UserFilters{
		Query:  c.Query("q"),
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if role := c.Query("role"); role != "" {
		r := models.UserRole(role)
		filters.Role = &r
	}

	users, total, err := h.users.ListUsers(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": users, "total": total})
}

// GetUser returns one user
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// SubmitDocument attaches a document to the current student's file
// @Summary Submit document
// @Tags documents
// @Accept json
// @Produce json
// @Param request body object true "Document kind and file reference"
// @Success 201 {object} models.StudentDocument
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /users/me/documents [post]
func (h *UserHandler) SubmitDocument(c *gin.Context) {
	userID := CurrentUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req struct {
		Kind    string `json:"kind" binding:"required"`
		FileRef string `json:"file_ref" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Submitting document", "kind", req.Kind)

	doc, err := h.documents.SubmitDocument(c.Request.Context(), userID, req.Kind, req.FileRef)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// MyDocuments lists the current student's documents
// @Summary List own documents
// @Tags documents
// @Produce json
// @Success 200 {array} models.StudentDocument
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /users/me/documents [get]
func (h *UserHandler) MyDocuments(c *gin.Context) {
	userID := CurrentUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	docs, err := h.documents.ListForStudent(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, docs)
}

// ReviewDocument verifies or rejects a pending document
// @Summary Review document
// @Tags documents
// @Accept json
// @Produce json
// @Param id path int true "Document ID"
// @Param request body validator.DocumentReviewRequest true "Review decision"
// @Success 200 {object} models.StudentDocument
// @Failure 422 {object} ErrorResponse "Invalid transition"
// @Router /documents/{id}/review [put]
func (h *UserHandler) ReviewDocument(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req validator.DocumentReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}
	if errs := h.validator.Validate(&req); errs.HasErrors() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Validation failed", Details: errs})
		return
	}

	h.LogRequest(c, "Reviewing document", "document_id", id, "status", req.Status)

	doc, err := h.documents.ReviewDocument(c.Request.Context(), id, req.Status, CurrentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}
