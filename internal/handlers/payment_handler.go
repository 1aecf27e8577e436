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

type PaymentHandler struct {
	BaseHandler
	service services.PaymentService
	exports services.ExportService
}

func NewPaymentHandler(service services.PaymentService, exports services.ExportService, logger utils.Logger) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		exports:     exports,
	}
}

// RecordPayment registers a payment against an enrollment
// @Summary Record payment
// @Tags payments
// @Accept json
// @Produce json
// @Param request body validator.PaymentCreateRequest true "Payment payload"
// @Success 201 {object} models.Payment
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /payments [post]
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req validator.PaymentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Recording payment",
		"enrollment_id", req.EnrollmentID, "amount_cents", req.AmountCents)

	payment, err := h.service.RecordPayment(c.Request.Context(), &req, CurrentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// ListPayments returns payments with optional filters
// @Summary List payments
// @Tags payments
// @Produce json
// @Param enrollment_id query int false "Filter by enrollment"
// @Param status query string false "Filter by status"
// @Param method query string false "Filter by method"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	filters := repositories.PaymentFilters{
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if enrollmentID := parseIntQuery(c, "enrollment_id", 0); enrollmentID > 0 {
		id := uint(enrollmentID)
		filters.EnrollmentID = &id
	}
	if status := c.Query("status"); status != "" {
		st := models.PaymentStatus(status)
		filters.Status = &st
	}
	if method := c.Query("method"); method != "" {
		m := models.PaymentMethod(method)
		filters.Method = &m
	}

	payments, total, err := h.service.ListPayments(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": payments, "total": total})
}

// GetBalance returns the remaining balance on one enrollment
// @Summary Get enrollment balance
// @Tags payments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} services.EnrollmentBalance
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /enrollments/{id}/balance [get]
func (h *PaymentHandler) GetBalance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	balance, err := h.service.GetBalance(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

// ExportLedger streams the payment ledger as XLSX
// @Summary Export payment ledger
// @Tags payments
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string true "RFC3339 start of range"
// @Param to query string true "RFC3339 end of range"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /payments/ledger [get]
func (h *PaymentHandler) ExportLedger(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid from parameter"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid to parameter"})
		return
	}

	h.LogRequest(c, "Exporting payment ledger", "from", from, "to", to)

	data, filename, err := h.exports.PaymentLedgerXLSX(c.Request.Context(), from, to)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
