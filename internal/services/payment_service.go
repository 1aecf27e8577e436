package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/formacentre/training-service/internal/cache"
	"github.com/formacentre/training-service/internal/events"
	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
	"github.com/formacentre/training-service/internal/validator"
)

type paymentService struct {
	repo      repositories.Repository
	validator *validator.Validator
	cache     *cache.CacheManager
	publisher events.EventPublisher
	logger    *slog.Logger
}

// NewPaymentService creates the payment recording service
func NewPaymentService(repo repositories.Repository, v *validator.Validator, cm *cache.CacheManager, publisher events.EventPublisher, logger *slog.Logger) PaymentService {
	return &paymentService{
		repo:      repo,
		validator: v,
		cache:     cm,
		publisher: publisher,
		logger:    logger,
	}
}

// RecordPayment registers a payment or installment against an
// enrollment. Secretaries record cash and transfer payments here; Stripe
// payments arrive already marked paid.
func (s *paymentService) RecordPayment(ctx context.Context, req *validator.PaymentCreateRequest, recordedBy uint) (*models.Payment, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	enrollment, err := s.repo.Enrollment().GetByID(ctx, req.EnrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status == models.EnrollmentCancelled {
		return nil, fmt.Errorf("cannot record payment on cancelled enrollment %d", req.EnrollmentID)
	}

	payment := &models.Payment{
		EnrollmentID: req.EnrollmentID,
		AmountCents:  req.AmountCents,
		Method:       req.Method,
		Status:       models.PaymentPending,
		Reference:    req.Reference,
		RecordedBy:   &recordedBy,
	}
	if req.Paid {
		now := time.Now()
		payment.Status = models.PaymentPaid
		payment.PaidAt = &now
	}

	if err := s.repo.Payment().Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	cache.SafeInvalidatePattern(ctx, s.cache.Stats, "dashboard:*")
	s.publishPaymentEvent(ctx, payment)
	s.logger.Info("Payment recorded",
		"payment_id", payment.ID,
		"enrollment_id", payment.EnrollmentID,
		"amount_cents", payment.AmountCents,
		"method", payment.Method)
	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, filters repositories.PaymentFilters) ([]*models.Payment, int64, error) {
	return s.repo.Payment().List(ctx, filters)
}

// GetBalance computes what remains due on one enrollment: course price
// minus the sum of paid payments.
func (s *paymentService) GetBalance(ctx context.Context, enrollmentID uint) (*EnrollmentBalance, error) {
	enrollment, err := s.repo.Enrollment().GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	session, err := s.repo.Session().GetByID(ctx, enrollment.SessionID)
	if err != nil {
		return nil, err
	}

	course, err := s.repo.Course().GetByID(ctx, session.CourseID)
	if err != nil {
		return nil, err
	}

	paid, err := s.repo.Payment().SumPaidByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	due := int64(course.PriceCents) - paid
	if due < 0 {
		due = 0
	}

	return &EnrollmentBalance{
		EnrollmentID: enrollmentID,
		PriceCents:   int64(course.PriceCents),
		PaidCents:    paid,
		DueCents:     due,
	}, nil
}

func (s *paymentService) publishPaymentEvent(ctx context.Context, payment *models.Payment) {
	event := &events.Event{
		Type: events.EventPaymentRecorded,
		Data: events.PaymentEvent{
			PaymentID:    payment.ID,
			EnrollmentID: payment.EnrollmentID,
			AmountCents:  payment.AmountCents,
			Method:       string(payment.Method),
			Status:       string(payment.Status),
		},
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish payment event", "error", err)
	}
}
