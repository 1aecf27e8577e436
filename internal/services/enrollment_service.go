package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/formacentre/training-service/internal/cache"
	"github.com/formacentre/training-service/internal/events"
	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
	"github.com/formacentre/training-service/internal/validator"
)

type enrollmentService struct {
	repo      repositories.Repository
	validator *validator.Validator
	cache     *cache.CacheManager
	publisher events.EventPublisher
	logger    *slog.Logger
}

// NewEnrollmentService creates the enrollment service
func NewEnrollmentService(repo repositories.Repository, v *validator.Validator, cm *cache.CacheManager, publisher events.EventPublisher, logger *slog.Logger) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		validator: v,
		cache:     cm,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *enrollmentService) GetEnrollment(ctx context.Context, id uint) (*models.Enrollment, error) {
	return s.repo.Enrollment().GetByID(ctx, id)
}

func (s *enrollmentService) ListEnrollments(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error) {
	return s.repo.Enrollment().List(ctx, filters)
}

// Enroll registers a student into a session. The capacity check and the
// insert run inside one transaction; the unique student/session index
// backstops concurrent enrollments racing past the duplicate check.
func (s *enrollmentService) Enroll(ctx context.Context, req *validator.EnrollmentCreateRequest) (*models.Enrollment, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	var enrollment *models.Enrollment
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		session, err := tx.Session().GetByID(ctx, req.SessionID)
		if err != nil {
			return err
		}
		if session.Status != models.SessionScheduled {
			return fmt.Errorf("session %d is not open for enrollment", req.SessionID)
		}

		if _, err := tx.User().GetByID(ctx, req.StudentID); err != nil {
			return fmt.Errorf("student lookup failed: %w", err)
		}

		existing, err := tx.Enrollment().GetByStudentAndSession(ctx, req.StudentID, req.SessionID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		if existing != nil {
			return ErrAlreadyEnrolled
		}

		enrolled, err := tx.Session().CountEnrollments(ctx, req.SessionID)
		if err != nil {
			return err
		}
		if enrolled >= int64(session.Capacity) {
			return ErrSessionFull
		}

		enrollment = &models.Enrollment{
			StudentID: req.StudentID,
			SessionID: req.SessionID,
			Status:    models.EnrollmentPending,
			Notes:     req.Notes,
		}
		return tx.Enrollment().Create(ctx, enrollment)
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateSessionCache(ctx, s.cache, req.SessionID)
	cache.InvalidatePlanningCache(ctx, s.cache, req.StudentID)
	s.publishEnrollmentEvent(ctx, events.EventEnrollmentCreated, enrollment)
	s.logger.Info("Enrollment created",
		"enrollment_id", enrollment.ID, "student_id", req.StudentID, "session_id", req.SessionID)
	return enrollment, nil
}

func (s *enrollmentService) ChangeStatus(ctx context.Context, id uint, status models.EnrollmentStatus) (*models.Enrollment, error) {
	enrollment, err := s.repo.Enrollment().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !validEnrollmentTransition(enrollment.Status, status) {
		return nil, ErrInvalidTransition
	}

	enrollment.Status = status
	if err := s.repo.Enrollment().Update(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("failed to update enrollment: %w", err)
	}

	cache.InvalidateSessionCache(ctx, s.cache, enrollment.SessionID)
	cache.InvalidatePlanningCache(ctx, s.cache, enrollment.StudentID)
	s.publishEnrollmentEvent(ctx, events.EventEnrollmentUpdated, enrollment)
	return enrollment, nil
}

func (s *enrollmentService) publishEnrollmentEvent(ctx context.Context, eventType string, enrollment *models.Enrollment) {
	event := &events.Event{
		Type: eventType,
		Data: events.EnrollmentEvent{
			EnrollmentID: enrollment.ID,
			StudentID:    enrollment.StudentID,
			SessionID:    enrollment.SessionID,
			Status:       string(enrollment.Status),
		},
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish enrollment event", "error", err, "type", eventType)
	}
}

// validEnrollmentTransition encodes the enrollment lifecycle:
// pending -> confirmed -> completed, cancellable until completed.
func validEnrollmentTransition(from, to models.EnrollmentStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case models.EnrollmentPending:
		return to == models.EnrollmentConfirmed || to == models.EnrollmentCancelled
	case models.EnrollmentConfirmed:
		return to == models.EnrollmentCompleted || to == models.EnrollmentCancelled
	}
	return false
}
