package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/formacentre/training-service/internal/cache"
	"github.com/formacentre/training-service/internal/events"
	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
	"github.com/formacentre/training-service/internal/validator"
)

type sessionService struct {
	repo      repositories.Repository
	validator *validator.Validator
	cache     *cache.CacheManager
	publisher events.EventPublisher
	logger    *slog.Logger
}

// NewSessionService creates the session scheduling service
func NewSessionService(repo repositories.Repository, v *validator.Validator, cm *cache.CacheManager, publisher events.EventPublisher, logger *slog.Logger) SessionService {
	return &sessionService{
		repo:      repo,
		validator: v,
		cache:     cm,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *sessionService) GetSession(ctx context.Context, id uint) (*SessionWithAvailability, error) {
	session, err := s.repo.Session().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withAvailability(ctx, session)
}

func (s *sessionService) ListSessions(ctx context.Context, filters repositories.SessionFilters) ([]*SessionWithAvailability, int64, error) {
	sessions, total, err := s.repo.Session().List(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*SessionWithAvailability, 0, len(sessions))
	for _, session := range sessions {
		decorated, err := s.withAvailability(ctx, session)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, decorated)
	}
	return out, total, nil
}

func (s *sessionService) ScheduleSession(ctx context.Context, req *validator.SessionCreateRequest) (*models.TrainingSession, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}
	if errs := s.validator.ValidateSessionDates(req.StartDate, req.EndDate, true); errs.HasErrors() {
		return nil, errs
	}

	course, err := s.repo.Course().GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !course.Active {
		return nil, ErrCourseInactive
	}

	session := &models.TrainingSession{
		CourseID:     req.CourseID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Capacity:     req.Capacity,
		Location:     req.Location,
		InstructorID: req.InstructorID,
		Status:       models.SessionScheduled,
	}

	if err := s.repo.Session().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to schedule session: %w", err)
	}

	cache.InvalidateSessionCache(ctx, s.cache, session.ID)
	s.publishSessionEvent(ctx, events.EventSessionScheduled, session)
	s.logger.Info("Session scheduled",
		"session_id", session.ID, "course_id", session.CourseID, "start", session.StartDate)
	return session, nil
}

func (s *sessionService) UpdateSession(ctx context.Context, id uint, req *validator.SessionUpdateRequest) (*models.TrainingSession, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	session, err := s.repo.Session().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartDate != nil {
		session.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		session.EndDate = *req.EndDate
	}
	if errs := s.validator.ValidateSessionDates(session.StartDate, session.EndDate, false); errs.HasErrors() {
		return nil, errs
	}

	if req.Capacity != nil {
		enrolled, err := s.repo.Session().CountEnrollments(ctx, id)
		if err != nil {
			return nil, err
		}
		if int64(*req.Capacity) < enrolled {
			return nil, fmt.Errorf("capacity %d is below current enrollment count %d", *req.Capacity, enrolled)
		}
		session.Capacity = *req.Capacity
	}
	if req.Location != nil {
		session.Location = *req.Location
	}
	if req.InstructorID != nil {
		session.InstructorID = req.InstructorID
	}
	if req.Status != nil {
		if !validSessionTransition(session.Status, *req.Status) {
			return nil, ErrInvalidTransition
		}
		session.Status = *req.Status
	}

	if err := s.repo.Session().Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	cache.InvalidateSessionCache(ctx, s.cache, session.ID)
	return session, nil
}

func (s *sessionService) CancelSession(ctx context.Context, id uint) error {
	session, err := s.repo.Session().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if session.Status == models.SessionCompleted {
		return ErrInvalidTransition
	}

	session.Status = models.SessionCancelled
	if err := s.repo.Session().Update(ctx, session); err != nil {
		return fmt.Errorf("failed to cancel session: %w", err)
	}

	cache.InvalidateSessionCache(ctx, s.cache, session.ID)
	s.publishSessionEvent(ctx, events.EventSessionCancelled, session)
	s.logger.Info("Session cancelled", "session_id", id)
	return nil
}

func (s *sessionService) withAvailability(ctx context.Context, session *models.TrainingSession) (*SessionWithAvailability, error) {
	enrolled, err := s.repo.Session().CountEnrollments(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	remaining := int64(session.Capacity) - enrolled
	if remaining < 0 {
		remaining = 0
	}

	return &SessionWithAvailability{
		TrainingSession: session,
		EnrolledCount:   enrolled,
		RemainingSeats:  remaining,
	}, nil
}

func (s *sessionService) publishSessionEvent(ctx context.Context, eventType string, session *models.TrainingSession) {
	event := &events.Event{
		Type: eventType,
		Data: events.SessionEvent{
			SessionID: session.ID,
			CourseID:  session.CourseID,
			StartDate: session.StartDate,
			EndDate:   session.EndDate,
		},
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish session event", "error", err, "type", eventType)
	}
}

// validSessionTransition encodes the session lifecycle:
// scheduled -> ongoing -> completed, with cancellation allowed before
// completion.
func validSessionTransition(from, to models.SessionStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case models.SessionScheduled:
		return to == models.SessionOngoing || to == models.SessionCancelled
	case models.SessionOngoing:
		return to == models.SessionCompleted || to == models.SessionCancelled
	}
	return false
}
