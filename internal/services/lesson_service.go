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

type lessonService struct {
	repo      repositories.Repository
	validator *validator.Validator
	cache     *cache.CacheManager
	publisher events.EventPublisher
	logger    *slog.Logger
}

// NewLessonService creates the driving lesson booking service
func NewLessonService(repo repositories.Repository, v *validator.Validator, cm *cache.CacheManager, publisher events.EventPublisher, logger *slog.Logger) LessonService {
	return &lessonService{
		repo:      repo,
		validator: v,
		cache:     cm,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *lessonService) GetLesson(ctx context.Context, id uint) (*models.DrivingLesson, error) {
	return s.repo.Lesson().GetByID(ctx, id)
}

// BookLesson books a slot after checking that neither the student, the
// instructor nor the vehicle is already taken on an overlapping slot.
func (s *lessonService) BookLesson(ctx context.Context, req *validator.LessonCreateRequest) (*models.DrivingLesson, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}
	if errs := s.validator.ValidateLessonSlot(req.StartsAt, req.EndsAt); errs.HasErrors() {
		return nil, errs
	}

	instructor, err := s.repo.User().GetByID(ctx, req.InstructorID)
	if err != nil {
		return nil, fmt.Errorf("instructor lookup failed: %w", err)
	}
	if !instructor.HasRole(models.RoleInstructor) {
		return nil, fmt.Errorf("user %d is not an instructor", req.InstructorID)
	}

	vehicle, err := s.repo.Vehicle().GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("vehicle lookup failed: %w", err)
	}
	if !vehicle.Active {
		return nil, fmt.Errorf("vehicle %d is out of service", req.VehicleID)
	}

	var lesson *models.DrivingLesson
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		conflicts, err := tx.Lesson().FindConflicts(ctx,
			req.InstructorID, req.StudentID, req.VehicleID, req.StartsAt, req.EndsAt)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return ErrSlotConflict
		}

		lesson = &models.DrivingLesson{
			StudentID:    req.StudentID,
			InstructorID: req.InstructorID,
			VehicleID:    req.VehicleID,
			StartsAt:     req.StartsAt,
			EndsAt:       req.EndsAt,
			Status:       models.LessonBooked,
			Notes:        req.Notes,
		}
		return tx.Lesson().Create(ctx, lesson)
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidatePlanningCache(ctx, s.cache, req.StudentID)
	cache.InvalidatePlanningCache(ctx, s.cache, req.InstructorID)
	s.publishLessonEvent(ctx, lesson)
	s.logger.Info("Lesson booked",
		"lesson_id", lesson.ID,
		"student_id", req.StudentID,
		"instructor_id", req.InstructorID,
		"starts_at", req.StartsAt)
	return lesson, nil
}

func (s *lessonService) ChangeStatus(ctx context.Context, id uint, status models.LessonStatus) (*models.DrivingLesson, error) {
	lesson, err := s.repo.Lesson().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Booked lessons move to completed, cancelled or no_show; terminal
	// states never change.
	if lesson.Status != models.LessonBooked && lesson.Status != status {
		return nil, ErrInvalidTransition
	}

	lesson.Status = status
	if err := s.repo.Lesson().Update(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}

	cache.InvalidatePlanningCache(ctx, s.cache, lesson.StudentID)
	cache.InvalidatePlanningCache(ctx, s.cache, lesson.InstructorID)
	return lesson, nil
}

func (s *lessonService) ListVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	return s.repo.Vehicle().ListActive(ctx)
}

func (s *lessonService) publishLessonEvent(ctx context.Context, lesson *models.DrivingLesson) {
	event := &events.Event{
		Type: events.EventLessonBooked,
		Data: events.LessonEvent{
			LessonID:     lesson.ID,
			StudentID:    lesson.StudentID,
			InstructorID: lesson.InstructorID,
			VehicleID:    lesson.VehicleID,
			StartsAt:     lesson.StartsAt,
		},
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish lesson event", "error", err)
	}
}
