package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/formacentre/training-service/internal/cache"
	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
	"github.com/formacentre/training-service/internal/validator"
)

type courseService struct {
	repo      repositories.Repository
	validator *validator.Validator
	cache     *cache.CacheManager
	logger    *slog.Logger
}

// NewCourseService creates the catalog service
func NewCourseService(repo repositories.Repository, v *validator.Validator, cm *cache.CacheManager, logger *slog.Logger) CourseService {
	return &courseService{
		repo:      repo,
		validator: v,
		cache:     cm,
		logger:    logger,
	}
}

func (s *courseService) GetCourse(ctx context.Context, id uint) (*models.Course, error) {
	return s.repo.Course().GetByIDWithModules(ctx, id)
}

func (s *courseService) ListCourses(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	return s.repo.Course().List(ctx, filters)
}

func (s *courseService) CreateCourse(ctx context.Context, req *validator.CourseCreateRequest) (*models.Course, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	course := &models.Course{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		PriceCents:    req.PriceCents,
		DurationHours: req.DurationHours,
		Active:        true,
	}
	for _, m := range req.Modules {
		course.Modules = append(course.Modules, models.CourseModule{
			Title:    m.Title,
			Summary:  m.Summary,
			Position: m.Position,
		})
	}

	if err := s.repo.Course().Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	cache.InvalidateCourseCache(ctx, s.cache, course.ID)
	s.logger.Info("Course created", "course_id", course.ID, "category", course.Category)
	return course, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, id uint, req *validator.CourseUpdateRequest) (*models.Course, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.PriceCents != nil {
		course.PriceCents = *req.PriceCents
	}
	if req.DurationHours != nil {
		course.DurationHours = *req.DurationHours
	}
	if req.Active != nil {
		course.Active = *req.Active
	}

	if err := s.repo.Course().Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	cache.InvalidateCourseCache(ctx, s.cache, course.ID)
	return course, nil
}

// DeactivateCourse retires a catalog entry without touching its sessions
func (s *courseService) DeactivateCourse(ctx context.Context, id uint) error {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		return err
	}

	course.Active = false
	if err := s.repo.Course().Update(ctx, course); err != nil {
		return fmt.Errorf("failed to deactivate course: %w", err)
	}

	cache.InvalidateCourseCache(ctx, s.cache, id)
	s.logger.Info("Course deactivated", "course_id", id)
	return nil
}
