package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/formacentre/training-service/internal/cache"
	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
)

type dashboardService struct {
	repo     repositories.Repository
	sessions SessionService
	cache    *cache.CacheManager
	logger   *slog.Logger
}

// NewDashboardService creates the dashboard aggregation service
func NewDashboardService(repo repositories.Repository, sessions SessionService, cm *cache.CacheManager, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:     repo,
		sessions: sessions,
		cache:    cm,
		logger:   logger,
	}
}

// AdminOverview aggregates center-wide indicators for the back office.
// The result is cached: these queries scan several tables.
func (s *dashboardService) AdminOverview(ctx context.Context) (*AdminDashboard, error) {
	const cacheKey = "dashboard:admin"

	var cached AdminDashboard
	if err := s.cache.Stats.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	_, activeCourses, err := s.repo.Course().List(ctx, repositories.CourseFilters{
		ActiveOnly: true,
		Limit:      1,
	})
	if err != nil {
		return nil, err
	}

	byStatus, err := s.repo.Enrollment().CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	scheduled := models.SessionScheduled
	upcoming, _, err := s.sessions.ListSessions(ctx, repositories.SessionFilters{
		Status: &scheduled,
		From:   &now,
		Limit:  10,
	})
	if err != nil {
		return nil, err
	}

	outstanding, err := s.repo.Payment().OutstandingBalanceCents(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &AdminDashboard{
		ActiveCourses:           activeCourses,
		EnrollmentsByStatus:     byStatus,
		UpcomingSessions:        upcoming,
		OutstandingBalanceCents: outstanding,
	}

	if err := s.cache.Stats.Set(ctx, cacheKey, dashboard, cache.StatsCacheConfig.TTL); err != nil {
		s.logger.Warn("Failed to cache admin dashboard", "error", err)
	}
	return dashboard, nil
}

// StudentOverview aggregates one student's enrollments, next lesson and
// document pile.
func (s *dashboardService) StudentOverview(ctx context.Context, studentID uint) (*StudentDashboard, error) {
	enrollments, _, err := s.repo.Enrollment().List(ctx, repositories.EnrollmentFilters{
		StudentID: &studentID,
		Limit:     50,
	})
	if err != nil {
		return nil, err
	}

	next, err := s.repo.Lesson().NextForStudent(ctx, studentID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	documents, err := s.repo.Document().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &StudentDashboard{
		Enrollments: enrollments,
		NextLesson:  next,
		Documents:   documents,
	}, nil
}
