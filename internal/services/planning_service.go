package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/formacentre/training-service/internal/cache"
	"github.com/formacentre/training-service/internal/repositories"
)

type planningService struct {
	repo   repositories.Repository
	cache  *cache.CacheManager
	logger *slog.Logger
}

// NewPlanningService creates the weekly agenda service
func NewPlanningService(repo repositories.Repository, cm *cache.CacheManager, logger *slog.Logger) PlanningService {
	return &planningService{
		repo:   repo,
		cache:  cm,
		logger: logger,
	}
}

// WeekFor builds the merged agenda of one user for the week starting at
// weekStart: driving lessons where they are student or instructor, plus
// each day of the training sessions they attend or teach. The result is
// cached briefly per user and week.
func (s *planningService) WeekFor(ctx context.Context, userID uint, weekStart time.Time) ([]*PlanningEntry, error) {
	weekStart = startOfDay(weekStart)
	weekEnd := weekStart.AddDate(0, 0, 7)
	cacheKey := fmt.Sprintf("user:%d:week:%s", userID, weekStart.Format("2006-01-02"))

	var cached []*PlanningEntry
	if err := s.cache.Planning.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	entries, err := s.buildWeek(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Planning.Set(ctx, cacheKey, entries, cache.PlanningCacheConfig.TTL); err != nil {
		s.logger.Warn("Failed to cache planning week", "error", err, "user_id", userID)
	}
	return entries, nil
}

// startOfDay snaps to midnight in the time's own location. Truncate
// would cut against the UTC epoch and shift the date for local times.
func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func (s *planningService) buildWeek(ctx context.Context, userID uint, from, to time.Time) ([]*PlanningEntry, error) {
	entries := []*PlanningEntry{}

	lessons, err := s.repo.Lesson().ListForUser(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	for _, lesson := range lessons {
		title := "Leçon de conduite"
		if lesson.Vehicle.Registration != "" {
			title = fmt.Sprintf("Leçon de conduite (%s)", lesson.Vehicle.Registration)
		}
		entries = append(entries, &PlanningEntry{
			Kind:     "lesson",
			ID:       lesson.ID,
			Title:    title,
			StartsAt: lesson.StartsAt,
			EndsAt:   lesson.EndsAt,
		})
	}

	sessions, err := s.repo.Session().ListBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	for _, session := range sessions {
		// A multi-day session shows once per overlapping day
		day := startOfDay(session.StartDate)
		for ; day.Before(session.EndDate); day = day.AddDate(0, 0, 1) {
			if day.Before(from) || !day.Before(to) {
				continue
			}
			entries = append(entries, &PlanningEntry{
				Kind:     "session",
				ID:       session.ID,
				Title:    session.Course.Title,
				StartsAt: day,
				EndsAt:   day.AddDate(0, 0, 1),
				Location: session.Location,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].StartsAt.Before(entries[j].StartsAt)
	})
	return entries, nil
}
