package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/formacentre/training-service/internal/cache"
	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
)

type courseRepository struct {
	db          *gorm.DB
	cacheHelper *cache.CacheHelper
}

// NewCoursePostgreSQL creates the catalog repository with read-through
// caching of single courses.
func NewCoursePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.CourseRepository {
	return &courseRepository{
		db:          db,
		cacheHelper: cache.NewCacheHelper(redisClient, cache.CourseCacheConfig.Prefix),
	}
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var cached models.Course
	if err := r.cacheHelper.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, handleDBError(err, "get course by id")
	}

	_ = r.cacheHelper.Set(ctx, cacheKey, &course, cache.CourseCacheConfig.TTL)
	return &course, nil
}

func (r *courseRepository) GetByIDWithModules(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&course, id).Error; err != nil {
		return nil, handleDBError(err, "get course with modules")
	}
	return &course, nil
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return handleDBError(err, "create course")
	}
	return nil
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Save(course).Error; err != nil {
		return handleDBError(err, "update course")
	}
	cache.SafeDelete(ctx, r.cacheHelper, fmt.Sprintf("id:%d", course.ID))
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Course{}, id).Error; err != nil {
		return handleDBError(err, "delete course")
	}
	cache.SafeDelete(ctx, r.cacheHelper, fmt.Sprintf("id:%d", id))
	return nil
}

func (r *courseRepository) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	var courses []*models.Course
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Course{})

	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count courses")
	}

	query = applyPagination(query.Order("title ASC"), filters.Limit, filters.Offset)
	if err := query.Find(&courses).Error; err != nil {
		return nil, 0, handleDBError(err, "list courses")
	}

	return courses, total, nil
}
