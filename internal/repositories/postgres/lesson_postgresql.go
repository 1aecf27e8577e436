package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
)

type lessonRepository struct {
	db *gorm.DB
}

// NewLessonPostgreSQL creates the driving lesson repository
func NewLessonPostgreSQL(db *gorm.DB) repositories.LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) GetByID(ctx context.Context, id uint) (*models.DrivingLesson, error) {
	var lesson models.DrivingLesson
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Instructor").
		Preload("Vehicle").
		First(&lesson, id).Error; err != nil {
		return nil, handleDBError(err, "get lesson by id")
	}
	return &lesson, nil
}

func (r *lessonRepository) Create(ctx context.Context, lesson *models.DrivingLesson) error {
	if err := r.db.WithContext(ctx).Create(lesson).Error; err != nil {
		return handleDBError(err, "create lesson")
	}
	return nil
}

func (r *lessonRepository) Update(ctx context.Context, lesson *models.DrivingLesson) error {
	if err := r.db.WithContext(ctx).Save(lesson).Error; err != nil {
		return handleDBError(err, "update lesson")
	}
	return nil
}

// FindConflicts returns booked lessons overlapping [startsAt, endsAt)
// that share the instructor, the student, or the vehicle.
func (r *lessonRepository) FindConflicts(ctx context.Context, instructorID, studentID, vehicleID uint, startsAt, endsAt time.Time) ([]*models.DrivingLesson, error) {
	var conflicts []*models.DrivingLesson

	err := r.db.WithContext(ctx).
		Where("status = ?", models.LessonBooked).
		Where("starts_at < ? AND ends_at > ?", endsAt, startsAt).
		Where("instructor_id = ? OR student_id = ? OR vehicle_id = ?",
			instructorID, studentID, vehicleID).
		Find(&conflicts).Error
	if err != nil {
		return nil, handleDBError(err, "find lesson conflicts")
	}

	return conflicts, nil
}

func (r *lessonRepository) ListForUser(ctx context.Context, userID uint, from, to time.Time) ([]*models.DrivingLesson, error) {
	var lessons []*models.DrivingLesson

	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Instructor").
		Preload("Vehicle").
		Where("starts_at < ? AND ends_at > ?", to, from).
		Where("student_id = ? OR instructor_id = ?", userID, userID).
		Order("starts_at ASC").
		Find(&lessons).Error
	if err != nil {
		return nil, handleDBError(err, "list lessons for user")
	}

	return lessons, nil
}

func (r *lessonRepository) NextForStudent(ctx context.Context, studentID uint) (*models.DrivingLesson, error) {
	var lesson models.DrivingLesson
	err := r.db.WithContext(ctx).
		Preload("Instructor").
		Preload("Vehicle").
		Where("student_id = ? AND status = ? AND starts_at > ?",
			studentID, models.LessonBooked, time.Now()).
		Order("starts_at ASC").
		First(&lesson).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, handleDBError(err, "next lesson for student")
	}
	return &lesson, nil
}
