package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
)

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentPostgreSQL creates the enrollment repository
func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Session.Course").
		First(&enrollment, id).Error; err != nil {
		return nil, handleDBError(err, "get enrollment by id")
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) GetByStudentAndSession(ctx context.Context, studentID, sessionID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND session_id = ?", studentID, sessionID).
		First(&enrollment).Error; err != nil {
		return nil, handleDBError(err, "get enrollment by student and session")
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if err := r.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		return handleDBError(err, "create enrollment")
	}
	return nil
}

func (r *enrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	if err := r.db.WithContext(ctx).Save(enrollment).Error; err != nil {
		return handleDBError(err, "update enrollment")
	}
	return nil
}

func (r *enrollmentRepository) List(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error) {
	var enrollments []*models.Enrollment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Preload("Student").
		Preload("Session.Course")

	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.SessionID != nil {
		query = query.Where("session_id = ?", *filters.SessionID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count enrollments")
	}

	query = applyPagination(query.Order("created_at DESC"), filters.Limit, filters.Offset)
	if err := query.Find(&enrollments).Error; err != nil {
		return nil, 0, handleDBError(err, "list enrollments")
	}

	return enrollments, total, nil
}

func (r *enrollmentRepository) CountByStatus(ctx context.Context) (map[models.EnrollmentStatus]int64, error) {
	var rows []struct {
		Status models.EnrollmentStatus
		Count  int64
	}

	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, handleDBError(err, "count enrollments by status")
	}

	counts := make(map[models.EnrollmentStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
