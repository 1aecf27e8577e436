package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionPostgreSQL creates the training session repository
func NewSessionPostgreSQL(db *gorm.DB) repositories.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) GetByID(ctx context.Context, id uint) (*models.TrainingSession, error) {
	var session models.TrainingSession
	if err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Instructor").
		First(&session, id).Error; err != nil {
		return nil, handleDBError(err, "get session by id")
	}
	return &session, nil
}

func (r *sessionRepository) Create(ctx context.Context, session *models.TrainingSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return handleDBError(err, "create session")
	}
	return nil
}

func (r *sessionRepository) Update(ctx context.Context, session *models.TrainingSession) error {
	if err := r.db.WithContext(ctx).Save(session).Error; err != nil {
		return handleDBError(err, "update session")
	}
	return nil
}

func (r *sessionRepository) List(ctx context.Context, filters repositories.SessionFilters) ([]*models.TrainingSession, int64, error) {
	var sessions []*models.TrainingSession
	var total int64

	query := r.db.WithContext(ctx).Model(&models.TrainingSession{}).Preload("Course")

	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}
	if filters.InstructorID != nil {
		query = query.Where("instructor_id = ?", *filters.InstructorID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.From != nil {
		query = query.Where("start_date >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("start_date <= ?", *filters.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count sessions")
	}

	query = applyPagination(query.Order("start_date ASC"), filters.Limit, filters.Offset)
	if err := query.Find(&sessions).Error; err != nil {
		return nil, 0, handleDBError(err, "list sessions")
	}

	return sessions, total, nil
}

func (r *sessionRepository) CountEnrollments(ctx context.Context, sessionID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("session_id = ? AND status NOT IN ?", sessionID,
			[]models.EnrollmentStatus{models.EnrollmentCancelled}).
		Count(&count).Error
	if err != nil {
		return 0, handleDBError(err, "count enrollments")
	}
	return count, nil
}

// ListBetween returns the sessions a user participates in during the
// window, either as enrolled student or assigned instructor.
func (r *sessionRepository) ListBetween(ctx context.Context, userID uint, from, to time.Time) ([]*models.TrainingSession, error) {
	var sessions []*models.TrainingSession

	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("start_date < ? AND end_date > ?", to, from).
		Where("instructor_id = ? OR id IN (?)",
			userID,
			r.db.Model(&models.Enrollment{}).
				Select("session_id").
				Where("student_id = ? AND status NOT IN ?", userID,
					[]models.EnrollmentStatus{models.EnrollmentCancelled}),
		).
		Order("start_date ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, handleDBError(err, "list sessions between dates")
	}

	return sessions, nil
}
