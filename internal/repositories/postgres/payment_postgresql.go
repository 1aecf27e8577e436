package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentPostgreSQL creates the payment repository
func NewPaymentPostgreSQL(db *gorm.DB) repositories.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).
		Preload("Enrollment").
		First(&payment, id).Error; err != nil {
		return nil, handleDBError(err, "get payment by id")
	}
	return &payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return handleDBError(err, "create payment")
	}
	return nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	if err := r.db.WithContext(ctx).Save(payment).Error; err != nil {
		return handleDBError(err, "update payment")
	}
	return nil
}

func (r *paymentRepository) List(ctx context.Context, filters repositories.PaymentFilters) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Payment{}).
		Preload("Enrollment.Student").
		Preload("Enrollment.Session.Course")

	if filters.EnrollmentID != nil {
		query = query.Where("enrollment_id = ?", *filters.EnrollmentID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Method != nil {
		query = query.Where("method = ?", *filters.Method)
	}
	if filters.From != nil {
		query = query.Where("created_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("created_at <= ?", *filters.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count payments")
	}

	query = applyPagination(query.Order("created_at DESC"), filters.Limit, filters.Offset)
	if err := query.Find(&payments).Error; err != nil {
		return nil, 0, handleDBError(err, "list payments")
	}

	return payments, total, nil
}

func (r *paymentRepository) SumPaidByEnrollment(ctx context.Context, enrollmentID uint) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("enrollment_id = ? AND status = ?", enrollmentID, models.PaymentPaid).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, handleDBError(err, "sum paid by enrollment")
	}
	return sum, nil
}

// OutstandingBalanceCents returns the total course price of confirmed
// enrollments minus everything already paid.
func (r *paymentRepository) OutstandingBalanceCents(ctx context.Context) (int64, error) {
	var owed int64
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Joins("JOIN training_sessions ON training_sessions.id = enrollments.session_id").
		Joins("JOIN courses ON courses.id = training_sessions.course_id").
		Where("enrollments.status IN ?", []models.EnrollmentStatus{
			models.EnrollmentPending, models.EnrollmentConfirmed,
		}).
		Select("COALESCE(SUM(courses.price_cents), 0)").
		Scan(&owed).Error
	if err != nil {
		return 0, handleDBError(err, "sum enrollment prices")
	}

	var paid int64
	err = r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Joins("JOIN enrollments ON enrollments.id = payments.enrollment_id").
		Where("payments.status = ? AND enrollments.status IN ?", models.PaymentPaid,
			[]models.EnrollmentStatus{models.EnrollmentPending, models.EnrollmentConfirmed}).
		Select("COALESCE(SUM(payments.amount_cents), 0)").
		Scan(&paid).Error
	if err != nil {
		return 0, handleDBError(err, "sum paid amounts")
	}

	balance := owed - paid
	if balance < 0 {
		balance = 0
	}
	return balance, nil
}
