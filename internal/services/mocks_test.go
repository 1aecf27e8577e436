package services

import (
	"context"
	"errors"
	"time"

	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
)

// mockUserRepository is a hand-rolled UserRepository with pluggable
// behavior per method and call counters for write assertions.
type mockUserRepository struct {
	getByIDFn        func(ctx context.Context, id uint) (*models.User, error)
	getByCasdoorIDFn func(ctx context.Context, casdoorID string) (*models.User, error)
	getByEmailFn     func(ctx context.Context, email string) (*models.User, error)
	createFn         func(ctx context.Context, user *models.User) error
	updateFn         func(ctx context.Context, user *models.User) error

	createCalls int
	updateCalls int
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepository) GetByCasdoorID(ctx context.Context, casdoorID string) (*models.User, error) {
	if m.getByCasdoorIDFn != nil {
		return m.getByCasdoorIDFn(ctx, casdoorID)
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error {
	m.updateCalls++
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	return nil, 0, nil
}

// mockPaymentProvider records CreateCustomer calls
type mockPaymentProvider struct {
	configured bool
	customerID string
	err        error
	calls      int
}

func (m *mockPaymentProvider) IsConfigured() bool {
	return m.configured
}

func (m *mockPaymentProvider) CreateCustomer(ctx context.Context, email, name string, metadata map[string]string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.customerID, nil
}

// mockSessionRepository covers the session lookups used by enrollment
// and scheduling tests.
type mockSessionRepository struct {
	getByIDFn          func(ctx context.Context, id uint) (*models.TrainingSession, error)
	countEnrollmentsFn func(ctx context.Context, sessionID uint) (int64, error)
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id uint) (*models.TrainingSession, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repositories.ErrNotFound
}

func (m *mockSessionRepository) Create(ctx context.Context, session *models.TrainingSession) error {
	session.ID = 1
	return nil
}

func (m *mockSessionRepository) Update(ctx context.Context, session *models.TrainingSession) error {
	return nil
}

func (m *mockSessionRepository) List(ctx context.Context, filters repositories.SessionFilters) ([]*models.TrainingSession, int64, error) {
	return nil, 0, nil
}

func (m *mockSessionRepository) CountEnrollments(ctx context.Context, sessionID uint) (int64, error) {
	if m.countEnrollmentsFn != nil {
		return m.countEnrollmentsFn(ctx, sessionID)
	}
	return 0, nil
}

func (m *mockSessionRepository) ListBetween(ctx context.Context, userID uint, from, to time.Time) ([]*models.TrainingSession, error) {
	return nil, nil
}

// mockEnrollmentRepository records creates for enrollment tests
type mockEnrollmentRepository struct {
	getByStudentAndSessionFn func(ctx context.Context, studentID, sessionID uint) (*models.Enrollment, error)
	listFn                   func(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error)

	createCalls int
}

func (m *mockEnrollmentRepository) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	return nil, repositories.ErrNotFound
}

func (m *mockEnrollmentRepository) GetByStudentAndSession(ctx context.Context, studentID, sessionID uint) (*models.Enrollment, error) {
	if m.getByStudentAndSessionFn != nil {
		return m.getByStudentAndSessionFn(ctx, studentID, sessionID)
	}
	return nil, repositories.ErrNotFound
}

func (m *mockEnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	m.createCalls++
	enrollment.ID = 42
	return nil
}

func (m *mockEnrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	return nil
}

func (m *mockEnrollmentRepository) List(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filters)
	}
	return nil, 0, nil
}

func (m *mockEnrollmentRepository) CountByStatus(ctx context.Context) (map[models.EnrollmentStatus]int64, error) {
	return nil, nil
}

// mockPaymentRepository records List calls for export paging tests
type mockPaymentRepository struct {
	listFn func(ctx context.Context, filters repositories.PaymentFilters) ([]*models.Payment, int64, error)

	listCalls []repositories.PaymentFilters
}

func (m *mockPaymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	return nil, repositories.ErrNotFound
}

func (m *mockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return nil
}

func (m *mockPaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	return nil
}

func (m *mockPaymentRepository) List(ctx context.Context, filters repositories.PaymentFilters) ([]*models.Payment, int64, error) {
	m.listCalls = append(m.listCalls, filters)
	if m.listFn != nil {
		return m.listFn(ctx, filters)
	}
	return nil, 0, nil
}

func (m *mockPaymentRepository) SumPaidByEnrollment(ctx context.Context, enrollmentID uint) (int64, error) {
	return 0, nil
}

func (m *mockPaymentRepository) OutstandingBalanceCents(ctx context.Context) (int64, error) {
	return 0, nil
}

// mockRepository aggregates the per-entity mocks. Unset repositories
// return nil, which is fine for tests that never touch them.
type mockRepository struct {
	user       *mockUserRepository
	session    *mockSessionRepository
	enrollment *mockEnrollmentRepository
	payment    *mockPaymentRepository
}

func (m *mockRepository) User() repositories.UserRepository             { return m.user }
func (m *mockRepository) Course() repositories.CourseRepository         { return nil }
func (m *mockRepository) Session() repositories.SessionRepository       { return m.session }
func (m *mockRepository) Enrollment() repositories.EnrollmentRepository { return m.enrollment }
func (m *mockRepository) Payment() repositories.PaymentRepository       { return m.payment }
func (m *mockRepository) Lesson() repositories.LessonRepository         { return nil }
func (m *mockRepository) Vehicle() repositories.VehicleRepository       { return nil }
func (m *mockRepository) Document() repositories.DocumentRepository     { return nil }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

var errStorage = errors.New("storage unavailable")

func timePtr(t time.Time) *time.Time { return &t }

func strPtr(s string) *string { return &s }
