package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/formacentre/training-service/internal/models"
)

// ErrNotFound is returned by every Get* method when no row matches.
var ErrNotFound = errors.New("record not found")

// ===== FILTERS =====

// UserFilters defines filters for user queries
type UserFilters struct {
	Query  string // name or email search
	Role   *models.UserRole
	Limit  int
	Offset int
}

// CourseFilters defines filters for catalog queries
type CourseFilters struct {
	Category   *models.CourseCategory
	ActiveOnly bool
	Limit      int
	Offset     int
}

// SessionFilters defines filters for session queries
type SessionFilters struct {
	CourseID     *uint
	InstructorID *uint
	Status       *models.SessionStatus
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// EnrollmentFilters defines filters for enrollment queries
type EnrollmentFilters struct {
	StudentID *uint
	SessionID *uint
	Status    *models.EnrollmentStatus
	Limit     int
	Offset    int
}

// PaymentFilters defines filters for payment queries
type PaymentFilters struct {
	EnrollmentID *uint
	Status       *models.PaymentStatus
	Method       *models.PaymentMethod
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// ===== PER-ENTITY REPOSITORIES =====

// UserRepository persists locally resolved users. Identity lives in
// Casdoor; this table is the platform's own user record.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByCasdoorID(ctx context.Context, casdoorID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
}

type CourseRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	GetByIDWithModules(ctx context.Context, id uint) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters CourseFilters) ([]*models.Course, int64, error)
}

type SessionRepository interface {
	GetByID(ctx context.Context, id uint) (*models.TrainingSession, error)
	Create(ctx context.Context, session *models.TrainingSession) error
	Update(ctx context.Context, session *models.TrainingSession) error
	List(ctx context.Context, filters SessionFilters) ([]*models.TrainingSession, int64, error)
	CountEnrollments(ctx context.Context, sessionID uint) (int64, error)
	ListBetween(ctx context.Context, userID uint, from, to time.Time) ([]*models.TrainingSession, error)
}

type EnrollmentRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Enrollment, error)
	GetByStudentAndSession(ctx context.Context, studentID, sessionID uint) (*models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Update(ctx context.Context, enrollment *models.Enrollment) error
	List(ctx context.Context, filters EnrollmentFilters) ([]*models.Enrollment, int64, error)
	CountByStatus(ctx context.Context) (map[models.EnrollmentStatus]int64, error)
}

type PaymentRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, payment *models.Payment) error
	List(ctx context.Context, filters PaymentFilters) ([]*models.Payment, int64, error)
	SumPaidByEnrollment(ctx context.Context, enrollmentID uint) (int64, error)
	OutstandingBalanceCents(ctx context.Context) (int64, error)
}

type LessonRepository interface {
	GetByID(ctx context.Context, id uint) (*models.DrivingLesson, error)
	Create(ctx context.Context, lesson *models.DrivingLesson) error
	Update(ctx context.Context, lesson *models.DrivingLesson) error
	// FindConflicts returns booked lessons overlapping the slot for any of
	// the given participants or the vehicle.
	FindConflicts(ctx context.Context, instructorID, studentID, vehicleID uint, startsAt, endsAt time.Time) ([]*models.DrivingLesson, error)
	ListForUser(ctx context.Context, userID uint, from, to time.Time) ([]*models.DrivingLesson, error)
	NextForStudent(ctx context.Context, studentID uint) (*models.DrivingLesson, error)
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Vehicle, error)
	Create(ctx context.Context, vehicle *models.Vehicle) error
	Update(ctx context.Context, vehicle *models.Vehicle) error
	ListActive(ctx context.Context) ([]*models.Vehicle, error)
}

type DocumentRepository interface {
	GetByID(ctx context.Context, id uint) (*models.StudentDocument, error)
	Create(ctx context.Context, doc *models.StudentDocument) error
	Update(ctx context.Context, doc *models.StudentDocument) error
	ListByStudent(ctx context.Context, studentID uint) ([]*models.StudentDocument, error)
}

// ===== AGGREGATE =====

// Repository bundles all per-entity repositories.
type Repository interface {
	User() UserRepository
	Course() CourseRepository
	Session() SessionRepository
	Enrollment() EnrollmentRepository
	Payment() PaymentRepository
	Lesson() LessonRepository
	Vehicle() VehicleRepository
	Document() DocumentRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error
	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns repository lifecycle (init, health, shutdown).
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
