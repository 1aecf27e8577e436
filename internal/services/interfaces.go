package services

import (
	"context"
	"errors"
	"time"

	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
	"github.com/formacentre/training-service/internal/validator"
)

// ===== DOMAIN ERRORS =====

var (
	// ErrSessionFull is returned when a session has no remaining seat
	ErrSessionFull = errors.New("session is at capacity")

	// ErrAlreadyEnrolled is returned on duplicate student/session pairs
	ErrAlreadyEnrolled = errors.New("student already enrolled in this session")

	// ErrSlotConflict is returned when a lesson overlaps an existing
	// booking for the student, the instructor or the vehicle
	ErrSlotConflict = errors.New("lesson slot conflicts with an existing booking")

	// ErrCourseInactive is returned when scheduling against a retired course
	ErrCourseInactive = errors.New("course is not active")

	// ErrInvalidTransition is returned on illegal status changes
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ===== RESULT TYPES =====

// SessionWithAvailability decorates a session with its seat count
type SessionWithAvailability struct {
	*models.TrainingSession
	EnrolledCount  int64 `json:"enrolled_count"`
	RemainingSeats int64 `json:"remaining_seats"`
}

// EnrollmentBalance summarizes money owed on one enrollment
type EnrollmentBalance struct {
	EnrollmentID uint  `json:"enrollment_id"`
	PriceCents   int64 `json:"price_cents"`
	PaidCents    int64 `json:"paid_cents"`
	DueCents     int64 `json:"due_cents"`
}

// PlanningEntry is one slot in a user's agenda, either a driving lesson
// or a training session day.
type PlanningEntry struct {
	Kind     string    `json:"kind"` // "lesson" or "session"
	ID       uint      `json:"id"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Location string    `json:"location,omitempty"`
}

// AdminDashboard aggregates center-wide indicators
type AdminDashboard struct {
	ActiveCourses           int64                             `json:"active_courses"`
	EnrollmentsByStatus     map[models.EnrollmentStatus]int64 `json:"enrollments_by_status"`
	UpcomingSessions        []*SessionWithAvailability        `json:"upcoming_sessions"`
	OutstandingBalanceCents int64                             `json:"outstanding_balance_cents"`
}

// StudentDashboard aggregates one student's view
type StudentDashboard struct {
	Enrollments []*models.Enrollment      `json:"enrollments"`
	NextLesson  *models.DrivingLesson     `json:"next_lesson,omitempty"`
	Documents   []*models.StudentDocument `json:"documents"`
}

// ===== SERVICE INTERFACES =====

type CourseService interface {
	GetCourse(ctx context.Context, id uint) (*models.Course, error)
	ListCourses(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error)
	CreateCourse(ctx context.Context, req *validator.CourseCreateRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, id uint, req *validator.CourseUpdateRequest) (*models.Course, error)
	DeactivateCourse(ctx context.Context, id uint) error
}

type SessionService interface {
	GetSession(ctx context.Context, id uint) (*SessionWithAvailability, error)
	ListSessions(ctx context.Context, filters repositories.SessionFilters) ([]*SessionWithAvailability, int64, error)
	ScheduleSession(ctx context.Context, req *validator.SessionCreateRequest) (*models.TrainingSession, error)
	UpdateSession(ctx context.Context, id uint, req *validator.SessionUpdateRequest) (*models.TrainingSession, error)
	CancelSession(ctx context.Context, id uint) error
}

type EnrollmentService interface {
	GetEnrollment(ctx context.Context, id uint) (*models.Enrollment, error)
	ListEnrollments(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error)
	Enroll(ctx context.Context, req *validator.EnrollmentCreateRequest) (*models.Enrollment, error)
	ChangeStatus(ctx context.Context, id uint, status models.EnrollmentStatus) (*models.Enrollment, error)
}

type PaymentService interface {
	RecordPayment(ctx context.Context, req *validator.PaymentCreateRequest, recordedBy uint) (*models.Payment, error)
	ListPayments(ctx context.Context, filters repositories.PaymentFilters) ([]*models.Payment, int64, error)
	GetBalance(ctx context.Context, enrollmentID uint) (*EnrollmentBalance, error)
}

type LessonService interface {
	GetLesson(ctx context.Context, id uint) (*models.DrivingLesson, error)
	BookLesson(ctx context.Context, req *validator.LessonCreateRequest) (*models.DrivingLesson, error)
	ChangeStatus(ctx context.Context, id uint, status models.LessonStatus) (*models.DrivingLesson, error)
	ListVehicles(ctx context.Context) ([]*models.Vehicle, error)
}

type PlanningService interface {
	WeekFor(ctx context.Context, userID uint, weekStart time.Time) ([]*PlanningEntry, error)
}

type DashboardService interface {
	AdminOverview(ctx context.Context) (*AdminDashboard, error)
	StudentOverview(ctx context.Context, studentID uint) (*StudentDashboard, error)
}

type DocumentService interface {
	SubmitDocument(ctx context.Context, studentID uint, kind, fileRef string) (*models.StudentDocument, error)
	ReviewDocument(ctx context.Context, id uint, status models.DocumentStatus, reviewerID uint) (*models.StudentDocument, error)
	ListForStudent(ctx context.Context, studentID uint) ([]*models.StudentDocument, error)
}

type ExportService interface {
	SessionRosterXLSX(ctx context.Context, sessionID uint) ([]byte, string, error)
	PaymentLedgerXLSX(ctx context.Context, from, to time.Time) ([]byte, string, error)
}

type UserService interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error)
}
