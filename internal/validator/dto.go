package validator

import (
	"time"

	"github.com/formacentre/training-service/internal/models"
)

// CourseCreateRequest creates a catalog entry
type CourseCreateRequest struct {
	Title         string                `json:"title" validate:"required,min=3,max=200"`
	Description   *string               `json:"description" validate:"omitempty,max=5000"`
	Category      models.CourseCategory `json:"category" validate:"required,course_category"`
	PriceCents    int                   `json:"price_cents" validate:"required,min=0"`
	DurationHours int                   `json:"duration_hours" validate:"required,min=1,max=1000"`
	Modules       []ModuleRequest       `json:"modules" validate:"omitempty,dive"`
}

// CourseUpdateRequest updates a catalog entry; nil fields are untouched
type CourseUpdateRequest struct {
	Title         *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description   *string  `json:"description" validate:"omitempty,max=5000"`
	PriceCents    *int     `json:"price_cents" validate:"omitempty,min=0"`
	DurationHours *int     `json:"duration_hours" validate:"omitempty,min=1,max=1000"`
	Active        *bool    `json:"active"`
}

// ModuleRequest is one ordered content unit of a course
type ModuleRequest struct {
	Title    string  `json:"title" validate:"required,min=3,max=200"`
	Summary  *string `json:"summary" validate:"omitempty,max=2000"`
	Position int     `json:"position" validate:"required,min=1"`
}

// SessionCreateRequest schedules a cohort
type SessionCreateRequest struct {
	CourseID     uint      `json:"course_id" validate:"required"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" validate:"required"`
	Capacity     int       `json:"capacity" validate:"required,min=1,max=100"`
	Location     string    `json:"location" validate:"required,max=200"`
	InstructorID *uint     `json:"instructor_id"`
}

// SessionUpdateRequest reschedules or re-staffs a cohort
type SessionUpdateRequest struct {
	StartDate    *time.Time            `json:"start_date"`
	EndDate      *time.Time            `json:"end_date"`
	Capacity     *int                  `json:"capacity" validate:"omitempty,min=1,max=100"`
	Location     *string               `json:"location" validate:"omitempty,max=200"`
	InstructorID *uint                 `json:"instructor_id"`
	Status       *models.SessionStatus `json:"status"`
}

// EnrollmentCreateRequest enrolls a student into a session
type EnrollmentCreateRequest struct {
	StudentID uint    `json:"student_id" validate:"required"`
	SessionID uint    `json:"session_id" validate:"required"`
	Notes     *string `json:"notes" validate:"omitempty,max=2000"`
}

// PaymentCreateRequest records a payment against an enrollment
type PaymentCreateRequest struct {
	EnrollmentID uint                 `json:"enrollment_id" validate:"required"`
	AmountCents  int                  `json:"amount_cents" validate:"required,min=1"`
	Method       models.PaymentMethod `json:"method" validate:"required,payment_method"`
	Reference    *string              `json:"reference" validate:"omitempty,max=255"`
	Paid         bool                 `json:"paid"`
}

// LessonCreateRequest books a driving lesson slot
type LessonCreateRequest struct {
	StudentID    uint      `json:"student_id" validate:"required"`
	InstructorID uint      `json:"instructor_id" validate:"required"`
	VehicleID    uint      `json:"vehicle_id" validate:"required"`
	StartsAt     time.Time `json:"starts_at" validate:"required"`
	EndsAt       time.Time `json:"ends_at" validate:"required"`
	Notes        *string   `json:"notes" validate:"omitempty,max=2000"`
}

// DocumentReviewRequest verifies or rejects a student document
type DocumentReviewRequest struct {
	Status models.DocumentStatus `json:"status" validate:"required,oneof=verified rejected"`
}
