package events

import (
	"context"
	"time"
)

// Event types published by the training service
const (
	EventUserProvisioned   = "user.provisioned"
	EventEnrollmentCreated = "enrollment.created"
	EventEnrollmentUpdated = "enrollment.updated"
	EventPaymentRecorded   = "payment.recorded"
	EventSessionScheduled  = "session.scheduled"
	EventSessionCancelled  = "session.cancelled"
	EventLessonBooked      = "lesson.booked"
)

// EventSource identifies this service in the event envelope
const EventSource = "training-service"

// EventVersion is bumped on envelope-breaking changes
const EventVersion = "1.0"

// Event is the envelope for every message published to the broker.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// EventPublisher abstracts the broker so services can be tested with the
// mock implementation.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// EnrollmentEvent is the payload for enrollment lifecycle events
type EnrollmentEvent struct {
	EnrollmentID uint   `json:"enrollment_id"`
	StudentID    uint   `json:"student_id"`
	SessionID    uint   `json:"session_id"`
	Status       string `json:"status"`
}

// PaymentEvent is the payload for payment.recorded
type PaymentEvent struct {
	PaymentID    uint   `json:"payment_id"`
	EnrollmentID uint   `json:"enrollment_id"`
	AmountCents  int    `json:"amount_cents"`
	Method       string `json:"method"`
	Status       string `json:"status"`
}

// SessionEvent is the payload for session scheduling events
type SessionEvent struct {
	SessionID uint      `json:"session_id"`
	CourseID  uint      `json:"course_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// LessonEvent is the payload for lesson.booked
type LessonEvent struct {
	LessonID     uint      `json:"lesson_id"`
	StudentID    uint      `json:"student_id"`
	InstructorID uint      `json:"instructor_id"`
	VehicleID    uint      `json:"vehicle_id"`
	StartsAt     time.Time `json:"starts_at"`
}

// UserProvisionedEvent is the payload for user.provisioned
type UserProvisionedEvent struct {
	UserID      uint   `json:"user_id"`
	Email       string `json:"email"`
	PrimaryRole string `json:"primary_role"`
}
