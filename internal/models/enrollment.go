package models

import (
	"time"

	"gorm.io/gorm"
)

type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentConfirmed EnrollmentStatus = "confirmed"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentVerified DocumentStatus = "verified"
	DocumentRejected DocumentStatus = "rejected"
)

// Enrollment links a student to a training session.
type Enrollment struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	StudentID uint            `json:"student_id" gorm:"not null;index;uniqueIndex:idx_enrollment_student_session"`
	Student   User            `json:"student,omitempty"`
	SessionID uint            `json:"session_id" gorm:"not null;index;uniqueIndex:idx_enrollment_student_session"`
	Session   TrainingSession `json:"session,omitempty"`

	Status EnrollmentStatus `json:"status" gorm:"not null;size:20;default:pending;index"`
	Notes  *string          `json:"notes" gorm:"type:text"`

	Payments []Payment `json:"payments,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// StudentDocument is an identity or eligibility document attached to a
// student file (CNI, medical certificate, prior diploma...).
type StudentDocument struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	StudentID uint   `json:"student_id" gorm:"not null;index"`
	Kind      string `json:"kind" gorm:"not null;size:50"`
	FileRef   string `json:"file_ref" gorm:"not null;size:500"`

	Status     DocumentStatus `json:"status" gorm:"not null;size:20;default:pending;index"`
	ReviewedBy *uint          `json:"reviewed_by"`
	ReviewedAt *time.Time     `json:"reviewed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StudentDocument) TableName() string {
	return "student_documents"
}
