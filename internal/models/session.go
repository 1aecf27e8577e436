package models

import (
	"time"

	"gorm.io/gorm"
)

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionOngoing   SessionStatus = "ongoing"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// TrainingSession is a scheduled cohort of a course.
type TrainingSession struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	CourseID uint   `json:"course_id" gorm:"not null;index"`
	Course   Course `json:"course,omitempty"`

	StartDate time.Time `json:"start_date" gorm:"not null;index"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`
	Capacity  int       `json:"capacity" gorm:"not null"`
	Location  string    `json:"location" gorm:"size:200"`

	InstructorID *uint         `json:"instructor_id" gorm:"index"`
	Instructor   *User         `json:"instructor,omitempty"`
	Status       SessionStatus `json:"status" gorm:"not null;size:20;default:scheduled;index"`

	Enrollments []Enrollment `json:"enrollments,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (TrainingSession) TableName() string {
	return "training_sessions"
}
