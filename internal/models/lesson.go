package models

import (
	"time"

	"gorm.io/gorm"
)

type LessonStatus string

const (
	LessonBooked    LessonStatus = "booked"
	LessonCompleted LessonStatus = "completed"
	LessonCancelled LessonStatus = "cancelled"
	LessonNoShow    LessonStatus = "no_show"
)

// Vehicle is a driving-school car usable for lessons.
type Vehicle struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Registration string `json:"registration" gorm:"uniqueIndex;not null;size:20"`
	Model        string `json:"model" gorm:"not null;size:100"`
	Transmission string `json:"transmission" gorm:"not null;size:20;default:manual"`
	Active       bool   `json:"active" gorm:"default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// DrivingLesson is an individual slot with a student, an instructor and a
// vehicle. Overlap checks run per participant at booking time.
type DrivingLesson struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	StudentID    uint    `json:"student_id" gorm:"not null;index"`
	Student      User    `json:"student,omitempty"`
	InstructorID uint    `json:"instructor_id" gorm:"not null;index"`
	Instructor   User    `json:"instructor,omitempty"`
	VehicleID    uint    `json:"vehicle_id" gorm:"not null;index"`
	Vehicle      Vehicle `json:"vehicle,omitempty"`

	StartsAt time.Time    `json:"starts_at" gorm:"not null;index"`
	EndsAt   time.Time    `json:"ends_at" gorm:"not null"`
	Status   LessonStatus `json:"status" gorm:"not null;size:20;default:booked;index"`
	Notes    *string      `json:"notes" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (DrivingLesson) TableName() string {
	return "driving_lessons"
}

// Overlaps reports whether two half-open time ranges intersect.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && startB.Before(endA)
}
