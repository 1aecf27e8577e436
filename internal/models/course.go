package models

import (
	"time"

	"gorm.io/gorm"
)

type CourseCategory string

const (
	CategoryPermisB CourseCategory = "permis_b"
	CategorySSIAP   CourseCategory = "ssiap"
	CategorySST     CourseCategory = "sst"
	CategoryVTC     CourseCategory = "vtc"
	CategoryTaxi    CourseCategory = "taxi"
	CategoryCACES   CourseCategory = "caces"
)

// Course is a catalog entry (permis B, SSIAP 1-3, SST, VTC, CACES...).
type Course struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"not null;size:200"`
	Description *string        `json:"description" gorm:"type:text"`
	Category    CourseCategory `json:"category" gorm:"not null;size:20;index"`

	// PriceCents avoids floating-point money
	PriceCents    int  `json:"price_cents" gorm:"not null"`
	DurationHours int  `json:"duration_hours" gorm:"not null"`
	Active        bool `json:"active" gorm:"default:true;index"`

	Modules []CourseModule `json:"modules,omitempty" gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseModule is an ordered content unit within a course.
type CourseModule struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	CourseID uint    `json:"course_id" gorm:"not null;index"`
	Title    string  `json:"title" gorm:"not null;size:200"`
	Summary  *string `json:"summary" gorm:"type:text"`
	Position int     `json:"position" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}
