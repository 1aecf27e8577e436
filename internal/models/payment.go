package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentStripe   PaymentMethod = "stripe"
	PaymentCard     PaymentMethod = "card"
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Payment is a single payment (or installment) against an enrollment.
type Payment struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	EnrollmentID uint       `json:"enrollment_id" gorm:"not null;index"`
	Enrollment   Enrollment `json:"enrollment,omitempty"`

	AmountCents int           `json:"amount_cents" gorm:"not null"`
	Method      PaymentMethod `json:"method" gorm:"not null;size:20"`
	Status      PaymentStatus `json:"status" gorm:"not null;size:20;default:pending;index"`

	// Reference is the Stripe payment id, bank transfer label, or receipt
	// number for manual payments.
	Reference  *string    `json:"reference" gorm:"size:255"`
	PaidAt     *time.Time `json:"paid_at"`
	RecordedBy *uint      `json:"recorded_by"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Payment) TableName() string {
	return "payments"
}
