package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleOwner      UserRole = "owner"
	RoleAdmin      UserRole = "admin"
	RoleSecretary  UserRole = "secretary"
	RoleTeacher    UserRole = "teacher"
	RoleInstructor UserRole = "instructor"
	RoleStudent    UserRole = "student"
)

// RolePrecedence lists roles from highest to lowest privilege. TEACHER is
// listed before INSTRUCTOR: they share a level, and TEACHER wins the
// primary-role election when both are present.
var RolePrecedence = []UserRole{
	RoleOwner,
	RoleAdmin,
	RoleSecretary,
	RoleTeacher,
	RoleInstructor,
	RoleStudent,
}

var roleLevels = map[UserRole]int{
	RoleOwner:      50,
	RoleAdmin:      40,
	RoleSecretary:  30,
	RoleTeacher:    20,
	RoleInstructor: 20,
	RoleStudent:    10,
}

// Level returns the precedence level of the role; unknown roles rank below
// STUDENT.
func (r UserRole) Level() int {
	return roleLevels[r]
}

// Satisfies reports whether holding this role grants access gated on
// required. Equal-level roles (TEACHER, INSTRUCTOR) are siblings, not
// substitutes: only a strictly higher level or the exact role qualifies.
func (r UserRole) Satisfies(required UserRole) bool {
	if r == required {
		return true
	}
	return r.Level() > required.Level()
}

// User is the locally persisted account, reconciled from Casdoor on every
// authenticated request.
type User struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	CasdoorID *string `json:"casdoor_id" gorm:"uniqueIndex;size:255"`
	Email     string  `json:"email" gorm:"uniqueIndex;not null;size:255"`
	FullName  string  `json:"full_name" gorm:"not null;size:100"`

	// Role is the legacy single-role field kept for older authorization
	// checks; PrimaryRole carries the same value under a clearer name.
	Role        UserRole                      `json:"role" gorm:"not null;size:20;default:student"`
	PrimaryRole UserRole                      `json:"primary_role" gorm:"not null;size:20;default:student"`
	Roles       datatypes.JSONSlice[UserRole] `json:"roles"`

	// Profile fields inferred from the identity provider on first sight,
	// never overwritten once set locally.
	FirstName *string `json:"first_name" gorm:"size:100"`
	LastName  *string `json:"last_name" gorm:"size:100"`
	Phone     *string `json:"phone" gorm:"size:30"`

	LastLoginAt      *time.Time `json:"last_login_at"`
	StripeCustomerID *string    `json:"stripe_customer_id" gorm:"size:255"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// HasRole reports whether any granted role satisfies the required role.
func (u *User) HasRole(required UserRole) bool {
	for _, role := range u.Roles {
		if role.Satisfies(required) {
			return true
		}
	}
	// Legacy rows may predate the roles column
	return len(u.Roles) == 0 && u.Role.Satisfies(required)
}
