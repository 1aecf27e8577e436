package services

import (
	"testing"

	"github.com/formacentre/training-service/internal/models"
)

func TestValidSessionTransition(t *testing.T) {
	tests := []struct {
		from models.SessionStatus
		to   models.SessionStatus
		want bool
	}{
		{models.SessionScheduled, models.SessionOngoing, true},
		{models.SessionScheduled, models.SessionCancelled, true},
		{models.SessionScheduled, models.SessionCompleted, false},
		{models.SessionOngoing, models.SessionCompleted, true},
		{models.SessionOngoing, models.SessionCancelled, true},
		{models.SessionCompleted, models.SessionOngoing, false},
		{models.SessionCancelled, models.SessionScheduled, false},
		{models.SessionScheduled, models.SessionScheduled, true},
	}

	for _, tt := range tests {
		if got := validSessionTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("validSessionTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestValidEnrollmentTransition(t *testing.T) {
	tests := []struct {
		from models.EnrollmentStatus
		to   models.EnrollmentStatus
		want bool
	}{
		{models.EnrollmentPending, models.EnrollmentConfirmed, true},
		{models.EnrollmentPending, models.EnrollmentCancelled, true},
		{models.EnrollmentPending, models.EnrollmentCompleted, false},
		{models.EnrollmentConfirmed, models.EnrollmentCompleted, true},
		{models.EnrollmentConfirmed, models.EnrollmentCancelled, true},
		{models.EnrollmentCompleted, models.EnrollmentPending, false},
		{models.EnrollmentCancelled, models.EnrollmentConfirmed, false},
	}

	for _, tt := range tests {
		if got := validEnrollmentTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("validEnrollmentTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
