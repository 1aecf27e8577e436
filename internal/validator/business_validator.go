package validator

import (
	"time"
)

// ValidateSessionDates applies scheduling business rules: a session must
// start before it ends, and new sessions cannot start in the past.
func (v *Validator) ValidateSessionDates(start, end time.Time, isNew bool) ValidationErrors {
	var errors ValidationErrors

	if !start.Before(end) {
		errors = append(errors, ValidationError{
			Field:   "start_date",
			Tag:     "date_range",
			Message: "start date must be before end date",
		})
	}

	if isNew && start.Before(time.Now()) {
		errors = append(errors, ValidationError{
			Field:   "start_date",
			Tag:     "future_date",
			Message: "session cannot be scheduled in the past",
		})
	}

	return errors
}

// ValidateLessonSlot applies lesson booking rules: positive duration,
// bounded at 4 hours, not in the past.
func (v *Validator) ValidateLessonSlot(start, end time.Time) ValidationErrors {
	var errors ValidationErrors

	if !start.Before(end) {
		errors = append(errors, ValidationError{
			Field:   "starts_at",
			Tag:     "date_range",
			Message: "lesson must start before it ends",
		})
		return errors
	}

	if end.Sub(start) > 4*time.Hour {
		errors = append(errors, ValidationError{
			Field:   "ends_at",
			Tag:     "max_duration",
			Message: "lesson cannot exceed 4 hours",
		})
	}

	if start.Before(time.Now()) {
		errors = append(errors, ValidationError{
			Field:   "starts_at",
			Tag:     "future_date",
			Message: "lesson cannot be booked in the past",
		})
	}

	return errors
}
