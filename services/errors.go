// services/errors.go
package services

import (
	"fmt"

	"pharmaflow-backend/models"
)

// ValidationError reports malformed or missing caller input. Nothing
// has been written when it is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports that a candidate appointment overlaps an
// existing Scheduled one. The conflicting appointment is carried so
// callers can tell the user what is in the way.
type ConflictError struct {
	Existing models.Appointment
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("appointment conflicts with appointment %d at %s",
		e.Existing.ID, e.Existing.StartTime)
}

// InsufficientStockError reports a decrement larger than the live
// stock. No write has been attempted.
type InsufficientStockError struct {
	ProductID int
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product %d: requested %d but only %d in stock",
		e.ProductID, e.Requested, e.Available)
}
