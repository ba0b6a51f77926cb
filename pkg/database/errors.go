package database

import (
	"strings"

	"github.com/lib/pq"

	"github.com/hrpulse/hrpulse-backend/pkg/errors"
)

// MapPQError converts a PostgreSQL error to an AppError with meaningful messages.
// Returns nil if the error is not a pq.Error.
func MapPQError(err error) *errors.AppError {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return nil
	}

	switch pqErr.Code {
	// Unique constraint violation (23505)
	case "23505":
		return mapUniqueConstraint(pqErr)

	// Foreign key violation (23503)
	case "23503":
		return errors.Wrap(pqErr, "REFERENTIAL_VIOLATION",
			"generated row references a non-existent record: "+pqErr.Constraint, 500)

	// Not null violation (23502)
	case "23502":
		col := pqErr.Column
		if col == "" {
			col = "required field"
		}
		return errors.Validation(map[string]string{
			col: "must not be empty",
		})

	// Check constraint violation (23514)
	case "23514":
		return errors.BadRequest("data validation failed: " + pqErr.Constraint)

	default:
		return nil
	}
}

// mapUniqueConstraint maps unique violations to the domain taxonomy. The
// (employee, calendar month) review guard has its own error so callers can
// distinguish it from an ordinary conflict.
func mapUniqueConstraint(pqErr *pq.Error) *errors.AppError {
	constraint := pqErr.Constraint

	switch {
	case strings.Contains(constraint, "review_month"):
		return errors.Wrap(errors.ErrDuplicateReview, "DUPLICATE_REVIEW",
			"employee already has a review in this calendar month", 409)
	case strings.Contains(constraint, "email"):
		return errors.Conflict("an employee with this email already exists")
	default:
		return errors.Conflict("a record with these values already exists")
	}
}
