// Package store holds the entity store for the HR dataset. Lookup tables
// (departments, job roles, benefits, training programs, surveys) are shared
// read-only reference data; fact tables are append-only. The single update
// path is the one-time identity backfill on employees.
package store

import (
	"context"
	"time"

	"github.com/hrpulse/hrpulse-backend/internal/hr/domain"
)

// Store is the persistence boundary for the generator and the analytics
// engine. Implementations must return rows ordered by ascending id and must
// reject inserts that would break referential integrity or duplicate a
// (employee, calendar month) review.
type Store interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	ListDepartments(ctx context.Context) ([]domain.Department, error)
	ListJobRoles(ctx context.Context) ([]domain.JobRole, error)
	ListBenefits(ctx context.Context) ([]domain.Benefit, error)
	ListTrainingPrograms(ctx context.Context) ([]domain.TrainingProgram, error)
	ListSurveys(ctx context.Context) ([]domain.Survey, error)
	ListPerformanceReviews(ctx context.Context) ([]domain.PerformanceReview, error)
	ListSurveyResponses(ctx context.Context) ([]domain.SurveyResponse, error)
	ListEmployeeTrainings(ctx context.Context) ([]domain.EmployeeTraining, error)
	ListEmployeeBenefits(ctx context.Context) ([]domain.EmployeeBenefit, error)

	// UpdateEmployeeIdentity rewrites the name and email of one employee.
	UpdateEmployeeIdentity(ctx context.Context, employeeID int, firstName, lastName, email string) error

	// HasReviewInMonth reports whether the employee already has a review
	// in the given calendar month, across all prior state.
	HasReviewInMonth(ctx context.Context, employeeID int, year int, month time.Month) (bool, error)

	// Insert* assign the row id on success.
	InsertPerformanceReview(ctx context.Context, review *domain.PerformanceReview) error
	InsertEmployeeTraining(ctx context.Context, training *domain.EmployeeTraining) error
	InsertEmployeeBenefit(ctx context.Context, benefit *domain.EmployeeBenefit) error
}
