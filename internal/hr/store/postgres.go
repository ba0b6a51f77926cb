package store

import (
	"context"
	"time"

	"github.com/hrpulse/hrpulse-backend/internal/hr/domain"
	"github.com/hrpulse/hrpulse-backend/pkg/database"
	"github.com/hrpulse/hrpulse-backend/pkg/errors"
)

// PostgresStore is the Store implementation backed by the relational dataset.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates a Postgres-backed store
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	query := `
		SELECT id, first_name, last_name, email, gender, marital_status,
		       department_id, job_role_id, job_level, education, education_field,
		       years_at_company, monthly_income, trainings_last_year, attrition
		FROM employees
		ORDER BY id
	`
	if err := s.db.SelectContext(ctx, &employees, query); err != nil {
		return nil, err
	}
	return employees, nil
}

func (s *PostgresStore) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	var departments []domain.Department
	if err := s.db.SelectContext(ctx, &departments, "SELECT id, name FROM departments ORDER BY id"); err != nil {
		return nil, err
	}
	return departments, nil
}

func (s *PostgresStore) ListJobRoles(ctx context.Context) ([]domain.JobRole, error) {
	var roles []domain.JobRole
	if err := s.db.SelectContext(ctx, &roles, "SELECT id, name FROM job_roles ORDER BY id"); err != nil {
		return nil, err
	}
	return roles, nil
}

func (s *PostgresStore) ListBenefits(ctx context.Context) ([]domain.Benefit, error) {
	var benefits []domain.Benefit
	query := "SELECT id, name, type, description FROM benefits ORDER BY id"
	if err := s.db.SelectContext(ctx, &benefits, query); err != nil {
		return nil, err
	}
	return benefits, nil
}

func (s *PostgresStore) ListTrainingPrograms(ctx context.Context) ([]domain.TrainingProgram, error) {
	var programs []domain.TrainingProgram
	query := "SELECT id, title, topic, duration_hours FROM training_programs ORDER BY id"
	if err := s.db.SelectContext(ctx, &programs, query); err != nil {
		return nil, err
	}
	return programs, nil
}

func (s *PostgresStore) ListSurveys(ctx context.Context) ([]domain.Survey, error) {
	var surveys []domain.Survey
	query := "SELECT id, type, quarter, year FROM surveys ORDER BY id"
	if err := s.db.SelectContext(ctx, &surveys, query); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (s *PostgresStore) ListPerformanceReviews(ctx context.Context) ([]domain.PerformanceReview, error) {
	var reviews []domain.PerformanceReview
	query := `
		SELECT id, employee_id, reviewer_id, review_date, review_period, score, comments
		FROM performance_reviews
		ORDER BY id
	`
	if err := s.db.SelectContext(ctx, &reviews, query); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *PostgresStore) ListSurveyResponses(ctx context.Context) ([]domain.SurveyResponse, error) {
	var responses []domain.SurveyResponse
	query := `
		SELECT id, employee_id, survey_id, engagement_score, satisfaction_score, response_date
		FROM survey_responses
		ORDER BY id
	`
	if err := s.db.SelectContext(ctx, &responses, query); err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *PostgresStore) ListEmployeeTrainings(ctx context.Context) ([]domain.EmployeeTraining, error) {
	var trainings []domain.EmployeeTraining
	query := `
		SELECT id, employee_id, program_id, enrollment_date, status
		FROM employee_trainings
		ORDER BY id
	`
	if err := s.db.SelectContext(ctx, &trainings, query); err != nil {
		return nil, err
	}
	return trainings, nil
}

func (s *PostgresStore) ListEmployeeBenefits(ctx context.Context) ([]domain.EmployeeBenefit, error) {
	var benefits []domain.EmployeeBenefit
	query := `
		SELECT id, employee_id, benefit_id, enrollment_date, status
		FROM employee_benefits
		ORDER BY id
	`
	if err := s.db.SelectContext(ctx, &benefits, query); err != nil {
		return nil, err
	}
	return benefits, nil
}

func (s *PostgresStore) UpdateEmployeeIdentity(ctx context.Context, employeeID int, firstName, lastName, email string) error {
	query := `
		UPDATE employees
		SET first_name = $1, last_name = $2, email = $3
		WHERE id = $4
	`
	result, err := s.db.ExecContext(ctx, query, firstName, lastName, email, employeeID)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.NotFound("employee")
	}
	return nil
}

func (s *PostgresStore) HasReviewInMonth(ctx context.Context, employeeID int, year int, month time.Month) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM performance_reviews
			WHERE employee_id = $1
			  AND review_date >= $2
			  AND review_date < $3
		)
	`
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	if err := s.db.GetContext(ctx, &exists, query, employeeID, start, end); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *PostgresStore) InsertPerformanceReview(ctx context.Context, review *domain.PerformanceReview) error {
	query := `
		INSERT INTO performance_reviews (employee_id, reviewer_id, review_date, review_period, score, comments)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := s.db.QueryRowxContext(ctx, query,
		review.EmployeeID, review.ReviewerID, review.ReviewDate,
		review.ReviewPeriod, review.Score, review.Comments,
	).Scan(&review.ID)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}
	return nil
}

func (s *PostgresStore) InsertEmployeeTraining(ctx context.Context, training *domain.EmployeeTraining) error {
	query := `
		INSERT INTO employee_trainings (employee_id, program_id, enrollment_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowxContext(ctx, query,
		training.EmployeeID, training.ProgramID, training.EnrollmentDate, training.Status,
	).Scan(&training.ID)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}
	return nil
}

func (s *PostgresStore) InsertEmployeeBenefit(ctx context.Context, benefit *domain.EmployeeBenefit) error {
	query := `
		INSERT INTO employee_benefits (employee_id, benefit_id, enrollment_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowxContext(ctx, query,
		benefit.EmployeeID, benefit.BenefitID, benefit.EnrollmentDate, benefit.Status,
	).Scan(&benefit.ID)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}
	return nil
}
