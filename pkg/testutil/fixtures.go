package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// FixtureFactory seeds the HR base tables with deterministic test data
type FixtureFactory struct {
	db *sqlx.DB
}

// NewFixtureFactory creates a fixture factory over the test database
func NewFixtureFactory(db *sqlx.DB) *FixtureFactory {
	return &FixtureFactory{db: db}
}

// EmployeeFixture represents one employee row to seed
type EmployeeFixture struct {
	FirstName         string
	LastName          string
	Email             string
	Gender            string
	DepartmentID      int
	JobRoleID         int
	JobLevel          int
	YearsAtCompany    int
	MonthlyIncome     int
	TrainingsLastYear int
}

// SeedDepartment inserts a department and returns its id
func (f *FixtureFactory) SeedDepartment(ctx context.Context, name string) (int, error) {
	var id int
	err := f.db.QueryRowContext(ctx,
		`INSERT INTO departments (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	return id, err
}

// SeedJobRole inserts a job role and returns its id
func (f *FixtureFactory) SeedJobRole(ctx context.Context, name string) (int, error) {
	var id int
	err := f.db.QueryRowContext(ctx,
		`INSERT INTO job_roles (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	return id, err
}

// SeedEmployee inserts an employee and returns its id
func (f *FixtureFactory) SeedEmployee(ctx context.Context, e EmployeeFixture) (int, error) {
	if e.JobLevel == 0 {
		e.JobLevel = 1
	}
	var id int
	err := f.db.QueryRowContext(ctx, `
		INSERT INTO employees (
			first_name, last_name, email, gender, department_id, job_role_id,
			job_level, years_at_company, monthly_income, trainings_last_year
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		e.FirstName, e.LastName, e.Email, e.Gender, e.DepartmentID, e.JobRoleID,
		e.JobLevel, e.YearsAtCompany, e.MonthlyIncome, e.TrainingsLastYear,
	).Scan(&id)
	return id, err
}

// SeedTrainingProgram inserts a training program and returns its id
func (f *FixtureFactory) SeedTrainingProgram(ctx context.Context, title, topic string, hours int) (int, error) {
	var id int
	err := f.db.QueryRowContext(ctx,
		`INSERT INTO training_programs (title, topic, duration_hours) VALUES ($1, $2, $3) RETURNING id`,
		title, topic, hours).Scan(&id)
	return id, err
}

// SeedBenefit inserts a benefit and returns its id
func (f *FixtureFactory) SeedBenefit(ctx context.Context, name, benefitType string) (int, error) {
	var id int
	err := f.db.QueryRowContext(ctx,
		`INSERT INTO benefits (name, type, description) VALUES ($1, $2, '') RETURNING id`,
		name, benefitType).Scan(&id)
	return id, err
}

// SeedSurvey inserts a survey and returns its id
func (f *FixtureFactory) SeedSurvey(ctx context.Context, surveyType string, quarter, year int) (int, error) {
	var id int
	err := f.db.QueryRowContext(ctx,
		`INSERT INTO surveys (type, quarter, year) VALUES ($1, $2, $3) RETURNING id`,
		surveyType, quarter, year).Scan(&id)
	return id, err
}

// SeedSurveyResponse inserts a survey response and returns its id
func (f *FixtureFactory) SeedSurveyResponse(ctx context.Context, employeeID, surveyID, engagement, satisfaction int, date time.Time) (int, error) {
	var id int
	err := f.db.QueryRowContext(ctx, `
		INSERT INTO survey_responses (employee_id, survey_id, engagement_score, satisfaction_score, response_date)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		employeeID, surveyID, engagement, satisfaction, date).Scan(&id)
	return id, err
}

// SeedBaseline seeds a small self-consistent dataset: two departments, two
// job roles, one placeholder-identity employee per department, two programs
// and two benefits. Returns the employee ids in insertion order.
func (f *FixtureFactory) SeedBaseline(ctx context.Context) ([]int, error) {
	sales, err := f.SeedDepartment(ctx, "Sales")
	if err != nil {
		return nil, err
	}
	engineering, err := f.SeedDepartment(ctx, "Engineering")
	if err != nil {
		return nil, err
	}
	rep, err := f.SeedJobRole(ctx, "Sales Executive")
	if err != nil {
		return nil, err
	}
	dev, err := f.SeedJobRole(ctx, "Research Scientist")
	if err != nil {
		return nil, err
	}

	fixtures := []EmployeeFixture{
		{FirstName: "Employee", Gender: "Female", DepartmentID: sales, JobRoleID: rep, JobLevel: 2, YearsAtCompany: 3, MonthlyIncome: 5200, TrainingsLastYear: 2},
		{FirstName: "Employee", Gender: "Male", DepartmentID: engineering, JobRoleID: dev, JobLevel: 1, YearsAtCompany: 1, MonthlyIncome: 4100, TrainingsLastYear: 3},
	}

	ids := make([]int, 0, len(fixtures))
	for i, e := range fixtures {
		id, err := f.SeedEmployee(ctx, e)
		if err != nil {
			return nil, fmt.Errorf("seed employee %d: %w", i, err)
		}
		ids = append(ids, id)
	}

	if _, err := f.SeedTrainingProgram(ctx, "Effective Communication", "Soft Skills", 8); err != nil {
		return nil, err
	}
	if _, err := f.SeedTrainingProgram(ctx, "Data Literacy", "Analytics", 16); err != nil {
		return nil, err
	}
	if _, err := f.SeedBenefit(ctx, "Health Insurance", "Health"); err != nil {
		return nil, err
	}
	if _, err := f.SeedBenefit(ctx, "Retirement Plan", "Financial"); err != nil {
		return nil, err
	}

	return ids, nil
}
