// Package testutil provides testing utilities for the HRPulse backend.
// It includes a testcontainers PostgreSQL instance with the HR schema,
// fixture factories for the base tables, and HTTP handler helpers.
package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance
type PostgresContainer struct {
	*postgres.PostgresContainer
	DSN string
}

// PostgresContainerConfig configures the test PostgreSQL container
type PostgresContainerConfig struct {
	Database string
	Username string
	Password string
	Image    string // Optional: defaults to postgres:15-alpine
}

// DefaultPostgresConfig returns sensible defaults for test containers
func DefaultPostgresConfig() PostgresContainerConfig {
	return PostgresContainerConfig{
		Database: "hrpulse_test",
		Username: "test",
		Password: "test",
		Image:    "postgres:15-alpine",
	}
}

// NewPostgresContainer creates a new PostgreSQL test container.
//
// Usage:
//
//	func TestMain(m *testing.M) {
//	    ctx := context.Background()
//	    container, err := testutil.NewPostgresContainer(ctx, testutil.DefaultPostgresConfig())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer container.Terminate(ctx)
//
//	    code := m.Run()
//	    os.Exit(code)
//	}
func NewPostgresContainer(ctx context.Context, cfg PostgresContainerConfig) (*PostgresContainer, error) {
	if cfg.Image == "" {
		cfg.Image = "postgres:15-alpine"
	}
	if cfg.Database == "" {
		cfg.Database = "hrpulse_test"
	}
	if cfg.Username == "" {
		cfg.Username = "test"
	}
	if cfg.Password == "" {
		cfg.Password = "test"
	}

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage(cfg.Image),
		postgres.WithDatabase(cfg.Database),
		postgres.WithUsername(cfg.Username),
		postgres.WithPassword(cfg.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return &PostgresContainer{
		PostgresContainer: container,
		DSN:               dsn,
	}, nil
}

// Connect returns a sqlx.DB connection to the container
func (c *PostgresContainer) Connect(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", c.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}
	return db, nil
}

// Terminate stops and removes the container
func (c *PostgresContainer) Terminate(ctx context.Context) error {
	return c.PostgresContainer.Terminate(ctx)
}

// CreateHRSchema creates the normalized HR tables. The unique index on
// (employee_id, month of review_date) backs the one-review-per-month rule;
// its name is load-bearing for constraint-to-error mapping.
func (c *PostgresContainer) CreateHRSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS departments (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) UNIQUE NOT NULL
		);

		CREATE TABLE IF NOT EXISTS job_roles (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) UNIQUE NOT NULL
		);

		CREATE TABLE IF NOT EXISTS employees (
			id SERIAL PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL DEFAULT '',
			last_name VARCHAR(100) NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL DEFAULT '',
			gender VARCHAR(20) NOT NULL DEFAULT '',
			marital_status VARCHAR(20) NOT NULL DEFAULT '',
			department_id INT NOT NULL REFERENCES departments(id),
			job_role_id INT NOT NULL REFERENCES job_roles(id),
			job_level INT NOT NULL DEFAULT 1,
			education INT NOT NULL DEFAULT 1,
			education_field VARCHAR(100) NOT NULL DEFAULT '',
			years_at_company INT NOT NULL DEFAULT 0,
			monthly_income INT NOT NULL DEFAULT 0,
			trainings_last_year INT NOT NULL DEFAULT 0,
			attrition BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE UNIQUE INDEX IF NOT EXISTS employees_email_key
			ON employees (email) WHERE email <> '';

		CREATE TABLE IF NOT EXISTS performance_reviews (
			id SERIAL PRIMARY KEY,
			employee_id INT NOT NULL REFERENCES employees(id),
			reviewer_id INT REFERENCES employees(id),
			review_date DATE NOT NULL,
			review_period VARCHAR(7) NOT NULL,
			score INT NOT NULL CHECK (score BETWEEN 1 AND 5),
			comments TEXT NOT NULL DEFAULT ''
		);

		CREATE UNIQUE INDEX IF NOT EXISTS performance_reviews_review_month_key
			ON performance_reviews (employee_id, date_trunc('month', review_date));

		CREATE TABLE IF NOT EXISTS surveys (
			id SERIAL PRIMARY KEY,
			type VARCHAR(50) NOT NULL,
			quarter INT NOT NULL,
			year INT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS survey_responses (
			id SERIAL PRIMARY KEY,
			employee_id INT NOT NULL REFERENCES employees(id),
			survey_id INT NOT NULL REFERENCES surveys(id),
			engagement_score INT NOT NULL,
			satisfaction_score INT NOT NULL,
			response_date DATE NOT NULL
		);

		CREATE TABLE IF NOT EXISTS training_programs (
			id SERIAL PRIMARY KEY,
			title VARCHAR(200) NOT NULL,
			topic VARCHAR(100) NOT NULL,
			duration_hours INT NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS employee_trainings (
			id SERIAL PRIMARY KEY,
			employee_id INT NOT NULL REFERENCES employees(id),
			program_id INT NOT NULL REFERENCES training_programs(id),
			enrollment_date DATE NOT NULL,
			status VARCHAR(20) NOT NULL
		);

		CREATE TABLE IF NOT EXISTS benefits (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			type VARCHAR(50) NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS employee_benefits (
			id SERIAL PRIMARY KEY,
			employee_id INT NOT NULL REFERENCES employees(id),
			benefit_id INT NOT NULL REFERENCES benefits(id),
			enrollment_date DATE NOT NULL,
			status VARCHAR(20) NOT NULL
		);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create HR schema: %w", err)
	}
	return nil
}

// TruncateFactTables empties the generated tables between tests while
// keeping the base tables seeded.
func (c *PostgresContainer) TruncateFactTables(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		TRUNCATE performance_reviews, survey_responses, employee_trainings, employee_benefits
		RESTART IDENTITY
	`)
	return err
}
