package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrpulse/hrpulse-backend/internal/hr/domain"
	"github.com/hrpulse/hrpulse-backend/internal/hr/store"
	"github.com/hrpulse/hrpulse-backend/pkg/database"
	"github.com/hrpulse/hrpulse-backend/pkg/errors"
	"github.com/hrpulse/hrpulse-backend/pkg/logger"
	"github.com/hrpulse/hrpulse-backend/pkg/testutil"
)

func newPostgresStore(t *testing.T) (*store.PostgresStore, *testutil.MockDB) {
	mockDB := testutil.NewMockDB(t)
	db := database.NewFromDB(mockDB.DB, logger.New("test", "test"))
	return store.NewPostgresStore(db), mockDB
}

// ============================================================================
// LIST QUERY TESTS
// ============================================================================

func TestPostgresListEmployees(t *testing.T) {
	s, mockDB := newPostgresStore(t)
	defer mockDB.Close()

	rows := testutil.MockRows(
		"id", "first_name", "last_name", "email", "gender", "marital_status",
		"department_id", "job_role_id", "job_level", "education", "education_field",
		"years_at_company", "monthly_income", "trainings_last_year", "attrition",
	).
		AddRow(1, "Olivia", "Smith", "olivia.smith1@hrpulse.io", "Female", "Single",
			1, 1, 2, 3, "Life Sciences", 4, 5200, 2, false).
		AddRow(2, "Liam", "Johnson", "liam.johnson2@hrpulse.io", "Male", "Married",
			2, 2, 1, 2, "Marketing", 1, 4100, 3, true)

	mockDB.Mock.ExpectQuery("SELECT id, first_name, last_name").WillReturnRows(rows)

	employees, err := s.ListEmployees(context.Background())
	require.NoError(t, err)
	require.Len(t, employees, 2)

	assert.Equal(t, "Olivia", employees[0].FirstName)
	assert.Equal(t, 5200, employees[0].MonthlyIncome)
	assert.True(t, employees[1].Attrition)

	mockDB.ExpectationsWereMet(t)
}

func TestPostgresListPerformanceReviews_NullReviewer(t *testing.T) {
	s, mockDB := newPostgresStore(t)
	defer mockDB.Close()

	date := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)
	reviewer := 2
	rows := testutil.MockRows("id", "employee_id", "reviewer_id", "review_date", "review_period", "score", "comments").
		AddRow(1, 1, reviewer, date, "2024-03", 4, "Solid quarter.").
		AddRow(2, 3, nil, date, "2024-03", 2, "")

	mockDB.Mock.ExpectQuery("SELECT id, employee_id, reviewer_id").WillReturnRows(rows)

	reviews, err := s.ListPerformanceReviews(context.Background())
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	require.NotNil(t, reviews[0].ReviewerID)
	assert.Equal(t, 2, *reviews[0].ReviewerID)
	assert.Nil(t, reviews[1].ReviewerID)

	mockDB.ExpectationsWereMet(t)
}

// ============================================================================
// IDENTITY UPDATE TESTS
// ============================================================================

func TestPostgresUpdateEmployeeIdentity(t *testing.T) {
	t.Run("updates one row", func(t *testing.T) {
		s, mockDB := newPostgresStore(t)
		defer mockDB.Close()

		mockDB.Mock.ExpectExec("UPDATE employees").
			WithArgs("Olivia", "Smith", "olivia.smith1@hrpulse.io", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.UpdateEmployeeIdentity(context.Background(), 1, "Olivia", "Smith", "olivia.smith1@hrpulse.io")
		require.NoError(t, err)
		mockDB.ExpectationsWereMet(t)
	})

	t.Run("missing employee maps to not found", func(t *testing.T) {
		s, mockDB := newPostgresStore(t)
		defer mockDB.Close()

		mockDB.Mock.ExpectExec("UPDATE employees").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.UpdateEmployeeIdentity(context.Background(), 99, "A", "B", "a.b@hrpulse.io")
		require.Error(t, err)

		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

// ============================================================================
// MONTH GUARD AND INSERT TESTS
// ============================================================================

func TestPostgresHasReviewInMonth(t *testing.T) {
	s, mockDB := newPostgresStore(t)
	defer mockDB.Close()

	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	mockDB.Mock.ExpectQuery("SELECT EXISTS").
		WithArgs(1, start, end).
		WillReturnRows(testutil.MockRows("exists").AddRow(true))

	exists, err := s.HasReviewInMonth(context.Background(), 1, 2024, time.March)
	require.NoError(t, err)
	assert.True(t, exists)
	mockDB.ExpectationsWereMet(t)
}

func TestPostgresInsertPerformanceReview(t *testing.T) {
	date := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)

	t.Run("assigns the returned id", func(t *testing.T) {
		s, mockDB := newPostgresStore(t)
		defer mockDB.Close()

		mockDB.Mock.ExpectQuery("INSERT INTO performance_reviews").
			WillReturnRows(testutil.MockRows("id").AddRow(7))

		review := &domain.PerformanceReview{EmployeeID: 1, ReviewDate: date, ReviewPeriod: "2024-03", Score: 4}
		require.NoError(t, s.InsertPerformanceReview(context.Background(), review))
		assert.Equal(t, 7, review.ID)
	})

	t.Run("month guard violation maps to duplicate review", func(t *testing.T) {
		s, mockDB := newPostgresStore(t)
		defer mockDB.Close()

		mockDB.Mock.ExpectQuery("INSERT INTO performance_reviews").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "performance_reviews_review_month_key"})

		review := &domain.PerformanceReview{EmployeeID: 1, ReviewDate: date, ReviewPeriod: "2024-03", Score: 4}
		err := s.InsertPerformanceReview(context.Background(), review)
		require.Error(t, err)

		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "DUPLICATE_REVIEW", appErr.Code)
	})

	t.Run("foreign key violation maps to referential violation", func(t *testing.T) {
		s, mockDB := newPostgresStore(t)
		defer mockDB.Close()

		mockDB.Mock.ExpectQuery("INSERT INTO performance_reviews").
			WillReturnError(&pq.Error{Code: "23503", Constraint: "performance_reviews_employee_id_fkey"})

		review := &domain.PerformanceReview{EmployeeID: 99, ReviewDate: date, ReviewPeriod: "2024-03", Score: 4}
		err := s.InsertPerformanceReview(context.Background(), review)
		require.Error(t, err)

		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "REFERENTIAL_VIOLATION", appErr.Code)
	})
}

func TestPostgresInsertEmployeeTraining(t *testing.T) {
	s, mockDB := newPostgresStore(t)
	defer mockDB.Close()

	mockDB.Mock.ExpectQuery("INSERT INTO employee_trainings").
		WithArgs(1, 2, testutil.AnyTime{}, string(domain.TrainingCompleted)).
		WillReturnRows(testutil.MockRows("id").AddRow(3))

	training := &domain.EmployeeTraining{
		EmployeeID:     1,
		ProgramID:      2,
		EnrollmentDate: time.Now().UTC(),
		Status:         domain.TrainingCompleted,
	}
	require.NoError(t, s.InsertEmployeeTraining(context.Background(), training))
	assert.Equal(t, 3, training.ID)
	mockDB.ExpectationsWereMet(t)
}
