package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrpulse/hrpulse-backend/internal/hr/analytics"
	"github.com/hrpulse/hrpulse-backend/internal/hr/domain"
	"github.com/hrpulse/hrpulse-backend/internal/hr/store"
)

// seedReviews puts one employee in each listed department and one review per
// score, so department averages are exactly the score means.
func seedReviews(s *store.MemoryStore, deptScores map[int][]int) {
	empID := 1
	for deptID, scores := range deptScores {
		s.AddDepartment(domain.Department{ID: deptID, Name: deptNames[deptID]})
		s.AddEmployee(domain.Employee{ID: empID, DepartmentID: deptID})
		for i, score := range scores {
			s.AddPerformanceReview(domain.PerformanceReview{
				EmployeeID: empID,
				ReviewDate: day(2024, time.Month(i+1), 10),
				Score:      score,
			})
		}
		empID++
	}
}

var deptNames = map[int]string{1: "Sales", 2: "Engineering", 3: "Human Resources"}

// ============================================================================
// DEPARTMENT SCORE RANKING TESTS
// ============================================================================

func TestDepartmentScoreRanking(t *testing.T) {
	t.Run("averages and ranks best first", func(t *testing.T) {
		s := store.NewMemoryStore()
		seedReviews(s, map[int][]int{
			1: {3, 4, 5},
			2: {3, 3},
		})

		out, err := analytics.NewEngine(s).DepartmentScoreRanking(context.Background())
		require.NoError(t, err)
		require.Len(t, out, 2)

		assert.Equal(t, "Sales", out[0].Department)
		assert.Equal(t, 4.0, out[0].AverageScore)
		assert.Equal(t, 3, out[0].Reviews)
		assert.Equal(t, 1, out[0].Rank)

		assert.Equal(t, "Engineering", out[1].Department)
		assert.Equal(t, 3.0, out[1].AverageScore)
		assert.Equal(t, 2, out[1].Rank)
	})

	t.Run("tied averages share a rank and skip the next", func(t *testing.T) {
		s := store.NewMemoryStore()
		seedReviews(s, map[int][]int{
			1: {4, 4},
			2: {3, 5},
			3: {2},
		})

		out, err := analytics.NewEngine(s).DepartmentScoreRanking(context.Background())
		require.NoError(t, err)
		require.Len(t, out, 3)

		assert.Equal(t, 1, out[0].Rank)
		assert.Equal(t, 1, out[1].Rank)
		assert.Equal(t, 3, out[2].Rank)
	})

	t.Run("departments without reviews are absent", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.AddDepartment(domain.Department{ID: 1, Name: "Sales"})
		s.AddEmployee(domain.Employee{ID: 1, DepartmentID: 1})

		out, err := analytics.NewEngine(s).DepartmentScoreRanking(context.Background())
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

// ============================================================================
// BELOW DEPARTMENT AVERAGE TESTS
// ============================================================================

func TestBelowDepartmentAverage(t *testing.T) {
	t.Run("returns only strictly below-average reviews", func(t *testing.T) {
		s := store.NewMemoryStore()
		seedReviews(s, map[int][]int{1: {3, 4, 5}})

		out, err := analytics.NewEngine(s).BelowDepartmentAverage(context.Background())
		require.NoError(t, err)
		require.Len(t, out, 1)

		assert.Equal(t, 3, out[0].Score)
		assert.Equal(t, 4.0, out[0].DepartmentAverage)
	})

	t.Run("uniform scores yield nothing", func(t *testing.T) {
		s := store.NewMemoryStore()
		seedReviews(s, map[int][]int{1: {4, 4, 4}})

		out, err := analytics.NewEngine(s).BelowDepartmentAverage(context.Background())
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("each review compares against its own department", func(t *testing.T) {
		s := store.NewMemoryStore()
		seedReviews(s, map[int][]int{
			1: {1, 5}, // avg 3.0
			2: {5, 5}, // avg 5.0
		})

		out, err := analytics.NewEngine(s).BelowDepartmentAverage(context.Background())
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, 1, out[0].Score)
		assert.Equal(t, 3.0, out[0].DepartmentAverage)
	})
}

// ============================================================================
// MONTHLY TREND TESTS
// ============================================================================

func TestMonthlyScoreTrend(t *testing.T) {
	s := store.NewMemoryStore()
	s.AddEmployee(domain.Employee{ID: 1, DepartmentID: 1})
	s.AddEmployee(domain.Employee{ID: 2, DepartmentID: 1})
	s.AddPerformanceReview(domain.PerformanceReview{EmployeeID: 1, ReviewDate: day(2024, time.March, 5), Score: 2})
	s.AddPerformanceReview(domain.PerformanceReview{EmployeeID: 2, ReviewDate: day(2024, time.March, 28), Score: 4})
	s.AddPerformanceReview(domain.PerformanceReview{EmployeeID: 1, ReviewDate: day(2024, time.January, 12), Score: 5})

	out, err := analytics.NewEngine(s).MonthlyScoreTrend(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, day(2024, time.January, 1), out[0].Month)
	assert.Equal(t, 5.0, out[0].AverageScore)
	assert.Equal(t, 1, out[0].Reviews)

	assert.Equal(t, day(2024, time.March, 1), out[1].Month)
	assert.Equal(t, 3.0, out[1].AverageScore)
	assert.Equal(t, 2, out[1].Reviews)
}

// ============================================================================
// REVIEWER COMPARISON TESTS
// ============================================================================

func TestReviewerComparisons(t *testing.T) {
	reviewer := 1

	t.Run("contrasts given average with own latest score", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.AddEmployee(domain.Employee{ID: 1, DepartmentID: 1})
		s.AddEmployee(domain.Employee{ID: 2, DepartmentID: 1})
		s.AddPerformanceReview(domain.PerformanceReview{EmployeeID: 2, ReviewerID: &reviewer, ReviewDate: day(2024, time.January, 10), Score: 2})
		s.AddPerformanceReview(domain.PerformanceReview{EmployeeID: 2, ReviewerID: &reviewer, ReviewDate: day(2024, time.March, 10), Score: 3})
		s.AddPerformanceReview(domain.PerformanceReview{EmployeeID: 1, ReviewDate: day(2024, time.February, 1), Score: 5})

		out, err := analytics.NewEngine(s).ReviewerComparisons(context.Background())
		require.NoError(t, err)
		require.Len(t, out, 1)

		assert.Equal(t, 1, out[0].ReviewerID)
		assert.Equal(t, 2.5, out[0].AvgGivenScore)
		assert.Equal(t, 2, out[0].ReviewsGiven)
		require.NotNil(t, out[0].OwnLatestScore)
		assert.Equal(t, 5, *out[0].OwnLatestScore)
	})

	t.Run("never-reviewed reviewer has nil own score", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.AddEmployee(domain.Employee{ID: 1, DepartmentID: 1})
		s.AddEmployee(domain.Employee{ID: 2, DepartmentID: 1})
		s.AddPerformanceReview(domain.PerformanceReview{EmployeeID: 2, ReviewerID: &reviewer, ReviewDate: day(2024, time.January, 10), Score: 4})

		out, err := analytics.NewEngine(s).ReviewerComparisons(context.Background())
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Nil(t, out[0].OwnLatestScore)
		assert.Equal(t, 4.0, out[0].AvgGivenScore)
	})
}
