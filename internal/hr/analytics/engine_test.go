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

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ============================================================================
// LATEST REVIEW TESTS
// ============================================================================

func TestLatestReviews(t *testing.T) {
	t.Run("picks the maximum review date per employee", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.AddEmployee(domain.Employee{ID: 1, DepartmentID: 1})
		s.AddPerformanceReview(domain.PerformanceReview{ID: 1, EmployeeID: 1, ReviewDate: day(2023, time.January, 15), Score: 3})
		s.AddPerformanceReview(domain.PerformanceReview{ID: 2, EmployeeID: 1, ReviewDate: day(2023, time.June, 1), Score: 5})
		s.AddPerformanceReview(domain.PerformanceReview{ID: 3, EmployeeID: 1, ReviewDate: day(2023, time.March, 10), Score: 4})

		out, err := analytics.NewEngine(s).LatestReviews(context.Background())
		require.NoError(t, err)
		require.Len(t, out, 1)

		assert.Equal(t, 1, out[0].EmployeeID)
		assert.Equal(t, day(2023, time.June, 1), out[0].ReviewDate)
		assert.Equal(t, 5, out[0].Score)
	})

	t.Run("breaks same-date ties toward the higher id", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.AddEmployee(domain.Employee{ID: 2, DepartmentID: 1})
		s.AddPerformanceReview(domain.PerformanceReview{ID: 10, EmployeeID: 2, ReviewDate: day(2024, time.February, 14), Score: 2})
		s.AddPerformanceReview(domain.PerformanceReview{ID: 11, EmployeeID: 2, ReviewDate: day(2024, time.February, 14), Score: 4})

		out, err := analytics.NewEngine(s).LatestReviews(context.Background())
		require.NoError(t, err)
		require.Len(t, out, 1)

		assert.Equal(t, 11, out[0].ReviewID)
		assert.Equal(t, 4, out[0].Score)
	})

	t.Run("no reviews yields an empty result", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.AddEmployee(domain.Employee{ID: 1, DepartmentID: 1})

		out, err := analytics.NewEngine(s).LatestReviews(context.Background())
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("orders rows by employee id", func(t *testing.T) {
		s := store.NewMemoryStore()
		for id := 1; id <= 3; id++ {
			s.AddEmployee(domain.Employee{ID: id, DepartmentID: 1})
			s.AddPerformanceReview(domain.PerformanceReview{EmployeeID: id, ReviewDate: day(2024, time.March, id), Score: 3})
		}

		out, err := analytics.NewEngine(s).LatestReviews(context.Background())
		require.NoError(t, err)
		require.Len(t, out, 3)
		for i, row := range out {
			assert.Equal(t, i+1, row.EmployeeID)
		}
	})
}
