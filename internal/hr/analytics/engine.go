// Package analytics computes derived views over the HR base tables. Every
// operation is a pure function of current store state: rows are loaded,
// aggregated in a single pass where possible, and returned as ordered
// tabular results. A grouping dimension with no rows yields an empty result,
// never an error.
package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/hrpulse/hrpulse-backend/internal/hr/domain"
	"github.com/hrpulse/hrpulse-backend/internal/hr/store"
)

// Engine computes the derived views
type Engine struct {
	store store.Store
}

// NewEngine creates an analytics engine over the given store
func NewEngine(s store.Store) *Engine {
	return &Engine{store: s}
}

// LatestReview is one employee's most recent performance review
type LatestReview struct {
	EmployeeID int       `json:"employee_id"`
	ReviewID   int       `json:"review_id"`
	ReviewDate time.Time `json:"review_date"`
	Score      int       `json:"score"`
}

// LatestReviews selects, for each reviewed employee, the review with the
// maximum review date. When two reviews share that date the one with the
// highest id wins; the result is ordered by employee id.
func (e *Engine) LatestReviews(ctx context.Context) ([]LatestReview, error) {
	reviews, err := e.store.ListPerformanceReviews(ctx)
	if err != nil {
		return nil, err
	}

	latest := latestReviewByEmployee(reviews)

	out := make([]LatestReview, 0, len(latest))
	for _, r := range latest {
		out = append(out, LatestReview{
			EmployeeID: r.EmployeeID,
			ReviewID:   r.ID,
			ReviewDate: r.ReviewDate,
			Score:      r.Score,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

// latestReviewByEmployee applies the max-date, highest-id tie-break rule.
func latestReviewByEmployee(reviews []domain.PerformanceReview) map[int]domain.PerformanceReview {
	latest := map[int]domain.PerformanceReview{}
	for _, r := range reviews {
		cur, ok := latest[r.EmployeeID]
		if !ok || r.ReviewDate.After(cur.ReviewDate) ||
			(r.ReviewDate.Equal(cur.ReviewDate) && r.ID > cur.ID) {
			latest[r.EmployeeID] = r
		}
	}
	return latest
}

// round2 bounds averages to two decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
