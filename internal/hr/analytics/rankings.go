package analytics

import (
	"context"
	"sort"
	"time"
)

// DepartmentScoreRank is one department's position in the score ranking
type DepartmentScoreRank struct {
	DepartmentID int     `json:"department_id"`
	Department   string  `json:"department"`
	AverageScore float64 `json:"average_score"`
	Reviews      int     `json:"reviews"`
	Rank         int     `json:"rank"`
}

// DepartmentScoreRanking averages every review score by the reviewed
// employee's department and ranks departments best-first. Ties share a rank
// and the next distinct average resumes at its ordinal position, so two
// departments at rank 1 are followed by rank 3. Departments without any
// review are absent from the result.
func (e *Engine) DepartmentScoreRanking(ctx context.Context) ([]DepartmentScoreRank, error) {
	reviews, err := e.store.ListPerformanceReviews(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := e.store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	departments, err := e.store.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}

	deptOf := map[int]int{}
	for _, emp := range employees {
		deptOf[emp.ID] = emp.DepartmentID
	}
	deptName := map[int]string{}
	for _, d := range departments {
		deptName[d.ID] = d.Name
	}

	sums := map[int]int{}
	counts := map[int]int{}
	for _, r := range reviews {
		deptID, ok := deptOf[r.EmployeeID]
		if !ok {
			continue
		}
		sums[deptID] += r.Score
		counts[deptID]++
	}

	out := make([]DepartmentScoreRank, 0, len(counts))
	for deptID, count := range counts {
		out = append(out, DepartmentScoreRank{
			DepartmentID: deptID,
			Department:   deptName[deptID],
			AverageScore: round2(float64(sums[deptID]) / float64(count)),
			Reviews:      count,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageScore != out[j].AverageScore {
			return out[i].AverageScore > out[j].AverageScore
		}
		return out[i].DepartmentID < out[j].DepartmentID
	})

	for i := range out {
		if i > 0 && out[i].AverageScore == out[i-1].AverageScore {
			out[i].Rank = out[i-1].Rank
		} else {
			out[i].Rank = i + 1
		}
	}
	return out, nil
}

// BelowAverageReview is a review scoring under its department's mean
type BelowAverageReview struct {
	ReviewID          int     `json:"review_id"`
	EmployeeID        int     `json:"employee_id"`
	DepartmentID      int     `json:"department_id"`
	Score             int     `json:"score"`
	DepartmentAverage float64 `json:"department_average"`
}

// BelowDepartmentAverage returns every review whose score is strictly below
// the mean score of the reviewed employee's own department. The comparison
// uses the unrounded mean; only the reported average is rounded.
func (e *Engine) BelowDepartmentAverage(ctx context.Context) ([]BelowAverageReview, error) {
	reviews, err := e.store.ListPerformanceReviews(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := e.store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}

	deptOf := map[int]int{}
	for _, emp := range employees {
		deptOf[emp.ID] = emp.DepartmentID
	}

	sums := map[int]int{}
	counts := map[int]int{}
	for _, r := range reviews {
		deptID := deptOf[r.EmployeeID]
		sums[deptID] += r.Score
		counts[deptID]++
	}

	var out []BelowAverageReview
	for _, r := range reviews {
		deptID := deptOf[r.EmployeeID]
		mean := float64(sums[deptID]) / float64(counts[deptID])
		if float64(r.Score) < mean {
			out = append(out, BelowAverageReview{
				ReviewID:          r.ID,
				EmployeeID:        r.EmployeeID,
				DepartmentID:      deptID,
				Score:             r.Score,
				DepartmentAverage: round2(mean),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReviewID < out[j].ReviewID })
	return out, nil
}

// MonthlyTrend is one calendar month's mean review score
type MonthlyTrend struct {
	Month        time.Time `json:"month"`
	AverageScore float64   `json:"average_score"`
	Reviews      int       `json:"reviews"`
}

// MonthlyScoreTrend truncates review dates to the first of their month and
// averages scores per month, oldest first. Months without reviews do not
// appear; the series is sparse, not zero-filled.
func (e *Engine) MonthlyScoreTrend(ctx context.Context) ([]MonthlyTrend, error) {
	reviews, err := e.store.ListPerformanceReviews(ctx)
	if err != nil {
		return nil, err
	}

	sums := map[time.Time]int{}
	counts := map[time.Time]int{}
	for _, r := range reviews {
		month := time.Date(r.ReviewDate.Year(), r.ReviewDate.Month(), 1, 0, 0, 0, 0, time.UTC)
		sums[month] += r.Score
		counts[month]++
	}

	out := make([]MonthlyTrend, 0, len(counts))
	for month, count := range counts {
		out = append(out, MonthlyTrend{
			Month:        month,
			AverageScore: round2(float64(sums[month]) / float64(count)),
			Reviews:      count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out, nil
}

// ReviewerComparison contrasts a reviewer's own latest score with the mean
// score they handed out. OwnLatestScore is nil for reviewers who were never
// reviewed themselves.
type ReviewerComparison struct {
	ReviewerID     int     `json:"reviewer_id"`
	OwnLatestScore *int    `json:"own_latest_score,omitempty"`
	AvgGivenScore  float64 `json:"avg_given_score"`
	ReviewsGiven   int     `json:"reviews_given"`
}

// ReviewerComparisons reports, for every employee who authored at least one
// review, the average score they gave alongside their own most recent score.
func (e *Engine) ReviewerComparisons(ctx context.Context) ([]ReviewerComparison, error) {
	reviews, err := e.store.ListPerformanceReviews(ctx)
	if err != nil {
		return nil, err
	}

	latest := latestReviewByEmployee(reviews)

	givenSums := map[int]int{}
	givenCounts := map[int]int{}
	for _, r := range reviews {
		if r.ReviewerID == nil {
			continue
		}
		givenSums[*r.ReviewerID] += r.Score
		givenCounts[*r.ReviewerID]++
	}

	out := make([]ReviewerComparison, 0, len(givenCounts))
	for reviewerID, count := range givenCounts {
		row := ReviewerComparison{
			ReviewerID:    reviewerID,
			AvgGivenScore: round2(float64(givenSums[reviewerID]) / float64(count)),
			ReviewsGiven:  count,
		}
		if own, ok := latest[reviewerID]; ok {
			score := own.Score
			row.OwnLatestScore = &score
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReviewerID < out[j].ReviewerID })
	return out, nil
}
