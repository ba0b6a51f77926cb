package generator

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/hrpulse/hrpulse-backend/internal/hr/domain"
)

var reviewComments = []string{
	"Consistently meets expectations across all objectives.",
	"Strong quarter with clear progress on development goals.",
	"Solid contribution; some growth areas identified.",
	"Exceeded targets on key deliverables.",
	"Performance in line with role expectations.",
	"Needs closer follow-up on agreed action items.",
}

// GenerateReviews samples review months per employee and inserts reviews
// with a two-tier reviewer choice. Months that already carry a review are
// skipped, which makes repeated runs idempotent at the (employee, month)
// grain.
func (g *Generator) GenerateReviews(ctx context.Context, summary *Summary) error {
	employees, err := g.store.ListEmployees(ctx)
	if err != nil {
		return err
	}

	byDepartment := map[int][]domain.Employee{}
	for _, emp := range employees {
		byDepartment[emp.DepartmentID] = append(byDepartment[emp.DepartmentID], emp)
	}

	for _, emp := range employees {
		if err := g.generateEmployeeReviews(ctx, emp, byDepartment[emp.DepartmentID], summary); err != nil {
			g.logger.Error().Err(err).Int("employee_id", emp.ID).Msg("review generation failed for employee")
			summary.FailedEmployees++
		}
	}
	return nil
}

func (g *Generator) generateEmployeeReviews(ctx context.Context, emp domain.Employee, deptPeers []domain.Employee, summary *Summary) error {
	months := g.sampleMonths(emp.ID)

	for _, month := range months {
		exists, err := g.store.HasReviewInMonth(ctx, emp.ID, month.Year(), month.Month())
		if err != nil {
			return err
		}
		if exists {
			summary.SkippedReviews++
			continue
		}

		day := g.intn(28) + 1
		reviewDate := time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, time.UTC)

		review := &domain.PerformanceReview{
			EmployeeID:   emp.ID,
			ReviewerID:   g.pickReviewer(emp, deptPeers),
			ReviewDate:   reviewDate,
			ReviewPeriod: reviewDate.Format("2006-01"),
			Score:        g.cfg.ScoreMin + g.intn(g.cfg.ScoreMax-g.cfg.ScoreMin+1),
			Comments:     reviewComments[g.intn(len(reviewComments))],
		}

		if err := g.store.InsertPerformanceReview(ctx, review); err != nil {
			return fmt.Errorf("insert review for %s: %w", review.ReviewPeriod, err)
		}
		summary.Reviews++
	}
	return nil
}

// sampleMonths picks a random number of distinct calendar months in
// [MinReviewMonths, MaxReviewMonths] out of the trailing window. Each
// candidate gets an independent random rank and the sorted prefix is taken,
// which avoids the bias of repeated draws with rejection. The draws come
// from a source derived from the run seed and the employee id, so an
// employee's months do not depend on how many rows earlier employees
// inserted: a rerun with the same seed resamples the same months and the
// month guard skips them all.
func (g *Generator) sampleMonths(employeeID int) []time.Time {
	type ranked struct {
		month time.Time
		rank  float64
	}

	rng := rand.New(rand.NewSource(g.seed + int64(employeeID)))

	anchor := time.Date(g.asOf.Year(), g.asOf.Month(), 1, 0, 0, 0, 0, time.UTC)
	candidates := make([]ranked, 0, g.cfg.ReviewWindowMonths)
	for i := 1; i <= g.cfg.ReviewWindowMonths; i++ {
		candidates = append(candidates, ranked{
			month: anchor.AddDate(0, -i, 0),
			rank:  rng.Float64(),
		})
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].rank < candidates[j].rank })

	target := g.cfg.MinReviewMonths
	if span := g.cfg.MaxReviewMonths - g.cfg.MinReviewMonths + 1; span > 0 {
		target += rng.Intn(span)
	}
	if target > len(candidates) {
		target = len(candidates)
	}

	months := make([]time.Time, target)
	for i := 0; i < target; i++ {
		months[i] = candidates[i].month
	}
	return months
}

// pickReviewer prefers a uniformly random same-department colleague with a
// strictly greater job level; when no such colleague exists it falls back to
// any same-department peer excluding the subject. Departments with no
// candidate at all yield a nil reviewer rather than an error.
func (g *Generator) pickReviewer(emp domain.Employee, deptPeers []domain.Employee) *int {
	var managers, peers []int
	for _, peer := range deptPeers {
		if peer.ID == emp.ID {
			continue
		}
		if peer.JobLevel > emp.JobLevel {
			managers = append(managers, peer.ID)
		}
		peers = append(peers, peer.ID)
	}

	pool := managers
	if len(pool) == 0 {
		pool = peers
	}
	if len(pool) == 0 {
		return nil
	}

	id := pool[g.intn(len(pool))]
	return &id
}
