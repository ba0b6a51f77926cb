package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/hrpulse/hrpulse-backend/pkg/errors"
)

// FactTable names a fact table for coverage queries
type FactTable string

const (
	FactReviews         FactTable = "reviews"
	FactTrainings       FactTable = "trainings"
	FactBenefits        FactTable = "benefits"
	FactSurveyResponses FactTable = "survey_responses"
)

// employeeIDs collects the distinct employee ids present in a fact table
func (e *Engine) employeeIDs(ctx context.Context, table FactTable) (map[int]struct{}, error) {
	ids := map[int]struct{}{}
	switch table {
	case FactReviews:
		rows, err := e.store.ListPerformanceReviews(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			ids[r.EmployeeID] = struct{}{}
		}
	case FactTrainings:
		rows, err := e.store.ListEmployeeTrainings(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			ids[r.EmployeeID] = struct{}{}
		}
	case FactBenefits:
		rows, err := e.store.ListEmployeeBenefits(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			ids[r.EmployeeID] = struct{}{}
		}
	case FactSurveyResponses:
		rows, err := e.store.ListSurveyResponses(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			ids[r.EmployeeID] = struct{}{}
		}
	default:
		return nil, errors.BadRequest("unknown fact table: " + string(table))
	}
	return ids, nil
}

// CoverageGap returns the employee ids represented in one fact table but
// absent from another, sorted ascending. The operation is pure set
// difference over distinct employee ids, so in=trainings, notIn=reviews asks
// "trained but never reviewed".
func (e *Engine) CoverageGap(ctx context.Context, in, notIn FactTable) ([]int, error) {
	have, err := e.employeeIDs(ctx, in)
	if err != nil {
		return nil, err
	}
	exclude, err := e.employeeIDs(ctx, notIn)
	if err != nil {
		return nil, err
	}

	out := make([]int, 0, len(have))
	for id := range have {
		if _, ok := exclude[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out, nil
}

// RunningEngagement is one survey response with the employee's running mean
// engagement score up to and including that response.
type RunningEngagement struct {
	EmployeeID      int       `json:"employee_id"`
	ResponseID      int       `json:"response_id"`
	ResponseDate    time.Time `json:"response_date"`
	EngagementScore int       `json:"engagement_score"`
	RunningAverage  float64   `json:"running_average"`
}

// RunningEngagementAverages computes, per employee, the chronological prefix
// mean of engagement scores. Responses on the same date break ties by id.
// The whole series is a single pass over the sorted responses; no per-row
// rescan of history.
func (e *Engine) RunningEngagementAverages(ctx context.Context) ([]RunningEngagement, error) {
	responses, err := e.store.ListSurveyResponses(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(responses, func(i, j int) bool {
		if responses[i].EmployeeID != responses[j].EmployeeID {
			return responses[i].EmployeeID < responses[j].EmployeeID
		}
		if !responses[i].ResponseDate.Equal(responses[j].ResponseDate) {
			return responses[i].ResponseDate.Before(responses[j].ResponseDate)
		}
		return responses[i].ID < responses[j].ID
	})

	out := make([]RunningEngagement, 0, len(responses))
	sum, count, current := 0, 0, 0
	for _, r := range responses {
		if r.EmployeeID != current {
			current = r.EmployeeID
			sum, count = 0, 0
		}
		sum += r.EngagementScore
		count++
		out = append(out, RunningEngagement{
			EmployeeID:      r.EmployeeID,
			ResponseID:      r.ID,
			ResponseDate:    r.ResponseDate,
			EngagementScore: r.EngagementScore,
			RunningAverage:  round2(float64(sum) / float64(count)),
		})
	}
	return out, nil
}

// SurveyEngagementSummary is the per-survey breakdown of response scores
type SurveyEngagementSummary struct {
	SurveyID        int     `json:"survey_id"`
	Type            string  `json:"type"`
	Quarter         int     `json:"quarter"`
	Year            int     `json:"year"`
	Responses       int     `json:"responses"`
	AvgEngagement   float64 `json:"avg_engagement"`
	AvgSatisfaction float64 `json:"avg_satisfaction"`
}

// SurveyEngagementSummaries averages engagement and satisfaction scores per
// survey dimension. Surveys with no responses are omitted; rows are ordered
// by survey id.
func (e *Engine) SurveyEngagementSummaries(ctx context.Context) ([]SurveyEngagementSummary, error) {
	surveys, err := e.store.ListSurveys(ctx)
	if err != nil {
		return nil, err
	}
	responses, err := e.store.ListSurveyResponses(ctx)
	if err != nil {
		return nil, err
	}

	type agg struct {
		engagement   int
		satisfaction int
		count        int
	}
	totals := map[int]*agg{}
	for _, r := range responses {
		t := totals[r.SurveyID]
		if t == nil {
			t = &agg{}
			totals[r.SurveyID] = t
		}
		t.engagement += r.EngagementScore
		t.satisfaction += r.SatisfactionScore
		t.count++
	}

	out := []SurveyEngagementSummary{}
	for _, sv := range surveys {
		t := totals[sv.ID]
		if t == nil {
			continue
		}
		out = append(out, SurveyEngagementSummary{
			SurveyID:        sv.ID,
			Type:            sv.Type,
			Quarter:         sv.Quarter,
			Year:            sv.Year,
			Responses:       t.count,
			AvgEngagement:   round2(float64(t.engagement) / float64(t.count)),
			AvgSatisfaction: round2(float64(t.satisfaction) / float64(t.count)),
		})
	}
	return out, nil
}

// StaleTrainingEmployee is an employee with no sufficiently recent training
type StaleTrainingEmployee struct {
	EmployeeID   int        `json:"employee_id"`
	LastTraining *time.Time `json:"last_training,omitempty"`
}

// WithoutRecentTraining lists employees whose newest training enrollment is
// older than the cutoff, or who have never enrolled at all. Never-enrolled
// employees carry a nil LastTraining.
func (e *Engine) WithoutRecentTraining(ctx context.Context, cutoff time.Time) ([]StaleTrainingEmployee, error) {
	employees, err := e.store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	trainings, err := e.store.ListEmployeeTrainings(ctx)
	if err != nil {
		return nil, err
	}

	newest := map[int]time.Time{}
	for _, t := range trainings {
		if cur, ok := newest[t.EmployeeID]; !ok || t.EnrollmentDate.After(cur) {
			newest[t.EmployeeID] = t.EnrollmentDate
		}
	}

	var out []StaleTrainingEmployee
	for _, emp := range employees {
		last, ok := newest[emp.ID]
		if ok && !last.Before(cutoff) {
			continue
		}
		row := StaleTrainingEmployee{EmployeeID: emp.ID}
		if ok {
			d := last
			row.LastTraining = &d
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}
