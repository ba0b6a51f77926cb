package analytics

import (
	"context"
	"sort"
)

// Tenure bands partition employees by years at company.
const (
	BandEarly = "0-1"
	BandMid   = "2-4"
	BandLong  = "5+"
)

// bandOrder fixes band display order independent of string sorting
var bandOrder = map[string]int{BandEarly: 0, BandMid: 1, BandLong: 2}

// tenureBand maps years at company onto a band label
func tenureBand(years int) string {
	switch {
	case years < 2:
		return BandEarly
	case years <= 4:
		return BandMid
	default:
		return BandLong
	}
}

// TenureBandStat is one (job role, tenure band) cohort
type TenureBandStat struct {
	JobRoleID        int     `json:"job_role_id"`
	JobRole          string  `json:"job_role"`
	Band             string  `json:"band"`
	Employees        int     `json:"employees"`
	AvgMonthlyIncome float64 `json:"avg_monthly_income"`
}

// TenureBandSummary groups employees by job role and tenure band and reports
// cohort size and mean monthly income. Only occupied cohorts appear, ordered
// by job role id and then band seniority.
func (e *Engine) TenureBandSummary(ctx context.Context) ([]TenureBandStat, error) {
	employees, err := e.store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := e.store.ListJobRoles(ctx)
	if err != nil {
		return nil, err
	}

	roleName := map[int]string{}
	for _, r := range roles {
		roleName[r.ID] = r.Name
	}

	type cohort struct {
		roleID int
		band   string
	}
	sums := map[cohort]int{}
	counts := map[cohort]int{}
	for _, emp := range employees {
		c := cohort{roleID: emp.JobRoleID, band: tenureBand(emp.YearsAtCompany)}
		sums[c] += emp.MonthlyIncome
		counts[c]++
	}

	out := make([]TenureBandStat, 0, len(counts))
	for c, count := range counts {
		out = append(out, TenureBandStat{
			JobRoleID:        c.roleID,
			JobRole:          roleName[c.roleID],
			Band:             c.band,
			Employees:        count,
			AvgMonthlyIncome: round2(float64(sums[c]) / float64(count)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].JobRoleID != out[j].JobRoleID {
			return out[i].JobRoleID < out[j].JobRoleID
		}
		return bandOrder[out[i].Band] < bandOrder[out[j].Band]
	})
	return out, nil
}

// IncomeRollupRow is one line of the department income rollup. Total marks
// the single grand-total row, which carries no department.
type IncomeRollupRow struct {
	DepartmentID     int     `json:"department_id,omitempty"`
	Department       string  `json:"department,omitempty"`
	Total            bool    `json:"total"`
	Employees        int     `json:"employees"`
	AvgMonthlyIncome float64 `json:"avg_monthly_income"`
}

// DepartmentIncomeRollup reports headcount and mean monthly income per
// department, followed by one grand-total row over all employees. The total
// averages employees, not department averages, so unevenly sized departments
// weigh in proportionally. An empty employee table yields an empty result
// with no total row.
func (e *Engine) DepartmentIncomeRollup(ctx context.Context) ([]IncomeRollupRow, error) {
	employees, err := e.store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return []IncomeRollupRow{}, nil
	}
	departments, err := e.store.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}

	deptName := map[int]string{}
	for _, d := range departments {
		deptName[d.ID] = d.Name
	}

	sums := map[int]int{}
	counts := map[int]int{}
	total := 0
	for _, emp := range employees {
		sums[emp.DepartmentID] += emp.MonthlyIncome
		counts[emp.DepartmentID]++
		total += emp.MonthlyIncome
	}

	out := make([]IncomeRollupRow, 0, len(counts)+1)
	for deptID, count := range counts {
		out = append(out, IncomeRollupRow{
			DepartmentID:     deptID,
			Department:       deptName[deptID],
			Employees:        count,
			AvgMonthlyIncome: round2(float64(sums[deptID]) / float64(count)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartmentID < out[j].DepartmentID })

	out = append(out, IncomeRollupRow{
		Total:            true,
		Employees:        len(employees),
		AvgMonthlyIncome: round2(float64(total) / float64(len(employees))),
	})
	return out, nil
}
