// Package domain defines the entities of the normalized HR dataset. All
// identifiers are stable integers assigned by the upstream dataset; fact
// rows (reviews, responses, trainings, benefit enrollments) are append-only
// once created.
package domain

import "time"

// Employee is the central entity. DepartmentID and JobRoleID must resolve to
// existing rows; JobLevel is a small positive ordinal used for seniority
// comparison during reviewer selection.
type Employee struct {
	ID                int    `db:"id" json:"id"`
	FirstName         string `db:"first_name" json:"first_name"`
	LastName          string `db:"last_name" json:"last_name"`
	Email             string `db:"email" json:"email"`
	Gender            string `db:"gender" json:"gender"`
	MaritalStatus     string `db:"marital_status" json:"marital_status"`
	DepartmentID      int    `db:"department_id" json:"department_id"`
	JobRoleID         int    `db:"job_role_id" json:"job_role_id"`
	JobLevel          int    `db:"job_level" json:"job_level"`
	Education         int    `db:"education" json:"education"`
	EducationField    string `db:"education_field" json:"education_field"`
	YearsAtCompany    int    `db:"years_at_company" json:"years_at_company"`
	MonthlyIncome     int    `db:"monthly_income" json:"monthly_income"`
	TrainingsLastYear int    `db:"trainings_last_year" json:"trainings_last_year"`
	Attrition         bool   `db:"attrition" json:"attrition"`
}

// FullName returns the employee's full name
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Department is shared lookup data, unique by name.
type Department struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// JobRole is shared lookup data, unique by name.
type JobRole struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// PerformanceReview is a generated fact row. ReviewerID is nil when the
// subject's department offered no candidate reviewer. At most one review per
// (employee, calendar month) exists; the generator enforces this against
// prior store state, not just within a batch.
type PerformanceReview struct {
	ID           int       `db:"id" json:"id"`
	EmployeeID   int       `db:"employee_id" json:"employee_id"`
	ReviewerID   *int      `db:"reviewer_id" json:"reviewer_id,omitempty"`
	ReviewDate   time.Time `db:"review_date" json:"review_date"`
	ReviewPeriod string    `db:"review_period" json:"review_period"`
	Score        int       `db:"score" json:"score"`
	Comments     string    `db:"comments" json:"comments"`
}

// Survey classifies responses by type, quarter and year.
type Survey struct {
	ID      int    `db:"id" json:"id"`
	Type    string `db:"type" json:"type"`
	Quarter int    `db:"quarter" json:"quarter"`
	Year    int    `db:"year" json:"year"`
}

// SurveyResponse carries engagement and satisfaction scores; multiple
// responses per employee over time are expected and ordered by date for
// trend analysis.
type SurveyResponse struct {
	ID                int       `db:"id" json:"id"`
	EmployeeID        int       `db:"employee_id" json:"employee_id"`
	SurveyID          int       `db:"survey_id" json:"survey_id"`
	EngagementScore   int       `db:"engagement_score" json:"engagement_score"`
	SatisfactionScore int       `db:"satisfaction_score" json:"satisfaction_score"`
	ResponseDate      time.Time `db:"response_date" json:"response_date"`
}

// TrainingProgram is shared lookup data.
type TrainingProgram struct {
	ID            int    `db:"id" json:"id"`
	Title         string `db:"title" json:"title"`
	Topic         string `db:"topic" json:"topic"`
	DurationHours int    `db:"duration_hours" json:"duration_hours"`
}

// TrainingStatus is the three-valued completion status of an enrollment
type TrainingStatus string

const (
	TrainingCompleted  TrainingStatus = "Completed"
	TrainingInProgress TrainingStatus = "In Progress"
	TrainingNotStarted TrainingStatus = "Not Started"
)

// TrainingStatuses lists all valid completion states, in generation order.
var TrainingStatuses = []TrainingStatus{TrainingCompleted, TrainingInProgress, TrainingNotStarted}

// EmployeeTraining links an employee to a training program.
type EmployeeTraining struct {
	ID             int            `db:"id" json:"id"`
	EmployeeID     int            `db:"employee_id" json:"employee_id"`
	ProgramID      int            `db:"program_id" json:"program_id"`
	EnrollmentDate time.Time      `db:"enrollment_date" json:"enrollment_date"`
	Status         TrainingStatus `db:"status" json:"status"`
}

// Benefit is shared lookup data.
type Benefit struct {
	ID          int    `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Type        string `db:"type" json:"type"`
	Description string `db:"description" json:"description"`
}

// BenefitStatus is the enrollment status of an employee benefit
type BenefitStatus string

const (
	BenefitActive    BenefitStatus = "Active"
	BenefitCancelled BenefitStatus = "Cancelled"
)

// EmployeeBenefit links an employee to a benefit.
type EmployeeBenefit struct {
	ID             int           `db:"id" json:"id"`
	EmployeeID     int           `db:"employee_id" json:"employee_id"`
	BenefitID      int           `db:"benefit_id" json:"benefit_id"`
	EnrollmentDate time.Time     `db:"enrollment_date" json:"enrollment_date"`
	Status         BenefitStatus `db:"status" json:"status"`
}

// GenderBucket is the three-way classification used by the identity assigner
type GenderBucket string

const (
	GenderFemale      GenderBucket = "Female"
	GenderMale        GenderBucket = "Male"
	GenderUnspecified GenderBucket = "Unspecified"
)

// BucketForGender resolves a raw gender value into a name-list bucket.
// Anything that is not recognizably female or male falls into Unspecified.
func BucketForGender(gender string) GenderBucket {
	switch gender {
	case "Female", "female", "F", "f":
		return GenderFemale
	case "Male", "male", "M", "m":
		return GenderMale
	default:
		return GenderUnspecified
	}
}
