package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hrpulse/hrpulse-backend/internal/hr/domain"
	"github.com/hrpulse/hrpulse-backend/pkg/errors"
)

type monthKey struct {
	employeeID int
	year       int
	month      time.Month
}

// MemoryStore is the in-memory Store implementation. It backs all unit tests
// and small datasets that fit in one process.
type MemoryStore struct {
	mu sync.RWMutex

	employees   map[int]domain.Employee
	departments map[int]domain.Department
	jobRoles    map[int]domain.JobRole
	benefits    map[int]domain.Benefit
	programs    map[int]domain.TrainingProgram
	surveys     map[int]domain.Survey

	reviews          map[int]domain.PerformanceReview
	responses        map[int]domain.SurveyResponse
	trainings        map[int]domain.EmployeeTraining
	employeeBenefits map[int]domain.EmployeeBenefit

	reviewMonths map[monthKey]bool

	nextReviewID   int
	nextTrainingID int
	nextBenefitID  int
	nextResponseID int
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		employees:        map[int]domain.Employee{},
		departments:      map[int]domain.Department{},
		jobRoles:         map[int]domain.JobRole{},
		benefits:         map[int]domain.Benefit{},
		programs:         map[int]domain.TrainingProgram{},
		surveys:          map[int]domain.Survey{},
		reviews:          map[int]domain.PerformanceReview{},
		responses:        map[int]domain.SurveyResponse{},
		trainings:        map[int]domain.EmployeeTraining{},
		employeeBenefits: map[int]domain.EmployeeBenefit{},
		reviewMonths:     map[monthKey]bool{},
		nextReviewID:     1,
		nextTrainingID:   1,
		nextBenefitID:    1,
		nextResponseID:   1,
	}
}

// Seeding of base tables. The raw dataset arrives through an external
// loading path, so these accept the caller's ids as-is.

// AddEmployee seeds one employee row
func (s *MemoryStore) AddEmployee(e domain.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = e
}

// AddDepartment seeds one department row
func (s *MemoryStore) AddDepartment(d domain.Department) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments[d.ID] = d
}

// AddJobRole seeds one job role row
func (s *MemoryStore) AddJobRole(r domain.JobRole) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobRoles[r.ID] = r
}

// AddBenefit seeds one benefit row
func (s *MemoryStore) AddBenefit(b domain.Benefit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.benefits[b.ID] = b
}

// AddTrainingProgram seeds one training program row
func (s *MemoryStore) AddTrainingProgram(p domain.TrainingProgram) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.programs[p.ID] = p
}

// AddSurvey seeds one survey row
func (s *MemoryStore) AddSurvey(sv domain.Survey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surveys[sv.ID] = sv
}

// AddSurveyResponse seeds one survey response row, assigning its id when zero
func (s *MemoryStore) AddSurveyResponse(r domain.SurveyResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		r.ID = s.nextResponseID
	}
	if r.ID >= s.nextResponseID {
		s.nextResponseID = r.ID + 1
	}
	s.responses[r.ID] = r
}

// AddPerformanceReview seeds one review row directly, bypassing the
// generator-path constraints. Intended for analytics test fixtures.
func (s *MemoryStore) AddPerformanceReview(r domain.PerformanceReview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		r.ID = s.nextReviewID
	}
	if r.ID >= s.nextReviewID {
		s.nextReviewID = r.ID + 1
	}
	s.reviews[r.ID] = r
	s.reviewMonths[monthKey{r.EmployeeID, r.ReviewDate.Year(), r.ReviewDate.Month()}] = true
}

// AddEmployeeTraining seeds one training enrollment row, assigning its id
// when zero.
func (s *MemoryStore) AddEmployeeTraining(t domain.EmployeeTraining) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == 0 {
		t.ID = s.nextTrainingID
	}
	if t.ID >= s.nextTrainingID {
		s.nextTrainingID = t.ID + 1
	}
	s.trainings[t.ID] = t
}

// AddEmployeeBenefit seeds one benefit enrollment row, assigning its id when
// zero.
func (s *MemoryStore) AddEmployeeBenefit(b domain.EmployeeBenefit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		b.ID = s.nextBenefitID
	}
	if b.ID >= s.nextBenefitID {
		s.nextBenefitID = b.ID + 1
	}
	s.employeeBenefits[b.ID] = b
}

func (s *MemoryStore) ListEmployees(_ context.Context) ([]domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.employees, func(e domain.Employee) int { return e.ID }), nil
}

func (s *MemoryStore) ListDepartments(_ context.Context) ([]domain.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.departments, func(d domain.Department) int { return d.ID }), nil
}

func (s *MemoryStore) ListJobRoles(_ context.Context) ([]domain.JobRole, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.jobRoles, func(r domain.JobRole) int { return r.ID }), nil
}

func (s *MemoryStore) ListBenefits(_ context.Context) ([]domain.Benefit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.benefits, func(b domain.Benefit) int { return b.ID }), nil
}

func (s *MemoryStore) ListTrainingPrograms(_ context.Context) ([]domain.TrainingProgram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.programs, func(p domain.TrainingProgram) int { return p.ID }), nil
}

func (s *MemoryStore) ListSurveys(_ context.Context) ([]domain.Survey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.surveys, func(sv domain.Survey) int { return sv.ID }), nil
}

func (s *MemoryStore) ListPerformanceReviews(_ context.Context) ([]domain.PerformanceReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.reviews, func(r domain.PerformanceReview) int { return r.ID }), nil
}

func (s *MemoryStore) ListSurveyResponses(_ context.Context) ([]domain.SurveyResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.responses, func(r domain.SurveyResponse) int { return r.ID }), nil
}

func (s *MemoryStore) ListEmployeeTrainings(_ context.Context) ([]domain.EmployeeTraining, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.trainings, func(t domain.EmployeeTraining) int { return t.ID }), nil
}

func (s *MemoryStore) ListEmployeeBenefits(_ context.Context) ([]domain.EmployeeBenefit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.employeeBenefits, func(b domain.EmployeeBenefit) int { return b.ID }), nil
}

func (s *MemoryStore) UpdateEmployeeIdentity(_ context.Context, employeeID int, firstName, lastName, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.employees[employeeID]
	if !ok {
		return errors.NotFound("employee")
	}

	emp.FirstName = firstName
	emp.LastName = lastName
	emp.Email = email
	s.employees[employeeID] = emp
	return nil
}

func (s *MemoryStore) HasReviewInMonth(_ context.Context, employeeID int, year int, month time.Month) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviewMonths[monthKey{employeeID, year, month}], nil
}

func (s *MemoryStore) InsertPerformanceReview(_ context.Context, review *domain.PerformanceReview) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[review.EmployeeID]; !ok {
		return errors.ReferentialViolation("performance_reviews", "employee_id", review.EmployeeID)
	}
	if review.ReviewerID != nil {
		if _, ok := s.employees[*review.ReviewerID]; !ok {
			return errors.ReferentialViolation("performance_reviews", "reviewer_id", *review.ReviewerID)
		}
	}

	key := monthKey{review.EmployeeID, review.ReviewDate.Year(), review.ReviewDate.Month()}
	if s.reviewMonths[key] {
		return errors.DuplicateReview(review.EmployeeID, key.year, int(key.month))
	}

	review.ID = s.nextReviewID
	s.nextReviewID++
	s.reviews[review.ID] = *review
	s.reviewMonths[key] = true
	return nil
}

func (s *MemoryStore) InsertEmployeeTraining(_ context.Context, training *domain.EmployeeTraining) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[training.EmployeeID]; !ok {
		return errors.ReferentialViolation("employee_trainings", "employee_id", training.EmployeeID)
	}
	if _, ok := s.programs[training.ProgramID]; !ok {
		return errors.ReferentialViolation("employee_trainings", "program_id", training.ProgramID)
	}

	training.ID = s.nextTrainingID
	s.nextTrainingID++
	s.trainings[training.ID] = *training
	return nil
}

func (s *MemoryStore) InsertEmployeeBenefit(_ context.Context, benefit *domain.EmployeeBenefit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[benefit.EmployeeID]; !ok {
		return errors.ReferentialViolation("employee_benefits", "employee_id", benefit.EmployeeID)
	}
	if _, ok := s.benefits[benefit.BenefitID]; !ok {
		return errors.ReferentialViolation("employee_benefits", "benefit_id", benefit.BenefitID)
	}

	benefit.ID = s.nextBenefitID
	s.nextBenefitID++
	s.employeeBenefits[benefit.ID] = *benefit
	return nil
}

func sortedValues[T any](m map[int]T, id func(T) int) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}
