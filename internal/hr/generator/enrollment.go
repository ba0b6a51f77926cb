package generator

import (
	"context"

	"github.com/hrpulse/hrpulse-backend/internal/hr/domain"
)

// GenerateTrainings creates one enrollment per trainings-last-year signal
// unit, floored at zero, each with a random program, a random date inside
// the trailing year and a random completion status.
func (g *Generator) GenerateTrainings(ctx context.Context, summary *Summary) error {
	employees, err := g.store.ListEmployees(ctx)
	if err != nil {
		return err
	}
	programs, err := g.store.ListTrainingPrograms(ctx)
	if err != nil {
		return err
	}

	if len(programs) == 0 {
		g.logger.Warn().Msg("no training programs available, skipping training generation")
		return nil
	}

	for _, emp := range employees {
		count := emp.TrainingsLastYear
		if count < 0 {
			count = 0
		}

		failed := false
		for i := 0; i < count; i++ {
			training := &domain.EmployeeTraining{
				EmployeeID:     emp.ID,
				ProgramID:      programs[g.intn(len(programs))].ID,
				EnrollmentDate: g.randomDateWithin(g.cfg.TrainingLookbackDays),
				Status:         domain.TrainingStatuses[g.intn(len(domain.TrainingStatuses))],
			}
			if err := g.store.InsertEmployeeTraining(ctx, training); err != nil {
				g.logger.Error().Err(err).Int("employee_id", emp.ID).Msg("training generation failed for employee")
				failed = true
				break
			}
			summary.Trainings++
		}
		if failed {
			summary.FailedEmployees++
		}
	}
	return nil
}

// GenerateBenefits enrolls each employee in a random 1-3 benefits with dates
// inside the trailing four years. Enrollments are Active with the configured
// probability, Cancelled otherwise.
func (g *Generator) GenerateBenefits(ctx context.Context, summary *Summary) error {
	employees, err := g.store.ListEmployees(ctx)
	if err != nil {
		return err
	}
	benefits, err := g.store.ListBenefits(ctx)
	if err != nil {
		return err
	}

	if len(benefits) == 0 {
		g.logger.Warn().Msg("no benefits available, skipping benefit generation")
		return nil
	}

	for _, emp := range employees {
		count := g.cfg.MinBenefits + g.intn(g.cfg.MaxBenefits-g.cfg.MinBenefits+1)

		failed := false
		for i := 0; i < count; i++ {
			status := domain.BenefitCancelled
			if g.rng.Float64() < g.cfg.BenefitActiveProbability {
				status = domain.BenefitActive
			}

			enrollment := &domain.EmployeeBenefit{
				EmployeeID:     emp.ID,
				BenefitID:      benefits[g.intn(len(benefits))].ID,
				EnrollmentDate: g.randomDateWithin(g.cfg.BenefitLookbackDays),
				Status:         status,
			}
			if err := g.store.InsertEmployeeBenefit(ctx, enrollment); err != nil {
				g.logger.Error().Err(err).Int("employee_id", emp.ID).Msg("benefit generation failed for employee")
				failed = true
				break
			}
			summary.Benefits++
		}
		if failed {
			summary.FailedEmployees++
		}
	}
	return nil
}
