// Package generator synthesizes performance review, training enrollment and
// benefit enrollment rows on top of the base HR tables. Every generated
// foreign key resolves to an existing row, and no employee ever receives two
// reviews in the same calendar month. All other randomness is unconstrained
// and only reproducible when the caller fixes a seed.
package generator

import (
	"context"
	"math/rand"
	"time"

	"github.com/hrpulse/hrpulse-backend/internal/hr/store"
	"github.com/hrpulse/hrpulse-backend/pkg/config"
	"github.com/hrpulse/hrpulse-backend/pkg/logger"
)

// Generator produces the fact-table rows
type Generator struct {
	store  store.Store
	cfg    config.GeneratorConfig
	seed   int64
	rng    *rand.Rand
	asOf   time.Time
	logger *logger.Logger
}

// Option customizes a Generator
type Option func(*Generator)

// WithSeed fixes the random source so a run is reproducible
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithAsOf anchors the trailing windows at a fixed instant instead of now
func WithAsOf(t time.Time) Option {
	return func(g *Generator) {
		g.asOf = t
	}
}

// New creates a generator over the given store
func New(s store.Store, cfg config.GeneratorConfig, log *logger.Logger, opts ...Option) *Generator {
	seed := time.Now().UnixNano()
	g := &Generator{
		store:  s,
		cfg:    cfg,
		seed:   seed,
		rng:    rand.New(rand.NewSource(seed)),
		asOf:   time.Now().UTC(),
		logger: log.WithComponent("generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Summary aggregates the outcome of one generation run
type Summary struct {
	Reviews         int `json:"reviews"`
	Trainings       int `json:"trainings"`
	Benefits        int `json:"benefits"`
	SkippedReviews  int `json:"skipped_reviews"`
	FailedEmployees int `json:"failed_employees"`
}

// Run executes a full generation pass: reviews, then training enrollments,
// then benefit enrollments. A failure for one employee is logged and counted
// but never aborts the run for the others.
func (g *Generator) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	if err := g.GenerateReviews(ctx, &summary); err != nil {
		return summary, err
	}
	if err := g.GenerateTrainings(ctx, &summary); err != nil {
		return summary, err
	}
	if err := g.GenerateBenefits(ctx, &summary); err != nil {
		return summary, err
	}

	g.logger.Info().
		Int("reviews", summary.Reviews).
		Int("trainings", summary.Trainings).
		Int("benefits", summary.Benefits).
		Int("skipped_reviews", summary.SkippedReviews).
		Int("failed_employees", summary.FailedEmployees).
		Msg("generation run complete")

	return summary, nil
}

// intn draws from [0, n) and tolerates n <= 0 for degenerate config bounds
func (g *Generator) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.rng.Intn(n)
}

// randomDateWithin returns a uniformly random day within the trailing
// lookback window ending at asOf.
func (g *Generator) randomDateWithin(lookbackDays int) time.Time {
	days := g.intn(lookbackDays) + 1
	t := g.asOf.AddDate(0, 0, -days)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
