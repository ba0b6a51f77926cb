// Package service orchestrates dataset preparation: the identity backfill
// followed by a synthetic generation run, tracked under a single run id.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hrpulse/hrpulse-backend/internal/hr/events"
	"github.com/hrpulse/hrpulse-backend/internal/hr/generator"
	"github.com/hrpulse/hrpulse-backend/internal/hr/identity"
	"github.com/hrpulse/hrpulse-backend/internal/hr/store"
	"github.com/hrpulse/hrpulse-backend/pkg/config"
	"github.com/hrpulse/hrpulse-backend/pkg/logger"
)

// GenerationService runs identity backfills and generation passes
type GenerationService struct {
	store     store.Store
	assigner  *identity.Assigner
	cfg       config.GeneratorConfig
	publisher *events.HREventPublisher
	logger    *logger.Logger
}

// NewGenerationService creates a new generation service. The publisher may be
// nil for one-shot CLI runs without a broker.
func NewGenerationService(
	s store.Store,
	assigner *identity.Assigner,
	cfg config.GeneratorConfig,
	publisher *events.HREventPublisher,
	log *logger.Logger,
) *GenerationService {
	return &GenerationService{
		store:     s,
		assigner:  assigner,
		cfg:       cfg,
		publisher: publisher,
		logger:    log,
	}
}

// RunRequest controls one generation run
type RunRequest struct {
	// Seed fixes the random source for a reproducible run
	Seed *int64 `json:"seed,omitempty"`
	// AsOf anchors the trailing windows; zero means now
	AsOf *time.Time `json:"as_of,omitempty"`
	// SkipBackfill leaves placeholder identities untouched
	SkipBackfill bool `json:"skip_backfill,omitempty"`
}

// RunResult is the outcome of one generation run
type RunResult struct {
	RunID    string            `json:"run_id"`
	Backfill *identity.Result  `json:"backfill,omitempty"`
	Summary  generator.Summary `json:"summary"`
}

// Run performs a full dataset preparation pass: identity backfill, then
// review, training and benefit generation. The backfill runs first so
// generated rows always reference finished identities.
func (s *GenerationService) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	runID := uuid.New().String()
	log := s.logger.WithRunID(runID)

	if s.publisher != nil {
		s.publisher.PublishGenerationRunStarted(ctx, runID, req.Seed)
	}

	result := &RunResult{RunID: runID}

	if !req.SkipBackfill {
		backfill, err := s.assigner.Backfill(ctx)
		if err != nil {
			log.Error().Err(err).Msg("identity backfill failed")
			return nil, err
		}
		result.Backfill = &backfill

		if s.publisher != nil {
			s.publisher.PublishIdentityBackfilled(ctx, runID, backfill)
		}
	}

	var opts []generator.Option
	if req.Seed != nil {
		opts = append(opts, generator.WithSeed(*req.Seed))
	}
	if req.AsOf != nil {
		opts = append(opts, generator.WithAsOf(*req.AsOf))
	}

	summary, err := generator.New(s.store, s.cfg, log, opts...).Run(ctx)
	result.Summary = summary
	if err != nil {
		log.Error().Err(err).Msg("generation run failed")
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.PublishGenerationRunCompleted(ctx, runID, summary)
	}

	log.Info().
		Int("reviews", summary.Reviews).
		Int("trainings", summary.Trainings).
		Int("benefits", summary.Benefits).
		Msg("dataset preparation complete")

	return result, nil
}

// Backfill rewrites placeholder identities without generating fact rows
func (s *GenerationService) Backfill(ctx context.Context) (identity.Result, error) {
	runID := uuid.New().String()

	result, err := s.assigner.Backfill(ctx)
	if err != nil {
		return result, err
	}

	if s.publisher != nil {
		s.publisher.PublishIdentityBackfilled(ctx, runID, result)
	}
	return result, nil
}
