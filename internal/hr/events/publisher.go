package events

import (
	"context"

	"github.com/hrpulse/hrpulse-backend/internal/hr/generator"
	"github.com/hrpulse/hrpulse-backend/internal/hr/identity"
	"github.com/hrpulse/hrpulse-backend/pkg/logger"
	"github.com/hrpulse/hrpulse-backend/pkg/messaging"
)

// HREventPublisher publishes dataset lifecycle events. Publish failures are
// logged and swallowed: events are advisory, the run result is the source of
// truth.
type HREventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewHREventPublisher creates a new HR event publisher
func NewHREventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*HREventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeHREvents, "analytics-service", log)
	if err != nil {
		return nil, err
	}

	return &HREventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

// PublishIdentityBackfilled publishes the outcome of an identity backfill pass
func (p *HREventPublisher) PublishIdentityBackfilled(ctx context.Context, runID string, result identity.Result) {
	data := messaging.IdentityBackfilledEvent{
		RunID:     runID,
		Rewritten: result.Rewritten,
		Skipped:   result.Skipped,
	}

	if err := p.publisher.Publish(ctx, messaging.EventIdentityBackfilled, data); err != nil {
		p.logger.Error().Err(err).Str("run_id", runID).Msg("failed to publish identity backfilled event")
	}
}

// PublishGenerationRunStarted publishes a generation run started event
func (p *HREventPublisher) PublishGenerationRunStarted(ctx context.Context, runID string, seed *int64) {
	data := messaging.GenerationRunStartedEvent{
		RunID: runID,
		Seed:  seed,
	}

	if err := p.publisher.Publish(ctx, messaging.EventGenerationRunStarted, data); err != nil {
		p.logger.Error().Err(err).Str("run_id", runID).Msg("failed to publish generation run started event")
	}
}

// PublishGenerationRunCompleted publishes a generation run completed event
func (p *HREventPublisher) PublishGenerationRunCompleted(ctx context.Context, runID string, summary generator.Summary) {
	data := messaging.GenerationRunCompletedEvent{
		RunID:           runID,
		Reviews:         summary.Reviews,
		Trainings:       summary.Trainings,
		Benefits:        summary.Benefits,
		SkippedReviews:  summary.SkippedReviews,
		FailedEmployees: summary.FailedEmployees,
	}

	if err := p.publisher.Publish(ctx, messaging.EventGenerationRunCompleted, data); err != nil {
		p.logger.Error().Err(err).Str("run_id", runID).Msg("failed to publish generation run completed event")
	}
}
