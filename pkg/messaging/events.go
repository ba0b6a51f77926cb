package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	// Identity events
	EventIdentityBackfilled = "hr.identity.backfilled"

	// Generation events
	EventGenerationRunStarted   = "hr.generation.run.started"
	EventGenerationRunCompleted = "hr.generation.run.completed"
)

// Exchange names
const (
	ExchangeHREvents = "hr.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// GenerateEventID returns a unique event identifier
func GenerateEventID() string {
	return uuid.New().String()
}

// IdentityBackfilledEvent is published after a placeholder identity backfill pass
type IdentityBackfilledEvent struct {
	RunID     string `json:"run_id"`
	Rewritten int    `json:"rewritten"`
	Skipped   int    `json:"skipped"`
}

// GenerationRunStartedEvent is published when a generation run begins
type GenerationRunStartedEvent struct {
	RunID string `json:"run_id"`
	Seed  *int64 `json:"seed,omitempty"`
}

// GenerationRunCompletedEvent is published when a generation run finishes
type GenerationRunCompletedEvent struct {
	RunID           string `json:"run_id"`
	Reviews         int    `json:"reviews"`
	Trainings       int    `json:"trainings"`
	Benefits        int    `json:"benefits"`
	SkippedReviews  int    `json:"skipped_reviews"`
	FailedEmployees int    `json:"failed_employees"`
}
