package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ahrav/go-newsdesk/internal/domain"
	"github.com/ahrav/go-newsdesk/pkg/activity"
	"github.com/ahrav/go-newsdesk/pkg/events"
)

// draftProducedEvent records a single draft generation completion.
// Emitted per generated draft for fine-grained tracking of generation
// output, style, and latency.
type draftProducedEvent struct {
	DraftID       string       `json:"draft_id"`
	StyleID       string       `json:"style_id"`
	Round         domain.Round `json:"round"`
	Model         string       `json:"model"`
	Provider      string       `json:"provider"`
	WordCount     int          `json:"word_count"`
	LatencyMillis int64        `json:"latency_millis"`
	ProducedAt    time.Time    `json:"produced_at"`
}

// engineUsageEvent records resource consumption for one generation call.
type engineUsageEvent struct {
	TokensUsed    int64  `json:"tokens_used"`
	CallsMade     int64  `json:"calls_made"`
	Model         string `json:"model"`
	Provider      string `json:"provider"`
	CacheHit      bool   `json:"cache_hit"`
	ClientIdemKey string `json:"client_idem_key"`
}

// EventEmitter handles event emission for the generation domain.
type EventEmitter struct {
	base activity.BaseActivities
}

// NewEventEmitter creates a new EventEmitter with the provided base activities.
func NewEventEmitter(base activity.BaseActivities) *EventEmitter {
	return &EventEmitter{base: base}
}

// EmitDraftProduced emits an event for a generated draft.
func (e *EventEmitter) EmitDraftProduced(
	ctx context.Context,
	result *domain.GenerateDraftOutput,
	wfCtx activity.WorkflowContext,
) {
	draft := result.Draft
	event := draftProducedEvent{
		DraftID:       draft.ID,
		StyleID:       draft.StyleID,
		Round:         draft.Round,
		Model:         draft.Model,
		Provider:      draft.Provider,
		WordCount:     draft.WordCount(),
		LatencyMillis: draft.LatencyMillis,
		ProducedAt:    time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		activity.SafeLogError(ctx, "Failed to marshal draft event",
			"draft_id", draft.ID,
			"error", err)
		return
	}

	envelope := events.Envelope{
		ID:             uuid.New().String(),
		Type:           "generation.draft_produced",
		Source:         "generation-activity",
		Version:        "1.0.0",
		Timestamp:      time.Now(),
		IdempotencyKey: fmt.Sprintf("draft_produced:%s", result.ClientIdemKey),
		WorkflowID:     wfCtx.WorkflowID,
		RunID:          wfCtx.RunID,
		Payload:        payload,
	}

	e.base.EmitEventSafe(ctx, envelope, fmt.Sprintf("DraftProduced[%s]", draft.ID))
}

// EmitEngineUsage emits a usage event for one generation call, driving cost
// tracking and cache hit observation.
func (e *EventEmitter) EmitEngineUsage(
	ctx context.Context,
	result *domain.GenerateDraftOutput,
	wfCtx activity.WorkflowContext,
) {
	event := engineUsageEvent{
		TokensUsed:    result.TokensUsed,
		CallsMade:     result.CallsMade,
		Model:         result.Draft.Model,
		Provider:      result.Draft.Provider,
		CacheHit:      result.CallsMade == 0,
		ClientIdemKey: result.ClientIdemKey,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		activity.SafeLogError(ctx, "Failed to marshal usage event", "error", err)
		return
	}

	envelope := events.Envelope{
		ID:             uuid.New().String(),
		Type:           "generation.engine_usage",
		Source:         "generation-activity",
		Version:        "1.0.0",
		Timestamp:      time.Now(),
		IdempotencyKey: fmt.Sprintf("engine_usage:%s", result.ClientIdemKey),
		WorkflowID:     wfCtx.WorkflowID,
		RunID:          wfCtx.RunID,
		Payload:        payload,
	}

	e.base.EmitEventSafe(ctx, envelope, "EngineUsage")
}
