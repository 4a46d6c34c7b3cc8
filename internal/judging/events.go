package judging

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

// reportProducedEvent records one completed judgment.
type reportProducedEvent struct {
	ReportID      string         `json:"report_id"`
	DraftID       string         `json:"draft_id"`
	StyleID       string         `json:"style_id"`
	Round         domain.Round   `json:"round"`
	Verdict       domain.Verdict `json:"verdict"`
	Violations    int            `json:"violations"`
	JudgeModel    string         `json:"judge_model"`
	JudgeProvider string         `json:"judge_provider"`
	TokensUsed    int64          `json:"tokens_used"`
	CacheHit      bool           `json:"cache_hit"`
	LatencyMillis int64          `json:"latency_millis"`
	ProducedAt    time.Time      `json:"produced_at"`
}

// EventEmitter handles event emission for the judging domain.
type EventEmitter struct {
	base activity.BaseActivities
}

// NewEventEmitter creates a new EventEmitter with the provided base activities.
func NewEventEmitter(base activity.BaseActivities) *EventEmitter {
	return &EventEmitter{base: base}
}

// EmitReportProduced emits an event for a completed judgment.
func (e *EventEmitter) EmitReportProduced(
	ctx context.Context,
	result *domain.JudgeDraftOutput,
	wfCtx activity.WorkflowContext,
) {
	report := result.Report
	event := reportProducedEvent{
		ReportID:      report.ID,
		DraftID:       report.DraftID,
		StyleID:       report.StyleID,
		Round:         report.Round,
		Verdict:       report.Verdict,
		Violations:    len(report.Violations),
		JudgeModel:    report.JudgeModel,
		JudgeProvider: report.JudgeProvider,
		TokensUsed:    result.TokensUsed,
		CacheHit:      result.CallsMade == 0,
		LatencyMillis: report.LatencyMillis,
		ProducedAt:    time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		activity.SafeLogError(ctx, "Failed to marshal report event",
			"report_id", report.ID,
			"error", err)
		return
	}

	envelope := events.Envelope{
		ID:             uuid.New().String(),
		Type:           "judging.report_produced",
		Source:         "judging-activity",
		Version:        "1.0.0",
		Timestamp:      time.Now(),
		IdempotencyKey: fmt.Sprintf("report_produced:%s", result.ClientIdemKey),
		WorkflowID:     wfCtx.WorkflowID,
		RunID:          wfCtx.RunID,
		Payload:        payload,
	}

	e.base.EmitEventSafe(ctx, envelope, fmt.Sprintf("ReportProduced[%s]", report.ID))
}
