// Package generation implements the Temporal activity for article draft
// generation. It wraps the LLM client with validation, retry classification,
// and event emission for the generation phase of the pipeline.
package generation

import (
	"context"
	"time"

	"go.temporal.io/sdk/temporal"

	"github.com/ahrav/go-newsdesk/internal/domain"
	"github.com/ahrav/go-newsdesk/internal/llm"
	llmerrors "github.com/ahrav/go-newsdesk/internal/llm/errors"
	"github.com/ahrav/go-newsdesk/pkg/activity"
)

// Activities handles generation-specific Temporal activities.
// It encapsulates the LLM client interaction and event emission needed to
// produce one draft per call.
type Activities struct {
	activity.BaseActivities
	llmClient llm.Client
	events    *EventEmitter
}

// NewActivities creates generation activities with the provided dependencies.
func NewActivities(base activity.BaseActivities, client llm.Client) *Activities {
	return &Activities{
		BaseActivities: base,
		llmClient:      client,
		events:         NewEventEmitter(base),
	}
}

// GenerateDraft produces one article draft for a style and round.
// Round 1 writes from the source text alone; round 2 revises the prior draft
// under the judge-derived instructions. The LLM client handles idempotent
// caching, so Temporal retries of this activity reuse completed provider
// calls instead of generating divergent drafts.
//
// Validation failures and malformed model output return non-retryable errors;
// transient provider issues return retryable errors for Temporal's retry
// policy to handle.
func (a *Activities) GenerateDraft(
	ctx context.Context,
	input domain.GenerateDraftInput,
) (*domain.GenerateDraftOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, nonRetryable("GenerateDraft", err, "invalid input")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting GenerateDraft activity",
		"workflow_id", wfCtx.WorkflowID,
		"style_id", input.Style.ID,
		"round", input.Round)

	startTime := time.Now()
	output, err := a.llmClient.GenerateDraft(ctx, input)
	if err != nil {
		if llmerrors.IsRetryable(err) {
			return nil, retryable("GenerateDraft", err, "generation failed")
		}
		return nil, nonRetryable("GenerateDraft", err, "generation failed")
	}

	// Events are best-effort observability; failures never fail the activity.
	a.events.EmitDraftProduced(ctx, output, wfCtx)
	a.events.EmitEngineUsage(ctx, output, wfCtx)

	activity.SafeLog(ctx, "GenerateDraft completed",
		"style_id", output.Draft.StyleID,
		"round", output.Draft.Round,
		"draft_id", output.Draft.ID,
		"latency_ms", time.Since(startTime).Milliseconds())

	return output, nil
}

// nonRetryable wraps an error as a Temporal non-retryable application error.
// Used for validation failures and permanent errors that should not be retried.
func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}

// retryable wraps an error as a Temporal retryable application error.
// Used for transient failures that may succeed on retry with backoff.
func retryable(tag string, cause error, msg string) error {
	return temporal.NewApplicationError(msg, tag, cause)
}
