// Package judging implements the Temporal activity for draft judgment.
// A judge model evaluates one draft against its style profile and the source
// text, producing a structured quality report with a verdict.
package judging

import (
	"context"
	"time"

	"go.temporal.io/sdk/temporal"

	"github.com/ahrav/go-newsdesk/internal/domain"
	"github.com/ahrav/go-newsdesk/internal/llm"
	llmerrors "github.com/ahrav/go-newsdesk/internal/llm/errors"
	"github.com/ahrav/go-newsdesk/pkg/activity"
)

// Activities handles judgment-specific Temporal activities.
type Activities struct {
	activity.BaseActivities
	llmClient llm.Client
	events    *EventEmitter
}

// NewActivities creates judging activities with the provided dependencies.
func NewActivities(base activity.BaseActivities, client llm.Client) *Activities {
	return &Activities{
		BaseActivities: base,
		llmClient:      client,
		events:         NewEventEmitter(base),
	}
}

// JudgeDraft evaluates one draft and returns its quality report.
// The report carries the style identifier and round of the judged draft, the
// draft reference, scores, violations, suggested fixes, and the verdict. The
// LLM client caches by idempotency key, so activity retries reuse a completed
// judgment rather than re-running the judge.
//
// Validation failures and malformed judge output return non-retryable errors;
// transient provider issues return retryable errors.
func (a *Activities) JudgeDraft(
	ctx context.Context,
	input domain.JudgeDraftInput,
) (*domain.JudgeDraftOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, nonRetryable("JudgeDraft", err, "invalid input")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting JudgeDraft activity",
		"workflow_id", wfCtx.WorkflowID,
		"style_id", input.Style.ID,
		"round", input.Draft.Round,
		"draft_id", input.Draft.ID)

	startTime := time.Now()
	output, err := a.llmClient.JudgeDraft(ctx, input)
	if err != nil {
		if llmerrors.IsRetryable(err) {
			return nil, retryable("JudgeDraft", err, "judgment failed")
		}
		return nil, nonRetryable("JudgeDraft", err, "judgment failed")
	}

	a.events.EmitReportProduced(ctx, output, wfCtx)

	activity.SafeLog(ctx, "JudgeDraft completed",
		"style_id", output.Report.StyleID,
		"round", output.Report.Round,
		"verdict", output.Report.Verdict,
		"latency_ms", time.Since(startTime).Milliseconds())

	return output, nil
}

// nonRetryable wraps an error as a Temporal non-retryable application error.
func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}

// retryable wraps an error as a Temporal retryable application error.
func retryable(tag string, cause error, msg string) error {
	return temporal.NewApplicationError(msg, tag, cause)
}
