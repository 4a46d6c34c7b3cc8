package workflow

import (
	"fmt"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/ahrav/go-newsdesk/internal/domain"
)

// VariantWorkflowIDFormat builds deterministic child workflow identifiers,
// "run-{runID}-variant-{styleID}". Style IDs are unique within a run, so
// child IDs cannot collide.
func VariantWorkflowIDFormat(runID, styleID string) string {
	return fmt.Sprintf("run-%s-variant-%s", runID, styleID)
}

// RunWorkflow coordinates one production run: one child VariantWorkflow per
// requested style, started concurrently and collected in request order. A
// failed variant contributes a failure-marked result; the run completes with
// exactly one result per configured style regardless of individual outcomes.
func RunWorkflow(ctx workflow.Context, in domain.RunInput) (*domain.RunResult, error) {
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "run.v", workflow.DefaultVersion, currentVersion)

	if err := in.Validate(); err != nil {
		return nil, temporal.NewNonRetryableApplicationError(
			"invalid run input", "Validation", err)
	}

	logger := workflow.GetLogger(ctx)
	logger.Info("starting run",
		"run_id", in.Request.ID,
		"styles", len(in.Styles))

	startedAt := workflow.Now(ctx).UTC()

	// Fan out all variants before collecting any, so variants run
	// concurrently while collection stays in request order.
	futures := make([]workflow.ChildWorkflowFuture, len(in.Styles))
	for i, style := range in.Styles {
		childCtx := workflow.WithChildOptions(ctx, workflow.ChildWorkflowOptions{
			WorkflowID: VariantWorkflowIDFormat(in.Request.ID, style.ID),
		})
		futures[i] = workflow.ExecuteChildWorkflow(childCtx, VariantWorkflow, domain.VariantInput{
			RunID:      in.Request.ID,
			SourceText: in.Request.SourceText,
			SourceURL:  in.Request.SourceURL,
			Style:      style,
			Config:     in.Config,
		})
	}

	variants := make([]domain.VariantResult, len(in.Styles))
	for i, future := range futures {
		var vr domain.VariantResult
		if err := future.Get(ctx, &vr); err != nil {
			// Child workflows absorb activity failures into markers, so an
			// error here means the child itself could not run. The variant
			// still gets a slot in the result.
			logger.Error("variant workflow failed",
				"run_id", in.Request.ID,
				"style_id", in.Styles[i].ID,
				"error", err)
			vr = domain.VariantResult{
				Style: in.Styles[i],
				State: domain.StateFailed,
				Failure: &domain.VariantFailure{
					Step:    domain.StepGenerating,
					Round:   domain.RoundOriginal,
					Message: fmt.Sprintf("variant execution failed: %v", err),
				},
			}
		}
		variants[i] = vr
	}

	result := &domain.RunResult{
		RunID:       in.Request.ID,
		Variants:    variants,
		StartedAt:   startedAt,
		CompletedAt: workflow.Now(ctx).UTC(),
	}

	if err := result.Validate(in.Request.StyleIDs); err != nil {
		return nil, temporal.NewNonRetryableApplicationError(
			"run result failed validation", "ResultIntegrity", err)
	}

	logger.Info("run completed",
		"run_id", in.Request.ID,
		"variants", len(result.Variants))
	return result, nil
}
