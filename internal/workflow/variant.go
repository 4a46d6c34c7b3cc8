package workflow

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/ahrav/go-newsdesk/internal/domain"
	"github.com/ahrav/go-newsdesk/internal/revision"
)

// Activity names as registered on the worker.
const (
	ActivityGenerateDraft = "GenerateDraft"
	ActivityJudgeDraft    = "JudgeDraft"
)

// activityTimeoutSlack pads the activity schedule beyond the engine call
// timeout so the LLM client's own retries fit within one activity attempt.
const activityTimeoutSlack = 30 * time.Second

// VariantWorkflow drives one style variant through the pipeline state
// machine. It returns a terminal VariantResult for every activity-level
// failure; only invalid input or an internal state machine violation fail
// the workflow itself.
func VariantWorkflow(ctx workflow.Context, in domain.VariantInput) (*domain.VariantResult, error) {
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "variant.v", workflow.DefaultVersion, currentVersion)

	if err := in.Validate(); err != nil {
		return nil, temporal.NewNonRetryableApplicationError(
			"invalid variant input", "Validation", err)
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: time.Duration(in.Config.CallTimeoutSecs)*time.Second + activityTimeoutSlack,
		HeartbeatTimeout:    30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	sm := stateMachine{state: domain.StateIdle}
	result := &domain.VariantResult{Style: in.Style}

	// Round 1: generate.
	if err := sm.advance(domain.StateGenerating); err != nil {
		return nil, err
	}
	genIn := domain.GenerateDraftInput{
		SourceText: in.SourceText,
		SourceURL:  in.SourceURL,
		Style:      in.Style,
		Round:      domain.RoundOriginal,
		Config:     in.Config,
	}
	var genOut domain.GenerateDraftOutput
	if err := workflow.ExecuteActivity(ctx, ActivityGenerateDraft, genIn).Get(ctx, &genOut); err != nil {
		return sm.fail(result, domain.StepGenerating, domain.RoundOriginal, err)
	}
	result.Draft1 = &genOut.Draft

	// Round 1: judge.
	if err := sm.advance(domain.StateJudging); err != nil {
		return nil, err
	}
	judgeIn := domain.JudgeDraftInput{
		SourceText: in.SourceText,
		Style:      in.Style,
		Draft:      *result.Draft1,
		Config:     in.Config,
	}
	var judgeOut domain.JudgeDraftOutput
	if err := workflow.ExecuteActivity(ctx, ActivityJudgeDraft, judgeIn).Get(ctx, &judgeOut); err != nil {
		return sm.fail(result, domain.StepJudging, domain.RoundOriginal, err)
	}
	result.Report1 = &judgeOut.Report

	// Decide. The policy is pure and deterministic, safe in workflow code.
	if err := sm.advance(domain.StateDecidingRevision); err != nil {
		return nil, err
	}
	decision := revision.NewDefaultPolicy().Decide(*result.Report1)
	if !decision.NeedsRevision {
		if err := sm.advance(domain.StateReviewed); err != nil {
			return nil, err
		}
		result.State = domain.StateReviewed
		return result, nil
	}

	// Round 2: revise. Exactly one revision round, ever.
	if err := sm.advance(domain.StateRevising); err != nil {
		return nil, err
	}
	revIn := domain.GenerateDraftInput{
		SourceText:   in.SourceText,
		SourceURL:    in.SourceURL,
		Style:        in.Style,
		Round:        domain.RoundRevised,
		Instructions: decision.Instructions,
		PriorDraft:   result.Draft1,
		Config:       in.Config,
	}
	var revOut domain.GenerateDraftOutput
	if err := workflow.ExecuteActivity(ctx, ActivityGenerateDraft, revIn).Get(ctx, &revOut); err != nil {
		return sm.fail(result, domain.StepRevising, domain.RoundRevised, err)
	}

	// Round 2: re-judge. The revised draft is not recorded until its report
	// exists: draft2 and report2 land together or not at all.
	if err := sm.advance(domain.StateReJudging); err != nil {
		return nil, err
	}
	reJudgeIn := domain.JudgeDraftInput{
		SourceText: in.SourceText,
		Style:      in.Style,
		Draft:      revOut.Draft,
		Config:     in.Config,
	}
	var reJudgeOut domain.JudgeDraftOutput
	if err := workflow.ExecuteActivity(ctx, ActivityJudgeDraft, reJudgeIn).Get(ctx, &reJudgeOut); err != nil {
		return sm.fail(result, domain.StepReJudging, domain.RoundRevised, err)
	}
	result.Draft2 = &revOut.Draft
	result.Report2 = &reJudgeOut.Report

	if err := sm.advance(domain.StateReviewed); err != nil {
		return nil, err
	}
	result.State = domain.StateReviewed
	return result, nil
}

// stateMachine tracks the variant pipeline state and rejects illegal edges.
// An illegal transition is a programming error and fails the workflow rather
// than producing a marker.
type stateMachine struct {
	state domain.PipelineState
}

func (s *stateMachine) advance(to domain.PipelineState) error {
	if !domain.CanTransition(s.state, to) {
		return temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("illegal pipeline transition %s -> %s", s.state, to),
			"StateMachine", nil)
	}
	s.state = to
	return nil
}

// fail finalizes the result with a failure marker for the given step.
// Partial artifacts from the failing call are never retained; artifacts from
// completed steps stay on the result.
func (s *stateMachine) fail(result *domain.VariantResult, step domain.Step, round domain.Round, cause error) (*domain.VariantResult, error) {
	if err := s.advance(domain.StateFailed); err != nil {
		return nil, err
	}
	result.State = domain.StateFailed
	result.Failure = &domain.VariantFailure{
		Step:    step,
		Round:   round,
		Message: cause.Error(),
	}
	return result, nil
}
