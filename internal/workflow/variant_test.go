package workflow //nolint:testpackage // Consistent with the other package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkactivity "go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/ahrav/go-newsdesk/internal/domain"
	"github.com/ahrav/go-newsdesk/internal/styles"
)

const variantSourceText = "Am Montagabend brannte eine Lagerhalle in Köln-Ehrenfeld. Verletzt wurde niemand."

func variantInput(style domain.StyleProfile) domain.VariantInput {
	return domain.VariantInput{
		RunID:      "123e4567-e89b-12d3-a456-426614174000",
		SourceText: variantSourceText,
		Style:      style,
		Config:     domain.DefaultEngineConfig(),
	}
}

func fixtureDraft(styleID string, round domain.Round) domain.Draft {
	return domain.Draft{
		ID:           domain.NewDraftID(),
		StyleID:      styleID,
		Round:        round,
		Headline:     "Lagerhalle in Ehrenfeld ausgebrannt",
		TeaserOrLead: "Die Feuerwehr war mehrere Stunden im Einsatz.",
		BodyParagraphs: []string{
			"Am Montagabend brannte eine Lagerhalle in Köln-Ehrenfeld.",
			"Verletzt wurde nach Polizeiangaben niemand.",
		},
		Attribution: domain.Attribution{Source: "Polizei"},
	}
}

func fixtureReport(d domain.Draft, verdict domain.Verdict) domain.QualityReport {
	return domain.QualityReport{
		ID:      domain.NewReportID(),
		StyleID: d.StyleID,
		Round:   d.Round,
		DraftID: d.ID,
		Scores: domain.ReportScores{
			FactualConsistency: 1.0,
			StyleMatch:         0.95,
			LengthOK:           true,
			StructureOK:        true,
			SafetyOK:           true,
		},
		Verdict: verdict,
	}
}

// registerPipelineActivities registers stand-ins under the worker activity
// names so tests can mock them via OnActivity.
func registerPipelineActivities(env *testsuite.TestWorkflowEnvironment) {
	env.RegisterActivityWithOptions(
		func(_ context.Context, _ domain.GenerateDraftInput) (*domain.GenerateDraftOutput, error) {
			return nil, errors.New("unmocked")
		},
		sdkactivity.RegisterOptions{Name: ActivityGenerateDraft},
	)
	env.RegisterActivityWithOptions(
		func(_ context.Context, _ domain.JudgeDraftInput) (*domain.JudgeDraftOutput, error) {
			return nil, errors.New("unmocked")
		},
		sdkactivity.RegisterOptions{Name: ActivityJudgeDraft},
	)
}

func generateInputForRound(round domain.Round) any {
	return mock.MatchedBy(func(in domain.GenerateDraftInput) bool { return in.Round == round })
}

func judgeInputForRound(round domain.Round) any {
	return mock.MatchedBy(func(in domain.JudgeDraftInput) bool { return in.Draft.Round == round })
}

func TestVariantWorkflow_PassWithoutRevision(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()
	defer env.AssertExpectations(t)
	registerPipelineActivities(env)

	style := styles.Express()
	draft := fixtureDraft(style.ID, domain.RoundOriginal)
	report := fixtureReport(draft, domain.VerdictPass)

	env.OnActivity(ActivityGenerateDraft, mock.Anything, generateInputForRound(domain.RoundOriginal)).
		Return(&domain.GenerateDraftOutput{Draft: draft, TokensUsed: 900, CallsMade: 1}, nil).Once()
	env.OnActivity(ActivityJudgeDraft, mock.Anything, judgeInputForRound(domain.RoundOriginal)).
		Return(&domain.JudgeDraftOutput{Report: report, TokensUsed: 400, CallsMade: 1}, nil).Once()

	env.ExecuteWorkflow(VariantWorkflow, variantInput(style))

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result domain.VariantResult
	require.NoError(t, env.GetWorkflowResult(&result))

	assert.Equal(t, domain.StateReviewed, result.State)
	require.NotNil(t, result.Draft1)
	assert.Equal(t, draft.ID, result.Draft1.ID)
	assert.Nil(t, result.Draft2)
	assert.Nil(t, result.Report2)
	assert.Nil(t, result.Failure)
	require.NoError(t, result.Validate())
}

func TestVariantWorkflow_ReviseThenPass(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()
	defer env.AssertExpectations(t)
	registerPipelineActivities(env)

	style := styles.KSTA()
	draft1 := fixtureDraft(style.ID, domain.RoundOriginal)
	report1 := fixtureReport(draft1, domain.VerdictRevise)
	report1.Scores.StyleMatch = 0.6
	report1.SuggestedFixes = []string{"Ton neutraler fassen"}
	draft2 := fixtureDraft(style.ID, domain.RoundRevised)
	report2 := fixtureReport(draft2, domain.VerdictPass)

	env.OnActivity(ActivityGenerateDraft, mock.Anything, generateInputForRound(domain.RoundOriginal)).
		Return(&domain.GenerateDraftOutput{Draft: draft1, CallsMade: 1}, nil).Once()
	env.OnActivity(ActivityJudgeDraft, mock.Anything, judgeInputForRound(domain.RoundOriginal)).
		Return(&domain.JudgeDraftOutput{Report: report1, CallsMade: 1}, nil).Once()

	// The revision round must carry the prior draft and policy instructions.
	env.OnActivity(ActivityGenerateDraft, mock.Anything, mock.MatchedBy(func(in domain.GenerateDraftInput) bool {
		return in.Round == domain.RoundRevised &&
			in.PriorDraft != nil && in.PriorDraft.ID == draft1.ID &&
			len(in.Instructions) > 0
	})).Return(&domain.GenerateDraftOutput{Draft: draft2, CallsMade: 1}, nil).Once()
	env.OnActivity(ActivityJudgeDraft, mock.Anything, judgeInputForRound(domain.RoundRevised)).
		Return(&domain.JudgeDraftOutput{Report: report2, CallsMade: 1}, nil).Once()

	env.ExecuteWorkflow(VariantWorkflow, variantInput(style))

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result domain.VariantResult
	require.NoError(t, env.GetWorkflowResult(&result))

	assert.Equal(t, domain.StateReviewed, result.State)
	assert.True(t, result.Revised())
	require.NotNil(t, result.Draft2)
	assert.Equal(t, draft2.ID, result.Draft2.ID)
	assert.Equal(t, domain.RoundRevised, result.Draft2.Round)
	require.NoError(t, result.Validate())
}

func TestVariantWorkflow_GenerationFails(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()
	defer env.AssertExpectations(t)
	registerPipelineActivities(env)

	style := styles.Express()
	env.OnActivity(ActivityGenerateDraft, mock.Anything, mock.Anything).
		Return(nil, temporal.NewNonRetryableApplicationError("generation failed", "Engine", errors.New("provider down"))).Once()

	env.ExecuteWorkflow(VariantWorkflow, variantInput(style))

	require.True(t, env.IsWorkflowCompleted())
	// Activity failures land in the marker, not in the workflow error.
	require.NoError(t, env.GetWorkflowError())

	var result domain.VariantResult
	require.NoError(t, env.GetWorkflowResult(&result))

	assert.Equal(t, domain.StateFailed, result.State)
	require.NotNil(t, result.Failure)
	assert.Equal(t, domain.StepGenerating, result.Failure.Step)
	assert.Equal(t, domain.RoundOriginal, result.Failure.Round)
	assert.Contains(t, result.Failure.Message, "generation failed")
	assert.Nil(t, result.Draft1)
	require.NoError(t, result.Validate())
}

func TestVariantWorkflow_JudgmentFails(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()
	defer env.AssertExpectations(t)
	registerPipelineActivities(env)

	style := styles.Express()
	draft := fixtureDraft(style.ID, domain.RoundOriginal)

	env.OnActivity(ActivityGenerateDraft, mock.Anything, mock.Anything).
		Return(&domain.GenerateDraftOutput{Draft: draft, CallsMade: 1}, nil).Once()
	env.OnActivity(ActivityJudgeDraft, mock.Anything, mock.Anything).
		Return(nil, temporal.NewNonRetryableApplicationError("judgment failed", "Engine", errors.New("bad json"))).Once()

	env.ExecuteWorkflow(VariantWorkflow, variantInput(style))

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result domain.VariantResult
	require.NoError(t, env.GetWorkflowResult(&result))

	assert.Equal(t, domain.StateFailed, result.State)
	require.NotNil(t, result.Failure)
	assert.Equal(t, domain.StepJudging, result.Failure.Step)
	// The already-produced draft stays on the bundle for diagnostics.
	require.NotNil(t, result.Draft1)
	assert.Nil(t, result.Report1)
}

// TestVariantWorkflow_ReJudgeFails verifies revision atomicity: when the
// re-judge call fails, neither the revised draft nor its report is recorded.
func TestVariantWorkflow_ReJudgeFails(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()
	defer env.AssertExpectations(t)
	registerPipelineActivities(env)

	style := styles.KSTA()
	draft1 := fixtureDraft(style.ID, domain.RoundOriginal)
	report1 := fixtureReport(draft1, domain.VerdictRevise)
	draft2 := fixtureDraft(style.ID, domain.RoundRevised)

	env.OnActivity(ActivityGenerateDraft, mock.Anything, generateInputForRound(domain.RoundOriginal)).
		Return(&domain.GenerateDraftOutput{Draft: draft1, CallsMade: 1}, nil).Once()
	env.OnActivity(ActivityJudgeDraft, mock.Anything, judgeInputForRound(domain.RoundOriginal)).
		Return(&domain.JudgeDraftOutput{Report: report1, CallsMade: 1}, nil).Once()
	env.OnActivity(ActivityGenerateDraft, mock.Anything, generateInputForRound(domain.RoundRevised)).
		Return(&domain.GenerateDraftOutput{Draft: draft2, CallsMade: 1}, nil).Once()
	env.OnActivity(ActivityJudgeDraft, mock.Anything, judgeInputForRound(domain.RoundRevised)).
		Return(nil, temporal.NewNonRetryableApplicationError("judgment failed", "Engine", errors.New("timeout"))).Once()

	env.ExecuteWorkflow(VariantWorkflow, variantInput(style))

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result domain.VariantResult
	require.NoError(t, env.GetWorkflowResult(&result))

	assert.Equal(t, domain.StateFailed, result.State)
	require.NotNil(t, result.Failure)
	assert.Equal(t, domain.StepReJudging, result.Failure.Step)
	assert.Equal(t, domain.RoundRevised, result.Failure.Round)
	assert.Nil(t, result.Draft2)
	assert.Nil(t, result.Report2)
	require.NotNil(t, result.Draft1)
	require.NotNil(t, result.Report1)
	require.NoError(t, result.Validate())
}

func TestVariantWorkflow_InvalidInput(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()
	registerPipelineActivities(env)

	in := variantInput(styles.Express())
	in.SourceText = ""
	env.ExecuteWorkflow(VariantWorkflow, in)

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Validation", appErr.Type())
	assert.True(t, appErr.NonRetryable())
}
