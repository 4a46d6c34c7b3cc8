package workflow //nolint:testpackage // Consistent with the other package tests

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/ahrav/go-newsdesk/internal/domain"
	"github.com/ahrav/go-newsdesk/internal/styles"
)

func runInput(t *testing.T, styleIDs ...string) domain.RunInput {
	t.Helper()
	req, err := domain.NewRunRequest(variantSourceText, "https://presseportal.example/123", styleIDs,
		domain.Principal{Type: domain.PrincipalService, ID: "test"})
	require.NoError(t, err)

	profiles, err := styles.Default().ResolveAll(styleIDs)
	require.NoError(t, err)

	return domain.RunInput{
		Request: *req,
		Styles:  profiles,
		Config:  domain.DefaultEngineConfig(),
	}
}

// mockVariantSuccess wires pass-verdict activities for the given style.
func mockVariantSuccess(env *testsuite.TestWorkflowEnvironment, styleID string) {
	draft := fixtureDraft(styleID, domain.RoundOriginal)
	report := fixtureReport(draft, domain.VerdictPass)

	env.OnActivity(ActivityGenerateDraft, mock.Anything, mock.MatchedBy(func(in domain.GenerateDraftInput) bool {
		return in.Style.ID == styleID
	})).Return(&domain.GenerateDraftOutput{Draft: draft, CallsMade: 1}, nil).Once()
	env.OnActivity(ActivityJudgeDraft, mock.Anything, mock.MatchedBy(func(in domain.JudgeDraftInput) bool {
		return in.Style.ID == styleID
	})).Return(&domain.JudgeDraftOutput{Report: report, CallsMade: 1}, nil).Once()
}

// mockVariantGenerationFailure fails generation for the given style.
func mockVariantGenerationFailure(env *testsuite.TestWorkflowEnvironment, styleID string) {
	env.OnActivity(ActivityGenerateDraft, mock.Anything, mock.MatchedBy(func(in domain.GenerateDraftInput) bool {
		return in.Style.ID == styleID
	})).Return(nil, temporal.NewNonRetryableApplicationError("generation failed", "Engine", errors.New("provider down"))).Once()
}

func TestRunWorkflow_AllVariantsSucceed(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()
	defer env.AssertExpectations(t)
	env.RegisterWorkflow(VariantWorkflow)
	registerPipelineActivities(env)

	mockVariantSuccess(env, styles.StyleExpress)
	mockVariantSuccess(env, styles.StyleKSTA)

	in := runInput(t, styles.StyleExpress, styles.StyleKSTA)
	env.ExecuteWorkflow(RunWorkflow, in)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result domain.RunResult
	require.NoError(t, env.GetWorkflowResult(&result))

	assert.Equal(t, in.Request.ID, result.RunID)
	assert.Equal(t, []string{styles.StyleExpress, styles.StyleKSTA}, result.StyleIDs())
	for _, v := range result.Variants {
		assert.Equal(t, domain.StateReviewed, v.State)
	}
	assert.False(t, result.CompletedAt.Before(result.StartedAt))
	require.NoError(t, result.Validate(in.Request.StyleIDs))
}

// TestRunWorkflow_PartialFailure verifies per-variant isolation: one failed
// style yields a failure-marked slot while the others complete normally, with
// order preserved.
func TestRunWorkflow_PartialFailure(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()
	defer env.AssertExpectations(t)
	env.RegisterWorkflow(VariantWorkflow)
	registerPipelineActivities(env)

	mockVariantGenerationFailure(env, styles.StyleExpress)
	mockVariantSuccess(env, styles.StyleKSTA)

	in := runInput(t, styles.StyleExpress, styles.StyleKSTA)
	env.ExecuteWorkflow(RunWorkflow, in)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result domain.RunResult
	require.NoError(t, env.GetWorkflowResult(&result))

	require.Len(t, result.Variants, 2)
	assert.Equal(t, []string{styles.StyleExpress, styles.StyleKSTA}, result.StyleIDs())

	failed := result.Variant(styles.StyleExpress)
	require.NotNil(t, failed)
	assert.Equal(t, domain.StateFailed, failed.State)
	require.NotNil(t, failed.Failure)
	assert.Equal(t, domain.StepGenerating, failed.Failure.Step)

	ok := result.Variant(styles.StyleKSTA)
	require.NotNil(t, ok)
	assert.Equal(t, domain.StateReviewed, ok.State)

	require.NoError(t, result.Validate(in.Request.StyleIDs))
}

func TestRunWorkflow_SingleStyle(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()
	defer env.AssertExpectations(t)
	env.RegisterWorkflow(VariantWorkflow)
	registerPipelineActivities(env)

	mockVariantSuccess(env, styles.StyleKSTA)

	in := runInput(t, styles.StyleKSTA)
	env.ExecuteWorkflow(RunWorkflow, in)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result domain.RunResult
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Len(t, result.Variants, 1)
	assert.Equal(t, styles.StyleKSTA, result.Variants[0].Style.ID)
}

func TestRunWorkflow_InvalidInput(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(VariantWorkflow)
	registerPipelineActivities(env)

	in := runInput(t, styles.StyleExpress, styles.StyleKSTA)
	// Break the request/profile pairing.
	in.Styles = in.Styles[:1]

	env.ExecuteWorkflow(RunWorkflow, in)

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Validation", appErr.Type())
}

func TestVariantWorkflowIDFormat(t *testing.T) {
	id := VariantWorkflowIDFormat("123e4567-e89b-12d3-a456-426614174000", "express")
	assert.Equal(t, "run-123e4567-e89b-12d3-a456-426614174000-variant-express", id)
}

// TestRunWorkflow_Deterministic re-executes the same input and expects the
// same variant ordering and states.
func TestRunWorkflow_Deterministic(t *testing.T) {
	run := func() domain.RunResult {
		testSuite := &testsuite.WorkflowTestSuite{}
		env := testSuite.NewTestWorkflowEnvironment()
		env.RegisterWorkflow(VariantWorkflow)
		registerPipelineActivities(env)
		mockVariantSuccess(env, styles.StyleExpress)
		mockVariantSuccess(env, styles.StyleKSTA)

		env.ExecuteWorkflow(RunWorkflow, runInput(t, styles.StyleExpress, styles.StyleKSTA))
		var result domain.RunResult
		require.NoError(t, env.GetWorkflowResult(&result))
		return result
	}

	first := run()
	second := run()

	assert.Equal(t, first.StyleIDs(), second.StyleIDs())
	for i := range first.Variants {
		assert.Equal(t, first.Variants[i].State, second.Variants[i].State)
	}
}
