package domain //nolint:testpackage // Exercises the unexported transition table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCanTransition verifies the legal and illegal edges of the variant
// pipeline state machine, including the one-revision bound.
func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from PipelineState
		to   PipelineState
		want bool
	}{
		{"idle to generating", StateIdle, StateGenerating, true},
		{"generating to judging", StateGenerating, StateJudging, true},
		{"generating to failed", StateGenerating, StateFailed, true},
		{"judging to deciding", StateJudging, StateDecidingRevision, true},
		{"judging to failed", StateJudging, StateFailed, true},
		{"deciding to reviewed", StateDecidingRevision, StateReviewed, true},
		{"deciding to revising", StateDecidingRevision, StateRevising, true},
		{"revising to rejudging", StateRevising, StateReJudging, true},
		{"revising to failed", StateRevising, StateFailed, true},
		{"rejudging to reviewed", StateReJudging, StateReviewed, true},
		{"rejudging to failed", StateReJudging, StateFailed, true},

		// A second revision pass has no edge back into the pipeline.
		{"rejudging back to revising", StateReJudging, StateRevising, false},
		{"reviewed to revising", StateReviewed, StateRevising, false},

		{"idle to judging skips generation", StateIdle, StateJudging, false},
		{"generating to reviewed skips judgment", StateGenerating, StateReviewed, false},
		{"deciding to failed", StateDecidingRevision, StateFailed, false},
		{"reviewed is terminal", StateReviewed, StateFailed, false},
		{"failed is terminal", StateFailed, StateGenerating, false},
		{"unknown state", PipelineState("bogus"), StateGenerating, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestPipelineState_IsTerminal(t *testing.T) {
	assert.True(t, StateReviewed.IsTerminal())
	assert.True(t, StateFailed.IsTerminal())
	assert.False(t, StateIdle.IsTerminal())
	assert.False(t, StateGenerating.IsTerminal())
	assert.False(t, StateDecidingRevision.IsTerminal())
}

func TestIsValidStep(t *testing.T) {
	for _, s := range []Step{StepGenerating, StepJudging, StepRevising, StepReJudging} {
		assert.True(t, IsValidStep(s), string(s))
	}
	assert.False(t, IsValidStep(Step("deciding_revision")))
	assert.False(t, IsValidStep(Step("")))
}
