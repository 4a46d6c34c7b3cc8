package domain

// PipelineState enumerates the states of one variant's pipeline.
// Transitions form a small DAG: every path terminates in Reviewed or Failed,
// and the revision branch is taken at most once.
type PipelineState string

const (
	// StateIdle is the initial state before generation is invoked.
	StateIdle PipelineState = "idle"

	// StateGenerating covers the round-1 generation call.
	StateGenerating PipelineState = "generating"

	// StateJudging covers the round-1 judgment call.
	StateJudging PipelineState = "judging"

	// StateDecidingRevision applies the revision decision policy.
	StateDecidingRevision PipelineState = "deciding_revision"

	// StateRevising covers the single revision generation call.
	StateRevising PipelineState = "revising"

	// StateReJudging covers the judgment call on the revised draft.
	StateReJudging PipelineState = "rejudging"

	// StateReviewed is the terminal success state: the bundle is finalized.
	StateReviewed PipelineState = "reviewed"

	// StateFailed is the terminal failure state, carrying the failing step.
	StateFailed PipelineState = "failed"
)

// Step names the external call a variant was performing when it failed.
// Step values align with the pipeline states that perform external calls.
type Step string

const (
	StepGenerating Step = "generating"
	StepJudging    Step = "judging"
	StepRevising   Step = "revising"
	StepReJudging  Step = "rejudging"
)

// IsValidStep reports whether s names a pipeline step with an external call.
func IsValidStep(s Step) bool {
	switch s {
	case StepGenerating, StepJudging, StepRevising, StepReJudging:
		return true
	default:
		return false
	}
}

// pipelineTransitions encodes the legal state machine edges.
// Failed is reachable from every non-terminal state.
var pipelineTransitions = map[PipelineState][]PipelineState{
	StateIdle:             {StateGenerating},
	StateGenerating:       {StateJudging, StateFailed},
	StateJudging:          {StateDecidingRevision, StateFailed},
	StateDecidingRevision: {StateReviewed, StateRevising},
	StateRevising:         {StateReJudging, StateFailed},
	StateReJudging:        {StateReviewed, StateFailed},
	StateReviewed:         nil,
	StateFailed:           nil,
}

// CanTransition reports whether the edge from -> to is legal.
// Unknown states have no legal transitions.
func CanTransition(from, to PipelineState) bool {
	for _, next := range pipelineTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the state ends a variant's pipeline.
func (s PipelineState) IsTerminal() bool {
	return s == StateReviewed || s == StateFailed
}
