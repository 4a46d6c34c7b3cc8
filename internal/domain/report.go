package domain

import "github.com/google/uuid"

// NewReportID generates a unique report identifier.
// Not safe for workflow contexts; call from activities only.
func NewReportID() string { return uuid.New().String() }

// Verdict is the judge's structured decision over a draft. It is the only
// field the revision policy reads, keeping variant control flow identical
// across styles while per-style judgment semantics stay inside the judge.
type Verdict string

const (
	// VerdictPass indicates the draft is acceptable as-is ("auto_ok").
	VerdictPass Verdict = "pass"

	// VerdictRevise indicates the judge requests the bounded revision pass.
	VerdictRevise Verdict = "revise"

	// VerdictHumanReview indicates a hard knockout criterion failed and an
	// editor must look at the draft regardless of any revision outcome.
	VerdictHumanReview Verdict = "human_review"
)

// IsValidVerdict reports whether v is a recognized judge verdict.
func IsValidVerdict(v Verdict) bool {
	switch v {
	case VerdictPass, VerdictRevise, VerdictHumanReview:
		return true
	default:
		return false
	}
}

// ReportMetrics holds measured values the judge reports alongside its scores.
type ReportMetrics struct {
	HeadlineLengthChars int `json:"headline_length_chars" validate:"min=0"`
	BodyWordCount       int `json:"body_word_count" validate:"min=0"`
}

// ReportScores holds the judge's quality assessment of a draft.
// Float scores are normalized to [0, 1]; booleans are hard rule checks.
type ReportScores struct {
	// FactualConsistency is 1.0 only when the draft contains no deviation
	// from the source text.
	FactualConsistency float64 `json:"factual_consistency" validate:"min=0,max=1"`

	// StyleMatch measures adherence to tone, headline rules, and length rules.
	StyleMatch float64 `json:"style_match" validate:"min=0,max=1"`

	// LengthOK, StructureOK, and SafetyOK are binary rule checks.
	LengthOK    bool `json:"length_ok"`
	StructureOK bool `json:"structure_ok"`
	SafetyOK    bool `json:"safety_ok"`
}

// QualityReport is the structured output of judging one draft. It is tagged
// with the same style identifier and round as the draft it evaluates and is
// immutable once produced.
type QualityReport struct {
	// ID uniquely identifies this report using UUID format.
	ID string `json:"id" validate:"required,uuid"`

	// StyleID and Round mirror the tags of the judged draft.
	StyleID string `json:"style_id" validate:"required,min=1"`
	Round   Round  `json:"round" validate:"required,min=1,max=2"`

	// DraftID references the judged draft.
	DraftID string `json:"draft_id" validate:"required,uuid"`

	// Metrics holds measured values reported by the judge.
	Metrics ReportMetrics `json:"metrics"`

	// Scores holds the quality assessment.
	Scores ReportScores `json:"scores" validate:"required"`

	// Violations lists knockout or rule violations found by the judge.
	Violations []string `json:"violations,omitempty"`

	// SuggestedFixes lists concrete corrections the judge proposes.
	SuggestedFixes []string `json:"suggested_fixes,omitempty"`

	// Verdict is the derived decision: pass, revise, or human_review.
	Verdict Verdict `json:"verdict" validate:"required"`

	// JudgeProvider and JudgeModel attribute the judgment engine.
	JudgeProvider string `json:"judge_provider,omitempty"`
	JudgeModel    string `json:"judge_model,omitempty"`

	// LatencyMillis measures the judgment call latency.
	LatencyMillis int64 `json:"latency_millis,omitempty"`
}

// Validate checks structural integrity and verdict validity.
func (r *QualityReport) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if !IsValidVerdict(r.Verdict) {
		return ErrInvalidVerdict
	}
	return nil
}

// Normalize clamps float scores into [0, 1]. Judge models occasionally emit
// values slightly outside the range; normalization keeps downstream policy
// arithmetic well-defined.
func (r *QualityReport) Normalize() {
	r.Scores.FactualConsistency = clamp01(r.Scores.FactualConsistency)
	r.Scores.StyleMatch = clamp01(r.Scores.StyleMatch)
}

// JudgeDraftInput is the operation contract for draft judgment.
type JudgeDraftInput struct {
	// SourceText is the source material the draft is checked against.
	SourceText string `json:"source_text" validate:"required,min=1"`

	// Style is the profile whose rules the judge enforces.
	Style StyleProfile `json:"style" validate:"required"`

	// Draft is the article under judgment.
	Draft Draft `json:"draft" validate:"required"`

	// Config selects the judgment engine.
	Config EngineConfig `json:"config" validate:"required"`
}

// Validate checks if the judgment input meets all requirements.
func (in *JudgeDraftInput) Validate() error { return validate.Struct(in) }

// JudgeDraftOutput is the result of a judgment operation,
// including resource usage for observability.
type JudgeDraftOutput struct {
	// Report is the structured quality report for the judged draft.
	Report QualityReport `json:"report" validate:"required"`

	// TokensUsed and CallsMade track engine resource consumption.
	TokensUsed int64 `json:"tokens_used"`
	CallsMade  int64 `json:"calls_made"`

	// ClientIdemKey is the idempotency key the LLM client derived for this call.
	ClientIdemKey string `json:"client_idem_key,omitempty"`
}
