package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Round identifies the generation round a draft or report belongs to.
// Round 1 is the original pass; round 2 is the single permitted revision.
type Round int

const (
	// RoundOriginal is the first generation/judgment pass of a variant.
	RoundOriginal Round = 1

	// RoundRevised is the bounded revision pass. No round beyond this exists;
	// see ErrRevisionBoundExceeded for the defensive guard.
	RoundRevised Round = 2
)

// IsValidRound reports whether r is one of the two permitted rounds.
func IsValidRound(r Round) bool { return r == RoundOriginal || r == RoundRevised }

// Attribution records the sourcing of an article per the facts policy.
type Attribution struct {
	// Source names the originating authority, e.g. "Polizei".
	Source string `json:"source"`

	// SourceURL optionally links the original release.
	SourceURL string `json:"source_url,omitempty"`
}

// Draft is one generated candidate article for a given style and round.
// A draft is owned exclusively by the variant pipeline that created it until
// it is placed into the immutable result bundle.
type Draft struct {
	// ID uniquely identifies this draft using UUID format.
	ID string `json:"id" validate:"required,uuid"`

	// StyleID tags the draft with the style profile it was generated for.
	StyleID string `json:"style_id" validate:"required,min=1"`

	// Round is the generation sequence number (1 = original, 2 = revised).
	Round Round `json:"round" validate:"required,min=1,max=2"`

	// Headline is the article headline, constrained by the style's HeadlineRules.
	Headline string `json:"headline" validate:"required,min=1"`

	// TeaserOrLead is the teaser (sober styles) or lead (tabloid styles).
	TeaserOrLead string `json:"teaser_or_lead" validate:"required,min=1"`

	// BodyParagraphs holds the article body, at least two paragraphs.
	BodyParagraphs []string `json:"body_paragraphs" validate:"required,min=1,dive,min=1"`

	// CalloutOptional is an optional highlighted note, empty when absent.
	CalloutOptional string `json:"callout_optional,omitempty"`

	// SEOTitle is the search-optimized title variant.
	SEOTitle string `json:"seo_title"`

	// MetaDescription is the page meta description.
	MetaDescription string `json:"meta_description"`

	// Tags are optional topical tags.
	Tags []string `json:"tags,omitempty"`

	// Attribution records the sourcing of the article.
	Attribution Attribution `json:"attribution"`

	// Provider and Model attribute the generation engine for audit purposes.
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`

	// LatencyMillis measures the generation call latency.
	LatencyMillis int64 `json:"latency_millis,omitempty"`
}

// Validate checks if the draft meets all structural requirements.
// Returns nil if valid, or a validation error describing the first constraint violation.
func (d *Draft) Validate() error { return validate.Struct(d) }

// WordCount returns the total word count of headline, teaser/lead, and body.
// SEO title and meta description are excluded, matching how style length
// limits are judged.
func (d *Draft) WordCount() int {
	n := len(strings.Fields(d.Headline)) + len(strings.Fields(d.TeaserOrLead))
	for _, p := range d.BodyParagraphs {
		n += len(strings.Fields(p))
	}
	return n
}

// NewDraftID generates a UUID for a draft.
// Do not call inside workflow code; IDs are assigned by activities.
func NewDraftID() string { return uuid.New().String() }

// Default engine configuration values.
const (
	defaultWriterProvider    = "openai"
	defaultWriterModel       = "gpt-4o-mini"
	defaultWriterTemperature = 0.35
	defaultReviseTemperature = 0.2
	defaultJudgeProvider     = "openai"
	defaultJudgeModel        = "o3-mini"
	defaultMaxDraftTokens    = int64(1200)
	defaultCallTimeoutSecs   = int64(60)
)

// EngineConfig selects and parameterizes the external generation and judgment
// engines for a run. The configuration is vendor-agnostic; provider validation
// is performed at the LLM client layer.
type EngineConfig struct {
	// WriterProvider and WriterModel select the generation engine.
	WriterProvider string `json:"writer_provider" validate:"required,min=1"`
	WriterModel    string `json:"writer_model" validate:"required,min=1"`

	// WriterTemperature controls randomness for the original pass (0-2).
	WriterTemperature float64 `json:"writer_temperature" validate:"min=0,max=2"`

	// ReviseTemperature controls randomness for the revision pass (0-2).
	// Kept lower than the original pass so fixes stay minimal.
	ReviseTemperature float64 `json:"revise_temperature" validate:"min=0,max=2"`

	// JudgeProvider and JudgeModel select the judgment engine.
	JudgeProvider string `json:"judge_provider" validate:"required,min=1"`
	JudgeModel    string `json:"judge_model" validate:"required,min=1"`

	// MaxDraftTokens limits the token count per generated draft (100-4000).
	MaxDraftTokens int64 `json:"max_draft_tokens" validate:"required,min=100,max=4000"`

	// CallTimeoutSecs is the maximum time in seconds for each engine call (10-300).
	CallTimeoutSecs int64 `json:"call_timeout_secs" validate:"required,min=10,max=300"`
}

// DefaultEngineConfig returns the default engine configuration: a mid-tier
// writer model with moderate temperature and a reasoning judge model at
// deterministic settings.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		WriterProvider:    defaultWriterProvider,
		WriterModel:       defaultWriterModel,
		WriterTemperature: defaultWriterTemperature,
		ReviseTemperature: defaultReviseTemperature,
		JudgeProvider:     defaultJudgeProvider,
		JudgeModel:        defaultJudgeModel,
		MaxDraftTokens:    defaultMaxDraftTokens,
		CallTimeoutSecs:   defaultCallTimeoutSecs,
	}
}

// Validate checks if the engine configuration meets all requirements.
func (c *EngineConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// GenerateDraftInput is the operation contract for draft generation.
// Round 1 omits Instructions and PriorDraft; the revision round supplies both
// so the writer can minimally correct the existing article.
type GenerateDraftInput struct {
	// SourceText is the immutable source material shared by all variants.
	SourceText string `json:"source_text" validate:"required,min=1"`

	// SourceURL optionally identifies the original release for attribution.
	SourceURL string `json:"source_url,omitempty"`

	// Style is the profile the draft must conform to.
	Style StyleProfile `json:"style" validate:"required"`

	// Round is the generation sequence number being produced.
	Round Round `json:"round" validate:"required,min=1,max=2"`

	// Instructions carries the revision instruction payload for round 2.
	// Must be empty for round 1.
	Instructions []string `json:"instructions,omitempty"`

	// PriorDraft is the round-1 draft being revised. Nil for round 1.
	PriorDraft *Draft `json:"prior_draft,omitempty"`

	// Config selects the generation engine.
	Config EngineConfig `json:"config" validate:"required"`
}

// Validate checks structural constraints plus the round/instruction pairing:
// round 1 carries no revision payload, round 2 requires one.
func (in *GenerateDraftInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	switch in.Round {
	case RoundOriginal:
		if len(in.Instructions) > 0 || in.PriorDraft != nil {
			return ErrUnexpectedRevisionPayload
		}
	case RoundRevised:
		if len(in.Instructions) == 0 || in.PriorDraft == nil {
			return ErrMissingRevisionPayload
		}
		if in.PriorDraft.Round != RoundOriginal {
			return ErrRevisionBoundExceeded
		}
	}
	return nil
}

// GenerateDraftOutput is the result of a draft generation operation,
// including resource usage for observability.
type GenerateDraftOutput struct {
	// Draft is the generated article.
	Draft Draft `json:"draft" validate:"required"`

	// TokensUsed and CallsMade track engine resource consumption.
	TokensUsed int64 `json:"tokens_used"`
	CallsMade  int64 `json:"calls_made"`

	// ClientIdemKey is the idempotency key the LLM client derived for this call.
	ClientIdemKey string `json:"client_idem_key,omitempty"`
}
