// Package domain provides core types and business logic for automated article
// production runs. It defines style profiles, drafts, quality reports, revision
// decisions, and per-run result bundles used throughout the system. The types are
// designed to support reproducible, auditable production runs where every variant's
// artifacts remain independently addressable.
package domain

// HeadlineRules constrains headline construction for a house style.
type HeadlineRules struct {
	// MaxChars is the maximum headline length in characters.
	MaxChars int `json:"max_chars" yaml:"max_chars" validate:"required,min=10"`

	// AllowExclamation indicates whether exclamation marks are permitted.
	// Tabloid-leaning styles allow them; sober styles do not.
	AllowExclamation bool `json:"allow_exclamation" yaml:"allow_exclamation"`
}

// LengthRules constrains total article body length in words.
type LengthRules struct {
	MinWords int `json:"min" yaml:"min" validate:"required,min=10"`
	MaxWords int `json:"max" yaml:"max" validate:"required,gtfield=MinWords"`
}

// ExampleArticle is a few-shot example supplied to the writer to anchor
// format and tone. Examples demonstrate structure, never content to copy.
type ExampleArticle struct {
	Headline       string   `json:"headline" yaml:"headline"`
	TeaserOrLead   string   `json:"teaser_or_lead" yaml:"teaser_or_lead"`
	BodyParagraphs []string `json:"body_paragraphs" yaml:"body_paragraphs"`
}

// StyleProfile describes one supported house style: the identifier used to
// address it plus the parameters that specialize generation and judgment for
// that style. Profiles are defined at process initialization, looked up by ID,
// and never mutated during a run.
type StyleProfile struct {
	// ID is the registry identifier, e.g. "express" or "ksta".
	ID string `json:"id" yaml:"id" validate:"required,min=1"`

	// Site is the target publication, e.g. "express.de".
	Site string `json:"site" yaml:"site" validate:"required,min=1"`

	// Tone describes the editorial voice the writer must adopt.
	Tone string `json:"tone" yaml:"tone" validate:"required"`

	// Headline holds style-specific headline constraints.
	Headline HeadlineRules `json:"headline" yaml:"headline" validate:"required"`

	// LengthWords bounds the total body word count.
	LengthWords LengthRules `json:"length_words" yaml:"length_words" validate:"required"`

	// Structure lists the required article sections in order.
	// Sections suffixed with "?" are optional, e.g. "callout_optional?".
	Structure []string `json:"structure" yaml:"structure" validate:"required,min=1"`

	// FactsPolicy states the sourcing rules the writer and judge enforce.
	FactsPolicy string `json:"facts_policy" yaml:"facts_policy" validate:"required"`

	// FewShots are example articles demonstrating the style (typically three).
	FewShots []ExampleArticle `json:"few_shots,omitempty" yaml:"few_shots,omitempty"`
}

// Validate checks if the style profile meets all requirements.
// Returns nil if valid, or a validation error describing the first constraint violation.
func (s *StyleProfile) Validate() error { return validate.Struct(s) }
