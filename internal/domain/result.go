package domain

import "time"

// VariantFailure is the per-variant failure marker surfaced in a RunResult.
// It carries the originating step and error detail; no partial draft or
// report from the failed call is retained.
type VariantFailure struct {
	// Step names the external call that failed.
	Step Step `json:"step" validate:"required"`

	// Round is the generation sequence number at which the failure occurred.
	Round Round `json:"round" validate:"required,min=1,max=2"`

	// Message is the underlying error detail, suitable for display.
	Message string `json:"message" validate:"required,min=1"`
}

// VariantResult is the per-style bundle: the style profile, the original
// draft and its report, the optional revised pair, and the terminal state.
// The bundle is filled monotonically (draft1 -> report1 -> [draft2 -> report2])
// and becomes immutable once the variant pipeline terminates.
type VariantResult struct {
	// Style is the profile this variant was produced for.
	Style StyleProfile `json:"style" validate:"required"`

	// State is the terminal pipeline state: reviewed or failed.
	State PipelineState `json:"state" validate:"required"`

	// Draft1 and Report1 are the original pass artifacts.
	// Present whenever the variant progressed past generation/judgment.
	Draft1  *Draft         `json:"draft1,omitempty"`
	Report1 *QualityReport `json:"report1,omitempty"`

	// Draft2 and Report2 are the revision pass artifacts.
	// Both present or both absent: revision is atomic, never partially recorded.
	Draft2  *Draft         `json:"draft2,omitempty"`
	Report2 *QualityReport `json:"report2,omitempty"`

	// Failure is set exactly when State is failed.
	Failure *VariantFailure `json:"failure,omitempty"`
}

// Revised reports whether the variant took the revision branch.
func (v *VariantResult) Revised() bool { return v.Draft2 != nil && v.Report2 != nil }

// FinalDraft returns the draft human reviewers should look at first: the
// revised draft when present, otherwise the original. Nil for failed
// variants that never produced a draft.
func (v *VariantResult) FinalDraft() *Draft {
	if v.Draft2 != nil {
		return v.Draft2
	}
	return v.Draft1
}

// FinalReport returns the report matching FinalDraft.
func (v *VariantResult) FinalReport() *QualityReport {
	if v.Report2 != nil {
		return v.Report2
	}
	return v.Report1
}

// Validate enforces the bundle invariants:
//   - the state is terminal
//   - draft2/report2 are both present or both absent
//   - report1 exists before any revision artifacts
//   - round tags match the artifact slots
//   - failed variants carry a failure marker, reviewed variants do not
func (v *VariantResult) Validate() error {
	if err := validate.Struct(v); err != nil {
		return err
	}
	if !v.State.IsTerminal() {
		return ErrInvalidResult
	}
	if (v.Draft2 == nil) != (v.Report2 == nil) {
		return ErrPartialRevision
	}
	if v.Draft2 != nil && v.Report1 == nil {
		return ErrInvalidResult
	}
	if v.Draft1 != nil && v.Draft1.Round != RoundOriginal {
		return ErrInvalidResult
	}
	if v.Draft2 != nil && v.Draft2.Round != RoundRevised {
		return ErrInvalidResult
	}
	if v.Report2 != nil && v.Draft2 != nil && v.Report2.DraftID != v.Draft2.ID {
		return ErrInvalidResult
	}
	switch v.State {
	case StateReviewed:
		if v.Failure != nil || v.Draft1 == nil || v.Report1 == nil {
			return ErrInvalidResult
		}
	case StateFailed:
		if v.Failure == nil {
			return ErrInvalidResult
		}
	}
	return nil
}

// RunResult is the ordered collection of variant results for one run:
// exactly one VariantResult per configured style, in configuration order,
// even under partial failure. Immutable once assembled.
type RunResult struct {
	// RunID identifies the run this result belongs to.
	RunID string `json:"run_id" validate:"required,uuid"`

	// Variants holds one bundle per configured style, insertion order equal
	// to configuration order.
	Variants []VariantResult `json:"variants" validate:"required,min=1"`

	// StartedAt and CompletedAt bound the run's execution.
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// StyleIDs returns the style identifiers of the variants in result order.
func (r *RunResult) StyleIDs() []string {
	ids := make([]string, len(r.Variants))
	for i := range r.Variants {
		ids[i] = r.Variants[i].Style.ID
	}
	return ids
}

// Variant returns the bundle for the given style ID, or nil if absent.
func (r *RunResult) Variant(styleID string) *VariantResult {
	for i := range r.Variants {
		if r.Variants[i].Style.ID == styleID {
			return &r.Variants[i]
		}
	}
	return nil
}

// Validate checks the run-level completeness invariant against the configured
// style order: exactly one variant per configured style, no duplicates, no
// omissions, no reordering. Each variant is validated individually.
func (r *RunResult) Validate(configured []string) error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if len(r.Variants) != len(configured) {
		return ErrInvalidResult
	}
	for i := range r.Variants {
		if r.Variants[i].Style.ID != configured[i] {
			return ErrInvalidResult
		}
		if err := r.Variants[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
