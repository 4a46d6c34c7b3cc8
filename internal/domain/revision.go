package domain

// RevisionDecision is the ephemeral output of the revision decision policy.
// It is derived purely from a QualityReport, consumed immediately by the
// variant pipeline, and never persisted.
type RevisionDecision struct {
	// NeedsRevision is true when the variant must run its single revision pass.
	NeedsRevision bool `json:"needs_revision"`

	// Instructions is the structured payload handed back to generation on
	// revise: threshold misses, violations, and suggested fixes, in that order.
	// Empty when NeedsRevision is false.
	Instructions []string `json:"instructions,omitempty"`
}
