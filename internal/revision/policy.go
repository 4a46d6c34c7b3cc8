// Package revision implements the revision decision policy: the pure mapping
// from a quality report to a "needs revision" decision plus the instruction
// payload handed back to generation. The policy is deterministic and
// side-effect free so it is independently testable and safe to evaluate
// inside workflow code.
package revision

import (
	"fmt"

	"github.com/ahrav/go-newsdesk/internal/domain"
)

// Default score thresholds, matching the judge's calibration.
const (
	defaultFactualConsistencyThreshold = 0.98
	defaultStyleMatchThreshold         = 0.90
)

// Thresholds holds the minimum acceptable float scores. Reports scoring below
// a threshold contribute a corrective instruction to the revision payload.
type Thresholds struct {
	FactualConsistency float64 `json:"factual_consistency"`
	StyleMatch         float64 `json:"style_match"`
}

// DefaultThresholds returns the standard thresholds: near-perfect factual
// consistency and strong style match.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FactualConsistency: defaultFactualConsistencyThreshold,
		StyleMatch:         defaultStyleMatchThreshold,
	}
}

// Policy decides whether a judged draft needs its single revision pass.
// The decision itself depends only on the report's verdict; the thresholds
// shape the instruction payload, not the branch. Policy values are immutable
// and safe for concurrent use.
type Policy struct {
	thresholds Thresholds
}

// NewPolicy creates a policy with the given thresholds.
func NewPolicy(t Thresholds) Policy { return Policy{thresholds: t} }

// NewDefaultPolicy creates a policy with DefaultThresholds.
func NewDefaultPolicy() Policy { return NewPolicy(DefaultThresholds()) }

// Decide maps a quality report to a revision decision.
//
// The branch is style-agnostic and verdict-only: a pass verdict never revises,
// any other verdict revises exactly once. A human_review verdict still takes
// the revision pass; the review flag survives into presentation either way,
// and one corrected draft gives the reviewing editor a better starting point.
//
// Same report in, same decision out: Decide reads nothing but its argument
// and the policy's fixed thresholds.
func (p Policy) Decide(report domain.QualityReport) domain.RevisionDecision {
	if report.Verdict == domain.VerdictPass {
		return domain.RevisionDecision{NeedsRevision: false}
	}

	return domain.RevisionDecision{
		NeedsRevision: true,
		Instructions:  p.instructions(report),
	}
}

// instructions assembles the ordered correction payload: threshold misses
// first, then failed rule checks, then the judge's verbatim violations and
// suggested fixes.
func (p Policy) instructions(report domain.QualityReport) []string {
	var reasons []string

	s := report.Scores
	if s.FactualConsistency < p.thresholds.FactualConsistency {
		reasons = append(reasons, "Faktenkonsistenz erhöhen, ausschließlich bestätigte Inhalte nutzen.")
	}
	if s.StyleMatch < p.thresholds.StyleMatch {
		reasons = append(reasons, "Stil konsequent an das Style-Profile anpassen (Ton, Länge, Struktur, Headline-Vorgaben).")
	}
	if !s.LengthOK {
		reasons = append(reasons, fmt.Sprintf("%s == false korrigieren.", "length_ok"))
	}
	if !s.StructureOK {
		reasons = append(reasons, fmt.Sprintf("%s == false korrigieren.", "structure_ok"))
	}
	if !s.SafetyOK {
		reasons = append(reasons, fmt.Sprintf("%s == false korrigieren.", "safety_ok"))
	}

	reasons = append(reasons, report.Violations...)
	reasons = append(reasons, report.SuggestedFixes...)

	if len(reasons) == 0 {
		// Non-pass verdict with a clean report: fall back to a generic
		// instruction so the writer still gets an actionable payload.
		reasons = append(reasons, "Artikel gemäß Style-Profile und Quelle überarbeiten.")
	}
	return reasons
}
