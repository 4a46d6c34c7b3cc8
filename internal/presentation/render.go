// Package presentation renders run results for humans and exports article
// artifacts for downstream systems. The terminal renderer targets editors
// reviewing drafts from the CLI; the exporters produce per-article JSON and
// HTML files plus a run bundle.
package presentation

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ahrav/go-newsdesk/internal/domain"
)

var (
	siteStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4D96FF")).
			MarginTop(1)

	headlineStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6BCB77")).
			Bold(true)

	reviseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD93D")).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	calloutStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4D96FF")).
			Padding(0, 1)
)

// RenderRun renders a complete run result for terminal display: one block
// per variant in result order, each with its final draft and judge scores.
func RenderRun(result *domain.RunResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n",
		labelStyle.Render("Run"),
		result.RunID)
	fmt.Fprintf(&b, "%s  %s\n",
		labelStyle.Render("Duration"),
		result.CompletedAt.Sub(result.StartedAt).Round(1e6).String())

	for i := range result.Variants {
		b.WriteString(RenderVariant(&result.Variants[i]))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderVariant renders one variant block. Failed variants show the failing
// step and message instead of article content.
func RenderVariant(v *domain.VariantResult) string {
	var b strings.Builder
	b.WriteString(siteStyle.Render(v.Style.Site) + "\n")

	if v.State == domain.StateFailed {
		b.WriteString(failStyle.Render("FAILED") + " ")
		if v.Failure != nil {
			fmt.Fprintf(&b, "%s (round %d): %s\n",
				v.Failure.Step, v.Failure.Round, v.Failure.Message)
		}
		return b.String()
	}

	draft := v.FinalDraft()
	report := v.FinalReport()
	if draft == nil || report == nil {
		return b.String()
	}

	b.WriteString(renderVerdict(report.Verdict))
	if v.Revised() {
		b.WriteString(" " + labelStyle.Render("(revised)"))
	}
	b.WriteString("\n\n")

	b.WriteString(headlineStyle.Render(draft.Headline) + "\n")
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render(leadLabel(v.Style)+":"), draft.TeaserOrLead)

	for _, p := range draft.BodyParagraphs {
		b.WriteString(p + "\n\n")
	}
	if draft.CalloutOptional != "" {
		b.WriteString(calloutStyle.Render(draft.CalloutOptional) + "\n\n")
	}

	b.WriteString(renderScores(report))
	return b.String()
}

// leadLabel names the opener slot after the style's declared structure:
// tabloid profiles open with a lead, sober profiles with a teaser.
func leadLabel(style domain.StyleProfile) string {
	for _, slot := range style.Structure {
		if slot == "lead" {
			return "Lead"
		}
	}
	return "Teaser"
}

// renderVerdict maps a verdict onto its colored badge.
func renderVerdict(v domain.Verdict) string {
	switch v {
	case domain.VerdictPass:
		return passStyle.Render("PASS")
	case domain.VerdictRevise:
		return reviseStyle.Render("REVISE")
	case domain.VerdictHumanReview:
		return failStyle.Render("HUMAN REVIEW")
	default:
		return labelStyle.Render(string(v))
	}
}

// renderScores renders judge scores and any violations or suggested fixes.
func renderScores(r *domain.QualityReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s factual=%.2f style=%.2f length=%t structure=%t safety=%t\n",
		labelStyle.Render("Scores:"),
		r.Scores.FactualConsistency,
		r.Scores.StyleMatch,
		r.Scores.LengthOK,
		r.Scores.StructureOK,
		r.Scores.SafetyOK)

	if len(r.Violations) > 0 {
		fmt.Fprintf(&b, "%s %s\n",
			labelStyle.Render("Violations:"),
			strings.Join(r.Violations, "; "))
	}
	if len(r.SuggestedFixes) > 0 {
		fmt.Fprintf(&b, "%s %s\n",
			labelStyle.Render("Suggested fixes:"),
			strings.Join(r.SuggestedFixes, "; "))
	}
	return b.String()
}
