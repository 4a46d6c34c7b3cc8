package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ahrav/go-newsdesk/internal/domain"
)

// Parse errors surfaced to activities. All are validation failures and never
// retried at the transport level; the activity layer decides whether a fresh
// completion is worth attempting.
var (
	ErrWriterInvalidJSON = errors.New("writer returned invalid JSON")
	ErrJudgeInvalidJSON  = errors.New("judge returned invalid JSON")
)

// stripCodeFences removes a Markdown code fence wrapper when the model
// ignores the JSON-only instruction.
func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// writerPayload is the JSON shape returned by the writer model.
type writerPayload struct {
	Site            string             `json:"site"`
	Headline        string             `json:"headline"`
	TeaserOrLead    string             `json:"teaser_or_lead"`
	BodyParagraphs  []string           `json:"body_paragraphs"`
	CalloutOptional *string            `json:"callout_optional"`
	SEOTitle        string             `json:"seo_title"`
	MetaDescription string             `json:"meta_description"`
	Tags            []string           `json:"tags"`
	Attribution     domain.Attribution `json:"attribution"`
}

// ParseWriterResponse decodes writer model output into draft content fields.
// Pipeline metadata (ID, style, round, provenance) is filled in by the caller.
// Malformed output yields a validation-classified error.
func ParseWriterResponse(content string) (domain.Draft, error) {
	cleaned := stripCodeFences(content)

	var payload writerPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return domain.Draft{}, invalidOutput(ErrWriterInvalidJSON, err.Error())
	}

	// Required schema fields, mirroring the prompt contract.
	switch {
	case strings.TrimSpace(payload.Headline) == "":
		return domain.Draft{}, invalidOutput(ErrWriterInvalidJSON, "field 'headline' missing")
	case strings.TrimSpace(payload.TeaserOrLead) == "":
		return domain.Draft{}, invalidOutput(ErrWriterInvalidJSON, "field 'teaser_or_lead' missing")
	case len(payload.BodyParagraphs) == 0:
		return domain.Draft{}, invalidOutput(ErrWriterInvalidJSON, "field 'body_paragraphs' missing")
	}

	paragraphs := make([]string, 0, len(payload.BodyParagraphs))
	for _, p := range payload.BodyParagraphs {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	if len(paragraphs) == 0 {
		return domain.Draft{}, invalidOutput(ErrWriterInvalidJSON, "body_paragraphs contained no content")
	}

	var callout string
	if payload.CalloutOptional != nil {
		callout = strings.TrimSpace(*payload.CalloutOptional)
	}

	return domain.Draft{
		Headline:        strings.TrimSpace(payload.Headline),
		TeaserOrLead:    strings.TrimSpace(payload.TeaserOrLead),
		BodyParagraphs:  paragraphs,
		CalloutOptional: callout,
		SEOTitle:        strings.TrimSpace(payload.SEOTitle),
		MetaDescription: strings.TrimSpace(payload.MetaDescription),
		Tags:            payload.Tags,
		Attribution:     payload.Attribution,
	}, nil
}

// judgePayload is the JSON shape returned by the judge model.
type judgePayload struct {
	Metrics struct {
		HeadlineLengthChars int `json:"headline_length_chars"`
		BodyWordCount       int `json:"body_word_count"`
	} `json:"metrics"`
	Scores struct {
		FactualConsistency float64 `json:"factual_consistency"`
		StyleMatch         float64 `json:"style_match"`
		LengthOK           bool    `json:"length_ok"`
		StructureOK        bool    `json:"structure_ok"`
		SafetyOK           bool    `json:"safety_ok"`
	} `json:"scores"`
	Violations     []string `json:"violations"`
	SuggestedFixes []string `json:"suggested_fixes"`
	Decision       string   `json:"decision"`
}

// ParseJudgeResponse decodes judge model output into report content fields.
// Pipeline metadata (ID, style, round, draft reference, provenance) is filled
// in by the caller. The judge's decision vocabulary maps auto_ok onto the
// pass verdict.
func ParseJudgeResponse(content string) (domain.QualityReport, error) {
	cleaned := stripCodeFences(content)

	var payload judgePayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return domain.QualityReport{}, invalidOutput(ErrJudgeInvalidJSON, err.Error())
	}

	verdict, err := mapDecision(payload.Decision)
	if err != nil {
		return domain.QualityReport{}, invalidOutput(ErrJudgeInvalidJSON, err.Error())
	}

	report := domain.QualityReport{
		Metrics: domain.ReportMetrics{
			HeadlineLengthChars: payload.Metrics.HeadlineLengthChars,
			BodyWordCount:       payload.Metrics.BodyWordCount,
		},
		Scores: domain.ReportScores{
			FactualConsistency: payload.Scores.FactualConsistency,
			StyleMatch:         payload.Scores.StyleMatch,
			LengthOK:           payload.Scores.LengthOK,
			StructureOK:        payload.Scores.StructureOK,
			SafetyOK:           payload.Scores.SafetyOK,
		},
		Violations:     payload.Violations,
		SuggestedFixes: payload.SuggestedFixes,
		Verdict:        verdict,
	}
	report.Normalize()
	return report, nil
}

// mapDecision translates the judge's decision field to a Verdict.
func mapDecision(decision string) (domain.Verdict, error) {
	switch strings.ToLower(strings.TrimSpace(decision)) {
	case "auto_ok", string(domain.VerdictPass):
		return domain.VerdictPass, nil
	case string(domain.VerdictRevise):
		return domain.VerdictRevise, nil
	case string(domain.VerdictHumanReview):
		return domain.VerdictHumanReview, nil
	default:
		return "", fmt.Errorf("unknown decision %q", decision)
	}
}

// invalidOutput wraps a parse sentinel with failure detail.
func invalidOutput(sentinel error, detail string) error {
	return fmt.Errorf("%w: %s", sentinel, detail)
}
