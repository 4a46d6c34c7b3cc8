package llm //nolint:testpackage // Exercises unexported helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-newsdesk/internal/domain"
)

const validWriterJSON = `{
  "site": "express.de",
  "headline": "Einbruch in Kiosk: Täter flüchtig",
  "teaser_or_lead": "Unbekannte brachen nachts in einen Kiosk ein.",
  "body_paragraphs": [
    "In der Nacht zu Dienstag brachen Unbekannte in einen Kiosk ein.",
    "Die Polizei sucht Zeugen."
  ],
  "callout_optional": null,
  "seo_title": "Kiosk-Einbruch in Köln",
  "meta_description": "Polizei sucht Zeugen nach Kiosk-Einbruch.",
  "tags": ["Köln", "Polizei"],
  "attribution": {"source": "Polizei"}
}`

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json untouched", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.in))
		})
	}
}

func TestParseWriterResponse(t *testing.T) {
	draft, err := ParseWriterResponse(validWriterJSON)
	require.NoError(t, err)

	assert.Equal(t, "Einbruch in Kiosk: Täter flüchtig", draft.Headline)
	assert.Len(t, draft.BodyParagraphs, 2)
	assert.Empty(t, draft.CalloutOptional)
	assert.Equal(t, []string{"Köln", "Polizei"}, draft.Tags)
	assert.Equal(t, "Polizei", draft.Attribution.Source)
}

func TestParseWriterResponse_Fenced(t *testing.T) {
	draft, err := ParseWriterResponse("```json\n" + validWriterJSON + "\n```")
	require.NoError(t, err)
	assert.Equal(t, "Einbruch in Kiosk: Täter flüchtig", draft.Headline)
}

func TestParseWriterResponse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "Hier ist der Artikel: ..."},
		{"missing headline", `{"teaser_or_lead":"t","body_paragraphs":["p"]}`},
		{"missing teaser", `{"headline":"h","body_paragraphs":["p"]}`},
		{"missing body", `{"headline":"h","teaser_or_lead":"t"}`},
		{"whitespace-only body", `{"headline":"h","teaser_or_lead":"t","body_paragraphs":["  ", ""]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWriterResponse(tt.content)
			assert.ErrorIs(t, err, ErrWriterInvalidJSON)
		})
	}
}

func TestParseWriterResponse_TrimsParagraphs(t *testing.T) {
	draft, err := ParseWriterResponse(`{"headline":" h ","teaser_or_lead":"t","body_paragraphs":[" erster ","","zweiter"]}`)
	require.NoError(t, err)
	assert.Equal(t, "h", draft.Headline)
	assert.Equal(t, []string{"erster", "zweiter"}, draft.BodyParagraphs)
}

const validJudgeJSON = `{
  "metrics": {"headline_length_chars": 32, "body_word_count": 140},
  "scores": {
    "factual_consistency": 1.0,
    "style_match": 0.93,
    "length_ok": true,
    "structure_ok": true,
    "safety_ok": true
  },
  "violations": [],
  "suggested_fixes": [],
  "decision": "auto_ok"
}`

func TestParseJudgeResponse(t *testing.T) {
	report, err := ParseJudgeResponse(validJudgeJSON)
	require.NoError(t, err)

	assert.Equal(t, domain.VerdictPass, report.Verdict)
	assert.Equal(t, 32, report.Metrics.HeadlineLengthChars)
	assert.Equal(t, 0.93, report.Scores.StyleMatch)
	assert.True(t, report.Scores.SafetyOK)
}

// TestParseJudgeResponse_DecisionMapping verifies the judge decision
// vocabulary, notably auto_ok mapping onto the pass verdict.
func TestParseJudgeResponse_DecisionMapping(t *testing.T) {
	tests := []struct {
		decision string
		want     domain.Verdict
	}{
		{"auto_ok", domain.VerdictPass},
		{"AUTO_OK", domain.VerdictPass},
		{"pass", domain.VerdictPass},
		{"revise", domain.VerdictRevise},
		{" Revise ", domain.VerdictRevise},
		{"human_review", domain.VerdictHumanReview},
	}
	for _, tt := range tests {
		t.Run(tt.decision, func(t *testing.T) {
			verdict, err := mapDecision(tt.decision)
			require.NoError(t, err)
			assert.Equal(t, tt.want, verdict)
		})
	}

	_, err := mapDecision("approved")
	assert.Error(t, err)
}

func TestParseJudgeResponse_Invalid(t *testing.T) {
	_, err := ParseJudgeResponse("kein JSON")
	assert.ErrorIs(t, err, ErrJudgeInvalidJSON)

	_, err = ParseJudgeResponse(`{"scores":{},"decision":"vielleicht"}`)
	assert.ErrorIs(t, err, ErrJudgeInvalidJSON)
}

// TestParseJudgeResponse_NormalizesScores verifies out-of-range judge scores
// are clamped into [0, 1] during parsing.
func TestParseJudgeResponse_NormalizesScores(t *testing.T) {
	report, err := ParseJudgeResponse(`{
	  "scores": {"factual_consistency": 1.2, "style_match": -0.3},
	  "decision": "revise"
	}`)
	require.NoError(t, err)

	assert.Equal(t, 1.0, report.Scores.FactualConsistency)
	assert.Equal(t, 0.0, report.Scores.StyleMatch)
	assert.Equal(t, domain.VerdictRevise, report.Verdict)
}
