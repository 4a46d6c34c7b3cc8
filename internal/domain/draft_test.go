package domain //nolint:testpackage // Need access to unexported validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Draft)
		wantErr bool
	}{
		{"valid draft", func(_ *Draft) {}, false},
		{"missing id", func(d *Draft) { d.ID = "" }, true},
		{"non-uuid id", func(d *Draft) { d.ID = "draft-1" }, true},
		{"missing style id", func(d *Draft) { d.StyleID = "" }, true},
		{"round out of range", func(d *Draft) { d.Round = 3 }, true},
		{"empty headline", func(d *Draft) { d.Headline = "" }, true},
		{"empty body", func(d *Draft) { d.BodyParagraphs = nil }, true},
		{"empty paragraph", func(d *Draft) { d.BodyParagraphs = []string{"ok", ""} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testDraft("express", RoundOriginal)
			tt.modify(d)
			err := d.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDraft_WordCount(t *testing.T) {
	d := &Draft{
		Headline:       "Einbruch in Kiosk",
		TeaserOrLead:   "Täter weiter flüchtig",
		BodyParagraphs: []string{"Ein Satz mit fünf Wörtern hier.", "Zwei Wörter."},
		SEOTitle:       "diese Wörter zählen nicht mit",
	}
	assert.Equal(t, 3+3+6+2, d.WordCount())
}

func TestIsValidRound(t *testing.T) {
	assert.True(t, IsValidRound(RoundOriginal))
	assert.True(t, IsValidRound(RoundRevised))
	assert.False(t, IsValidRound(0))
	assert.False(t, IsValidRound(3))
}

// TestGenerateDraftInput_Validate verifies the round/payload pairing: the
// original round carries no revision data, the revision round requires
// instructions and the prior draft.
func TestGenerateDraftInput_Validate(t *testing.T) {
	prior := testDraft("express", RoundOriginal)
	base := GenerateDraftInput{
		SourceText: testSourceText,
		Style:      testStyle("express"),
		Round:      RoundOriginal,
		Config:     testEngineConfig(),
	}

	t.Run("round 1 clean", func(t *testing.T) {
		in := base
		require.NoError(t, in.Validate())
	})

	t.Run("round 1 with instructions", func(t *testing.T) {
		in := base
		in.Instructions = []string{"Fakten prüfen"}
		assert.ErrorIs(t, in.Validate(), ErrUnexpectedRevisionPayload)
	})

	t.Run("round 1 with prior draft", func(t *testing.T) {
		in := base
		in.PriorDraft = prior
		assert.ErrorIs(t, in.Validate(), ErrUnexpectedRevisionPayload)
	})

	t.Run("round 2 complete", func(t *testing.T) {
		in := base
		in.Round = RoundRevised
		in.Instructions = []string{"Headline kürzen"}
		in.PriorDraft = prior
		require.NoError(t, in.Validate())
	})

	t.Run("round 2 without instructions", func(t *testing.T) {
		in := base
		in.Round = RoundRevised
		in.PriorDraft = prior
		assert.ErrorIs(t, in.Validate(), ErrMissingRevisionPayload)
	})

	t.Run("round 2 without prior draft", func(t *testing.T) {
		in := base
		in.Round = RoundRevised
		in.Instructions = []string{"Headline kürzen"}
		assert.ErrorIs(t, in.Validate(), ErrMissingRevisionPayload)
	})

	t.Run("revising an already revised draft", func(t *testing.T) {
		in := base
		in.Round = RoundRevised
		in.Instructions = []string{"Headline kürzen"}
		in.PriorDraft = testDraft("express", RoundRevised)
		assert.ErrorIs(t, in.Validate(), ErrRevisionBoundExceeded)
	})
}

func TestDefaultEngineConfig(t *testing.T) {
	cfg := DefaultEngineConfig()
	require.NoError(t, cfg.Validate())

	cfg.MaxDraftTokens = 50
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
