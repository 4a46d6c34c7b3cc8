package domain //nolint:testpackage // Shares fixtures with the other domain tests

// Shared fixtures for domain tests. Builders return fully valid values;
// individual tests mutate what they need to break.

func testStyle(id string) StyleProfile {
	return StyleProfile{
		ID:          id,
		Site:        id + ".example.de",
		Tone:        "nüchtern, präzise",
		Headline:    HeadlineRules{MaxChars: 80},
		LengthWords: LengthRules{MinWords: 120, MaxWords: 220},
		Structure:   []string{"headline", "teaser", "body", "callout_optional?"},
		FactsPolicy: "Nur Fakten aus dem Quelltext.",
	}
}

func testDraft(styleID string, round Round) *Draft {
	return &Draft{
		ID:           NewDraftID(),
		StyleID:      styleID,
		Round:        round,
		Headline:     "Einbruch in Kiosk: Täter flüchtig",
		TeaserOrLead: "Unbekannte brachen in der Nacht in einen Kiosk ein.",
		BodyParagraphs: []string{
			"In der Nacht zu Dienstag brachen Unbekannte in einen Kiosk ein.",
			"Die Polizei sucht Zeugen und bittet um Hinweise.",
		},
		Attribution: Attribution{Source: "Polizei"},
	}
}

func testReport(d *Draft, verdict Verdict) *QualityReport {
	return &QualityReport{
		ID:      NewReportID(),
		StyleID: d.StyleID,
		Round:   d.Round,
		DraftID: d.ID,
		Scores: ReportScores{
			FactualConsistency: 1.0,
			StyleMatch:         0.95,
			LengthOK:           true,
			StructureOK:        true,
			SafetyOK:           true,
		},
		Verdict: verdict,
	}
}

func testEngineConfig() EngineConfig { return DefaultEngineConfig() }
