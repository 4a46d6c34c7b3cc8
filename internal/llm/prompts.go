// Package llm provides the unified client for article generation and
// judgment calls, assembling the transport middleware chain over provider
// adapters and translating between domain types and prompt payloads.
package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ahrav/go-newsdesk/internal/domain"
)

// articleSchema mirrors the JSON shape the writer model must return.
// It is rendered into the prompt so the model sees the exact contract.
type articleSchema struct {
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

// marshalIndent renders v as indented JSON for prompt embedding.
// Prompt construction is deterministic for identical inputs, which the
// idempotency hashing relies on.
func marshalIndent(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render prompt payload: %w", err)
	}
	return string(data), nil
}

// BuildWriterPrompt constructs the system and user prompts for an original
// draft. The style profile, output schema, and few-shot examples are embedded
// as JSON so the model works against an explicit contract.
func BuildWriterPrompt(style domain.StyleProfile, sourceText, sourceURL string) (system, user string, err error) {
	profileJSON, err := marshalIndent(style)
	if err != nil {
		return "", "", err
	}

	system = "Du bist Redakteur für die angegebene Website und hältst dich strikt an das Style-Profile. " +
		"Verfasse sachlich korrekte Kurzmeldungen und erfinde keine Fakten.\n\n" +
		"STYLE_PROFILE_JSON:\n" + profileJSON

	schema := articleSchema{
		Site:            style.Site,
		Headline:        "...",
		TeaserOrLead:    "...",
		BodyParagraphs:  []string{"...", "..."},
		SEOTitle:        "...",
		MetaDescription: "...",
		Tags:            []string{},
		Attribution:     domain.Attribution{Source: "Polizei", SourceURL: sourceURL},
	}
	schemaJSON, err := marshalIndent(schema)
	if err != nil {
		return "", "", err
	}

	fewshotsJSON, err := marshalIndent(style.FewShots)
	if err != nil {
		return "", "", err
	}

	var b strings.Builder
	b.WriteString("Erzeuge aus dem folgenden Polizeitext eine Kurzmeldung NUR als valides JSON im vorgegebenen Schema.\n")
	fmt.Fprintf(&b, "- Wortanzahl gesamt (ohne SEO/Meta): %d-%d Wörter.\n", style.LengthWords.MinWords, style.LengthWords.MaxWords)
	fmt.Fprintf(&b, "- Headline max. %d Zeichen; Ausrufezeichen erlaubt: %t.\n", style.Headline.MaxChars, style.Headline.AllowExclamation)
	b.WriteString("- Nutze ausschließlich bestätigte Inhalte aus der Quelle; keine neuen Fakten, keine Spekulation.\n")
	b.WriteString("- Verwende neutrale, klare Sprache gemäß Style-Profile.\n\n")
	b.WriteString("SCHEMA:\n" + schemaJSON + "\n\n")
	b.WriteString("BEISPIELE (Format & Ton, nicht den Inhalt kopieren):\n" + fewshotsJSON + "\n\n")
	b.WriteString("POLIZEITEXT:\n<<<\n" + sourceText + "\n>>>\n")
	b.WriteString("Antworte NUR mit JSON, keine Erklärungen.")

	return system, b.String(), nil
}

// BuildJudgePrompt constructs the system and user prompts for draft judgment.
// The judge works in two stages: hard knock-out criteria first, then scores.
func BuildJudgePrompt(style domain.StyleProfile, draft domain.Draft, sourceText string) (system, user string, err error) {
	profileJSON, err := marshalIndent(style)
	if err != nil {
		return "", "", err
	}

	articleJSON, err := marshalIndent(draftToArticle(draft, style.Site))
	if err != nil {
		return "", "", err
	}

	system = "Du bist QA-Redakteur:in. Prüfe streng, kurz und binär. " +
		"Gib ausschließlich valides JSON gemäß Vorgabe zurück."

	var b strings.Builder
	b.WriteString("Prüfe den Artikel gegen (1) das site-spezifische STYLE_PROFILE_JSON und (2) den QUELLE_TEXT.\n")
	b.WriteString("Arbeite in zwei Stufen: zuerst MUST-PASS (harte K.O.-Kriterien), dann Scores/Booleans.\n\n")
	b.WriteString("MUST-PASS (harte K.O.-Kriterien – bei Verstoß => decision='human_review'):\n")
	b.WriteString("1) Nur-Quelle-Fakten: Jeder inhaltliche Satz ist im QUELLE_TEXT belegbar (keine neuen Details, keine Spekulationen).\n")
	b.WriteString("2) Unschuldsvermutung: Formulierungen wie 'tatverdächtig', 'laut Polizei', 'nach Angaben der Polizei'.\n")
	b.WriteString("3) Opfer-/Minderjährigenschutz: Keine identifizierenden Details (Namen, exakte Adressen, Kennzeichen, Schulen).\n")
	b.WriteString("4) Attribution vorhanden: Quelle Polizei/Behörde klar benannt (inkl. source_url, falls übergeben).\n")
	b.WriteString("5) Safety: keine Beleidigung/Doxing/Aufruf zu Gewalt/sonstige Moderationsverstöße.\n")
	b.WriteString("6) Headline & Länge regelkonform: Headline ≤ max_chars; wenn im Style verboten, kein '!'; Wortanzahl im Range.\n")
	b.WriteString("7) Pflichtstruktur vollständig: headline, teaser_or_lead, ≥2 body_paragraphs.\n")
	b.WriteString("8) Zahlen/Ort/Zeit konsistent zur Quelle (keine Abweichungen).\n\n")
	b.WriteString("SCORES/Booleans (kompakt halten):\n")
	b.WriteString("- factual_consistency (0..1): 1.0 nur wenn keinerlei Abweichung zur Quelle.\n")
	b.WriteString("- style_match (0..1): Ton/Headline-Regeln/Längenvorgaben der Site erkennbar eingehalten?\n")
	b.WriteString("- length_ok (bool)\n")
	b.WriteString("- structure_ok (bool)\n")
	b.WriteString("- safety_ok (bool)\n\n")
	b.WriteString("STYLE_PROFILE_JSON:\n" + profileJSON + "\n\n")
	b.WriteString("ARTIKEL_JSON:\n" + articleJSON + "\n\n")
	b.WriteString("QUELLE_TEXT:\n<<<\n" + sourceText + "\n>>>\n\n")
	b.WriteString("Gib NUR dieses JSON zurück (ohne weitere Erklärungen):\n")
	b.WriteString(`{
  "metrics": {
    "headline_length_chars": 0,
    "body_word_count": 0
  },
  "scores": {
    "factual_consistency": 0.0,
    "style_match": 0.0,
    "length_ok": true,
    "structure_ok": true,
    "safety_ok": true
  },
  "violations": ["..."],
  "suggested_fixes": ["..."],
  "decision": "auto_ok" | "revise" | "human_review"
}`)

	return system, b.String(), nil
}

// BuildRevisionPrompt constructs the system and user prompts for the single
// bounded revision round. Instructions come from the revision policy and are
// rendered as a bullet list of concrete fixes.
func BuildRevisionPrompt(style domain.StyleProfile, prior domain.Draft, sourceText string, instructions []string) (system, user string, err error) {
	profileJSON, err := marshalIndent(style)
	if err != nil {
		return "", "", err
	}

	articleJSON, err := marshalIndent(draftToArticle(prior, style.Site))
	if err != nil {
		return "", "", err
	}

	system = "Du bist Redakteur. Korrigiere den vorhandenen Artikel minimal. " +
		"Erfinde KEINE neuen Fakten. Antworte NUR mit gültigem JSON gemäß Artikelschema.\n\n" +
		"STYLE_PROFILE_JSON:\n" + profileJSON

	var b strings.Builder
	b.WriteString("AKTUELLER ARTIKEL (JSON):\n" + articleJSON + "\n\n")
	b.WriteString("QUELLE:\n<<<\n" + sourceText + "\n>>>\n\n")
	b.WriteString("BEHEBE FOLGENDE PUNKTE (ohne neue Fakten):\n- " + strings.Join(instructions, "\n- ") + "\n\n")
	b.WriteString("Antworte NUR mit gültigem JSON (gleiches Schema).")

	return system, b.String(), nil
}

// draftToArticle projects a Draft into the wire-level article shape used in
// prompts, dropping pipeline metadata like round and provenance.
func draftToArticle(d domain.Draft, site string) articleSchema {
	var callout *string
	if d.CalloutOptional != "" {
		callout = &d.CalloutOptional
	}
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return articleSchema{
		Site:            site,
		Headline:        d.Headline,
		TeaserOrLead:    d.TeaserOrLead,
		BodyParagraphs:  d.BodyParagraphs,
		CalloutOptional: callout,
		SEOTitle:        d.SEOTitle,
		MetaDescription: d.MetaDescription,
		Tags:            tags,
		Attribution:     d.Attribution,
	}
}
