package presentation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/ahrav/go-newsdesk/internal/domain"
)

const exportDirPerm = 0o755

// ArticleFileName builds the per-article export file name, mirroring the
// site label with dots replaced: "article_express_de.json".
func ArticleFileName(site, ext string) string {
	return fmt.Sprintf("article_%s.%s", strings.ReplaceAll(site, ".", "_"), ext)
}

// exportedArticle is the JSON shape written per article. It carries the final
// draft together with its report so downstream systems get the judgment
// context alongside the content.
type exportedArticle struct {
	Site    string                `json:"site"`
	Draft   *domain.Draft         `json:"draft"`
	Report  *domain.QualityReport `json:"report"`
	Revised bool                  `json:"revised"`
}

// ExportArticleJSON writes the variant's final draft and report as indented
// JSON into dir. Failed variants without a draft are skipped with a nil
// return since there is nothing to export.
func ExportArticleJSON(dir string, v *domain.VariantResult) (string, error) {
	draft := v.FinalDraft()
	if draft == nil {
		return "", nil
	}

	payload := exportedArticle{
		Site:    v.Style.Site,
		Draft:   draft,
		Report:  v.FinalReport(),
		Revised: v.Revised(),
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode article: %w", err)
	}

	path := filepath.Join(dir, ArticleFileName(v.Style.Site, "json"))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write article export: %w", err)
	}
	return path, nil
}

// ArticleMarkdown renders the draft as a Markdown document.
func ArticleMarkdown(draft *domain.Draft, style domain.StyleProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", draft.Headline)
	fmt.Fprintf(&b, "**%s:** %s\n\n", leadLabel(style), draft.TeaserOrLead)
	for _, p := range draft.BodyParagraphs {
		b.WriteString(p + "\n\n")
	}
	if draft.CalloutOptional != "" {
		fmt.Fprintf(&b, "> %s\n\n", draft.CalloutOptional)
	}
	if draft.Attribution.Source != "" {
		fmt.Fprintf(&b, "*Quelle: %s*", draft.Attribution.Source)
		if draft.Attribution.SourceURL != "" {
			fmt.Fprintf(&b, " (%s)", draft.Attribution.SourceURL)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ExportArticleHTML converts the draft's Markdown rendering to HTML and
// writes it into dir. Failed variants without a draft are skipped.
func ExportArticleHTML(dir string, v *domain.VariantResult) (string, error) {
	draft := v.FinalDraft()
	if draft == nil {
		return "", nil
	}

	md := ArticleMarkdown(draft, v.Style)
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("failed to convert article to HTML: %w", err)
	}

	path := filepath.Join(dir, ArticleFileName(v.Style.Site, "html"))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write HTML export: %w", err)
	}
	return path, nil
}

// ExportRunBundle writes the complete run result plus per-article JSON and
// HTML files into dir, creating it if needed. Returns the paths written.
func ExportRunBundle(dir string, result *domain.RunResult) ([]string, error) {
	if err := os.MkdirAll(dir, exportDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create export dir: %w", err)
	}

	var paths []string

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode run result: %w", err)
	}
	runPath := filepath.Join(dir, "run.json")
	if err := os.WriteFile(runPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write run export: %w", err)
	}
	paths = append(paths, runPath)

	for i := range result.Variants {
		v := &result.Variants[i]
		jsonPath, err := ExportArticleJSON(dir, v)
		if err != nil {
			return nil, err
		}
		if jsonPath != "" {
			paths = append(paths, jsonPath)
		}

		htmlPath, err := ExportArticleHTML(dir, v)
		if err != nil {
			return nil, err
		}
		if htmlPath != "" {
			paths = append(paths, htmlPath)
		}
	}

	return paths, nil
}
