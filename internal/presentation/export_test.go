package presentation //nolint:testpackage // Consistent with the other package tests

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-newsdesk/internal/domain"
	"github.com/ahrav/go-newsdesk/internal/styles"
)

func TestArticleFileName(t *testing.T) {
	assert.Equal(t, "article_express_de.json", ArticleFileName("express.de", "json"))
	assert.Equal(t, "article_ksta_de.html", ArticleFileName("ksta.de", "html"))
}

func TestExportArticleJSON(t *testing.T) {
	dir := t.TempDir()
	v := passedVariant(styles.Express())

	path, err := ExportArticleJSON(dir, &v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "article_express_de.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var exported exportedArticle
	require.NoError(t, json.Unmarshal(data, &exported))
	assert.Equal(t, "express.de", exported.Site)
	assert.Equal(t, v.Draft1.Headline, exported.Draft.Headline)
	assert.Equal(t, v.Report1.ID, exported.Report.ID)
	assert.False(t, exported.Revised)
}

func TestExportArticleJSON_FailedVariantSkipped(t *testing.T) {
	dir := t.TempDir()
	v := brokenVariant(styles.Express())

	path, err := ExportArticleJSON(dir, &v)
	require.NoError(t, err)
	assert.Empty(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestArticleMarkdown(t *testing.T) {
	style := styles.Express()
	v := passedVariant(style)
	v.Draft1.CalloutOptional = "Zeugen werden gebeten, sich zu melden."
	v.Draft1.Attribution.SourceURL = "https://presseportal.de/blaulicht/12345"

	md := ArticleMarkdown(v.Draft1, style)
	assert.Contains(t, md, "# Lagerhalle in Ehrenfeld ausgebrannt")
	assert.Contains(t, md, "**Lead:** Die Feuerwehr war mehrere Stunden im Einsatz.")
	assert.Contains(t, md, "> Zeugen werden gebeten, sich zu melden.")
	assert.Contains(t, md, "*Quelle: Polizei Köln* (https://presseportal.de/blaulicht/12345)")
}

func TestExportArticleHTML(t *testing.T) {
	dir := t.TempDir()
	v := passedVariant(styles.KSTA())

	path, err := ExportArticleHTML(dir, &v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "article_ksta_de.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1>Lagerhalle in Ehrenfeld ausgebrannt</h1>")
	assert.Contains(t, string(data), "<strong>Teaser:</strong>")
}

func TestExportRunBundle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	started := time.Now().Add(-time.Minute)
	result := &domain.RunResult{
		RunID: uuid.New().String(),
		Variants: []domain.VariantResult{
			passedVariant(styles.Express()),
			brokenVariant(styles.KSTA()),
		},
		StartedAt:   started,
		CompletedAt: started.Add(40 * time.Second),
	}

	paths, err := ExportRunBundle(dir, result)
	require.NoError(t, err)

	// run.json plus JSON and HTML for the one exportable variant.
	require.Len(t, paths, 3)
	assert.Equal(t, filepath.Join(dir, "run.json"), paths[0])
	assert.FileExists(t, filepath.Join(dir, "article_express_de.json"))
	assert.FileExists(t, filepath.Join(dir, "article_express_de.html"))
	assert.NoFileExists(t, filepath.Join(dir, "article_ksta_de.json"))

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	var decoded domain.RunResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result.RunID, decoded.RunID)
	assert.Len(t, decoded.Variants, 2)
}
