package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csams/report-tui/internal/config"
	"github.com/csams/report-tui/internal/markdown"
	"github.com/csams/report-tui/internal/models"
)

func plainRenderer(width int) *ANSIRenderer {
	return NewANSIRenderer(&bytes.Buffer{}, termenv.Ascii, width)
}

func sampleReport() *models.Report {
	return &models.Report{
		AgentID:   "a1",
		AgentName: "Alpha",
		Provider:  "openai",
		Model:     "gpt",
		Analysis:  "## Opening\nWhite plays **e4** and *hopes*.",
		Citations: []string{"https://example.com/a", "https://example.com/b"},
		SearchResults: []models.SearchResult{
			{URL: "https://lichess.org", Name: "Lichess", Snippet: "Free chess"},
			{Name: "no url"},
			{URL: "https://chess.com", Name: "https://chess.com"},
		},
	}
}

func TestRenderRunPlainProfile(t *testing.T) {
	r := plainRenderer(0)
	out := r.RenderRun(markdown.Render("# Title\nSome **bold** and *em*"))
	assert.Equal(t, "Title\nSome bold and em", out)
}

func TestRenderRunTrueColorEmitsEscapes(t *testing.T) {
	r := NewANSIRenderer(&bytes.Buffer{}, termenv.TrueColor, 0)
	out := r.RenderRun(markdown.Render("**bold** plain"))
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "bold")
	assert.True(t, strings.HasSuffix(out, " plain"))
}

func TestRenderRunWraps(t *testing.T) {
	r := plainRenderer(10)
	out := r.RenderRun(markdown.Render("one two three four"))
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), 10)
	}
	assert.Equal(t, "one two three four", strings.Join(strings.Fields(out), " "))
}

func TestRenderReportSections(t *testing.T) {
	r := plainRenderer(0)
	out := r.RenderReport(sampleReport(), markdown.NewCache())

	expected := strings.Join([]string{
		"Opening\nWhite plays e4 and hopes.",
		"Sources\n1. https://example.com/a\n2. https://example.com/b",
		"Search Results\n1. Lichess\n   https://lichess.org\n   Free chess\n3. https://chess.com",
	}, "\n\n")
	assert.Equal(t, expected, out)
}

func TestRenderReportWithoutAnalysis(t *testing.T) {
	r := plainRenderer(0)
	out := r.RenderReport(&models.Report{AgentID: "a1"}, markdown.NewCache())
	assert.Equal(t, "No analysis available", out)
}

func TestRenderReportUsesCache(t *testing.T) {
	r := plainRenderer(0)
	cache := markdown.NewCache()
	report := sampleReport()

	first := r.RenderReport(report, cache)
	second := r.RenderReport(report, cache)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Misses())
}

func TestProfileFor(t *testing.T) {
	assert.Equal(t, termenv.Ascii, ProfileFor(config.ColorNever, &bytes.Buffer{}))
	assert.Equal(t, termenv.TrueColor, ProfileFor(config.ColorAlways, &bytes.Buffer{}))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	doc := NewDocument(sampleReport(), markdown.NewCache())
	require.NoError(t, WriteJSON(&buf, doc))

	var decoded struct {
		AgentID     string                `json:"agent_id"`
		Title       string                `json:"title"`
		Text        string                `json:"text"`
		Annotations []markdown.Triple     `json:"annotations"`
		Styles      map[string]StyleInfo  `json:"styles"`
		Citations   []string              `json:"citations"`
		Results     []models.SearchResult `json:"search_results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "a1", decoded.AgentID)
	assert.Equal(t, "openai - gpt", decoded.Title)
	assert.Equal(t, "Opening\nWhite plays e4 and hopes.", decoded.Text)
	assert.Equal(t, []markdown.Triple{
		{Style: "h2", Start: 0, End: 7},
		{Style: "strong", Start: 20, End: 22},
		{Style: "em", Start: 27, End: 32},
	}, decoded.Annotations)
	assert.Equal(t, StyleInfo{Bold: true, Size: 20, Color: "#8bb8ff"}, decoded.Styles["h2"])
	assert.Equal(t, StyleInfo{Bold: true}, decoded.Styles["strong"])
	assert.Len(t, decoded.Citations, 2)
	assert.Len(t, decoded.Results, 3)
}

func TestExportHTML(t *testing.T) {
	var buf bytes.Buffer
	report := sampleReport()
	report.Analysis += "\n\n<script>alert(1)</script>"
	require.NoError(t, ExportHTML(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "<title>openai - gpt</title>")
	assert.Contains(t, out, "<h2>Opening</h2>")
	assert.Contains(t, out, "<strong>e4</strong>")
	assert.Contains(t, out, "<em>hopes</em>")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `<section class="sources">`)
	assert.Contains(t, out, `<a href="https://example.com/b">https://example.com/b</a>`)
	assert.Contains(t, out, `<div class="url">https://lichess.org</div>`)
	assert.NotContains(t, out, "no url")
}

func TestExportHTMLWithoutSideChannels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportHTML(&buf, &models.Report{AgentID: "a1", Analysis: "plain"}))
	assert.NotContains(t, buf.String(), "<section")
	assert.Contains(t, buf.String(), "<p>plain</p>")
}
