package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/csams/report-tui/internal/models"
)

var exportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { background: #1a1a1a; color: #ffffff; font-family: sans-serif; font-size: 15px; line-height: 22px; max-width: 48em; margin: 2em auto; }
h1 { font-size: 24px; } h2 { font-size: 20px; color: #8bb8ff; } h3 { font-size: 17px; color: #9fcfff; }
em { color: #cccccc; }
section { background: #252525; border-radius: 8px; padding: 16px; margin-top: 16px; }
a { color: #64b5f6; }
.sources h2 { color: #8b5cf6; font-size: 16px; } .search h2 { color: #ff9800; font-size: 16px; }
.url { color: #888888; font-size: 12px; } .snippet { color: #bbbbbb; font-size: 13px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<article>
{{.Body}}
</article>
{{- if .Citations}}
<section class="sources">
<h2>Sources</h2>
<ol>
{{- range .Citations}}
<li><a href="{{.}}">{{.}}</a></li>
{{- end}}
</ol>
</section>
{{- end}}
{{- if .SearchResults}}
<section class="search">
<h2>Search Results</h2>
<ol>
{{- range .SearchResults}}
<li value="{{.Index}}"><a href="{{.URL}}">{{.Label}}</a>
{{- if .ShowsURL}}<div class="url">{{.URL}}</div>{{end}}
{{- if .HasSnippet}}<div class="snippet">{{.Snippet}}</div>{{end}}</li>
{{- end}}
</ol>
</section>
{{- end}}
</body>
</html>
`))

type exportResult struct {
	models.SearchResult
	Index int
}

type exportPage struct {
	Title         string
	Body          template.HTML
	Citations     []string
	SearchResults []exportResult
}

var exportMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.Linkify),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

// ExportHTML writes a standalone HTML page for a report. The body goes
// through goldmark, which escapes raw HTML from the agent.
func ExportHTML(w io.Writer, report *models.Report) error {
	var body bytes.Buffer
	if err := exportMarkdown.Convert([]byte(report.Analysis), &body); err != nil {
		return fmt.Errorf("failed to convert markdown: %w", err)
	}

	page := exportPage{
		Title:     report.Title(),
		Body:      template.HTML(body.String()),
		Citations: report.Citations,
	}
	for i, result := range report.SearchResults {
		if result.IsLinkable() {
			page.SearchResults = append(page.SearchResults, exportResult{SearchResult: result, Index: i + 1})
		}
	}

	if err := exportTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to write html: %w", err)
	}
	return nil
}
