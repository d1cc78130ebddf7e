package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"github.com/csams/report-tui/internal/config"
	"github.com/csams/report-tui/internal/markdown"
	"github.com/csams/report-tui/internal/models"
)

// Section colors, shared with the interactive viewer
const (
	ColorSourcesTitle = "#8b5cf6"
	ColorSearchTitle  = "#ff9800"
	ColorLink         = "#64b5f6"
	ColorIndex        = "#aaaaaa"
	ColorURL          = "#888888"
	ColorSnippet      = "#bbbbbb"
)

// ProfileFor maps a config color mode to a termenv profile for w
func ProfileFor(mode string, w io.Writer) termenv.Profile {
	switch mode {
	case config.ColorNever:
		return termenv.Ascii
	case config.ColorAlways:
		return termenv.TrueColor
	default:
		return termenv.NewOutput(w).EnvColorProfile()
	}
}

// ANSIRenderer draws reports as styled terminal text
type ANSIRenderer struct {
	renderer *lipgloss.Renderer
	width    int
}

// NewANSIRenderer creates a renderer for w. A width of 0 disables wrapping.
func NewANSIRenderer(w io.Writer, profile termenv.Profile, width int) *ANSIRenderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return &ANSIRenderer{renderer: r, width: width}
}

// Style converts a merged StyleSpec to a lipgloss style. Size has no
// terminal equivalent and is ignored.
func (a *ANSIRenderer) Style(spec markdown.StyleSpec) lipgloss.Style {
	style := a.renderer.NewStyle().
		Bold(spec.Bold).
		Italic(spec.Italic).
		Underline(spec.Underline)
	if hex := spec.HexColor(); hex != "" {
		style = style.Foreground(lipgloss.Color(hex))
	}
	return style
}

// RenderRun draws a StyledRun, applying every overlapping annotation
func (a *ANSIRenderer) RenderRun(run markdown.StyledRun) string {
	var b strings.Builder
	for _, seg := range run.Segments() {
		if seg.Spec.IsPlain() {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(a.styleLines(a.Style(seg.Spec), seg.Text))
	}
	return a.wrap(b.String())
}

// RenderReport draws the report body followed by its Sources and Search
// Results sections.
func (a *ANSIRenderer) RenderReport(report *models.Report, cache *markdown.Cache) string {
	if !report.HasAnalysis() {
		return a.renderer.NewStyle().Foreground(lipgloss.Color(ColorIndex)).Render("No analysis available")
	}

	parts := []string{a.RenderRun(cache.Render(report.Analysis))}
	if report.HasSources() {
		parts = append(parts, a.renderSources(report.Citations))
	}
	if report.HasSearchResults() {
		parts = append(parts, a.renderSearchResults(report.SearchResults))
	}
	return strings.Join(parts, "\n\n")
}

func (a *ANSIRenderer) renderSources(citations []string) string {
	title := a.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorSourcesTitle))
	index := a.renderer.NewStyle().Foreground(lipgloss.Color(ColorIndex))
	link := a.renderer.NewStyle().Underline(true).Foreground(lipgloss.Color(ColorLink))

	lines := []string{title.Render("Sources")}
	for i, url := range citations {
		lines = append(lines, index.Render(fmt.Sprintf("%d. ", i+1))+link.Render(url))
	}
	return strings.Join(lines, "\n")
}

func (a *ANSIRenderer) renderSearchResults(results []models.SearchResult) string {
	title := a.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorSearchTitle))
	index := a.renderer.NewStyle().Foreground(lipgloss.Color(ColorIndex))
	link := a.renderer.NewStyle().Underline(true).Foreground(lipgloss.Color(ColorLink))
	url := a.renderer.NewStyle().Foreground(lipgloss.Color(ColorURL))
	snippet := a.renderer.NewStyle().Foreground(lipgloss.Color(ColorSnippet))

	lines := []string{title.Render("Search Results")}
	for i, result := range results {
		if !result.IsLinkable() {
			continue
		}
		lines = append(lines, index.Render(fmt.Sprintf("%d. ", i+1))+link.Render(result.Label()))
		if result.ShowsURL() {
			lines = append(lines, "   "+url.Render(result.URL))
		}
		if result.HasSnippet() {
			lines = append(lines, a.wrap("   "+snippet.Render(result.Snippet)))
		}
	}
	return strings.Join(lines, "\n")
}

// styleLines renders each line on its own so lipgloss does not pad
// multi-line segments to a common width.
func (a *ANSIRenderer) styleLines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (a *ANSIRenderer) wrap(text string) string {
	if a.width <= 0 {
		return text
	}
	return wordwrap.String(text, a.width)
}
