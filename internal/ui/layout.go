package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/csams/report-tui/internal/markdown"
	"github.com/csams/report-tui/internal/models"
)

// noLink marks a cell that is not part of a link
const noLink = -1

// styledCell is one rune of laid out report text
type styledCell struct {
	r     rune
	style tcell.Style
	link  int // Index into reportLayout.links, or noLink
}

// viewLine is one screen row of laid out report text
type viewLine []styledCell

// Text returns the runes of the line without styling
func (l viewLine) Text() string {
	var b strings.Builder
	for _, c := range l {
		b.WriteRune(c.r)
	}
	return b.String()
}

// linkTarget is a selectable URL and the first row it appears on
type linkTarget struct {
	URL  string
	Line int
}

// reportLayout is a report wrapped to a fixed width
type reportLayout struct {
	lines []viewLine
	links []linkTarget
}

// cellsFromRun converts a styled run into cells, merging every annotation
// that covers each rune.
func cellsFromRun(run markdown.StyledRun, base tcell.Style) []styledCell {
	var cells []styledCell
	for _, seg := range run.Segments() {
		style := GetTcellStyle(seg.Spec, base)
		for _, r := range seg.Text {
			cells = append(cells, styledCell{r: r, style: style, link: noLink})
		}
	}
	return cells
}

func cellsFromString(text string, style tcell.Style, link int) []styledCell {
	cells := make([]styledCell, 0, len(text))
	for _, r := range text {
		cells = append(cells, styledCell{r: r, style: style, link: link})
	}
	return cells
}

// wrapCells splits cells on newlines and word wraps each line to width
// display columns. Words longer than width are broken.
func wrapCells(cells []styledCell, width int) []viewLine {
	if width < 1 {
		width = 1
	}

	var lines []viewLine
	start := 0
	for i := 0; i <= len(cells); i++ {
		if i == len(cells) || cells[i].r == '\n' {
			lines = append(lines, wrapLine(cells[start:i], width)...)
			start = i + 1
		}
	}
	return lines
}

func wrapLine(cells []styledCell, width int) []viewLine {
	if len(cells) == 0 {
		return []viewLine{{}}
	}

	var lines []viewLine
	for len(cells) > 0 {
		cols, cut, lastSpace := 0, 0, -1
		for cut < len(cells) {
			w := runewidth.RuneWidth(cells[cut].r)
			if cols+w > width {
				break
			}
			if cells[cut].r == ' ' {
				lastSpace = cut
			}
			cols += w
			cut++
		}

		if cut == len(cells) {
			lines = append(lines, append(viewLine(nil), cells...))
			break
		}
		if cut == 0 {
			cut = 1
		}

		next := cut
		if cells[cut].r == ' ' {
			next = cut + 1
		} else if lastSpace > 0 {
			cut = lastSpace
			next = lastSpace + 1
		}
		lines = append(lines, append(viewLine(nil), cells[:cut]...))
		cells = cells[next:]
	}
	return lines
}

// layoutReport wraps a report body and its Sources and Search Results
// sections to width columns.
func layoutReport(report *models.Report, cache *markdown.Cache, width int) reportLayout {
	var layout reportLayout
	base := tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg)

	if report == nil {
		layout.lines = wrapCells(cellsFromString("No successful reports to display", base.Foreground(ColorDimmed), noLink), width)
		return layout
	}
	if !report.HasAnalysis() {
		layout.lines = wrapCells(cellsFromString("No analysis available", base.Foreground(ColorDimmed), noLink), width)
		return layout
	}

	layout.lines = wrapCells(cellsFromRun(cache.Render(report.Analysis), base), width)

	card := base.Background(ColorBgCard)
	index := card.Foreground(ColorIndex)
	link := card.Foreground(ColorLink).Underline(true)

	if report.HasSources() {
		layout.appendBlank()
		layout.appendCells(cellsFromString("Sources", card.Foreground(ColorSourcesTitle).Bold(true), noLink), width)
		for i, url := range report.Citations {
			id := layout.addLink(url)
			cells := cellsFromString(fmt.Sprintf("%d. ", i+1), index, noLink)
			cells = append(cells, cellsFromString(url, link, id)...)
			layout.appendCells(cells, width)
		}
	}

	if report.HasSearchResults() {
		layout.appendBlank()
		layout.appendCells(cellsFromString("Search Results", card.Foreground(ColorSearchTitle).Bold(true), noLink), width)
		for i, result := range report.SearchResults {
			if !result.IsLinkable() {
				continue
			}
			id := layout.addLink(result.URL)
			cells := cellsFromString(fmt.Sprintf("%d. ", i+1), index, noLink)
			cells = append(cells, cellsFromString(result.Label(), link, id)...)
			layout.appendCells(cells, width)
			if result.ShowsURL() {
				layout.appendCells(cellsFromString("   "+result.URL, card.Foreground(ColorURL), noLink), width)
			}
			if result.HasSnippet() {
				layout.appendCells(cellsFromString("   "+result.Snippet, card.Foreground(ColorSnippet), noLink), width)
			}
		}
	}

	return layout
}

// addLink registers a link starting on the next appended line
func (l *reportLayout) addLink(url string) int {
	l.links = append(l.links, linkTarget{URL: url, Line: len(l.lines)})
	return len(l.links) - 1
}

func (l *reportLayout) appendCells(cells []styledCell, width int) {
	l.lines = append(l.lines, wrapCells(cells, width)...)
}

func (l *reportLayout) appendBlank() {
	l.lines = append(l.lines, viewLine{})
}

// PlainText returns the laid out text, one row per line
func (l reportLayout) PlainText() string {
	rows := make([]string, len(l.lines))
	for i, line := range l.lines {
		rows[i] = line.Text()
	}
	return strings.Join(rows, "\n")
}
