package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/csams/report-tui/internal/markdown"
	"github.com/csams/report-tui/internal/models"
)

const (
	headerRows   = 3 // Title, agent bar and a spacer
	contentLeft  = 1
	statusRows   = 1
	maxAgentKeys = 9
)

// lineMatch is a laid out row that matched the search query
type lineMatch struct {
	line      int
	positions map[int]bool
}

// ReportView shows one agent's report at a time with an agent bar on top
type ReportView struct {
	reports  []*models.Report
	selected int
	cache    *markdown.Cache

	layout      reportLayout
	layoutWidth int
	dirty       bool

	scrollOffset int
	height       int
	linkIndex    int

	search     *SearchState
	matches    []lineMatch
	matchIndex int
}

// NewReportView creates an empty report view
func NewReportView() *ReportView {
	return &ReportView{
		cache:     markdown.NewCache(),
		linkIndex: noLink,
		search:    NewSearchState(),
		dirty:     true,
	}
}

// SetReports replaces the displayed reports. Only successful reports are
// kept, ordered by agent name. The render cache is dropped with the old set.
func (v *ReportView) SetReports(set *models.ReportSet, initialAgent string) {
	v.reports = set.Successful()
	v.cache.Reset()
	v.selected = 0
	for i, r := range v.reports {
		if r.AgentID == initialAgent {
			v.selected = i
			break
		}
	}
	v.resetPosition()
}

// Current returns the displayed report, or nil when there is none
func (v *ReportView) Current() *models.Report {
	if v.selected < 0 || v.selected >= len(v.reports) {
		return nil
	}
	return v.reports[v.selected]
}

// Reports returns the reports shown in the agent bar
func (v *ReportView) Reports() []*models.Report {
	return v.reports
}

// Title is the header line of the view
func (v *ReportView) Title() string {
	if r := v.Current(); r != nil {
		return r.Title()
	}
	return "View Reports"
}

// SelectAgent switches to the report at index i
func (v *ReportView) SelectAgent(i int) bool {
	if i < 0 || i >= len(v.reports) || i == v.selected {
		return false
	}
	v.selected = i
	v.resetPosition()
	return true
}

// NextAgent moves to the next report, wrapping around
func (v *ReportView) NextAgent() bool {
	if len(v.reports) < 2 {
		return false
	}
	return v.SelectAgent((v.selected + 1) % len(v.reports))
}

// PrevAgent moves to the previous report, wrapping around
func (v *ReportView) PrevAgent() bool {
	if len(v.reports) < 2 {
		return false
	}
	return v.SelectAgent((v.selected - 1 + len(v.reports)) % len(v.reports))
}

func (v *ReportView) resetPosition() {
	v.scrollOffset = 0
	v.linkIndex = noLink
	v.matches = nil
	v.matchIndex = 0
	v.dirty = true
}

// ensureLayout rewraps the current report when the width or report changed
func (v *ReportView) ensureLayout(width int) {
	if !v.dirty && width == v.layoutWidth {
		return
	}
	v.layout = layoutReport(v.Current(), v.cache, width)
	v.layoutWidth = width
	v.dirty = false
	if v.search.Query() != "" {
		v.ApplySearch()
	}
	v.clampScroll()
}

func (v *ReportView) maxScroll() int {
	limit := len(v.layout.lines) - v.height
	if limit < 0 {
		return 0
	}
	return limit
}

func (v *ReportView) clampScroll() {
	if v.scrollOffset > v.maxScroll() {
		v.scrollOffset = v.maxScroll()
	}
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
}

// scrollTo brings line into view
func (v *ReportView) scrollTo(line int) {
	if line < v.scrollOffset {
		v.scrollOffset = line
	} else if v.height > 0 && line >= v.scrollOffset+v.height {
		v.scrollOffset = line - v.height + 1
	}
	v.clampScroll()
}

// Scroll moves the viewport by delta lines
func (v *ReportView) Scroll(delta int) {
	v.scrollOffset += delta
	v.clampScroll()
}

// PageDown scrolls one screen forward
func (v *ReportView) PageDown() {
	v.Scroll(v.pageSize())
}

// PageUp scrolls one screen back
func (v *ReportView) PageUp() {
	v.Scroll(-v.pageSize())
}

func (v *ReportView) pageSize() int {
	if v.height > 1 {
		return v.height - 1
	}
	return 1
}

// NextLink focuses the next link, wrapping around
func (v *ReportView) NextLink() bool {
	n := len(v.layout.links)
	if n == 0 {
		return false
	}
	v.linkIndex = (v.linkIndex + 1) % n
	v.scrollTo(v.layout.links[v.linkIndex].Line)
	return true
}

// PrevLink focuses the previous link, wrapping around
func (v *ReportView) PrevLink() bool {
	n := len(v.layout.links)
	if n == 0 {
		return false
	}
	if v.linkIndex <= 0 {
		v.linkIndex = n - 1
	} else {
		v.linkIndex--
	}
	v.scrollTo(v.layout.links[v.linkIndex].Line)
	return true
}

// SelectedLink returns the focused URL, or "" when no link is focused
func (v *ReportView) SelectedLink() string {
	if v.linkIndex < 0 || v.linkIndex >= len(v.layout.links) {
		return ""
	}
	return v.layout.links[v.linkIndex].URL
}

// ClearSelection drops link focus and search highlights
func (v *ReportView) ClearSelection() {
	v.linkIndex = noLink
	v.search.Clear()
	v.matches = nil
	v.matchIndex = 0
}

// PlainText returns the current report body without styling
func (v *ReportView) PlainText() string {
	r := v.Current()
	if r == nil || !r.HasAnalysis() {
		return ""
	}
	return v.cache.Render(r.Analysis).Text
}

// GetSearchState returns the search state for this view
func (v *ReportView) GetSearchState() *SearchState {
	return v.search
}

// ApplySearch matches every laid out row against the query and jumps to
// the first match.
func (v *ReportView) ApplySearch() int {
	v.matches = nil
	v.matchIndex = 0
	if v.search.Query() == "" {
		return 0
	}
	for i, line := range v.layout.lines {
		result := v.search.Match(line.Text())
		if !v.search.Matches(result) {
			continue
		}
		positions := make(map[int]bool, len(result.Positions))
		for _, p := range result.Positions {
			positions[p] = true
		}
		v.matches = append(v.matches, lineMatch{line: i, positions: positions})
	}
	if len(v.matches) > 0 {
		v.scrollTo(v.matches[0].line)
	}
	return len(v.matches)
}

// NextMatch jumps to the next matching row
func (v *ReportView) NextMatch() bool {
	if len(v.matches) == 0 {
		return false
	}
	v.matchIndex = (v.matchIndex + 1) % len(v.matches)
	v.scrollTo(v.matches[v.matchIndex].line)
	return true
}

// PrevMatch jumps to the previous matching row
func (v *ReportView) PrevMatch() bool {
	if len(v.matches) == 0 {
		return false
	}
	v.matchIndex = (v.matchIndex - 1 + len(v.matches)) % len(v.matches)
	v.scrollTo(v.matches[v.matchIndex].line)
	return true
}

// MatchCount returns the number of matching rows
func (v *ReportView) MatchCount() int {
	return len(v.matches)
}

func (v *ReportView) Draw(s tcell.Screen) {
	w, h := s.Size()
	v.height = h - headerRows - statusRows
	if v.height < 0 {
		v.height = 0
	}
	v.ensureLayout(w - 2*contentLeft)

	base := tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg)
	drawText(s, contentLeft, 0, base.Foreground(ColorTitle).Bold(true), v.Title())
	v.drawAgentBar(s, 1, w)

	highlights := make(map[int]map[int]bool, len(v.matches))
	for _, m := range v.matches {
		highlights[m.line] = m.positions
	}

	for row := 0; row < v.height; row++ {
		idx := v.scrollOffset + row
		if idx >= len(v.layout.lines) {
			break
		}
		x := contentLeft
		for ci, c := range v.layout.lines[idx] {
			style := c.style
			if c.link != noLink && c.link == v.linkIndex {
				style = style.Reverse(true)
			}
			if highlights[idx][ci] {
				style = style.Foreground(ColorHighlight).Bold(true)
			}
			s.SetContent(x, headerRows+row, c.r, nil, style)
			x += runewidth.RuneWidth(c.r)
		}
	}
}

func (v *ReportView) drawAgentBar(s tcell.Screen, y, width int) {
	x := contentLeft
	for i, r := range v.reports {
		bg := ColorAgentIdle
		if i == v.selected {
			bg = ColorAgentSelected
		}
		label := " " + r.DisplayName() + " "
		if x+runewidth.StringWidth(label) > width {
			break
		}
		drawText(s, x, y, tcell.StyleDefault.Background(bg).Foreground(ColorFg), label)
		x += runewidth.StringWidth(label) + 1
	}
}

func (v *ReportView) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyDown:
		v.Scroll(1)
		return true
	case tcell.KeyUp:
		v.Scroll(-1)
		return true
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		v.PageDown()
		return true
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		v.PageUp()
		return true
	case tcell.KeyHome:
		v.scrollOffset = 0
		return true
	case tcell.KeyEnd:
		v.scrollOffset = v.maxScroll()
		return true
	case tcell.KeyRight:
		return v.NextAgent()
	case tcell.KeyLeft:
		return v.PrevAgent()
	case tcell.KeyTab:
		return v.NextLink()
	case tcell.KeyBacktab:
		return v.PrevLink()
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'j':
			v.Scroll(1)
			return true
		case 'k':
			v.Scroll(-1)
			return true
		case 'g':
			v.scrollOffset = 0
			return true
		case 'G':
			v.scrollOffset = v.maxScroll()
			return true
		case 'l':
			return v.NextAgent()
		case 'h':
			return v.PrevAgent()
		case 'n':
			return v.NextMatch()
		case 'N':
			return v.PrevMatch()
		default:
			if r >= '1' && r <= '0'+maxAgentKeys {
				return v.SelectAgent(int(r - '1'))
			}
		}
	}
	return false
}

var _ View = (*ReportView)(nil)
