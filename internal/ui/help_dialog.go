package ui

import (
	"github.com/gdamore/tcell/v2"
)

type HelpDialog struct {
	visible      bool
	scrollOffset int
	visibleLines int // Content rows shown by the last Draw
}

func NewHelpDialog() *HelpDialog {
	return &HelpDialog{visibleLines: 15}
}

func (h *HelpDialog) Show() {
	h.visible = true
	h.scrollOffset = 0
}

func (h *HelpDialog) Hide() {
	h.visible = false
}

func (h *HelpDialog) IsVisible() bool {
	return h.visible
}

func (h *HelpDialog) Draw(s tcell.Screen) {
	if !h.visible {
		return
	}

	w, screenHeight := s.Size()
	helpLines := helpContent()

	maxLineWidth := 0
	for _, line := range helpLines {
		if len(line) > maxLineWidth {
			maxLineWidth = len(line)
		}
	}

	// 2 for borders, 2 for margins
	dialogWidth := maxLineWidth + 4
	if dialogWidth > w-4 {
		dialogWidth = w - 4
	}
	if dialogWidth < 40 {
		dialogWidth = 40
	}

	dialogHeight := len(helpLines) + 6
	if dialogHeight > screenHeight-4 {
		dialogHeight = screenHeight - 4
	}
	if dialogHeight < 10 {
		dialogHeight = 10
	}

	startX := (w - dialogWidth) / 2
	startY := (screenHeight - dialogHeight) / 2
	if startX < 1 {
		startX = 1
	}
	if startY < 1 {
		startY = 1
	}

	dialogStyle := tcell.StyleDefault.Background(ColorBgCard).Foreground(ColorFg)
	drawBox(s, startX, startY, dialogWidth, dialogHeight, dialogStyle)

	title := "Help - Keybindings"
	titleStyle := dialogStyle.Foreground(ColorTitle).Bold(true)
	drawText(s, startX+(dialogWidth-len(title))/2, startY+1, titleStyle, title)

	contentStartY := startY + 3
	// Borders, title and the scroll indicator
	h.visibleLines = dialogHeight - 5
	if h.visibleLines < 1 {
		h.visibleLines = 1
	}
	h.clampScroll()

	maxContentWidth := dialogWidth - 4
	for i := 0; i < h.visibleLines && i+h.scrollOffset < len(helpLines); i++ {
		line := helpLines[i+h.scrollOffset]
		if len(line) > maxContentWidth {
			line = line[:maxContentWidth]
		}
		drawText(s, startX+2, contentStartY+i, dialogStyle, line)
	}

	footer := "Press Esc or ? to close this help dialog"
	if len(helpLines) > h.visibleLines {
		footer = "j/k to scroll, Esc to close"
	}
	footerX := startX + (dialogWidth-len(footer))/2
	if footerX < startX+2 {
		footerX = startX + 2
	}
	drawText(s, footerX, startY+dialogHeight-2, dialogStyle.Foreground(ColorDimmed), footer)
}

func (h *HelpDialog) HandleKey(ev *tcell.EventKey) bool {
	if !h.visible {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		h.Hide()
	case tcell.KeyUp:
		h.scrollOffset--
	case tcell.KeyDown:
		h.scrollOffset++
	case tcell.KeyRune:
		switch ev.Rune() {
		case '?', 'q':
			h.Hide()
		case 'j':
			h.scrollOffset++
		case 'k':
			h.scrollOffset--
		case 'g':
			h.scrollOffset = 0
		case 'G':
			h.scrollOffset = len(helpContent())
		}
	}
	h.clampScroll()

	return true // Consume all keys when visible
}

func (h *HelpDialog) clampScroll() {
	limit := len(helpContent()) - h.visibleLines
	if h.scrollOffset > limit {
		h.scrollOffset = limit
	}
	if h.scrollOffset < 0 {
		h.scrollOffset = 0
	}
}

func helpContent() []string {
	return []string{
		"",
		"Reading:",
		"  j / k         Scroll down/up",
		"  Ctrl+F / B    Page down/up",
		"  g / G         Go to top/bottom",
		"",
		"Agents:",
		"  h / l         Previous/next agent",
		"  1-9           Jump to agent by position",
		"",
		"Links:",
		"  Tab           Focus next source or search result",
		"  Shift+Tab     Focus previous link",
		"  Enter         Open focused link in the browser",
		"  y             Copy focused link, or the report text",
		"",
		"Search:",
		"  /             Fuzzy search the report",
		"  n / N         Next/previous match",
		"  Esc           Clear search and link focus",
		"",
		"Other:",
		"  ?             Show this help dialog",
		"  q             Quit",
	}
}

// drawBox fills a rectangle and draws a single line border around it
func drawBox(s tcell.Screen, x0, y0, width, height int, style tcell.Style) {
	for y := y0; y < y0+height; y++ {
		for x := x0; x < x0+width; x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
	x1, y1 := x0+width-1, y0+height-1
	for x := x0 + 1; x < x1; x++ {
		s.SetContent(x, y0, '─', nil, style)
		s.SetContent(x, y1, '─', nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		s.SetContent(x0, y, '│', nil, style)
		s.SetContent(x1, y, '│', nil, style)
	}
	s.SetContent(x0, y0, '┌', nil, style)
	s.SetContent(x1, y0, '┐', nil, style)
	s.SetContent(x0, y1, '└', nil, style)
	s.SetContent(x1, y1, '┘', nil, style)
}
