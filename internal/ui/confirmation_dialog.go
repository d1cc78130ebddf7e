package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

type ConfirmationDialog struct {
	visible bool
	title   string
	message string
	onYes   func()
	onNo    func()
}

func NewConfirmationDialog() *ConfirmationDialog {
	return &ConfirmationDialog{}
}

func (c *ConfirmationDialog) Show(title, message string, onYes, onNo func()) {
	c.visible = true
	c.title = title
	c.message = message
	c.onYes = onYes
	c.onNo = onNo
}

func (c *ConfirmationDialog) Hide() {
	c.visible = false
	c.title = ""
	c.message = ""
	c.onYes = nil
	c.onNo = nil
}

func (c *ConfirmationDialog) IsVisible() bool {
	return c.visible
}

func (c *ConfirmationDialog) Draw(s tcell.Screen) {
	if !c.visible {
		return
	}

	w, screenHeight := s.Size()

	dialogWidth := 60
	if dialogWidth > w {
		dialogWidth = w
	}
	messageLines := wrapText(c.message, dialogWidth-4)
	dialogHeight := len(messageLines) + 6
	if dialogHeight > screenHeight {
		dialogHeight = screenHeight
	}
	startX := (w - dialogWidth) / 2
	startY := (screenHeight - dialogHeight) / 2

	dialogStyle := tcell.StyleDefault.Background(ColorBgCard).Foreground(ColorFg)
	drawBox(s, startX, startY, dialogWidth, dialogHeight, dialogStyle)

	titleX := startX + (dialogWidth-len(c.title))/2
	if titleX < startX+2 {
		titleX = startX + 2
	}
	drawText(s, titleX, startY+1, dialogStyle.Foreground(ColorYellow).Bold(true), c.title)

	for i, line := range messageLines {
		if 3+i >= dialogHeight-2 {
			break
		}
		drawText(s, startX+2, startY+3+i, dialogStyle.Foreground(ColorLink), line)
	}

	buttonStyle := dialogStyle.Bold(true)
	buttonsY := startY + dialogHeight - 2
	drawText(s, startX+dialogWidth/2-6, buttonsY, buttonStyle, "[Y]es")
	drawText(s, startX+dialogWidth/2+2, buttonsY, buttonStyle, "[N]o")
}

func (c *ConfirmationDialog) HandleKey(ev *tcell.EventKey) bool {
	if !c.visible {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		c.answer(c.onNo)
	case tcell.KeyEnter:
		c.answer(c.onYes)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'y', 'Y':
			c.answer(c.onYes)
		case 'n', 'N':
			c.answer(c.onNo)
		}
	}

	return true // Consume all other keys when visible
}

func (c *ConfirmationDialog) answer(fn func()) {
	c.Hide()
	if fn != nil {
		fn()
	}
}

// wrapText word wraps text to width, breaking words that do not fit
func wrapText(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	return strings.Split(wrap.String(wordwrap.String(text, width), width), "\n")
}
