package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/csams/report-tui/internal/markdown"
)

// GetTcellStyle layers a markdown StyleSpec on top of base. Size has no
// cell equivalent; large headings are only bold and colored.
func GetTcellStyle(spec markdown.StyleSpec, base tcell.Style) tcell.Style {
	style := base
	if spec.Bold {
		style = style.Bold(true)
	}
	if spec.Italic {
		style = style.Italic(true)
	}
	if spec.Underline {
		style = style.Underline(true)
	}
	if spec.Color != tcell.ColorDefault {
		style = style.Foreground(spec.Color)
	}
	return style
}
