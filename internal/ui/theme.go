package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/csams/report-tui/internal/render"
)

// Report viewer palette
var (
	// Background colors
	ColorBg          = tcell.NewRGBColor(0x1a, 0x1a, 0x1a) // #1a1a1a - Screen background
	ColorBgCard      = tcell.NewRGBColor(0x25, 0x25, 0x25) // #252525 - Section cards
	ColorBgHighlight = tcell.NewRGBColor(0x2d, 0x2d, 0x3a) // #2d2d3a - Status bar

	// Foreground colors
	ColorFg     = tcell.NewRGBColor(0xff, 0xff, 0xff) // #ffffff - Report text
	ColorFgDark = tcell.NewRGBColor(0x88, 0x88, 0x88) // #888888 - Dimmed text

	// Agent buttons
	ColorAgentSelected = tcell.NewRGBColor(0x8b, 0x5c, 0xf6) // #8b5cf6
	ColorAgentIdle     = tcell.NewRGBColor(0x3a, 0x3a, 0x4a) // #3a3a4a

	ColorYellow = tcell.NewRGBColor(0xe0, 0xaf, 0x68) // #e0af68 - Status messages
	ColorRed    = tcell.NewRGBColor(0xf7, 0x76, 0x8e) // #f7768e - Errors

	// Section colors, kept in step with the plain text renderer
	ColorSourcesTitle = tcell.GetColor(render.ColorSourcesTitle)
	ColorSearchTitle  = tcell.GetColor(render.ColorSearchTitle)
	ColorLink         = tcell.GetColor(render.ColorLink)
	ColorIndex        = tcell.GetColor(render.ColorIndex)
	ColorURL          = tcell.GetColor(render.ColorURL)
	ColorSnippet      = tcell.GetColor(render.ColorSnippet)

	// UI-specific color mappings
	ColorHighlight    = ColorYellow // Search highlights
	ColorLinkSelected = ColorBgCard // Background of the focused link
	ColorError        = ColorRed    // Error messages
	ColorDimmed       = ColorFgDark // Dimmed text
	ColorTitle        = ColorAgentSelected
)
