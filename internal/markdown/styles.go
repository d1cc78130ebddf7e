package markdown

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// StyleSpec is a declarative text style.
// Bold is the weight, Italic the slant and Underline the decoration.
// A zero Size or tcell.ColorDefault means "inherit from the surrounding text".
type StyleSpec struct {
	Bold      bool
	Italic    bool
	Underline bool
	Size      float64
	Color     tcell.Color
}

var (
	colorPrimary = tcell.NewRGBColor(0xff, 0xff, 0xff) // #ffffff - Primary foreground
	colorAccentA = tcell.NewRGBColor(0x8b, 0xb8, 0xff) // #8bb8ff - Second level headings
	colorAccentB = tcell.NewRGBColor(0x9f, 0xcf, 0xff) // #9fcfff - Third level headings
	colorMuted   = tcell.NewRGBColor(0xcc, 0xcc, 0xcc) // #cccccc - Emphasis
)

var styleTable = map[StyleName]StyleSpec{
	StyleH1:     {Bold: true, Size: 24, Color: colorPrimary},
	StyleH2:     {Bold: true, Size: 20, Color: colorAccentA},
	StyleH3:     {Bold: true, Size: 17, Color: colorAccentB},
	StyleStrong: {Bold: true, Color: tcell.ColorDefault},
	StyleEm:     {Italic: true, Color: colorMuted},
}

// BaseSize is the font size of unstyled report text
const BaseSize = 15

// LookupStyle returns the style for a tag name. Unknown names get the zero
// style with an inherited color.
func LookupStyle(name StyleName) StyleSpec {
	if spec, ok := styleTable[name]; ok {
		return spec
	}
	return StyleSpec{Color: tcell.ColorDefault}
}

// StyleNames returns the tag names of the style table in a stable order
func StyleNames() []StyleName {
	return []StyleName{StyleH1, StyleH2, StyleH3, StyleStrong, StyleEm}
}

// IsStyleTag reports whether name is part of the inline style vocabulary
func IsStyleTag(name string) bool {
	_, ok := styleTable[StyleName(name)]
	return ok
}

// Merge layers other on top of s. Flags accumulate; size and color from
// other replace those of s only when other sets them.
func (s StyleSpec) Merge(other StyleSpec) StyleSpec {
	merged := StyleSpec{
		Bold:      s.Bold || other.Bold,
		Italic:    s.Italic || other.Italic,
		Underline: s.Underline || other.Underline,
		Size:      s.Size,
		Color:     s.Color,
	}
	if other.Size > 0 {
		merged.Size = other.Size
	}
	if other.Color != tcell.ColorDefault {
		merged.Color = other.Color
	}
	return merged
}

// IsPlain reports whether the style changes nothing about the surrounding text
func (s StyleSpec) IsPlain() bool {
	return !s.Bold && !s.Italic && !s.Underline && s.Size == 0 && s.Color == tcell.ColorDefault
}

// HexColor returns the color as "#rrggbb", or "" when the color is inherited
func (s StyleSpec) HexColor() string {
	if s.Color == tcell.ColorDefault {
		return ""
	}
	hex := s.Color.Hex()
	if hex < 0 {
		return ""
	}
	return fmt.Sprintf("#%06x", hex)
}
