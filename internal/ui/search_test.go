package ui

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchStateEditing(t *testing.T) {
	s := NewSearchState()
	for _, r := range "caro kann" {
		s.InsertChar(r)
	}
	assert.Equal(t, "caro kann", s.Query())

	s.DeleteWord()
	assert.Equal(t, "caro ", s.Query())

	s.MoveCursorStart()
	s.InsertChar('x')
	assert.Equal(t, "xcaro ", s.Query())

	s.DeleteChar()
	s.DeleteCharForward()
	assert.Equal(t, "aro ", s.Query())

	s.MoveCursorRight()
	s.DeleteToEnd()
	assert.Equal(t, "a", s.Query())

	s.MoveCursorEnd()
	s.InsertChar('é')
	s.InsertChar('!')
	s.MoveCursorLeft()
	s.DeleteChar()
	assert.Equal(t, "a!", s.Query(), "editing works on runes")

	s.Clear()
	assert.Equal(t, "", s.Query())
	assert.Equal(t, 0, s.cursorPos)
}

func TestSearchStateMatch(t *testing.T) {
	s := NewSearchState()
	assert.Equal(t, MatchResult{Score: 0}, s.Match("anything"))

	s.SetQuery("sicilian")
	result := s.Match("The Sicilian Defense")
	assert.True(t, s.Matches(result))
	positions := slices.Clone(result.Positions)
	slices.Sort(positions)
	assert.Equal(t, []int{4, 5, 6, 7, 8, 9, 10, 11}, positions)

	miss := s.Match("French Defense")
	assert.Equal(t, -1, miss.Score)
	assert.False(t, s.Matches(miss))
}

func TestSearchStateMinScore(t *testing.T) {
	s := NewSearchState()
	s.SetQuery("ng")

	weak := s.Match("opening")
	s.SetMinScore(1000)
	assert.False(t, s.Matches(weak))

	s.SetMinScore(ScoreThresholdNone)
	assert.Equal(t, ScoreThresholdNone, s.GetMinScore())
	assert.True(t, s.Matches(weak))
}
