package ui

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// SearchState holds the query being typed and the fuzzy matching settings
type SearchState struct {
	query         []rune
	cursorPos     int
	caseSensitive bool
	minScore      int // Minimum score threshold for matches
}

// Score threshold constants (based on raw fzf scores)
const (
	ScoreThresholdStrict     = 70 // Only high quality matches
	ScoreThresholdNormal     = 50 // Balanced (default)
	ScoreThresholdPermissive = 30 // Include marginal matches
	ScoreThresholdNone       = 0  // Accept all matches
)

func init() {
	algo.Init("default")
}

// NewSearchState creates a new search state
func NewSearchState() *SearchState {
	return &SearchState{minScore: ScoreThresholdNormal}
}

// Query returns the current query text
func (s *SearchState) Query() string {
	return string(s.query)
}

// SetQuery replaces the query and moves the cursor to its end
func (s *SearchState) SetQuery(query string) {
	s.query = []rune(query)
	s.cursorPos = len(s.query)
}

// Clear clears the search state
func (s *SearchState) Clear() {
	s.query = nil
	s.cursorPos = 0
}

// SetMinScore sets the minimum score threshold
func (s *SearchState) SetMinScore(score int) {
	s.minScore = score
}

// GetMinScore returns the current minimum score threshold
func (s *SearchState) GetMinScore() int {
	return s.minScore
}

// InsertChar inserts a character at the cursor position
func (s *SearchState) InsertChar(ch rune) {
	s.query = append(s.query[:s.cursorPos], append([]rune{ch}, s.query[s.cursorPos:]...)...)
	s.cursorPos++
}

// DeleteChar deletes the character before the cursor (backspace)
func (s *SearchState) DeleteChar() {
	if s.cursorPos > 0 {
		s.query = append(s.query[:s.cursorPos-1], s.query[s.cursorPos:]...)
		s.cursorPos--
	}
}

// DeleteCharForward deletes the character at the cursor (delete)
func (s *SearchState) DeleteCharForward() {
	if s.cursorPos < len(s.query) {
		s.query = append(s.query[:s.cursorPos], s.query[s.cursorPos+1:]...)
	}
}

// MoveCursorLeft moves cursor left
func (s *SearchState) MoveCursorLeft() {
	if s.cursorPos > 0 {
		s.cursorPos--
	}
}

// MoveCursorRight moves cursor right
func (s *SearchState) MoveCursorRight() {
	if s.cursorPos < len(s.query) {
		s.cursorPos++
	}
}

// MoveCursorStart moves cursor to start (Ctrl+A)
func (s *SearchState) MoveCursorStart() {
	s.cursorPos = 0
}

// MoveCursorEnd moves cursor to end (Ctrl+E)
func (s *SearchState) MoveCursorEnd() {
	s.cursorPos = len(s.query)
}

// DeleteToEnd deletes from cursor to end (Ctrl+K)
func (s *SearchState) DeleteToEnd() {
	s.query = s.query[:s.cursorPos]
}

// DeleteWord deletes the word before cursor (Ctrl+W)
func (s *SearchState) DeleteWord() {
	if s.cursorPos == 0 {
		return
	}

	start := s.cursorPos
	for start > 0 && s.query[start-1] == ' ' {
		start--
	}
	for start > 0 && s.query[start-1] != ' ' {
		start--
	}

	s.query = append(s.query[:start], s.query[s.cursorPos:]...)
	s.cursorPos = start
}

// MatchResult contains match score and rune positions
type MatchResult struct {
	Score     int
	Positions []int
}

// Matches reports whether the result clears the score threshold
func (s *SearchState) Matches(result MatchResult) bool {
	return result.Score >= 0 && (s.minScore == 0 || result.Score >= s.minScore)
}

// Match runs the fzf v2 algorithm against text. A score of -1 means no match.
func (s *SearchState) Match(text string) MatchResult {
	if len(s.query) == 0 {
		return MatchResult{Score: 0}
	}

	searchText := text
	pattern := string(s.query)
	if !s.caseSensitive {
		searchText = strings.ToLower(text)
		pattern = strings.ToLower(pattern)
	}

	chars := util.ToChars([]byte(searchText))
	slab := util.MakeSlab(16384, 1024)
	result, positions := algo.FuzzyMatchV2(s.caseSensitive, false, true, &chars, []rune(pattern), true, slab)
	if result.Start < 0 {
		return MatchResult{Score: -1}
	}

	var matchPositions []int
	if positions != nil {
		// Indices into Chars are rune positions
		matchPositions = make([]int, len(*positions))
		copy(matchPositions, *positions)
	}
	return MatchResult{Score: result.Score, Positions: matchPositions}
}
