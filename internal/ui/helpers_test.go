package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/csams/report-tui/internal/models"
)

func sampleSet() *models.ReportSet {
	return &models.ReportSet{Reports: []*models.Report{
		{
			AgentID:   "b",
			AgentName: "beta",
			Provider:  "openai",
			Model:     "gpt",
			Analysis:  "## Opening\nWhite plays **e4**.",
			Citations: []string{"https://a.example", "https://b.example"},
			SearchResults: []models.SearchResult{
				{URL: "https://lichess.org", Name: "Lichess", Snippet: "Free chess"},
				{Name: "missing url"},
			},
		},
		{AgentID: "x", AgentName: "broken", Error: "timeout"},
		{AgentID: "a", AgentName: "Alpha", Provider: "anthropic", Model: "claude", Analysis: "Short *note*"},
		{AgentID: "e", AgentName: "empty", Provider: "local"},
	}}
}

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

// screenLines shows the screen and returns its rows with trailing blanks trimmed
func screenLines(s tcell.SimulationScreen) []string {
	s.Show()
	cells, w, h := s.GetContents()
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			runes := cells[y*w+x].Runes
			if len(runes) == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(runes[0])
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

func screenText(s tcell.SimulationScreen) string {
	return strings.Join(screenLines(s), "\n")
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}
