package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/csams/report-tui/internal/markdown"
	"github.com/csams/report-tui/internal/models"
)

// StyleInfo describes one entry of the style table for JSON consumers
type StyleInfo struct {
	Bold      bool    `json:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty"`
	Underline bool    `json:"underline,omitempty"`
	Size      float64 `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// Document is the renderer-facing output of the pipeline: plain text,
// sorted (style, start, end) triples in rune offsets, and the side channels
// passed through unchanged.
type Document struct {
	AgentID       string                `json:"agent_id,omitempty"`
	Title         string                `json:"title,omitempty"`
	Text          string                `json:"text"`
	Annotations   []markdown.Triple     `json:"annotations"`
	Styles        map[string]StyleInfo  `json:"styles"`
	Citations     []string              `json:"citations,omitempty"`
	SearchResults []models.SearchResult `json:"search_results,omitempty"`
}

// NewDocument renders a report into its JSON form
func NewDocument(report *models.Report, cache *markdown.Cache) Document {
	run := cache.Render(report.Analysis)
	return Document{
		AgentID:       report.AgentID,
		Title:         report.Title(),
		Text:          run.Text,
		Annotations:   run.Triples(),
		Styles:        StyleTable(),
		Citations:     report.Citations,
		SearchResults: report.SearchResults,
	}
}

// StyleTable exports the fixed style table keyed by tag name
func StyleTable() map[string]StyleInfo {
	table := make(map[string]StyleInfo)
	for _, name := range markdown.StyleNames() {
		spec := markdown.LookupStyle(name)
		table[string(name)] = StyleInfo{
			Bold:      spec.Bold,
			Italic:    spec.Italic,
			Underline: spec.Underline,
			Size:      spec.Size,
			Color:     spec.HexColor(),
		}
	}
	return table
}

// WriteJSON writes the document as indented JSON
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return nil
}
