package models

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Report is one AI agent's written analysis together with the citation
// and search-result side channels its provider returned.
type Report struct {
	AgentID       string         `json:"agent_id"`
	AgentName     string         `json:"agent_name"`
	Provider      string         `json:"provider,omitempty"`
	Model         string         `json:"model,omitempty"`
	Analysis      string         `json:"analysis,omitempty"`
	Error         string         `json:"error,omitempty"`
	Citations     []string       `json:"citations,omitempty"`
	SearchResults []SearchResult `json:"search_results,omitempty"`
}

// SearchResult is a web search hit supplied alongside a report. Name and
// Snippet are optional; an empty string means absent.
type SearchResult struct {
	URL     string `json:"url,omitempty"`
	Name    string `json:"name,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// GenerateReportID creates a stable ID for a report that did not come with one
func GenerateReportID(source, analysis string) string {
	h := sha256.New()
	h.Write([]byte(source + "\x00" + analysis))
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// IsSuccess reports whether the agent finished without an error
func (r *Report) IsSuccess() bool {
	return r.Error == ""
}

// HasAnalysis reports whether there is report text to display
func (r *Report) HasAnalysis() bool {
	return r.Analysis != ""
}

// DisplayName is the label used for the agent's button
func (r *Report) DisplayName() string {
	if r.AgentName != "" {
		return r.AgentName
	}
	return r.AgentID
}

// Title is "<provider> - <model>", falling back to whichever part is known
func (r *Report) Title() string {
	switch {
	case r.Provider != "" && r.Model != "":
		return r.Provider + " - " + r.Model
	case r.Provider != "":
		return r.Provider
	case r.Model != "":
		return r.Model
	default:
		return r.DisplayName()
	}
}

// HasSources reports whether the Sources section should be shown
func (r *Report) HasSources() bool {
	return len(r.Citations) > 0
}

// HasSearchResults reports whether the Search Results section should be shown
func (r *Report) HasSearchResults() bool {
	return len(r.SearchResults) > 0
}

// Label is the name of the result, or its URL when it has no name
func (s SearchResult) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.URL
}

// ShowsURL reports whether the URL needs its own line under the label
func (s SearchResult) ShowsURL() bool {
	return s.Name != "" && s.Name != s.URL
}

// HasSnippet reports whether the snippet has any visible text
func (s SearchResult) HasSnippet() bool {
	return strings.TrimSpace(s.Snippet) != ""
}

// IsLinkable reports whether the result can be opened at all
func (s SearchResult) IsLinkable() bool {
	return s.URL != ""
}
