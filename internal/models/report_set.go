package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrNoReports is returned when a report set has no successful report to show
	ErrNoReports = errors.New("no successful reports to display")
	// ErrAgentNotFound is returned when an agent ID is not part of the set
	ErrAgentNotFound = errors.New("agent not found")
)

// ReportSet is every agent's report for one reviewed game
type ReportSet struct {
	Reports []*Report `json:"reports"`
}

// LoadReportSet reads a report set from disk. JSON files hold a full set;
// any other file is read as the markdown body of a single report.
func LoadReportSet(path string) (*ReportSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reports: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var set ReportSet
		if err := json.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("failed to parse reports: %w", err)
		}
		set.fillIDs(path)
		return &set, nil
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	report := &Report{
		AgentID:   GenerateReportID(path, string(data)),
		AgentName: name,
		Analysis:  string(data),
	}
	return &ReportSet{Reports: []*Report{report}}, nil
}

// Save writes the set as indented JSON, creating the parent directory
func (s *ReportSet) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal reports: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write reports: %w", err)
	}
	return nil
}

func (s *ReportSet) fillIDs(source string) {
	for _, r := range s.Reports {
		if r != nil && r.AgentID == "" {
			r.AgentID = GenerateReportID(source+r.AgentName, r.Analysis)
		}
	}
}

// Add appends a report, replacing an existing one with the same agent ID
func (s *ReportSet) Add(report *Report) {
	for i, r := range s.Reports {
		if r != nil && r.AgentID == report.AgentID {
			s.Reports[i] = report
			return
		}
	}
	s.Reports = append(s.Reports, report)
}

// Get returns the report for an agent
func (s *ReportSet) Get(agentID string) (*Report, error) {
	for _, r := range s.Reports {
		if r != nil && r.AgentID == agentID {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, agentID)
}

// Successful returns the reports that finished without error, ordered by
// case-insensitive agent name.
func (s *ReportSet) Successful() []*Report {
	var reports []*Report
	for _, r := range s.Reports {
		if r != nil && r.IsSuccess() {
			reports = append(reports, r)
		}
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return strings.ToLower(reports[i].DisplayName()) < strings.ToLower(reports[j].DisplayName())
	})
	return reports
}

// InitialAgent picks the agent to show first: the requested one when it has
// a successful report, otherwise the first successful agent.
func (s *ReportSet) InitialAgent(requested string) (string, error) {
	successful := s.Successful()
	if len(successful) == 0 {
		return "", ErrNoReports
	}
	for _, r := range successful {
		if requested != "" && r.AgentID == requested {
			return r.AgentID, nil
		}
	}
	return successful[0].AgentID, nil
}
