package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnsupportedReportType is returned for report types outside the closed set
var ErrUnsupportedReportType = errors.New("unsupported report type")

// DefaultTimePeriod is used when the operator leaves the analysis period blank
const DefaultTimePeriod = "2024"

// CompanyInfo is the subject of a report run
type CompanyInfo struct {
	CompanyName string `json:"company_name" yaml:"company_name"`
	Industry    string `json:"industry" yaml:"industry"`
	Website     string `json:"website,omitempty" yaml:"website,omitempty"`
	TimePeriod  string `json:"time_period,omitempty" yaml:"time_period,omitempty"`
}

// WithDefaults returns a copy with trimmed fields and the default time period applied
func (c CompanyInfo) WithDefaults() CompanyInfo {
	c.CompanyName = strings.TrimSpace(c.CompanyName)
	c.Industry = strings.TrimSpace(c.Industry)
	c.Website = strings.TrimSpace(c.Website)
	c.TimePeriod = strings.TrimSpace(c.TimePeriod)
	if c.TimePeriod == "" {
		c.TimePeriod = DefaultTimePeriod
	}
	return c
}

// ReportType selects question sets and agent templates
type ReportType string

const (
	MarketAnalysis     ReportType = "market_analysis"
	CompetitorAnalysis ReportType = "competitor_analysis"
	ICPReport          ReportType = "icp_report"
	GapAnalysis        ReportType = "gap_analysis"
	MarketAssessment   ReportType = "market_assessment"
	ImpactAssessment   ReportType = "impact_assessment"
)

// CompetitorTracking is the name the lightweight flow uses for competitor analysis
const CompetitorTracking = "competitor_tracking"

// ReportTypes lists every supported report type in menu order
var ReportTypes = []ReportType{
	MarketAnalysis,
	CompetitorAnalysis,
	ICPReport,
	GapAnalysis,
	MarketAssessment,
	ImpactAssessment,
}

// ParseReportType validates a report type name
func ParseReportType(s string) (ReportType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == CompetitorTracking {
		return CompetitorAnalysis, nil
	}
	for _, rt := range ReportTypes {
		if string(rt) == name {
			return rt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedReportType, s)
}

// Valid reports whether rt is one of the supported types
func (rt ReportType) Valid() bool {
	for _, known := range ReportTypes {
		if rt == known {
			return true
		}
	}
	return false
}

// DetailLevel controls question count and prompt verbosity
type DetailLevel string

const (
	Quick    DetailLevel = "quick"
	Detailed DetailLevel = "detailed"
)

// ParseDetailLevel maps a name to a DetailLevel; blank means quick
func ParseDetailLevel(s string) (DetailLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Quick):
		return Quick, nil
	case string(Detailed):
		return Detailed, nil
	default:
		return "", fmt.Errorf("unknown detail level: %s (supported: quick, detailed)", s)
	}
}

// Question is one clarifying question shown to the operator
type Question struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
}

// AnswerSet maps question ids to free-text answers
type AnswerSet map[int]string

// Normalize returns a copy whose keys are exactly the ids of questions.
// Missing answers become empty strings and orphan ids are dropped.
func (a AnswerSet) Normalize(questions []Question) AnswerSet {
	out := make(AnswerSet, len(questions))
	for _, q := range questions {
		out[q.ID] = a[q.ID]
	}
	return out
}

// IDs returns the answer ids in ascending order
func (a AnswerSet) IDs() []int {
	ids := make([]int, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Lines renders "Q<id>: <answer>" in ascending id order
func (a AnswerSet) Lines() []string {
	ids := a.IDs()
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, fmt.Sprintf("Q%d: %s", id, a[id]))
	}
	return lines
}

// DefaultFocusAreas is used when no focus areas were supplied
var DefaultFocusAreas = []string{"Market Size", "Competition", "Growth Trends"}

// WebsiteProfile is the AI business profile inferred from a company website
type WebsiteProfile struct {
	Industry      string   `json:"industry"`
	BusinessModel string   `json:"business_model"`
	TargetMarket  string   `json:"target_market"`
	Products      []string `json:"products"`
	MarketFocus   string   `json:"market_focus"`
}

// DefaultWebsiteProfile is returned when the website cannot be analyzed
func DefaultWebsiteProfile() WebsiteProfile {
	return WebsiteProfile{
		Industry:      "Technology",
		BusinessModel: "B2B",
		TargetMarket:  "General",
		Products:      []string{"Unknown"},
		MarketFocus:   "Global",
	}
}

// ExtraInputs carries report-type specific inputs such as competitors or metrics
type ExtraInputs map[string]any
