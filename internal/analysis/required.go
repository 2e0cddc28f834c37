package analysis

import (
	"strings"

	"github.com/varunisrani/marketscope/internal/model"
)

var baseFields = []string{"company_name", "industry"}

// RequiredFields lists the type-specific inputs each report type needs
// on top of company_name and industry.
var RequiredFields = map[model.ReportType][]string{
	model.MarketAnalysis:     nil,
	model.CompetitorAnalysis: {"competitors", "metrics"},
	model.ICPReport:          {"business_model", "target_market", "company_size", "annual_revenue"},
	model.GapAnalysis:        {"focus_areas", "analysis_depth", "market_region"},
	model.MarketAssessment:   nil,
	model.ImpactAssessment:   nil,
}

// Required returns every required field for a report type, base fields first
func Required(rt model.ReportType) []string {
	out := append([]string(nil), baseFields...)
	return append(out, RequiredFields[rt]...)
}

// MissingFields returns the required fields absent or blank in inputs, in table order
func MissingFields(rt model.ReportType, inputs map[string]any) []string {
	var missing []string
	for _, field := range Required(rt) {
		if isBlank(inputs[field]) {
			missing = append(missing, field)
		}
	}
	return missing
}

// Check returns a *ValidationError when MissingFields is non-empty
func Check(rt model.ReportType, inputs map[string]any) error {
	if missing := MissingFields(rt, inputs); len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
