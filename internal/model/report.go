package model

// ReportFilePair holds the two files written for one report run
type ReportFilePair struct {
	ValidationPath string `json:"validation_path"`
	ReportPath     string `json:"report_path"`
}

// ReportListing describes a persisted report found on disk
type ReportListing struct {
	CompanyName string `json:"company_name"`
	ReportType  string `json:"report_type"`
	Timestamp   string `json:"timestamp"` // YYYYMMDD_HHMMSS
	Filename    string `json:"filename"`
}

// DetailLevelInfo describes a detail level for menus and the API catalog
type DetailLevelInfo struct {
	Name     string   `json:"name"`
	Duration string   `json:"duration"`
	Features []string `json:"features"`
}

// DetailLevelCatalog is the static detail level catalog
var DetailLevelCatalog = map[DetailLevel]DetailLevelInfo{
	Quick: {
		Name:     "Quick Analysis",
		Duration: "15-20 minutes",
		Features: []string{
			"2-3 focused questions",
			"Core metrics analysis",
			"Key recommendations",
		},
	},
	Detailed: {
		Name:     "Detailed Analysis",
		Duration: "45-60 minutes",
		Features: []string{
			"4-5 comprehensive questions",
			"In-depth market research",
			"Detailed strategic insights",
		},
	},
}

// ReportTypeInfo describes a report type for menus and the API catalog
type ReportTypeInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ReportTypeCatalog is the static report type catalog
var ReportTypeCatalog = map[ReportType]ReportTypeInfo{
	MarketAnalysis:     {Title: "Market Analysis", Description: "Overall market position and trends"},
	CompetitorAnalysis: {Title: "Competitor Analysis", Description: "Detailed competitive landscape"},
	ICPReport:          {Title: "ICP Report", Description: "Ideal Customer Profile analysis"},
	GapAnalysis:        {Title: "Gap Analysis", Description: "Market opportunities and gaps"},
	MarketAssessment:   {Title: "Market Assessment", Description: "Industry potential"},
	ImpactAssessment:   {Title: "Impact Assessment", Description: "Business impact analysis"},
}
