package questions

import (
	"strings"

	"github.com/varunisrani/marketscope/internal/model"
)

type levelText struct {
	quick    string
	detailed string
}

func (l levelText) pick(level model.DetailLevel) string {
	if level == model.Detailed {
		return l.detailed
	}
	return l.quick
}

var focusAreas = map[model.ReportType]levelText{
	model.MarketAnalysis: {
		quick:    "core revenue metrics, immediate market position, key competitors",
		detailed: "comprehensive market analysis, competitive positioning, growth trajectory, market share analysis, strategic opportunities",
	},
	model.CompetitorAnalysis: {
		quick:    "direct competitors, key differentiators, competitive advantages",
		detailed: "detailed competitor landscape, market positioning, competitive strategies, technological advantages, market share distribution",
	},
	model.ICPReport: {
		quick:    "target customer profile, customer needs, acquisition channels",
		detailed: "customer segmentation, behavior patterns, lifetime value, satisfaction metrics, engagement analysis",
	},
	model.GapAnalysis: {
		quick:    "immediate opportunities, current limitations, quick wins",
		detailed: "market gaps, capability assessment, resource requirements, growth opportunities, strategic positioning",
	},
	model.MarketAssessment: {
		quick:    "market size, growth rate, immediate trends",
		detailed: "market segmentation, growth projections, regulatory landscape, technological trends, market barriers",
	},
	model.ImpactAssessment: {
		quick:    "key performance indicators, current impact, immediate challenges",
		detailed: "comprehensive impact metrics, stakeholder analysis, long-term projections, measurement frameworks, optimization strategies",
	},
}

// FocusPhrase returns the focus areas injected into the question prompt
func FocusPhrase(reportType model.ReportType, level model.DetailLevel) string {
	f, ok := focusAreas[reportType]
	if !ok {
		f = focusAreas[model.MarketAnalysis]
	}
	return f.pick(level)
}

type staticSet struct {
	quick    []string
	detailed []string
}

var static = map[model.ReportType]staticSet{
	model.MarketAnalysis: {
		quick: []string{
			"What is {company}'s primary revenue model?",
			"Top 3 competitors in {industry}?",
			"Current market share percentage?",
		},
		detailed: []string{
			"What unique value proposition does {company} offer in the {industry} market?",
			"What are your key market differentiators from competitors?",
			"What are your current market growth metrics?",
			"Which market segments show highest potential?",
			"What are your key customer acquisition channels?",
		},
	},
	model.CompetitorAnalysis: {
		quick: []string{
			"Name your top 3 direct competitors?",
			"Key competitive advantage?",
			"Main market differentiator?",
		},
		detailed: []string{
			"List your top 5 competitors and their market shares?",
			"What are competitors' pricing strategies?",
			"Key technological advantages of competitors?",
			"Competitors' target market segments?",
			"Competitor growth rates and strategies?",
		},
	},
	model.ICPReport: {
		quick: []string{
			"Primary customer segment?",
			"Average customer value?",
			"Key customer pain points?",
		},
		detailed: []string{
			"Detailed customer demographic breakdown?",
			"Customer acquisition and retention metrics?",
			"Customer lifetime value by segment?",
			"Most successful customer use cases?",
			"Customer feedback and satisfaction metrics?",
		},
	},
	model.GapAnalysis: {
		quick: []string{
			"Biggest market opportunity?",
			"Main product/service gap?",
			"Current market limitations?",
		},
		detailed: []string{
			"What market needs are currently unmet?",
			"Technical capabilities gaps?",
			"Resource and skill gaps?",
			"Market expansion opportunities?",
			"Product development roadmap gaps?",
		},
	},
	model.MarketAssessment: {
		quick: []string{
			"Total addressable market size in {industry}?",
			"Current market growth rate?",
			"Key market trends?",
		},
		detailed: []string{
			"Detailed market size by segment?",
			"Market growth projections next 3 years?",
			"Regulatory impacts on market?",
			"Technology trends affecting market?",
			"Market entry barriers?",
		},
	},
	model.ImpactAssessment: {
		quick: []string{
			"Primary business impact metric?",
			"Current market impact?",
			"Key impact challenges?",
		},
		detailed: []string{
			"Quantitative impact metrics?",
			"Stakeholder impact analysis?",
			"Long-term impact projections?",
			"Impact measurement methods?",
			"Impact optimization strategies?",
		},
	},
}

// Static returns the built-in questions for a report type and detail level.
// Unknown report types get the market analysis set.
func Static(reportType model.ReportType, level model.DetailLevel, companyName, industry string) []model.Question {
	set, ok := static[reportType]
	if !ok {
		set = static[model.MarketAnalysis]
	}
	texts := set.quick
	if level == model.Detailed {
		texts = set.detailed
	}

	r := strings.NewReplacer("{company}", companyName, "{industry}", industry)
	out := make([]model.Question, len(texts))
	for i, text := range texts {
		out[i] = model.Question{ID: i + 1, Question: r.Replace(text)}
	}
	return out
}
