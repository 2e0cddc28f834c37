package crew

import "github.com/varunisrani/marketscope/internal/model"

// RoleSpec describes one agent persona. Goal may contain {company}.
type RoleSpec struct {
	Role      string
	Goal      string
	Backstory string
}

// TaskSpec describes one task. Description may contain {company},
// {industry}, {time_period} and {focus_areas}.
type TaskSpec struct {
	Description    string
	ExpectedOutput string
}

// Template is the two-stage crew for one report type
type Template struct {
	Analyst RoleSpec
	Writer  RoleSpec
	Analyze TaskSpec
	Write   TaskSpec
}

// Templates holds the crew template for every report type
var Templates = map[model.ReportType]Template{
	model.MarketAnalysis: {
		Analyst: RoleSpec{
			Role: "Market Research Analyst",
			Goal: "Analyze {company} market position and trends",
			Backstory: "Expert in market research and analysis with 15+ years of experience. " +
				"Specialized in data-driven market analysis, competitive intelligence, and strategic recommendations.",
		},
		Writer: RoleSpec{
			Role: "Business Report Writer",
			Goal: "Create comprehensive market analysis reports",
			Backstory: "Professional business writer with expertise in creating clear, actionable market analysis reports. " +
				"Skilled at synthesizing complex data into compelling narratives that drive decision-making.",
		},
		Analyze: TaskSpec{
			Description: `Analyze market trends and position for {company}.

Focus Areas: {focus_areas}
Industry: {industry}
Time Period: {time_period}

Required Analysis Components:
1. Market size and growth analysis with specific metrics
2. Detailed competitive landscape assessment
3. Industry trend analysis with supporting data
4. Market drivers and inhibitors identification
5. Opportunity and threat analysis

Ensure all findings are:
- Data-driven with credible sources
- Current and relevant
- Actionable for decision-making`,
			ExpectedOutput: `A comprehensive market analysis containing:
1. Detailed market size and growth metrics
2. Competitive landscape analysis
3. Industry trend assessment
4. Market driver analysis
5. Strategic recommendations`,
		},
		Write: TaskSpec{
			Description: `Create a detailed market analysis report that synthesizes all findings into a clear, actionable document.

Report Structure:
1. Executive Summary
2. Detailed Analysis
3. Competitive Landscape
4. Strategic Recommendations
5. Risk Analysis and Mitigation

Use professional markdown formatting with clear headings, bullet points and tables where useful.`,
			ExpectedOutput: `A well-structured markdown report containing:
- Executive summary
- Market overview
- Detailed analysis
- Key findings
- Strategic recommendations`,
		},
	},
	model.CompetitorAnalysis: {
		Analyst: RoleSpec{
			Role:      "Competitive Intelligence Analyst",
			Goal:      "Track and analyze competitors of {company}",
			Backstory: "Expert in competitive analysis and market intelligence.",
		},
		Writer: RoleSpec{
			Role:      "Business Report Writer",
			Goal:      "Create comprehensive competitor analysis reports",
			Backstory: "Professional business writer specializing in competitive intelligence reports.",
		},
		Analyze: TaskSpec{
			Description: `Analyze the competitive landscape for {company} in the {industry} industry.

Focus on:
1. Direct and indirect competitors
2. Market positioning
3. Competitive advantages
4. Industry trends`,
			ExpectedOutput: `- Detailed competitor profiles
- Market positioning analysis
- Competitive advantages/disadvantages
- Industry trend insights
- Supporting data and metrics`,
		},
		Write: TaskSpec{
			Description: `Create a competitor analysis report for {company} including:
- Executive summary
- Competitor profiles
- Comparative analysis
- Strategic recommendations`,
			ExpectedOutput: `- Executive summary
- Detailed competitor analysis
- Market positioning insights
- Strategic recommendations
- Supporting data and metrics`,
		},
	},
	model.ICPReport: {
		Analyst: RoleSpec{
			Role:      "ICP Research Analyst",
			Goal:      "Define ideal customer profile for {company}",
			Backstory: "Expert in customer segmentation and market research.",
		},
		Writer: RoleSpec{
			Role:      "ICP Report Writer",
			Goal:      "Create comprehensive ICP analysis report",
			Backstory: "Specialized in creating detailed customer profile reports.",
		},
		Analyze: TaskSpec{
			Description: `Analyze the ideal customer profile for {company} in the {industry} industry.

Focus on:
1. Demographic characteristics
2. Behavioral patterns
3. Pain points and needs
4. Decision-making process
5. Value drivers`,
			ExpectedOutput: `- Detailed customer segments
- Behavioral analysis
- Needs assessment
- Purchase patterns
- Value propositions`,
		},
		Write: TaskSpec{
			Description: `Create an ICP report for {company} including:
- Executive summary
- Customer segment profiles
- Needs analysis
- Buying behavior
- Recommendations`,
			ExpectedOutput: `- Executive summary
- Detailed ICP analysis
- Customer journey mapping
- Actionable recommendations
- Supporting data`,
		},
	},
	model.GapAnalysis: {
		Analyst: RoleSpec{
			Role:      "Gap Analysis Specialist",
			Goal:      "Identify market and performance gaps for {company}",
			Backstory: "Expert in identifying market gaps and improvement opportunities.",
		},
		Writer: RoleSpec{
			Role:      "Gap Analysis Report Writer",
			Goal:      "Create comprehensive gap analysis report",
			Backstory: "Specialized in writing detailed gap analysis reports.",
		},
		Analyze: TaskSpec{
			Description: `Conduct a gap analysis for {company} in the {industry} industry.

Focus on:
1. Current market position
2. Competitor capabilities
3. Customer needs vs offerings
4. Performance metrics
5. Growth opportunities`,
			ExpectedOutput: `- Market position gaps
- Performance gaps
- Capability gaps
- Technology gaps
- Resource gaps`,
		},
		Write: TaskSpec{
			Description: `Create a gap analysis report for {company} including:
- Executive summary
- Current state analysis
- Desired state analysis
- Gap identification
- Recommendations`,
			ExpectedOutput: `- Executive summary
- Detailed gap analysis
- Supporting data
- Action plans
- Implementation roadmap`,
		},
	},
	model.MarketAssessment: {
		Analyst: RoleSpec{
			Role:      "Market Assessment Specialist",
			Goal:      "Assess market potential and opportunities for {company}",
			Backstory: "Expert in market assessment and opportunity analysis.",
		},
		Writer: RoleSpec{
			Role:      "Market Assessment Report Writer",
			Goal:      "Create comprehensive market assessment report",
			Backstory: "Specialized in market assessment documentation.",
		},
		Analyze: TaskSpec{
			Description: `Assess the market for {company} in the {industry} industry.

Focus on:
1. Market size and growth
2. Market segments
3. Entry barriers
4. Market dynamics
5. Growth potential`,
			ExpectedOutput: `- Market size analysis
- Segment analysis
- Opportunity assessment
- Risk analysis
- Growth projections`,
		},
		Write: TaskSpec{
			Description: `Create a market assessment report for {company} including:
- Executive summary
- Market overview
- Opportunity analysis
- Risk assessment
- Recommendations`,
			ExpectedOutput: `- Market analysis
- Opportunity mapping
- Risk evaluation
- Strategic recommendations
- Implementation plan`,
		},
	},
	model.ImpactAssessment: {
		Analyst: RoleSpec{
			Role:      "Impact Assessment Specialist",
			Goal:      "Evaluate market impact and potential for {company}",
			Backstory: "Expert in impact assessment and market influence analysis.",
		},
		Writer: RoleSpec{
			Role:      "Impact Assessment Report Writer",
			Goal:      "Create comprehensive impact assessment report",
			Backstory: "Specialized in impact assessment documentation.",
		},
		Analyze: TaskSpec{
			Description: `Evaluate the market impact of {company} in the {industry} industry.

Focus on:
1. Market influence
2. Industry impact
3. Competitive effect
4. Growth influence
5. Future potential`,
			ExpectedOutput: `- Market influence analysis
- Industry impact evaluation
- Competitive effect analysis
- Growth potential assessment
- Future scenarios`,
		},
		Write: TaskSpec{
			Description: `Create an impact assessment report for {company} including:
- Executive summary
- Impact analysis
- Market influence
- Future scenarios
- Recommendations`,
			ExpectedOutput: `- Impact evaluation
- Market influence analysis
- Future projections
- Strategic recommendations
- Implementation roadmap`,
		},
	},
}
