package analysis

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varunisrani/marketscope/internal/model"
)

func TestAssemble_RequiresCompanyAndIndustry(t *testing.T) {
	_, err := Assemble(Input{Company: model.CompanyInfo{CompanyName: "  "}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"company_name", "industry"}, verr.Missing)
	assert.Equal(t, "Missing required fields: company_name, industry", err.Error())
}

func TestAssemble_Defaults(t *testing.T) {
	ctx, err := Assemble(Input{
		Company:    model.CompanyInfo{CompanyName: "Acme", Industry: "SaaS"},
		ReportType: model.MarketAnalysis,
	})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTimePeriod, ctx.Company.TimePeriod)
	assert.Equal(t, model.Quick, ctx.DetailLevel)
	assert.Equal(t, []string{"Market Size", "Competition", "Growth Trends"}, ctx.FocusAreas)
	assert.Empty(t, ctx.Answers)
}

func TestAssemble_NormalizesAnswers(t *testing.T) {
	ctx, err := Assemble(Input{
		Company:   model.CompanyInfo{CompanyName: "Acme", Industry: "SaaS"},
		Questions: []model.Question{{ID: 1, Question: "A?"}, {ID: 2, Question: "B?"}},
		Answers:   model.AnswerSet{1: "yes", 7: "orphan"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.AnswerSet{1: "yes", 2: ""}, ctx.Answers)
}

func TestBlock(t *testing.T) {
	ctx, err := Assemble(Input{
		Company:    model.CompanyInfo{CompanyName: "Acme", Industry: "SaaS", TimePeriod: "2025"},
		Website:    "Acme sells widgets.",
		Answers:    model.AnswerSet{2: "Bolt", 1: "$10M"},
		FocusAreas: []string{"Pricing", " ", "Channels"},
		Extra:      model.ExtraInputs{"competitors": []string{"Bolt", "Nut"}, "metrics": "Market Share"},
	})
	require.NoError(t, err)

	block := ctx.Block()
	assert.True(t, strings.HasPrefix(block, "COMPANY ANALYSIS CONTEXT\n"))
	assert.Contains(t, block, "Company Name: Acme")
	assert.Contains(t, block, "Time Period: 2025")
	assert.Contains(t, block, "Acme sells widgets.")
	assert.Contains(t, block, "USER RESPONSES TO ANALYSIS QUESTIONS:\nQ1: $10M\nQ2: Bolt\n")
	assert.Contains(t, block, "Pricing, Channels")
	assert.Contains(t, block, "competitors: Bolt, Nut")
	assert.Contains(t, block, "metrics: Market Share")
	assert.Less(t, strings.Index(block, "2. WEBSITE ANALYSIS"), strings.Index(block, "3. USER INSIGHTS"))
}

func TestBlock_Empty(t *testing.T) {
	ctx, err := Assemble(Input{Company: model.CompanyInfo{CompanyName: "Acme", Industry: "SaaS"}})
	require.NoError(t, err)

	block := ctx.Block()
	assert.Contains(t, block, "No additional user insights provided.")
	assert.Contains(t, block, "No website analysis available.")
	assert.NotContains(t, block, "ADDITIONAL INPUTS")
}

func TestMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		rt     model.ReportType
		inputs map[string]any
		want   []string
	}{
		{
			name:   "market analysis complete",
			rt:     model.MarketAnalysis,
			inputs: map[string]any{"company_name": "Acme", "industry": "SaaS"},
		},
		{
			name: "icp missing revenue",
			rt:   model.ICPReport,
			inputs: map[string]any{
				"company_name": "Acme", "industry": "SaaS",
				"business_model": "b2b", "target_market": "Europe", "company_size": "small",
			},
			want: []string{"annual_revenue"},
		},
		{
			name:   "competitor blank list",
			rt:     model.CompetitorAnalysis,
			inputs: map[string]any{"company_name": "Acme", "industry": "SaaS", "competitors": []any{}, "metrics": "x"},
			want:   []string{"competitors"},
		},
		{
			name:   "gap everything",
			rt:     model.GapAnalysis,
			inputs: nil,
			want:   []string{"company_name", "industry", "focus_areas", "analysis_depth", "market_region"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MissingFields(tt.rt, tt.inputs))
		})
	}
}

func TestCheck(t *testing.T) {
	err := Check(model.ICPReport, map[string]any{"company_name": "Acme", "industry": "SaaS"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "annual_revenue")

	assert.NoError(t, Check(model.ImpactAssessment, map[string]any{"company_name": "Acme", "industry": "SaaS"}))
}
