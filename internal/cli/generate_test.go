package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varunisrani/marketscope/internal/analysis"
	"github.com/varunisrani/marketscope/internal/model"
	"github.com/varunisrani/marketscope/internal/pipeline"
	"github.com/varunisrani/marketscope/internal/questions"
)

type fakeReporter struct {
	profile   model.WebsiteProfile
	scrapeOK  bool
	report    string
	genErr    error
	questions []questions.Request
	generated []analysis.Input
}

func (f *fakeReporter) Summarize(ctx context.Context, content, industry string) string {
	return "digest of " + content + " for " + industry
}

func (f *fakeReporter) AnalyzeWebsite(ctx context.Context, companyName, url string) (model.WebsiteProfile, string, bool) {
	return f.profile, "site text", f.scrapeOK
}

func (f *fakeReporter) Questions(ctx context.Context, req questions.Request) []model.Question {
	f.questions = append(f.questions, req)
	return []model.Question{{ID: 1, Question: "Revenue model?"}, {ID: 2, Question: "Main competitor?"}}
}

func (f *fakeReporter) Generate(ctx context.Context, in analysis.Input) (*pipeline.Result, error) {
	f.generated = append(f.generated, in)
	if f.genErr != nil {
		return nil, f.genErr
	}
	return &pipeline.Result{
		Report: f.report,
		Files: model.ReportFilePair{
			ValidationPath: "reports/acme_x_validation.txt",
			ReportPath:     "reports/acme_x_report.md",
		},
	}, nil
}

func runScript(t *testing.T, rep *fakeReporter, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, newInteractive(context.Background(), rep, in, &out).run())
	return out.String()
}

func TestInteractive_ICPReport(t *testing.T) {
	rep := &fakeReporter{report: "# ICP"}
	out := runScript(t, rep,
		"",     // quick
		"3",    // icp_report
		"Acme", // company
		"SaaS", // industry
		"",     // time period
		"",     // website
		"",     // business model default b2b
		"2",    // medium
		"",     // global
		"4",    // over $50M
		"Subscriptions",
		"",
		"y",
	)

	require.Len(t, rep.generated, 1)
	in := rep.generated[0]
	assert.Equal(t, model.ICPReport, in.ReportType)
	assert.Equal(t, model.Quick, in.DetailLevel)
	assert.Equal(t, model.DefaultTimePeriod, in.Company.TimePeriod)
	assert.Equal(t, "b2b", in.Extra["business_model"])
	assert.Equal(t, "medium", in.Extra["company_size"])
	assert.Equal(t, "global", in.Extra["target_market"])
	assert.Equal(t, "over_50m", in.Extra["annual_revenue"])
	assert.Equal(t, model.AnswerSet{1: "Subscriptions", 2: ""}, in.Answers)
	assert.Len(t, in.Questions, 2)

	fields := map[string]any{"company_name": in.Company.CompanyName, "industry": in.Company.Industry}
	for k, v := range in.Extra {
		fields[k] = v
	}
	assert.NoError(t, analysis.Check(in.ReportType, fields))

	assert.Contains(t, out, "ANALYSIS COMPLETE")
	assert.Contains(t, out, "reports/acme_x_report.md")
	assert.Contains(t, out, "Thank you for using the Market Analysis Tool!")
	assert.NotContains(t, out, "Show full report?")
}

func TestInteractive_BlankTimePeriodDefaults(t *testing.T) {
	rep := &fakeReporter{report: "# Report"}
	runScript(t, rep, "", "1", "Acme", "SaaS", "", "", "a", "b", "y")

	require.Len(t, rep.generated, 1)
	assert.Equal(t, "2024", rep.generated[0].Company.TimePeriod)
}

func TestInteractive_CompetitorAndGap(t *testing.T) {
	rep := &fakeReporter{report: "# report"}
	runScript(t, rep,
		"2", "2", "Acme", "SaaS", "2025", "",
		"Globex", "Initech", "",
		"1,3",
		"a", "b", "y",
	)
	require.Len(t, rep.generated, 1)
	assert.Equal(t, model.CompetitorAnalysis, rep.generated[0].ReportType)
	assert.Equal(t, model.Detailed, rep.generated[0].DetailLevel)
	assert.Equal(t, []string{"Globex", "Initech"}, rep.generated[0].Extra["competitors"])
	assert.Equal(t, []string{"Market Share", "Pricing Strategy"}, rep.generated[0].Extra["metrics"])

	rep = &fakeReporter{report: "# report"}
	runScript(t, rep,
		"1", "4", "Acme", "SaaS", "", "",
		"2,5", "3", "2",
		"", "", "y",
	)
	require.Len(t, rep.generated, 1)
	in := rep.generated[0]
	assert.Equal(t, []string{"Industry Trends", "Competitive Landscape"}, in.FocusAreas)
	assert.Equal(t, "comprehensive", in.Extra["analysis_depth"])
	assert.Equal(t, "north_america", in.Extra["market_region"])
}

func TestInteractive_DetectedIndustry(t *testing.T) {
	rep := &fakeReporter{
		report:   "# report",
		scrapeOK: true,
		profile:  model.WebsiteProfile{Industry: "Fintech", BusinessModel: "B2B"},
	}
	runScript(t, rep,
		"1", "1", "Acme", "Software", "", "https://acme.example",
		"y", // use detected industry
		"", "", "y",
	)

	require.Len(t, rep.questions, 1)
	assert.Equal(t, "Fintech", rep.questions[0].Industry)
	assert.Equal(t, "digest of site text for Fintech", rep.questions[0].Context)
	require.Len(t, rep.generated, 1)
	assert.Equal(t, "Fintech", rep.generated[0].Company.Industry)
	assert.Equal(t, "https://acme.example", rep.generated[0].Company.Website)
}

func TestInteractive_InvalidMenuChoice(t *testing.T) {
	rep := &fakeReporter{report: "# report"}
	out := runScript(t, rep,
		"1", "9", "x", "5", "", "Acme", "SaaS", "", "", "", "", "y",
	)

	assert.Contains(t, out, "Please select a number between 1 and 6.")
	assert.Contains(t, out, "Company name is required.")
	require.Len(t, rep.generated, 1)
	assert.Equal(t, model.MarketAssessment, rep.generated[0].ReportType)
}

func TestInteractive_EndOfInput(t *testing.T) {
	rep := &fakeReporter{}
	out := runScript(t, rep, "1", "1", "Acme")

	assert.Empty(t, rep.generated)
	assert.Contains(t, out, "Analysis cancelled by user.")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "Thank you for using the Market Analysis Tool!"))
}

func TestInteractive_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	pr, pw := io.Pipe()
	defer pw.Close()

	require.NoError(t, newInteractive(ctx, &fakeReporter{}, pr, &out).run())
	assert.Contains(t, out.String(), "Analysis cancelled by user.")
}

func TestInteractive_ErrorAndDecline(t *testing.T) {
	rep := &fakeReporter{genErr: errors.New("llm unavailable")}
	out := runScript(t, rep,
		"1", "1", "Acme", "SaaS", "", "", "", "", "y",
		"n", // try again
	)

	assert.Contains(t, out, "Error during analysis: llm unavailable")
	assert.Contains(t, out, "Try again?")
	assert.Contains(t, out, "Thank you for using the Market Analysis Tool!")
	assert.Len(t, rep.generated, 1)
}

func TestInteractive_DeclineProceed(t *testing.T) {
	rep := &fakeReporter{}
	out := runScript(t, rep, "1", "1", "Acme", "SaaS", "", "", "", "", "n")

	assert.Empty(t, rep.generated)
	assert.Contains(t, out, "Analysis cancelled.")
}

func TestInteractive_LongReportPreview(t *testing.T) {
	rep := &fakeReporter{report: strings.Repeat("a", 499) + "XYZ"}
	out := runScript(t, rep, "1", "1", "Acme", "SaaS", "", "", "", "", "y", "y")

	assert.Contains(t, out, strings.Repeat("a", 499)+"X...")
	assert.Contains(t, out, "Show full report?")
	assert.Contains(t, out, strings.Repeat("a", 499)+"XYZ")
}

func TestParseSelection(t *testing.T) {
	options := []string{"a", "b", "c"}

	tests := []struct {
		in   string
		want []string
		ok   bool
	}{
		{"1", []string{"a"}, true},
		{"3, 1", []string{"c", "a"}, true},
		{"", nil, false},
		{"0", nil, false},
		{"4", nil, false},
		{"1,x", nil, false},
	}
	for _, tt := range tests {
		got, ok := parseSelection(tt.in, options)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
