package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varunisrani/marketscope/internal/analysis"
	"github.com/varunisrani/marketscope/internal/llm"
	"github.com/varunisrani/marketscope/internal/model"
	"github.com/varunisrani/marketscope/internal/questions"
	"github.com/varunisrani/marketscope/internal/report"
	"github.com/varunisrani/marketscope/internal/summarize"
)

type fakeExtractor struct {
	text string
	ok   bool
	urls []string
}

func (f *fakeExtractor) Extract(ctx context.Context, url string) (string, bool) {
	f.urls = append(f.urls, url)
	return f.text, f.ok
}

type fakeCrew struct {
	out   string
	err   error
	calls int
	got   *analysis.Context
}

func (f *fakeCrew) Generate(ctx context.Context, rt model.ReportType, actx *analysis.Context) (string, error) {
	f.calls++
	f.got = actx
	return f.out, f.err
}

type echoProvider struct {
	text string
}

func (p *echoProvider) Name() string { return "echo" }

func (p *echoProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return &llm.CompletionResponse{Text: p.text}, nil
}

func (p *echoProvider) IsAvailable(ctx context.Context) bool { return true }

func TestPrepare_NoWebsite(t *testing.T) {
	ext := &fakeExtractor{}
	p := New(Deps{Extractor: ext})

	prep, err := p.Prepare(context.Background(), model.CompanyInfo{CompanyName: "Acme", Industry: "SaaS"}, model.MarketAnalysis, "")
	require.NoError(t, err)

	assert.Empty(t, ext.urls, "blank website is never fetched")
	assert.False(t, prep.Scraped)
	assert.Equal(t, summarize.NoContentSummary, prep.Summary)
	assert.Equal(t, "", prep.WebsiteContext())
	assert.Equal(t, model.Quick, prep.DetailLevel)
	assert.Equal(t, "2024", prep.Company.TimePeriod)
	assert.Equal(t, questions.Static(model.MarketAnalysis, model.Quick, "Acme", "SaaS"), prep.Questions)
}

func TestPrepare_WithWebsite(t *testing.T) {
	digest := "1. Company Overview\n- Acme makes developer tooling for large enterprises."
	provider := &echoProvider{text: digest}
	ext := &fakeExtractor{text: "Acme homepage", ok: true}
	p := New(Deps{
		Extractor:  ext,
		Summarizer: summarize.NewSummarizer(provider),
		Questions:  questions.NewGenerator(nil),
	})

	prep, err := p.Prepare(context.Background(), model.CompanyInfo{CompanyName: "Acme", Industry: "SaaS", Website: "https://acme.example"}, model.ICPReport, model.Detailed)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://acme.example"}, ext.urls)
	assert.True(t, prep.Scraped)
	assert.Equal(t, digest, prep.WebsiteContext())
	assert.Len(t, prep.Questions, 5)
}

func TestPrepare_UnknownReportType(t *testing.T) {
	_, err := New(Deps{}).Prepare(context.Background(), model.CompanyInfo{CompanyName: "Acme", Industry: "SaaS"}, "bogus", model.Quick)
	assert.ErrorIs(t, err, model.ErrUnsupportedReportType)
}

func TestGenerate_HappyPath(t *testing.T) {
	dir := t.TempDir()
	c := &fakeCrew{out: "# Acme ICP"}
	persister := report.NewPersister(dir).WithClock(func() time.Time {
		return time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	})
	p := New(Deps{Crew: c, Persister: persister})

	res, err := p.Generate(context.Background(), analysis.Input{
		Company:    model.CompanyInfo{CompanyName: "Acme Corp", Industry: "SaaS"},
		ReportType: model.ICPReport,
		Questions:  []model.Question{{ID: 1, Question: "A?"}, {ID: 2, Question: "B?"}},
		Answers:    model.AnswerSet{2: "two"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, c.calls)
	assert.Equal(t, model.AnswerSet{1: "", 2: "two"}, c.got.Answers)
	assert.Equal(t, "# Acme ICP", res.Report)
	assert.Equal(t, filepath.Join(dir, "acme_corp_icp_report_20240115_103000_report.md"), res.Files.ReportPath)

	validation := ReadFile(res.Files.ValidationPath)
	assert.Contains(t, validation, "Q1: \nQ2: two\n")
}

func TestGenerate_ValidationStopsBeforeCrew(t *testing.T) {
	dir := t.TempDir()
	c := &fakeCrew{out: "unused"}
	p := New(Deps{Crew: c, Persister: report.NewPersister(dir)})

	_, err := p.Generate(context.Background(), analysis.Input{
		Company:    model.CompanyInfo{CompanyName: "Acme"},
		ReportType: model.MarketAnalysis,
	})
	assert.ErrorIs(t, err, analysis.ErrValidation)
	assert.Zero(t, c.calls)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerate_CrewErrorUnchanged(t *testing.T) {
	boom := errors.New("crew failed")
	p := New(Deps{Crew: &fakeCrew{err: boom}, Persister: report.NewPersister(t.TempDir())})

	_, err := p.Generate(context.Background(), analysis.Input{
		Company:    model.CompanyInfo{CompanyName: "Acme", Industry: "SaaS"},
		ReportType: model.GapAnalysis,
	})
	assert.Same(t, boom, err)
}

func TestAnalyzeWebsite(t *testing.T) {
	p := New(Deps{
		Extractor: &fakeExtractor{text: "Acme site", ok: true},
		Analyzer:  summarize.NewAnalyzer(&echoProvider{text: `{"industry":"Fintech"}`}),
	})
	profile, raw, ok := p.AnalyzeWebsite(context.Background(), "Acme", "https://acme.example")
	require.True(t, ok)
	assert.Equal(t, "Acme site", raw)
	assert.Equal(t, "Fintech", profile.Industry)

	_, _, ok = New(Deps{Extractor: &fakeExtractor{}}).AnalyzeWebsite(context.Background(), "Acme", "https://down.example")
	assert.False(t, ok)
}
