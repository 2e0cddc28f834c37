package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/varunisrani/marketscope/internal/analysis"
	"github.com/varunisrani/marketscope/internal/crew"
	"github.com/varunisrani/marketscope/internal/llm"
	"github.com/varunisrani/marketscope/internal/model"
	"github.com/varunisrani/marketscope/internal/questions"
	"github.com/varunisrani/marketscope/internal/report"
	"github.com/varunisrani/marketscope/internal/scrape"
	"github.com/varunisrani/marketscope/internal/search"
	"github.com/varunisrani/marketscope/internal/summarize"
)

// WebsiteExtractor returns page text, or false when the site gave nothing usable
type WebsiteExtractor interface {
	Extract(ctx context.Context, url string) (string, bool)
}

// ReportGenerator runs the agent crew for a report type
type ReportGenerator interface {
	Generate(ctx context.Context, reportType model.ReportType, actx *analysis.Context) (string, error)
}

// Deps are the collaborators of a Pipeline
type Deps struct {
	Extractor  WebsiteExtractor
	Summarizer *summarize.Summarizer
	Analyzer   *summarize.Analyzer
	Questions  *questions.Generator
	Crew       ReportGenerator
	Persister  *report.Persister
}

// Pipeline orchestrates a complete report run
type Pipeline struct {
	extractor  WebsiteExtractor
	summarizer *summarize.Summarizer
	analyzer   *summarize.Analyzer
	questions  *questions.Generator
	crew       ReportGenerator
	persister  *report.Persister
}

// New creates a pipeline from explicit collaborators
func New(d Deps) *Pipeline {
	if d.Summarizer == nil {
		d.Summarizer = summarize.NewSummarizer(nil)
	}
	if d.Analyzer == nil {
		d.Analyzer = summarize.NewAnalyzer(nil)
	}
	if d.Questions == nil {
		d.Questions = questions.NewGenerator(nil)
	}
	if d.Persister == nil {
		d.Persister = report.NewPersister("")
	}
	return &Pipeline{
		extractor:  d.Extractor,
		summarizer: d.Summarizer,
		analyzer:   d.Analyzer,
		questions:  d.Questions,
		crew:       d.Crew,
		persister:  d.Persister,
	}
}

// NewFromConfig wires the production collaborators from configuration
func NewFromConfig(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg))
	if err != nil {
		return nil, eris.Wrap(err, "initialize LLM provider")
	}
	if provider == nil {
		return nil, eris.New("an LLM provider is required (set llm.provider)")
	}

	searcher, err := search.NewSearcher(cfg.Search)
	if err != nil {
		return nil, eris.Wrap(err, "initialize web search")
	}
	zap.L().Debug("pipeline providers",
		zap.String("llm", provider.Name()),
		zap.String("search", searcher.Name()),
	)

	runner := crew.NewRunner(provider, cfg.Crew.MaxIterations)
	reportCrew := crew.NewPipeline(runner,
		crew.NewWebSearchTool(searcher, cfg.Search.MaxResults),
		crew.NewWriteFileTool(cfg.Crew.ScratchDir),
	)

	return New(Deps{
		Extractor:  scrape.NewExtractor(cfg.HTTP),
		Summarizer: summarize.NewSummarizer(provider),
		Analyzer:   summarize.NewAnalyzer(provider),
		Questions:  questions.NewGenerator(provider),
		Crew:       reportCrew,
		Persister:  report.NewPersister(cfg.Reports.Dir),
	}), nil
}

// Preparation is the outcome of the steps that run before answers are collected
type Preparation struct {
	Company     model.CompanyInfo
	ReportType  model.ReportType
	DetailLevel model.DetailLevel
	Scraped     bool
	RawText     string
	Summary     string
	Questions   []model.Question
}

// WebsiteContext is the best available website text: the digest when the
// site was scraped, otherwise empty.
func (p *Preparation) WebsiteContext() string {
	if !p.Scraped {
		return ""
	}
	return p.Summary
}

// Prepare scrapes, summarizes and generates questions. It fails only on
// an unsupported report type.
func (p *Pipeline) Prepare(ctx context.Context, company model.CompanyInfo, reportType model.ReportType, level model.DetailLevel) (*Preparation, error) {
	if !reportType.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrUnsupportedReportType, reportType)
	}
	if level == "" {
		level = model.Quick
	}
	company = company.WithDefaults()

	prep := &Preparation{Company: company, ReportType: reportType, DetailLevel: level}

	prep.RawText, prep.Scraped = p.Scrape(ctx, company.Website)
	prep.Summary = p.summarizer.Summarize(ctx, prep.RawText, company.Industry)

	prep.Questions = p.questions.Generate(ctx, questions.Request{
		CompanyName: company.CompanyName,
		Industry:    company.Industry,
		ReportType:  reportType,
		DetailLevel: level,
		Context:     prep.WebsiteContext(),
	})
	return prep, nil
}

// Scrape fetches website text; a blank URL or missing extractor yields false
func (p *Pipeline) Scrape(ctx context.Context, url string) (string, bool) {
	if url == "" || p.extractor == nil {
		return "", false
	}
	return p.extractor.Extract(ctx, url)
}

// Summarize exposes the summarizer for callers that scraped on their own
func (p *Pipeline) Summarize(ctx context.Context, content, industry string) string {
	return p.summarizer.Summarize(ctx, content, industry)
}

// AnalyzeWebsite scrapes a site and infers its business profile
func (p *Pipeline) AnalyzeWebsite(ctx context.Context, companyName, url string) (model.WebsiteProfile, string, bool) {
	text, ok := p.Scrape(ctx, url)
	if !ok {
		return model.WebsiteProfile{}, "", false
	}
	return p.analyzer.Analyze(ctx, companyName, text), text, true
}

// Questions generates questions without scraping
func (p *Pipeline) Questions(ctx context.Context, req questions.Request) []model.Question {
	return p.questions.Generate(ctx, req)
}

// Result is a finished report run
type Result struct {
	Report   string
	Files    model.ReportFilePair
	Context  *analysis.Context
	Duration time.Duration
}

// Generate assembles the context, runs the crew and persists the files.
// Crew errors are returned unchanged.
func (p *Pipeline) Generate(ctx context.Context, in analysis.Input) (*Result, error) {
	if !in.ReportType.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrUnsupportedReportType, in.ReportType)
	}
	if p.crew == nil {
		return nil, eris.New("no report crew configured")
	}

	actx, err := analysis.Assemble(in)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := p.crew.Generate(ctx, in.ReportType, actx)
	if err != nil {
		return nil, err
	}

	files, err := p.persister.Persist(out, actx, in.ReportType)
	if err != nil {
		return nil, err
	}

	return &Result{Report: out, Files: files, Context: actx, Duration: time.Since(start)}, nil
}

// ReadFile reads a persisted file, used to return the validation text to API callers
func ReadFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		zap.L().Warn("read persisted file", zap.String("path", path), zap.Error(err))
		return ""
	}
	return string(data)
}
