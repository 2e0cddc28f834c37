package worker

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/varunisrani/marketscope/internal/analysis"
	"github.com/varunisrani/marketscope/internal/model"
	"github.com/varunisrani/marketscope/internal/pipeline"
)

// Reporter runs the report pipeline for one company
type Reporter interface {
	Prepare(ctx context.Context, company model.CompanyInfo, reportType model.ReportType, level model.DetailLevel) (*pipeline.Preparation, error)
	Generate(ctx context.Context, in analysis.Input) (*pipeline.Result, error)
}

// BatchEntry is one company in a batch file
type BatchEntry struct {
	CompanyName string         `yaml:"company_name"`
	Industry    string         `yaml:"industry"`
	Website     string         `yaml:"website,omitempty"`
	TimePeriod  string         `yaml:"time_period,omitempty"`
	ReportType  string         `yaml:"report_type,omitempty"`
	DetailLevel string         `yaml:"detail_level,omitempty"`
	FocusAreas  []string       `yaml:"focus_areas,omitempty"`
	Inputs      map[string]any `yaml:"inputs,omitempty"`
}

// BatchFile is the YAML document read by the batch command
type BatchFile struct {
	Defaults  BatchEntry   `yaml:"defaults"`
	Companies []BatchEntry `yaml:"companies"`
}

// ReportJob generates one report
type ReportJob struct {
	Index    int
	Entry    BatchEntry
	Reporter Reporter
}

// Execute runs prepare and generate; answers are left empty
func (j *ReportJob) Execute(ctx context.Context) Result {
	start := time.Now()
	res := &ReportResult{Index: j.Index, Entry: j.Entry}

	rt, err := model.ParseReportType(j.Entry.ReportType)
	if err != nil {
		res.Error = err
		return res
	}
	level, err := model.ParseDetailLevel(j.Entry.DetailLevel)
	if err != nil {
		res.Error = err
		return res
	}
	if err := analysis.Check(rt, j.Entry.fields()); err != nil {
		res.Error = err
		return res
	}

	company := model.CompanyInfo{
		CompanyName: j.Entry.CompanyName,
		Industry:    j.Entry.Industry,
		Website:     j.Entry.Website,
		TimePeriod:  j.Entry.TimePeriod,
	}

	prep, err := j.Reporter.Prepare(ctx, company, rt, level)
	if err != nil {
		res.Error = err
		return res
	}

	out, err := j.Reporter.Generate(ctx, analysis.Input{
		Company:     prep.Company,
		ReportType:  rt,
		DetailLevel: level,
		Website:     prep.WebsiteContext(),
		Questions:   prep.Questions,
		Answers:     model.AnswerSet{},
		FocusAreas:  j.Entry.FocusAreas,
		Extra:       model.ExtraInputs(j.Entry.Inputs),
	})
	res.Duration = time.Since(start)
	if err != nil {
		res.Error = err
		return res
	}
	res.Files = out.Files
	return res
}

func (e BatchEntry) fields() map[string]any {
	fields := make(map[string]any, len(e.Inputs)+3)
	for k, v := range e.Inputs {
		fields[k] = v
	}
	fields["company_name"] = e.CompanyName
	fields["industry"] = e.Industry
	if len(e.FocusAreas) > 0 {
		fields["focus_areas"] = e.FocusAreas
	}
	return fields
}

// ReportResult represents the result of a report job
type ReportResult struct {
	Index    int
	Entry    BatchEntry
	Files    model.ReportFilePair
	Duration time.Duration
	Error    error
}

// GetError returns the error from the report result
func (r *ReportResult) GetError() error {
	return r.Error
}

// BatchProcessor generates reports for many companies concurrently
type BatchProcessor struct {
	reporter    Reporter
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(reporter Reporter, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		reporter:    reporter,
		concurrency: concurrency,
	}
}

// Process runs every entry and returns results in input order
func (b *BatchProcessor) Process(ctx context.Context, entries []BatchEntry) []*ReportResult {
	if len(entries) == 0 {
		return []*ReportResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		defer pool.Close()
		for i, entry := range entries {
			if !pool.Submit(&ReportJob{Index: i, Entry: entry, Reporter: b.reporter}) {
				return
			}
		}
	}()

	var results []*ReportResult
	for r := range pool.Results() {
		rr := r.(*ReportResult)
		if rr.Error != nil {
			zap.L().Warn("batch report failed", zap.String("company", rr.Entry.CompanyName), zap.Error(rr.Error))
		} else {
			zap.L().Info("batch report done", zap.String("company", rr.Entry.CompanyName), zap.String("report", rr.Files.ReportPath))
		}
		results = append(results, rr)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}

// ProcessFile reads a batch file and processes it
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ReportResult, error) {
	entries, err := ReadBatchFile(filePath)
	if err != nil {
		return nil, err
	}
	return b.Process(ctx, entries), nil
}

// ReadBatchFile parses a YAML batch file, applies defaults and drops
// duplicate (company, report type) pairs.
func ReadBatchFile(filePath string) ([]BatchEntry, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, eris.Wrap(err, "read batch file")
	}

	var file BatchFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrap(err, "parse batch file")
	}

	var entries []BatchEntry
	seen := make(map[string]bool)
	for _, e := range file.Companies {
		e = e.withDefaults(file.Defaults)
		if strings.TrimSpace(e.CompanyName) == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(e.CompanyName)) + "|" + strings.ToLower(e.ReportType)
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, e)
	}
	return entries, nil
}

func (e BatchEntry) withDefaults(d BatchEntry) BatchEntry {
	if e.Industry == "" {
		e.Industry = d.Industry
	}
	if e.TimePeriod == "" {
		e.TimePeriod = d.TimePeriod
	}
	if e.ReportType == "" {
		e.ReportType = d.ReportType
	}
	if e.ReportType == "" {
		e.ReportType = string(model.MarketAnalysis)
	}
	if e.DetailLevel == "" {
		e.DetailLevel = d.DetailLevel
	}
	if len(e.FocusAreas) == 0 {
		e.FocusAreas = d.FocusAreas
	}
	if len(d.Inputs) > 0 {
		merged := make(map[string]any, len(d.Inputs)+len(e.Inputs))
		for k, v := range d.Inputs {
			merged[k] = v
		}
		for k, v := range e.Inputs {
			merged[k] = v
		}
		e.Inputs = merged
	}
	return e
}

// Summary counts successes and failures
func Summary(results []*ReportResult) (ok, failed int) {
	for _, r := range results {
		if r.Error != nil {
			failed++
		} else {
			ok++
		}
	}
	return ok, failed
}

// Describe renders a one-line status for a result
func (r *ReportResult) Describe() string {
	if r.Error != nil {
		return fmt.Sprintf("%s (%s): %v", r.Entry.CompanyName, r.Entry.ReportType, r.Error)
	}
	return fmt.Sprintf("%s (%s): %s", r.Entry.CompanyName, r.Entry.ReportType, r.Files.ReportPath)
}
