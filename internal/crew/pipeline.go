// Package crew runs the two-stage analyst and writer pipeline that turns an
// analysis context into a markdown report.
package crew

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/varunisrani/marketscope/internal/analysis"
	"github.com/varunisrani/marketscope/internal/model"
)

// Pipeline runs the analyze task and then the write task for a report type
type Pipeline struct {
	runtime    Runtime
	searchTool Tool
	writeTool  Tool
}

// NewPipeline creates a pipeline. Nil tools are simply not offered to the agents.
func NewPipeline(runtime Runtime, searchTool, writeTool Tool) *Pipeline {
	return &Pipeline{runtime: runtime, searchTool: searchTool, writeTool: writeTool}
}

// Generate runs the crew for reportType and returns the writer's output.
// Runtime errors are returned unchanged.
func (p *Pipeline) Generate(ctx context.Context, reportType model.ReportType, actx *analysis.Context) (string, error) {
	tmpl, ok := Templates[reportType]
	if !ok {
		return "", fmt.Errorf("%w: %q", model.ErrUnsupportedReportType, reportType)
	}
	if actx == nil {
		return "", &analysis.ValidationError{Missing: []string{"company_name", "industry"}}
	}
	var missing []string
	if strings.TrimSpace(actx.Company.CompanyName) == "" {
		missing = append(missing, "company_name")
	}
	if strings.TrimSpace(actx.Company.Industry) == "" {
		missing = append(missing, "industry")
	}
	if len(missing) > 0 {
		return "", &analysis.ValidationError{Missing: missing}
	}

	fill := strings.NewReplacer(
		"{company}", actx.Company.CompanyName,
		"{industry}", actx.Company.Industry,
		"{time_period}", actx.Company.TimePeriod,
		"{focus_areas}", strings.Join(actx.FocusAreas, ", "),
	)

	analyst := Agent{
		Role:      tmpl.Analyst.Role,
		Goal:      fill.Replace(tmpl.Analyst.Goal),
		Backstory: tmpl.Analyst.Backstory,
		Tools:     nonNil(p.searchTool),
	}
	writer := Agent{
		Role:      tmpl.Writer.Role,
		Goal:      fill.Replace(tmpl.Writer.Goal),
		Backstory: tmpl.Writer.Backstory,
		Tools:     nonNil(p.writeTool),
	}

	block := actx.Block()
	analyze := Task{
		Description:    fill.Replace(tmpl.Analyze.Description) + "\n\n" + block,
		ExpectedOutput: tmpl.Analyze.ExpectedOutput,
	}

	log := zap.L().With(zap.String("company", actx.Company.CompanyName), zap.String("report_type", string(reportType)))

	start := time.Now()
	log.Info("running analysis task", zap.String("agent", analyst.Role))
	findings, err := p.runtime.Run(ctx, analyst, analyze)
	if err != nil {
		return "", err
	}

	write := Task{
		Description:    fill.Replace(tmpl.Write.Description),
		ExpectedOutput: tmpl.Write.ExpectedOutput,
		Context:        []string{findings},
	}

	log.Info("running writing task", zap.String("agent", writer.Role))
	report, err := p.runtime.Run(ctx, writer, write)
	if err != nil {
		return "", err
	}

	log.Info("crew finished", zap.Duration("elapsed", time.Since(start)))
	return report, nil
}

func nonNil(tools ...Tool) []Tool {
	var out []Tool
	for _, t := range tools {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}
