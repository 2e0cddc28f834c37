// Package report writes generated reports to disk and reads them back.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/varunisrani/marketscope/internal/analysis"
	"github.com/varunisrani/marketscope/internal/model"
	"github.com/varunisrani/marketscope/internal/util"
)

// DefaultDir is where reports are written when none is configured
const DefaultDir = "reports"

// TimestampLayout is the timestamp embedded in report file names
const TimestampLayout = "20060102_150405"

// ErrMissingCompany is returned when the context has no company name
var ErrMissingCompany = eris.New("company name is required to persist a report")

// Persister writes the validation and report file pair
type Persister struct {
	dir string
	now func() time.Time
}

// NewPersister creates a persister rooted at dir
func NewPersister(dir string) *Persister {
	if dir == "" {
		dir = DefaultDir
	}
	return &Persister{dir: dir, now: time.Now}
}

// WithClock replaces the clock used for timestamps
func (p *Persister) WithClock(now func() time.Time) *Persister {
	p.now = now
	return p
}

// BaseName returns <slug>_<type>_<timestamp>
func BaseName(companyName string, reportType model.ReportType, at time.Time) string {
	return util.Slug(companyName) + "_" + string(reportType) + "_" + at.Format(TimestampLayout)
}

// Persist writes both files and returns their paths
func (p *Persister) Persist(result string, actx *analysis.Context, reportType model.ReportType) (model.ReportFilePair, error) {
	if actx == nil || strings.TrimSpace(actx.Company.CompanyName) == "" {
		return model.ReportFilePair{}, ErrMissingCompany
	}

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return model.ReportFilePair{}, eris.Wrapf(err, "create reports directory %s", p.dir)
	}

	at := p.now()
	base := BaseName(actx.Company.CompanyName, reportType, at)
	pair := model.ReportFilePair{
		ValidationPath: filepath.Join(p.dir, base+"_validation.txt"),
		ReportPath:     filepath.Join(p.dir, base+"_report.md"),
	}

	if err := os.WriteFile(pair.ValidationPath, []byte(ValidationText(result, actx, reportType, at)), 0o644); err != nil {
		return model.ReportFilePair{}, eris.Wrap(err, "write validation file")
	}
	if err := os.WriteFile(pair.ReportPath, []byte(result), 0o644); err != nil {
		return model.ReportFilePair{}, eris.Wrap(err, "write report file")
	}

	zap.L().Info("report saved",
		zap.String("validation", pair.ValidationPath),
		zap.String("report", pair.ReportPath),
	)
	return pair, nil
}

// ValidationText renders the validation file body
func ValidationText(result string, actx *analysis.Context, reportType model.ReportType, at time.Time) string {
	website := actx.Company.Website
	if website == "" {
		website = "N/A"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Validation Report for %s\n", actx.Company.CompanyName)
	fmt.Fprintf(&b, "Report Type: %s\n", reportType)
	fmt.Fprintf(&b, "Generated on: %s\n\n", at.Format("2006-01-02 15:04:05"))

	b.WriteString("=== Input Parameters ===\n")
	fmt.Fprintf(&b, "Company Name: %s\n", actx.Company.CompanyName)
	fmt.Fprintf(&b, "Industry: %s\n", actx.Company.Industry)
	fmt.Fprintf(&b, "Website: %s\n", website)
	fmt.Fprintf(&b, "Detail Level: %s\n\n", actx.DetailLevel)

	b.WriteString("=== User Responses ===\n")
	for _, line := range actx.Answers.Lines() {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n=== Analysis Result ===\n")
	b.WriteString(result)
	b.WriteString("\n")
	return b.String()
}
