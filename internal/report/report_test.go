package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varunisrani/marketscope/internal/analysis"
	"github.com/varunisrani/marketscope/internal/model"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
}

func acmeContext(t *testing.T, answers model.AnswerSet) *analysis.Context {
	t.Helper()
	ctx, err := analysis.Assemble(analysis.Input{
		Company:     model.CompanyInfo{CompanyName: "Acme Corp", Industry: "Manufacturing"},
		ReportType:  model.MarketAnalysis,
		DetailLevel: model.Detailed,
		Answers:     answers,
	})
	require.NoError(t, err)
	return ctx
}

func TestPersist_FileNames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	p := NewPersister(dir).WithClock(fixedClock)

	pair, err := p.Persist("# Acme report", acmeContext(t, model.AnswerSet{3: "c", 1: "a", 2: "b"}), model.MarketAnalysis)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "acme_corp_market_analysis_20240115_103000_validation.txt"), pair.ValidationPath)
	assert.Equal(t, filepath.Join(dir, "acme_corp_market_analysis_20240115_103000_report.md"), pair.ReportPath)

	report, err := os.ReadFile(pair.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, "# Acme report", string(report))

	validation, err := os.ReadFile(pair.ValidationPath)
	require.NoError(t, err)
	text := string(validation)
	assert.True(t, strings.HasPrefix(text, "Validation Report for Acme Corp\nReport Type: market_analysis\nGenerated on: 2024-01-15 10:30:00\n"))
	assert.Contains(t, text, "Website: N/A")
	assert.Contains(t, text, "Detail Level: detailed")
	assert.Contains(t, text, "=== User Responses ===\nQ1: a\nQ2: b\nQ3: c\n")
	assert.Contains(t, text, "=== Analysis Result ===\n# Acme report")
}

func TestPersist_NonASCIICompanyListed(t *testing.T) {
	dir := t.TempDir()
	ctx, err := analysis.Assemble(analysis.Input{
		Company:    model.CompanyInfo{CompanyName: "株式会社", Industry: "Retail"},
		ReportType: model.GapAnalysis,
	})
	require.NoError(t, err)

	pair, err := NewPersister(dir).WithClock(fixedClock).Persist("# report", ctx, model.GapAnalysis)
	require.NoError(t, err)
	assert.Equal(t, "株式会社_gap_analysis_20240115_103000_report.md", filepath.Base(pair.ReportPath))

	list, err := NewStore(dir).List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "株式会社", list[0].CompanyName)
	assert.Equal(t, "gap_analysis", list[0].ReportType)
}

func TestPersist_DefaultRelativePaths(t *testing.T) {
	assert.Equal(t, "acme_corp_market_analysis_20240115_103000", BaseName("Acme Corp", model.MarketAnalysis, fixedClock()))
	assert.Equal(t, "reports", NewPersister("").dir)
}

func TestPersist_Idempotent(t *testing.T) {
	dir := t.TempDir()
	p := NewPersister(dir).WithClock(fixedClock)

	_, err := p.Persist("one", acmeContext(t, nil), model.GapAnalysis)
	require.NoError(t, err)
	_, err = p.Persist("two", acmeContext(t, nil), model.ICPReport)
	require.NoError(t, err)
}

func TestPersist_MissingCompany(t *testing.T) {
	p := NewPersister(t.TempDir())
	_, err := p.Persist("x", &analysis.Context{}, model.MarketAnalysis)
	assert.ErrorIs(t, err, ErrMissingCompany)

	_, err = p.Persist("x", nil, model.MarketAnalysis)
	assert.ErrorIs(t, err, ErrMissingCompany)
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name string
		want model.ReportListing
		ok   bool
	}{
		{
			name: "acme_corp_market_analysis_20240115_103000_report.md",
			want: model.ReportListing{CompanyName: "acme_corp", ReportType: "market_analysis", Timestamp: "20240115_103000", Filename: "acme_corp_market_analysis_20240115_103000_report.md"},
			ok:   true,
		},
		{
			name: "big_data_co_competitor_tracking_20250101_000000_report.md",
			want: model.ReportListing{CompanyName: "big_data_co", ReportType: "competitor_tracking", Timestamp: "20250101_000000", Filename: "big_data_co_competitor_tracking_20250101_000000_report.md"},
			ok:   true,
		},
		{name: "acme_unknown_20240115_103000_report.md"},
		{name: "acme_market_analysis_2024_report.md"},
		{name: "notes.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFilename(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_ListAndRead(t *testing.T) {
	root := t.TempDir()
	reports := filepath.Join(root, "reports")
	require.NoError(t, os.MkdirAll(reports, 0o755))

	write := func(dir, name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write(reports, "acme_market_analysis_20240101_090000_report.md", "old")
	write(reports, "acme_market_analysis_20240101_090000_validation.txt", "v")
	write(root, "zeta_gap_analysis_20240301_120000_report.md", "new")
	write(root, "README.md", "ignored")

	store := NewStore(root, reports)
	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "zeta", list[0].CompanyName)
	assert.Equal(t, "acme", list[1].CompanyName)

	content, err := store.Read("acme_market_analysis_20240101_090000_report.md")
	require.NoError(t, err)
	assert.Equal(t, "old", content)

	_, err = store.Read("missing_report.md")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ReadRejectsTraversal(t *testing.T) {
	store := NewStore(t.TempDir())
	for _, name := range []string{"../../etc/passwd", "/etc/passwd", "a/../b.md", ""} {
		_, err := store.Read(name)
		assert.ErrorIs(t, err, ErrInvalidFilename, name)
	}
}

func TestStore_ListMissingDirs(t *testing.T) {
	list, err := NewStore(filepath.Join(t.TempDir(), "nope")).List()
	require.NoError(t, err)
	assert.Empty(t, list)
}
