package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/varunisrani/marketscope/internal/analysis"
	"github.com/varunisrani/marketscope/internal/model"
	"github.com/varunisrani/marketscope/internal/pipeline"
	"github.com/varunisrani/marketscope/internal/questions"
	"github.com/varunisrani/marketscope/internal/util"
)

const previewChars = 500

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a report interactively",
	Long: `Walk through a report step by step: detail level, report type,
company details, type-specific inputs, and answers to the generated
questions. Press Ctrl-C at any prompt to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		p, err := pipeline.NewFromConfig(appConfig)
		if err != nil {
			return err
		}
		return newInteractive(ctx, p, cmd.InOrStdin(), cmd.OutOrStdout()).run()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

// interactiveReporter is the part of the pipeline the interactive flow uses
type interactiveReporter interface {
	Summarize(ctx context.Context, content, industry string) string
	AnalyzeWebsite(ctx context.Context, companyName, url string) (model.WebsiteProfile, string, bool)
	Questions(ctx context.Context, req questions.Request) []model.Question
	Generate(ctx context.Context, in analysis.Input) (*pipeline.Result, error)
}

type interactive struct {
	ctx      context.Context
	reporter interactiveReporter
	prompt   *prompter
	out      io.Writer
}

func newInteractive(ctx context.Context, reporter interactiveReporter, in io.Reader, out io.Writer) *interactive {
	return &interactive{
		ctx:      ctx,
		reporter: reporter,
		prompt:   newPrompter(ctx, in, out),
		out:      out,
	}
}

// run loops until a report is done, the operator declines to retry, or input ends
func (s *interactive) run() error {
	banner(s.out, "Market Analysis Tool")

	for {
		err := s.session()
		if err == nil {
			break
		}
		if errors.Is(err, errCancelled) || s.ctx.Err() != nil {
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, "Analysis cancelled by user.")
			break
		}

		zap.L().Error("analysis failed", zap.Error(err))
		failure(s.out, "Error during analysis: %v", err)
		again, err := s.prompt.confirm("\nTry again?")
		if err != nil {
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, "Analysis cancelled by user.")
			break
		}
		if !again {
			break
		}
	}

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Thank you for using the Market Analysis Tool!")
	return nil
}

func (s *interactive) session() error {
	level, err := s.chooseLevel()
	if err != nil {
		return err
	}
	rt, err := s.chooseReportType()
	if err != nil {
		return err
	}

	var company model.CompanyInfo
	fmt.Fprintln(s.out)
	if company.CompanyName, err = s.prompt.required("Enter company name: ", "Company name"); err != nil {
		return err
	}
	if company.Industry, err = s.prompt.required("Enter industry sector: ", "Industry"); err != nil {
		return err
	}
	if company.TimePeriod, err = s.prompt.optional("Enter time period (press Enter for "+model.DefaultTimePeriod+"): ", model.DefaultTimePeriod); err != nil {
		return err
	}
	if company.Website, err = s.prompt.optional("Enter company website (optional): ", ""); err != nil {
		return err
	}

	website, err := s.websiteContext(&company)
	if err != nil {
		return err
	}

	inputs, err := s.typeInputs(rt)
	if err != nil {
		return err
	}

	qs := s.reporter.Questions(s.ctx, questions.Request{
		CompanyName: company.CompanyName,
		Industry:    company.Industry,
		ReportType:  rt,
		DetailLevel: level,
		Context:     website,
	})
	answers, err := s.collectAnswers(qs)
	if err != nil {
		return err
	}

	banner(s.out, "Analysis Summary")
	field(s.out, "Company", company.CompanyName)
	field(s.out, "Industry", orNotSpecified(company.Industry))
	field(s.out, "Report Type", model.ReportTypeCatalog[rt].Title)
	field(s.out, "Detail Level", model.DetailLevelCatalog[level].Name)
	field(s.out, "Website", orNotSpecified(company.Website))
	field(s.out, "Answered", fmt.Sprintf("%d of %d questions", answered(answers), len(qs)))
	for _, k := range sortedKeys(inputs) {
		field(s.out, k, fmt.Sprint(inputs[k]))
	}

	ok, err := s.prompt.confirm("\nProceed with analysis?")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "Analysis cancelled.")
		return nil
	}

	in := analysis.Input{
		Company:     company,
		ReportType:  rt,
		DetailLevel: level,
		Website:     website,
		Questions:   qs,
		Answers:     answers,
		Extra:       model.ExtraInputs(inputs),
	}
	if focus, ok := inputs["focus_areas"].([]string); ok {
		in.FocusAreas = focus
	}

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, styleTitle.Render("Starting analysis..."))
	fmt.Fprintln(s.out, styleMuted.Render("The analyst and writer agents are working. This can take several minutes."))

	res, err := s.reporter.Generate(s.ctx, in)
	if err != nil {
		return err
	}
	return s.showResult(res)
}

func (s *interactive) chooseLevel() (model.DetailLevel, error) {
	levels := []model.DetailLevel{model.Quick, model.Detailed}
	options := make([]string, len(levels))
	for i, l := range levels {
		info := model.DetailLevelCatalog[l]
		options[i] = fmt.Sprintf("%s (%s)", info.Name, info.Duration)
	}
	i, err := s.prompt.choose("Select analysis detail level:", options, 1)
	if err != nil {
		return "", err
	}
	return levels[i], nil
}

func (s *interactive) chooseReportType() (model.ReportType, error) {
	options := make([]string, len(model.ReportTypes))
	for i, rt := range model.ReportTypes {
		info := model.ReportTypeCatalog[rt]
		options[i] = info.Title + " - " + info.Description
	}
	i, err := s.prompt.choose("Available report types:", options, 0)
	if err != nil {
		return "", err
	}
	return model.ReportTypes[i], nil
}

// websiteContext analyzes the website, offers the detected industry and
// returns the digest the questions and crew read.
func (s *interactive) websiteContext(company *model.CompanyInfo) (string, error) {
	if company.Website == "" {
		return "", nil
	}

	fmt.Fprintln(s.out, styleMuted.Render("Analyzing "+company.Website+"..."))
	profile, text, ok := s.reporter.AnalyzeWebsite(s.ctx, company.CompanyName, company.Website)
	if !ok {
		warn(s.out, "Could not scrape the website, continuing without website data.")
		return "", nil
	}

	success(s.out, "Website analyzed")
	field(s.out, "Industry", profile.Industry)
	field(s.out, "Business model", profile.BusinessModel)
	field(s.out, "Target market", profile.TargetMarket)
	if len(profile.Products) > 0 {
		field(s.out, "Products", strings.Join(profile.Products, ", "))
	}

	if profile.Industry != "" && !strings.EqualFold(profile.Industry, company.Industry) {
		use, err := s.prompt.confirm(fmt.Sprintf("Use detected industry (%s)?", profile.Industry))
		if err != nil {
			return "", err
		}
		if use {
			company.Industry = profile.Industry
		}
	}

	return s.reporter.Summarize(s.ctx, text, company.Industry), nil
}

var (
	competitorMetrics = []string{"Market Share", "Product Features", "Pricing Strategy", "Marketing Channels", "Customer Satisfaction"}
	gapFocusAreas     = []string{"Market Size and Growth", "Industry Trends", "Market Segments", "Geographic Distribution", "Competitive Landscape"}
	analysisDepths    = []string{"Basic", "Detailed", "Comprehensive"}
	gapRegions        = []string{"Global", "North America", "Europe", "Asia Pacific"}
	icpMarkets        = []string{"Global", "North America", "Europe", "Asia Pacific", "Latin America"}
)

type menuValue struct {
	label, value string
}

func labels(values []menuValue) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.label
	}
	return out
}

var (
	businessModels = []menuValue{{"B2B", "b2b"}, {"B2C", "b2c"}, {"B2B2C", "b2b2c"}}
	companySizes   = []menuValue{
		{"Small (1-50 employees)", "small"},
		{"Medium (51-500 employees)", "medium"},
		{"Large (501+ employees)", "large"},
		{"All sizes", "all"},
	}
	revenueRanges = []menuValue{
		{"Under $1M", "under_1m"},
		{"$1M - $10M", "1m_10m"},
		{"$10M - $50M", "10m_50m"},
		{"Over $50M", "over_50m"},
	}
)

func snake(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "_")
}

// typeInputs collects the inputs a report type requires beyond company and industry
func (s *interactive) typeInputs(rt model.ReportType) (map[string]any, error) {
	inputs := map[string]any{}

	switch rt {
	case model.CompetitorAnalysis:
		competitors, err := s.prompt.list("Enter competitors (one per line, empty line to finish):")
		if err != nil {
			return nil, err
		}
		metrics, err := s.prompt.chooseMany("Select metrics to track:", competitorMetrics)
		if err != nil {
			return nil, err
		}
		inputs["competitors"] = competitors
		inputs["metrics"] = metrics

	case model.ICPReport:
		i, err := s.prompt.choose("Select business model:", labels(businessModels), 1)
		if err != nil {
			return nil, err
		}
		inputs["business_model"] = businessModels[i].value

		if i, err = s.prompt.choose("Select target company size:", labels(companySizes), 4); err != nil {
			return nil, err
		}
		inputs["company_size"] = companySizes[i].value

		if i, err = s.prompt.choose("Select target market:", icpMarkets, 1); err != nil {
			return nil, err
		}
		inputs["target_market"] = snake(icpMarkets[i])

		if i, err = s.prompt.choose("Select annual revenue range:", labels(revenueRanges), 2); err != nil {
			return nil, err
		}
		inputs["annual_revenue"] = revenueRanges[i].value

	case model.GapAnalysis:
		focus, err := s.prompt.chooseMany("Select focus areas:", gapFocusAreas)
		if err != nil {
			return nil, err
		}
		inputs["focus_areas"] = focus

		i, err := s.prompt.choose("Select analysis depth:", analysisDepths, 2)
		if err != nil {
			return nil, err
		}
		inputs["analysis_depth"] = strings.ToLower(analysisDepths[i])

		if i, err = s.prompt.choose("Select target market region:", gapRegions, 1); err != nil {
			return nil, err
		}
		inputs["market_region"] = snake(gapRegions[i])
	}

	return inputs, nil
}

func (s *interactive) collectAnswers(qs []model.Question) (model.AnswerSet, error) {
	banner(s.out, "Please answer the following questions")
	answers := make(model.AnswerSet, len(qs))
	for _, q := range qs {
		fmt.Fprintln(s.out, styleBold.Render(fmt.Sprintf("Q%d: %s", q.ID, q.Question)))
		a, err := s.prompt.ask("> ")
		if err != nil {
			return nil, err
		}
		answers[q.ID] = a
	}
	return answers, nil
}

func (s *interactive) showResult(res *pipeline.Result) error {
	banner(s.out, "ANALYSIS COMPLETE")
	field(s.out, "Validation", res.Files.ValidationPath)
	field(s.out, "Report", res.Files.ReportPath)
	field(s.out, "Duration", res.Duration.Round(time.Second).String())

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, styleTitle.Render("Report preview:"))
	preview := util.Truncate(res.Report, previewChars)
	truncated := len(preview) < len(res.Report)
	if truncated {
		preview += "..."
	}
	fmt.Fprintln(s.out, preview)

	if truncated {
		full, err := s.prompt.confirm("\nShow full report?")
		if err != nil {
			return err
		}
		if full {
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, res.Report)
		}
	}
	return nil
}

func answered(a model.AnswerSet) int {
	n := 0
	for _, v := range a {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
