package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/varunisrani/marketscope/internal/model"
	"github.com/varunisrani/marketscope/internal/pipeline"
	"github.com/varunisrani/marketscope/internal/questions"
	"github.com/varunisrani/marketscope/internal/scrape"
)

var (
	qType     string
	qLevel    string
	qCompany  string
	qIndustry string
	qURL      string
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the questions a report would ask",
	Long: `Generate the tailored question list for a company without running a report.

Without an LLM provider the built-in question set is printed.

Example:
  marketscope questions --type icp_report --company Acme --industry SaaS
  marketscope questions --type market_analysis --level detailed --company Acme --industry SaaS --url https://acme.example`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := model.ParseReportType(qType)
		if err != nil {
			return err
		}
		level, err := model.ParseDetailLevel(qLevel)
		if err != nil {
			return err
		}
		if qCompany == "" || qIndustry == "" {
			return fmt.Errorf("--company and --industry are required")
		}

		p := questionPipeline()
		ctx := cmd.Context()

		var website string
		if text, ok := p.Scrape(ctx, qURL); ok {
			website = p.Summarize(ctx, text, qIndustry)
		} else if qURL != "" {
			warn(cmd.ErrOrStderr(), "Could not scrape %s, continuing without website context", qURL)
		}

		qs := p.Questions(ctx, questions.Request{
			CompanyName: qCompany,
			Industry:    qIndustry,
			ReportType:  rt,
			DetailLevel: level,
			Context:     website,
		})
		printQuestions(cmd.OutOrStdout(), qs)
		return nil
	},
}

func printQuestions(w io.Writer, qs []model.Question) {
	banner(w, "Questions")
	for _, q := range qs {
		fmt.Fprintf(w, "%s %s\n", styleBold.Render(fmt.Sprintf("Q%d:", q.ID)), q.Question)
	}
	fmt.Fprintln(w)
}

// questionPipeline falls back to the built-in questions when no provider can be built
func questionPipeline() *pipeline.Pipeline {
	p, err := pipeline.NewFromConfig(appConfig)
	if err == nil {
		return p
	}
	zap.L().Warn("LLM unavailable, using built-in questions", zap.Error(err))
	return pipeline.New(pipeline.Deps{Extractor: scrape.NewExtractor(appConfig.HTTP)})
}

func init() {
	questionsCmd.Flags().StringVar(&qType, "type", string(model.MarketAnalysis), "report type")
	questionsCmd.Flags().StringVar(&qLevel, "level", string(model.Quick), "detail level (quick, detailed)")
	questionsCmd.Flags().StringVar(&qCompany, "company", "", "company name")
	questionsCmd.Flags().StringVar(&qIndustry, "industry", "", "industry sector")
	questionsCmd.Flags().StringVar(&qURL, "url", "", "company website to use as context")
	rootCmd.AddCommand(questionsCmd)
}
