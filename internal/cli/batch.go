package cli

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/varunisrani/marketscope/internal/pipeline"
	"github.com/varunisrani/marketscope/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Generate reports for many companies in parallel",
	Long: `Batch generates one report per company listed in a YAML file.
Questions are generated but left unanswered.

File format:
  defaults:
    industry: SaaS
    report_type: market_analysis
  companies:
    - company_name: Acme Corp
      website: https://acme.example
    - company_name: Globex
      report_type: icp_report
      inputs:
        business_model: b2b
        target_market: europe
        company_size: medium
        annual_revenue: 1m_10m

Example:
  marketscope batch companies.yaml
  marketscope batch companies.yaml --concurrency 4 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory for reports (default from config)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 60*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	out := cmd.ErrOrStderr()

	if outputDir != "" {
		appConfig.Reports.Dir = outputDir
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	banner(out, "MarketScope Batch Processing")
	field(out, "Input file", file)
	field(out, "Workers", fmt.Sprint(concurrency))
	field(out, "Output dir", appConfig.Reports.Dir)
	field(out, "Timeout", batchTimeout.String())
	field(out, "LLM", appConfig.LLM.Provider+"/"+appConfig.LLM.Model)
	fmt.Fprintln(out)

	p, err := pipeline.NewFromConfig(appConfig)
	if err != nil {
		return err
	}

	entries, err := worker.ReadBatchFile(file)
	if err != nil {
		return err
	}
	success(out, "Loaded %d companies", len(entries))
	fmt.Fprintln(out)

	start := time.Now()
	results := worker.NewBatchProcessor(p, concurrency).Process(ctx, entries)

	for _, r := range results {
		if r.Error != nil {
			failure(out, "%s", r.Describe())
		} else {
			success(out, "%s", r.Describe())
		}
	}

	ok, failed := worker.Summary(results)
	banner(out, "Batch Complete")
	field(out, "Total", fmt.Sprintf("%d companies", len(results)))
	field(out, "Success", fmt.Sprint(ok))
	field(out, "Failures", fmt.Sprint(failed))
	field(out, "Elapsed", time.Since(start).Round(time.Second).String())
	field(out, "Output", appConfig.Reports.Dir)
	fmt.Fprintln(out)

	if failed > 0 && ok == 0 {
		return fmt.Errorf("all %d reports failed", failed)
	}
	return nil
}
