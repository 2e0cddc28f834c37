package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/varunisrani/marketscope/internal/report"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List and read generated reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated reports, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		listings, err := report.NewStore(".", appConfig.Reports.Dir).List()
		if err != nil {
			return err
		}
		if len(listings) == 0 {
			fmt.Fprintln(out, styleMuted.Render("No reports found."))
			return nil
		}
		for _, l := range listings {
			fmt.Fprintf(out, "%s  %-20s %-20s %s\n",
				styleMuted.Render(l.Timestamp), l.CompanyName, l.ReportType, l.Filename)
		}
		return nil
	},
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <filename>",
	Short: "Print a report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := report.NewStore(".", appConfig.Reports.Dir).Read(args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)
}
