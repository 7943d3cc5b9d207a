package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lesiontrack/lesiontrack/core"
	"github.com/lesiontrack/lesiontrack/internal/contract"
)

// reportCmd produces the executive evolution report.
var reportCmd = &cobra.Command{
	Use:   "report [input-file]",
	Short: "Generate an executive lesion evolution report.",
	Long: `Generate a narrative report of the evolution analysis.

Runs the same pipeline as 'analyze' but renders an executive text report
with a cohort summary and a per-lesion detail section, suitable for
clinical review. JSON output contains the full analysis result.

Examples:
  # Report from a measurement file
  lesiontrack report medicoes.csv

  # Report from stored patient records
  lesiontrack report --patient PAC-001

  # Write the report to a file
  lesiontrack report medicoes.csv --output-file relatorio.txt`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := loadRecords(cfg)
		if err != nil {
			contract.LogFatal("Cannot load measurements", err)
		}

		result, err := core.ExecuteReport(cfg, records)
		if err != nil {
			contract.LogFatal("Cannot generate report", err)
		}

		saveSession(result)
	},
}
