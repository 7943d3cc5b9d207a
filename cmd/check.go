package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lesiontrack/lesiontrack/core"
	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/internal/outwriter"
)

// checkCmd validates measurement data without running the analysis.
var checkCmd = &cobra.Command{
	Use:   "check [input-file]",
	Short: "Validate measurement data quality.",
	Long: `Validate lesion measurement data and report problems.

Checks for missing exam dates, missing lesion identifiers, non-positive
sizes and values that look like unit errors. Blocking problems are listed
as errors, suspicious ones as warnings.

The command exits non-zero when the data is invalid, so it can gate
ingestion pipelines.

Examples:
  # Validate a measurement file
  lesiontrack check medicoes.csv

  # Validate stored records for a patient
  lesiontrack check --patient PAC-001

  # Machine-readable validation report
  lesiontrack check medicoes.csv --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := loadRecords(cfg)
		if err != nil {
			contract.LogFatal("Cannot load measurements", err)
		}

		report := core.ValidateRecords(records)
		if err := outwriter.NewOutWriter().WriteValidation(report, cfg); err != nil {
			contract.LogFatal("Cannot write validation report", err)
		}
		if !report.Valid {
			fmt.Fprintln(os.Stderr, "❌ Validation failed")
			os.Exit(1)
		}
	},
}
