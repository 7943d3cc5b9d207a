package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lesiontrack/lesiontrack/core"
	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/internal/synth"
)

// demoCmd runs the analysis over a generated dataset.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the evolution analysis over a demonstration dataset.",
	Long: `Run the full analysis pipeline over generated measurements.

Without flags a small curated dataset is used, showing growth, reduction
and an interrupted follow-up. With --lesions, --exams or --seed, a
synthetic dataset with mixed growth patterns is generated instead. The
same seed always produces the same dataset.

Examples:
  # The curated showcase dataset
  lesiontrack demo --detail

  # A reproducible synthetic cohort
  lesiontrack demo --lesions 10 --exams 8 --seed 42`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records := synth.DemoRecords(cfg)
		if _, err := core.ExecuteEvolution(cfg, records); err != nil {
			contract.LogFatal("Cannot run demo analysis", err)
		}
	},
}
