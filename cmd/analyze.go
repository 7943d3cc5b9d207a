package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lesiontrack/lesiontrack/core"
	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/internal/extract"
	"github.com/lesiontrack/lesiontrack/schema"
)

// analyzeCmd runs the lesion evolution analysis.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [input-file]",
	Short: "Analyze the size evolution of lesions across exams.",
	Long: `Analyze lesion measurements and show how each lesion evolved over time.

Reads measurements from a CSV/JSON file, a medical report text file, or the
record store when --patient is given without an input file. Lesion names
written inconsistently across exams (accents, casing, roman numerals) are
unified before analysis.

For each lesion you get first/last sizes, total variation, a growth status
and, with --detail, the full measurement timeline with outlier flags and a
linear trend classification.

Examples:
  # Analyze a measurement file
  lesiontrack analyze medicoes.csv

  # Include the per-measurement timeline
  lesiontrack analyze medicoes.csv --detail

  # Analyze stored records for a patient
  lesiontrack analyze --patient PAC-001

  # Export findings to CSV for tracking
  lesiontrack analyze medicoes.csv --output csv --output-file evolucao.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := loadRecords(cfg)
		if err != nil {
			contract.LogFatal("Cannot load measurements", err)
		}

		result, err := core.ExecuteEvolution(cfg, records)
		if err != nil {
			contract.LogFatal("Cannot run evolution analysis", err)
		}

		saveSession(result)
	},
}

// loadRecords reads measurements from the input file, falling back to the
// record store when only a patient is given.
func loadRecords(cfg *contract.Config) ([]schema.Measurement, error) {
	var records []schema.Measurement
	var err error

	switch {
	case cfg.InputFile != "":
		records, err = extract.LoadMeasurementFile(cfg.InputFile)
	case cfg.PatientID != "":
		records, err = storeManager.GetRecordStore().LoadMeasurements(cfg.PatientID)
	default:
		return nil, fmt.Errorf("an input file or --patient is required")
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no measurements found")
	}
	return records, nil
}

// saveSession persists the analysis result when a patient is set and the
// store is enabled. Failures only warn so output is never lost.
func saveSession(result *schema.AnalysisResult) {
	if cfg.PatientID == "" || cfg.StoreBackend == schema.NoneBackend {
		return
	}
	if err := storeManager.GetRecordStore().SaveSession(cfg.PatientID, result); err != nil {
		contract.LogWarn("Could not save analysis session", err)
	}
}
