package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/internal/extract"
	"github.com/lesiontrack/lesiontrack/internal/outwriter"
	"github.com/lesiontrack/lesiontrack/schema"
)

// extractCmd extracts measurements from a report or measurement file.
var extractCmd = &cobra.Command{
	Use:   "extract <input-file>...",
	Short: "Extract lesion measurements from medical reports or files.",
	Long: `Extract structured lesion measurements from one or more input files.

Supports free-form report text (.txt, .md) with pt-BR measurement mentions
like "Lesão A: 1,2 cm", as well as structured CSV and JSON files. Millimeter
values are converted to centimeters.

With --save, the extracted measurements are persisted to the record store
under the given --patient, so later runs can analyze the accumulated history.

Examples:
  # Show what a report contains
  lesiontrack extract laudo_2024-01.txt

  # Ingest a whole follow-up series at once
  lesiontrack extract laudos/*.txt --save --patient PAC-001 --patient-name "Maria Silva"

  # Export extracted rows as CSV
  lesiontrack extract laudo_2024-01.txt --output csv --output-file medicoes.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		var records []schema.Measurement
		for _, path := range args {
			warnIncompleteReport(path)

			fileRecords, err := extract.LoadMeasurementFile(path)
			if err != nil {
				contract.LogFatal("Cannot extract measurements", err)
			}
			records = append(records, fileRecords...)
		}
		if len(records) == 0 {
			contract.LogWarn("No lesion measurements found", fmt.Errorf("input: %s", strings.Join(args, ", ")))
			return
		}

		if err := outwriter.WriteMeasurements(cfg, records); err != nil {
			contract.LogFatal("Cannot write measurements", err)
		}

		if cfg.SaveToStore {
			rs := storeManager.GetRecordStore()
			if err := rs.SavePatient(cfg.PatientID, cfg.PatientName); err != nil {
				contract.LogFatal("Cannot save patient", err)
			}
			saved, err := rs.SaveMeasurements(cfg.PatientID, records)
			if err != nil {
				contract.LogFatal("Cannot save measurements", err)
			}
			fmt.Fprintf(os.Stderr, "💾 Saved %d measurement(s) for patient %s\n", saved, cfg.PatientID)
		}
	},
}

// warnIncompleteReport flags report text files that are missing expected
// sections before extraction runs.
func warnIncompleteReport(path string) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".txt" && ext != ".md" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	content := extract.ValidateContent(string(data))
	if desc := extract.DescribeContent(content); desc != "conteúdo completo" {
		contract.LogWarn("Report content incomplete", errors.New(desc))
	}
}
