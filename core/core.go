// Package core implements lesion identity resolution and evolution analysis.
package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/internal/outwriter"
	"github.com/lesiontrack/lesiontrack/schema"
)

// writer renders analysis output in the configured format.
var writer = outwriter.NewOutWriter()

// AnalyzeRecords runs validation, name resolution and evolution analysis
// without writing any output. Callers decide how to render or persist the
// result.
func AnalyzeRecords(patientID string, records []schema.Measurement) (*schema.AnalysisResult, error) {
	report := ValidateRecords(records)
	if !report.Valid {
		return nil, fmt.Errorf("invalid measurement data: %s", strings.Join(report.Errors, "; "))
	}
	for _, w := range report.Warnings {
		contract.LogWarn("Measurement data", errors.New(w))
	}

	resolved := ResolveMeasurements(records)

	result := NewAnalyzer().Analyze(resolved.Records)
	result.PatientID = patientID
	if len(resolved.Renamed) > 0 {
		result.ResolvedNames = resolved.Renamed
	}
	return result, nil
}

// ExecuteEvolution runs the full analysis pipeline over a set of
// measurements and writes the result in the configured output mode. The
// result is returned so callers can persist the session.
func ExecuteEvolution(cfg *contract.Config, records []schema.Measurement) (*schema.AnalysisResult, error) {
	result, err := AnalyzeRecords(cfg.PatientID, records)
	if err != nil {
		return nil, err
	}
	if err := writer.WriteAnalysis(result, cfg); err != nil {
		return nil, err
	}
	return result, nil
}

// ExecuteReport runs the analysis pipeline and writes the executive text
// report instead of the tabular output.
func ExecuteReport(cfg *contract.Config, records []schema.Measurement) (*schema.AnalysisResult, error) {
	result, err := AnalyzeRecords(cfg.PatientID, records)
	if err != nil {
		return nil, err
	}
	if err := writer.WriteReport(result, cfg); err != nil {
		return nil, err
	}
	return result, nil
}

// ResolvedMeasurements pairs measurements rewritten to canonical lesion
// names with the mapping of names that actually changed.
type ResolvedMeasurements struct {
	Records []schema.Measurement
	Renamed map[string]string
}

// ResolveMeasurements unifies inconsistently written lesion names across
// measurements. Only names that differ from their canonical form appear in
// Renamed.
func ResolveMeasurements(records []schema.Measurement) ResolvedMeasurements {
	names := make([]string, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.LesionID]; dup {
			continue
		}
		seen[r.LesionID] = struct{}{}
		names = append(names, r.LesionID)
	}

	mapping := NewResolver().Resolve(names)

	renamed := make(map[string]string)
	out := make([]schema.Measurement, len(records))
	for i, r := range records {
		out[i] = r
		if canonical, ok := mapping[r.LesionID]; ok && canonical != r.LesionID {
			out[i].LesionID = canonical
			renamed[r.LesionID] = canonical
		}
	}
	return ResolvedMeasurements{Records: out, Renamed: renamed}
}
