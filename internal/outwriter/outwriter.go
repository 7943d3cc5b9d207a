// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAnalysis prints evolution analysis results using the configured output format.
func (ow *OutWriter) WriteAnalysis(result *schema.AnalysisResult, cfg *contract.Config) error {
	return WriteAnalysis(cfg, result)
}

// WriteReport prints the executive evolution report.
func (ow *OutWriter) WriteReport(result *schema.AnalysisResult, cfg *contract.Config) error {
	return WriteReport(cfg, result)
}

// WriteValidation prints a validation report for inspected measurements.
func (ow *OutWriter) WriteValidation(report schema.ValidationReport, cfg *contract.Config) error {
	return WriteValidation(cfg, report)
}
