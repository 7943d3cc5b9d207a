package core

import (
	"fmt"
	"math"

	"github.com/lesiontrack/lesiontrack/schema"
)

// suspectSizeCM marks sizes that are implausibly large for a single lesion
// and usually indicate a unit mix-up (millimeters recorded as centimeters).
const suspectSizeCM = 50.0

// annotateOutliers flags statistically suspicious sizes per lesion in a
// timeline that is already grouped contiguously by lesion.
func annotateOutliers(timeline []schema.TimelineEntry) {
	start := 0
	for start < len(timeline) {
		end := start
		for end < len(timeline) && timeline[end].LesionID == timeline[start].LesionID {
			end++
		}
		sizes := make([]float64, 0, end-start)
		for _, entry := range timeline[start:end] {
			sizes = append(sizes, entry.SizeCM)
		}
		for i, flag := range detectOutliers(sizes) {
			timeline[start+i].Outlier = flag
		}
		start = end
	}
}

// ValidateRecords inspects measurements before analysis and reports
// blocking errors and non-blocking warnings.
func ValidateRecords(records []schema.Measurement) schema.ValidationReport {
	report := schema.ValidationReport{Valid: true}

	if len(records) == 0 {
		report.Valid = false
		report.Errors = append(report.Errors, "nenhum registro de medição encontrado")
		return report
	}

	seen := make(map[string]struct{})
	var missingIDs, missingDates, invalidSizes, suspectSizes int
	var span *schema.DateRange

	for _, rec := range records {
		if rec.LesionID == "" {
			missingIDs++
		} else {
			seen[rec.LesionID] = struct{}{}
		}
		if rec.ExamDate.IsZero() {
			missingDates++
		} else if span == nil {
			span = &schema.DateRange{Start: rec.ExamDate, End: rec.ExamDate}
		} else {
			if rec.ExamDate.Before(span.Start) {
				span.Start = rec.ExamDate
			}
			if rec.ExamDate.After(span.End) {
				span.End = rec.ExamDate
			}
		}
		if math.IsNaN(rec.SizeCM) || math.IsInf(rec.SizeCM, 0) || rec.SizeCM <= 0 {
			invalidSizes++
		} else if rec.SizeCM > suspectSizeCM {
			suspectSizes++
		}
	}

	if missingDates > 0 {
		report.Valid = false
		report.Errors = append(report.Errors, fmt.Sprintf("%d registro(s) sem data de exame", missingDates))
	}
	if missingIDs > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("%d registro(s) sem identificação da lesão", missingIDs))
	}
	if invalidSizes > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("%d registro(s) com tamanho inválido", invalidSizes))
	}
	if suspectSizes > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("%d registro(s) com tamanho acima de %.0f cm (possível erro de unidade)", suspectSizes, suspectSizeCM))
	}

	report.Summary = schema.ValidationSummary{
		TotalRecords:  len(records),
		UniqueLesions: len(seen),
		InvalidSizes:  invalidSizes,
		MissingDates:  missingDates,
		SuspectSizes:  suspectSizes,
		DateRange:     span,
	}
	return report
}
