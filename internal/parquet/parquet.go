// Package parquet provides data structures and functions for exporting
// lesion evolution data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/lesiontrack/lesiontrack/schema"
)

// LesionSummaryRow represents one per-lesion evolution summary.
// This struct maps to the lesion_summaries analytical table.
type LesionSummaryRow struct {
	// PatientID identifies the patient the summary belongs to (nullable)
	PatientID *string `parquet:"patient_id,optional,snappy"`

	// LesionID is the canonical lesion identity
	LesionID string `parquet:"lesion_id,snappy"`

	// FirstDate is the earliest exam date (stored as TIMESTAMP with nanosecond precision)
	FirstDate time.Time `parquet:"first_date,snappy"`

	// FirstSizeCM is the size measured on the earliest exam
	FirstSizeCM float64 `parquet:"first_size_cm,snappy"`

	// LastDate is the most recent exam date
	LastDate time.Time `parquet:"last_date,snappy"`

	// LastSizeCM is the size measured on the most recent exam
	LastSizeCM float64 `parquet:"last_size_cm,snappy"`

	// TotalVariationPct is the first-to-last percentage variation
	TotalVariationPct float64 `parquet:"total_variation_pct,snappy"`

	// Status is the human-readable evolution label
	Status string `parquet:"status,snappy"`

	// MeasurementCount is the number of measurements behind this summary
	MeasurementCount int32 `parquet:"measurement_count,snappy"`

	// MaxSizeCM is the largest observed size
	MaxSizeCM float64 `parquet:"max_size_cm,snappy"`

	// MinSizeCM is the smallest observed size
	MinSizeCM float64 `parquet:"min_size_cm,snappy"`

	// Trend is the regression-based trend classification
	Trend string `parquet:"trend,snappy"`

	// Correlation is the date-size Pearson correlation
	Correlation float64 `parquet:"correlation,snappy"`

	// SlopeCMPerDay is the least-squares slope in centimeters per day
	SlopeCMPerDay float64 `parquet:"slope_cm_per_day,snappy"`
}

// TimelineRow represents one chronological measurement entry.
// This struct maps to the lesion_timeline analytical table.
type TimelineRow struct {
	// PatientID identifies the patient the entry belongs to (nullable)
	PatientID *string `parquet:"patient_id,optional,snappy"`

	// LesionID is the canonical lesion identity
	LesionID string `parquet:"lesion_id,snappy"`

	// ExamDate is when the measurement was taken
	ExamDate time.Time `parquet:"exam_date,snappy"`

	// SizeCM is the measured size in centimeters
	SizeCM float64 `parquet:"size_cm,snappy"`

	// VariationCM is the absolute change against the previous exam (nullable)
	VariationCM *float64 `parquet:"variation_cm,optional,snappy"`

	// VariationPct is the percentage change against the previous exam (nullable)
	VariationPct *float64 `parquet:"variation_pct,optional,snappy"`

	// Outlier marks statistically suspicious measurements
	Outlier bool `parquet:"outlier,snappy"`

	// SourceFile records where the measurement was extracted from (nullable)
	SourceFile *string `parquet:"source_file,optional,snappy"`
}

// FromSummaries converts an analysis result's summaries to parquet rows.
func FromSummaries(result *schema.AnalysisResult) []LesionSummaryRow {
	rows := make([]LesionSummaryRow, len(result.Summaries))
	for i, s := range result.Summaries {
		rows[i] = LesionSummaryRow{
			PatientID:         optionalString(result.PatientID),
			LesionID:          s.LesionID,
			FirstDate:         s.FirstDate,
			FirstSizeCM:       s.FirstSize,
			LastDate:          s.LastDate,
			LastSizeCM:        s.LastSize,
			TotalVariationPct: s.TotalVariationPct,
			Status:            s.Status,
			MeasurementCount:  int32(s.MeasurementCount),
			MaxSizeCM:         s.MaxSize,
			MinSizeCM:         s.MinSize,
			Trend:             string(s.Trend),
			Correlation:       s.Correlation,
			SlopeCMPerDay:     s.Slope,
		}
	}
	return rows
}

// FromTimeline converts an analysis result's timeline to parquet rows.
func FromTimeline(result *schema.AnalysisResult) []TimelineRow {
	rows := make([]TimelineRow, len(result.Timeline))
	for i, e := range result.Timeline {
		rows[i] = TimelineRow{
			PatientID:    optionalString(result.PatientID),
			LesionID:     e.LesionID,
			ExamDate:     e.ExamDate,
			SizeCM:       e.SizeCM,
			VariationCM:  e.VariationCM,
			VariationPct: e.VariationPct,
			Outlier:      e.Outlier,
			SourceFile:   optionalString(e.SourceFile),
		}
	}
	return rows
}

// WriteSummariesParquet writes a slice of LesionSummaryRow structs to a Parquet file.
func WriteSummariesParquet(data []LesionSummaryRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the LesionSummaryRow struct tags
	writer := parquet.NewGenericWriter[LesionSummaryRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteTimelineParquet writes a slice of TimelineRow structs to a Parquet file.
func WriteTimelineParquet(data []TimelineRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the TimelineRow struct tags
	writer := parquet.NewGenericWriter[TimelineRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
