package core

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lesiontrack/lesiontrack/schema"
)

// Analyzer computes per-lesion evolution and cohort statistics from
// measurements whose lesion names have already been resolved.
type Analyzer struct {
	variationThreshold float64
}

// NewAnalyzer creates an Analyzer with the default stability band.
func NewAnalyzer() *Analyzer {
	return &Analyzer{variationThreshold: schema.VariationThreshold}
}

// Analyze runs the full evolution analysis over the given measurements.
// Records with a zero date or a non-finite size are silently dropped.
func (a *Analyzer) Analyze(records []schema.Measurement) *schema.AnalysisResult {
	valid := coerceRecords(records)
	if len(valid) == 0 {
		return emptyResult()
	}

	// --- 1. Grouping Phase ---
	// Lesions keep their first-appearance order so output is deterministic.
	groups, order := groupByLesion(valid)

	// --- 2. Per-Lesion Summaries ---
	summaries := make([]schema.LesionSummary, 0, len(order))
	for _, id := range order {
		summaries = append(summaries, a.summarizeLesion(id, groups[id]))
	}

	// --- 3. Timeline Phase ---
	timeline := buildTimeline(groups, order)
	annotateOutliers(timeline)

	// --- 4. Aggregation Phase ---
	aggregate := a.aggregateStats(summaries)

	return &schema.AnalysisResult{
		Summaries: summaries,
		Timeline:  timeline,
		Aggregate: aggregate,
		Metadata:  buildMetadata(valid, len(order)),
	}
}

// coerceRecords drops measurements that cannot participate in the analysis.
func coerceRecords(records []schema.Measurement) []schema.Measurement {
	valid := make([]schema.Measurement, 0, len(records))
	for _, rec := range records {
		if rec.ExamDate.IsZero() {
			continue
		}
		if math.IsNaN(rec.SizeCM) || math.IsInf(rec.SizeCM, 0) {
			continue
		}
		valid = append(valid, rec)
	}
	return valid
}

// groupByLesion splits measurements per lesion, each group sorted by exam
// date. The returned order preserves first appearance in the input.
func groupByLesion(records []schema.Measurement) (map[string][]schema.Measurement, []string) {
	groups := make(map[string][]schema.Measurement)
	var order []string
	for _, rec := range records {
		if _, seen := groups[rec.LesionID]; !seen {
			order = append(order, rec.LesionID)
		}
		groups[rec.LesionID] = append(groups[rec.LesionID], rec)
	}
	for id := range groups {
		group := groups[id]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].ExamDate.Before(group[j].ExamDate)
		})
	}
	return groups, order
}

// summarizeLesion computes the first-to-last evolution summary for one lesion.
func (a *Analyzer) summarizeLesion(id string, group []schema.Measurement) schema.LesionSummary {
	first, last := group[0], group[len(group)-1]

	variation := 0.0
	if first.SizeCM > 0 {
		variation = (last.SizeCM - first.SizeCM) / first.SizeCM * 100.0
	}

	maxSize, minSize := group[0].SizeCM, group[0].SizeCM
	for _, rec := range group[1:] {
		maxSize = math.Max(maxSize, rec.SizeCM)
		minSize = math.Min(minSize, rec.SizeCM)
	}

	trend, corr, slope := computeTrend(group)

	return schema.LesionSummary{
		LesionID:          id,
		FirstDate:         first.ExamDate,
		FirstSize:         first.SizeCM,
		LastDate:          last.ExamDate,
		LastSize:          last.SizeCM,
		TotalVariationPct: variation,
		Status:            a.classifyStatus(variation, group),
		MeasurementCount:  len(group),
		MaxSize:           maxSize,
		MinSize:           minSize,
		Trend:             trend,
		Correlation:       corr,
		Slope:             slope,
	}
}

// classifyStatus renders the status label for a lesion given its total
// variation. Reductions that coincide with surgical treatments carry an
// explanatory qualifier.
func (a *Analyzer) classifyStatus(variationPct float64, group []schema.Measurement) string {
	if math.Abs(variationPct) <= a.variationThreshold {
		return fmt.Sprintf("Estável (%+.1f%%)", variationPct)
	}
	if variationPct > 0 {
		return fmt.Sprintf("Aumentou %+.1f%%", variationPct)
	}

	status := fmt.Sprintf("Reduziu %.1f%%", variationPct)
	var treatments []string
	for _, rec := range group {
		treatments = append(treatments, rec.Treatments...)
	}
	if schema.ContainsSurgicalTreatment(treatments) {
		status += " (possível intervenção cirúrgica)"
	}
	return status
}

// buildTimeline produces chronological entries for all lesions with the
// variation against each strictly earlier measurement of the same lesion.
func buildTimeline(groups map[string][]schema.Measurement, order []string) []schema.TimelineEntry {
	var timeline []schema.TimelineEntry
	for _, id := range order {
		group := groups[id]
		for i, rec := range group {
			entry := schema.TimelineEntry{
				LesionID:   id,
				ExamDate:   rec.ExamDate,
				SizeCM:     rec.SizeCM,
				SourceFile: rec.SourceFile,
			}

			// Previous measurement is the latest one strictly before this
			// exam date. Same-day re-measurements never pair with each other.
			prevIdx := -1
			for j := range i {
				if group[j].ExamDate.Before(rec.ExamDate) {
					prevIdx = j
				}
			}
			if prevIdx >= 0 {
				prev := group[prevIdx]
				diff := rec.SizeCM - prev.SizeCM
				entry.VariationCM = &diff
				if prev.SizeCM > 0 {
					pct := diff / prev.SizeCM * 100.0
					entry.VariationPct = &pct
				}
			}
			timeline = append(timeline, entry)
		}
	}
	return timeline
}

// aggregateStats computes cohort-level statistics across lesion summaries.
func (a *Analyzer) aggregateStats(summaries []schema.LesionSummary) schema.AggregateStats {
	stats := schema.AggregateStats{TotalLesions: len(summaries)}
	if len(summaries) == 0 {
		return stats
	}

	sum := 0.0
	maxIncrease, maxDecrease := math.Inf(-1), math.Inf(1)
	for _, s := range summaries {
		sum += s.TotalVariationPct
		switch {
		case s.TotalVariationPct > a.variationThreshold:
			stats.Increasing++
		case s.TotalVariationPct < -a.variationThreshold:
			stats.Decreasing++
		default:
			stats.Stable++
		}
		// First occurrence wins ties, matching summary order.
		if s.TotalVariationPct > maxIncrease {
			maxIncrease = s.TotalVariationPct
			stats.MostIncreased = s.LesionID
		}
		if s.TotalVariationPct < maxDecrease {
			maxDecrease = s.TotalVariationPct
			stats.MostDecreased = s.LesionID
		}
	}

	stats.AvgVariationPct = sum / float64(len(summaries))
	stats.MaxIncreasePct = maxIncrease
	stats.MaxDecreasePct = maxDecrease
	return stats
}

// buildMetadata describes the coerced input set behind an analysis.
func buildMetadata(records []schema.Measurement, totalLesions int) schema.AnalysisMetadata {
	meta := schema.AnalysisMetadata{
		TotalLesions:      totalLesions,
		TotalMeasurements: len(records),
		GeneratedAt:       time.Now(),
	}
	if len(records) > 0 {
		start, end := records[0].ExamDate, records[0].ExamDate
		for _, rec := range records[1:] {
			if rec.ExamDate.Before(start) {
				start = rec.ExamDate
			}
			if rec.ExamDate.After(end) {
				end = rec.ExamDate
			}
		}
		meta.DateRange = &schema.DateRange{Start: start, End: end}
	}
	return meta
}

// emptyResult is the analysis of an empty input set.
func emptyResult() *schema.AnalysisResult {
	return &schema.AnalysisResult{
		Summaries: []schema.LesionSummary{},
		Timeline:  []schema.TimelineEntry{},
		Aggregate: schema.AggregateStats{},
		Metadata:  schema.AnalysisMetadata{GeneratedAt: time.Now()},
	}
}
