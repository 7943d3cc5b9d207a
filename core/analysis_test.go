package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lesiontrack/lesiontrack/schema"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func measurement(id string, date string, size float64) schema.Measurement {
	return schema.Measurement{LesionID: id, ExamDate: day(date), SizeCM: size}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	result := NewAnalyzer().Analyze(nil)

	require.NotNil(t, result)
	assert.Empty(t, result.Summaries)
	assert.Empty(t, result.Timeline)
	assert.Equal(t, 0, result.Aggregate.TotalLesions)
	assert.Nil(t, result.Metadata.DateRange)
}

func TestAnalyzeVariationArithmetic(t *testing.T) {
	records := []schema.Measurement{
		measurement("Lesão A", "2024-01-01", 1.0),
		measurement("Lesão A", "2024-06-01", 1.5),
	}

	result := NewAnalyzer().Analyze(records)

	require.Len(t, result.Summaries, 1)
	s := result.Summaries[0]
	assert.Equal(t, "Lesão A", s.LesionID)
	assert.InDelta(t, 50.0, s.TotalVariationPct, 1e-9)
	assert.Equal(t, "Aumentou +50.0%", s.Status)
	assert.Equal(t, 1.0, s.FirstSize)
	assert.Equal(t, 1.5, s.LastSize)
	assert.Equal(t, 2, s.MeasurementCount)
	assert.Equal(t, 1.5, s.MaxSize)
	assert.Equal(t, 1.0, s.MinSize)
}

func TestAnalyzeZeroFirstSizeGuard(t *testing.T) {
	records := []schema.Measurement{
		measurement("Lesão A", "2024-01-01", 0.0),
		measurement("Lesão A", "2024-06-01", 2.0),
	}

	result := NewAnalyzer().Analyze(records)

	require.Len(t, result.Summaries, 1)
	assert.Equal(t, 0.0, result.Summaries[0].TotalVariationPct)
	assert.Equal(t, "Estável (+0.0%)", result.Summaries[0].Status)
}

func TestClassifyStatusBoundary(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		name      string
		variation float64
		expected  string
	}{
		{"exact positive threshold is stable", 10.0, "Estável (+10.0%)"},
		{"exact negative threshold is stable", -10.0, "Estável (-10.0%)"},
		{"just above threshold increases", 10.1, "Aumentou +10.1%"},
		{"just below threshold reduces", -10.1, "Reduziu -10.1%"},
		{"reduction keeps the signed value", -25.0, "Reduziu -25.0%"},
		{"zero is stable", 0.0, "Estável (+0.0%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, analyzer.classifyStatus(tt.variation, nil))
		})
	}
}

func TestClassifyStatusSurgicalQualifier(t *testing.T) {
	analyzer := NewAnalyzer()
	group := []schema.Measurement{
		{LesionID: "Lesão A", ExamDate: day("2024-01-01"), SizeCM: 2.0},
		{LesionID: "Lesão A", ExamDate: day("2024-06-01"), SizeCM: 1.0, Treatments: []string{"Cirurgia"}},
	}

	status := analyzer.classifyStatus(-50.0, group)
	assert.Equal(t, "Reduziu -50.0% (possível intervenção cirúrgica)", status)

	// Non-surgical treatments do not add the qualifier.
	group[1].Treatments = []string{"Quimioterapia"}
	assert.Equal(t, "Reduziu -50.0%", analyzer.classifyStatus(-50.0, group))
}

func TestAnalyzeTimelineVariations(t *testing.T) {
	records := []schema.Measurement{
		measurement("Lesão A", "2024-01-01", 1.0),
		measurement("Lesão A", "2024-03-01", 2.0),
		measurement("Lesão A", "2024-06-01", 3.0),
	}

	result := NewAnalyzer().Analyze(records)

	require.Len(t, result.Timeline, 3)
	assert.Nil(t, result.Timeline[0].VariationCM)
	assert.Nil(t, result.Timeline[0].VariationPct)

	require.NotNil(t, result.Timeline[1].VariationCM)
	assert.InDelta(t, 1.0, *result.Timeline[1].VariationCM, 1e-9)
	require.NotNil(t, result.Timeline[1].VariationPct)
	assert.InDelta(t, 100.0, *result.Timeline[1].VariationPct, 1e-9)

	require.NotNil(t, result.Timeline[2].VariationCM)
	assert.InDelta(t, 1.0, *result.Timeline[2].VariationCM, 1e-9)
	require.NotNil(t, result.Timeline[2].VariationPct)
	assert.InDelta(t, 50.0, *result.Timeline[2].VariationPct, 1e-9)
}

func TestAnalyzeTimelineDuplicateDates(t *testing.T) {
	records := []schema.Measurement{
		measurement("Lesão A", "2024-01-01", 1.0),
		measurement("Lesão A", "2024-01-01", 2.0),
		measurement("Lesão A", "2024-06-01", 3.0),
	}

	result := NewAnalyzer().Analyze(records)
	require.Len(t, result.Timeline, 3)

	// Same-day re-measurements never pair with each other.
	assert.Nil(t, result.Timeline[0].VariationCM)
	assert.Nil(t, result.Timeline[1].VariationCM)

	// The later exam compares against the latest strictly earlier record.
	require.NotNil(t, result.Timeline[2].VariationCM)
	assert.InDelta(t, 1.0, *result.Timeline[2].VariationCM, 1e-9)
	require.NotNil(t, result.Timeline[2].VariationPct)
	assert.InDelta(t, 50.0, *result.Timeline[2].VariationPct, 1e-9)
}

func TestAnalyzeAggregateStats(t *testing.T) {
	records := []schema.Measurement{
		measurement("Lesão A", "2024-01-01", 1.0),
		measurement("Lesão A", "2024-06-01", 1.5),
		measurement("Nódulo B", "2024-01-01", 2.0),
		measurement("Nódulo B", "2024-06-01", 1.0),
		measurement("Metástase C", "2024-01-01", 1.0),
		measurement("Metástase C", "2024-06-01", 1.0),
	}

	result := NewAnalyzer().Analyze(records)
	agg := result.Aggregate

	assert.Equal(t, 3, agg.TotalLesions)
	assert.Equal(t, 1, agg.Increasing)
	assert.Equal(t, 1, agg.Decreasing)
	assert.Equal(t, 1, agg.Stable)
	assert.InDelta(t, 0.0, agg.AvgVariationPct, 1e-9)
	assert.InDelta(t, 50.0, agg.MaxIncreasePct, 1e-9)
	assert.InDelta(t, -50.0, agg.MaxDecreasePct, 1e-9)
	assert.Equal(t, "Lesão A", agg.MostIncreased)
	assert.Equal(t, "Nódulo B", agg.MostDecreased)
}

func TestAnalyzeCoercesInvalidRecords(t *testing.T) {
	records := []schema.Measurement{
		measurement("Lesão A", "2024-01-01", 1.0),
		{LesionID: "Lesão A", SizeCM: 2.0}, // zero exam date
		measurement("Lesão A", "2024-06-01", 1.5),
	}

	result := NewAnalyzer().Analyze(records)

	assert.Equal(t, 2, result.Metadata.TotalMeasurements)
	require.Len(t, result.Summaries, 1)
	assert.Equal(t, 2, result.Summaries[0].MeasurementCount)
}

func TestAnalyzeMetadataDateRange(t *testing.T) {
	records := []schema.Measurement{
		measurement("Lesão A", "2024-06-01", 1.5),
		measurement("Lesão A", "2024-01-01", 1.0),
		measurement("Nódulo B", "2024-03-01", 2.0),
	}

	result := NewAnalyzer().Analyze(records)

	require.NotNil(t, result.Metadata.DateRange)
	assert.Equal(t, day("2024-01-01"), result.Metadata.DateRange.Start)
	assert.Equal(t, day("2024-06-01"), result.Metadata.DateRange.End)
	assert.Equal(t, 2, result.Metadata.TotalLesions)
	assert.Equal(t, 3, result.Metadata.TotalMeasurements)
	assert.False(t, result.Metadata.GeneratedAt.IsZero())
}

func TestResolveMeasurements(t *testing.T) {
	records := []schema.Measurement{
		measurement("Lesão A", "2024-01-01", 1.0),
		measurement("lesao a", "2024-06-01", 1.5),
		measurement("Nódulo X", "2024-01-01", 2.0),
	}

	resolved := ResolveMeasurements(records)

	require.Len(t, resolved.Records, 3)
	assert.Equal(t, "Lesão A", resolved.Records[0].LesionID)
	assert.Equal(t, "Lesão A", resolved.Records[1].LesionID)
	assert.Equal(t, "Nódulo X", resolved.Records[2].LesionID)
	assert.Equal(t, map[string]string{"lesao a": "Lesão A"}, resolved.Renamed)

	// Input is never mutated.
	assert.Equal(t, "lesao a", records[1].LesionID)
}
