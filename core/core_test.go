package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lesiontrack/lesiontrack/schema"
)

func TestAnalyzeRecordsPipeline(t *testing.T) {
	records := []schema.Measurement{
		measurement("Lesão A", "2024-01-15", 1.0),
		measurement("Lesao A", "2024-03-20", 1.2),
		measurement("Lesão A", "2024-05-10", 1.5),
	}

	result, err := AnalyzeRecords("PAC-001", records)
	require.NoError(t, err)

	assert.Equal(t, "PAC-001", result.PatientID)
	assert.Equal(t, map[string]string{"Lesao A": "Lesão A"}, result.ResolvedNames)

	// The spelling variants collapse into a single lesion.
	require.Len(t, result.Summaries, 1)
	s := result.Summaries[0]
	assert.Equal(t, "Lesão A", s.LesionID)
	assert.Equal(t, 3, s.MeasurementCount)
	assert.InDelta(t, 50.0, s.TotalVariationPct, 1e-9)
	assert.Equal(t, "Aumentou +50.0%", s.Status)
	assert.Equal(t, schema.TrendGrowth, s.Trend)

	require.Len(t, result.Timeline, 3)
	for _, e := range result.Timeline {
		assert.Equal(t, "Lesão A", e.LesionID)
	}
	assert.Equal(t, 1, result.Aggregate.TotalLesions)
	assert.Equal(t, 1, result.Aggregate.Increasing)
}

func TestAnalyzeRecordsInvalidData(t *testing.T) {
	result, err := AnalyzeRecords("PAC-001", nil)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nenhum registro de medição encontrado")
}
