package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lesiontrack/lesiontrack/schema"
)

func TestValidateRecordsEmpty(t *testing.T) {
	report := ValidateRecords(nil)

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "nenhum registro")
}

func TestValidateRecordsMissingDateIsBlocking(t *testing.T) {
	records := []schema.Measurement{
		measurement("Lesão A", "2024-01-01", 1.0),
		{LesionID: "Lesão A", SizeCM: 2.0},
	}

	report := ValidateRecords(records)

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "1 registro(s) sem data de exame", report.Errors[0])
	assert.Equal(t, 1, report.Summary.MissingDates)
}

func TestValidateRecordsWarnings(t *testing.T) {
	records := []schema.Measurement{
		measurement("Lesão A", "2024-01-01", 1.0),
		measurement("", "2024-02-01", 1.5),
		measurement("Lesão A", "2024-03-01", -2.0),
		measurement("Lesão A", "2024-03-15", 0.0),
		measurement("Nódulo B", "2024-04-01", 120.0),
		measurement("Lesão A", "2024-05-01", math.NaN()),
	}

	report := ValidateRecords(records)

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	require.Len(t, report.Warnings, 3)
	assert.Contains(t, report.Warnings[0], "sem identificação")
	assert.Contains(t, report.Warnings[1], "tamanho inválido")
	assert.Contains(t, report.Warnings[2], "possível erro de unidade")

	assert.Equal(t, 6, report.Summary.TotalRecords)
	assert.Equal(t, 2, report.Summary.UniqueLesions)
	assert.Equal(t, 3, report.Summary.InvalidSizes)
	assert.Equal(t, 1, report.Summary.SuspectSizes)
}

func TestValidateRecordsDateRange(t *testing.T) {
	records := []schema.Measurement{
		measurement("Lesão A", "2024-05-01", 1.0),
		measurement("Lesão A", "2024-01-01", 1.2),
		measurement("Lesão A", "2024-03-01", 1.4),
	}

	report := ValidateRecords(records)

	assert.True(t, report.Valid)
	require.NotNil(t, report.Summary.DateRange)
	assert.Equal(t, day("2024-01-01"), report.Summary.DateRange.Start)
	assert.Equal(t, day("2024-05-01"), report.Summary.DateRange.End)
}
