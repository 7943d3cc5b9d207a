package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `LAUDO DE RESSONÂNCIA MAGNÉTICA
Data do Exame: 15/01/2024

Lesão A: 1,2 cm no lobo superior direito.
Nódulo B: 8 mm junto ao hilo.
Paciente em quimioterapia desde dezembro.
`

func TestExtractRecords(t *testing.T) {
	records, err := ExtractRecords(sampleReport, "laudo_jan.txt")
	require.NoError(t, err)
	require.Len(t, records, 2)

	examDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Lesão A", records[0].LesionID)
	assert.Equal(t, examDate, records[0].ExamDate)
	assert.InDelta(t, 1.2, records[0].SizeCM, 1e-9)
	assert.Equal(t, []string{"Quimioterapia"}, records[0].Treatments)
	assert.Equal(t, "laudo_jan.txt", records[0].SourceFile)

	// Millimeter measurements are normalized to centimeters.
	assert.Equal(t, "Nódulo B", records[1].LesionID)
	assert.InDelta(t, 0.8, records[1].SizeCM, 1e-9)
}

func TestExtractRecordsMissingDateIsHardFailure(t *testing.T) {
	_, err := ExtractRecords("Lesão A: 1,2 cm", "laudo.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoExamDate)
}

func TestExtractRecordsNoLesionsIsSoftResult(t *testing.T) {
	records, err := ExtractRecords("Data do Exame: 15/01/2024\nSem achados significativos.", "laudo.txt")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExtractRecordsDateFormats(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected time.Time
	}{
		{
			name:     "labeled brazilian date",
			text:     "Data: 20/03/2024\nLesão A: 1,0 cm",
			expected: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "bare iso date",
			text:     "Exame realizado em 2024-05-10.\nLesão A: 1,0 cm",
			expected: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "portuguese long form",
			text:     "Data do exame: 10 de maio de 2024\nLesão A: 1,0 cm",
			expected: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ExtractRecords(tt.text, "laudo.txt")
			require.NoError(t, err)
			require.NotEmpty(t, records)
			assert.Equal(t, tt.expected, records[0].ExamDate)
		})
	}
}

func TestExtractRecordsDeduplicatesByIdentifier(t *testing.T) {
	text := `Data do Exame: 15/01/2024
Lesão A: 1,2 cm na primeira sequência.
Lesão A: 1,3 cm na sequência tardia.`

	records, err := ExtractRecords(text, "laudo.txt")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 1.2, records[0].SizeCM, 1e-9)
}

func TestExtractRecordsGenericFallback(t *testing.T) {
	text := "Data do Exame: 15/01/2024\nmedida hepática: 3,1 cm"

	records, err := ExtractRecords(text, "laudo.txt")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Medida Hepática", records[0].LesionID)
	assert.InDelta(t, 3.1, records[0].SizeCM, 1e-9)
}

func TestExtractTreatments(t *testing.T) {
	treatments := ExtractTreatments("Paciente submetido a ressecção cirúrgica seguida de radioterapia.")
	assert.Contains(t, treatments, "Ressecção")
	assert.Contains(t, treatments, "Radioterapia")
	// "cirúrgica" is not the keyword "cirurgia"
	assert.NotContains(t, treatments, "Cirurgia")
}

func TestValidateContent(t *testing.T) {
	content := ValidateContent(sampleReport)
	assert.True(t, content.HasDate)
	assert.True(t, content.HasLesions)
	assert.True(t, content.HasMeasurements)
	assert.True(t, content.IsMedicalReport)

	empty := ValidateContent("texto sem relação alguma com medicina")
	assert.False(t, empty.HasDate)
	assert.False(t, empty.HasLesions)
	assert.False(t, empty.IsMedicalReport)
}

func TestDescribeContent(t *testing.T) {
	full := ValidateContent(sampleReport)
	assert.Equal(t, "conteúdo completo", DescribeContent(full))

	partial := ValidateContent("Lesão A: 1,2 cm")
	assert.Contains(t, DescribeContent(partial), "data do exame")
}
