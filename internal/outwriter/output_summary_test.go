package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/schema"
)

func testResult() *schema.AnalysisResult {
	varCM := 0.5
	varPct := 41.7
	first := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 7, 25, 0, 0, 0, 0, time.UTC)

	return &schema.AnalysisResult{
		PatientID: "PAC-001",
		Summaries: []schema.LesionSummary{
			{
				LesionID:          "Lesão A",
				FirstDate:         first,
				FirstSize:         1.2,
				LastDate:          last,
				LastSize:          1.7,
				TotalVariationPct: 41.7,
				Status:            "Aumentou +41.7%",
				MeasurementCount:  2,
				MaxSize:           1.7,
				MinSize:           1.2,
				Trend:             schema.TrendGrowth,
				Correlation:       1.0,
			},
		},
		Timeline: []schema.TimelineEntry{
			{LesionID: "Lesão A", ExamDate: first, SizeCM: 1.2},
			{LesionID: "Lesão A", ExamDate: last, SizeCM: 1.7, VariationCM: &varCM, VariationPct: &varPct},
		},
		Aggregate: schema.AggregateStats{
			TotalLesions:    1,
			Increasing:      1,
			AvgVariationPct: 41.7,
			MaxIncreasePct:  41.7,
			MaxDecreasePct:  41.7,
			MostIncreased:   "Lesão A",
		},
		Metadata: schema.AnalysisMetadata{
			TotalLesions:      1,
			TotalMeasurements: 2,
			DateRange:         &schema.DateRange{Start: first, End: last},
			GeneratedAt:       time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC),
		},
		ResolvedNames: map[string]string{"lesao a": "Lesão A"},
	}
}

func testConfig() *contract.Config {
	return &contract.Config{
		Precision: 1,
		Output:    schema.TextOut,
		Width:     120,
	}
}

func TestWriteAnalysisText(t *testing.T) {
	cfg := testConfig()
	fmtFloat, fmtPct := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeAnalysisText(testResult(), cfg, fmtFloat, fmtPct, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Lesão A")
	assert.Contains(t, out, "15/01/2024")
	assert.Contains(t, out, "25/07/2024")
	assert.Contains(t, out, "+41.7%")
	assert.Contains(t, out, "Total de lesões: 1")
	assert.Contains(t, out, "Nome unificado")
}

func TestWriteAnalysisTextWithDetail(t *testing.T) {
	cfg := testConfig()
	cfg.Detail = true
	fmtFloat, fmtPct := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeAnalysisText(testResult(), cfg, fmtFloat, fmtPct, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Variação (cm)")
	assert.Contains(t, out, "Primeira medição")
	assert.Contains(t, out, string(schema.TrendGrowth))
}

func TestWriteSummaryCSV(t *testing.T) {
	fmtFloat, _ := createFormatters(1)

	var buf bytes.Buffer
	err := writeSummaryCSV(&buf, testResult().Summaries, fmtFloat)
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "lesao_id", rows[0][0])
	assert.Equal(t, "Lesão A", rows[1][0])
	assert.Equal(t, "2024-01-15", rows[1][1])
	assert.Equal(t, "1.2", rows[1][2])
	assert.Equal(t, "Aumentou +41.7%", rows[1][6])
	assert.Equal(t, string(schema.TrendGrowth), rows[1][10])
}

func TestWriteTimelineCSV(t *testing.T) {
	fmtFloat, _ := createFormatters(1)

	var buf bytes.Buffer
	err := writeTimelineCSV(&buf, testResult().Timeline, fmtFloat)
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// First measurement has no variation columns filled
	assert.Equal(t, "", rows[1][3])
	assert.Equal(t, "", rows[1][4])
	assert.Equal(t, "0.5", rows[2][3])
}

func TestWriteAnalysisJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, testResult())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "PAC-001", decoded["patient_id"])
	resumo, ok := decoded["resumo"].([]any)
	require.True(t, ok)
	require.Len(t, resumo, 1)
	first, ok := resumo[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Lesão A", first["lesao_id"])
}

func TestWriteAnalysisMarkdown(t *testing.T) {
	cfg := testConfig()
	cfg.Detail = true
	fmtFloat, fmtPct := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeAnalysisMarkdown(testResult(), cfg, fmtFloat, fmtPct, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "## Resumo por lesão"))
	assert.Contains(t, out, "| Lesão A | 15/01/2024 |")
	assert.Contains(t, out, "## Linha do tempo")
	assert.Contains(t, out, "| Primeira medição |")
	assert.Contains(t, out, "**Total**: 1 lesões")
}

func TestWriteExecutiveReport(t *testing.T) {
	cfg := testConfig()
	cfg.PatientID = "PAC-001"
	fmtFloat, fmtPct := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeExecutiveReport(testResult(), cfg, fmtFloat, fmtPct, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "RELATÓRIO DE ANÁLISE DE EVOLUÇÃO DE LESÕES")
	assert.Contains(t, out, "Paciente: PAC-001")
	assert.Contains(t, out, "Período: 15/01/2024 a 25/07/2024")
	assert.Contains(t, out, "RESUMO EXECUTIVO")
	assert.Contains(t, out, "Lesões em crescimento: 1")
	assert.Contains(t, out, "Gerado em: 2024-08-01T10:00:00Z")
}

func TestWriteValidationText(t *testing.T) {
	report := schema.ValidationReport{
		Valid:    false,
		Errors:   []string{"2 registro(s) sem data de exame"},
		Warnings: []string{"1 registro(s) com tamanho inválido"},
		Summary: schema.ValidationSummary{
			TotalRecords:  5,
			UniqueLesions: 2,
			MissingDates:  2,
			InvalidSizes:  1,
		},
	}

	var buf bytes.Buffer
	err := writeValidationText(report, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Validação: INVÁLIDO")
	assert.Contains(t, out, "Erro: 2 registro(s) sem data de exame")
	assert.Contains(t, out, "Aviso: 1 registro(s) com tamanho inválido")
	assert.Contains(t, out, "Registros: 5 | Lesões: 2")
}

func TestGetMaxTableNameWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		detail   bool
		expected int
	}{
		{"wide terminal caps at maximum", 300, false, 40},
		{"narrow terminal floors at minimum", 40, false, 12},
		{"detail columns shrink the name", 120, true, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width, Detail: tt.detail}
			assert.Equal(t, tt.expected, getMaxTableNameWidth(cfg))
		})
	}
}
