package extract

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMeasurementFileCSV(t *testing.T) {
	path := writeTempFile(t, "medicoes.csv", `lesao_id,data_exame,tamanho_cm,tratamentos
Lesão A,2024-01-15,"1,2",
Lesão A,20/03/2024,1.5,Quimioterapia;Radioterapia
Nódulo B,2024-01-15,0.8,
`)

	records, err := LoadMeasurementFile(path)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Lesão A", records[0].LesionID)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), records[0].ExamDate)
	assert.InDelta(t, 1.2, records[0].SizeCM, 1e-9)
	assert.Empty(t, records[0].Treatments)
	assert.Equal(t, "medicoes.csv", records[0].SourceFile)

	// Brazilian date format and semicolon-separated treatments
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), records[1].ExamDate)
	assert.Equal(t, []string{"Quimioterapia", "Radioterapia"}, records[1].Treatments)
}

func TestLoadMeasurementFileCSVEnglishHeaders(t *testing.T) {
	path := writeTempFile(t, "data.csv", `lesion_id,exam_date,size_cm
Lesão A,2024-01-15,1.2
`)

	records, err := LoadMeasurementFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Lesão A", records[0].LesionID)
}

func TestLoadMeasurementFileCSVSkipsBadRows(t *testing.T) {
	path := writeTempFile(t, "medicoes.csv", `lesao_id,data_exame,tamanho_cm
Lesão A,2024-01-15,1.2
Lesão A,not-a-date,1.5
Lesão A,2024-05-10,not-a-number
Lesão A,2024-07-25,1.8
`)

	records, err := LoadMeasurementFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.InDelta(t, 1.2, records[0].SizeCM, 1e-9)
	assert.InDelta(t, 1.8, records[1].SizeCM, 1e-9)
}

func TestLoadMeasurementFileCSVMissingColumn(t *testing.T) {
	path := writeTempFile(t, "medicoes.csv", "lesao_id,tamanho_cm\nLesão A,1.2\n")

	_, err := LoadMeasurementFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestLoadMeasurementFileJSONArray(t *testing.T) {
	path := writeTempFile(t, "medicoes.json", `[
  {"lesao_id": "Lesão A", "data_exame": "2024-01-15", "tamanho_cm": 1.2},
  {"lesao_id": "Lesão A", "data_exame": "2024-03-20", "tamanho_cm": "1,5", "tratamentos": ["Quimioterapia"]}
]`)

	records, err := LoadMeasurementFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.InDelta(t, 1.2, records[0].SizeCM, 1e-9)
	assert.InDelta(t, 1.5, records[1].SizeCM, 1e-9)
	assert.Equal(t, []string{"Quimioterapia"}, records[1].Treatments)
}

func TestLoadMeasurementFileJSONWrapped(t *testing.T) {
	path := writeTempFile(t, "medicoes.json", `{"medicoes": [
  {"lesao_id": "Nódulo B", "data_exame": "2024-01-15", "tamanho_cm": 0.8}
]}`)

	records, err := LoadMeasurementFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Nódulo B", records[0].LesionID)
}

func TestLoadMeasurementFileReportText(t *testing.T) {
	path := writeTempFile(t, "laudo.txt", sampleReport)

	records, err := LoadMeasurementFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "laudo.txt", records[0].SourceFile)
}

func TestLoadMeasurementFileUnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "medicoes.xml", "<medicoes/>")

	_, err := LoadMeasurementFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported input format")
}

func TestLoadMeasurementFileMissing(t *testing.T) {
	_, err := LoadMeasurementFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}
