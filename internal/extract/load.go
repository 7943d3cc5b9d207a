package extract

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/schema"
)

// LoadMeasurementFile reads measurements from a CSV or JSON file, chosen by
// extension. Text files go through report extraction instead.
func LoadMeasurementFile(path string) ([]schema.Measurement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(f, filepath.Base(path))
	case ".json":
		return loadJSON(f, filepath.Base(path))
	case ".txt", ".md":
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read report file: %w", err)
		}
		return ExtractRecords(string(data), filepath.Base(path))
	default:
		return nil, fmt.Errorf("unsupported input format: %s", filepath.Ext(path))
	}
}

// csvColumnAliases maps accepted header names (lowercased) to canonical
// column roles. Both Portuguese and English headers are accepted.
var csvColumnAliases = map[string]string{
	"lesao_id":    "lesion",
	"lesao":       "lesion",
	"lesion_id":   "lesion",
	"lesion":      "lesion",
	"data_exame":  "date",
	"data":        "date",
	"exam_date":   "date",
	"date":        "date",
	"tamanho_cm":  "size",
	"tamanho":     "size",
	"size_cm":     "size",
	"size":        "size",
	"tratamentos": "treatments",
	"treatments":  "treatments",
}

// loadCSV parses measurement rows, skipping malformed ones with a warning.
func loadCSV(r io.Reader, sourceFile string) ([]schema.Measurement, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		if role, ok := csvColumnAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
			if _, taken := cols[role]; !taken {
				cols[role] = i
			}
		}
	}
	for _, required := range []string{"lesion", "date", "size"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("CSV header missing required column: %s", required)
		}
	}

	var records []schema.Measurement
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping malformed CSV row %d", line), err)
			continue
		}

		rec, err := parseCSVRow(row, cols, sourceFile)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping CSV row %d", line), err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseCSVRow(row []string, cols map[string]int, sourceFile string) (schema.Measurement, error) {
	field := func(role string) string {
		idx, ok := cols[role]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	date, err := contract.ParseExamDate(field("date"))
	if err != nil {
		return schema.Measurement{}, fmt.Errorf("invalid exam date %q: %w", field("date"), err)
	}
	size, err := contract.ParseFlexibleFloat(field("size"))
	if err != nil {
		return schema.Measurement{}, fmt.Errorf("invalid size %q: %w", field("size"), err)
	}

	var treatments []string
	if raw := field("treatments"); raw != "" && raw != "-" {
		for _, t := range strings.Split(raw, ";") {
			if t = strings.TrimSpace(t); t != "" {
				treatments = append(treatments, t)
			}
		}
	}

	return schema.Measurement{
		LesionID:   field("lesion"),
		ExamDate:   date,
		SizeCM:     size,
		Treatments: treatments,
		SourceFile: sourceFile,
	}, nil
}

// jsonMeasurement mirrors schema.Measurement with string-typed date and size
// so that flexible formats survive decoding.
type jsonMeasurement struct {
	LesionID   string          `json:"lesao_id"`
	ExamDate   string          `json:"data_exame"`
	SizeCM     json.RawMessage `json:"tamanho_cm"`
	Treatments []string        `json:"tratamentos"`
}

// loadJSON parses either a top-level array of measurements or an object with
// a "medicoes" array.
func loadJSON(r io.Reader, sourceFile string) ([]schema.Measurement, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON input: %w", err)
	}

	var raw []jsonMeasurement
	if err := json.Unmarshal(data, &raw); err != nil {
		var wrapper struct {
			Measurements []jsonMeasurement `json:"medicoes"`
		}
		if werr := json.Unmarshal(data, &wrapper); werr != nil || wrapper.Measurements == nil {
			return nil, fmt.Errorf("failed to parse JSON input: %w", err)
		}
		raw = wrapper.Measurements
	}

	var records []schema.Measurement
	for i, jm := range raw {
		date, err := contract.ParseExamDate(jm.ExamDate)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping JSON record %d: invalid exam date %q", i, jm.ExamDate), err)
			continue
		}
		size, err := contract.ParseFlexibleFloat(strings.Trim(string(jm.SizeCM), `"`))
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping JSON record %d: invalid size %s", i, jm.SizeCM), err)
			continue
		}
		records = append(records, schema.Measurement{
			LesionID:   jm.LesionID,
			ExamDate:   date,
			SizeCM:     size,
			Treatments: jm.Treatments,
			SourceFile: sourceFile,
		})
	}
	return records, nil
}
