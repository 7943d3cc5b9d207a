package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/schema"
)

// WriteMeasurements outputs raw extracted measurements, dispatching based on
// the output format configured.
func WriteMeasurements(cfg *contract.Config, records []schema.Measurement) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMeasurementsCSV(w, records, fmtFloat)
		}, "Wrote CSV")
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMeasurementsMarkdown(w, records, fmtFloat)
		}, "Wrote Markdown")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for extracted measurements")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMeasurementsTable(w, records, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// writeMeasurementsTable renders extracted measurements as a table.
func writeMeasurementsTable(w io.Writer, records []schema.Measurement, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Lesão", "Data", "Tamanho", "Tratamentos", "Fonte"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, r := range records {
		data = append(data, []string{
			contract.TruncateName(r.LesionID, nameWidth),
			contract.FormatDateBR(r.ExamDate),
			fmtFloat(r.SizeCM) + " cm",
			schema.FormatTreatments(r.Treatments),
			r.SourceFile,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nTotal de medições: %d\n", len(records))
	return err
}

// writeMeasurementsCSV writes extracted measurements in CSV format.
func writeMeasurementsCSV(w io.Writer, records []schema.Measurement, fmtFloat func(float64) string) error {
	header := []string{"lesao_id", "data_exame", "tamanho_cm", "tratamentos", "source_file"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range records {
			rec := []string{
				r.LesionID,
				r.ExamDate.Format(contract.DateOnlyFormat),
				fmtFloat(r.SizeCM),
				strings.Join(r.Treatments, ";"),
				r.SourceFile,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeMeasurementsMarkdown renders extracted measurements as a Markdown table.
func writeMeasurementsMarkdown(w io.Writer, records []schema.Measurement, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintln(w, "## Medições extraídas"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "| Lesão | Data | Tamanho | Tratamentos |"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "| --- | --- | --- | --- |"); err != nil {
		return err
	}
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "| %s | %s | %s cm | %s |\n",
			r.LesionID,
			contract.FormatDateBR(r.ExamDate),
			fmtFloat(r.SizeCM),
			schema.FormatTreatments(r.Treatments)); err != nil {
			return err
		}
	}
	return nil
}
