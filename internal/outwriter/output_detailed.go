package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/schema"
)

// writeTimelineTable renders the chronological measurement table.
func writeTimelineTable(timeline []schema.TimelineEntry, cfg *contract.Config, fmtFloat, fmtPct func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Lesão", "Data", "Tamanho", "Variação (cm)", "Variação (%)", "Obs"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, e := range timeline {
		data = append(data, []string{
			contract.TruncateName(e.LesionID, nameWidth),
			contract.FormatDateBR(e.ExamDate),
			fmtFloat(e.SizeCM) + " cm",
			formatOptionalFloat(e.VariationCM, fmtFloat),
			formatOptionalPct(e.VariationPct, fmtPct),
			timelineNote(e),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeTimelineMarkdown renders the timeline as a Markdown table.
func writeTimelineMarkdown(timeline []schema.TimelineEntry, fmtFloat, fmtPct func(float64) string, writer io.Writer) error {
	if _, err := fmt.Fprintln(writer, "## Linha do tempo"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(writer); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(writer, "| Lesão | Data | Tamanho | Variação (cm) | Variação (%) | Obs |"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(writer, "| --- | --- | --- | --- | --- | --- |"); err != nil {
		return err
	}
	for _, e := range timeline {
		if _, err := fmt.Fprintf(writer, "| %s | %s | %s cm | %s | %s | %s |\n",
			e.LesionID,
			contract.FormatDateBR(e.ExamDate),
			fmtFloat(e.SizeCM),
			formatOptionalFloat(e.VariationCM, fmtFloat),
			formatOptionalPct(e.VariationPct, fmtPct),
			timelineNote(e)); err != nil {
			return err
		}
	}
	return nil
}

// writeTimelineCSV writes the timeline entries in CSV format.
func writeTimelineCSV(w io.Writer, timeline []schema.TimelineEntry, fmtFloat func(float64) string) error {
	header := []string{
		"lesao_id",
		"data_exame",
		"tamanho_cm",
		"variacao_cm",
		"variacao_pct",
		"outlier",
		"source_file",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, e := range timeline {
			rec := []string{
				e.LesionID,
				e.ExamDate.Format(contract.DateOnlyFormat),
				fmtFloat(e.SizeCM),
				formatOptionalCSV(e.VariationCM, fmtFloat),
				formatOptionalCSV(e.VariationPct, fmtFloat),
				fmt.Sprintf("%t", e.Outlier),
				e.SourceFile,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// timelineNote annotates entries that deserve a second look.
func timelineNote(e schema.TimelineEntry) string {
	if e.Outlier {
		return "⚠️ atípico"
	}
	return "-"
}

func formatOptionalFloat(v *float64, fmtFloat func(float64) string) string {
	if v == nil {
		return "-"
	}
	return fmtFloat(*v) + " cm"
}

// formatOptionalPct renders the variation percentage, labeling rows without
// an earlier measurement to compare against.
func formatOptionalPct(v *float64, fmtPct func(float64) string) string {
	if v == nil {
		return "Primeira medição"
	}
	return fmtPct(*v)
}

func formatOptionalCSV(v *float64, fmtFloat func(float64) string) string {
	if v == nil {
		return ""
	}
	return fmtFloat(*v)
}
