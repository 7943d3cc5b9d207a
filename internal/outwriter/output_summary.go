package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/internal/parquet"
	"github.com/lesiontrack/lesiontrack/schema"
)

// WriteAnalysis outputs the analysis results, dispatching based on the output format configured.
func WriteAnalysis(cfg *contract.Config, result *schema.AnalysisResult) error {
	// Create formatters using helper
	fmtFloat, fmtPct := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeAnalysisJSON(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeAnalysisCSV(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisMarkdown(result, cfg, fmtFloat, fmtPct, w)
		}, "Wrote Markdown")
	case schema.ParquetOut:
		if err := writeAnalysisParquet(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable tables
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisText(result, cfg, fmtFloat, fmtPct, w)
		}, "Wrote table")
	}
	return nil
}

// writeAnalysisJSON handles opening the file and calling the JSON writer.
func writeAnalysisJSON(result *schema.AnalysisResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON")
}

// writeAnalysisCSV writes summary rows, or timeline rows with the detail flag.
func writeAnalysisCSV(result *schema.AnalysisResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	if cfg.Detail {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTimelineCSV(w, result.Timeline, fmtFloat)
		}, "Wrote CSV")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeSummaryCSV(w, result.Summaries, fmtFloat)
	}, "Wrote CSV")
}

// writeAnalysisParquet exports summary or timeline rows through the parquet package.
func writeAnalysisParquet(result *schema.AnalysisResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires an output file")
	}
	if cfg.Detail {
		if err := parquet.WriteTimelineParquet(parquet.FromTimeline(result), cfg.OutputFile); err != nil {
			return err
		}
	} else if err := parquet.WriteSummariesParquet(parquet.FromSummaries(result), cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeAnalysisText generates and writes the human-readable tables.
func writeAnalysisText(result *schema.AnalysisResult, cfg *contract.Config, fmtFloat, fmtPct func(float64) string, writer io.Writer) error {
	if err := writeResolvedNames(result, writer); err != nil {
		return err
	}
	if err := writeSummaryTable(result.Summaries, cfg, fmtFloat, fmtPct, writer); err != nil {
		return err
	}
	if cfg.Detail {
		if _, err := fmt.Fprintln(writer); err != nil {
			return err
		}
		if err := writeTimelineTable(result.Timeline, cfg, fmtFloat, fmtPct, writer); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(writer); err != nil {
		return err
	}
	return writeAggregateFooter(result, fmtPct, writer)
}

// writeResolvedNames lists raw names that were unified under another identity.
func writeResolvedNames(result *schema.AnalysisResult, writer io.Writer) error {
	if len(result.ResolvedNames) == 0 {
		return nil
	}
	raws := make([]string, 0, len(result.ResolvedNames))
	for raw := range result.ResolvedNames {
		raws = append(raws, raw)
	}
	// Stable notice order regardless of map iteration.
	sort.Strings(raws)
	for _, raw := range raws {
		if _, err := fmt.Fprintf(writer, "Nome unificado: %q -> %q\n", raw, result.ResolvedNames[raw]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

// writeSummaryTable renders the per-lesion summary table.
func writeSummaryTable(summaries []schema.LesionSummary, cfg *contract.Config, fmtFloat, fmtPct func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Lesão", "Primeira Data", "Tam. Inicial", "Última Data", "Tam. Final", "Variação", "Status"}
	if cfg.Detail {
		headers = append(headers, "Medições", "Máx", "Mín", "Tendência")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, s := range summaries {
		row := []string{
			contract.TruncateName(s.LesionID, nameWidth),
			contract.FormatDateBR(s.FirstDate),
			fmtFloat(s.FirstSize) + " cm",
			contract.FormatDateBR(s.LastDate),
			fmtFloat(s.LastSize) + " cm",
			fmtPct(s.TotalVariationPct),
			contract.GetColorStatus(s.Status),
		}
		if cfg.Detail {
			row = append(
				row,
				strconv.Itoa(s.MeasurementCount),
				fmtFloat(s.MaxSize),
				fmtFloat(s.MinSize),
				string(s.Trend),
			)
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeAggregateFooter prints the cohort statistics below the tables.
func writeAggregateFooter(result *schema.AnalysisResult, fmtPct func(float64) string, writer io.Writer) error {
	agg := result.Aggregate
	if _, err := fmt.Fprintf(writer, "Total de lesões: %d (crescendo: %d, reduzindo: %d, estáveis: %d)\n",
		agg.TotalLesions, agg.Increasing, agg.Decreasing, agg.Stable); err != nil {
		return err
	}
	if agg.TotalLesions == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(writer, "Variação média: %s\n", fmtPct(agg.AvgVariationPct)); err != nil {
		return err
	}
	if agg.MostIncreased != "" {
		if _, err := fmt.Fprintf(writer, "Maior aumento: %s (%s)\n", agg.MostIncreased, fmtPct(agg.MaxIncreasePct)); err != nil {
			return err
		}
	}
	if agg.MostDecreased != "" {
		if _, err := fmt.Fprintf(writer, "Maior redução: %s (%s)\n", agg.MostDecreased, fmtPct(agg.MaxDecreasePct)); err != nil {
			return err
		}
	}
	if dr := result.Metadata.DateRange; dr != nil {
		if _, err := fmt.Fprintf(writer, "Período analisado: %s a %s (%d medições)\n",
			contract.FormatDateBR(dr.Start), contract.FormatDateBR(dr.End), result.Metadata.TotalMeasurements); err != nil {
			return err
		}
	}
	return nil
}

// writeAnalysisMarkdown renders summary and timeline as Markdown tables.
func writeAnalysisMarkdown(result *schema.AnalysisResult, cfg *contract.Config, fmtFloat, fmtPct func(float64) string, writer io.Writer) error {
	if _, err := fmt.Fprintln(writer, "## Resumo por lesão"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(writer); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(writer, "| Lesão | Primeira Data | Tam. Inicial | Última Data | Tam. Final | Variação | Status |"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(writer, "| --- | --- | --- | --- | --- | --- | --- |"); err != nil {
		return err
	}
	for _, s := range result.Summaries {
		if _, err := fmt.Fprintf(writer, "| %s | %s | %s cm | %s | %s cm | %s | %s |\n",
			s.LesionID,
			contract.FormatDateBR(s.FirstDate),
			fmtFloat(s.FirstSize),
			contract.FormatDateBR(s.LastDate),
			fmtFloat(s.LastSize),
			fmtPct(s.TotalVariationPct),
			s.Status); err != nil {
			return err
		}
	}

	if cfg.Detail {
		if _, err := fmt.Fprintln(writer); err != nil {
			return err
		}
		if err := writeTimelineMarkdown(result.Timeline, fmtFloat, fmtPct, writer); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(writer); err != nil {
		return err
	}
	agg := result.Aggregate
	_, err := fmt.Fprintf(writer, "**Total**: %d lesões | crescendo: %d | reduzindo: %d | estáveis: %d | variação média: %s\n",
		agg.TotalLesions, agg.Increasing, agg.Decreasing, agg.Stable, fmtPct(agg.AvgVariationPct))
	return err
}

// writeSummaryCSV writes the per-lesion summaries in CSV format.
func writeSummaryCSV(w io.Writer, summaries []schema.LesionSummary, fmtFloat func(float64) string) error {
	header := []string{
		"lesao_id",
		"primeira_data",
		"primeiro_tamanho_cm",
		"ultima_data",
		"ultimo_tamanho_cm",
		"variacao_total_pct",
		"status",
		"num_medicoes",
		"tamanho_maximo_cm",
		"tamanho_minimo_cm",
		"tendencia",
		"correlacao",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, s := range summaries {
			rec := []string{
				s.LesionID,
				s.FirstDate.Format(contract.DateOnlyFormat),
				fmtFloat(s.FirstSize),
				s.LastDate.Format(contract.DateOnlyFormat),
				fmtFloat(s.LastSize),
				fmtFloat(s.TotalVariationPct),
				s.Status,
				strconv.Itoa(s.MeasurementCount),
				fmtFloat(s.MaxSize),
				fmtFloat(s.MinSize),
				string(s.Trend),
				fmt.Sprintf("%.2f", s.Correlation),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
