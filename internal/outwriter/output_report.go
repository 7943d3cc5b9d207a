package outwriter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/schema"
)

// WriteReport outputs the executive evolution report. The report is plain
// text regardless of the configured output mode, except JSON which keeps
// the structured result.
func WriteReport(cfg *contract.Config, result *schema.AnalysisResult) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	}
	fmtFloat, fmtPct := createFormatters(cfg.Precision)
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeExecutiveReport(result, cfg, fmtFloat, fmtPct, w)
	}, "Wrote report")
}

// writeExecutiveReport renders the narrative report for clinicians.
func writeExecutiveReport(result *schema.AnalysisResult, cfg *contract.Config, fmtFloat, fmtPct func(float64) string, writer io.Writer) error {
	line := strings.Repeat("=", 60)

	if _, err := fmt.Fprintln(writer, line); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(writer, "RELATÓRIO DE ANÁLISE DE EVOLUÇÃO DE LESÕES"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(writer, line); err != nil {
		return err
	}

	if cfg.PatientID != "" {
		if _, err := fmt.Fprintf(writer, "Paciente: %s\n", cfg.PatientID); err != nil {
			return err
		}
	}
	if dr := result.Metadata.DateRange; dr != nil {
		if _, err := fmt.Fprintf(writer, "Período: %s a %s\n",
			contract.FormatDateBR(dr.Start), contract.FormatDateBR(dr.End)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Lesões acompanhadas: %d\n", result.Metadata.TotalLesions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Medições analisadas: %d\n\n", result.Metadata.TotalMeasurements); err != nil {
		return err
	}

	if len(result.ResolvedNames) > 0 {
		if _, err := fmt.Fprintf(writer, "Nomes unificados: %d variação(ões) de escrita detectada(s)\n\n", len(result.ResolvedNames)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(writer, "RESUMO EXECUTIVO"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(writer, strings.Repeat("-", 60)); err != nil {
		return err
	}
	agg := result.Aggregate
	if _, err := fmt.Fprintf(writer, "Lesões em crescimento: %d\n", agg.Increasing); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Lesões em redução:     %d\n", agg.Decreasing); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Lesões estáveis:       %d\n", agg.Stable); err != nil {
		return err
	}
	if agg.TotalLesions > 0 {
		if _, err := fmt.Fprintf(writer, "Variação média:        %s\n", fmtPct(agg.AvgVariationPct)); err != nil {
			return err
		}
		if agg.MostIncreased != "" {
			if _, err := fmt.Fprintf(writer, "Maior aumento:         %s (%s)\n", agg.MostIncreased, fmtPct(agg.MaxIncreasePct)); err != nil {
				return err
			}
		}
		if agg.MostDecreased != "" {
			if _, err := fmt.Fprintf(writer, "Maior redução:         %s (%s)\n", agg.MostDecreased, fmtPct(agg.MaxDecreasePct)); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(writer, "\nDETALHAMENTO POR LESÃO\n%s\n", strings.Repeat("-", 60)); err != nil {
		return err
	}
	for _, s := range result.Summaries {
		if _, err := fmt.Fprintf(writer, "\n%s\n", s.LesionID); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(writer, "  %s: %s cm -> %s: %s cm\n",
			contract.FormatDateBR(s.FirstDate), fmtFloat(s.FirstSize),
			contract.FormatDateBR(s.LastDate), fmtFloat(s.LastSize)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(writer, "  Status: %s\n", s.Status); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(writer, "  Tendência: %s (%d medições)\n", s.Trend, s.MeasurementCount); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(writer, "\nGerado em: %s\n", result.Metadata.GeneratedAt.Format(time.RFC3339))
	return err
}

// WriteValidation prints a validation report before or instead of analysis.
func WriteValidation(cfg *contract.Config, report schema.ValidationReport) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeValidationText(report, w)
	}, "Wrote validation")
}

func writeValidationText(report schema.ValidationReport, writer io.Writer) error {
	verdict := "OK"
	if !report.Valid {
		verdict = "INVÁLIDO"
	}
	if _, err := fmt.Fprintf(writer, "Validação: %s\n", verdict); err != nil {
		return err
	}
	for _, e := range report.Errors {
		if _, err := fmt.Fprintf(writer, "Erro: %s\n", e); err != nil {
			return err
		}
	}
	for _, w := range report.Warnings {
		if _, err := fmt.Fprintf(writer, "Aviso: %s\n", w); err != nil {
			return err
		}
	}
	s := report.Summary
	if _, err := fmt.Fprintf(writer, "Registros: %d | Lesões: %d | Sem data: %d | Tamanhos inválidos: %d | Suspeitos: %d\n",
		s.TotalRecords, s.UniqueLesions, s.MissingDates, s.InvalidSizes, s.SuspectSizes); err != nil {
		return err
	}
	if s.DateRange != nil {
		if _, err := fmt.Fprintf(writer, "Período: %s a %s\n",
			contract.FormatDateBR(s.DateRange.Start), contract.FormatDateBR(s.DateRange.End)); err != nil {
			return err
		}
	}
	return nil
}
