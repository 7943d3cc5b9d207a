package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/schema"
)

// WritePatients outputs the registered patients, dispatching based on the
// output format configured.
func WritePatients(cfg *contract.Config, patients []schema.PatientRecord) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, patients)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePatientsCSV(w, patients)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePatientsTable(w, patients)
		}, "Wrote table")
	}
}

func writePatientsTable(w io.Writer, patients []schema.PatientRecord) error {
	if len(patients) == 0 {
		_, err := fmt.Fprintln(w, "Nenhum paciente registrado.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Paciente", "Nome", "Registrado em"})

	var data [][]string
	for _, p := range patients {
		data = append(data, []string{
			p.PatientID,
			p.Name,
			contract.FormatDateBR(p.CreatedAt),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writePatientsCSV(w io.Writer, patients []schema.PatientRecord) error {
	header := []string{"patient_id", "name", "created_at"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, p := range patients {
			rec := []string{
				p.PatientID,
				p.Name,
				p.CreatedAt.Format(contract.DateOnlyFormat),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteStoreStats prints aggregate record store statistics.
func WriteStoreStats(cfg *contract.Config, stats schema.StoreStats) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, stats)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeStoreStatsText(w, stats)
	}, "Wrote stats")
}

func writeStoreStatsText(w io.Writer, stats schema.StoreStats) error {
	if _, err := fmt.Fprintf(w, "Pacientes:        %d\n", stats.TotalPatients); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Medições:         %d\n", stats.TotalMeasurements); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Lesões distintas: %d\n", stats.DistinctLesions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessões salvas:   %d\n", stats.TotalSessions); err != nil {
		return err
	}
	if stats.FirstExamDate != nil && stats.LastExamDate != nil {
		if _, err := fmt.Fprintf(w, "Período:          %s a %s\n",
			contract.FormatDateBR(*stats.FirstExamDate), contract.FormatDateBR(*stats.LastExamDate)); err != nil {
			return err
		}
	}
	return nil
}
