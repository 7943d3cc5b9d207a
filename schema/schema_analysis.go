package schema

import "time"

// LesionSummary holds the per-lesion evolution summary between the first
// and last available measurements.
type LesionSummary struct {
	LesionID          string         `json:"lesao_id"`
	FirstDate         time.Time      `json:"primeira_data"`
	FirstSize         float64        `json:"primeiro_tamanho"`
	LastDate          time.Time      `json:"ultima_data"`
	LastSize          float64        `json:"ultimo_tamanho"`
	TotalVariationPct float64        `json:"variacao_total_pct"`
	Status            string         `json:"status"`
	MeasurementCount  int            `json:"num_medicoes"`
	MaxSize           float64        `json:"tamanho_maximo"`
	MinSize           float64        `json:"tamanho_minimo"`
	Trend             TrendDirection `json:"tendencia"`
	Correlation       float64        `json:"correlacao"`
	Slope             float64        `json:"inclinacao"`
}

// TimelineEntry is one measurement in the chronological timeline of a lesion,
// annotated with the variation against the previous measurement.
type TimelineEntry struct {
	LesionID     string    `json:"lesao_id"`
	ExamDate     time.Time `json:"data_exame"`
	SizeCM       float64   `json:"tamanho_cm"`
	VariationCM  *float64  `json:"variacao_cm,omitempty"`  // nil for the first measurement
	VariationPct *float64  `json:"variacao_pct,omitempty"` // nil when there is no prior nonzero size
	Outlier      bool      `json:"outlier,omitempty"`
	SourceFile   string    `json:"source_file,omitempty"`
}

// AggregateStats holds cohort-level statistics across all lesions of a patient.
type AggregateStats struct {
	TotalLesions    int     `json:"total_lesoes"`
	Increasing      int     `json:"lesoes_crescendo"`
	Decreasing      int     `json:"lesoes_reduzindo"`
	Stable          int     `json:"lesoes_estaveis"`
	AvgVariationPct float64 `json:"variacao_media_pct"`
	MaxIncreasePct  float64 `json:"maior_aumento_pct"`
	MaxDecreasePct  float64 `json:"maior_reducao_pct"`
	MostIncreased   string  `json:"lesao_maior_aumento,omitempty"`
	MostDecreased   string  `json:"lesao_maior_reducao,omitempty"`
}

// DateRange is the inclusive span of exam dates covered by an analysis.
type DateRange struct {
	Start time.Time `json:"inicio"`
	End   time.Time `json:"fim"`
}

// AnalysisMetadata describes the input that produced an analysis result.
type AnalysisMetadata struct {
	TotalLesions      int        `json:"total_lesoes"`
	TotalMeasurements int        `json:"total_medicoes"`
	DateRange         *DateRange `json:"periodo,omitempty"`
	GeneratedAt       time.Time  `json:"gerado_em"`
}

// AnalysisResult is the complete output of an evolution analysis.
type AnalysisResult struct {
	PatientID string           `json:"patient_id,omitempty"`
	Summaries []LesionSummary  `json:"resumo"`
	Timeline  []TimelineEntry  `json:"detalhado"`
	Aggregate AggregateStats   `json:"estatisticas"`
	Metadata  AnalysisMetadata `json:"metadata"`
	// ResolvedNames maps each raw lesion name to its canonical identity.
	ResolvedNames map[string]string `json:"nomes_resolvidos,omitempty"`
}

// ValidationSummary holds counts produced while validating input records.
type ValidationSummary struct {
	TotalRecords  int        `json:"total_registros"`
	UniqueLesions int        `json:"lesoes_unicas"`
	InvalidSizes  int        `json:"tamanhos_invalidos"`
	MissingDates  int        `json:"datas_ausentes"`
	SuspectSizes  int        `json:"tamanhos_suspeitos"`
	DateRange     *DateRange `json:"periodo,omitempty"`
}

// ValidationReport is the outcome of validating input records before analysis.
type ValidationReport struct {
	Valid    bool              `json:"valido"`
	Errors   []string          `json:"erros,omitempty"`
	Warnings []string          `json:"avisos,omitempty"`
	Summary  ValidationSummary `json:"resumo"`
}
