package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// TrendDirection represents the trend classification of a lesion.
	TrendDirection string

	// DatabaseBackend represents the database backend for the record store.
	DatabaseBackend string
)

// All output modes supported.
const (
	CSVOut      OutputMode = "csv"
	TextOut     OutputMode = "text" // default
	JSONOut     OutputMode = "json"
	MarkdownOut OutputMode = "markdown"
	ParquetOut  OutputMode = "parquet"
)

// Trend labels reported per lesion. The wording is kept in Portuguese
// because downstream clinical reports are produced in Portuguese.
const (
	TrendGrowth       TrendDirection = "Tendência de crescimento"
	TrendReduction    TrendDirection = "Tendência de redução"
	TrendUnclear      TrendDirection = "Sem tendência clara"
	TrendInsufficient TrendDirection = "Dados insuficientes"
)

// All record store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Thresholds that drive grouping and trend classification.
const (
	// SimilarityThreshold is the minimum string similarity ratio for two
	// lesion names to be considered the same lesion.
	SimilarityThreshold = 0.8

	// VariationThreshold is the percentage band (inclusive) within which a
	// lesion is reported as stable.
	VariationThreshold = 10.0

	// CorrelationCutoff is the minimum absolute correlation between exam
	// date and size for a trend to be called.
	CorrelationCutoff = 0.3
)

// SurgicalKeywords flag treatments that can explain a sudden size reduction.
var SurgicalKeywords = []string{"cirurgia", "ressecção", "remoção", "excisão"}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:      {},
	TextOut:     {},
	JSONOut:     {},
	MarkdownOut: {},
	ParquetOut:  {},
}

// ValidDatabaseBackends lists all valid record store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
