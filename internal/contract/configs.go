package contract

import (
	"fmt"
	"strings"

	"github.com/lesiontrack/lesiontrack/schema"
)

// Default values for configuration.
const (
	DefaultPrecision   = 1
	MaxPrecision       = 3
	DefaultDemoExams   = 4
	DefaultDemoLesions = 3
	MaxDemoExams       = 60
	MaxDemoLesions     = 50
)

// Config holds the runtime configuration for an analysis run.
// This struct remains the "final, validated" config.
type Config struct {
	InputFile   string // Path to a CSV/JSON measurement file or report text file
	PatientID   string // Patient identifier for store-backed operations
	PatientName string // Human-readable patient name (extract --save)

	Precision  int               // Decimal precision for numeric columns
	Output     schema.OutputMode // Output format
	OutputFile string            // Optional path to write output to
	Detail     bool              // If true, include the per-measurement timeline
	Width      int               // Terminal width override (0 = auto-detect)
	UseColors  bool              // Enable colored status labels in table output

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	SaveToStore bool // extract --save: persist extracted records

	DemoExams   int   // demo: number of exams per lesion
	DemoLesions int   // demo: number of synthetic lesions
	DemoSeed    int64 // demo: RNG seed (0 = time-based)
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper will unmarshal into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputFileStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Patient        string `mapstructure:"patient"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Detail         bool   `mapstructure:"detail"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	// --- Fields from extractCmd.Flags() ---
	Save        bool   `mapstructure:"save"`
	PatientName string `mapstructure:"patient-name"`

	// --- Fields from demoCmd.Flags() ---
	Exams   int   `mapstructure:"exams"`
	Lesions int   `mapstructure:"lesions"`
	Seed    int64 `mapstructure:"seed"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.InputFile = input.InputFileStr
	cfg.PatientID = strings.TrimSpace(input.Patient)
	cfg.PatientName = strings.TrimSpace(input.PatientName)
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.SaveToStore = input.Save
	cfg.DemoSeed = input.Seed

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, markdown, parquet", input.Output)
	}

	// --- 2. Store Backend Validation ---
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	// --- 3. Save Mode Validation ---
	if cfg.SaveToStore {
		if cfg.PatientID == "" {
			return fmt.Errorf("--patient is required when using --save")
		}
		if cfg.StoreBackend == schema.NoneBackend {
			return fmt.Errorf("--save requires a store backend other than none")
		}
	}

	// --- 4. Demo Parameters Validation ---
	if input.Exams < 0 || input.Exams > MaxDemoExams {
		return fmt.Errorf("exams must be between 0 and %d (received %d)", MaxDemoExams, input.Exams)
	}
	cfg.DemoExams = input.Exams
	if input.Lesions < 0 || input.Lesions > MaxDemoLesions {
		return fmt.Errorf("lesions must be between 0 and %d (received %d)", MaxDemoLesions, input.Lesions)
	}
	cfg.DemoLesions = input.Lesions

	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
