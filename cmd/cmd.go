// Package cmd defines the command-line interface for lesiontrack.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(patientsCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the patients subcommands to the parent patients command
	patientsCmd.AddCommand(patientsListCmd)
	patientsCmd.AddCommand(patientsStatsCmd)
	patientsCmd.AddCommand(patientsDeleteCmd)
	patientsCmd.AddCommand(patientsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("patient", "p", "", "Patient identifier for store-backed operations")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or markdown or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("detail", false, "Print the per-measurement timeline alongside the summary")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Record store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of extractCmd to Viper
	extractCmd.Flags().Bool("save", false, "Persist extracted measurements to the record store")
	extractCmd.Flags().String("patient-name", "", "Human-readable patient name stored with --save")
	if err := viper.BindPFlags(extractCmd.Flags()); err != nil {
		contract.LogFatal("Error binding extract flags", err)
	}

	// Bind all flags of demoCmd to Viper
	demoCmd.Flags().Int("exams", contract.DefaultDemoExams, "Number of exams per synthetic lesion")
	demoCmd.Flags().Int("lesions", contract.DefaultDemoLesions, "Number of synthetic lesions")
	demoCmd.Flags().Int64("seed", 0, "RNG seed for synthetic data (0 = curated dataset)")
	if err := viper.BindPFlags(demoCmd.Flags()); err != nil {
		contract.LogFatal("Error binding demo flags", err)
	}

	// Bind all flags of patientsMigrateCmd to Viper
	patientsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(patientsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding patients migrate flags", err)
	}
}
