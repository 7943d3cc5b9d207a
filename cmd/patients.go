package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/internal/outwriter"
	"github.com/lesiontrack/lesiontrack/internal/store"
	"github.com/lesiontrack/lesiontrack/schema"
)

// patientsMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create tables,
// allowing migrations to run on a fresh database.
func patientsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	// Handle empty backend as the default
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// patientsMigrateSetupWrapper wraps patientsMigrateSetup to provide PreRunE for migrate command.
func patientsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return patientsMigrateSetup()
}

// patientsCmd focused on record store data management.
var patientsCmd = &cobra.Command{
	Use:   "patients",
	Short: "Manage stored patients and their measurement history",
	Long: `Manage the patient record store.

When enabled, LesionTrack persists extracted measurements and analysis
sessions per patient, so follow-up exams accumulate into a longitudinal
history.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list    - List registered patients
  stats   - Show record store statistics
  delete  - Remove a patient and all associated data
  migrate - Run database schema migrations

Examples:
  # See who is being tracked
  lesiontrack patients list

  # Check store contents
  lesiontrack patients stats`,
}

// patientsListCmd lists registered patients.
var patientsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List registered patients",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		patients, err := storeManager.GetRecordStore().ListPatients()
		if err != nil {
			contract.LogFatal("Failed to list patients", err)
		}
		if err := outwriter.WritePatients(cfg, patients); err != nil {
			contract.LogFatal("Cannot write patients", err)
		}
	},
}

// patientsStatsCmd shows record store statistics.
var patientsStatsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Display record store statistics",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		stats, err := storeManager.GetRecordStore().GetStats()
		if err != nil {
			contract.LogFatal("Failed to read store stats", err)
		}
		if err := outwriter.WriteStoreStats(cfg, stats); err != nil {
			contract.LogFatal("Cannot write store stats", err)
		}
	},
}

// patientsDeleteCmd removes a patient and all associated data.
var patientsDeleteCmd = &cobra.Command{
	Use:   "delete <patient-id>",
	Short: "Remove a patient and all associated measurements and sessions",
	Long: `Delete a patient from the record store.

This removes the patient row, every stored measurement and every saved
analysis session for that patient.

WARNING: This action cannot be undone.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		patientID := args[0]
		if err := storeManager.GetRecordStore().DeletePatient(patientID); err != nil {
			contract.LogFatal("Failed to delete patient", err)
		}
		fmt.Printf("Patient %s deleted successfully.\n", patientID)
	},
}

// patientsMigrateCmd runs database schema migrations.
var patientsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run record store schema migrations",
	Long: `Apply or roll back record store schema migrations.

Use --target-version to control the migration target:
  -1 migrates to the latest version (default)
   0 rolls back to the initial state
   N migrates to a specific version

Examples:
  # Migrate to the latest schema
  lesiontrack patients migrate

  # Roll back everything
  lesiontrack patients migrate --target-version 0`,
	PreRunE: patientsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := store.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
