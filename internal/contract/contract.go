// Package contract defines shared configuration, interfaces and helpers
// used across the lesiontrack packages.
package contract

import (
	"github.com/lesiontrack/lesiontrack/schema"
)

// RecordStore persists patients, measurements and analysis sessions.
type RecordStore interface {
	// SavePatient inserts or updates a patient row.
	SavePatient(patientID, name string) error

	// SaveMeasurements upserts measurements for a patient, keyed by
	// (patient, lesion, exam date).
	SaveMeasurements(patientID string, records []schema.Measurement) (int, error)

	// LoadMeasurements returns all stored measurements for a patient,
	// ordered by lesion and exam date.
	LoadMeasurements(patientID string) ([]schema.Measurement, error)

	// ListPatients returns all known patients.
	ListPatients() ([]schema.PatientRecord, error)

	// SaveSession stores a JSON snapshot of an analysis result.
	SaveSession(patientID string, result *schema.AnalysisResult) error

	// DeletePatient removes a patient and all associated data.
	DeletePatient(patientID string) error

	// GetStats returns store-wide statistics.
	GetStats() (schema.StoreStats, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager provides access to the record store.
type StoreManager interface {
	GetRecordStore() RecordStore
}
