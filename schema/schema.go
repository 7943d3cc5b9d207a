// Package schema has configs, models and global variables for all parts of lesiontrack.
package schema

import "time"

// Measurement represents a single lesion measurement taken from one exam.
// It is the atomic input record for identity resolution and evolution analysis.
type Measurement struct {
	LesionID   string    `json:"lesao_id"`              // Lesion identifier as written in the source report
	ExamDate   time.Time `json:"data_exame"`            // Date of the exam the measurement belongs to
	SizeCM     float64   `json:"tamanho_cm"`            // Largest diameter in centimeters
	Treatments []string  `json:"tratamentos,omitempty"` // Treatments mentioned in the same report
	SourceFile string    `json:"source_file,omitempty"` // File the measurement was extracted from
}

// PatientRecord represents a patient row in the record store.
type PatientRecord struct {
	PatientID string    `json:"patient_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// StoreStats summarizes the contents of the record store.
type StoreStats struct {
	TotalPatients     int64      `json:"total_patients"`
	TotalMeasurements int64      `json:"total_measurements"`
	DistinctLesions   int64      `json:"distinct_lesions"`
	TotalSessions     int64      `json:"total_sessions"`
	FirstExamDate     *time.Time `json:"first_exam_date,omitempty"`
	LastExamDate      *time.Time `json:"last_exam_date,omitempty"`
}

// ReportContent captures validation signals for a block of report text
// before extraction is attempted.
type ReportContent struct {
	HasDate         bool `json:"has_date"`
	HasLesions      bool `json:"has_lesions"`
	HasMeasurements bool `json:"has_measurements"`
	IsMedicalReport bool `json:"is_medical_report"`
}
