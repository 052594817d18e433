// Package medicalrecord manages the long-lived medical dossier of a
// patient. Each patient has at most one record, a narrative summary of
// their medical background, plus a chronological list of medical events
// appended by doctors over time.
package medicalrecord

import "time"

// MedicalRecord is the lifetime dossier of a single patient.
type MedicalRecord struct {
	ID                 int64          `json:"id"`
	PatientID          int64          `json:"patient_id"`
	MedicalHistory     string         `json:"medical_history,omitempty"`
	FamilyHistory      string         `json:"family_history,omitempty"`
	Allergies          string         `json:"allergies,omitempty"`
	CurrentMedications string         `json:"current_medications,omitempty"`
	Notes              string         `json:"notes,omitempty"`
	Events             []MedicalEvent `json:"events"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// MedicalEvent is one dated entry in a patient's dossier.
type MedicalEvent struct {
	ID              int64     `json:"id"`
	MedicalRecordID int64     `json:"medical_record_id"`
	DoctorID        int64     `json:"doctor_id"`
	EventType       string    `json:"event_type"`
	Description     string    `json:"description"`
	EventDate       time.Time `json:"event_date"`
}

const (
	FieldPatientID   = "patient_id"
	FieldEventType   = "event_type"
	FieldDescription = "description"
)
