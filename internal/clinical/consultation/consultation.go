// Package consultation manages medical consultations recorded by doctors
// for patients, including the diagnosis and treatment plan produced during
// each visit.
package consultation

import "time"

// Consultation is a single medical visit for a patient by a doctor.
type Consultation struct {
	ID                    int64     `json:"id"`
	PatientID             int64     `json:"patient_id"`
	DoctorID              int64     `json:"doctor_id"`
	ConsultationDate      time.Time `json:"consultation_date"`
	ReasonForConsultation string    `json:"reason_for_consultation"`
	Observations          string    `json:"observations,omitempty"`
	Diagnosis             string    `json:"diagnosis,omitempty"`
	TreatmentPlan         string    `json:"treatment_plan,omitempty"`
	Notes                 string    `json:"notes,omitempty"`
	RecordedByID          int64     `json:"recorded_by_id"`
	RecordedAt            time.Time `json:"recorded_at"`
}

// Filter narrows consultation listings. Zero values are ignored.
type Filter struct {
	PatientID int64
	DoctorID  int64
	Diagnosis string
	From      time.Time
	To        time.Time
}

const (
	FieldPatientID             = "patient_id"
	FieldDoctorID              = "doctor_id"
	FieldConsultationDate      = "consultation_date"
	FieldReasonForConsultation = "reason_for_consultation"
)
