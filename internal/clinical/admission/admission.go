// Package admission manages patient hospital stays, from intake to discharge.
package admission

import "time"

// Status values for an admission.
const (
	StatusActive      = "ACTIVE"
	StatusDischarged  = "DISCHARGED"
	StatusTransferred = "TRANSFERRED"
	StatusCancelled   = "CANCELLED"
)

// Statuses is the closed set of admission states.
var Statuses = []string{StatusActive, StatusDischarged, StatusTransferred, StatusCancelled}

// Admission is one hospital stay of a patient.
type Admission struct {
	ID                 int64      `json:"id"`
	PatientID          int64      `json:"patient_id"`
	AdmissionDate      time.Time  `json:"admission_date"`
	ReasonForAdmission string     `json:"reason_for_admission"`
	DepartmentID       *int64     `json:"department_id,omitempty"`
	RoomNumber         string     `json:"room_number,omitempty"`
	BedNumber          string     `json:"bed_number,omitempty"`
	Status             string     `json:"status"`
	Diagnosis          string     `json:"diagnosis,omitempty"`
	DischargeDate      *time.Time `json:"discharge_date,omitempty"`
	DischargeSummary   string     `json:"discharge_summary,omitempty"`
	PersonnelID        int64      `json:"personnel_id"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Filter narrows admission listings.
type Filter struct {
	PatientID    int64
	DepartmentID int64
	Status       string
}

const (
	FieldPatientID     = "patient_id"
	FieldAdmissionDate = "admission_date"
	FieldReason        = "reason_for_admission"
	FieldStatus        = "status"
	FieldSummary       = "discharge_summary"
)
