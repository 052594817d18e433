// Package dailyrecord tracks the daily nursing observations taken for a
// patient while they are hospitalized: vitals, medications administered
// and free-form observations.
package dailyrecord

import "time"

// DailyRecord is one daily observation sheet for a patient.
type DailyRecord struct {
	ID                      int64     `json:"id"`
	PatientID               int64     `json:"patient_id"`
	RecordedByID            int64     `json:"recorded_by_id"`
	RecordDate              time.Time `json:"record_date"`
	Observations            string    `json:"observations,omitempty"`
	MedicationsAdministered string    `json:"medications_administered,omitempty"`
	Temperature             *float64  `json:"temperature,omitempty"`
	BloodPressure           string    `json:"blood_pressure,omitempty"`
	HeartRate               *int      `json:"heart_rate,omitempty"`
	OxygenSaturation        *int      `json:"oxygen_saturation,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// Filter narrows daily record listings. Zero values are ignored.
type Filter struct {
	PatientID    int64
	RecordedByID int64
	From         time.Time
	To           time.Time
}

const (
	FieldPatientID        = "patient_id"
	FieldTemperature      = "temperature"
	FieldHeartRate        = "heart_rate"
	FieldOxygenSaturation = "oxygen_saturation"
)
