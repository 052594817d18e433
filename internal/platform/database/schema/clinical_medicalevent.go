package schema

// ClinicalMedicalEventTable represents the 'clinical.medicalevent' table
type ClinicalMedicalEventTable struct {
	Table           string
	ID              string
	MedicalRecordID string
	DoctorID        string
	EventType       string
	Description     string
	EventDate       string
}

// ClinicalMedicalEvent is the schema definition for clinical.medicalevent
var ClinicalMedicalEvent = ClinicalMedicalEventTable{
	Table:           "clinical.medicalevent",
	ID:              "id",
	MedicalRecordID: "medicalrecordid",
	DoctorID:        "doctorid",
	EventType:       "eventtype",
	Description:     "description",
	EventDate:       "eventdate",
}

func (t ClinicalMedicalEventTable) Columns() []string {
	return []string{t.ID, t.MedicalRecordID, t.DoctorID, t.EventType, t.Description, t.EventDate}
}
