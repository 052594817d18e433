package schema

// ClinicalMedicalRecordTable represents the 'clinical.medicalrecord' table
type ClinicalMedicalRecordTable struct {
	Table              string
	ID                 string
	PatientID          string
	MedicalHistory     string
	FamilyHistory      string
	Allergies          string
	CurrentMedications string
	Notes              string
	CreatedAt          string
	UpdatedAt          string
}

// ClinicalMedicalRecord is the schema definition for clinical.medicalrecord
var ClinicalMedicalRecord = ClinicalMedicalRecordTable{
	Table:              "clinical.medicalrecord",
	ID:                 "id",
	PatientID:          "patientid",
	MedicalHistory:     "medicalhistory",
	FamilyHistory:      "familyhistory",
	Allergies:          "allergies",
	CurrentMedications: "currentmedications",
	Notes:              "notes",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
}

func (t ClinicalMedicalRecordTable) Columns() []string {
	return []string{
		t.ID, t.PatientID, t.MedicalHistory, t.FamilyHistory, t.Allergies,
		t.CurrentMedications, t.Notes, t.CreatedAt, t.UpdatedAt,
	}
}
