package schema

// ClinicalConsultationTable represents the 'clinical.consultation' table
type ClinicalConsultationTable struct {
	Table                 string
	ID                    string
	PatientID             string
	DoctorID              string
	ConsultationDate      string
	ReasonForConsultation string
	Observations          string
	Diagnosis             string
	TreatmentPlan         string
	Notes                 string
	RecordedByID          string
	RecordedAt            string
}

// ClinicalConsultation is the schema definition for clinical.consultation
var ClinicalConsultation = ClinicalConsultationTable{
	Table:                 "clinical.consultation",
	ID:                    "id",
	PatientID:             "patientid",
	DoctorID:              "doctorid",
	ConsultationDate:      "consultationdate",
	ReasonForConsultation: "reasonforconsultation",
	Observations:          "observations",
	Diagnosis:             "diagnosis",
	TreatmentPlan:         "treatmentplan",
	Notes:                 "notes",
	RecordedByID:          "recordedbyid",
	RecordedAt:            "recordedat",
}

func (t ClinicalConsultationTable) Columns() []string {
	return []string{
		t.ID, t.PatientID, t.DoctorID, t.ConsultationDate, t.ReasonForConsultation,
		t.Observations, t.Diagnosis, t.TreatmentPlan, t.Notes, t.RecordedByID, t.RecordedAt,
	}
}
