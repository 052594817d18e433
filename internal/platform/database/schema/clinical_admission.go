package schema

// ClinicalAdmissionTable represents the 'clinical.admission' table
type ClinicalAdmissionTable struct {
	Table              string
	ID                 string
	PatientID          string
	AdmissionDate      string
	ReasonForAdmission string
	DepartmentID       string
	RoomNumber         string
	BedNumber          string
	Status             string
	Diagnosis          string
	DischargeDate      string
	DischargeSummary   string
	PersonnelID        string
	CreatedAt          string
	UpdatedAt          string
}

// ClinicalAdmission is the schema definition for clinical.admission
var ClinicalAdmission = ClinicalAdmissionTable{
	Table:              "clinical.admission",
	ID:                 "id",
	PatientID:          "patientid",
	AdmissionDate:      "admissiondate",
	ReasonForAdmission: "reasonforadmission",
	DepartmentID:       "departmentid",
	RoomNumber:         "roomnumber",
	BedNumber:          "bednumber",
	Status:             "status",
	Diagnosis:          "diagnosis",
	DischargeDate:      "dischargedate",
	DischargeSummary:   "dischargesummary",
	PersonnelID:        "personnelid",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
}

func (t ClinicalAdmissionTable) Columns() []string {
	return []string{
		t.ID, t.PatientID, t.AdmissionDate, t.ReasonForAdmission, t.DepartmentID,
		t.RoomNumber, t.BedNumber, t.Status, t.Diagnosis, t.DischargeDate,
		t.DischargeSummary, t.PersonnelID, t.CreatedAt, t.UpdatedAt,
	}
}
