package schema

// ClinicalDailyRecordTable represents the 'clinical.dailyrecord' table
type ClinicalDailyRecordTable struct {
	Table                   string
	ID                      string
	PatientID               string
	RecordedByID            string
	RecordDate              string
	Observations            string
	MedicationsAdministered string
	Temperature             string
	BloodPressure           string
	HeartRate               string
	OxygenSaturation        string
	CreatedAt               string
	UpdatedAt               string
}

// ClinicalDailyRecord is the schema definition for clinical.dailyrecord
var ClinicalDailyRecord = ClinicalDailyRecordTable{
	Table:                   "clinical.dailyrecord",
	ID:                      "id",
	PatientID:               "patientid",
	RecordedByID:            "recordedbyid",
	RecordDate:              "recorddate",
	Observations:            "observations",
	MedicationsAdministered: "medicationsadministered",
	Temperature:             "temperature",
	BloodPressure:           "bloodpressure",
	HeartRate:               "heartrate",
	OxygenSaturation:        "oxygensaturation",
	CreatedAt:               "createdat",
	UpdatedAt:               "updatedat",
}

func (t ClinicalDailyRecordTable) Columns() []string {
	return []string{
		t.ID, t.PatientID, t.RecordedByID, t.RecordDate, t.Observations,
		t.MedicationsAdministered, t.Temperature, t.BloodPressure, t.HeartRate,
		t.OxygenSaturation, t.CreatedAt, t.UpdatedAt,
	}
}
