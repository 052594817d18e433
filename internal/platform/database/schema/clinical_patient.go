package schema

// ClinicalPatientTable represents the 'clinical.patient' table
type ClinicalPatientTable struct {
	Table          string
	ID             string
	LastName       string
	FirstName      string
	Gender         string
	BirthDate      string
	Address        string
	City           string
	ZipCode        string
	PhoneNumber    string
	RecordNumber   string
	Email          string
	BloodType      string
	KnownIllnesses string
	Allergies      string
	CreatedAt      string
	UpdatedAt      string
}

// ClinicalPatient is the schema definition for clinical.patient
var ClinicalPatient = ClinicalPatientTable{
	Table:          "clinical.patient",
	ID:             "id",
	LastName:       "lastname",
	FirstName:      "firstname",
	Gender:         "gender",
	BirthDate:      "birthdate",
	Address:        "address",
	City:           "city",
	ZipCode:        "zipcode",
	PhoneNumber:    "phonenumber",
	RecordNumber:   "recordnumber",
	Email:          "email",
	BloodType:      "bloodtype",
	KnownIllnesses: "knownillnesses",
	Allergies:      "allergies",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

func (t ClinicalPatientTable) Columns() []string {
	return []string{
		t.ID, t.LastName, t.FirstName, t.Gender, t.BirthDate, t.Address, t.City,
		t.ZipCode, t.PhoneNumber, t.RecordNumber, t.Email, t.BloodType,
		t.KnownIllnesses, t.Allergies, t.CreatedAt, t.UpdatedAt,
	}
}
