// Package patient manages the hospital's patient registry.
package patient

import "time"

// Patient is a registered patient of the hospital.
type Patient struct {
	ID             int64      `json:"id"`
	LastName       string     `json:"last_name"`
	FirstName      string     `json:"first_name"`
	Gender         string     `json:"gender"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	Address        string     `json:"address,omitempty"`
	City           string     `json:"city,omitempty"`
	ZipCode        string     `json:"zip_code,omitempty"`
	PhoneNumber    string     `json:"phone_number,omitempty"`
	RecordNumber   string     `json:"record_number"`
	Email          string     `json:"email,omitempty"`
	BloodType      string     `json:"blood_type,omitempty"`
	KnownIllnesses string     `json:"known_illnesses,omitempty"`
	Allergies      string     `json:"allergies,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// BloodTypes is the closed set of accepted blood type labels.
var BloodTypes = []string{
	"A_POSITIVE", "A_NEGATIVE",
	"B_POSITIVE", "B_NEGATIVE",
	"AB_POSITIVE", "AB_NEGATIVE",
	"O_POSITIVE", "O_NEGATIVE",
	"UNKNOWN",
}

// Filter narrows patient listings.
type Filter struct {
	Query string // Matches last name, first name or record number
	City  string
}

const (
	FieldLastName     = "last_name"
	FieldFirstName    = "first_name"
	FieldGender       = "gender"
	FieldRecordNumber = "record_number"
	FieldEmail        = "email"
	FieldBloodType    = "blood_type"
)
