// Package report computes aggregate statistics over the clinical data
// for dashboards: patient demographics, admission volumes and
// consultation activity.
package report

// GenderCount is the number of registered patients of one gender.
type GenderCount struct {
	Gender string `json:"gender"`
	Count  int64  `json:"count"`
}

// DepartmentAdmissionCount is the number of admissions per department.
type DepartmentAdmissionCount struct {
	DepartmentID   int64  `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Count          int64  `json:"count"`
}

// MonthlyAdmissionCount is the number of admissions for one month of a year.
type MonthlyAdmissionCount struct {
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// DoctorConsultationCount is the number of consultations recorded per doctor.
type DoctorConsultationCount struct {
	DoctorID int64  `json:"doctor_id"`
	Username string `json:"username"`
	Count    int64  `json:"count"`
}

// DiagnosisFrequency is how often a diagnosis appears across consultations.
type DiagnosisFrequency struct {
	Diagnosis string `json:"diagnosis"`
	Count     int64  `json:"count"`
}
