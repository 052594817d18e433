// Copyright (c) 2026 HGS. All rights reserved.

package rbac

// Permission is a single named, fine-grained capability. Permissions are
// leaves: they never contain other permissions, and their names are unique.
type Permission struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// # Permission Catalog
//
// The catalog below is the complete capability vocabulary of the system.
// Enforcement declarations reference these constants, never raw strings,
// so a typo is a compile error instead of a silent always-deny.

const (
	PermPatientRead   = "PATIENT_READ"
	PermPatientWrite  = "PATIENT_WRITE"
	PermPatientDelete = "PATIENT_DELETE"

	PermDailyRecordRead   = "DAILY_RECORD_READ"
	PermDailyRecordWrite  = "DAILY_RECORD_WRITE"
	PermDailyRecordDelete = "DAILY_RECORD_DELETE"

	PermUserRead       = "USER_READ"
	PermUserWrite      = "USER_WRITE"
	PermUserDelete     = "USER_DELETE"
	PermUserAssignRole = "USER_ASSIGN_ROLE"

	PermConsultationRead   = "CONSULTATION_READ"
	PermConsultationWrite  = "CONSULTATION_WRITE"
	PermConsultationDelete = "CONSULTATION_DELETE"

	PermAdmissionRead      = "ADMISSION_READ"
	PermAdmissionWrite     = "ADMISSION_WRITE"
	PermAdmissionDischarge = "ADMISSION_DISCHARGE"

	PermDepartmentRead   = "DEPARTMENT_READ"
	PermDepartmentWrite  = "DEPARTMENT_WRITE"
	PermDepartmentDelete = "DEPARTMENT_DELETE"

	PermMedicalRecordRead   = "MEDICAL_RECORD_READ"
	PermMedicalRecordWrite  = "MEDICAL_RECORD_WRITE"
	PermMedicalRecordDelete = "MEDICAL_RECORD_DELETE"

	PermAuditRead = "AUDIT_READ"

	PermReportReadPatient      = "REPORT_READ_PATIENT"
	PermReportReadAdmission    = "REPORT_READ_ADMISSION"
	PermReportReadConsultation = "REPORT_READ_CONSULTATION"
)
