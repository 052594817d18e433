// Package auditlog records who did what to which resource.
//
// Every security-sensitive operation (sign-ins, account changes, clinical
// record mutations) appends an immutable entry here. Entries are written
// fire-and-forget: a failing audit write is logged but never fails the
// operation that triggered it.
package auditlog

import "time"

// Entry is a single audit trail record.
type Entry struct {
	ID         int64     `json:"id"`
	AccountID  int64     `json:"account_id"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID int64     `json:"resource_id,omitempty"`
	Details    string    `json:"details,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Recognized actions.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionRead   = "READ"
	ActionLogin  = "LOGIN"
	ActionLogout = "LOGOUT"
)

// Recognized resources.
const (
	ResourcePatient       = "PATIENT"
	ResourceConsultation  = "CONSULTATION"
	ResourceMedicalRecord = "MEDICAL_RECORD"
	ResourceAdmission     = "ADMISSION"
	ResourceUser          = "USER"
	ResourceRole          = "ROLE"
	ResourcePermission    = "PERMISSION"
)

// Filter narrows audit log listings.
type Filter struct {
	AccountID int64
	Action    string
	Resource  string
	From      time.Time
	To        time.Time
}
