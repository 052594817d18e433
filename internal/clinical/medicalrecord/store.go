package medicalrecord

import "context"

// Repository is the persistence contract for medical records and their events.
type Repository interface {
	GetByPatient(ctx context.Context, patientID int64) (*MedicalRecord, error)
	Create(ctx context.Context, record *MedicalRecord) error
	Update(ctx context.Context, record *MedicalRecord) error
	AppendEvent(ctx context.Context, event *MedicalEvent) error
	ListEvents(ctx context.Context, medicalRecordID int64) ([]MedicalEvent, error)
}
