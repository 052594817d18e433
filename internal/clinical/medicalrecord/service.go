package medicalrecord

import (
	"context"
	"log/slog"
	"time"

	"github.com/hgs/siags/internal/platform/validate"
)

// Auditor records dossier mutations in the audit trail.
type Auditor interface {
	Record(ctx context.Context, actorID int64, action, resource string, resourceID int64, details string)
}

type Service struct {
	repo    Repository
	auditor Auditor
	logger  *slog.Logger
}

func NewService(repo Repository, auditor Auditor, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		auditor: auditor,
		logger:  logger,
	}
}

func (service *Service) GetByPatient(context context.Context, actorID, patientID int64) (*MedicalRecord, error) {
	record, err := service.repo.GetByPatient(context, patientID)
	if err != nil {
		return nil, err
	}

	service.auditor.Record(context, actorID, "READ", "MEDICAL_RECORD", record.ID, "Medical record consulted")
	return record, nil
}

func (service *Service) CreateForPatient(context context.Context, actorID, patientID int64, record *MedicalRecord) error {
	record.PatientID = patientID
	record.Events = []MedicalEvent{}

	if err := service.repo.Create(context, record); err != nil {
		return err
	}

	service.auditor.Record(context, actorID, "CREATE", "MEDICAL_RECORD", record.ID, "Medical record opened")
	service.logger.Info("medical_record_created",
		slog.Int64("medical_record_id", record.ID),
		slog.Int64("patient_id", patientID),
	)
	return nil
}

func (service *Service) UpdateForPatient(context context.Context, actorID, patientID int64, record *MedicalRecord) (*MedicalRecord, error) {
	current, err := service.repo.GetByPatient(context, patientID)
	if err != nil {
		return nil, err
	}

	record.ID = current.ID
	record.PatientID = patientID

	if err := service.repo.Update(context, record); err != nil {
		return nil, err
	}

	service.auditor.Record(context, actorID, "UPDATE", "MEDICAL_RECORD", record.ID, "Medical record updated")
	service.logger.Info("medical_record_updated", slog.Int64("medical_record_id", record.ID))

	return service.repo.GetByPatient(context, patientID)
}

func (service *Service) AppendEvent(context context.Context, actorID, patientID int64, event *MedicalEvent) error {
	validator := &validate.Validator{}
	validator.Required(FieldEventType, event.EventType).MaxLen(FieldEventType, event.EventType, 100)
	validator.Required(FieldDescription, event.Description)
	if err := validator.Err(); err != nil {
		return err
	}

	record, err := service.repo.GetByPatient(context, patientID)
	if err != nil {
		return err
	}

	event.MedicalRecordID = record.ID
	event.DoctorID = actorID
	if event.EventDate.IsZero() {
		event.EventDate = time.Now()
	}

	if err := service.repo.AppendEvent(context, event); err != nil {
		return err
	}

	service.auditor.Record(context, actorID, "UPDATE", "MEDICAL_RECORD", record.ID, "Medical event added: "+event.EventType)
	service.logger.Info("medical_event_appended",
		slog.Int64("medical_record_id", record.ID),
		slog.String("event_type", event.EventType),
	)
	return nil
}
