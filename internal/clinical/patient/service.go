package patient

import (
	"context"
	"log/slog"

	"github.com/hgs/siags/internal/platform/validate"
)

// Auditor records patient registry mutations in the audit trail.
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

func (service *Service) ListPatients(context context.Context, f Filter, limit, offset int) ([]*Patient, int, error) {
	return service.repo.ListPatients(context, f, limit, offset)
}

func (service *Service) GetPatient(context context.Context, id int64) (*Patient, error) {
	return service.repo.GetPatient(context, id)
}

func (service *Service) GetPatientByRecordNumber(context context.Context, recordNumber string) (*Patient, error) {
	return service.repo.GetPatientByRecordNumber(context, recordNumber)
}

func (service *Service) CreatePatient(context context.Context, actorID int64, p *Patient) error {
	if err := service.validatePatient(p); err != nil {
		return err
	}

	if err := service.repo.CreatePatient(context, p); err != nil {
		return err
	}

	service.auditor.Record(context, actorID, "CREATE", "PATIENT", p.ID, "Patient registered")
	service.logger.Info("patient_created",
		slog.Int64("patient_id", p.ID),
		slog.String("record_number", p.RecordNumber),
	)
	return nil
}

func (service *Service) UpdatePatient(context context.Context, actorID, id int64, p *Patient) error {
	p.ID = id
	if err := service.validatePatient(p); err != nil {
		return err
	}

	if err := service.repo.UpdatePatient(context, p); err != nil {
		return err
	}

	service.auditor.Record(context, actorID, "UPDATE", "PATIENT", id, "Patient updated")
	service.logger.Info("patient_updated", slog.Int64("patient_id", id))
	return nil
}

func (service *Service) DeletePatient(context context.Context, actorID, id int64) error {
	if err := service.repo.DeletePatient(context, id); err != nil {
		return err
	}

	service.auditor.Record(context, actorID, "DELETE", "PATIENT", id, "Patient deleted")
	service.logger.Warn("patient_deleted", slog.Int64("patient_id", id))
	return nil
}

func (service *Service) validatePatient(p *Patient) error {
	validator := &validate.Validator{}

	validator.Required(FieldLastName, p.LastName).MaxLen(FieldLastName, p.LastName, 100)
	validator.Required(FieldFirstName, p.FirstName).MaxLen(FieldFirstName, p.FirstName, 100)
	validator.Required(FieldRecordNumber, p.RecordNumber).MaxLen(FieldRecordNumber, p.RecordNumber, 50)

	if p.Gender != "" {
		validator.OneOf(FieldGender, p.Gender, "M", "F")
	}
	if p.Email != "" {
		validator.Email(FieldEmail, p.Email)
	}
	if p.BloodType != "" {
		validator.OneOf(FieldBloodType, p.BloodType, BloodTypes...)
	}

	return validator.Err()
}
