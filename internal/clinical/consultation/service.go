package consultation

import (
	"context"
	"log/slog"
	"time"

	"github.com/hgs/siags/internal/platform/validate"
)

// Auditor records consultation mutations in the audit trail.
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

func (service *Service) ListConsultations(context context.Context, f Filter, limit, offset int) ([]*Consultation, int, error) {
	return service.repo.ListConsultations(context, f, limit, offset)
}

func (service *Service) GetConsultation(context context.Context, id int64) (*Consultation, error) {
	return service.repo.GetConsultation(context, id)
}

func (service *Service) CreateConsultation(context context.Context, actorID int64, c *Consultation) error {
	if err := service.validateConsultation(c); err != nil {
		return err
	}

	if c.ConsultationDate.IsZero() {
		c.ConsultationDate = time.Now()
	}
	c.RecordedByID = actorID
	c.RecordedAt = time.Now()

	if err := service.repo.CreateConsultation(context, c); err != nil {
		return err
	}

	service.auditor.Record(context, actorID, "CREATE", "CONSULTATION", c.ID, "Consultation recorded")
	service.logger.Info("consultation_created",
		slog.Int64("consultation_id", c.ID),
		slog.Int64("patient_id", c.PatientID),
		slog.Int64("doctor_id", c.DoctorID),
	)
	return nil
}

func (service *Service) UpdateConsultation(context context.Context, actorID, id int64, c *Consultation) error {
	current, err := service.repo.GetConsultation(context, id)
	if err != nil {
		return err
	}

	// The patient and the recording clerk never change after the fact.
	c.ID = id
	c.PatientID = current.PatientID
	c.RecordedByID = current.RecordedByID
	c.RecordedAt = current.RecordedAt

	if c.DoctorID == 0 {
		c.DoctorID = current.DoctorID
	}
	if c.ConsultationDate.IsZero() {
		c.ConsultationDate = current.ConsultationDate
	}

	if err := service.validateConsultation(c); err != nil {
		return err
	}

	if err := service.repo.UpdateConsultation(context, c); err != nil {
		return err
	}

	service.auditor.Record(context, actorID, "UPDATE", "CONSULTATION", id, "Consultation updated")
	service.logger.Info("consultation_updated", slog.Int64("consultation_id", id))
	return nil
}

func (service *Service) DeleteConsultation(context context.Context, actorID, id int64) error {
	if err := service.repo.DeleteConsultation(context, id); err != nil {
		return err
	}

	service.auditor.Record(context, actorID, "DELETE", "CONSULTATION", id, "Consultation deleted")
	service.logger.Warn("consultation_deleted", slog.Int64("consultation_id", id))
	return nil
}

func (service *Service) validateConsultation(c *Consultation) error {
	validator := &validate.Validator{}

	validator.Custom(FieldPatientID, c.PatientID <= 0, "A patient is required")
	validator.Custom(FieldDoctorID, c.DoctorID <= 0, "A doctor is required")
	validator.Required(FieldReasonForConsultation, c.ReasonForConsultation).
		MaxLen(FieldReasonForConsultation, c.ReasonForConsultation, 500)

	return validator.Err()
}
