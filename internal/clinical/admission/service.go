package admission

import (
	"context"
	"log/slog"
	"time"

	"github.com/hgs/siags/internal/platform/apperr"
	"github.com/hgs/siags/internal/platform/validate"
	"github.com/hgs/siags/pkg/pointer"
)

// Auditor records admission lifecycle events in the audit trail.
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

func (service *Service) ListAdmissions(context context.Context, f Filter, limit, offset int) ([]*Admission, int, error) {
	return service.repo.ListAdmissions(context, f, limit, offset)
}

func (service *Service) GetAdmission(context context.Context, id int64) (*Admission, error) {
	return service.repo.GetAdmission(context, id)
}

func (service *Service) CreateAdmission(context context.Context, actorID int64, a *Admission) error {
	validator := &validate.Validator{}
	validator.Custom(FieldPatientID, a.PatientID <= 0, "A patient is required")
	validator.Required(FieldReason, a.ReasonForAdmission)

	if err := validator.Err(); err != nil {
		return err
	}

	if a.AdmissionDate.IsZero() {
		a.AdmissionDate = time.Now()
	}
	a.Status = StatusActive
	a.PersonnelID = actorID

	if err := service.repo.CreateAdmission(context, a); err != nil {
		return err
	}

	service.auditor.Record(context, actorID, "CREATE", "ADMISSION", a.ID, "Patient admitted")
	service.logger.Info("admission_created",
		slog.Int64("admission_id", a.ID),
		slog.Int64("patient_id", a.PatientID),
	)
	return nil
}

func (service *Service) UpdateAdmission(context context.Context, actorID, id int64, a *Admission) error {
	current, err := service.repo.GetAdmission(context, id)
	if err != nil {
		return err
	}

	a.ID = id
	a.PatientID = current.PatientID
	a.PersonnelID = current.PersonnelID

	validator := &validate.Validator{}
	validator.Required(FieldReason, a.ReasonForAdmission)
	validator.OneOf(FieldStatus, a.Status, Statuses...)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateAdmission(context, a); err != nil {
		return err
	}

	service.auditor.Record(context, actorID, "UPDATE", "ADMISSION", id, "Admission updated")
	service.logger.Info("admission_updated", slog.Int64("admission_id", id))
	return nil
}

// Discharge closes an active admission with a summary.
//
// Only ACTIVE admissions can be discharged. The discharge timestamp is set
// server-side; clients cannot backdate a discharge.
func (service *Service) Discharge(context context.Context, actorID, id int64, summary string) (*Admission, error) {
	a, err := service.repo.GetAdmission(context, id)
	if err != nil {
		return nil, err
	}

	if a.Status != StatusActive {
		return nil, apperr.Conflict("Only active admissions can be discharged")
	}

	validator := &validate.Validator{}
	validator.Required(FieldSummary, summary)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	a.Status = StatusDischarged
	a.DischargeDate = pointer.To(time.Now())
	a.DischargeSummary = summary

	if err := service.repo.UpdateAdmission(context, a); err != nil {
		return nil, err
	}

	service.auditor.Record(context, actorID, "UPDATE", "ADMISSION", id, "Patient discharged")
	service.logger.Info("admission_discharged",
		slog.Int64("admission_id", id),
		slog.Int64("patient_id", a.PatientID),
	)
	return a, nil
}

func (service *Service) DeleteAdmission(context context.Context, actorID, id int64) error {
	if err := service.repo.DeleteAdmission(context, id); err != nil {
		return err
	}

	service.auditor.Record(context, actorID, "DELETE", "ADMISSION", id, "Admission deleted")
	service.logger.Warn("admission_deleted", slog.Int64("admission_id", id))
	return nil
}
