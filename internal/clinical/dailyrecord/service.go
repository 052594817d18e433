package dailyrecord

import (
	"context"
	"log/slog"
	"time"

	"github.com/hgs/siags/internal/platform/validate"
)

// Auditor records daily record mutations in the audit trail.
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

func (service *Service) ListDailyRecords(context context.Context, f Filter, limit, offset int) ([]*DailyRecord, int, error) {
	return service.repo.ListDailyRecords(context, f, limit, offset)
}

func (service *Service) GetDailyRecord(context context.Context, id int64) (*DailyRecord, error) {
	return service.repo.GetDailyRecord(context, id)
}

func (service *Service) CreateDailyRecord(context context.Context, actorID int64, record *DailyRecord) error {
	if err := service.validateDailyRecord(record); err != nil {
		return err
	}

	if record.RecordDate.IsZero() {
		record.RecordDate = time.Now()
	}
	record.RecordedByID = actorID

	if err := service.repo.CreateDailyRecord(context, record); err != nil {
		return err
	}

	service.auditor.Record(context, actorID, "CREATE", "PATIENT", record.PatientID, "Daily record added")
	service.logger.Info("daily_record_created",
		slog.Int64("daily_record_id", record.ID),
		slog.Int64("patient_id", record.PatientID),
	)
	return nil
}

func (service *Service) UpdateDailyRecord(context context.Context, actorID, id int64, record *DailyRecord) error {
	current, err := service.repo.GetDailyRecord(context, id)
	if err != nil {
		return err
	}

	// Ownership of the sheet never changes after creation.
	record.ID = id
	record.PatientID = current.PatientID
	record.RecordedByID = current.RecordedByID

	if record.RecordDate.IsZero() {
		record.RecordDate = current.RecordDate
	}

	if err := service.validateDailyRecord(record); err != nil {
		return err
	}

	if err := service.repo.UpdateDailyRecord(context, record); err != nil {
		return err
	}

	service.auditor.Record(context, actorID, "UPDATE", "PATIENT", record.PatientID, "Daily record updated")
	service.logger.Info("daily_record_updated", slog.Int64("daily_record_id", id))
	return nil
}

func (service *Service) DeleteDailyRecord(context context.Context, actorID, id int64) error {
	record, err := service.repo.GetDailyRecord(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.DeleteDailyRecord(context, id); err != nil {
		return err
	}

	service.auditor.Record(context, actorID, "DELETE", "PATIENT", record.PatientID, "Daily record deleted")
	service.logger.Warn("daily_record_deleted", slog.Int64("daily_record_id", id))
	return nil
}

func (service *Service) validateDailyRecord(record *DailyRecord) error {
	validator := &validate.Validator{}

	validator.Custom(FieldPatientID, record.PatientID <= 0, "A patient is required")
	if record.Temperature != nil {
		validator.Custom(FieldTemperature, *record.Temperature < 25 || *record.Temperature > 45,
			"Temperature must be between 25 and 45 degrees Celsius")
	}
	if record.HeartRate != nil {
		validator.Range(FieldHeartRate, *record.HeartRate, 0, 300)
	}
	if record.OxygenSaturation != nil {
		validator.Range(FieldOxygenSaturation, *record.OxygenSaturation, 0, 100)
	}

	return validator.Err()
}
