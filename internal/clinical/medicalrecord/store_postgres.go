package medicalrecord

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hgs/siags/internal/platform/database/schema"
	"github.com/hgs/siags/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) GetByPatient(context context.Context, patientID int64) (*MedicalRecord, error) {
	t := schema.ClinicalMedicalRecord
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s WHERE %s = $1
	`,
		t.ID, t.PatientID, t.MedicalHistory, t.FamilyHistory, t.Allergies,
		t.CurrentMedications, t.Notes, t.CreatedAt, t.UpdatedAt,
		t.Table, t.PatientID,
	)

	record := &MedicalRecord{}
	err := repository.db.QueryRow(context, query, patientID).Scan(
		&record.ID, &record.PatientID, &record.MedicalHistory, &record.FamilyHistory,
		&record.Allergies, &record.CurrentMedications, &record.Notes,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_medical_record")
	}

	events, err := repository.ListEvents(context, record.ID)
	if err != nil {
		return nil, err
	}
	record.Events = events

	return record, nil
}

func (repository *PostgresRepository) Create(context context.Context, record *MedicalRecord) error {
	t := schema.ClinicalMedicalRecord
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`,
		t.Table, t.PatientID, t.MedicalHistory, t.FamilyHistory, t.Allergies,
		t.CurrentMedications, t.Notes, t.CreatedAt, t.UpdatedAt, t.ID,
	)

	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	err := repository.db.QueryRow(context, query,
		record.PatientID, record.MedicalHistory, record.FamilyHistory, record.Allergies,
		record.CurrentMedications, record.Notes, record.CreatedAt, record.UpdatedAt,
	).Scan(&record.ID)

	return dberr.Wrap(err, "create_medical_record")
}

func (repository *PostgresRepository) Update(context context.Context, record *MedicalRecord) error {
	t := schema.ClinicalMedicalRecord
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1
	`,
		t.Table, t.MedicalHistory, t.FamilyHistory, t.Allergies,
		t.CurrentMedications, t.Notes, t.UpdatedAt, t.ID,
	)

	record.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		record.ID, record.MedicalHistory, record.FamilyHistory, record.Allergies,
		record.CurrentMedications, record.Notes, record.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_medical_record")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) AppendEvent(context context.Context, event *MedicalEvent) error {
	t := schema.ClinicalMedicalEvent
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`,
		t.Table, t.MedicalRecordID, t.DoctorID, t.EventType, t.Description, t.EventDate, t.ID,
	)

	err := repository.db.QueryRow(context, query,
		event.MedicalRecordID, event.DoctorID, event.EventType, event.Description, event.EventDate,
	).Scan(&event.ID)

	return dberr.Wrap(err, "append_medical_event")
}

func (repository *PostgresRepository) ListEvents(context context.Context, medicalRecordID int64) ([]MedicalEvent, error) {
	t := schema.ClinicalMedicalEvent
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s WHERE %s = $1 ORDER BY %s DESC
	`,
		t.ID, t.MedicalRecordID, t.DoctorID, t.EventType, t.Description, t.EventDate,
		t.Table, t.MedicalRecordID, t.EventDate,
	)

	rows, err := repository.db.Query(context, query, medicalRecordID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_medical_events")
	}
	defer rows.Close()

	events := []MedicalEvent{}
	for rows.Next() {
		var event MedicalEvent
		err := rows.Scan(
			&event.ID, &event.MedicalRecordID, &event.DoctorID,
			&event.EventType, &event.Description, &event.EventDate,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_medical_event")
		}
		events = append(events, event)
	}

	return events, nil
}
