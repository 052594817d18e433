package dailyrecord

import (
	"context"
	"fmt"
	"strconv"
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

func dailyRecordColumns() string {
	t := schema.ClinicalDailyRecord
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.PatientID, t.RecordedByID, t.RecordDate, t.Observations,
		t.MedicationsAdministered, t.Temperature, t.BloodPressure, t.HeartRate,
		t.OxygenSaturation, t.CreatedAt, t.UpdatedAt)
}

func scanDailyRecord(row interface{ Scan(...any) error }) (*DailyRecord, error) {
	record := &DailyRecord{}
	err := row.Scan(
		&record.ID, &record.PatientID, &record.RecordedByID, &record.RecordDate,
		&record.Observations, &record.MedicationsAdministered, &record.Temperature,
		&record.BloodPressure, &record.HeartRate, &record.OxygenSaturation,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (repository *PostgresRepository) ListDailyRecords(context context.Context, f Filter, limit, offset int) ([]*DailyRecord, int, error) {
	t := schema.ClinicalDailyRecord

	where := ` WHERE 1=1`
	args := []any{}

	if f.PatientID > 0 {
		args = append(args, f.PatientID)
		where += ` AND ` + t.PatientID + ` = $` + itos(len(args))
	}
	if f.RecordedByID > 0 {
		args = append(args, f.RecordedByID)
		where += ` AND ` + t.RecordedByID + ` = $` + itos(len(args))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		where += ` AND ` + t.RecordDate + ` >= $` + itos(len(args))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		where += ` AND ` + t.RecordDate + ` <= $` + itos(len(args))
	}

	countQuery := `SELECT count(*) FROM ` + t.Table + where

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_daily_records")
	}

	query := `SELECT ` + dailyRecordColumns() + ` FROM ` + t.Table + where +
		` ORDER BY ` + t.RecordDate + ` DESC` +
		` LIMIT $` + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_daily_records")
	}
	defer rows.Close()

	var records []*DailyRecord
	for rows.Next() {
		record, err := scanDailyRecord(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_daily_record")
		}
		records = append(records, record)
	}

	return records, total, nil
}

func (repository *PostgresRepository) GetDailyRecord(context context.Context, id int64) (*DailyRecord, error) {
	t := schema.ClinicalDailyRecord
	query := `SELECT ` + dailyRecordColumns() + ` FROM ` + t.Table + ` WHERE ` + t.ID + ` = $1`

	record, err := scanDailyRecord(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_daily_record")
	}
	return record, nil
}

func (repository *PostgresRepository) CreateDailyRecord(context context.Context, record *DailyRecord) error {
	t := schema.ClinicalDailyRecord
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s
	`,
		t.Table, t.PatientID, t.RecordedByID, t.RecordDate, t.Observations,
		t.MedicationsAdministered, t.Temperature, t.BloodPressure, t.HeartRate,
		t.OxygenSaturation, t.CreatedAt, t.UpdatedAt, t.ID,
	)

	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	err := repository.db.QueryRow(context, query,
		record.PatientID, record.RecordedByID, record.RecordDate, record.Observations,
		record.MedicationsAdministered, record.Temperature, record.BloodPressure,
		record.HeartRate, record.OxygenSaturation, record.CreatedAt, record.UpdatedAt,
	).Scan(&record.ID)

	return dberr.Wrap(err, "create_daily_record")
}

func (repository *PostgresRepository) UpdateDailyRecord(context context.Context, record *DailyRecord) error {
	t := schema.ClinicalDailyRecord
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9
		WHERE %s = $1
	`,
		t.Table, t.RecordDate, t.Observations, t.MedicationsAdministered,
		t.Temperature, t.BloodPressure, t.HeartRate, t.OxygenSaturation,
		t.UpdatedAt, t.ID,
	)

	record.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		record.ID, record.RecordDate, record.Observations, record.MedicationsAdministered,
		record.Temperature, record.BloodPressure, record.HeartRate, record.OxygenSaturation,
		record.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_daily_record")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) DeleteDailyRecord(context context.Context, id int64) error {
	t := schema.ClinicalDailyRecord
	tag, err := repository.db.Exec(context, `DELETE FROM `+t.Table+` WHERE `+t.ID+` = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_daily_record")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func itos(i int) string { return strconv.Itoa(i) }
