package patient

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

func patientColumns() string {
	t := schema.ClinicalPatient
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.LastName, t.FirstName, t.Gender, t.BirthDate, t.Address, t.City, t.ZipCode,
		t.PhoneNumber, t.RecordNumber, t.Email, t.BloodType, t.KnownIllnesses, t.Allergies,
		t.CreatedAt, t.UpdatedAt)
}

func scanPatient(row interface{ Scan(...any) error }) (*Patient, error) {
	p := &Patient{}
	err := row.Scan(
		&p.ID, &p.LastName, &p.FirstName, &p.Gender, &p.BirthDate, &p.Address, &p.City,
		&p.ZipCode, &p.PhoneNumber, &p.RecordNumber, &p.Email, &p.BloodType,
		&p.KnownIllnesses, &p.Allergies, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (repository *PostgresRepository) ListPatients(context context.Context, f Filter, limit, offset int) ([]*Patient, int, error) {
	t := schema.ClinicalPatient

	where := ` WHERE 1=1`
	args := []any{}

	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := itos(len(args))
		where += ` AND (` + t.LastName + ` ILIKE $` + n +
			` OR ` + t.FirstName + ` ILIKE $` + n +
			` OR ` + t.RecordNumber + ` ILIKE $` + n + `)`
	}
	if f.City != "" {
		args = append(args, f.City)
		where += ` AND ` + t.City + ` = $` + itos(len(args))
	}

	countQuery := `SELECT count(*) FROM ` + t.Table + where

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_patients")
	}

	query := `SELECT ` + patientColumns() + ` FROM ` + t.Table + where +
		` ORDER BY ` + t.LastName + `, ` + t.FirstName +
		` LIMIT $` + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_patients")
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_patient")
		}
		patients = append(patients, p)
	}

	return patients, total, nil
}

func (repository *PostgresRepository) GetPatient(context context.Context, id int64) (*Patient, error) {
	t := schema.ClinicalPatient
	query := `SELECT ` + patientColumns() + ` FROM ` + t.Table + ` WHERE ` + t.ID + ` = $1`

	p, err := scanPatient(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_patient")
	}
	return p, nil
}

func (repository *PostgresRepository) GetPatientByRecordNumber(context context.Context, recordNumber string) (*Patient, error) {
	t := schema.ClinicalPatient
	query := `SELECT ` + patientColumns() + ` FROM ` + t.Table + ` WHERE ` + t.RecordNumber + ` = $1`

	p, err := scanPatient(repository.db.QueryRow(context, query, recordNumber))
	if err != nil {
		return nil, dberr.Wrap(err, "get_patient_by_record_number")
	}
	return p, nil
}

func (repository *PostgresRepository) CreatePatient(context context.Context, p *Patient) error {
	t := schema.ClinicalPatient
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING %s
	`,
		t.Table, t.LastName, t.FirstName, t.Gender, t.BirthDate, t.Address, t.City, t.ZipCode,
		t.PhoneNumber, t.RecordNumber, t.Email, t.BloodType, t.KnownIllnesses, t.Allergies,
		t.CreatedAt, t.UpdatedAt, t.ID,
	)

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	err := repository.db.QueryRow(context, query,
		p.LastName, p.FirstName, p.Gender, p.BirthDate, p.Address, p.City, p.ZipCode,
		p.PhoneNumber, p.RecordNumber, p.Email, p.BloodType, p.KnownIllnesses, p.Allergies,
		p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)

	return dberr.Wrap(err, "create_patient")
}

func (repository *PostgresRepository) UpdatePatient(context context.Context, p *Patient) error {
	t := schema.ClinicalPatient
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
			%s = $9, %s = $10, %s = $11, %s = $12, %s = $13, %s = $14
		WHERE %s = $1
	`,
		t.Table, t.LastName, t.FirstName, t.Gender, t.BirthDate, t.Address, t.City, t.ZipCode,
		t.PhoneNumber, t.Email, t.BloodType, t.KnownIllnesses, t.Allergies, t.UpdatedAt, t.ID,
	)

	p.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		p.ID, p.LastName, p.FirstName, p.Gender, p.BirthDate, p.Address, p.City, p.ZipCode,
		p.PhoneNumber, p.Email, p.BloodType, p.KnownIllnesses, p.Allergies, p.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_patient")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) DeletePatient(context context.Context, id int64) error {
	t := schema.ClinicalPatient
	tag, err := repository.db.Exec(context, `DELETE FROM `+t.Table+` WHERE `+t.ID+` = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_patient")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func itos(i int) string { return strconv.Itoa(i) }
