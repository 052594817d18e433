package admission

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

func admissionColumns() string {
	t := schema.ClinicalAdmission
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.PatientID, t.AdmissionDate, t.ReasonForAdmission, t.DepartmentID,
		t.RoomNumber, t.BedNumber, t.Status, t.Diagnosis, t.DischargeDate,
		t.DischargeSummary, t.PersonnelID, t.CreatedAt, t.UpdatedAt)
}

func scanAdmission(row interface{ Scan(...any) error }) (*Admission, error) {
	a := &Admission{}
	err := row.Scan(
		&a.ID, &a.PatientID, &a.AdmissionDate, &a.ReasonForAdmission, &a.DepartmentID,
		&a.RoomNumber, &a.BedNumber, &a.Status, &a.Diagnosis, &a.DischargeDate,
		&a.DischargeSummary, &a.PersonnelID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (repository *PostgresRepository) ListAdmissions(context context.Context, f Filter, limit, offset int) ([]*Admission, int, error) {
	t := schema.ClinicalAdmission

	where := ` WHERE 1=1`
	args := []any{}

	if f.PatientID != 0 {
		args = append(args, f.PatientID)
		where += ` AND ` + t.PatientID + ` = $` + itos(len(args))
	}
	if f.DepartmentID != 0 {
		args = append(args, f.DepartmentID)
		where += ` AND ` + t.DepartmentID + ` = $` + itos(len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += ` AND ` + t.Status + ` = $` + itos(len(args))
	}

	countQuery := `SELECT count(*) FROM ` + t.Table + where

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_admissions")
	}

	query := `SELECT ` + admissionColumns() + ` FROM ` + t.Table + where +
		` ORDER BY ` + t.AdmissionDate + ` DESC LIMIT $` + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_admissions")
	}
	defer rows.Close()

	var admissions []*Admission
	for rows.Next() {
		a, err := scanAdmission(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_admission")
		}
		admissions = append(admissions, a)
	}

	return admissions, total, nil
}

func (repository *PostgresRepository) GetAdmission(context context.Context, id int64) (*Admission, error) {
	t := schema.ClinicalAdmission
	query := `SELECT ` + admissionColumns() + ` FROM ` + t.Table + ` WHERE ` + t.ID + ` = $1`

	a, err := scanAdmission(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_admission")
	}
	return a, nil
}

func (repository *PostgresRepository) CreateAdmission(context context.Context, a *Admission) error {
	t := schema.ClinicalAdmission
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s
	`,
		t.Table, t.PatientID, t.AdmissionDate, t.ReasonForAdmission, t.DepartmentID,
		t.RoomNumber, t.BedNumber, t.Status, t.Diagnosis, t.DischargeDate,
		t.DischargeSummary, t.PersonnelID, t.CreatedAt, t.UpdatedAt, t.ID,
	)

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	err := repository.db.QueryRow(context, query,
		a.PatientID, a.AdmissionDate, a.ReasonForAdmission, a.DepartmentID,
		a.RoomNumber, a.BedNumber, a.Status, a.Diagnosis, a.DischargeDate,
		a.DischargeSummary, a.PersonnelID, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)

	return dberr.Wrap(err, "create_admission")
}

func (repository *PostgresRepository) UpdateAdmission(context context.Context, a *Admission) error {
	t := schema.ClinicalAdmission
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
			%s = $9, %s = $10, %s = $11
		WHERE %s = $1
	`,
		t.Table, t.AdmissionDate, t.ReasonForAdmission, t.DepartmentID, t.RoomNumber,
		t.BedNumber, t.Status, t.Diagnosis, t.DischargeDate, t.DischargeSummary,
		t.UpdatedAt, t.ID,
	)

	a.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		a.ID, a.AdmissionDate, a.ReasonForAdmission, a.DepartmentID, a.RoomNumber,
		a.BedNumber, a.Status, a.Diagnosis, a.DischargeDate, a.DischargeSummary, a.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_admission")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) DeleteAdmission(context context.Context, id int64) error {
	t := schema.ClinicalAdmission
	tag, err := repository.db.Exec(context, `DELETE FROM `+t.Table+` WHERE `+t.ID+` = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_admission")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func itos(i int) string { return strconv.Itoa(i) }
