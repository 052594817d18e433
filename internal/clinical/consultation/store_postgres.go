package consultation

import (
	"context"
	"fmt"
	"strconv"

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

func consultationColumns() string {
	t := schema.ClinicalConsultation
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.PatientID, t.DoctorID, t.ConsultationDate, t.ReasonForConsultation,
		t.Observations, t.Diagnosis, t.TreatmentPlan, t.Notes, t.RecordedByID, t.RecordedAt)
}

func scanConsultation(row interface{ Scan(...any) error }) (*Consultation, error) {
	c := &Consultation{}
	err := row.Scan(
		&c.ID, &c.PatientID, &c.DoctorID, &c.ConsultationDate, &c.ReasonForConsultation,
		&c.Observations, &c.Diagnosis, &c.TreatmentPlan, &c.Notes, &c.RecordedByID, &c.RecordedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (repository *PostgresRepository) ListConsultations(context context.Context, f Filter, limit, offset int) ([]*Consultation, int, error) {
	t := schema.ClinicalConsultation

	where := ` WHERE 1=1`
	args := []any{}

	if f.PatientID > 0 {
		args = append(args, f.PatientID)
		where += ` AND ` + t.PatientID + ` = $` + itos(len(args))
	}
	if f.DoctorID > 0 {
		args = append(args, f.DoctorID)
		where += ` AND ` + t.DoctorID + ` = $` + itos(len(args))
	}
	if f.Diagnosis != "" {
		args = append(args, "%"+f.Diagnosis+"%")
		where += ` AND ` + t.Diagnosis + ` ILIKE $` + itos(len(args))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		where += ` AND ` + t.ConsultationDate + ` >= $` + itos(len(args))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		where += ` AND ` + t.ConsultationDate + ` <= $` + itos(len(args))
	}

	countQuery := `SELECT count(*) FROM ` + t.Table + where

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_consultations")
	}

	query := `SELECT ` + consultationColumns() + ` FROM ` + t.Table + where +
		` ORDER BY ` + t.ConsultationDate + ` DESC` +
		` LIMIT $` + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_consultations")
	}
	defer rows.Close()

	var consultations []*Consultation
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_consultation")
		}
		consultations = append(consultations, c)
	}

	return consultations, total, nil
}

func (repository *PostgresRepository) GetConsultation(context context.Context, id int64) (*Consultation, error) {
	t := schema.ClinicalConsultation
	query := `SELECT ` + consultationColumns() + ` FROM ` + t.Table + ` WHERE ` + t.ID + ` = $1`

	c, err := scanConsultation(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_consultation")
	}
	return c, nil
}

func (repository *PostgresRepository) CreateConsultation(context context.Context, c *Consultation) error {
	t := schema.ClinicalConsultation
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s
	`,
		t.Table, t.PatientID, t.DoctorID, t.ConsultationDate, t.ReasonForConsultation,
		t.Observations, t.Diagnosis, t.TreatmentPlan, t.Notes, t.RecordedByID, t.RecordedAt,
		t.ID,
	)

	err := repository.db.QueryRow(context, query,
		c.PatientID, c.DoctorID, c.ConsultationDate, c.ReasonForConsultation,
		c.Observations, c.Diagnosis, c.TreatmentPlan, c.Notes, c.RecordedByID, c.RecordedAt,
	).Scan(&c.ID)

	return dberr.Wrap(err, "create_consultation")
}

func (repository *PostgresRepository) UpdateConsultation(context context.Context, c *Consultation) error {
	t := schema.ClinicalConsultation
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		WHERE %s = $1
	`,
		t.Table, t.DoctorID, t.ConsultationDate, t.ReasonForConsultation,
		t.Observations, t.Diagnosis, t.TreatmentPlan, t.Notes, t.ID,
	)

	tag, err := repository.db.Exec(context, query,
		c.ID, c.DoctorID, c.ConsultationDate, c.ReasonForConsultation,
		c.Observations, c.Diagnosis, c.TreatmentPlan, c.Notes,
	)
	if err != nil {
		return dberr.Wrap(err, "update_consultation")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) DeleteConsultation(context context.Context, id int64) error {
	t := schema.ClinicalConsultation
	tag, err := repository.db.Exec(context, `DELETE FROM `+t.Table+` WHERE `+t.ID+` = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_consultation")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func itos(i int) string { return strconv.Itoa(i) }
