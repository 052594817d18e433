package report

import (
	"context"
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

func (repository *PostgresRepository) CountPatients(context context.Context) (int64, error) {
	var total int64
	err := repository.db.QueryRow(context,
		`SELECT count(*) FROM `+schema.ClinicalPatient.Table,
	).Scan(&total)
	return total, dberr.Wrap(err, "count_patients")
}

func (repository *PostgresRepository) PatientGenderDistribution(context context.Context) ([]GenderCount, error) {
	t := schema.ClinicalPatient
	rows, err := repository.db.Query(context,
		`SELECT `+t.Gender+`, count(*) FROM `+t.Table+
			` GROUP BY `+t.Gender+` ORDER BY `+t.Gender,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "patient_gender_distribution")
	}
	defer rows.Close()

	counts := []GenderCount{}
	for rows.Next() {
		var c GenderCount
		if err := rows.Scan(&c.Gender, &c.Count); err != nil {
			return nil, dberr.Wrap(err, "scan_gender_count")
		}
		counts = append(counts, c)
	}
	return counts, nil
}

func (repository *PostgresRepository) CountAdmissions(context context.Context) (int64, error) {
	var total int64
	err := repository.db.QueryRow(context,
		`SELECT count(*) FROM `+schema.ClinicalAdmission.Table,
	).Scan(&total)
	return total, dberr.Wrap(err, "count_admissions")
}

func (repository *PostgresRepository) CountAdmissionsBetween(context context.Context, from, to time.Time) (int64, error) {
	t := schema.ClinicalAdmission
	var total int64
	err := repository.db.QueryRow(context,
		`SELECT count(*) FROM `+t.Table+
			` WHERE `+t.AdmissionDate+` >= $1 AND `+t.AdmissionDate+` <= $2`,
		from, to,
	).Scan(&total)
	return total, dberr.Wrap(err, "count_admissions_between")
}

func (repository *PostgresRepository) AdmissionCountByDepartment(context context.Context) ([]DepartmentAdmissionCount, error) {
	a := schema.ClinicalAdmission
	d := schema.ClinicalDepartment
	query := `
		SELECT d.` + d.ID + `, d.` + d.Name + `, count(a.` + a.ID + `)
		FROM ` + d.Table + ` d
		LEFT JOIN ` + a.Table + ` a ON a.` + a.DepartmentID + ` = d.` + d.ID + `
		GROUP BY d.` + d.ID + `, d.` + d.Name + `
		ORDER BY count(a.` + a.ID + `) DESC
	`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "admission_count_by_department")
	}
	defer rows.Close()

	counts := []DepartmentAdmissionCount{}
	for rows.Next() {
		var c DepartmentAdmissionCount
		if err := rows.Scan(&c.DepartmentID, &c.DepartmentName, &c.Count); err != nil {
			return nil, dberr.Wrap(err, "scan_department_admission_count")
		}
		counts = append(counts, c)
	}
	return counts, nil
}

func (repository *PostgresRepository) MonthlyAdmissionCounts(context context.Context, year int) ([]MonthlyAdmissionCount, error) {
	t := schema.ClinicalAdmission
	query := `
		SELECT extract(month FROM ` + t.AdmissionDate + `)::int AS month, count(*)
		FROM ` + t.Table + `
		WHERE extract(year FROM ` + t.AdmissionDate + `)::int = $1
		GROUP BY month
		ORDER BY month
	`

	rows, err := repository.db.Query(context, query, year)
	if err != nil {
		return nil, dberr.Wrap(err, "monthly_admission_counts")
	}
	defer rows.Close()

	counts := []MonthlyAdmissionCount{}
	for rows.Next() {
		var c MonthlyAdmissionCount
		if err := rows.Scan(&c.Month, &c.Count); err != nil {
			return nil, dberr.Wrap(err, "scan_monthly_admission_count")
		}
		counts = append(counts, c)
	}
	return counts, nil
}

func (repository *PostgresRepository) CountConsultations(context context.Context) (int64, error) {
	var total int64
	err := repository.db.QueryRow(context,
		`SELECT count(*) FROM `+schema.ClinicalConsultation.Table,
	).Scan(&total)
	return total, dberr.Wrap(err, "count_consultations")
}

func (repository *PostgresRepository) CountConsultationsBetween(context context.Context, from, to time.Time) (int64, error) {
	t := schema.ClinicalConsultation
	var total int64
	err := repository.db.QueryRow(context,
		`SELECT count(*) FROM `+t.Table+
			` WHERE `+t.ConsultationDate+` >= $1 AND `+t.ConsultationDate+` <= $2`,
		from, to,
	).Scan(&total)
	return total, dberr.Wrap(err, "count_consultations_between")
}

func (repository *PostgresRepository) ConsultationCountByDoctor(context context.Context) ([]DoctorConsultationCount, error) {
	c := schema.ClinicalConsultation
	u := schema.IamAccount
	query := `
		SELECT c.` + c.DoctorID + `, u.` + u.Username + `, count(*)
		FROM ` + c.Table + ` c
		JOIN ` + u.Table + ` u ON u.` + u.ID + ` = c.` + c.DoctorID + `
		GROUP BY c.` + c.DoctorID + `, u.` + u.Username + `
		ORDER BY count(*) DESC
	`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "consultation_count_by_doctor")
	}
	defer rows.Close()

	counts := []DoctorConsultationCount{}
	for rows.Next() {
		var dc DoctorConsultationCount
		if err := rows.Scan(&dc.DoctorID, &dc.Username, &dc.Count); err != nil {
			return nil, dberr.Wrap(err, "scan_doctor_consultation_count")
		}
		counts = append(counts, dc)
	}
	return counts, nil
}

func (repository *PostgresRepository) DiagnosisFrequencies(context context.Context, limit int) ([]DiagnosisFrequency, error) {
	t := schema.ClinicalConsultation
	query := `
		SELECT ` + t.Diagnosis + `, count(*)
		FROM ` + t.Table + `
		WHERE ` + t.Diagnosis + ` <> ''
		GROUP BY ` + t.Diagnosis + `
		ORDER BY count(*) DESC
		LIMIT $1
	`

	rows, err := repository.db.Query(context, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "diagnosis_frequencies")
	}
	defer rows.Close()

	frequencies := []DiagnosisFrequency{}
	for rows.Next() {
		var f DiagnosisFrequency
		if err := rows.Scan(&f.Diagnosis, &f.Count); err != nil {
			return nil, dberr.Wrap(err, "scan_diagnosis_frequency")
		}
		frequencies = append(frequencies, f)
	}
	return frequencies, nil
}
