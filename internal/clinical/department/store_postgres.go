package department

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

func (repository *PostgresRepository) ListDepartments(context context.Context) ([]*Department, error) {
	t := schema.ClinicalDepartment
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s ORDER BY %s`,
		t.ID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt, t.Table, t.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_departments")
	}
	defer rows.Close()

	var departments []*Department
	for rows.Next() {
		d := &Department{}
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_department")
		}
		departments = append(departments, d)
	}

	return departments, nil
}

func (repository *PostgresRepository) GetDepartment(context context.Context, id int64) (*Department, error) {
	t := schema.ClinicalDepartment
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		t.ID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt, t.Table, t.ID)

	d := &Department{}
	err := repository.db.QueryRow(context, query, id).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_department")
	}

	return d, nil
}

func (repository *PostgresRepository) CreateDepartment(context context.Context, d *Department) error {
	t := schema.ClinicalDepartment
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s`,
		t.Table, t.Name, t.Description, t.CreatedAt, t.UpdatedAt, t.ID)

	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	err := repository.db.QueryRow(context, query, d.Name, d.Description, d.CreatedAt, d.UpdatedAt).Scan(&d.ID)
	return dberr.Wrap(err, "create_department")
}

func (repository *PostgresRepository) UpdateDepartment(context context.Context, d *Department) error {
	t := schema.ClinicalDepartment
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1`,
		t.Table, t.Name, t.Description, t.UpdatedAt, t.ID)

	d.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query, d.ID, d.Name, d.Description, d.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_department")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) DeleteDepartment(context context.Context, id int64) error {
	t := schema.ClinicalDepartment
	tag, err := repository.db.Exec(context, `DELETE FROM `+t.Table+` WHERE `+t.ID+` = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_department")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
