package auditlog

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

func (repository *PostgresRepository) Append(context context.Context, entry *Entry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`,
		schema.SystemAuditLog.Table,
		schema.SystemAuditLog.AccountID, schema.SystemAuditLog.Action, schema.SystemAuditLog.Resource,
		schema.SystemAuditLog.ResourceID, schema.SystemAuditLog.Details, schema.SystemAuditLog.OccurredAt,
		schema.SystemAuditLog.ID,
	)

	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now()
	}

	err := repository.db.QueryRow(context, query,
		entry.AccountID, entry.Action, entry.Resource, entry.ResourceID, entry.Details, entry.OccurredAt,
	).Scan(&entry.ID)

	return dberr.Wrap(err, "append_audit_entry")
}

func (repository *PostgresRepository) List(context context.Context, f Filter, limit, offset int) ([]*Entry, int, error) {
	baseWhere := ` WHERE 1=1`
	args := []any{}

	if f.AccountID != 0 {
		args = append(args, f.AccountID)
		baseWhere += ` AND ` + schema.SystemAuditLog.AccountID + ` = $` + itos(len(args))
	}
	if f.Action != "" {
		args = append(args, f.Action)
		baseWhere += ` AND ` + schema.SystemAuditLog.Action + ` = $` + itos(len(args))
	}
	if f.Resource != "" {
		args = append(args, f.Resource)
		baseWhere += ` AND ` + schema.SystemAuditLog.Resource + ` = $` + itos(len(args))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		baseWhere += ` AND ` + schema.SystemAuditLog.OccurredAt + ` >= $` + itos(len(args))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		baseWhere += ` AND ` + schema.SystemAuditLog.OccurredAt + ` < $` + itos(len(args))
	}

	countQuery := `SELECT count(*) FROM ` + schema.SystemAuditLog.Table + baseWhere

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_audit_entries")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
	`,
		schema.SystemAuditLog.ID, schema.SystemAuditLog.AccountID, schema.SystemAuditLog.Action,
		schema.SystemAuditLog.Resource, schema.SystemAuditLog.ResourceID, schema.SystemAuditLog.Details,
		schema.SystemAuditLog.OccurredAt, schema.SystemAuditLog.Table,
	) + baseWhere +
		` ORDER BY ` + schema.SystemAuditLog.OccurredAt + ` DESC LIMIT $` + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_audit_entries")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Action, &e.Resource, &e.ResourceID, &e.Details, &e.OccurredAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_audit_entry")
		}
		entries = append(entries, e)
	}

	return entries, total, nil
}

func (repository *PostgresRepository) PurgeBefore(context context.Context, cutoffDays int) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s < now() - ($1 * interval '1 day')`,
		schema.SystemAuditLog.Table, schema.SystemAuditLog.OccurredAt)

	tag, err := repository.db.Exec(context, query, cutoffDays)
	if err != nil {
		return 0, dberr.Wrap(err, "purge_audit_entries")
	}

	return tag.RowsAffected(), nil
}

func itos(i int) string { return strconv.Itoa(i) }
