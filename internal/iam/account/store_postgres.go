// Copyright (c) 2026 HGS. All rights reserved.

// PostgreSQL implementation of the account repository.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hgs/siags/internal/iam/rbac"
	"github.com/hgs/siags/internal/platform/apperr"
	"github.com/hgs/siags/internal/platform/database/schema"
)

// PostgresRepository implements the Repository interface using pgx.
//
// Role hydration is delegated to the rbac repository so that both sign-in
// and account administration read roles through a single code path.
type PostgresRepository struct {
	pool  *pgxpool.Pool
	roles rbac.RoleRepository
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool, roles rbac.RoleRepository) *PostgresRepository {
	return &PostgresRepository{pool: pool, roles: roles}
}

var (
	accountTable   = schema.IamAccount
	accountColumns = strings.Join(accountTable.Columns(), ", ")
)

func scanAccount(row pgx.Row) (*Account, error) {
	acc := &Account{}
	err := row.Scan(
		&acc.ID,
		&acc.Username,
		&acc.Email,
		&acc.PasswordHash,
		&acc.AccountNonLocked,
		&acc.LockTime,
		&acc.FailedAttempts,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return acc, nil
}

/*
Create persists a new account record into the iam.account table.

Description: New accounts start unlocked with a zero failed-attempt counter.
The generated ID is assigned back onto the entity.

Parameters:
  - ctx: context.Context
  - acc: *Account (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresRepository) Create(ctx context.Context, acc *Account) error {
	const query = `
		INSERT INTO iam.account (
			username, email, passwordhash, accountnonlocked, locktime, failedattempts, createdat, updatedat
		) VALUES ($1, $2, $3, TRUE, NULL, 0, $4, $5)
		RETURNING id`

	now := time.Now()
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = now
	}
	acc.UpdatedAt = now
	acc.AccountNonLocked = true

	err := repository.pool.QueryRow(ctx, query,
		acc.Username,
		acc.Email,
		acc.PasswordHash,
		acc.CreatedAt,
		acc.UpdatedAt,
	).Scan(&acc.ID)

	if err != nil {
		return fmt.Errorf("postgres_account_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves an account record by its primary key.

Description: Roles and their permissions are hydrated through the rbac
repository after the base row is loaded.

Parameters:
  - ctx: context.Context
  - id: int64

Returns:
  - *Account: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM ` + accountTable.Table + ` WHERE ` + accountTable.ID + ` = $1`

	acc, err := scanAccount(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_id_failed: %w", err)
	}

	return repository.hydrateRoles(ctx, acc)
}

/*
FindByUsername retrieves an account record by its exact username.

Description: The comparison follows the username column collation and is
case-sensitive. "Bob" does not match "bob".

Parameters:
  - ctx: context.Context
  - username: string

Returns:
  - *Account: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByUsername(ctx context.Context, username string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM ` + accountTable.Table + ` WHERE ` + accountTable.Username + ` = $1`

	acc, err := scanAccount(repository.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_username_failed: %w", err)
	}

	return repository.hydrateRoles(ctx, acc)
}

/*
ExistsByUsername reports whether an account already uses this username.
*/
func (repository *PostgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM iam.account WHERE username = $1)`

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_account_repo_exists_username_failed: %w", err)
	}
	return exists, nil
}

/*
ExistsByEmail reports whether an account already uses this email.
*/
func (repository *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM iam.account WHERE email = $1)`

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_account_repo_exists_email_failed: %w", err)
	}
	return exists, nil
}

/*
List returns a page of accounts ordered by ID, with the total count.

Parameters:
  - ctx: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Account: Page of hydrated accounts
  - int: Total account count
  - error: Query failures
*/
func (repository *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*Account, int, error) {
	const countQuery = `SELECT COUNT(*) FROM iam.account`

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_count_failed: %w", err)
	}

	query := `SELECT ` + accountColumns + ` FROM ` + accountTable.Table +
		` ORDER BY ` + accountTable.ID + ` LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	accounts := make([]*Account, 0, limit)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_account_repo_list_scan_failed: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_rows_failed: %w", err)
	}

	for _, acc := range accounts {
		if _, err := repository.hydrateRoles(ctx, acc); err != nil {
			return nil, 0, err
		}
	}

	return accounts, total, nil
}

/*
Update persists changes to an account's mutable profile fields.

Parameters:
  - ctx: context.Context
  - acc: *Account

Returns:
  - error: Update failures
*/
func (repository *PostgresRepository) Update(ctx context.Context, acc *Account) error {
	const query = `
		UPDATE iam.account
		SET username = $2, email = $3, updatedat = $4
		WHERE id = $1`

	acc.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(ctx, query, acc.ID, acc.Username, acc.Email, acc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}

/*
UpdatePassword updates only the password hash for a specific account.

Parameters:
  - ctx: context.Context
  - id: int64
  - newHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) UpdatePassword(ctx context.Context, id int64, newHash string) error {
	const query = `UPDATE iam.account SET passwordhash = $2, updatedat = $3 WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, id, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_password_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}

/*
Delete permanently removes an account and its role assignments.

Description: Role assignments are removed first so the account row can be
deleted without violating the foreign key.

Parameters:
  - ctx: context.Context
  - id: int64

Returns:
  - error: Transaction failures
*/
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_delete_begin_failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM iam.account_role WHERE accountid = $1`, id); err != nil {
		return fmt.Errorf("postgres_account_repo_delete_roles_failed: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM iam.account WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_account_repo_delete_commit_failed: %w", err)
	}

	return nil
}

/*
ReplaceRoles atomically replaces the account's role set.

Parameters:
  - ctx: context.Context
  - accountID: int64
  - roleIDs: []int64

Returns:
  - error: Transaction failures
*/
func (repository *PostgresRepository) ReplaceRoles(ctx context.Context, accountID int64, roleIDs []int64) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_replace_roles_begin_failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM iam.account_role WHERE accountid = $1`, accountID); err != nil {
		return fmt.Errorf("postgres_account_repo_replace_roles_clear_failed: %w", err)
	}

	for _, roleID := range roleIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO iam.account_role (accountid, roleid) VALUES ($1, $2)`,
			accountID, roleID,
		); err != nil {
			return fmt.Errorf("postgres_account_repo_replace_roles_insert_failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_account_repo_replace_roles_commit_failed: %w", err)
	}

	return nil
}

/*
RecordFailedAttempt atomically increments the failed-attempt counter and
applies the lock when the counter reaches maxAttempts.

Description: The increment, the threshold comparison and the lock write
happen in a single UPDATE statement. Two concurrent failed sign-ins can
never both observe a pre-threshold counter.

Parameters:
  - ctx: context.Context
  - id: int64
  - maxAttempts: int
  - now: time.Time

Returns:
  - bool: True if the account is locked after this attempt
  - int: Counter value after the increment
  - error: Execution errors
*/
func (repository *PostgresRepository) RecordFailedAttempt(ctx context.Context, id int64, maxAttempts int, now time.Time) (bool, int, error) {
	const query = `
		UPDATE iam.account
		SET failedattempts = failedattempts + 1,
			accountnonlocked = (failedattempts + 1 < $2),
			locktime = CASE WHEN failedattempts + 1 >= $2 AND locktime IS NULL THEN $3 ELSE locktime END,
			updatedat = $3
		WHERE id = $1
		RETURNING failedattempts, accountnonlocked`

	var attempts int
	var nonLocked bool
	err := repository.pool.QueryRow(ctx, query, id, maxAttempts, now).Scan(&attempts, &nonLocked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, apperr.NotFound("Account")
		}
		return false, 0, fmt.Errorf("postgres_account_repo_record_failure_failed: %w", err)
	}

	return !nonLocked, attempts, nil
}

/*
ResetFailedAttempts zeroes the failed-attempt counter.

Description: The WHERE clause skips the write when the counter is already
zero, keeping successful sign-ins on the warm path free of row updates.

Parameters:
  - ctx: context.Context
  - id: int64

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) ResetFailedAttempts(ctx context.Context, id int64) error {
	const query = `
		UPDATE iam.account
		SET failedattempts = 0, updatedat = $2
		WHERE id = $1 AND failedattempts > 0`

	if _, err := repository.pool.Exec(ctx, query, id, time.Now()); err != nil {
		return fmt.Errorf("postgres_account_repo_reset_failures_failed: %w", err)
	}

	return nil
}

/*
Unlock clears the lock flag, lock timestamp and failed-attempt counter.

Parameters:
  - ctx: context.Context
  - id: int64

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) Unlock(ctx context.Context, id int64) error {
	const query = `
		UPDATE iam.account
		SET accountnonlocked = TRUE, locktime = NULL, failedattempts = 0, updatedat = $2
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_account_repo_unlock_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}

// hydrateRoles loads the account's roles and permissions through the rbac layer.
func (repository *PostgresRepository) hydrateRoles(ctx context.Context, acc *Account) (*Account, error) {
	roles, err := repository.roles.RolesForAccount(ctx, acc.ID)
	if err != nil {
		return nil, fmt.Errorf("postgres_account_repo_hydrate_roles_failed: %w", err)
	}
	acc.Roles = roles
	return acc, nil
}
