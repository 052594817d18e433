// Copyright (c) 2026 HGS. All rights reserved.

package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hgs/siags/internal/platform/apperr"
)

// # Role Repository

// PostgresRoleRepository implements RoleRepository using pgx.
type PostgresRoleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository creates a new PostgreSQL implementation of RoleRepository.
func NewRoleRepository(pool *pgxpool.Pool) *PostgresRoleRepository {
	return &PostgresRoleRepository{pool: pool}
}

// rolePermissionRows is the shared projection for eager role+permission reads.
// Permission columns are nullable because of the LEFT JOIN: a role with no
// permissions still yields one row.
const rolePermissionColumns = `
	r.id, r.name, p.id, p.name, COALESCE(p.description, '')`

// scanRolesWithPermissions folds the flat join rows into hydrated roles,
// relying on ORDER BY r.id for grouping.
func scanRolesWithPermissions(rows pgx.Rows) ([]Role, error) {
	var roles []Role

	for rows.Next() {
		var (
			roleID          int64
			roleName        RoleName
			permissionID    *int64
			permissionName  *string
			permissionDescr string
		)

		if err := rows.Scan(&roleID, &roleName, &permissionID, &permissionName, &permissionDescr); err != nil {
			return nil, fmt.Errorf("postgres_role_repo_scan_failed: %w", err)
		}

		if len(roles) == 0 || roles[len(roles)-1].ID != roleID {
			roles = append(roles, Role{ID: roleID, Name: roleName})
		}

		if permissionID != nil && permissionName != nil {
			current := &roles[len(roles)-1]
			current.Permissions = append(current.Permissions, Permission{
				ID:          *permissionID,
				Name:        *permissionName,
				Description: permissionDescr,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_role_repo_rows_failed: %w", err)
	}

	return roles, nil
}

/*
FindByName retrieves a role and its eager-loaded permissions by catalog name.

Returns:
  - *Role: Hydrated role
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRoleRepository) FindByName(context context.Context, name RoleName) (*Role, error) {
	query := `
		SELECT` + rolePermissionColumns + `
		FROM iam.role r
		LEFT JOIN iam.role_permission rp ON rp.roleid = r.id
		LEFT JOIN iam.permission p ON p.id = rp.permissionid
		WHERE r.name = $1
		ORDER BY r.id, p.name`

	rows, err := repository.pool.Query(context, query, name)
	if err != nil {
		return nil, fmt.Errorf("postgres_role_repo_find_by_name_failed: %w", err)
	}
	defer rows.Close()

	roles, err := scanRolesWithPermissions(rows)
	if err != nil {
		return nil, err
	}

	if len(roles) == 0 {
		return nil, apperr.NotFound("Role")
	}

	return &roles[0], nil
}

/*
ListRoles returns every role in the catalog with its permission set.
*/
func (repository *PostgresRoleRepository) ListRoles(context context.Context) ([]*Role, error) {
	query := `
		SELECT` + rolePermissionColumns + `
		FROM iam.role r
		LEFT JOIN iam.role_permission rp ON rp.roleid = r.id
		LEFT JOIN iam.permission p ON p.id = rp.permissionid
		ORDER BY r.id, p.name`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_role_repo_list_failed: %w", err)
	}
	defer rows.Close()

	roles, err := scanRolesWithPermissions(rows)
	if err != nil {
		return nil, err
	}

	result := make([]*Role, len(roles))
	for i := range roles {
		result[i] = &roles[i]
	}
	return result, nil
}

/*
RolesForAccount returns the roles assigned to an account with permissions
eager-loaded. This query runs on every authenticated request — the freshness
of the effective authority set depends on it never being cached.
*/
func (repository *PostgresRoleRepository) RolesForAccount(context context.Context, accountID int64) ([]Role, error) {
	query := `
		SELECT` + rolePermissionColumns + `
		FROM iam.account_role ar
		JOIN iam.role r ON r.id = ar.roleid
		LEFT JOIN iam.role_permission rp ON rp.roleid = r.id
		LEFT JOIN iam.permission p ON p.id = rp.permissionid
		WHERE ar.accountid = $1
		ORDER BY r.id, p.name`

	rows, err := repository.pool.Query(context, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("postgres_role_repo_roles_for_account_failed: %w", err)
	}
	defer rows.Close()

	return scanRolesWithPermissions(rows)
}

/*
EnsureRole inserts the role if absent and returns the stored row. The
ON CONFLICT no-op update lets RETURNING yield the row in both branches.
*/
func (repository *PostgresRoleRepository) EnsureRole(context context.Context, name RoleName) (*Role, error) {
	const query = `
		INSERT INTO iam.role (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`

	role := &Role{}
	if err := repository.pool.QueryRow(context, query, name).Scan(&role.ID, &role.Name); err != nil {
		return nil, fmt.Errorf("postgres_role_repo_ensure_failed: %w", err)
	}

	return role, nil
}

/*
ReplaceRolePermissions sets the exact permission set of a role inside one
transaction, so enforcement never observes a half-updated association.
*/
func (repository *PostgresRoleRepository) ReplaceRolePermissions(context context.Context, roleID int64, permissionIDs []int64) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_role_repo_replace_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	if _, err := transaction.Exec(context,
		"DELETE FROM iam.role_permission WHERE roleid = $1", roleID); err != nil {
		return fmt.Errorf("postgres_role_repo_replace_clear_failed: %w", err)
	}

	for _, permissionID := range permissionIDs {
		if _, err := transaction.Exec(context,
			"INSERT INTO iam.role_permission (roleid, permissionid) VALUES ($1, $2)",
			roleID, permissionID); err != nil {
			return fmt.Errorf("postgres_role_repo_replace_insert_failed: %w", err)
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_role_repo_replace_commit_failed: %w", err)
	}

	return nil
}

// # Permission Repository

// PostgresPermissionRepository implements PermissionRepository using pgx.
type PostgresPermissionRepository struct {
	pool *pgxpool.Pool
}

// NewPermissionRepository creates a new PostgreSQL implementation of PermissionRepository.
func NewPermissionRepository(pool *pgxpool.Pool) *PostgresPermissionRepository {
	return &PostgresPermissionRepository{pool: pool}
}

/*
ListPermissions returns the full permission catalog ordered by name.
*/
func (repository *PostgresPermissionRepository) ListPermissions(context context.Context) ([]*Permission, error) {
	const query = `
		SELECT id, name, COALESCE(description, '')
		FROM iam.permission
		ORDER BY name`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_permission_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var permissions []*Permission
	for rows.Next() {
		permission := &Permission{}
		if err := rows.Scan(&permission.ID, &permission.Name, &permission.Description); err != nil {
			return nil, fmt.Errorf("postgres_permission_repo_scan_failed: %w", err)
		}
		permissions = append(permissions, permission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_permission_repo_rows_failed: %w", err)
	}

	return permissions, nil
}

/*
FindByName retrieves a permission by its unique name.

Returns:
  - *Permission: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresPermissionRepository) FindByName(context context.Context, name string) (*Permission, error) {
	const query = `
		SELECT id, name, COALESCE(description, '')
		FROM iam.permission
		WHERE name = $1`

	permission := &Permission{}
	err := repository.pool.QueryRow(context, query, name).Scan(
		&permission.ID,
		&permission.Name,
		&permission.Description,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Permission")
		}
		return nil, fmt.Errorf("postgres_permission_repo_find_by_name_failed: %w", err)
	}

	return permission, nil
}

/*
EnsurePermission inserts the permission if absent, refreshing the
description, and returns the stored row.
*/
func (repository *PostgresPermissionRepository) EnsurePermission(context context.Context, name, description string) (*Permission, error) {
	const query = `
		INSERT INTO iam.permission (name, description)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
		RETURNING id, name, COALESCE(description, '')`

	permission := &Permission{}
	err := repository.pool.QueryRow(context, query, name, description).Scan(
		&permission.ID,
		&permission.Name,
		&permission.Description,
	)

	if err != nil {
		return nil, fmt.Errorf("postgres_permission_repo_ensure_failed: %w", err)
	}

	return permission, nil
}
