// Copyright (c) 2026 HGS. All rights reserved.

package rbac

import "context"

// # Role Data Access

// RoleRepository defines the data access contract for the role catalog.
// Every read hydrates the role's permission set — enforcement is always
// computed from the complete Role↔Permission association, never a partial
// or cached view.
type RoleRepository interface {

	/*
		FindByName returns the role with the given catalog name, with its
		permission set eager-loaded.

		Returns:
		  - *Role: Hydrated role
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByName(context context.Context, name RoleName) (*Role, error)

	/*
		ListRoles returns every role in the catalog with permissions loaded.
	*/
	ListRoles(context context.Context) ([]*Role, error)

	/*
		RolesForAccount returns the roles assigned to an account, each with
		its permission set eager-loaded. This is the read-through the
		identity resolver unions into the effective authority set.
	*/
	RolesForAccount(context context.Context, accountID int64) ([]Role, error)

	/*
		EnsureRole inserts the role if absent and returns the stored row.
		Idempotent; used by the startup seeder.
	*/
	EnsureRole(context context.Context, name RoleName) (*Role, error)

	/*
		ReplaceRolePermissions sets the exact permission set of a role,
		removing any association not in permissionIDs.
	*/
	ReplaceRolePermissions(context context.Context, roleID int64, permissionIDs []int64) error
}

// # Permission Data Access

// PermissionRepository defines the data access contract for the permission
// catalog.
type PermissionRepository interface {

	/*
		ListPermissions returns every permission, ordered by name.
	*/
	ListPermissions(context context.Context) ([]*Permission, error)

	/*
		FindByName returns the permission with the given unique name.

		Returns:
		  - *Permission: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByName(context context.Context, name string) (*Permission, error)

	/*
		EnsurePermission inserts the permission if absent, refreshing the
		description, and returns the stored row. Idempotent; used by the
		startup seeder.
	*/
	EnsurePermission(context context.Context, name, description string) (*Permission, error)
}
