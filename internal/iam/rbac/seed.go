// Copyright (c) 2026 HGS. All rights reserved.

package rbac

import (
	"context"
	"fmt"
	"log/slog"
)

// permissionSeed pairs a catalog permission with its description.
type permissionSeed struct {
	name        string
	description string
}

// permissionCatalog is the complete seed vocabulary. Seeding is idempotent:
// existing permissions keep their ID and get a refreshed description.
var permissionCatalog = []permissionSeed{
	{PermPatientRead, "Read patient records."},
	{PermPatientWrite, "Create and update patient records."},
	{PermPatientDelete, "Delete patients."},

	{PermDailyRecordRead, "Read patients' daily vitals records."},
	{PermDailyRecordWrite, "Create and update daily vitals records."},
	{PermDailyRecordDelete, "Delete daily vitals records."},

	{PermUserRead, "Read user accounts."},
	{PermUserWrite, "Create and update user accounts."},
	{PermUserDelete, "Delete user accounts."},
	{PermUserAssignRole, "Assign roles to user accounts."},

	{PermConsultationRead, "Read consultations."},
	{PermConsultationWrite, "Create and update consultations."},
	{PermConsultationDelete, "Delete consultations."},

	{PermAdmissionRead, "Read admissions."},
	{PermAdmissionWrite, "Create and update admissions."},
	{PermAdmissionDischarge, "Manage patient discharge."},

	{PermDepartmentRead, "Read departments."},
	{PermDepartmentWrite, "Create and update departments."},
	{PermDepartmentDelete, "Delete departments."},

	{PermMedicalRecordRead, "Read medical records."},
	{PermMedicalRecordWrite, "Create and update medical records."},
	{PermMedicalRecordDelete, "Delete medical records."},

	{PermAuditRead, "Read audit logs."},

	{PermReportReadPatient, "Read patient reports."},
	{PermReportReadAdmission, "Read admission reports."},
	{PermReportReadConsultation, "Read consultation reports."},
}

// roleGrants maps each role to its seeded permission set. ADMIN is handled
// separately: it always receives the entire catalog.
var roleGrants = map[RoleName][]string{
	RoleReceptionniste: {
		PermPatientRead, PermPatientWrite,
		PermAdmissionRead, PermAdmissionWrite,
		PermConsultationRead, PermDepartmentRead,
		PermDailyRecordRead, PermReportReadPatient,
		PermReportReadAdmission, PermReportReadConsultation,
		PermMedicalRecordRead,
	},
	RoleMedecin: {
		PermPatientRead, PermDailyRecordRead,
		PermDailyRecordWrite, PermConsultationRead,
		PermConsultationWrite, PermAdmissionRead,
		PermDepartmentRead, PermReportReadConsultation,
		PermMedicalRecordRead, PermMedicalRecordWrite,
	},
	RoleInfirmier: {
		PermPatientRead, PermDailyRecordRead,
		PermDailyRecordWrite, PermAdmissionRead,
		PermConsultationRead, PermDepartmentRead,
		PermReportReadPatient, PermReportReadAdmission,
		PermReportReadConsultation, PermMedicalRecordRead,
	},
	RolePersonnelAdminSortie: {
		PermPatientRead, PermAdmissionRead, PermAdmissionDischarge,
	},
}

/*
Seed initializes the permission catalog and role→permission associations.

It runs at startup, after migrations and before traffic is served, and is
idempotent: rerunning against an already-seeded database converges to the
same catalog without duplicating rows.
*/
func Seed(ctx context.Context, roles RoleRepository, permissions PermissionRepository, logger *slog.Logger) error {

	// ── 1. Permission Catalog ─────────────────────────────────────────────
	permissionsByName := make(map[string]*Permission, len(permissionCatalog))
	allPermissionIDs := make([]int64, 0, len(permissionCatalog))

	for _, seed := range permissionCatalog {
		permission, err := permissions.EnsurePermission(ctx, seed.name, seed.description)
		if err != nil {
			return fmt.Errorf("rbac: seed permission %s: %w", seed.name, err)
		}
		permissionsByName[permission.Name] = permission
		allPermissionIDs = append(allPermissionIDs, permission.ID)
	}

	logger.Info("rbac_permissions_seeded", slog.Int("count", len(permissionCatalog)))

	// ── 2. Role Catalog ───────────────────────────────────────────────────
	rolesByName := make(map[RoleName]*Role, len(AllRoleNames()))
	for _, name := range AllRoleNames() {
		role, err := roles.EnsureRole(ctx, name)
		if err != nil {
			return fmt.Errorf("rbac: seed role %s: %w", name, err)
		}
		rolesByName[name] = role
	}

	// ── 3. Role → Permission Associations ─────────────────────────────────
	// ADMIN holds every permission in the catalog, including future additions.
	if err := roles.ReplaceRolePermissions(ctx, rolesByName[RoleAdmin].ID, allPermissionIDs); err != nil {
		return fmt.Errorf("rbac: grant admin permissions: %w", err)
	}

	for roleName, grantedNames := range roleGrants {
		ids := make([]int64, 0, len(grantedNames))
		for _, permissionName := range grantedNames {
			ids = append(ids, permissionsByName[permissionName].ID)
		}
		if err := roles.ReplaceRolePermissions(ctx, rolesByName[roleName].ID, ids); err != nil {
			return fmt.Errorf("rbac: grant %s permissions: %w", roleName, err)
		}
	}

	logger.Info("rbac_roles_seeded", slog.Int("count", len(rolesByName)))
	return nil
}
