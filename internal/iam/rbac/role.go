// Copyright (c) 2026 HGS. All rights reserved.

/*
Package rbac implements the role/permission authorization catalog.

It defines the closed set of hospital staff roles, the fine-grained
permission catalog, and the derivation of a caller's effective authority
set — the flat union of role names and permission names that the
enforcement middleware checks per-operation requirements against.

# Architecture

  - Role: a named bundle of permissions (many-to-many, eager-loaded).
  - Permission: a leaf capability such as PATIENT_READ; never nested.
  - Principal: the resolved caller identity plus its authority set,
    recomputed on every request so revocations apply immediately.
  - Requirement: a per-operation declaration evaluated by one central
    check instead of ad-hoc conditions scattered through handlers.
*/
package rbac

// # Role Catalog

// RoleName identifies one of the closed set of staff roles. The stored
// form carries the ROLE_ prefix so role authorities and permission
// authorities can share one flat namespace.
type RoleName string

const (
	// Unrestricted system access.
	RoleAdmin RoleName = "ROLE_ADMIN"

	// Doctors: consultations, daily records, medical records.
	RoleMedecin RoleName = "ROLE_MEDECIN"

	// Nurses: daily records and read access to the clinical trail.
	RoleInfirmier RoleName = "ROLE_INFIRMIER"

	// Front desk: patient intake, admissions, scheduling.
	RoleReceptionniste RoleName = "ROLE_RECEPTIONNISTE"

	// Discharge office: admission read + discharge handling.
	RolePersonnelAdminSortie RoleName = "ROLE_PERSONNEL_ADMIN_SORTIE"
)

// AllRoleNames lists every role in the catalog, in seed order.
func AllRoleNames() []RoleName {
	return []RoleName{
		RoleAdmin,
		RoleMedecin,
		RoleInfirmier,
		RoleReceptionniste,
		RolePersonnelAdminSortie,
	}
}

// IsValid reports whether the name belongs to the closed role set.
func (name RoleName) IsValid() bool {
	switch name {
	case RoleAdmin, RoleMedecin, RoleInfirmier, RoleReceptionniste, RolePersonnelAdminSortie:
		return true
	}
	return false
}

// # Signup Aliases

// roleAliases maps the lowercase role identifiers accepted at the signup
// boundary to catalog roles. The mapping is total: unknown aliases fall
// back to the default role rather than driving control flow by exception.
var roleAliases = map[string]RoleName{
	"admin":                  RoleAdmin,
	"medecin":                RoleMedecin,
	"infirmier":              RoleInfirmier,
	"receptionniste":         RoleReceptionniste,
	"personnel_admin_sortie": RolePersonnelAdminSortie,
}

// DefaultRole is assigned when a signup request names no role at all.
const DefaultRole = RoleReceptionniste

// ParseRoleAlias resolves a request-supplied role string to a catalog role.
// The second return reports whether the alias was recognized; unrecognized
// aliases fall back to [DefaultRole] at the signup boundary.
func ParseRoleAlias(alias string) (RoleName, bool) {
	name, ok := roleAliases[alias]
	return name, ok
}

// # Entities

// Role is a persisted role row with its eager-loaded permission set.
type Role struct {
	ID          int64        `json:"id"`
	Name        RoleName     `json:"name"`
	Permissions []Permission `json:"permissions"`
}
