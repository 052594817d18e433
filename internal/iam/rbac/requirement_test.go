// Copyright (c) 2026 HGS. All rights reserved.

package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hgs/siags/internal/iam/rbac"
)

func doctorAuthorities() rbac.AuthoritySet {
	return rbac.EffectiveAuthorities([]rbac.Role{
		{
			ID:   2,
			Name: rbac.RoleMedecin,
			Permissions: []rbac.Permission{
				{ID: 1, Name: rbac.PermPatientRead},
				{ID: 2, Name: rbac.PermConsultationWrite},
			},
		},
	})
}

/*
TestRequirement_SatisfiedBy exercises the three requirement forms against
the same authority set.
*/
func TestRequirement_SatisfiedBy(t *testing.T) {
	authorities := doctorAuthorities()

	tests := []struct {
		name        string
		requirement rbac.Requirement
		satisfied   bool
	}{
		{"authenticated", rbac.RequiresAuthentication(), true},
		{"held_permission", rbac.RequiresPermission(rbac.PermPatientRead), true},
		{"missing_permission", rbac.RequiresPermission(rbac.PermUserDelete), false},
		{"held_role", rbac.RequiresAnyRole(rbac.RoleMedecin), true},
		{"one_of_many_roles", rbac.RequiresAnyRole(rbac.RoleAdmin, rbac.RoleMedecin), true},
		{"missing_role", rbac.RequiresAnyRole(rbac.RoleAdmin), false},
		{"no_roles_listed", rbac.RequiresAnyRole(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.satisfied, tt.requirement.SatisfiedBy(authorities))
		})
	}
}

/*
TestRequirement_AnonymousSatisfiesNothing pins the anonymous contract: a
nil authority set fails every requirement, including plain Authenticated.
*/
func TestRequirement_AnonymousSatisfiesNothing(t *testing.T) {
	requirements := []rbac.Requirement{
		rbac.RequiresAuthentication(),
		rbac.RequiresPermission(rbac.PermPatientRead),
		rbac.RequiresAnyRole(rbac.RoleAdmin),
	}

	for _, requirement := range requirements {
		assert.False(t, requirement.SatisfiedBy(nil), requirement.String())
	}
}

/*
TestEffectiveAuthorities_Union verifies that roles and permissions from
multiple roles merge into one flat set without duplicates.
*/
func TestEffectiveAuthorities_Union(t *testing.T) {
	authorities := rbac.EffectiveAuthorities([]rbac.Role{
		{
			Name: rbac.RoleMedecin,
			Permissions: []rbac.Permission{
				{Name: rbac.PermPatientRead},
				{Name: rbac.PermConsultationWrite},
			},
		},
		{
			Name: rbac.RoleInfirmier,
			Permissions: []rbac.Permission{
				{Name: rbac.PermPatientRead},
				{Name: rbac.PermDailyRecordWrite},
			},
		},
	})

	assert.True(t, authorities.Has(string(rbac.RoleMedecin)))
	assert.True(t, authorities.Has(string(rbac.RoleInfirmier)))
	assert.True(t, authorities.Has(rbac.PermPatientRead))
	assert.True(t, authorities.Has(rbac.PermConsultationWrite))
	assert.True(t, authorities.Has(rbac.PermDailyRecordWrite))
	assert.False(t, authorities.Has(rbac.PermUserDelete))

	// 2 role names + 3 distinct permissions.
	assert.Len(t, authorities.Names(), 5)
}

/*
TestPrincipal_RoleAndPermissionChecks covers the Principal convenience
accessors used by handlers.
*/
func TestPrincipal_RoleAndPermissionChecks(t *testing.T) {
	principal := &rbac.Principal{
		AccountID:   42,
		Username:    "dr.diop",
		Roles:       []rbac.RoleName{rbac.RoleMedecin},
		Authorities: doctorAuthorities(),
	}

	assert.True(t, principal.HasRole(rbac.RoleMedecin))
	assert.False(t, principal.HasRole(rbac.RoleAdmin))
	assert.True(t, principal.HasPermission(rbac.PermPatientRead))
	assert.False(t, principal.HasPermission(rbac.PermAuditRead))
}
