// Copyright (c) 2026 HGS. All rights reserved.

package rbac

import "strings"

// requirementKind discriminates the three forms of access declaration.
type requirementKind int

const (
	kindAuthenticated requirementKind = iota
	kindPermission
	kindAnyRole
)

// Requirement is a per-operation access declaration. Each protected route
// declares exactly one Requirement; a single central check evaluates it
// against the caller's authority set.
//
// # Forms
//
//   - RequiresPermission(name): preferred, fine-grained. The caller must
//     hold the named permission.
//   - RequiresAnyRole(names...): legacy, coarse-grained. The caller must
//     hold at least one of the named roles. Kept because parts of the API
//     are still declared in role terms.
//   - RequiresAuthentication(): any signed-in caller.
//
// Both forms coexist in the same route table and are evaluated identically:
// against the flat authority set, with no structural distinction between a
// role authority and a permission authority.
type Requirement struct {
	kind       requirementKind
	permission string
	roles      []RoleName
}

// RequiresAuthentication requires only that the caller is signed in.
func RequiresAuthentication() Requirement {
	return Requirement{kind: kindAuthenticated}
}

// RequiresPermission requires the caller to hold the named permission.
func RequiresPermission(name string) Requirement {
	return Requirement{kind: kindPermission, permission: name}
}

// RequiresAnyRole requires the caller to hold at least one of the given roles.
func RequiresAnyRole(names ...RoleName) Requirement {
	return Requirement{kind: kindAnyRole, roles: names}
}

// SatisfiedBy evaluates the requirement against an authority set.
// A nil set (anonymous caller) satisfies nothing.
func (r Requirement) SatisfiedBy(authorities AuthoritySet) bool {
	if authorities == nil {
		return false
	}

	switch r.kind {
	case kindAuthenticated:
		return true
	case kindPermission:
		return authorities.Has(r.permission)
	case kindAnyRole:
		for _, role := range r.roles {
			if authorities.Has(string(role)) {
				return true
			}
		}
		return false
	}
	return false
}

// String renders the requirement for 403 messages and logs.
func (r Requirement) String() string {
	switch r.kind {
	case kindPermission:
		return "permission " + r.permission
	case kindAnyRole:
		names := make([]string, len(r.roles))
		for i, role := range r.roles {
			names[i] = string(role)
		}
		return "any role of " + strings.Join(names, ", ")
	}
	return "authentication"
}
