// Copyright (c) 2026 HGS. All rights reserved.

package rbac

// # Effective Authorities

// AuthoritySet is the flat set of authority strings held by a principal:
// role names (ROLE_-prefixed) and permission names share one namespace,
// exactly as the enforcement check consumes them.
type AuthoritySet map[string]struct{}

// Has reports whether the set contains the given authority.
func (set AuthoritySet) Has(authority string) bool {
	_, ok := set[authority]
	return ok
}

// Add inserts an authority into the set.
func (set AuthoritySet) Add(authority string) {
	set[authority] = struct{}{}
}

// Names returns the authorities as a slice, for responses and logging.
// Order is unspecified.
func (set AuthoritySet) Names() []string {
	names := make([]string, 0, len(set))
	for authority := range set {
		names = append(names, authority)
	}
	return names
}

// EffectiveAuthorities derives the full authority set from a list of
// eager-loaded roles: the union of every role name plus every permission
// name reachable through any of those roles.
//
// # Freshness
//
// This is a pure function of its input and is recomputed on every identity
// resolution. Nothing here is cached between requests — granting or
// revoking a permission on a role is visible to every account holding that
// role on its very next request.
func EffectiveAuthorities(roles []Role) AuthoritySet {
	authorities := make(AuthoritySet, len(roles)*8)

	for _, role := range roles {
		authorities.Add(string(role.Name))
		for _, permission := range role.Permissions {
			authorities.Add(permission.Name)
		}
	}

	return authorities
}

// # Principal

// Principal is the resolved identity of an authenticated caller: the
// account's stable attributes plus its freshly derived authority set.
//
// Principals live for a single request. They are placed in the request
// context by the authentication middleware and consumed by the enforcement
// middleware and handlers; they are never persisted or shared.
type Principal struct {
	AccountID   int64
	Username    string
	Email       string
	Roles       []RoleName
	Authorities AuthoritySet
}

// HasRole reports whether the principal holds the given role.
func (p *Principal) HasRole(name RoleName) bool {
	return p.Authorities.Has(string(name))
}

// HasPermission reports whether the principal holds the given permission.
func (p *Principal) HasPermission(name string) bool {
	return p.Authorities.Has(name)
}
