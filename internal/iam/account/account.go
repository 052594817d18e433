// Copyright (c) 2026 HGS. All rights reserved.

/*
Package account implements hospital staff account management.

It defines the Account entity and the administrative operations on it:
creation, role assignment, password reset and lockout management. Sign-in
and sign-up flows live in the sibling auth package; this package is the
system of record they both read from.

# Architecture

This layer is the "Truth" of the identity system. The lockout counters
stored here drive the brute-force protection enforced at sign-in.
*/
package account

import (
	"time"

	"github.com/hgs/siags/internal/iam/rbac"
)

// # Domain Entities

// Account represents a staff member of the hospital information system.
type Account struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Explicitly omitted from JSON for security.

	// Lockout state. AccountNonLocked is false while the account is under
	// a brute-force lock; LockTime records when the lock was applied.
	AccountNonLocked bool       `json:"account_non_locked"`
	LockTime         *time.Time `json:"-"`
	FailedAttempts   int        `json:"-"`

	Roles     []rbac.Role `json:"roles"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// RoleNames returns the names of the account's roles.
func (a *Account) RoleNames() []rbac.RoleName {
	names := make([]rbac.RoleName, 0, len(a.Roles))
	for _, role := range a.Roles {
		names = append(names, role.Name)
	}
	return names
}

// LockExpired reports whether the account's lock window has fully elapsed
// at the given instant. The window is inclusive of its last instant: a lock
// placed at T stays in force through T+duration and expires only after it.
// Always false when the account is not locked.
func (a *Account) LockExpired(now time.Time, lockDuration time.Duration) bool {
	if a.AccountNonLocked || a.LockTime == nil {
		return false
	}
	return now.Sub(*a.LockTime) > lockDuration
}

// # Field Identifiers

// Global field names for validation and identity mapping in the account domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldRoles           = "roles"
	FieldToken           = "token"
	FieldNewPassword     = "new_password"
	FieldCurrentPassword = "current_password"
)
