// Copyright (c) 2026 HGS. All rights reserved.

/*
Package auth implements the sign-in, sign-up and identity resolution flows.

It is the only package that verifies passwords, tracks failed sign-in
attempts and turns a token subject back into a fully-hydrated principal.

Architecture:

  - Service: Orchestrates sign-in, sign-up and lockout bookkeeping.
  - Repository: The account package's Postgres-backed store.
  - Security: Bcrypt password hashing and HS256-signed JWTs.

# Lockout Model

Five consecutive failed attempts lock an account for fifteen minutes.
The lock expires passively: the next resolution or sign-in after the
window has elapsed clears it. No background job is involved.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hgs/siags/internal/iam/account"
	"github.com/hgs/siags/internal/iam/rbac"
	"github.com/hgs/siags/internal/platform/apperr"
	"github.com/hgs/siags/internal/platform/metrics"
	"github.com/hgs/siags/internal/platform/sec"
	"github.com/hgs/siags/internal/platform/validate"
)

// # Contracts & Types

// TokenIssuer defines the contract for generating bearer tokens.
type TokenIssuer interface {
	// Issue creates a signed JWT whose subject is the given username.
	Issue(username string) (string, error)
}

// Auditor records authentication events in the audit trail.
type Auditor interface {
	Record(ctx context.Context, actorID int64, action, resource string, resourceID int64, details string)
}

// Service implements authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to password checking,
// lockout counting, or principal resolution must be reviewed by the
// security team.
type Service struct {
	accounts account.Repository
	roles    rbac.RoleRepository
	tokens   TokenIssuer
	auditor  Auditor
	logger   *slog.Logger

	maxFailedAttempts int
	lockDuration      time.Duration

	// now is swapped out in tests to exercise the lock window.
	now func() time.Time
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	accounts account.Repository,
	roles rbac.RoleRepository,
	tokens TokenIssuer,
	auditor Auditor,
	logger *slog.Logger,
	maxFailedAttempts int,
	lockDuration time.Duration,
) *Service {
	if maxFailedAttempts <= 0 {
		maxFailedAttempts = DefaultMaxFailedAttempts
	}
	if lockDuration <= 0 {
		lockDuration = DefaultLockDuration
	}

	return &Service{
		accounts:          accounts,
		roles:             roles,
		tokens:            tokens,
		auditor:           auditor,
		logger:            logger,
		maxFailedAttempts: maxFailedAttempts,
		lockDuration:      lockDuration,
		now:               time.Now,
	}
}

// # Identity Resolution

/*
ResolveAccount turns a token subject into a fully-hydrated principal.

Description: Called by the authentication middleware on every request
carrying a valid token. Authorities are read fresh from the database each
time: a role change takes effect on the target's next request. An expired
lock is cleared here as a side effect.

Parameters:
  - ctx: context.Context
  - username: string (Token subject)

Returns:
  - *rbac.Principal: Principal with the union of role and permission names
  - error: NotFound, lock errors, or storage errors
*/
func (service *Service) ResolveAccount(ctx context.Context, username string) (*rbac.Principal, error) {
	acc, err := service.accounts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !acc.AccountNonLocked {
		if !acc.LockExpired(service.now(), service.lockDuration) {
			return nil, apperr.Unauthorized(msgAccountLocked)
		}

		if err := service.accounts.Unlock(ctx, acc.ID); err != nil {
			return nil, err
		}
		service.logger.Info("account_lock_expired", slog.Int64("account_id", acc.ID))
	}

	return &rbac.Principal{
		AccountID:   acc.ID,
		Username:    acc.Username,
		Email:       acc.Email,
		Roles:       acc.RoleNames(),
		Authorities: rbac.EffectiveAuthorities(acc.Roles),
	}, nil
}

// # Sign-In Flow

// SignInInput holds the credentials submitted at sign-in.
type SignInInput struct {
	Username string
	Password string
}

// SignInResult is the successful sign-in payload.
type SignInResult struct {
	Token     string   `json:"token"`
	TokenType string   `json:"tokenType"`
	UserID    int64    `json:"userId"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
}

/*
SignIn authenticates credentials and issues a bearer token.

Description: Unknown usernames and wrong passwords produce the same
generic 401. Each wrong password increments the account's failed-attempt
counter atomically; crossing the threshold locks the account. A correct
password resets the counter.

Parameters:
  - ctx: context.Context
  - input: SignInInput

Returns:
  - *SignInResult: Token and account summary
  - error: apperr.Unauthorized on any credential or lock failure
*/
func (service *Service) SignIn(ctx context.Context, input SignInInput) (*SignInResult, error) {
	validator := &validate.Validator{}
	validator.Required(account.FieldUsername, input.Username)
	validator.Required(account.FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 1. Account Lookup ─────────────────────────────────────────────────
	acc, err := service.accounts.FindByUsername(ctx, input.Username)
	if err != nil {
		if apperr.IsAppError(err) {
			// Same response as a wrong password
			metrics.ObserveLogin("failure")
			service.logger.Warn("login_unknown_username", slog.String("username", input.Username))
			return nil, apperr.Unauthorized(msgBadCredentials)
		}
		return nil, err
	}

	// ── 2. Lock Check ─────────────────────────────────────────────────────
	if !acc.AccountNonLocked {
		if !acc.LockExpired(service.now(), service.lockDuration) {
			metrics.ObserveLogin("locked")
			service.auditor.Record(ctx, acc.ID, "LOGIN", "USER", acc.ID, "Sign-in rejected: account locked")
			service.logger.Warn("login_account_locked", slog.Int64("account_id", acc.ID))
			return nil, apperr.Unauthorized(msgAccountLocked)
		}

		if err := service.accounts.Unlock(ctx, acc.ID); err != nil {
			return nil, err
		}
		service.logger.Info("account_lock_expired", slog.Int64("account_id", acc.ID))
	}

	// ── 3. Password Verification ──────────────────────────────────────────
	if !sec.CheckPasswordHash(input.Password, acc.PasswordHash) {
		locked, attempts, err := service.accounts.RecordFailedAttempt(ctx, acc.ID, service.maxFailedAttempts, service.now())
		if err != nil {
			return nil, err
		}

		metrics.ObserveLogin("failure")
		service.auditor.Record(ctx, acc.ID, "LOGIN", "USER", acc.ID, "Sign-in rejected: bad credentials")
		service.logger.Warn("login_failed",
			slog.Int64("account_id", acc.ID),
			slog.Int("failed_attempts", attempts),
			slog.Bool("locked", locked),
		)

		if locked {
			return nil, apperr.Unauthorized(msgAccountLocked)
		}
		return nil, apperr.Unauthorized(msgBadCredentials)
	}

	// ── 4. Counter Reset & Token Issue ────────────────────────────────────
	if err := service.accounts.ResetFailedAttempts(ctx, acc.ID); err != nil {
		return nil, err
	}

	token, err := service.tokens.Issue(acc.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	metrics.ObserveLogin("success")
	service.auditor.Record(ctx, acc.ID, "LOGIN", "USER", acc.ID, "Sign-in succeeded")
	service.logger.Info("login_succeeded", slog.Int64("account_id", acc.ID))

	roles := make([]string, 0, len(acc.Roles))
	for _, role := range acc.Roles {
		roles = append(roles, string(role.Name))
	}

	return &SignInResult{
		Token:     token,
		TokenType: "Bearer",
		UserID:    acc.ID,
		Username:  acc.Username,
		Email:     acc.Email,
		Roles:     roles,
	}, nil
}

// # Sign-Up Flow

// SignUpInput holds the data submitted at self-service registration.
//
// Roles carries lowercase aliases ("medecin", "infirmier"), not catalog
// names. An empty list yields the receptionist default.
type SignUpInput struct {
	Username string
	Email    string
	Password string
	Roles    []string
}

/*
SignUp validates, hashes, and persists a brand new staff account.

Parameters:
  - ctx: context.Context
  - input: SignUpInput

Returns:
  - *account.Account: Created entity with roles hydrated
  - error: Conflict (if identity exists), validation or storage errors
*/
func (service *Service) SignUp(ctx context.Context, input SignUpInput) (*account.Account, error) {
	validator := &validate.Validator{}
	validator.Required(account.FieldUsername, input.Username).MinLen(account.FieldUsername, input.Username, 3).MaxLen(account.FieldUsername, input.Username, 50)
	validator.Required(account.FieldEmail, input.Email).Email(account.FieldEmail, input.Email)
	validator.Required(account.FieldPassword, input.Password).MinLen(account.FieldPassword, input.Password, 8)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Verify username uniqueness. Return a client-safe Conflict error.
	if taken, err := service.accounts.ExistsByUsername(ctx, input.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Verify email uniqueness. Return a client-safe Conflict error.
	if taken, err := service.accounts.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Conflict("Email is already registered")
	}

	roleIDs, err := service.resolveAliases(ctx, input.Roles)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	acc := &account.Account{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	if err := service.accounts.Create(ctx, acc); err != nil {
		return nil, err
	}
	if err := service.accounts.ReplaceRoles(ctx, acc.ID, roleIDs); err != nil {
		return nil, err
	}

	created, err := service.accounts.FindByID(ctx, acc.ID)
	if err != nil {
		return nil, err
	}

	service.auditor.Record(ctx, created.ID, "CREATE", "USER", created.ID, "Self-service registration")
	service.logger.Info("signup_succeeded",
		slog.Int64("account_id", created.ID),
		slog.String("username", created.Username),
	)

	return created, nil
}

/*
ListRoles returns the complete role catalog with permissions.
*/
func (service *Service) ListRoles(ctx context.Context) ([]*rbac.Role, error) {
	return service.roles.ListRoles(ctx)
}

// resolveAliases maps sign-up role aliases to role IDs. The mapping is
// total: an empty alias set and every unrecognized alias resolve to
// [rbac.DefaultRole]. Duplicates are collapsed so the role assignment
// never inserts the same pair twice.
func (service *Service) resolveAliases(ctx context.Context, aliases []string) ([]int64, error) {
	names := make([]rbac.RoleName, 0, len(aliases))
	if len(aliases) == 0 {
		names = append(names, rbac.DefaultRole)
	}

	for _, alias := range aliases {
		name, ok := rbac.ParseRoleAlias(alias)
		if !ok {
			service.logger.Warn("signup_unknown_role_alias", slog.String("alias", alias))
			name = rbac.DefaultRole
		}
		names = append(names, name)
	}

	seen := make(map[rbac.RoleName]bool, len(names))
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		role, err := service.roles.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, role.ID)
	}

	return ids, nil
}
